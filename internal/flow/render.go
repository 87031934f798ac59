package flow

import (
	"html"
	"strings"
	"time"

	"github.com/edgard/adsbot/internal/domain/model"
)

const announcementTimeLayout = "02.01.2006, 15:04"

// RenderAnnouncement builds the HTML caption posted to the channel.
func RenderAnnouncement(ad *model.Ad, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("📢 <b>Новое объявление!</b>\n\n")
	b.WriteString("📂 <b>Категория:</b> <i>" + html.EscapeString(ad.Category.Label()) + "</i>\n")
	b.WriteString("📝 <b>Описание:</b> " + html.EscapeString(ad.Description) + "\n\n")
	b.WriteString("📅 " + ad.CreatedAt.In(loc).Format(announcementTimeLayout))
	if ad.Location.Known() {
		b.WriteString("\n📍 <b>Местоположение:</b> " + html.EscapeString(ad.Location.Display()))
	}
	return b.String()
}

// RenderListing builds the caption of an ad shown in search results.
// owner is the owner's current location; unknown fields are omitted.
func RenderListing(ad *model.Ad, owner model.Location) string {
	caption := renderShort(ad)
	if owner.Known() {
		caption += "\n📍 " + html.EscapeString(owner.Display())
	}
	return caption
}

// RenderOwnAd builds the caption of an ad in the author's own list.
func RenderOwnAd(ad *model.Ad) string {
	return renderShort(ad)
}

func renderShort(ad *model.Ad) string {
	return "📂 <b>" + html.EscapeString(ad.Category.Label()) + "</b>\n📝 " + html.EscapeString(ad.Description)
}
