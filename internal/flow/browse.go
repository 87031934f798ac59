package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/edgard/adsbot/internal/domain/model"
	apperrors "github.com/edgard/adsbot/internal/errors"
	"github.com/edgard/adsbot/internal/listing"
)

// showAds runs a fresh search from the first page.
func (s *Service) showAds(ctx context.Context, session *model.Session, ev Event, category model.Category) error {
	session.ResetListing(category)
	return s.runQuery(ctx, session, ev, 0)
}

func (s *Service) showMore(ctx context.Context, session *model.Session, ev Event) error {
	return s.runQuery(ctx, session, ev, session.ListOffset+listing.PageSize)
}

func (s *Service) applyFilter(ctx context.Context, session *model.Session, ev Event) error {
	category, ok := model.ParseCategory(strings.TrimPrefix(ev.Data, CallbackFilterPrefix))
	if !ok {
		s.reply(ctx, ev.ChatID, Reply{
			Text:     s.msgs.ChooseFilter,
			Keyboard: categoryKeyboard(CallbackFilterPrefix),
		})
		return nil
	}
	return s.showAds(ctx, session, ev, category)
}

func (s *Service) runQuery(ctx context.Context, session *model.Session, ev Event, offset int) error {
	var requester model.Location
	user, err := s.store.GetUser(ctx, ev.UserID)
	if err != nil {
		return err
	}
	if user != nil {
		requester = user.Location
	}

	page, err := s.finder.Find(ctx, listing.Query{
		Requester: requester,
		Category:  session.ListCategory,
		Offset:    offset,
		Broadened: offset > 0 && session.ListBroadened,
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodePrecondition) {
			session.AwaitingLocation = true
			if err := s.store.SaveSession(ctx, session); err != nil {
				return err
			}
			s.reply(ctx, ev.ChatID, Reply{Text: s.msgs.LocationPrompt, Keyboard: RemoveKeyboard{}})
			return nil
		}
		return err
	}

	s.logger.DebugContext(ctx, "Ads page found",
		"chat_id", ev.ChatID,
		"offset", page.Offset,
		"scope", page.Scope,
		"broadened", page.Broadened,
		"items", len(page.Items),
		"has_more", page.HasMore)

	if page.Empty() && page.Offset > 0 {
		s.replyText(ctx, ev.ChatID, s.msgs.NoMoreAds)
		return nil
	}

	session.ListOffset = page.Offset
	session.ListBroadened = page.Broadened
	if err := s.store.SaveSession(ctx, session); err != nil {
		return err
	}

	if page.Empty() {
		s.replyText(ctx, ev.ChatID, s.emptyResultText(requester, session.ListCategory, page))
		return nil
	}

	if page.Broadened && page.Offset == 0 {
		s.replyText(ctx, ev.ChatID,
			fmt.Sprintf(s.msgs.NoAdsInCity, requester.City)+"\n"+fmt.Sprintf(s.msgs.Broadened, requester.Country))
	}

	for _, item := range page.Items {
		s.reply(ctx, ev.ChatID, Reply{
			Text:  RenderListing(&item.Ad, item.Owner),
			HTML:  true,
			Media: item.Ad.Media,
		})
	}

	if page.HasMore {
		s.reply(ctx, ev.ChatID, Reply{
			Text: s.msgs.ShowMorePrompt,
			Keyboard: InlineKeyboard{Rows: [][]Button{
				{{Text: s.msgs.ShowMoreButton, Data: CallbackMore}},
			}},
		})
	}
	return nil
}

func (s *Service) emptyResultText(requester model.Location, category model.Category, page *listing.Page) string {
	switch {
	case category != "":
		return fmt.Sprintf(s.msgs.NoAdsInCategory, category.Label())
	case page.Broadened:
		return fmt.Sprintf(s.msgs.NoAdsInCity, requester.City) + "\n" + fmt.Sprintf(s.msgs.NoAdsInCountry, requester.Country)
	case page.Scope == listing.ScopeCity:
		return fmt.Sprintf(s.msgs.NoAdsInCity, requester.City)
	case page.Scope == listing.ScopeCountry:
		return fmt.Sprintf(s.msgs.NoAdsInCountry, requester.Country)
	default:
		return s.msgs.NoAds
	}
}

func (s *Service) showMyAds(ctx context.Context, ev Event) error {
	ads, err := s.store.ListAdsByOwner(ctx, ev.UserID, s.myAdsLimit)
	if err != nil {
		return err
	}
	if len(ads) == 0 {
		s.replyText(ctx, ev.ChatID, s.msgs.MyAdsEmpty)
		return nil
	}
	for i := range ads {
		s.reply(ctx, ev.ChatID, Reply{
			Text:  RenderOwnAd(&ads[i]),
			HTML:  true,
			Media: ads[i].Media,
		})
	}
	return nil
}
