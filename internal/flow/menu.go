package flow

import (
	"context"

	"github.com/edgard/adsbot/internal/domain/model"
)

// Main menu labels. They arrive as plain text from the reply keyboard.
const (
	LabelSubmit  = "Подать объявление"
	LabelCityAds = "Объявления в моём городе"
	LabelFilter  = "Фильтр по категории"
	LabelChannel = "Канал с объявлениями"
	LabelHelp    = "Помощь"
	LabelMyAds   = "Мои объявления"
)

type menuItem int

const (
	menuSubmit menuItem = iota + 1
	menuCityAds
	menuFilter
	menuChannel
	menuHelp
	menuMyAds
)

var menuItems = map[string]menuItem{
	LabelSubmit:  menuSubmit,
	LabelCityAds: menuCityAds,
	LabelFilter:  menuFilter,
	LabelChannel: menuChannel,
	LabelHelp:    menuHelp,
	LabelMyAds:   menuMyAds,
}

// MainMenu is the persistent reply keyboard shown outside any flow.
func MainMenu() MenuKeyboard {
	return MenuKeyboard{Rows: [][]string{
		{LabelSubmit},
		{LabelCityAds, LabelFilter},
		{LabelChannel, LabelHelp},
		{LabelMyAds},
	}}
}

// IsMenuLabel reports whether text is one of the main menu labels.
func IsMenuLabel(text string) bool {
	_, ok := menuItemFor(text)
	return ok
}

func menuItemFor(text string) (menuItem, bool) {
	item, ok := menuItems[text]
	return item, ok
}

func (s *Service) menu(ctx context.Context, session *model.Session, ev Event, item menuItem) error {
	switch item {
	case menuSubmit:
		return s.beginSubmission(ctx, session, ev)
	case menuCityAds:
		return s.showAds(ctx, session, ev, "")
	case menuFilter:
		s.reply(ctx, ev.ChatID, Reply{
			Text:     s.msgs.ChooseFilter,
			Keyboard: categoryKeyboard(CallbackFilterPrefix),
		})
		return nil
	case menuChannel:
		if s.channelURL == "" {
			s.replyText(ctx, ev.ChatID, s.msgs.ChannelUnavailable)
			return nil
		}
		s.reply(ctx, ev.ChatID, Reply{
			Text: s.msgs.ChannelPrompt,
			Keyboard: InlineKeyboard{Rows: [][]Button{
				{{Text: s.msgs.ChannelButton, URL: s.channelURL}},
			}},
		})
		return nil
	case menuHelp:
		s.replyText(ctx, ev.ChatID, s.msgs.Help)
		return nil
	case menuMyAds:
		return s.showMyAds(ctx, ev)
	}
	return nil
}

// categoryKeyboard lists every category, one per row, with callback data
// prefix followed by the category key.
func categoryKeyboard(prefix string) InlineKeyboard {
	categories := model.Categories()
	rows := make([][]Button, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []Button{{Text: c.Label(), Data: prefix + string(c)}})
	}
	return InlineKeyboard{Rows: rows}
}
