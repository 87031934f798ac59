package flow

import (
	"context"
	"strings"

	"github.com/edgard/adsbot/internal/domain/model"
)

// Dispatch routes an event that passed the Gate. Chats inside the
// submission flow are handled by the state machine; everything else goes
// to the top-level router. Cancel is honoured everywhere.
func (s *Service) Dispatch(ctx context.Context, ev Event) error {
	session, err := s.loadSession(ctx, ev.ChatID)
	if err != nil {
		return err
	}

	if ev.Kind == EventCommand && ev.Command == CommandCancel {
		return s.cancel(ctx, session, ev)
	}
	if session.InSubmission() {
		return s.handleSubmission(ctx, session, ev)
	}
	return s.route(ctx, session, ev)
}

func (s *Service) route(ctx context.Context, session *model.Session, ev Event) error {
	switch ev.Kind {
	case EventCommand:
		switch ev.Command {
		case CommandStart:
			return s.start(ctx, session, ev)
		case CommandSetLocation:
			return s.requestLocation(ctx, session, ev)
		case CommandHelp:
			s.replyText(ctx, ev.ChatID, s.msgs.Help)
			return nil
		default:
			s.replyText(ctx, ev.ChatID, s.msgs.UnknownCommand)
			return nil
		}

	case EventText:
		if item, ok := menuItemFor(ev.Text); ok {
			return s.menu(ctx, session, ev, item)
		}

	case EventCallback:
		switch {
		case ev.Data == CallbackMore:
			return s.showMore(ctx, session, ev)
		case strings.HasPrefix(ev.Data, CallbackFilterPrefix):
			return s.applyFilter(ctx, session, ev)
		}
	}

	s.reply(ctx, ev.ChatID, Reply{Text: s.msgs.UseMenu, Keyboard: MainMenu()})
	return nil
}
