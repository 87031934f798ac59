package flow

import (
	"context"

	"github.com/edgard/adsbot/internal/domain/model"
)

// start registers the user and either asks for a location or shows the menu.
func (s *Service) start(ctx context.Context, session *model.Session, ev Event) error {
	user, err := s.store.EnsureUser(ctx, ev.UserID)
	if err != nil {
		return err
	}

	if !user.Location.Known() {
		return s.requestLocation(ctx, session, ev)
	}

	if session.AwaitingLocation {
		session.AwaitingLocation = false
		if err := s.store.SaveSession(ctx, session); err != nil {
			return err
		}
	}
	s.reply(ctx, ev.ChatID, Reply{Text: s.msgs.Welcome, Keyboard: MainMenu()})
	return nil
}

func (s *Service) requestLocation(ctx context.Context, session *model.Session, ev Event) error {
	session.AwaitingLocation = true
	if err := s.store.SaveSession(ctx, session); err != nil {
		return err
	}
	s.reply(ctx, ev.ChatID, Reply{Text: s.msgs.LocationPrompt, Keyboard: RemoveKeyboard{}})
	return nil
}

// cancel abandons both a pending location input and any submission.
func (s *Service) cancel(ctx context.Context, session *model.Session, ev Event) error {
	session.AwaitingLocation = false
	session.ResetSubmission()
	if err := s.store.SaveSession(ctx, session); err != nil {
		return err
	}
	s.reply(ctx, ev.ChatID, Reply{Text: s.msgs.Cancelled, Keyboard: MainMenu()})
	return nil
}
