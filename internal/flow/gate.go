package flow

import (
	"context"
	"fmt"

	"github.com/edgard/adsbot/internal/domain/model"
	apperrors "github.com/edgard/adsbot/internal/errors"
)

// Gate decides whether ev may proceed to Dispatch. It returns false when
// the event was consumed here: either as location input while the chat
// awaits one, or rejected because the user has no location yet. Rejected
// events leave the session and storage untouched.
func (s *Service) Gate(ctx context.Context, ev Event) (bool, error) {
	if ev.Kind == EventCommand && gateAllowList[ev.Command] {
		return true, nil
	}

	session, err := s.loadSession(ctx, ev.ChatID)
	if err != nil {
		return false, err
	}

	if session.AwaitingLocation {
		if ev.Kind == EventText && !IsMenuLabel(ev.Text) {
			return false, s.acceptLocation(ctx, session, ev)
		}
		s.logger.DebugContext(ctx, "Event blocked while awaiting location",
			"chat_id", ev.ChatID, "kind", ev.Kind)
		s.replyText(ctx, ev.ChatID, s.msgs.LocationPending)
		return false, nil
	}

	user, err := s.store.GetUser(ctx, ev.UserID)
	if err != nil {
		return false, err
	}
	if user == nil || !user.Location.Known() {
		s.logger.DebugContext(ctx, "Event blocked for user without location",
			"chat_id", ev.ChatID, "user_id", ev.UserID, "kind", ev.Kind)
		s.replyText(ctx, ev.ChatID, s.msgs.LocationMissing)
		return false, nil
	}

	return true, nil
}

// acceptLocation parses ev as a location and stores it on the user.
// Malformed input keeps the chat waiting and asks again.
func (s *Service) acceptLocation(ctx context.Context, session *model.Session, ev Event) error {
	loc, err := model.ParseLocation(ev.Text)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeValidation) {
			s.replyText(ctx, ev.ChatID, s.msgs.LocationInvalid)
			return nil
		}
		return err
	}

	if err := s.store.SetUserLocation(ctx, ev.UserID, loc); err != nil {
		return err
	}

	session.AwaitingLocation = false
	if err := s.store.SaveSession(ctx, session); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "User location updated",
		"user_id", ev.UserID, "country", loc.Country, "city", loc.City)
	s.reply(ctx, ev.ChatID, Reply{
		Text:     fmt.Sprintf(s.msgs.LocationSaved, loc.Display()),
		Keyboard: MainMenu(),
	})
	return nil
}
