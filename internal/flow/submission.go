package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/edgard/adsbot/internal/domain/model"
)

func (s *Service) beginSubmission(ctx context.Context, session *model.Session, ev Event) error {
	if _, err := s.store.EnsureUser(ctx, ev.UserID); err != nil {
		return err
	}

	session.BeginSubmission()
	if err := s.store.SaveSession(ctx, session); err != nil {
		return err
	}

	s.reply(ctx, ev.ChatID, Reply{
		Text:     s.msgs.ChooseCategory,
		Keyboard: categoryKeyboard(CallbackCategoryPrefix),
	})
	return nil
}

// handleSubmission advances the submission state machine by one event.
func (s *Service) handleSubmission(ctx context.Context, session *model.Session, ev Event) error {
	log := s.logger.With("chat_id", ev.ChatID, "state", session.State, "kind", ev.Kind)
	log.DebugContext(ctx, "Handling submission event")

	if ev.Kind == EventCallback && strings.HasPrefix(ev.Data, CallbackCategoryPrefix) {
		return s.chooseCategory(ctx, session, ev)
	}

	switch session.State {
	case model.StateSelectingCategory:
		switch ev.Kind {
		case EventText:
			if item, ok := menuItemFor(ev.Text); ok {
				log.InfoContext(ctx, "Submission cancelled by menu action")
				session.ResetSubmission()
				if err := s.store.SaveSession(ctx, session); err != nil {
					return err
				}
				s.replyText(ctx, ev.ChatID, s.msgs.SubmissionCancelled)
				return s.menu(ctx, session, ev, item)
			}
		case EventCommand:
			s.replyText(ctx, ev.ChatID, s.msgs.CommandsBlocked)
			return nil
		}
		s.replyText(ctx, ev.ChatID, s.msgs.ChooseCategoryFirst)
		return nil

	case model.StateAwaitingDescription:
		switch ev.Kind {
		case EventText:
			return s.acceptDescription(ctx, session, ev)
		case EventMedia:
			return s.acceptMedia(ctx, session, ev)
		case EventCommand:
			s.replyText(ctx, ev.ChatID, s.msgs.CommandsBlocked)
			return nil
		}

	case model.StateAwaitingMedia:
		switch ev.Kind {
		case EventText:
			return s.acceptDescription(ctx, session, ev)
		case EventMedia:
			return s.acceptMedia(ctx, session, ev)
		case EventCommand:
			s.replyText(ctx, ev.ChatID, s.msgs.CommandsBlocked)
			return nil
		case EventCallback:
			if ev.Data == CallbackPublish {
				return s.publish(ctx, session, ev)
			}
		}
	}

	s.replyText(ctx, ev.ChatID, s.msgs.FinishSubmission)
	return nil
}

// chooseCategory stores the picked category. Picking again replaces the
// category but never moves the state backwards.
func (s *Service) chooseCategory(ctx context.Context, session *model.Session, ev Event) error {
	category, ok := model.ParseCategory(strings.TrimPrefix(ev.Data, CallbackCategoryPrefix))
	if !ok {
		s.reply(ctx, ev.ChatID, Reply{
			Text:     s.msgs.ChooseCategory,
			Keyboard: categoryKeyboard(CallbackCategoryPrefix),
		})
		return nil
	}

	session.Category = category
	if session.State == model.StateSelectingCategory {
		session.State = model.StateAwaitingDescription
	}
	if err := s.store.SaveSession(ctx, session); err != nil {
		return err
	}

	s.replyText(ctx, ev.ChatID, fmt.Sprintf(s.msgs.CategoryChosen, category.Label()))
	return nil
}

// acceptDescription stores free text as the description. A staged
// attachment publishes immediately; otherwise the chat waits for media.
func (s *Service) acceptDescription(ctx context.Context, session *model.Session, ev Event) error {
	description, ok := validDescription(ev.Text)
	if !ok {
		s.replyText(ctx, ev.ChatID, s.msgs.DescriptionInvalid)
		return nil
	}
	session.Description = description

	if session.Media.Present() {
		return s.publish(ctx, session, ev)
	}

	session.State = model.StateAwaitingMedia
	if err := s.store.SaveSession(ctx, session); err != nil {
		return err
	}
	s.reply(ctx, ev.ChatID, Reply{
		Text: s.msgs.MediaPrompt,
		Keyboard: InlineKeyboard{Rows: [][]Button{
			{{Text: s.msgs.PublishWithoutMedia, Data: CallbackPublish}},
		}},
	})
	return nil
}

func (s *Service) acceptMedia(ctx context.Context, session *model.Session, ev Event) error {
	session.Media = ev.Media

	if session.State == model.StateAwaitingMedia {
		return s.publish(ctx, session, ev)
	}

	if description, ok := validDescription(ev.Text); ok {
		session.Description = description
		return s.publish(ctx, session, ev)
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return err
	}
	s.replyText(ctx, ev.ChatID, s.msgs.DescriptionRequired)
	return nil
}

func validDescription(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, CommandPrefix) {
		return "", false
	}
	return text, true
}

// publish persists the ad, counts it and announces it. The session's
// submission is cleared whatever the outcome.
func (s *Service) publish(ctx context.Context, session *model.Session, ev Event) error {
	ad := &model.Ad{
		OwnerID:     ev.UserID,
		Category:    session.Category,
		Description: session.Description,
		Media:       session.Media,
	}

	err := s.publishAd(ctx, ad)

	session.ResetSubmission()
	if saveErr := s.store.SaveSession(ctx, session); saveErr != nil {
		s.logger.ErrorContext(ctx, "Failed to reset session after publishing",
			"error", saveErr, "chat_id", ev.ChatID)
	}

	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish ad",
			"error", err, "chat_id", ev.ChatID, "user_id", ev.UserID, "ad_id", ad.ID)
		s.reply(ctx, ev.ChatID, Reply{Text: s.msgs.SubmitFailed, Keyboard: MainMenu()})
		return nil
	}

	s.logger.InfoContext(ctx, "Ad published",
		"ad_id", ad.ID, "user_id", ev.UserID, "category", ad.Category, "media", ad.Media.Kind)
	s.reply(ctx, ev.ChatID, Reply{Text: s.msgs.SubmitSuccess, Keyboard: MainMenu()})
	return nil
}

// publishAd is a single attempt: a failure after CreateAd leaves the ad stored.
func (s *Service) publishAd(ctx context.Context, ad *model.Ad) error {
	user, err := s.store.EnsureUser(ctx, ad.OwnerID)
	if err != nil {
		return err
	}
	ad.Location = user.Location

	if err := s.store.CreateAd(ctx, ad); err != nil {
		return err
	}
	if err := s.store.IncrementAdCount(ctx, ad.OwnerID); err != nil {
		return err
	}
	return s.sender.Broadcast(ctx, Reply{
		Text:  RenderAnnouncement(ad, s.location),
		HTML:  true,
		Media: ad.Media,
	})
}
