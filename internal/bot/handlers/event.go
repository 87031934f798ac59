package handlers

import (
	"github.com/go-telegram/bot/models"

	"github.com/edgard/adsbot/internal/domain/model"
	"github.com/edgard/adsbot/internal/flow"
)

// EventFromUpdate converts a Telegram update into a flow event. Updates
// the bot does not act on (stickers, service messages, channel posts)
// report false.
func EventFromUpdate(update *models.Update) (flow.Event, bool) {
	if update == nil {
		return flow.Event{}, false
	}

	if cq := update.CallbackQuery; cq != nil {
		return flow.Event{
			Kind:   flow.EventCallback,
			ChatID: callbackChatID(cq),
			UserID: cq.From.ID,
			Data:   cq.Data,
		}, true
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return flow.Event{}, false
	}

	if media, ok := messageMedia(msg); ok {
		return flow.Event{
			Kind:   flow.EventMedia,
			ChatID: msg.Chat.ID,
			UserID: msg.From.ID,
			Text:   msg.Caption,
			Media:  media,
		}, true
	}
	if msg.Text != "" {
		return flow.NewTextEvent(msg.Chat.ID, msg.From.ID, msg.Text), true
	}
	return flow.Event{}, false
}

// ChatID returns the chat an update belongs to.
func ChatID(update *models.Update) (int64, bool) {
	switch {
	case update == nil:
		return 0, false
	case update.CallbackQuery != nil:
		return callbackChatID(update.CallbackQuery), true
	case update.Message != nil:
		return update.Message.Chat.ID, true
	}
	return 0, false
}

func callbackChatID(cq *models.CallbackQuery) int64 {
	switch {
	case cq.Message.Message != nil:
		return cq.Message.Message.Chat.ID
	case cq.Message.InaccessibleMessage != nil:
		return cq.Message.InaccessibleMessage.Chat.ID
	}
	return cq.From.ID
}

func messageMedia(msg *models.Message) (model.Media, bool) {
	switch {
	case len(msg.Photo) > 0:
		return model.Media{Kind: model.MediaPhoto, Ref: largestPhoto(msg.Photo).FileID}, true
	case msg.Video != nil:
		return model.Media{Kind: model.MediaVideo, Ref: msg.Video.FileID}, true
	case msg.Document != nil:
		return model.Media{Kind: model.MediaDocument, Ref: msg.Document.FileID}, true
	}
	return model.Media{}, false
}

// largestPhoto picks the size with the most pixels.
func largestPhoto(sizes []models.PhotoSize) models.PhotoSize {
	var best models.PhotoSize
	bestQuality := 0
	for _, photo := range sizes {
		quality := photo.Width * photo.Height
		if quality > bestQuality {
			bestQuality = quality
			best = photo
		}
	}
	return best
}
