package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/adsbot/internal/domain/model"
	apperrors "github.com/edgard/adsbot/internal/errors"
	"github.com/edgard/adsbot/internal/flow"
	"github.com/edgard/adsbot/internal/resilience"
)

// MaxCaptionLength is the Bot API limit for media captions, in characters.
const MaxCaptionLength = 1024

// API is the subset of *bot.Bot used to deliver messages.
type API interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendVideo(ctx context.Context, params *bot.SendVideoParams) (*models.Message, error)
	SendDocument(ctx context.Context, params *bot.SendDocumentParams) (*models.Message, error)
}

// Sender delivers flow replies through the Bot API. Channel broadcasts
// go through a circuit breaker so a revoked channel fails fast.
type Sender struct {
	api     API
	channel any
	breaker *resilience.CircuitBreaker
	logger  *slog.Logger
}

// NewSender creates a Sender that broadcasts to channelID, given either as
// a numeric chat id or as @username.
func NewSender(api API, channelID string, logger *slog.Logger) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "telegram_sender")
	return &Sender{
		api:     api,
		channel: ParseChatID(channelID),
		breaker: resilience.NewCircuitBreaker(resilience.BreakerConfig{
			Name:   "channel_broadcast",
			Logger: log,
		}),
		logger: log,
	}
}

// ParseChatID returns an int64 for numeric ids and the trimmed string otherwise.
func ParseChatID(raw string) any {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id
	}
	return raw
}

// Send delivers reply to a user chat.
func (s *Sender) Send(ctx context.Context, chatID int64, reply flow.Reply) error {
	return s.deliver(ctx, chatID, reply)
}

// Broadcast posts reply to the announcement channel.
func (s *Sender) Broadcast(ctx context.Context, reply flow.Reply) error {
	if s.breaker.Open() {
		s.logger.WarnContext(ctx, "Channel broadcast skipped, circuit open", "channel", s.channel)
		return apperrors.NewDeliveryError("channel broadcast suspended after repeated failures", resilience.ErrCircuitOpen)
	}
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.deliver(ctx, s.channel, reply)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return apperrors.NewDeliveryError("channel broadcast suspended after repeated failures", err)
	}
	return err
}

func (s *Sender) deliver(ctx context.Context, chatID any, reply flow.Reply) error {
	if !reply.Media.Present() {
		return s.sendText(ctx, chatID, reply)
	}

	// Captions over the limit go out as a bare attachment followed by the text.
	if utf8.RuneCountInString(reply.Text) > MaxCaptionLength {
		s.logger.DebugContext(ctx, "Caption too long, sending separately",
			"chat_id", chatID, "length", utf8.RuneCountInString(reply.Text))
		if err := s.sendMedia(ctx, chatID, flow.Reply{Media: reply.Media}); err != nil {
			return err
		}
		return s.sendText(ctx, chatID, flow.Reply{Text: reply.Text, HTML: reply.HTML, Keyboard: reply.Keyboard})
	}
	return s.sendMedia(ctx, chatID, reply)
}

func (s *Sender) sendText(ctx context.Context, chatID any, reply flow.Reply) error {
	_, err := s.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        reply.Text,
		ParseMode:   parseMode(reply.HTML),
		ReplyMarkup: ReplyMarkup(reply.Keyboard),
	})
	if err != nil {
		return apperrors.NewDeliveryError(fmt.Sprintf("failed to send message to %v", chatID), err)
	}
	return nil
}

func (s *Sender) sendMedia(ctx context.Context, chatID any, reply flow.Reply) error {
	file := &models.InputFileString{Data: reply.Media.Ref}
	mode := parseMode(reply.HTML)
	markup := ReplyMarkup(reply.Keyboard)

	var err error
	switch reply.Media.Kind {
	case model.MediaPhoto:
		_, err = s.api.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID: chatID, Photo: file, Caption: reply.Text, ParseMode: mode, ReplyMarkup: markup,
		})
	case model.MediaVideo:
		_, err = s.api.SendVideo(ctx, &bot.SendVideoParams{
			ChatID: chatID, Video: file, Caption: reply.Text, ParseMode: mode, ReplyMarkup: markup,
		})
	case model.MediaDocument:
		_, err = s.api.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID: chatID, Document: file, Caption: reply.Text, ParseMode: mode, ReplyMarkup: markup,
		})
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unsupported media kind %q", reply.Media.Kind), nil)
	}
	if err != nil {
		return apperrors.NewDeliveryError(
			fmt.Sprintf("failed to send %s to %v", reply.Media.Kind, chatID), err)
	}
	return nil
}

func parseMode(html bool) models.ParseMode {
	if html {
		return models.ParseModeHTML
	}
	return ""
}

// ReplyMarkup converts a flow keyboard into its Bot API form. It returns
// nil when no keyboard is attached.
func ReplyMarkup(kb flow.Keyboard) models.ReplyMarkup {
	switch kb := kb.(type) {
	case flow.MenuKeyboard:
		rows := make([][]models.KeyboardButton, 0, len(kb.Rows))
		for _, row := range kb.Rows {
			buttons := make([]models.KeyboardButton, 0, len(row))
			for _, label := range row {
				buttons = append(buttons, models.KeyboardButton{Text: label})
			}
			rows = append(rows, buttons)
		}
		return &models.ReplyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true}

	case flow.RemoveKeyboard:
		return &models.ReplyKeyboardRemove{RemoveKeyboard: true}

	case flow.InlineKeyboard:
		rows := make([][]models.InlineKeyboardButton, 0, len(kb.Rows))
		for _, row := range kb.Rows {
			buttons := make([]models.InlineKeyboardButton, 0, len(row))
			for _, b := range row {
				buttons = append(buttons, models.InlineKeyboardButton{Text: b.Text, CallbackData: b.Data, URL: b.URL})
			}
			rows = append(rows, buttons)
		}
		return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
	}
	return nil
}
