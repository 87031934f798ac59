// Package handlers contains Telegram bot update handlers, along with their
// registration logic and middleware.
package handlers

import (
	"context"
	"sync"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/adsbot/internal/flow"
)

// AdminOnly creates a middleware that checks if the message sender is the configured admin user.
// If not, it sends a "Not Authorized" message and stops processing by returning early.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				return
			}

			userID := update.Message.From.ID
			adminID := deps.Config.Telegram.AdminUserID
			if adminID == 0 || userID != adminID {
				chatID := update.Message.Chat.ID
				log := deps.Logger.With("middleware", "AdminOnly")
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", userID, "chat_id", chatID)

				err := deps.Sender.Send(ctx, chatID, flow.Reply{Text: deps.Config.Messages.NotAuthorized})
				if err != nil {
					log.ErrorContext(ctx, "Failed to send unauthorized message", "error", err, "chat_id", chatID)
				}
				return
			}

			next(ctx, bot, update)
		}
	}
}

// SerializeChats runs updates of the same chat one at a time. The client
// library handles each update in its own goroutine; updates of different
// chats still run concurrently.
func SerializeChats() tgbot.Middleware {
	locks := newChatLocks()
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			chatID, ok := ChatID(update)
			if !ok {
				next(ctx, bot, update)
				return
			}
			unlock := locks.lock(chatID)
			defer unlock()
			next(ctx, bot, update)
		}
	}
}

type chatLock struct {
	mu   sync.Mutex
	refs int
}

// chatLocks hands out one mutex per chat and forgets it once unused.
type chatLocks struct {
	mu    sync.Mutex
	locks map[int64]*chatLock
}

func newChatLocks() *chatLocks {
	return &chatLocks{locks: make(map[int64]*chatLock)}
}

func (c *chatLocks) lock(chatID int64) func() {
	c.mu.Lock()
	l, ok := c.locks[chatID]
	if !ok {
		l = &chatLock{}
		c.locks[chatID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, chatID)
		}
		c.mu.Unlock()
	}
}

// AnswerCallbacks acknowledges callback queries so the client stops its
// progress indicator.
func AnswerCallbacks(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if update.CallbackQuery != nil && bot != nil {
				_, err := bot.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
					CallbackQueryID: update.CallbackQuery.ID,
				})
				if err != nil {
					deps.Logger.WarnContext(ctx, "Failed to answer callback query",
						"error", err, "callback_id", update.CallbackQuery.ID)
				}
			}
			next(ctx, bot, update)
		}
	}
}

// LocationGate lets an update reach next only when the user has a stored
// location, or the update is an allow-listed command. While the chat is
// waiting for a location, plain text is consumed here as location input.
func LocationGate(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			ev, ok := EventFromUpdate(update)
			if !ok {
				next(ctx, bot, update)
				return
			}

			pass, err := deps.Flow.Gate(ctx, ev)
			if err != nil {
				deps.Flow.ReportError(ctx, ev.ChatID, err)
				return
			}
			if pass {
				next(ctx, bot, update)
			}
		}
	}
}
