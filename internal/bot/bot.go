// Package bot implements the bot lifecycle: receiving updates by webhook or
// long polling, serving the HTTP endpoints and running the scheduler.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/adsbot/internal/config"
	"github.com/edgard/adsbot/internal/database"
	"github.com/edgard/adsbot/internal/telegram"
)

const shutdownTimeout = 10 * time.Second

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	cfg       *config.Config
	store     database.Store
	tgBot     *tgbot.Bot
	scheduler *Scheduler
}

// NewBot creates a new instance of the bot with all required dependencies.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	store database.Store,
	tgBot *tgbot.Bot,
	scheduler *Scheduler,
) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		cfg:       cfg,
		store:     store,
		tgBot:     tgBot,
		scheduler: scheduler,
	}
}

// Run starts the bot and all its components, handling graceful shutdown on context cancellation.
// It returns an error if any component fails during startup or execution.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...", "mode", b.cfg.Telegram.Mode)

	g, gCtx := errgroup.WithContext(ctx)

	var webhook http.Handler
	if b.cfg.Telegram.Mode == config.TelegramModeWebhook {
		if _, err := b.tgBot.SetWebhook(ctx, &tgbot.SetWebhookParams{
			URL:         b.cfg.Telegram.WebhookURL,
			SecretToken: b.cfg.Telegram.WebhookSecret,
		}); err != nil {
			b.logger.Error("Failed to set webhook", "error", err)
			return fmt.Errorf("failed to set webhook: %w", err)
		}
		b.logger.Info("Webhook registered", "url", b.cfg.Telegram.WebhookURL)
		webhook = b.tgBot.WebhookHandler()

		g.Go(func() error {
			b.logger.Info("Starting Telegram webhook processor...")
			b.tgBot.StartWebhook(gCtx)
			b.logger.Info("Telegram webhook processor stopped.")
			return nil
		})
	} else {
		if _, err := b.tgBot.DeleteWebhook(ctx, &tgbot.DeleteWebhookParams{}); err != nil {
			b.logger.Warn("Failed to delete webhook before polling", "error", err)
		}

		g.Go(func() error {
			b.logger.Info("Starting Telegram bot listener...")
			b.tgBot.Start(gCtx)
			b.logger.Info("Telegram bot listener stopped.")

			if gCtx.Err() == nil {
				b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")
				return fmt.Errorf("telegram listener stopped unexpectedly")
			}
			return nil
		})
	}

	mux := telegram.NewServeMux(b.cfg.Telegram.WebhookPath, webhook, b.store.Ping, b.logger)
	srv := telegram.NewServer(b.cfg.Telegram.ListenAddr, mux)

	g.Go(func() error {
		b.logger.Info("Starting HTTP server...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			b.logger.Error("HTTP server failed", "error", err)
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			b.logger.Error("Error shutting down HTTP server", "error", err)
		}
		b.logger.Info("HTTP server stopped.")
		return nil
	})

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		b.logger.Info("Scheduler running", "jobs", b.scheduler.Jobs())

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}

		return nil
	})

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
