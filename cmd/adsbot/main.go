// Package main contains the entrypoint for the classifieds Telegram bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"

	"github.com/edgard/adsbot/internal/bot"
	"github.com/edgard/adsbot/internal/bot/handlers"
	"github.com/edgard/adsbot/internal/bot/tasks"
	"github.com/edgard/adsbot/internal/config"
	"github.com/edgard/adsbot/internal/database"
	"github.com/edgard/adsbot/internal/flow"
	"github.com/edgard/adsbot/internal/listing"
	"github.com/edgard/adsbot/internal/logger"
	"github.com/edgard/adsbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, db, flow, bot, scheduler),
// handles graceful shutdown, and returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	// The sender needs the bot instance, so the default handler is bound
	// after the bot is built. No update arrives before Run.
	var dispatch tgbot.HandlerFunc
	defaultHandler := func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		dispatch(ctx, b, update)
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(
			logger.Middleware(log),
			handlers.SerializeChats(),
			handlers.AnswerCallbacks(handlers.HandlerDeps{Logger: log}),
		),
		tgbot.WithDefaultHandler(defaultHandler),
	}
	if cfg.Telegram.WebhookSecret != "" {
		botOpts = append(botOpts, tgbot.WithWebhookSecretToken(cfg.Telegram.WebhookSecret))
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	sender := telegram.NewSender(tg, cfg.Telegram.ChannelID, log)
	flowSvc := flow.NewService(flow.Deps{
		Store:      store,
		Finder:     listing.NewEngine(store, cfg.Listing.BatchSize, log),
		Sender:     sender,
		Messages:   cfg.Messages,
		Logger:     log,
		ChannelURL: cfg.Telegram.ChannelURL,
		SessionTTL: cfg.Session.TTL,
		MyAdsLimit: cfg.Listing.MyAdsLimit,
		Location:   cfg.Location(),
	})
	hDeps := handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
		Store:  store,
		Flow:   flowSvc,
		Sender: sender,
	}
	dispatch = handlers.NewDefaultHandler(hDeps)

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, cfg.Location(), tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, cfg, store, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
