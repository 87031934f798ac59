package handlers

import (
	"log/slog"

	"github.com/edgard/adsbot/internal/config"
	"github.com/edgard/adsbot/internal/database"
	"github.com/edgard/adsbot/internal/flow"
)

// HandlerDeps provides dependencies for Telegram update handlers.
type HandlerDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  database.Store
	Flow   *flow.Service
	Sender flow.Sender
}
