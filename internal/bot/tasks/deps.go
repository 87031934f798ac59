// Package tasks implements the scheduled maintenance jobs of the bot.
package tasks

import (
	"log/slog"

	"github.com/edgard/adsbot/internal/config"
	"github.com/edgard/adsbot/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
