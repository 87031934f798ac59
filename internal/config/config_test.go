package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/edgard/adsbot/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
  mode: webhook
  webhook_url: "https://ads.example.com/webhook"
  channel_id: "@ads_channel"
  channel_url: "https://t.me/ads_channel"
  admin_user_id: 77
database:
  path: /tmp/ads-test.db
session:
  ttl: 2h
messages:
  help: "Пишите @support"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, "@ads_channel", cfg.Telegram.ChannelID)
	assert.Equal(t, int64(77), cfg.Telegram.AdminUserID)
	assert.Equal(t, DefaultTelegramWebhookPath, cfg.Telegram.WebhookPath)
	assert.Equal(t, "/tmp/ads-test.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, DefaultListingBatchSize, cfg.Listing.BatchSize)
	assert.Equal(t, "Пишите @support", cfg.Messages.Help)
	assert.Equal(t, DefaultMessages.Welcome, cfg.Messages.Welcome)
	assert.Equal(t, DefaultTimezone, cfg.Location().String())

	require.Contains(t, cfg.Scheduler.Tasks, "session_expiry")
	assert.True(t, cfg.Scheduler.Tasks["session_expiry"].Enabled)
	assert.Equal(t, DefaultSessionExpirySchedule, cfg.Scheduler.Tasks["session_expiry"].Schedule)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("BOT_TELEGRAM_TOKEN", "env-token")
	t.Setenv("BOT_TELEGRAM_MODE", "polling")
	t.Setenv("BOT_TELEGRAM_CHANNEL_ID", "-100123")
	t.Setenv("BOT_DATABASE_PATH", "/data/ads.db")
	t.Setenv("BOT_SESSION_TTL", "30m")
	t.Setenv("BOT_LOGGER_LEVEL", "debug")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Telegram.Token)
	assert.Equal(t, "polling", cfg.Telegram.Mode)
	assert.Equal(t, "-100123", cfg.Telegram.ChannelID)
	assert.Equal(t, "/data/ads.db", cfg.Database.Path)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadConfigEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "file-token"
  mode: polling
  channel_id: "@file"
`)
	t.Setenv("BOT_TELEGRAM_CHANNEL_ID", "@env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Telegram.Token)
	assert.Equal(t, "@env", cfg.Telegram.ChannelID)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing token",
			body: "telegram:\n  mode: polling\n  channel_id: \"@c\"\n",
		},
		{
			name: "missing channel",
			body: "telegram:\n  token: t\n  mode: polling\n",
		},
		{
			name: "webhook mode without url",
			body: "telegram:\n  token: t\n  mode: webhook\n  channel_id: \"@c\"\n",
		},
		{
			name: "unknown mode",
			body: "telegram:\n  token: t\n  mode: carrier_pigeon\n  channel_id: \"@c\"\n",
		},
		{
			name: "bad timezone",
			body: "telegram:\n  token: t\n  mode: polling\n  channel_id: \"@c\"\ntimezone: Mars/Olympus\n",
		},
		{
			name: "session ttl too short",
			body: "telegram:\n  token: t\n  mode: polling\n  channel_id: \"@c\"\nsession:\n  ttl: 5s\n",
		},
		{
			name: "empty database path",
			body: "telegram:\n  token: t\n  mode: polling\n  channel_id: \"@c\"\ndatabase:\n  path: \"\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeConfig, apperrors.Code(err))
		})
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "telegram: [unterminated"))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfig, apperrors.Code(err))
}
