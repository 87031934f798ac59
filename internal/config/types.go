// Package config loads the bot configuration from an optional YAML file and
// BOT_* environment variables, applies defaults and validates the result.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Session   SessionConfig   `mapstructure:"session"`
	Listing   ListingConfig   `mapstructure:"listing"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`

	// Timezone is used to render publish dates in announcements.
	Timezone string `mapstructure:"timezone" validate:"required,timezone"`

	location *time.Location
}

// Location returns the loaded Timezone, or UTC before validation.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot credential and how updates are received.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`
	// Mode is either "webhook" or "polling".
	Mode          string `mapstructure:"mode"           validate:"required,oneof=webhook polling"`
	WebhookURL    string `mapstructure:"webhook_url"    validate:"omitempty,url"`
	WebhookPath   string `mapstructure:"webhook_path"   validate:"required,startswith=/"`
	WebhookSecret string `mapstructure:"webhook_secret" validate:"omitempty,max=256"`
	ListenAddr    string `mapstructure:"listen_addr"    validate:"required"`

	// ChannelID is the broadcast target, either a numeric id or @username.
	ChannelID  string `mapstructure:"channel_id"  validate:"required"`
	ChannelURL string `mapstructure:"channel_url" validate:"omitempty,url"`

	// AdminUserID enables admin-only commands when non-zero.
	AdminUserID int64 `mapstructure:"admin_user_id" validate:"gte=0"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl" validate:"min=1m"`
}

type ListingConfig struct {
	BatchSize  int `mapstructure:"batch_size"   validate:"min=10,max=1000"`
	MyAdsLimit int `mapstructure:"my_ads_limit" validate:"min=1,max=100"`
}

type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// MessagesConfig holds every user-facing text. Entries ending in a format
// verb are rendered with fmt.Sprintf.
type MessagesConfig struct {
	Welcome             string `mapstructure:"welcome"              validate:"required"`
	LocationPrompt      string `mapstructure:"location_prompt"      validate:"required"`
	LocationSaved       string `mapstructure:"location_saved"       validate:"required"`
	LocationInvalid     string `mapstructure:"location_invalid"     validate:"required"`
	LocationPending     string `mapstructure:"location_pending"     validate:"required"`
	LocationMissing     string `mapstructure:"location_missing"     validate:"required"`
	Cancelled           string `mapstructure:"cancelled"            validate:"required"`
	SubmissionCancelled string `mapstructure:"submission_cancelled" validate:"required"`
	ChooseCategory      string `mapstructure:"choose_category"      validate:"required"`
	CategoryChosen      string `mapstructure:"category_chosen"      validate:"required"`
	ChooseCategoryFirst string `mapstructure:"choose_category_first" validate:"required"`
	CommandsBlocked     string `mapstructure:"commands_blocked"     validate:"required"`
	DescriptionInvalid  string `mapstructure:"description_invalid"  validate:"required"`
	MediaPrompt         string `mapstructure:"media_prompt"         validate:"required"`
	DescriptionRequired string `mapstructure:"description_required" validate:"required"`
	FinishSubmission    string `mapstructure:"finish_submission"    validate:"required"`
	PublishWithoutMedia string `mapstructure:"publish_without_media" validate:"required"`
	SubmitSuccess       string `mapstructure:"submit_success"       validate:"required"`
	SubmitFailed        string `mapstructure:"submit_failed"        validate:"required"`
	GeneralError        string `mapstructure:"general_error"        validate:"required"`
	NoAds               string `mapstructure:"no_ads"               validate:"required"`
	NoAdsInCity         string `mapstructure:"no_ads_in_city"       validate:"required"`
	NoAdsInCountry      string `mapstructure:"no_ads_in_country"    validate:"required"`
	NoAdsInCategory     string `mapstructure:"no_ads_in_category"   validate:"required"`
	Broadened           string `mapstructure:"broadened"            validate:"required"`
	NoMoreAds           string `mapstructure:"no_more_ads"          validate:"required"`
	ShowMorePrompt      string `mapstructure:"show_more_prompt"     validate:"required"`
	ShowMoreButton      string `mapstructure:"show_more_button"     validate:"required"`
	ChooseFilter        string `mapstructure:"choose_filter"        validate:"required"`
	MyAdsEmpty          string `mapstructure:"my_ads_empty"         validate:"required"`
	ChannelPrompt       string `mapstructure:"channel_prompt"       validate:"required"`
	ChannelButton       string `mapstructure:"channel_button"       validate:"required"`
	ChannelUnavailable  string `mapstructure:"channel_unavailable"  validate:"required"`
	Help                string `mapstructure:"help"                 validate:"required"`
	UseMenu             string `mapstructure:"use_menu"             validate:"required"`
	UnknownCommand      string `mapstructure:"unknown_command"      validate:"required"`
	NotAuthorized       string `mapstructure:"not_authorized"       validate:"required"`
	Stats               string `mapstructure:"stats"                validate:"required"`
}
