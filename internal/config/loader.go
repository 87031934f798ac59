package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/edgard/adsbot/internal/errors"
)

// LoadConfig reads configuration in this order of precedence:
//  1. BOT_* environment variables (e.g. BOT_TELEGRAM_TOKEN)
//  2. the YAML file at path, if it exists
//  3. built-in defaults
//
// A missing file is not an error; a missing required value is.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, apperrors.NewConfigError("failed to read config file "+path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
