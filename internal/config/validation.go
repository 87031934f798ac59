package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // containers often ship without zoneinfo

	"github.com/go-playground/validator/v10"

	apperrors "github.com/edgard/adsbot/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct constraints and the rules that span several
// fields, then resolves the configured timezone.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return apperrors.NewConfigError("invalid configuration: "+strings.Join(fields, ", "), err)
		}
		return apperrors.NewConfigError("invalid configuration", err)
	}

	if c.Telegram.Mode == TelegramModeWebhook && c.Telegram.WebhookURL == "" {
		return apperrors.NewConfigError("telegram.webhook_url is required in webhook mode", nil)
	}

	for name, task := range c.Scheduler.Tasks {
		if task.Enabled && strings.TrimSpace(task.Schedule) == "" {
			return apperrors.NewConfigError(fmt.Sprintf("scheduler task %q is enabled without a schedule", name), nil)
		}
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return apperrors.NewConfigError("invalid timezone "+c.Timezone, err)
	}
	c.location = loc

	return nil
}
