package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/adsbot/internal/bot/tasks"
	"github.com/edgard/adsbot/internal/config"
)

func TestSchedulerSchedulesEnabledTasks(t *testing.T) {
	t.Parallel()

	noop := func(context.Context) error { return nil }
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"enabled":  {Enabled: true, Schedule: "0 */5 * * * *"},
		"disabled": {Enabled: false, Schedule: "0 */5 * * * *"},
		"unknown":  {Enabled: true, Schedule: "0 */5 * * * *"},
		"broken":   {Enabled: true, Schedule: "not a cron"},
	}}
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"enabled":  noop,
		"disabled": noop,
		"broken":   noop,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewScheduler(logger, cfg, time.UTC, taskMap)
	require.NoError(t, err)

	require.NoError(t, s.Start())
	assert.Error(t, s.Start(), "second start must fail")
	assert.Equal(t, []string{"enabled"}, s.Jobs())

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
}

func TestSchedulerWithoutTasks(t *testing.T) {
	t.Parallel()

	s, err := NewScheduler(nil, &config.SchedulerConfig{}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	assert.Empty(t, s.Jobs())
	require.NoError(t, s.Stop())
}
