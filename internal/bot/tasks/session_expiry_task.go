package tasks

import (
	"context"
	"fmt"
	"time"
)

// newSessionExpiryTask deletes conversation sessions idle for longer than
// the configured session TTL. Loading an expired session already yields a
// fresh one; this only reclaims the rows.
func newSessionExpiryTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", SessionExpiryTask)
	return func(ctx context.Context) error {
		ttl := deps.Config.Session.TTL
		if ttl <= 0 {
			log.DebugContext(ctx, "Session expiry disabled, skipping")
			return nil
		}

		cutoff := time.Now().UTC().Add(-ttl)
		removed, err := deps.Store.DeleteStaleSessions(ctx, cutoff)
		if err != nil {
			log.ErrorContext(ctx, "Failed to delete stale sessions", "error", err, "cutoff", cutoff)
			return fmt.Errorf("session expiry failed: %w", err)
		}

		log.InfoContext(ctx, "Expired idle sessions", "removed", removed, "cutoff", cutoff)
		return nil
	}
}
