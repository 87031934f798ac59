package database

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/adsbot/internal/domain/model"
	apperrors "github.com/edgard/adsbot/internal/errors"
)

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// GetUser returns the user or nil, nil if it does not exist.
	GetUser(ctx context.Context, userID int64) (*model.User, error)
	// EnsureUser creates the user with an unknown location if missing and returns it.
	EnsureUser(ctx context.Context, userID int64) (*model.User, error)
	// SetUserLocation stores loc on the user, creating the user if needed.
	SetUserLocation(ctx context.Context, userID int64, loc model.Location) error
	// IncrementAdCount atomically adds one to the user's ad counter.
	IncrementAdCount(ctx context.Context, userID int64) error
	// GetUsersByIDs resolves many users in one query, keyed by id.
	GetUsersByIDs(ctx context.Context, userIDs []int64) (map[int64]*model.User, error)

	// CreateAd assigns an id and creation time and persists ad.
	CreateAd(ctx context.Context, ad *model.Ad) error
	// ListAds returns ads newest first.
	ListAds(ctx context.Context, filter AdFilter) ([]model.Ad, error)
	// ListAdsByOwner returns up to limit of the owner's ads, newest first.
	ListAdsByOwner(ctx context.Context, ownerID int64, limit int) ([]model.Ad, error)

	// GetSession returns the stored session or nil, nil.
	GetSession(ctx context.Context, chatID int64) (*model.Session, error)
	// SaveSession upserts the session and stamps UpdatedAt.
	SaveSession(ctx context.Context, session *model.Session) error
	DeleteSession(ctx context.Context, chatID int64) error
	// DeleteStaleSessions removes sessions not updated since before.
	DeleteStaleSessions(ctx context.Context, before time.Time) (int64, error)

	GetStats(ctx context.Context) (*Stats, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return apperrors.NewDatabaseError("database ping failed", err)
	}
	return nil
}

func (s *sqlxStore) GetStats(ctx context.Context) (*Stats, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM users) AS users,
            (SELECT COUNT(*) FROM users WHERE city != ? OR country != ?) AS located_users,
            (SELECT COUNT(*) FROM ads) AS ads;
    `
	var stats Stats
	if err := s.db.GetContext(ctx, &stats, query, model.Unspecified, model.Unspecified); err != nil {
		s.logger.ErrorContext(ctx, "Failed to collect stats", "error", err)
		return nil, apperrors.NewDatabaseError("failed to collect stats", err)
	}
	return &stats, nil
}

// RunSQLMaintenance reclaims free pages and refreshes planner statistics.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Running SQL maintenance (VACUUM, ANALYZE)...")
	for _, stmt := range []string{"VACUUM;", "ANALYZE;"} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			s.logger.ErrorContext(ctx, "SQL maintenance statement failed", "statement", stmt, "error", err)
			return apperrors.NewDatabaseError("failed to run "+stmt, err)
		}
	}
	s.logger.InfoContext(ctx, "SQL maintenance completed successfully")
	return nil
}
