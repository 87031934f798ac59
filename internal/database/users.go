package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/adsbot/internal/domain/model"
	apperrors "github.com/edgard/adsbot/internal/errors"
)

const userColumns = `user_id, ad_count, has_subscription, country, city, created_at, updated_at`

// GetUser retrieves a user by id. Returns nil, nil if not found.
func (s *sqlxStore) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = ?;`
	if err := s.db.GetContext(ctx, &user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.ErrorContext(ctx, "Error getting user", "user_id", userID, "error", err)
		return nil, apperrors.NewDatabaseError(fmt.Sprintf("failed to get user %d", userID), err)
	}
	return &user, nil
}

func (s *sqlxStore) EnsureUser(ctx context.Context, userID int64) (*model.User, error) {
	if userID == 0 {
		return nil, apperrors.NewValidationError("user_id cannot be zero", nil)
	}

	now := s.now()
	query := `
        INSERT INTO users (user_id, ad_count, has_subscription, country, city, created_at, updated_at)
        VALUES (?, 0, 0, ?, ?, ?, ?)
        ON CONFLICT(user_id) DO NOTHING;
    `
	if _, err := s.db.ExecContext(ctx, query, userID, model.Unspecified, model.Unspecified, now, now); err != nil {
		s.logger.ErrorContext(ctx, "Error ensuring user", "user_id", userID, "error", err)
		return nil, apperrors.NewDatabaseError(fmt.Sprintf("failed to create user %d", userID), err)
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewDatabaseError(fmt.Sprintf("user %d missing after insert", userID), nil)
	}
	return user, nil
}

func (s *sqlxStore) SetUserLocation(ctx context.Context, userID int64, loc model.Location) error {
	if userID == 0 {
		return apperrors.NewValidationError("user_id cannot be zero", nil)
	}
	if !loc.Known() {
		return apperrors.NewValidationError("location must have a country or a city", nil)
	}

	now := s.now()
	query := `
        INSERT INTO users (user_id, ad_count, has_subscription, country, city, created_at, updated_at)
        VALUES (?, 0, 0, ?, ?, ?, ?)
        ON CONFLICT(user_id) DO UPDATE SET
            country = excluded.country,
            city = excluded.city,
            updated_at = excluded.updated_at;
    `
	if _, err := s.db.ExecContext(ctx, query, userID, loc.Country, loc.City, now, now); err != nil {
		s.logger.ErrorContext(ctx, "Error saving user location", "user_id", userID, "error", err)
		return apperrors.NewDatabaseError(fmt.Sprintf("failed to save location for user %d", userID), err)
	}

	s.logger.DebugContext(ctx, "User location saved", "user_id", userID, "country", loc.Country, "city", loc.City)
	return nil
}

// IncrementAdCount bumps the counter in a single statement so concurrent
// publishes by the same user cannot lose an update.
func (s *sqlxStore) IncrementAdCount(ctx context.Context, userID int64) error {
	now := s.now()
	query := `
        INSERT INTO users (user_id, ad_count, has_subscription, country, city, created_at, updated_at)
        VALUES (?, 1, 0, ?, ?, ?, ?)
        ON CONFLICT(user_id) DO UPDATE SET
            ad_count = users.ad_count + 1,
            updated_at = excluded.updated_at;
    `
	if _, err := s.db.ExecContext(ctx, query, userID, model.Unspecified, model.Unspecified, now, now); err != nil {
		s.logger.ErrorContext(ctx, "Error incrementing ad count", "user_id", userID, "error", err)
		return apperrors.NewDatabaseError(fmt.Sprintf("failed to increment ad count for user %d", userID), err)
	}
	return nil
}

// GetUsersByIDs loads every listed user with one IN query. Unknown ids are
// absent from the result.
func (s *sqlxStore) GetUsersByIDs(ctx context.Context, userIDs []int64) (map[int64]*model.User, error) {
	result := make(map[int64]*model.User, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE user_id IN (?);`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build users lookup query: %w", err)
	}

	var users []model.User
	if err := s.db.SelectContext(ctx, &users, s.db.Rebind(query), args...); err != nil {
		s.logger.ErrorContext(ctx, "Error getting users by ids", "count", len(userIDs), "error", err)
		return nil, apperrors.NewDatabaseError("failed to get users by ids", err)
	}

	for i := range users {
		result[users[i].UserID] = &users[i]
	}
	return result, nil
}
