package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/edgard/adsbot/internal/domain/model"
	apperrors "github.com/edgard/adsbot/internal/errors"
)

const (
	adColumns = `id, owner_id, category, description, media_kind, media_ref, country, city, created_at`

	maxAdsPerQuery = 1000
)

// CreateAd inserts a new ad. ID and CreatedAt are assigned here.
func (s *sqlxStore) CreateAd(ctx context.Context, ad *model.Ad) error {
	if ad == nil {
		return apperrors.NewValidationError("cannot save nil ad", nil)
	}
	if ad.OwnerID == 0 {
		return apperrors.NewValidationError("ad must have a non-zero owner_id", nil)
	}
	if !ad.Category.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown ad category %q", ad.Category), nil)
	}
	if strings.TrimSpace(ad.Description) == "" {
		return apperrors.NewValidationError("ad must have a description", nil)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate ad id: %w", err)
	}
	ad.ID = id.String()
	ad.CreatedAt = s.now()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for saving ad", "owner_id", ad.OwnerID, "error", err)
		return apperrors.NewDatabaseError("failed to begin transaction", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
			}
		}
	}()

	query := `
        INSERT INTO ads (` + adColumns + `)
        VALUES (:id, :owner_id, :category, :description, :media_kind, :media_ref, :country, :city, :created_at);
    `
	result, err := tx.NamedExecContext(ctx, query, ad)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving ad", "owner_id", ad.OwnerID, "error", err)
		return apperrors.NewDatabaseError(fmt.Sprintf("failed to save ad for user %d", ad.OwnerID), err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected != 1 {
		s.logger.WarnContext(ctx, "Unexpected number of rows affected when saving ad",
			"owner_id", ad.OwnerID, "affected", affected)
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction", "owner_id", ad.OwnerID, "error", err)
		return apperrors.NewDatabaseError("failed to commit ad", err)
	}
	tx = nil

	s.logger.DebugContext(ctx, "Ad saved successfully", "ad_id", ad.ID, "owner_id", ad.OwnerID, "category", ad.Category)
	return nil
}

func (s *sqlxStore) ListAds(ctx context.Context, filter AdFilter) ([]model.Ad, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	limit := filter.Limit
	if limit <= 0 || limit > maxAdsPerQuery {
		limit = maxAdsPerQuery
	}
	offset := max(filter.Offset, 0)

	var (
		where string
		args  []any
	)
	if filter.Category != "" {
		where = `WHERE category = ?`
		args = append(args, string(filter.Category))
	}
	args = append(args, limit, offset)

	query := `SELECT ` + adColumns + ` FROM ads ` + where + `
        ORDER BY created_at DESC, id DESC
        LIMIT ? OFFSET ?;`

	var ads []model.Ad
	if err := s.db.SelectContext(ctx, &ads, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Error listing ads", "category", filter.Category, "offset", offset, "error", err)
		return nil, apperrors.NewDatabaseError("failed to list ads", err)
	}
	return ads, nil
}

func (s *sqlxStore) ListAdsByOwner(ctx context.Context, ownerID int64, limit int) ([]model.Ad, error) {
	if limit <= 0 || limit > maxAdsPerQuery {
		limit = maxAdsPerQuery
	}

	query := `SELECT ` + adColumns + ` FROM ads WHERE owner_id = ?
        ORDER BY created_at DESC, id DESC
        LIMIT ?;`

	var ads []model.Ad
	if err := s.db.SelectContext(ctx, &ads, query, ownerID, limit); err != nil {
		s.logger.ErrorContext(ctx, "Error listing ads by owner", "owner_id", ownerID, "error", err)
		return nil, apperrors.NewDatabaseError(fmt.Sprintf("failed to list ads of user %d", ownerID), err)
	}
	return ads, nil
}
