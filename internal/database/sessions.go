package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/edgard/adsbot/internal/domain/model"
	apperrors "github.com/edgard/adsbot/internal/errors"
)

func (s *sqlxStore) GetSession(ctx context.Context, chatID int64) (*model.Session, error) {
	var session model.Session
	query := `
        SELECT chat_id, state, awaiting_location, category, description, media_kind, media_ref,
               list_offset, list_category, list_broadened, updated_at
        FROM sessions
        WHERE chat_id = ?;
    `
	if err := s.db.GetContext(ctx, &session, query, chatID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.ErrorContext(ctx, "Error getting session", "chat_id", chatID, "error", err)
		return nil, apperrors.NewDatabaseError(fmt.Sprintf("failed to get session for chat %d", chatID), err)
	}
	return &session, nil
}

func (s *sqlxStore) SaveSession(ctx context.Context, session *model.Session) error {
	if session == nil {
		return apperrors.NewValidationError("cannot save nil session", nil)
	}
	if session.ChatID == 0 {
		return apperrors.NewValidationError("session must have a non-zero chat_id", nil)
	}

	session.UpdatedAt = s.now()
	query := `
        INSERT INTO sessions (chat_id, state, awaiting_location, category, description, media_kind, media_ref,
                              list_offset, list_category, list_broadened, updated_at)
        VALUES (:chat_id, :state, :awaiting_location, :category, :description, :media_kind, :media_ref,
                :list_offset, :list_category, :list_broadened, :updated_at)
        ON CONFLICT(chat_id) DO UPDATE SET
            state = excluded.state,
            awaiting_location = excluded.awaiting_location,
            category = excluded.category,
            description = excluded.description,
            media_kind = excluded.media_kind,
            media_ref = excluded.media_ref,
            list_offset = excluded.list_offset,
            list_category = excluded.list_category,
            list_broadened = excluded.list_broadened,
            updated_at = excluded.updated_at;
    `
	if _, err := s.db.NamedExecContext(ctx, query, session); err != nil {
		s.logger.ErrorContext(ctx, "Error saving session", "chat_id", session.ChatID, "state", session.State, "error", err)
		return apperrors.NewDatabaseError(fmt.Sprintf("failed to save session for chat %d", session.ChatID), err)
	}
	return nil
}

func (s *sqlxStore) DeleteSession(ctx context.Context, chatID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE chat_id = ?;`, chatID); err != nil {
		s.logger.ErrorContext(ctx, "Error deleting session", "chat_id", chatID, "error", err)
		return apperrors.NewDatabaseError(fmt.Sprintf("failed to delete session for chat %d", chatID), err)
	}
	return nil
}

func (s *sqlxStore) DeleteStaleSessions(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?;`, before.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting stale sessions", "before", before, "error", err)
		return 0, apperrors.NewDatabaseError("failed to delete stale sessions", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		s.logger.WarnContext(ctx, "Could not read affected rows after deleting stale sessions", "error", err)
		return 0, nil
	}
	return deleted, nil
}
