package postgres

import (
	"context"
	"database/sql"
	"errors"

	"studyhub/internal/model"
	"studyhub/internal/repository"
)

// AccountPostgres is a PostgreSQL implementation of repository.AccountRepository.
type AccountPostgres struct {
	db *sql.DB
}

func NewAccountPostgres(db *sql.DB) *AccountPostgres {
	return &AccountPostgres{db: db}
}

var _ repository.AccountRepository = (*AccountPostgres)(nil)

// GetOrCreateSettings relies on a no-op upsert so the row is returned whether it was inserted or already present.
func (r *AccountPostgres) GetOrCreateSettings(ctx context.Context, userID string) (*model.UserSettings, error) {
	const q = `
		INSERT INTO user_settings (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, notifications_enabled, theme, updated_at`
	var s model.UserSettings
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&s.UserID, &s.NotificationsEnabled, &s.Theme, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AccountPostgres) SaveSettings(ctx context.Context, in *model.UserSettings) (*model.UserSettings, error) {
	const q = `
		INSERT INTO user_settings (user_id, notifications_enabled, theme, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET notifications_enabled = EXCLUDED.notifications_enabled,
		    theme = EXCLUDED.theme,
		    updated_at = EXCLUDED.updated_at
		RETURNING user_id, notifications_enabled, theme, updated_at`
	var s model.UserSettings
	if err := r.db.QueryRowContext(ctx, q, in.UserID, in.NotificationsEnabled, in.Theme, in.UpdatedAt).
		Scan(&s.UserID, &s.NotificationsEnabled, &s.Theme, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AccountPostgres) GetStreak(ctx context.Context, userID string) (*model.StudyStreak, error) {
	const q = `SELECT user_id, streak_count, last_study_date FROM study_streaks WHERE user_id = $1`
	s, err := scanStreak(r.db.QueryRowContext(ctx, q, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return &model.StudyStreak{UserID: userID}, nil
	}
	return s, err
}

func (r *AccountPostgres) SaveStreak(ctx context.Context, in *model.StudyStreak) (*model.StudyStreak, error) {
	const q = `
		INSERT INTO study_streaks (user_id, streak_count, last_study_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET streak_count = EXCLUDED.streak_count, last_study_date = EXCLUDED.last_study_date
		RETURNING user_id, streak_count, last_study_date`
	var last sql.NullTime
	if in.LastStudyDate != nil {
		last = sql.NullTime{Time: *in.LastStudyDate, Valid: true}
	}
	return scanStreak(r.db.QueryRowContext(ctx, q, in.UserID, in.StreakCount, last))
}

func scanStreak(row rowScanner) (*model.StudyStreak, error) {
	var (
		s    model.StudyStreak
		last sql.NullTime
	)
	if err := row.Scan(&s.UserID, &s.StreakCount, &last); err != nil {
		return nil, err
	}
	if last.Valid {
		t := last.Time
		s.LastStudyDate = &t
	}
	return &s, nil
}
