package repository

import (
	"context"

	"studyhub/internal/model"
)

// AccountRepository persists per-user settings and study streaks.
type AccountRepository interface {
	// GetOrCreateSettings returns the user's settings, inserting defaults when absent.
	GetOrCreateSettings(ctx context.Context, userID string) (*model.UserSettings, error)
	SaveSettings(ctx context.Context, s *model.UserSettings) (*model.UserSettings, error)
	// GetStreak returns the user's streak or a zero streak when none was recorded.
	GetStreak(ctx context.Context, userID string) (*model.StudyStreak, error)
	SaveStreak(ctx context.Context, s *model.StudyStreak) (*model.StudyStreak, error)
}
