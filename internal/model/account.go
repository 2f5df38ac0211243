package model

import "time"

// UserSettings holds per-user preferences.
type UserSettings struct {
	UserID               string    `json:"user_id"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	Theme                string    `json:"theme"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// StudyStreak counts consecutive days with recorded study activity.
type StudyStreak struct {
	UserID        string     `json:"user_id"`
	StreakCount   int        `json:"streak_count"`
	LastStudyDate *time.Time `json:"last_study_date,omitempty"`
}
