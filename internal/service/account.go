package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"studyhub/internal/logging"
	"studyhub/internal/model"
	"studyhub/internal/repository"
)

// SettingsPatch carries a partial settings update.
type SettingsPatch struct {
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	Theme                *string `json:"theme" validate:"omitempty,oneof=light dark"`
}

// AccountService exposes per-user settings and the study streak.
type AccountService interface {
	Settings(ctx context.Context, userID string) (*model.UserSettings, error)
	UpdateSettings(ctx context.Context, userID string, patch SettingsPatch) (*model.UserSettings, error)
	Streak(ctx context.Context, userID string) (*model.StudyStreak, error)
	// RecordStudy registers study activity on day. Only the calendar date of day is used.
	RecordStudy(ctx context.Context, userID string, day time.Time) (*model.StudyStreak, error)
}

type accountService struct {
	repo repository.AccountRepository
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewAccountService(repo repository.AccountRepository, log logrus.FieldLogger) AccountService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &accountService{
		repo: repo,
		log:  log.WithField("component", "account_service"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *accountService) Settings(ctx context.Context, userID string) (*model.UserSettings, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrIDRequired
	}
	return s.repo.GetOrCreateSettings(ctx, userID)
}

func (s *accountService) UpdateSettings(ctx context.Context, userID string, patch SettingsPatch) (*model.UserSettings, error) {
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	cur, err := s.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patch.NotificationsEnabled != nil {
		cur.NotificationsEnabled = *patch.NotificationsEnabled
	}
	if patch.Theme != nil {
		cur.Theme = *patch.Theme
	}
	cur.UpdatedAt = s.now()
	return s.repo.SaveSettings(ctx, cur)
}

func (s *accountService) Streak(ctx context.Context, userID string) (*model.StudyStreak, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrIDRequired
	}
	return s.repo.GetStreak(ctx, userID)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// nextStreak applies the streak rule: same day keeps the count, the following
// day extends it, anything else starts over at one. Activity dated before the
// last recorded day is ignored.
func nextStreak(cur model.StudyStreak, day time.Time) (model.StudyStreak, bool) {
	day = truncateDay(day)
	if cur.LastStudyDate == nil {
		cur.StreakCount = 1
		cur.LastStudyDate = &day
		return cur, true
	}
	last := truncateDay(*cur.LastStudyDate)
	switch {
	case !day.After(last):
		return cur, false
	case day.Equal(last.AddDate(0, 0, 1)):
		cur.StreakCount++
	default:
		cur.StreakCount = 1
	}
	cur.LastStudyDate = &day
	return cur, true
}

func (s *accountService) RecordStudy(ctx context.Context, userID string, day time.Time) (*model.StudyStreak, error) {
	cur, err := s.Streak(ctx, userID)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = s.now()
	}
	next, changed := nextStreak(*cur, day)
	if !changed {
		return cur, nil
	}
	saved, err := s.repo.SaveStreak(ctx, &next)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx, s.log).WithFields(logrus.Fields{
		"event":        "streak_updated",
		"user_id":      userID,
		"streak_count": saved.StreakCount,
	}).Info("study streak updated")
	return saved, nil
}
