package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studyhub/internal/logging"
	"studyhub/internal/model"
	repoMocks "studyhub/internal/repository/mocks"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextStreak(t *testing.T) {
	mar1 := date(2024, 3, 1)

	tests := []struct {
		name        string
		cur         model.StudyStreak
		day         time.Time
		wantCount   int
		wantChanged bool
	}{
		{"first activity", model.StudyStreak{}, mar1, 1, true},
		{"same day", model.StudyStreak{StreakCount: 3, LastStudyDate: &mar1}, mar1.Add(15 * time.Hour), 3, false},
		{"next day", model.StudyStreak{StreakCount: 3, LastStudyDate: &mar1}, date(2024, 3, 2), 4, true},
		{"gap resets", model.StudyStreak{StreakCount: 3, LastStudyDate: &mar1}, date(2024, 3, 4), 1, true},
		{"earlier day ignored", model.StudyStreak{StreakCount: 3, LastStudyDate: &mar1}, date(2024, 2, 28), 3, false},
		{"month boundary", model.StudyStreak{StreakCount: 1, LastStudyDate: ptrTime(date(2024, 2, 29))}, mar1, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := nextStreak(tt.cur, tt.day)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantCount, got.StreakCount)
			if changed {
				require.NotNil(t, got.LastStudyDate)
				assert.True(t, truncateDay(tt.day).Equal(*got.LastStudyDate))
			}
		})
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestAccountService_RecordStudy(t *testing.T) {
	ctx := context.Background()
	mar1 := date(2024, 3, 1)

	t.Run("extends streak", func(t *testing.T) {
		mRepo := new(repoMocks.MockAccountRepository)
		svc := NewAccountService(mRepo, logging.Discard())

		mRepo.On("GetStreak", ctx, "u1").Return(&model.StudyStreak{UserID: "u1", StreakCount: 2, LastStudyDate: &mar1}, nil)
		mRepo.On("SaveStreak", ctx, mock.MatchedBy(func(s *model.StudyStreak) bool {
			return s.UserID == "u1" && s.StreakCount == 3 && s.LastStudyDate.Equal(date(2024, 3, 2))
		})).Return(&model.StudyStreak{UserID: "u1", StreakCount: 3}, nil)

		s, err := svc.RecordStudy(ctx, "u1", date(2024, 3, 2))

		require.NoError(t, err)
		assert.Equal(t, 3, s.StreakCount)
		mRepo.AssertExpectations(t)
	})

	t.Run("same day does not write", func(t *testing.T) {
		mRepo := new(repoMocks.MockAccountRepository)
		svc := NewAccountService(mRepo, logging.Discard())

		mRepo.On("GetStreak", ctx, "u1").Return(&model.StudyStreak{UserID: "u1", StreakCount: 2, LastStudyDate: &mar1}, nil)

		s, err := svc.RecordStudy(ctx, "u1", mar1)

		require.NoError(t, err)
		assert.Equal(t, 2, s.StreakCount)
		mRepo.AssertNotCalled(t, "SaveStreak", mock.Anything, mock.Anything)
	})

	t.Run("zero day uses clock", func(t *testing.T) {
		mRepo := new(repoMocks.MockAccountRepository)
		svc := NewAccountService(mRepo, logging.Discard()).(*accountService)
		svc.now = func() time.Time { return date(2024, 5, 5).Add(10 * time.Hour) }

		mRepo.On("GetStreak", ctx, "u2").Return(&model.StudyStreak{UserID: "u2"}, nil)
		mRepo.On("SaveStreak", ctx, mock.MatchedBy(func(s *model.StudyStreak) bool {
			return s.StreakCount == 1 && s.LastStudyDate.Equal(date(2024, 5, 5))
		})).Return(&model.StudyStreak{UserID: "u2", StreakCount: 1}, nil)

		_, err := svc.RecordStudy(ctx, "u2", time.Time{})
		require.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("missing user id", func(t *testing.T) {
		svc := NewAccountService(new(repoMocks.MockAccountRepository), logging.Discard())
		_, err := svc.RecordStudy(ctx, "", mar1)
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestAccountService_UpdateSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		mRepo := new(repoMocks.MockAccountRepository)
		svc := NewAccountService(mRepo, logging.Discard())

		mRepo.On("GetOrCreateSettings", ctx, "u1").Return(&model.UserSettings{UserID: "u1", NotificationsEnabled: true, Theme: "light"}, nil)
		mRepo.On("SaveSettings", ctx, mock.MatchedBy(func(s *model.UserSettings) bool {
			return s.Theme == "dark" && s.NotificationsEnabled && !s.UpdatedAt.IsZero()
		})).Return(&model.UserSettings{UserID: "u1", NotificationsEnabled: true, Theme: "dark"}, nil)

		theme := "dark"
		s, err := svc.UpdateSettings(ctx, "u1", SettingsPatch{Theme: &theme})

		require.NoError(t, err)
		assert.Equal(t, "dark", s.Theme)
		mRepo.AssertExpectations(t)
	})

	t.Run("invalid theme", func(t *testing.T) {
		mRepo := new(repoMocks.MockAccountRepository)
		svc := NewAccountService(mRepo, logging.Discard())

		theme := "blue"
		_, err := svc.UpdateSettings(ctx, "u1", SettingsPatch{Theme: &theme})

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields["theme"], "light dark")
		mRepo.AssertNotCalled(t, "GetOrCreateSettings", mock.Anything, mock.Anything)
	})
}

func TestAccountService_Settings(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockAccountRepository)
	svc := NewAccountService(mRepo, logging.Discard())

	mRepo.On("GetOrCreateSettings", ctx, "u1").Return(&model.UserSettings{UserID: "u1", NotificationsEnabled: true, Theme: "light"}, nil)

	s, err := svc.Settings(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, s.NotificationsEnabled)
	assert.Equal(t, "light", s.Theme)

	_, err = svc.Settings(ctx, " ")
	assert.ErrorIs(t, err, ErrIDRequired)
}
