package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"studyhub/internal/model"
	"studyhub/internal/service"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Settings(ctx context.Context, userID string) (*model.UserSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserSettings), args.Error(1)
}

func (m *MockAccountService) UpdateSettings(ctx context.Context, userID string, patch service.SettingsPatch) (*model.UserSettings, error) {
	args := m.Called(ctx, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserSettings), args.Error(1)
}

func (m *MockAccountService) Streak(ctx context.Context, userID string) (*model.StudyStreak, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudyStreak), args.Error(1)
}

func (m *MockAccountService) RecordStudy(ctx context.Context, userID string, day time.Time) (*model.StudyStreak, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudyStreak), args.Error(1)
}
