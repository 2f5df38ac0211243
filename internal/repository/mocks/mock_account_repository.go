package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studyhub/internal/model"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetOrCreateSettings(ctx context.Context, userID string) (*model.UserSettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserSettings), args.Error(1)
}

func (m *MockAccountRepository) SaveSettings(ctx context.Context, s *model.UserSettings) (*model.UserSettings, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserSettings), args.Error(1)
}

func (m *MockAccountRepository) GetStreak(ctx context.Context, userID string) (*model.StudyStreak, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudyStreak), args.Error(1)
}

func (m *MockAccountRepository) SaveStreak(ctx context.Context, s *model.StudyStreak) (*model.StudyStreak, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudyStreak), args.Error(1)
}
