package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"studyhub/internal/model"
)

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) EnsureSession(ctx context.Context, id, title string, now time.Time) error {
	args := m.Called(ctx, id, title, now)
	return args.Error(0)
}

func (m *MockChatRepository) AddMessages(ctx context.Context, msgs []model.ChatMessage) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockChatRepository) ListMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatMessage), args.Error(1)
}

func (m *MockChatRepository) ListSessions(ctx context.Context) ([]model.ChatSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatSession), args.Error(1)
}

func (m *MockChatRepository) DeleteSession(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
