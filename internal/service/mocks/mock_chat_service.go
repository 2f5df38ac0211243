package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"studyhub/internal/model"
	"studyhub/internal/service"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Send(ctx context.Context, req service.ChatRequest) (*service.ChatReply, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatReply), args.Error(1)
}

func (m *MockChatService) History(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatMessage), args.Error(1)
}

func (m *MockChatService) Sessions(ctx context.Context) ([]model.ChatSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChatSession), args.Error(1)
}

func (m *MockChatService) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
