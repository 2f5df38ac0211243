package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studyhub/internal/chat"
	"studyhub/internal/logging"
	"studyhub/internal/model"
	repoMocks "studyhub/internal/repository/mocks"
)

func TestSessionTitle(t *testing.T) {
	short := "short question"
	assert.Equal(t, short, sessionTitle(short))

	exact := strings.Repeat("a", 50)
	assert.Equal(t, exact, sessionTitle(exact))

	long := strings.Repeat("b", 60)
	assert.Equal(t, strings.Repeat("b", 50)+"...", sessionTitle(long))

	// counts characters, not bytes
	multi := strings.Repeat("é", 51)
	assert.Equal(t, strings.Repeat("é", 50)+"...", sessionTitle(multi))
}

func TestChatService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("new session", func(t *testing.T) {
		mRepo := new(repoMocks.MockChatRepository)
		svc := NewChatService(mRepo, nil, logging.Discard())

		var sessionID string
		mRepo.On("EnsureSession", ctx, mock.MatchedBy(func(id string) bool {
			sessionID = id
			return id != ""
		}), "Can you explain physics?", mock.Anything).Return(nil)
		mRepo.On("AddMessages", ctx, mock.MatchedBy(func(msgs []model.ChatMessage) bool {
			return len(msgs) == 2 &&
				msgs[0].Role == model.RoleUser && msgs[0].Content == "Can you explain physics?" &&
				msgs[1].Role == model.RoleAssistant && msgs[1].Content == chat.PhysicsReply &&
				msgs[0].SessionID == msgs[1].SessionID
		})).Return(nil)

		reply, err := svc.Send(ctx, ChatRequest{Message: "Can you explain physics?"})

		require.NoError(t, err)
		assert.Equal(t, chat.PhysicsReply, reply.Message)
		assert.Equal(t, sessionID, reply.SessionID)
		mRepo.AssertExpectations(t)
	})

	t.Run("existing session", func(t *testing.T) {
		mRepo := new(repoMocks.MockChatRepository)
		svc := NewChatService(mRepo, nil, logging.Discard())

		mRepo.On("EnsureSession", ctx, "sess-1", "hello", mock.Anything).Return(nil)
		mRepo.On("AddMessages", ctx, mock.Anything).Return(nil)

		reply, err := svc.Send(ctx, ChatRequest{Message: "hello", SessionID: "sess-1"})

		require.NoError(t, err)
		assert.Equal(t, "sess-1", reply.SessionID)
		assert.Equal(t, chat.DefaultReply, reply.Message)
	})

	t.Run("blank message", func(t *testing.T) {
		mRepo := new(repoMocks.MockChatRepository)
		svc := NewChatService(mRepo, nil, logging.Discard())

		_, err := svc.Send(ctx, ChatRequest{Message: "  "})

		var verr *ValidationError
		assert.True(t, errors.As(err, &verr))
		mRepo.AssertNotCalled(t, "EnsureSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockChatRepository)
		svc := NewChatService(mRepo, nil, logging.Discard())
		mRepo.On("EnsureSession", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db fail"))

		_, err := svc.Send(ctx, ChatRequest{Message: "math?"})

		assert.EqualError(t, err, "db fail")
		mRepo.AssertNotCalled(t, "AddMessages", mock.Anything, mock.Anything)
	})
}

func TestChatService_History(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockChatRepository)
	svc := NewChatService(mRepo, nil, logging.Discard())

	mRepo.On("ListMessages", ctx, "sess-1").Return([]model.ChatMessage{{ID: 1}, {ID: 2}}, nil)

	msgs, err := svc.History(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	_, err = svc.History(ctx, "")
	assert.ErrorIs(t, err, ErrIDRequired)
}

func TestChatService_Sessions(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockChatRepository)
	svc := NewChatService(mRepo, nil, logging.Discard())

	mRepo.On("ListSessions", ctx).Return([]model.ChatSession{{ID: "b"}, {ID: "a"}}, nil)

	sessions, err := svc.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", sessions[0].ID)
}

func TestChatService_DeleteSession(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockChatRepository)
	svc := NewChatService(mRepo, nil, logging.Discard())

	mRepo.On("DeleteSession", ctx, "sess-1").Return(true, nil)
	mRepo.On("DeleteSession", ctx, "gone").Return(false, nil)

	assert.NoError(t, svc.DeleteSession(ctx, "sess-1"))
	assert.ErrorIs(t, svc.DeleteSession(ctx, "gone"), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteSession(ctx, ""), ErrIDRequired)
}
