package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"studyhub/internal/chat"
	"studyhub/internal/logging"
	"studyhub/internal/model"
	"studyhub/internal/repository"
)

const sessionTitleLen = 50

// ChatRequest is a user message with an optional session to continue.
type ChatRequest struct {
	Message   string `json:"message" validate:"required,notblank,max=4000"`
	SessionID string `json:"session_id" validate:"omitempty,max=255"`
}

// ChatReply is the assistant's answer and the session it belongs to.
type ChatReply struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// ChatService answers study questions and keeps the conversation history.
type ChatService interface {
	Send(ctx context.Context, req ChatRequest) (*ChatReply, error)
	History(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	Sessions(ctx context.Context) ([]model.ChatSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type chatService struct {
	repo      repository.ChatRepository
	responder *chat.Responder
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewChatService(repo repository.ChatRepository, responder *chat.Responder, log logrus.FieldLogger) ChatService {
	if responder == nil {
		responder = chat.NewResponder(nil, "")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &chatService{
		repo:      repo,
		responder: responder,
		log:       log.WithField("component", "chat_service"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// sessionTitle keeps the first 50 characters of the opening message.
func sessionTitle(msg string) string {
	if utf8.RuneCountInString(msg) <= sessionTitleLen {
		return msg
	}
	return string([]rune(msg)[:sessionTitleLen]) + "..."
}

func (s *chatService) Send(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	reply := s.responder.Respond(req.Message)
	now := s.now()

	if err := s.repo.EnsureSession(ctx, sessionID, sessionTitle(req.Message), now); err != nil {
		return nil, err
	}
	err := s.repo.AddMessages(ctx, []model.ChatMessage{
		{SessionID: sessionID, Role: model.RoleUser, Content: req.Message, CreatedAt: now},
		{SessionID: sessionID, Role: model.RoleAssistant, Content: reply, CreatedAt: now},
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx, s.log).WithFields(logrus.Fields{"event": "chat_reply", "session_id": sessionID}).Debug("chat reply stored")
	return &ChatReply{Message: reply, SessionID: sessionID}, nil
}

func (s *chatService) History(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	if sessionID == "" {
		return nil, ErrIDRequired
	}
	return s.repo.ListMessages(ctx, sessionID)
}

func (s *chatService) Sessions(ctx context.Context) ([]model.ChatSession, error) {
	return s.repo.ListSessions(ctx)
}

func (s *chatService) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrIDRequired
	}
	ok, err := s.repo.DeleteSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
