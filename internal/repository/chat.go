package repository

import (
	"context"
	"time"

	"studyhub/internal/model"
)

// ChatRepository persists chat sessions and their messages.
type ChatRepository interface {
	// EnsureSession creates the session if missing, otherwise bumps updated_at.
	EnsureSession(ctx context.Context, id, title string, now time.Time) error
	// AddMessages appends messages in the given order within one transaction.
	AddMessages(ctx context.Context, msgs []model.ChatMessage) error
	ListMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	// ListSessions returns sessions, most recently updated first.
	ListSessions(ctx context.Context) ([]model.ChatSession, error)
	// DeleteSession removes the messages and then the session. It reports whether a session existed.
	DeleteSession(ctx context.Context, id string) (bool, error)
}
