package postgres

import (
	"context"
	"database/sql"
	"time"

	"studyhub/internal/model"
	"studyhub/internal/repository"
)

// ChatPostgres is a PostgreSQL implementation of repository.ChatRepository.
type ChatPostgres struct {
	db *sql.DB
}

func NewChatPostgres(db *sql.DB) *ChatPostgres {
	return &ChatPostgres{db: db}
}

var _ repository.ChatRepository = (*ChatPostgres)(nil)

func (r *ChatPostgres) EnsureSession(ctx context.Context, id, title string, now time.Time) error {
	const q = `
		INSERT INTO chat_sessions (id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (id) DO UPDATE SET updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, id, title, now)
	return err
}

func (r *ChatPostgres) AddMessages(ctx context.Context, msgs []model.ChatMessage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `INSERT INTO chat_messages (session_id, role, content, created_at) VALUES ($1, $2, $3, $4)`
	for _, m := range msgs {
		if _, err := tx.ExecContext(ctx, q, m.SessionID, string(m.Role), m.Content, m.CreatedAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ChatPostgres) ListMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	const q = `
		SELECT id, session_id, role, content, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ChatMessage, 0)
	for rows.Next() {
		var (
			m    model.ChatMessage
			role string
		)
		if err := rows.Scan(&m.ID, &m.SessionID, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Role = model.MessageRole(role)
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *ChatPostgres) ListSessions(ctx context.Context) ([]model.ChatSession, error) {
	const q = `SELECT id, title, created_at, updated_at FROM chat_sessions ORDER BY updated_at DESC, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ChatSession, 0)
	for rows.Next() {
		var s model.ChatSession
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *ChatPostgres) DeleteSession(ctx context.Context, id string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_id = $1`, id); err != nil {
		return false, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM chat_sessions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		// Orphan messages are still removed; nothing to report as deleted.
		return false, tx.Commit()
	}
	return true, tx.Commit()
}
