package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/status-im/market-assistant/models"
)

func (r *PostgresRepository) CreateChatSession(ctx context.Context, session models.ChatSession) error {
	lastActivity := session.LastActivity
	if lastActivity.IsZero() {
		lastActivity = session.CreatedAt
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO chat_sessions (session_id, created_at, last_activity)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO NOTHING`,
		session.SessionID, session.CreatedAt.UTC(), lastActivity.UTC())
	if err != nil {
		return fmt.Errorf("failed to create chat session %s: %w", session.SessionID, err)
	}
	return nil
}

func (r *PostgresRepository) AppendChatMessages(ctx context.Context, sessionID string, messages ...models.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	first := messages[0].Timestamp.UTC()
	last := messages[len(messages)-1].Timestamp.UTC()
	if _, err := tx.Exec(ctx, `
		INSERT INTO chat_sessions (session_id, created_at, last_activity)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE SET
			last_activity = GREATEST(chat_sessions.last_activity, EXCLUDED.last_activity)`,
		sessionID, first, last); err != nil {
		return fmt.Errorf("failed to touch chat session %s: %w", sessionID, err)
	}

	batch := &pgx.Batch{}
	for _, m := range messages {
		batch.Queue(`
			INSERT INTO chat_messages (session_id, message_type, content, created_at)
			VALUES ($1, $2, $3, $4)`,
			sessionID, m.MessageType, m.Content, m.Timestamp.UTC())
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to store chat messages for %s: %w", sessionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit chat messages: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetChatSession(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	session := &models.ChatSession{SessionID: sessionID, Messages: []models.ChatMessage{}}
	err := r.db.QueryRow(ctx, `
		SELECT created_at, last_activity FROM chat_sessions WHERE session_id = $1`, sessionID).
		Scan(&session.CreatedAt, &session.LastActivity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat session %s: %w", sessionID, err)
	}
	session.CreatedAt = session.CreatedAt.UTC()
	session.LastActivity = session.LastActivity.UTC()

	rows, err := r.db.Query(ctx, `
		SELECT id, message_type, content, created_at FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages for %s: %w", sessionID, err)
	}
	defer rows.Close()

	for rows.Next() {
		m := models.ChatMessage{SessionID: sessionID}
		var ts time.Time
		if err := rows.Scan(&m.ID, &m.MessageType, &m.Content, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		m.Timestamp = ts.UTC()
		session.Messages = append(session.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return session, nil
}

func (r *PostgresRepository) ListChatSessions(ctx context.Context, limit int) ([]models.ChatSession, error) {
	rows, err := r.db.Query(ctx, `
		SELECT session_id, created_at, last_activity FROM chat_sessions
		ORDER BY last_activity DESC, session_id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.ChatSession{}
	for rows.Next() {
		var s models.ChatSession
		if err := rows.Scan(&s.SessionID, &s.CreatedAt, &s.LastActivity); err != nil {
			return nil, fmt.Errorf("failed to scan chat session: %w", err)
		}
		s.CreatedAt = s.CreatedAt.UTC()
		s.LastActivity = s.LastActivity.UTC()
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return sessions, nil
}

// DeleteChatSession relies on ON DELETE CASCADE for the messages
func (r *PostgresRepository) DeleteChatSession(ctx context.Context, sessionID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM chat_sessions WHERE session_id = $1`, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to delete chat session %s: %w", sessionID, err)
	}
	return tag.RowsAffected() > 0, nil
}
