package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/status-im/market-assistant/models"
)

func (r *SQLiteRepository) CreateChatSession(ctx context.Context, session models.ChatSession) error {
	lastActivity := session.LastActivity
	if lastActivity.IsZero() {
		lastActivity = session.CreatedAt
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_sessions (session_id, created_at, last_activity)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO NOTHING`,
		session.SessionID, session.CreatedAt.UTC().UnixMilli(), lastActivity.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to create chat session %s: %w", session.SessionID, err)
	}
	return nil
}

func (r *SQLiteRepository) AppendChatMessages(ctx context.Context, sessionID string, messages ...models.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	first := messages[0].Timestamp.UTC().UnixMilli()
	last := messages[len(messages)-1].Timestamp.UTC().UnixMilli()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO chat_sessions (session_id, created_at, last_activity)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			last_activity = MAX(chat_sessions.last_activity, excluded.last_activity)`,
		sessionID, first, last); err != nil {
		return fmt.Errorf("failed to touch chat session %s: %w", sessionID, err)
	}

	for _, m := range messages {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chat_messages (session_id, message_type, content, created_at)
			VALUES (?, ?, ?, ?)`,
			sessionID, m.MessageType, m.Content, m.Timestamp.UTC().UnixMilli()); err != nil {
			return fmt.Errorf("failed to store chat message for %s: %w", sessionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chat messages: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetChatSession(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	var createdAt, lastActivity int64
	err := r.db.QueryRowContext(ctx, `
		SELECT created_at, last_activity FROM chat_sessions WHERE session_id = ?`, sessionID).
		Scan(&createdAt, &lastActivity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat session %s: %w", sessionID, err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, message_type, content, created_at FROM chat_messages
		WHERE session_id = ?
		ORDER BY created_at ASC, id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages for %s: %w", sessionID, err)
	}
	defer rows.Close()

	session := &models.ChatSession{
		SessionID:    sessionID,
		CreatedAt:    time.UnixMilli(createdAt).UTC(),
		LastActivity: time.UnixMilli(lastActivity).UTC(),
		Messages:     []models.ChatMessage{},
	}
	for rows.Next() {
		m := models.ChatMessage{SessionID: sessionID}
		var ts int64
		if err := rows.Scan(&m.ID, &m.MessageType, &m.Content, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		m.Timestamp = time.UnixMilli(ts).UTC()
		session.Messages = append(session.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return session, nil
}

func (r *SQLiteRepository) ListChatSessions(ctx context.Context, limit int) ([]models.ChatSession, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT session_id, created_at, last_activity FROM chat_sessions
		ORDER BY last_activity DESC, session_id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.ChatSession{}
	for rows.Next() {
		var s models.ChatSession
		var createdAt, lastActivity int64
		if err := rows.Scan(&s.SessionID, &createdAt, &lastActivity); err != nil {
			return nil, fmt.Errorf("failed to scan chat session: %w", err)
		}
		s.CreatedAt = time.UnixMilli(createdAt).UTC()
		s.LastActivity = time.UnixMilli(lastActivity).UTC()
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return sessions, nil
}

// DeleteChatSession removes messages explicitly since SQLite does not enforce foreign keys by default
func (r *SQLiteRepository) DeleteChatSession(ctx context.Context, sessionID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_id = ?`, sessionID); err != nil {
		return false, fmt.Errorf("failed to delete chat messages for %s: %w", sessionID, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM chat_sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to delete chat session %s: %w", sessionID, err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit chat session delete: %w", err)
	}
	return removed > 0, nil
}
