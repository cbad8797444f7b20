package interfaces

import (
	"context"

	"github.com/status-im/market-assistant/models"
)

//go:generate mockgen -destination=mocks/chat_repository.go . ChatRepository

// ChatRepository persists chat sessions and their messages
type ChatRepository interface {
	// CreateChatSession inserts an empty session. Creating an existing session is a no-op.
	CreateChatSession(ctx context.Context, session models.ChatSession) error

	// AppendChatMessages stores messages in order, creating the session when missing,
	// and moves its last activity to the newest message
	AppendChatMessages(ctx context.Context, sessionID string, messages ...models.ChatMessage) error

	// GetChatSession returns the session with its messages oldest first, or nil, nil when unknown
	GetChatSession(ctx context.Context, sessionID string) (*models.ChatSession, error)

	// ListChatSessions returns at most limit sessions, most recently active first, without messages
	ListChatSessions(ctx context.Context, limit int) ([]models.ChatSession, error)

	// DeleteChatSession removes the session and its messages. It reports whether the session existed.
	DeleteChatSession(ctx context.Context, sessionID string) (bool, error)
}
