package models

import "time"

const (
	ChatMessageUser      = "user"
	ChatMessageAssistant = "assistant"
)

// ChatMessage is one side of a chat exchange
type ChatMessage struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"-"`
	MessageType string    `json:"message_type"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
}

// ChatSession groups the messages of one conversation.
// Messages is only filled when a single session is loaded.
type ChatSession struct {
	SessionID    string        `json:"session_id"`
	CreatedAt    time.Time     `json:"created_at"`
	LastActivity time.Time     `json:"last_activity"`
	Messages     []ChatMessage `json:"messages,omitempty"`
}
