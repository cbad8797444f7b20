package e2etest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatSession struct {
	SessionID string `json:"session_id"`
	Messages  []struct {
		MessageType string `json:"message_type"`
		Content     string `json:"content"`
	} `json:"messages"`
}

// TestChatSessionHistory records chat exchanges and serves them back per session
func TestChatSessionHistory(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	var created chatSession
	status := postJSON(t, env, "/api/v1/chat/sessions", "", &created)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, created.SessionID)
	assert.Empty(t, created.Messages)

	var answer map[string]interface{}
	status = postJSON(t, env, "/api/v1/chat", `{"message":"hello","session_id":"`+created.SessionID+`"}`, &answer)
	require.Equal(t, http.StatusOK, status)
	status = postJSON(t, env, "/api/v1/chat", `{"message":"help","session_id":"`+created.SessionID+`"}`, &answer)
	require.Equal(t, http.StatusOK, status)

	var session chatSession
	status = getJSON(t, env, "/api/v1/chat/sessions/"+created.SessionID, &session)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, session.Messages, 4)
	assert.Equal(t, "user", session.Messages[0].MessageType)
	assert.Equal(t, "hello", session.Messages[0].Content)
	assert.Equal(t, "assistant", session.Messages[1].MessageType)
	assert.Equal(t, "help", session.Messages[2].Content)

	var sessions []chatSession
	status = getJSON(t, env, "/api/v1/chat/sessions", &sessions)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, sessions)
	assert.Equal(t, created.SessionID, sessions[0].SessionID)

	var deleted map[string]interface{}
	status = deleteJSON(t, env, "/api/v1/chat/sessions/"+created.SessionID, &deleted)
	require.Equal(t, http.StatusOK, status)

	status = getJSON(t, env, "/api/v1/chat/sessions/"+created.SessionID, &deleted)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Chat session not found", deleted["error"])
}

// TestChatSessionCreatedOnFirstMessage records a session the client never created explicitly
func TestChatSessionCreatedOnFirstMessage(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	var answer map[string]interface{}
	status := postJSON(t, env, "/api/v1/chat", `{"message":"hello"}`, &answer)
	require.Equal(t, http.StatusOK, status)

	sessionID, ok := answer["session_id"].(string)
	require.True(t, ok)

	var session chatSession
	status = getJSON(t, env, "/api/v1/chat/sessions/"+sessionID, &session)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, session.Messages, 2)
}
