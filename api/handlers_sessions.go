package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/status-im/market-assistant/models"
)

const (
	defaultSessionsLimit = 50
	maxSessionsLimit     = 100
)

// chatSessionResponse always carries the messages array, even when empty
type chatSessionResponse struct {
	SessionID    string               `json:"session_id"`
	CreatedAt    time.Time            `json:"created_at"`
	LastActivity time.Time            `json:"last_activity"`
	Messages     []models.ChatMessage `json:"messages"`
}

func newChatSessionResponse(session models.ChatSession) chatSessionResponse {
	messages := session.Messages
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return chatSessionResponse{
		SessionID:    session.SessionID,
		CreatedAt:    session.CreatedAt,
		LastActivity: session.LastActivity,
		Messages:     messages,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// handleListSessions returns the most recently active chat sessions
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit, ok := getIntParam(r, "limit", defaultSessionsLimit, 1, maxSessionsLimit)
	if !ok {
		s.sendError(w, http.StatusBadRequest, fmt.Sprintf("Parameter 'limit' must be between 1 and %d", maxSessionsLimit))
		return
	}

	sessions, err := s.chats.ListChatSessions(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Server: failed to list chat sessions")
		s.sendError(w, http.StatusInternalServerError, "Failed to read chat sessions")
		return
	}

	s.sendJSONResponse(w, sessions)
}

// handleCreateSession starts an empty chat session with a generated ID
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	session := models.ChatSession{SessionID: uuid.NewString(), CreatedAt: now, LastActivity: now}

	if err := s.chats.CreateChatSession(r.Context(), session); err != nil {
		log.Error().Err(err).Msg("Server: failed to create chat session")
		s.sendError(w, http.StatusInternalServerError, "Failed to create chat session")
		return
	}

	s.sendJSONStatus(w, http.StatusCreated, newChatSessionResponse(session))
}

// handleGetSession returns a chat session with its messages oldest first
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, err := s.chats.GetChatSession(r.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("Server: failed to read chat session")
		s.sendError(w, http.StatusInternalServerError, "Failed to read chat session")
		return
	}
	if session == nil {
		s.sendError(w, http.StatusNotFound, "Chat session not found")
		return
	}

	s.sendJSONResponse(w, newChatSessionResponse(*session))
}

// handleDeleteSession removes a chat session and its messages
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	deleted, err := s.chats.DeleteChatSession(r.Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("Server: failed to delete chat session")
		s.sendError(w, http.StatusInternalServerError, "Failed to delete chat session")
		return
	}
	if !deleted {
		s.sendError(w, http.StatusNotFound, "Chat session not found")
		return
	}

	log.Info().Str("session", sessionID).Msg("Server: chat session deleted")
	s.sendJSONResponse(w, messageResponse{Message: "Chat session deleted successfully"})
}
