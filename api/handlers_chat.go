package api

import (
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

const maxQuestionLength = 1000

type chatRequest struct {
	Message   string `json:"message" validate:"required,max=1000"`
	SessionID string `json:"session_id" validate:"omitempty,max=64"`
}

// handleChat answers a chat message and echoes the session
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64*1024)).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if err := s.validate.Struct(req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Field 'message' is required and must be at most 1000 characters")
		return
	}

	s.sendJSONResponse(w, s.assistant.AnswerSession(r.Context(), req.SessionID, req.Message))
}

// handleQA answers a single question passed as the text query parameter
func (s *Server) handleQA(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" || len(text) > maxQuestionLength {
		s.sendError(w, http.StatusBadRequest, "Parameter 'text' is required and must be at most 1000 characters")
		return
	}

	s.sendJSONResponse(w, s.assistant.Answer(r.Context(), text))
}

type refreshResponse struct {
	Message           string `json:"message"`
	TopCoinsUpdated   bool   `json:"top_coins_updated"`
	GlobalDataUpdated bool   `json:"global_data_updated"`
	HistoricalUpdated string `json:"historical_data_updated"`
}

// handleRefresh runs a full refresh cycle and reports what was updated.
// With async=true the cycle is handed to the periodic refresher when it runs.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if async, _ := strconv.ParseBool(r.URL.Query().Get("async")); async && s.refresher.Trigger() {
		s.sendJSONStatus(w, http.StatusAccepted, refreshResponse{Message: "Data refresh scheduled"})
		return
	}

	report := s.refresher.RefreshAll(r.Context())

	s.sendJSONResponse(w, refreshResponse{
		Message:           "Data refresh completed",
		TopCoinsUpdated:   report.TopCoinsUpdated,
		GlobalDataUpdated: report.GlobalUpdated,
		HistoricalUpdated: report.HistoricalSummary(),
	})
}
