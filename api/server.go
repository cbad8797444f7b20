package api

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/status-im/market-assistant/assistant"
	"github.com/status-im/market-assistant/events"
	"github.com/status-im/market-assistant/interfaces"
	"github.com/status-im/market-assistant/refresh"
)

// Assistant answers questions
type Assistant interface {
	Answer(ctx context.Context, text string) assistant.Answer
	AnswerSession(ctx context.Context, sessionID, text string) assistant.SessionAnswer
}

// Refresher triggers market data refreshes
type Refresher interface {
	RefreshTopCoins(ctx context.Context, limit int) error
	RefreshHistorical(ctx context.Context, coinID string, days int) error
	RefreshGlobal(ctx context.Context) error
	RefreshAll(ctx context.Context) refresh.Report
	Trigger() bool
}

// HealthChecker reports whether a dependency is working
type HealthChecker interface {
	Healthy() bool
}

type Server struct {
	port      string
	assistant Assistant
	refresher Refresher
	repo      interfaces.SnapshotRepository
	chats     interfaces.ChatRepository
	events    events.ISubscriptionManager
	health    map[string]HealthChecker
	validate  *validator.Validate
	upgrader  websocket.Upgrader
	server    *http.Server
	ctx       context.Context
}

func New(port string, a Assistant, refresher Refresher, repo interfaces.SnapshotRepository, chats interfaces.ChatRepository, em events.ISubscriptionManager, health map[string]HealthChecker) *Server {
	return &Server{
		port:      port,
		assistant: a,
		refresher: refresher,
		repo:      repo,
		chats:     chats,
		events:    em,
		health:    health,
		validate:  validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		ctx: context.Background(),
	}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	v1.HandleFunc("/chat/sessions", s.handleListSessions).Methods(http.MethodGet)
	v1.HandleFunc("/chat/sessions", s.handleCreateSession).Methods(http.MethodPost)
	v1.HandleFunc("/chat/sessions/{id}", s.handleGetSession).Methods(http.MethodGet)
	v1.HandleFunc("/chat/sessions/{id}", s.handleDeleteSession).Methods(http.MethodDelete)
	v1.HandleFunc("/qa", s.handleQA).Methods(http.MethodGet)
	v1.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	v1.HandleFunc("/coins/top", s.handleTopCoins).Methods(http.MethodGet)
	v1.HandleFunc("/coins/search", s.handleSearch).Methods(http.MethodGet)
	v1.HandleFunc("/coins/{id}/history", s.handleHistory).Methods(http.MethodGet)
	v1.HandleFunc("/coins/{id}", s.handleCoin).Methods(http.MethodGet)
	v1.HandleFunc("/global", s.handleGlobal).Methods(http.MethodGet)

	router.HandleFunc("/ws/chat", s.handleChatWebSocket)
	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.ctx = ctx
	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Router(),
	}

	log.Info().Str("port", s.port).Msg("Server: starting")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Server: stopped unexpectedly")
		}
	}()

	return nil
}
