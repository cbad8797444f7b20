package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/status-im/market-assistant/assistant"
	"github.com/status-im/market-assistant/events"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPongTimeout  = 60 * time.Second
	wsPingInterval = 30 * time.Second
	wsMaxFrameSize = 4 * 1024

	frameAnswer       = "answer"
	frameMarketUpdate = "market_update"
	frameError        = "error"
)

type wsFrame struct {
	Type   string                   `json:"type"`
	Answer *assistant.SessionAnswer `json:"answer,omitempty"`
	Event  *events.Event            `json:"event,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

// wsConn serializes writes to a websocket connection
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(frame wsFrame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteJSON(frame)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout))
}

// handleChatWebSocket answers every text frame as a question within one session
// and pushes market update notifications
func (s *Server) handleChatWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Server: websocket upgrade failed")
		return
	}
	defer conn.Close()

	ws := &wsConn{conn: conn}
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conn.SetReadLimit(wsMaxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	})

	done := make(chan struct{})
	defer close(done)

	if s.events != nil {
		sub := s.events.Subscribe().Watch(s.ctx, func(ev events.Event) {
			if err := ws.send(wsFrame{Type: frameMarketUpdate, Event: &ev}); err != nil {
				log.Debug().Err(err).Msg("Server: failed to push market update")
			}
		})
		defer sub.Cancel()
	}

	go func() {
		ticker := time.NewTicker(wsPingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := ws.ping(); err != nil {
					return
				}
			}
		}
	}()

	log.Debug().Str("session", sessionID).Msg("Server: websocket chat opened")

	for {
		msgType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("session", sessionID).Msg("Server: websocket closed unexpectedly")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsPongTimeout))

		if msgType != websocket.TextMessage {
			continue
		}

		text := strings.TrimSpace(string(message))
		if text == "" {
			if err := ws.send(wsFrame{Type: frameError, Error: "empty message"}); err != nil {
				return
			}
			continue
		}

		answer := s.assistant.AnswerSession(r.Context(), sessionID, text)
		if err := ws.send(wsFrame{Type: frameAnswer, Answer: &answer}); err != nil {
			log.Debug().Err(err).Str("session", sessionID).Msg("Server: failed to write answer")
			return
		}
	}
}
