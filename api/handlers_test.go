package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/status-im/market-assistant/assistant"
	"github.com/status-im/market-assistant/coingecko"
	"github.com/status-im/market-assistant/events"
	mock_interfaces "github.com/status-im/market-assistant/interfaces/mocks"
	"github.com/status-im/market-assistant/models"
	"github.com/status-im/market-assistant/refresh"
)

type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) Answer(ctx context.Context, text string) assistant.Answer {
	args := m.Called(ctx, text)
	return args.Get(0).(assistant.Answer)
}

func (m *MockAssistant) AnswerSession(ctx context.Context, sessionID, text string) assistant.SessionAnswer {
	args := m.Called(ctx, sessionID, text)
	return args.Get(0).(assistant.SessionAnswer)
}

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) RefreshTopCoins(ctx context.Context, limit int) error {
	return m.Called(ctx, limit).Error(0)
}

func (m *MockRefresher) RefreshHistorical(ctx context.Context, coinID string, days int) error {
	return m.Called(ctx, coinID, days).Error(0)
}

func (m *MockRefresher) RefreshGlobal(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRefresher) RefreshAll(ctx context.Context) refresh.Report {
	return m.Called(ctx).Get(0).(refresh.Report)
}

func (m *MockRefresher) Trigger() bool {
	return m.Called().Bool(0)
}

type healthy bool

func (h healthy) Healthy() bool { return bool(h) }

type testServer struct {
	*Server
	assistant *MockAssistant
	refresher *MockRefresher
	repo      *mock_interfaces.MockSnapshotRepository
	chats     *mock_interfaces.MockChatRepository
	events    *events.SubscriptionManager
}

func newTestServer(t *testing.T) testServer {
	ctrl := gomock.NewController(t)
	ts := testServer{
		assistant: &MockAssistant{},
		refresher: &MockRefresher{},
		repo:      mock_interfaces.NewMockSnapshotRepository(ctrl),
		chats:     mock_interfaces.NewMockChatRepository(ctrl),
		events:    events.NewSubscriptionManager(),
	}
	ts.Server = New("0", ts.assistant, ts.refresher, ts.repo, ts.chats, ts.events, map[string]HealthChecker{
		"coingecko": healthy(true),
		"storage":   healthy(false),
	})
	t.Cleanup(func() {
		ts.assistant.AssertExpectations(t)
		ts.refresher.AssertExpectations(t)
	})
	return ts
}

func (ts testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	ts.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHandleChat(t *testing.T) {
	ts := newTestServer(t)

	reply := assistant.SessionAnswer{
		Answer:      assistant.Answer{Text: "The current price of Bitcoin (BTC) is $50,000.00", Intent: assistant.IntentPrice},
		SessionID:   "abc",
		MessageType: "assistant",
	}
	ts.assistant.On("AnswerSession", mock.Anything, "abc", "price of btc").Return(reply)

	rec := ts.do(http.MethodPost, "/api/v1/chat", `{"message":"  price of btc ","session_id":"abc"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, reply.Text, body["text"])
	assert.Equal(t, "PRICE", body["intent"])
	assert.Equal(t, "abc", body["session_id"])
}

func TestHandleChat_Invalid(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `price of btc`},
		{"missing message", `{"session_id":"abc"}`},
		{"blank message", `{"message":"   "}`},
		{"message too long", `{"message":"` + strings.Repeat("a", 1001) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(http.MethodPost, "/api/v1/chat", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec := ts.do(http.MethodGet, "/api/v1/chat", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleListSessions(t *testing.T) {
	ts := newTestServer(t)

	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	ts.chats.EXPECT().ListChatSessions(gomock.Any(), 50).Return([]models.ChatSession{
		{SessionID: "abc", CreatedAt: at, LastActivity: at.Add(time.Minute)},
	}, nil)

	rec := ts.do(http.MethodGet, "/api/v1/chat/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[[]map[string]interface{}](t, rec)
	require.Len(t, body, 1)
	assert.Equal(t, "abc", body[0]["session_id"])
	assert.NotContains(t, body[0], "messages")

	ts.chats.EXPECT().ListChatSessions(gomock.Any(), 5).Return([]models.ChatSession{}, nil)
	rec = ts.do(http.MethodGet, "/api/v1/chat/sessions?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/v1/chat/sessions?limit=0", "").Code)
}

func TestHandleCreateSession(t *testing.T) {
	ts := newTestServer(t)

	var created models.ChatSession
	ts.chats.EXPECT().CreateChatSession(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, session models.ChatSession) error {
		created = session
		return nil
	})

	rec := ts.do(http.MethodPost, "/api/v1/chat/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, created.SessionID, body["session_id"])
	assert.Equal(t, []interface{}{}, body["messages"])
	_, err := uuid.Parse(created.SessionID)
	assert.NoError(t, err)
}

func TestHandleGetSession(t *testing.T) {
	ts := newTestServer(t)

	at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	ts.chats.EXPECT().GetChatSession(gomock.Any(), "abc").Return(&models.ChatSession{
		SessionID:    "abc",
		CreatedAt:    at,
		LastActivity: at,
		Messages: []models.ChatMessage{
			{ID: 1, MessageType: models.ChatMessageUser, Content: "hello", Timestamp: at},
			{ID: 2, MessageType: models.ChatMessageAssistant, Content: "Hello!", Timestamp: at},
		},
	}, nil)

	rec := ts.do(http.MethodGet, "/api/v1/chat/sessions/abc", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[chatSessionResponse](t, rec)
	assert.Equal(t, "abc", body.SessionID)
	require.Len(t, body.Messages, 2)
	assert.Equal(t, "user", body.Messages[0].MessageType)
	assert.Equal(t, "Hello!", body.Messages[1].Content)

	ts.chats.EXPECT().GetChatSession(gomock.Any(), "missing").Return(nil, nil)
	rec = ts.do(http.MethodGet, "/api/v1/chat/sessions/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Chat session not found", decode[errorResponse](t, rec).Error)
}

func TestHandleDeleteSession(t *testing.T) {
	ts := newTestServer(t)

	ts.chats.EXPECT().DeleteChatSession(gomock.Any(), "abc").Return(true, nil)
	rec := ts.do(http.MethodDelete, "/api/v1/chat/sessions/abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Chat session deleted successfully", decode[messageResponse](t, rec).Message)

	ts.chats.EXPECT().DeleteChatSession(gomock.Any(), "abc").Return(false, nil)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodDelete, "/api/v1/chat/sessions/abc", "").Code)

	ts.chats.EXPECT().DeleteChatSession(gomock.Any(), "broken").Return(false, errors.New("database is locked"))
	assert.Equal(t, http.StatusInternalServerError, ts.do(http.MethodDelete, "/api/v1/chat/sessions/broken", "").Code)
}

func TestHandleQA(t *testing.T) {
	ts := newTestServer(t)

	ts.assistant.On("Answer", mock.Anything, "top 3 coins").Return(assistant.Answer{Text: "Here are the top 3", Intent: assistant.IntentTopCoins})

	rec := ts.do(http.MethodGet, "/api/v1/qa?text=top+3+coins", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "TOP_COINS", decode[map[string]interface{}](t, rec)["intent"])

	rec = ts.do(http.MethodGet, "/api/v1/qa", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRefresh(t *testing.T) {
	ts := newTestServer(t)

	ts.refresher.On("RefreshAll", mock.Anything).Return(refresh.Report{
		TopCoinsUpdated:   true,
		HistoricalUpdated: 7,
		HistoricalTotal:   10,
	})

	rec := ts.do(http.MethodPost, "/api/v1/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[refreshResponse](t, rec)
	assert.Equal(t, "Data refresh completed", body.Message)
	assert.True(t, body.TopCoinsUpdated)
	assert.False(t, body.GlobalDataUpdated)
	assert.Equal(t, "7/10 coins", body.HistoricalUpdated)
}

func TestHandleRefresh_Async(t *testing.T) {
	ts := newTestServer(t)

	ts.refresher.On("Trigger").Return(true).Once()

	rec := ts.do(http.MethodPost, "/api/v1/refresh?async=true", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "Data refresh scheduled", decode[refreshResponse](t, rec).Message)
}

func TestHandleRefresh_AsyncWithoutScheduler(t *testing.T) {
	ts := newTestServer(t)

	ts.refresher.On("Trigger").Return(false).Once()
	ts.refresher.On("RefreshAll", mock.Anything).Return(refresh.Report{GlobalUpdated: true}).Once()

	rec := ts.do(http.MethodPost, "/api/v1/refresh?async=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[refreshResponse](t, rec)
	assert.Equal(t, "Data refresh completed", body.Message)
	assert.True(t, body.GlobalDataUpdated)
}

func TestHandleTopCoins(t *testing.T) {
	ts := newTestServer(t)

	coins := []models.CoinSnapshot{{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: decimal.NewFromInt(50000)}}
	ts.repo.EXPECT().ListSnapshots(gomock.Any(), models.OrderByTotalVolume, 5).Return(coins, nil)

	rec := ts.do(http.MethodGet, "/api/v1/coins/top?limit=5&sort_by=TOTAL_VOLUME", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[[]models.CoinSnapshot](t, rec)
	require.Len(t, body, 1)
	assert.Equal(t, "bitcoin", body[0].ID)
	assert.NotEmpty(t, rec.Header().Get("ETag"))
}

func TestHandleTopCoins_BadParams(t *testing.T) {
	ts := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/v1/coins/top?limit=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/v1/coins/top?limit=101", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/v1/coins/top?sort_by=name", "").Code)
}

func TestHandleTopCoins_EmptyStoreRefreshes(t *testing.T) {
	ts := newTestServer(t)

	coins := []models.CoinSnapshot{{ID: "bitcoin", Name: "Bitcoin"}}
	ts.repo.EXPECT().ListSnapshots(gomock.Any(), models.OrderByMarketCapRank, 10).Return([]models.CoinSnapshot{}, nil)
	ts.refresher.On("RefreshTopCoins", mock.Anything, 10).Return(nil)
	ts.repo.EXPECT().ListSnapshots(gomock.Any(), models.OrderByMarketCapRank, 10).Return(coins, nil)

	rec := ts.do(http.MethodGet, "/api/v1/coins/top", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.CoinSnapshot](t, rec), 1)
}

func TestHandleTopCoins_UpstreamUnavailable(t *testing.T) {
	ts := newTestServer(t)

	ts.repo.EXPECT().ListSnapshots(gomock.Any(), models.OrderByMarketCapRank, 10).Return(nil, nil)
	ts.refresher.On("RefreshTopCoins", mock.Anything, 10).Return(coingecko.ErrUpstreamUnavailable)

	rec := ts.do(http.MethodGet, "/api/v1/coins/top", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Unable to fetch cryptocurrency data", decode[errorResponse](t, rec).Error)
}

func TestHandleCoin(t *testing.T) {
	ts := newTestServer(t)

	ts.repo.EXPECT().GetSnapshot(gomock.Any(), "bitcoin").Return(&models.CoinSnapshot{ID: "bitcoin", Name: "Bitcoin"}, nil)
	ts.repo.EXPECT().GetSnapshot(gomock.Any(), "nope").Return(nil, nil)

	rec := ts.do(http.MethodGet, "/api/v1/coins/bitcoin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bitcoin", decode[models.CoinSnapshot](t, rec).Name)

	rec = ts.do(http.MethodGet, "/api/v1/coins/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleHistory(t *testing.T) {
	ts := newTestServer(t)

	points := []models.PricePoint{
		{CoinID: "bitcoin", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Price: decimal.NewFromInt(60000)},
	}
	ts.repo.EXPECT().ListPricePoints(gomock.Any(), "bitcoin", gomock.Any()).Return(points, nil)

	rec := ts.do(http.MethodGet, "/api/v1/coins/bitcoin/history?days=7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.PricePoint](t, rec), 1)

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/v1/coins/bitcoin/history?days=366", "").Code)
}

func TestHandleHistory_RefreshFailure(t *testing.T) {
	ts := newTestServer(t)

	ts.repo.EXPECT().ListPricePoints(gomock.Any(), "nope", gomock.Any()).Return([]models.PricePoint{}, nil)
	ts.refresher.On("RefreshHistorical", mock.Anything, "nope", 30).Return(coingecko.ErrUpstreamUnavailable)

	rec := ts.do(http.MethodGet, "/api/v1/coins/nope/history", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleSearch(t *testing.T) {
	ts := newTestServer(t)

	ts.repo.EXPECT().SearchSnapshots(gomock.Any(), "bit", 20).Return([]models.CoinSnapshot{{ID: "bitcoin"}}, nil)

	rec := ts.do(http.MethodGet, "/api/v1/coins/search?q=Bit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.CoinSnapshot](t, rec), 1)

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/v1/coins/search?q=b", "").Code)
}

func TestHandleGlobal(t *testing.T) {
	ts := newTestServer(t)

	stats := &models.GlobalStats{TotalMarketCapUSD: decimal.NewFromInt(2500), ActiveCryptocurrencies: 13000}
	ts.repo.EXPECT().LatestGlobalStats(gomock.Any()).Return(nil, nil)
	ts.refresher.On("RefreshGlobal", mock.Anything).Return(nil)
	ts.repo.EXPECT().LatestGlobalStats(gomock.Any()).Return(stats, nil)

	rec := ts.do(http.MethodGet, "/api/v1/global", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 13000, decode[models.GlobalStats](t, rec).ActiveCryptocurrencies)
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, map[string]interface{}{"coingecko": "up", "storage": "unknown"}, body["services"])
}

func TestHandleMetrics(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestChatWebSocket(t *testing.T) {
	ts := newTestServer(t)

	reply := assistant.SessionAnswer{
		Answer:    assistant.Answer{Text: "Hello!", Intent: assistant.IntentGreeting},
		SessionID: "ws-session",
	}
	ts.assistant.On("AnswerSession", mock.Anything, "ws-session", "hello").Return(reply)

	server := httptest.NewServer(ts.Router())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat?session_id=ws-session"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))

	var frame wsFrame
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, frameAnswer, frame.Type)
	require.NotNil(t, frame.Answer)
	assert.Equal(t, "Hello!", frame.Answer.Text)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("   ")))
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, frameError, frame.Type)

	// The subscription is registered before the first answer is written
	ts.events.Emit(context.Background(), events.Event{Kind: events.KindTopCoins, Count: 50})

	frame = wsFrame{}
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, frameMarketUpdate, frame.Type)
	require.NotNil(t, frame.Event)
	assert.Equal(t, 50, frame.Event.Count)
}
