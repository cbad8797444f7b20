package assistant

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/status-im/market-assistant/models"
)

// Intent is the classified purpose of a question
type Intent string

const (
	IntentPrice     Intent = "PRICE"
	IntentTrend     Intent = "TREND"
	IntentMarketCap Intent = "MARKET_CAP"
	IntentVolume    Intent = "VOLUME"
	IntentTopCoins  Intent = "TOP_COINS"
	IntentHelp      Intent = "HELP"
	IntentGreeting  Intent = "GREETING"
	IntentGeneral   Intent = "GENERAL"
)

func (i Intent) String() string {
	return string(i)
}

// Params holds the values extracted from a question. Zero values mean absent.
type Params struct {
	Coin  string `json:"coin,omitempty"`
	Days  int    `json:"days,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// Answer is the rendered reply together with what it was built from
type Answer struct {
	Text   string `json:"text"`
	Intent Intent `json:"intent"`
	Params Params `json:"params"`
	Data   any    `json:"data,omitempty"`
}

// SessionAnswer wraps an Answer in the chat message envelope
type SessionAnswer struct {
	Answer
	SessionID   string    `json:"session_id"`
	MessageType string    `json:"message_type"`
	Timestamp   time.Time `json:"timestamp"`
}

// TrendSummary is the data behind a TREND answer
type TrendSummary struct {
	CoinID           string              `json:"coin_id"`
	Days             int                 `json:"days"`
	StartPrice       decimal.Decimal     `json:"start_price"`
	EndPrice         decimal.Decimal     `json:"end_price"`
	ChangePercentage decimal.Decimal     `json:"change_percentage"`
	Points           []models.PricePoint `json:"points"`
}
