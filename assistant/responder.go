package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-assistant/interfaces"
	"github.com/status-im/market-assistant/models"
)

const (
	msgTopCoinsUnavailable = "I don't have current data about the top cryptocurrencies. Please try again later."
	msgProcessingError     = "I'm sorry, I encountered an error processing your request. Please try again."

	msgHelp = `I'm a cryptocurrency assistant. Here's what I can help you with:

Price information: the current price of a cryptocurrency
  e.g. "What is the price of Bitcoin?" or "How much is Ethereum worth?"

Trend analysis: how a price moved over a period
  e.g. "Show me the 7-day trend of Bitcoin" or "Ethereum chart for 1 month"

Market cap and ranking
  e.g. "What's Bitcoin's market cap?" or "What rank is Ethereum?"

Trading volume over the last 24 hours
  e.g. "What's the trading volume of Solana?"

Top cryptocurrencies by market cap
  e.g. "Show me the top 10 cryptocurrencies"`

	msgGreeting = `Hello! I'm your cryptocurrency assistant. I can tell you about:

- current prices
- price trends over days, weeks or months
- market cap and rankings
- trading volume
- the top cryptocurrencies by market cap

What would you like to know?`
)

var errNoAnswer = errors.New("no answer rendered")

// Responder renders answers for classified questions
type Responder struct {
	market interfaces.MarketDataClient
	repo   interfaces.SnapshotRepository
	now    func() time.Time
}

func NewResponder(market interfaces.MarketDataClient, repo interfaces.SnapshotRepository) *Responder {
	return &Responder{
		market: market,
		repo:   repo,
		now:    time.Now,
	}
}

// Respond builds the answer for an intent. Missing data is rendered as text, not returned as an error.
func (r *Responder) Respond(ctx context.Context, intent Intent, params Params, question string) (Answer, error) {
	answer := Answer{Intent: intent, Params: params}

	switch intent {
	case IntentPrice:
		answer.Text, answer.Data = r.price(ctx, params.Coin)
	case IntentTrend:
		answer.Text, answer.Data = r.trend(ctx, params.Coin, params.Days)
	case IntentMarketCap:
		answer.Text, answer.Data = r.marketCap(ctx, params.Coin)
	case IntentVolume:
		answer.Text, answer.Data = r.volume(ctx, params.Coin)
	case IntentTopCoins:
		answer.Text, answer.Data = r.topCoins(ctx, params.Limit)
	case IntentHelp:
		answer.Text = msgHelp
	case IntentGreeting:
		answer.Text = msgGreeting
	default:
		answer.Intent = IntentGeneral
		answer.Text = generalText(question)
	}
	if answer.Text == "" {
		return answer, errNoAnswer
	}
	return answer, nil
}

func generalText(question string) string {
	return fmt.Sprintf(`I'm not sure how to help with "%s".

I'm specialized in cryptocurrency information. You can ask me about:
- current prices (e.g. "What's the price of Bitcoin?")
- price trends (e.g. "Show me Bitcoin's 7-day trend")
- market data (e.g. "What's Ethereum's market cap?")
- top cryptocurrencies (e.g. "Show me the top 10 coins")

Type "help" for more examples.`, question)
}

func notFoundText(coin string) string {
	return fmt.Sprintf("I couldn't find information about %s. Please check the spelling or try a different cryptocurrency.", coin)
}

// lookupSnapshot reads the stored snapshot and falls back to the market data client.
// A synthetic snapshot from the client means the coin is unknown and yields nil.
func (r *Responder) lookupSnapshot(ctx context.Context, coinID string) *models.CoinSnapshot {
	stored, err := r.repo.GetSnapshot(ctx, coinID)
	if err != nil {
		log.Warn().Err(err).Str("coin", coinID).Msg("Assistant: failed to read stored snapshot")
	}
	if stored != nil {
		return stored
	}

	fetched := r.market.CoinSnapshot(ctx, coinID)
	if fetched.Synthetic {
		return nil
	}

	if err := r.repo.UpsertSnapshot(ctx, fetched); err != nil {
		log.Warn().Err(err).Str("coin", coinID).Msg("Assistant: failed to persist fetched snapshot")
	}
	return &fetched
}

func (r *Responder) price(ctx context.Context, coin string) (string, any) {
	if coin == "" {
		return "I need to know which cryptocurrency you're asking about. Please specify the coin name or symbol.", nil
	}

	snapshot := r.lookupSnapshot(ctx, coin)
	if snapshot == nil {
		return notFoundText(coin), nil
	}

	text := fmt.Sprintf("The current price of %s (%s) is %s",
		snapshot.Name, strings.ToUpper(snapshot.Symbol), formatUSD(snapshot.CurrentPrice))

	if change := snapshot.PriceChangePercentage24h; change != nil {
		verb, magnitude := direction(*change)
		text += fmt.Sprintf(". It has %s by %s%% in the last 24 hours.", verb, magnitude.StringFixed(2))
	}
	return text, snapshot
}

func (r *Responder) trend(ctx context.Context, coin string, days int) (string, any) {
	if coin == "" {
		return "I need to know which cryptocurrency you're asking about for the trend analysis.", nil
	}
	if days <= 0 {
		days = defaultTrendDays
	}

	snapshot := r.lookupSnapshot(ctx, coin)
	if snapshot == nil {
		return notFoundText(coin), nil
	}

	points := r.pricePoints(ctx, coin, days)
	if len(points) < 2 || points[0].Price.IsZero() {
		return fmt.Sprintf("I don't have enough historical data for %s for the last %d days.", snapshot.Name, days), nil
	}

	first, last := points[0].Price, points[len(points)-1].Price
	change := percentChange(first, last)
	verb, magnitude := direction(change)

	// the stored history may start after the requested window
	span := coveredDays(points[0].Date, r.now(), days)

	summary := TrendSummary{
		CoinID:           coin,
		Days:             span,
		StartPrice:       first,
		EndPrice:         last,
		ChangePercentage: change,
		Points:           points,
	}

	text := fmt.Sprintf("Over the last %s, %s has %s by %s%%. The price moved from %s to %s.",
		dayCount(span), snapshot.Name, verb, magnitude.StringFixed(2), formatUSD(first), formatUSD(last))
	return text, summary
}

// pricePoints loads the trend window from the repository and backfills it from the
// client when fewer than two points are stored or the stored points start late
func (r *Responder) pricePoints(ctx context.Context, coin string, days int) []models.PricePoint {
	since := models.DateOf(r.now()).AddDate(0, 0, -days)

	points, err := r.repo.ListPricePoints(ctx, coin, since)
	if err != nil {
		log.Warn().Err(err).Str("coin", coin).Msg("Assistant: failed to read price points")
	}
	if len(points) >= 2 && !points[0].Date.After(since.AddDate(0, 0, 1)) {
		return points
	}

	history, err := r.market.HistoricalPrices(ctx, coin, days)
	if err != nil {
		log.Warn().Err(err).Str("coin", coin).Int("days", days).Msg("Assistant: historical prices unavailable")
		return points
	}

	fetched := make([]models.PricePoint, 0, len(history))
	for _, p := range models.PricePointsFromHistory(coin, history) {
		if p.Date.Before(since) {
			continue
		}
		fetched = append(fetched, p)
		if err := r.repo.UpsertPricePoint(ctx, coin, p.Date, p.Price); err != nil {
			log.Warn().Err(err).Str("coin", coin).Msg("Assistant: failed to persist price point")
		}
	}

	reloaded, err := r.repo.ListPricePoints(ctx, coin, since)
	if err != nil || len(reloaded) < len(fetched) {
		if len(fetched) < len(points) {
			return points
		}
		return fetched
	}
	return reloaded
}

// coveredDays is the number of days between first and today, at most days
func coveredDays(first, now time.Time, days int) int {
	n := int(models.DateOf(now).Sub(models.DateOf(first)).Hours() / 24)
	if n < 1 {
		return 1
	}
	if n > days {
		return days
	}
	return n
}

func dayCount(n int) string {
	if n == 1 {
		return "day"
	}
	return fmt.Sprintf("%d days", n)
}

func (r *Responder) marketCap(ctx context.Context, coin string) (string, any) {
	if coin == "" {
		return "I need to know which cryptocurrency you're asking about for market cap information.", nil
	}

	snapshot := r.lookupSnapshot(ctx, coin)
	if snapshot == nil {
		return notFoundText(coin), nil
	}
	if snapshot.MarketCap == nil {
		return fmt.Sprintf("I don't have market cap data for %s yet.", snapshot.Name), snapshot
	}

	text := fmt.Sprintf("%s has a market cap of %s", snapshot.Name, formatWholeUSD(*snapshot.MarketCap))
	if snapshot.MarketCapRank != nil && *snapshot.MarketCapRank > 0 {
		text += fmt.Sprintf(" and is ranked #%d by market capitalization.", *snapshot.MarketCapRank)
	} else {
		text += "."
	}
	return text, snapshot
}

func (r *Responder) volume(ctx context.Context, coin string) (string, any) {
	if coin == "" {
		return "I need to know which cryptocurrency you're asking about for volume information.", nil
	}

	snapshot := r.lookupSnapshot(ctx, coin)
	if snapshot == nil {
		return notFoundText(coin), nil
	}
	if snapshot.TotalVolume == nil {
		return fmt.Sprintf("I don't have trading volume data for %s yet.", snapshot.Name), snapshot
	}

	return fmt.Sprintf("The 24-hour trading volume for %s is %s.", snapshot.Name, formatWholeUSD(*snapshot.TotalVolume)), snapshot
}

func (r *Responder) topCoins(ctx context.Context, limit int) (string, any) {
	if limit <= 0 {
		limit = 10
	}

	coins, err := r.repo.ListSnapshots(ctx, models.OrderByMarketCapRank, limit)
	if err != nil {
		log.Warn().Err(err).Msg("Assistant: failed to list stored snapshots")
	}

	if len(coins) == 0 {
		coins, err = r.market.TopCoins(ctx, limit)
		if err != nil {
			log.Warn().Err(err).Int("limit", limit).Msg("Assistant: top coins unavailable")
			return msgTopCoinsUnavailable, nil
		}
		for _, c := range coins {
			if err := r.repo.UpsertSnapshot(ctx, c); err != nil {
				log.Warn().Err(err).Str("coin", c.ID).Msg("Assistant: failed to persist snapshot")
			}
		}
	}

	if len(coins) == 0 {
		return msgTopCoinsUnavailable, nil
	}
	if len(coins) > limit {
		coins = coins[:limit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are the top %d cryptocurrencies by market cap:\n", len(coins))
	for i, c := range coins {
		fmt.Fprintf(&b, "\n%d. %s (%s) - %s", i+1, c.Name, strings.ToUpper(c.Symbol), formatUSD(c.CurrentPrice))
		if c.PriceChangePercentage24h != nil {
			fmt.Fprintf(&b, " (%s)", signedPercent(*c.PriceChangePercentage24h))
		}
	}
	return b.String(), coins
}
