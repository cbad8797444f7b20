package assistant

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/status-im/market-assistant/config"
)

const (
	defaultTrendDays = 7
	maxTrendDays     = 365
)

var (
	dayPatterns = []struct {
		pattern    *regexp.Regexp
		multiplier int
	}{
		{regexp.MustCompile(`(\d+)\s*-?\s*days?\b`), 1},
		{regexp.MustCompile(`(\d+)\s*-?\s*weeks?\b`), 7},
		{regexp.MustCompile(`(\d+)\s*-?\s*months?\b`), 30},
	}
	numberPattern = regexp.MustCompile(`\d+`)
)

// rule maps a keyword set to an intent. Rules are evaluated in order and the first match wins.
type rule struct {
	keywords []string
	intent   Intent
	extract  func(c *Classifier, text string) Params
}

func (r rule) matches(text string) bool {
	for _, k := range r.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Classifier turns a question into an intent and its parameters
type Classifier struct {
	resolver *Resolver
	rules    []rule
	config   config.AssistantConfig
}

func NewClassifier(resolver *Resolver, cfg config.AssistantConfig) *Classifier {
	return &Classifier{
		resolver: resolver,
		rules:    defaultRules(),
		config:   cfg,
	}
}

func defaultRules() []rule {
	return []rule{
		{keywords: []string{"price", "cost", "value", "worth"}, intent: IntentPrice, extract: extractCoin},
		{keywords: []string{"trend", "chart", "graph", "performance", "change"}, intent: IntentTrend, extract: extractTrend},
		{keywords: []string{"market cap", "marketcap", "ranking", "rank"}, intent: IntentMarketCap, extract: extractCoin},
		{keywords: []string{"volume", "trading volume"}, intent: IntentVolume, extract: extractCoin},
		{keywords: []string{"top", "best", "popular", "leading"}, intent: IntentTopCoins, extract: extractLimit},
		{keywords: []string{"help", "what can you do", "commands"}, intent: IntentHelp},
		{keywords: []string{"hello", "hi", "hey", "greetings"}, intent: IntentGreeting},
	}
}

// Normalize lowercases and trims a question
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Classify returns the intent of a normalized question
func (c *Classifier) Classify(text string) (Intent, Params) {
	for _, r := range c.rules {
		if !r.matches(text) {
			continue
		}
		if r.extract == nil {
			return r.intent, Params{}
		}
		return r.intent, r.extract(c, text)
	}
	return IntentGeneral, Params{}
}

func extractCoin(c *Classifier, text string) Params {
	coin, _ := c.resolver.Resolve(text)
	return Params{Coin: coin}
}

func extractTrend(c *Classifier, text string) Params {
	coin, _ := c.resolver.Resolve(text)
	return Params{Coin: coin, Days: extractDays(text, c.config.DefaultTrendDays)}
}

func extractLimit(c *Classifier, text string) Params {
	limit, ok := ExtractNumber(text)
	if !ok {
		limit = c.config.DefaultTopLimit
	}
	return Params{Limit: clamp(limit, 1, c.config.MaxTopLimit)}
}

// ExtractDays reads a period such as "30 day", "2 weeks" or "3-month" as a day count.
// Returns 7 when the text names no period.
func ExtractDays(text string) int {
	return extractDays(text, defaultTrendDays)
}

func extractDays(text string, fallback int) int {
	if fallback <= 0 {
		fallback = defaultTrendDays
	}

	for _, p := range dayPatterns {
		m := p.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return maxTrendDays
		}
		if n == 0 {
			return fallback
		}
		if n > maxTrendDays/p.multiplier {
			return maxTrendDays
		}
		return n * p.multiplier
	}
	return fallback
}

// ExtractNumber returns the first integer literal in the text.
// Literals too large for an int yield math.MaxInt.
func ExtractNumber(text string) (int, bool) {
	m := numberPattern.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return math.MaxInt, true
	}
	return n, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if hi >= lo && v > hi {
		return hi
	}
	return v
}
