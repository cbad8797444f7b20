package assistant

import (
	"regexp"
	"strings"
)

// CoinAlias maps a lowercase surface form to a canonical coin ID
type CoinAlias struct {
	Alias  string
	CoinID string
}

// DefaultAliases is checked in order, so earlier entries win when a question names several coins
var DefaultAliases = []CoinAlias{
	{"bitcoin", "bitcoin"},
	{"btc", "bitcoin"},
	{"ethereum", "ethereum"},
	{"eth", "ethereum"},
	{"binance coin", "binancecoin"},
	{"bnb", "binancecoin"},
	{"cardano", "cardano"},
	{"ada", "cardano"},
	{"solana", "solana"},
	{"sol", "solana"},
	{"polkadot", "polkadot"},
	{"dot", "polkadot"},
	{"dogecoin", "dogecoin"},
	{"doge", "dogecoin"},
	{"avalanche", "avalanche-2"},
	{"avax", "avalanche-2"},
	{"chainlink", "chainlink"},
	{"link", "chainlink"},
	{"litecoin", "litecoin"},
	{"ltc", "litecoin"},
	{"polygon", "matic-network"},
	{"matic", "matic-network"},
	{"ripple", "ripple"},
	{"xrp", "ripple"},
	{"tether", "tether"},
	{"usdt", "tether"},
}

var (
	extractionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bprice of ([a-z0-9-]+)`),
		regexp.MustCompile(`\bvalue of ([a-z0-9-]+)`),
		regexp.MustCompile(`\bcost of ([a-z0-9-]+)`),
		regexp.MustCompile(`\btrend of ([a-z0-9-]+)`),
	}
	tokenPattern = regexp.MustCompile(`[a-z0-9-]+`)
)

type compiledAlias struct {
	coinID  string
	pattern *regexp.Regexp
}

// Resolver maps free text to a canonical coin ID. It is immutable after construction.
type Resolver struct {
	aliases []compiledAlias
}

// NewResolver compiles the alias table once
func NewResolver(aliases []CoinAlias) *Resolver {
	compiled := make([]compiledAlias, 0, len(aliases))
	for _, a := range aliases {
		words := strings.Fields(strings.ToLower(a.Alias))
		if len(words) == 0 {
			continue
		}
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		compiled = append(compiled, compiledAlias{
			coinID:  a.CoinID,
			pattern: regexp.MustCompile(`\b` + strings.Join(words, `\s+`) + `\b`),
		})
	}
	return &Resolver{aliases: compiled}
}

// Resolve returns the coin a question is about.
// Aliases win over "<keyword> of <coin>" patterns, which win over the last word of the text.
// The last-word fallback may name a coin that does not exist.
func (r *Resolver) Resolve(text string) (string, bool) {
	text = strings.ToLower(text)

	for _, a := range r.aliases {
		if a.pattern.MatchString(text) {
			return a.coinID, true
		}
	}

	for _, p := range extractionPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}

	tokens := tokenPattern.FindAllString(text, -1)
	for i := len(tokens) - 1; i >= 0; i-- {
		if token := strings.Trim(tokens[i], "-"); token != "" {
			return token, true
		}
	}
	return "", false
}
