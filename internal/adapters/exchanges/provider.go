package exchanges

import (
	"fmt"
	"strings"

	"arbscanner/internal/domain"

	"github.com/shopspring/decimal"
)

// Provider describes one exchange's public ticker endpoint and how to read it.
type Provider interface {
	Name() string
	QuoteURL(asset string) string
	Decode(body []byte) (domain.Quote, error)
}

const (
	Kraken   = "kraken"
	Coinbase = "coinbase"
	Bitfinex = "bitfinex"
	Gemini   = "gemini"
)

const quoteCurrency = "USD"

func baseOrDefault(baseURL, def string) string {
	if baseURL == "" {
		return def
	}
	return strings.TrimSuffix(baseURL, "/")
}

func toPrice(d decimal.Decimal, field string) (float64, error) {
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: %s must be positive, got %s", domain.ErrInvalidPrice, field, d.String())
	}
	// decimal has no upper bound, float64 does
	f := d.InexactFloat64()
	if !domain.IsUsablePrice(f) {
		return 0, fmt.Errorf("%w: %s is out of float range, got %s", domain.ErrInvalidPrice, field, d.String())
	}
	return f, nil
}

func newQuote(ask, bid decimal.Decimal) (domain.Quote, error) {
	a, err := toPrice(ask, "ask")
	if err != nil {
		return domain.Quote{}, err
	}
	b, err := toPrice(bid, "bid")
	if err != nil {
		return domain.Quote{}, err
	}
	return domain.Quote{Ask: a, Bid: b}, nil
}
