package exchanges

import (
	"encoding/json"
	"fmt"
	"strings"

	"arbscanner/internal/domain"

	"github.com/shopspring/decimal"
)

const defaultCoinbaseURL = "https://api.exchange.coinbase.com"

type CoinbaseProvider struct {
	baseURL string
}

type coinbaseTicker struct {
	Ask     decimal.Decimal `json:"ask"`
	Bid     decimal.Decimal `json:"bid"`
	Message string          `json:"message"`
}

func (p *CoinbaseProvider) Name() string { return Coinbase }

func (p *CoinbaseProvider) QuoteURL(asset string) string {
	return fmt.Sprintf("%s/products/%s-%s/ticker", p.baseURL, strings.ToUpper(asset), quoteCurrency)
}

func (p *CoinbaseProvider) Decode(body []byte) (domain.Quote, error) {
	var t coinbaseTicker
	if err := json.Unmarshal(body, &t); err != nil {
		return domain.Quote{}, fmt.Errorf("failed to decode coinbase ticker: %w", err)
	}
	if t.Message != "" {
		return domain.Quote{}, fmt.Errorf("coinbase returned error: %s", t.Message)
	}
	return newQuote(t.Ask, t.Bid)
}

func NewCoinbaseProvider(baseURL string) *CoinbaseProvider {
	return &CoinbaseProvider{baseURL: baseOrDefault(baseURL, defaultCoinbaseURL)}
}
