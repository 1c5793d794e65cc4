package exchanges

import (
	"encoding/json"
	"fmt"
	"strings"

	"arbscanner/internal/domain"

	"github.com/shopspring/decimal"
)

const defaultGeminiURL = "https://api.gemini.com"

type GeminiProvider struct {
	baseURL string
}

type geminiTicker struct {
	Ask    decimal.Decimal `json:"ask"`
	Bid    decimal.Decimal `json:"bid"`
	Result string          `json:"result"`
	Reason string          `json:"reason"`
}

func (p *GeminiProvider) Name() string { return Gemini }

func (p *GeminiProvider) QuoteURL(asset string) string {
	return fmt.Sprintf("%s/v1/pubticker/%s%s", p.baseURL, strings.ToLower(asset), strings.ToLower(quoteCurrency))
}

func (p *GeminiProvider) Decode(body []byte) (domain.Quote, error) {
	var t geminiTicker
	if err := json.Unmarshal(body, &t); err != nil {
		return domain.Quote{}, fmt.Errorf("failed to decode gemini ticker: %w", err)
	}
	if t.Result == "error" {
		return domain.Quote{}, fmt.Errorf("gemini returned error: %s", t.Reason)
	}
	return newQuote(t.Ask, t.Bid)
}

func NewGeminiProvider(baseURL string) *GeminiProvider {
	return &GeminiProvider{baseURL: baseOrDefault(baseURL, defaultGeminiURL)}
}
