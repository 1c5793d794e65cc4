package exchanges

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"arbscanner/internal/domain"

	"github.com/shopspring/decimal"
)

const defaultKrakenURL = "https://api.kraken.com"

// Kraken still lists bitcoin under its legacy XBT code.
var krakenAliases = map[string]string{"BTC": "XBT"}

type KrakenProvider struct {
	baseURL string
}

type krakenResponse struct {
	Error  []string                   `json:"error"`
	Result map[string]krakenTickerRow `json:"result"`
}

// a and b are [price, wholeLotVolume, lotVolume].
type krakenTickerRow struct {
	Ask []decimal.Decimal `json:"a"`
	Bid []decimal.Decimal `json:"b"`
}

func (p *KrakenProvider) Name() string { return Kraken }

func (p *KrakenProvider) QuoteURL(asset string) string {
	code := strings.ToUpper(asset)
	if alias, ok := krakenAliases[code]; ok {
		code = alias
	}
	return fmt.Sprintf("%s/0/public/Ticker?pair=%s", p.baseURL, url.QueryEscape(code+quoteCurrency))
}

func (p *KrakenProvider) Decode(body []byte) (domain.Quote, error) {
	var resp krakenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Quote{}, fmt.Errorf("failed to decode kraken ticker: %w", err)
	}
	if len(resp.Error) > 0 {
		return domain.Quote{}, fmt.Errorf("kraken returned error: %s", strings.Join(resp.Error, "; "))
	}
	// the result key is Kraken's internal pair name (XXBTZUSD, XETHZUSD, SOLUSD...)
	if len(resp.Result) != 1 {
		return domain.Quote{}, fmt.Errorf("kraken ticker: expected exactly one pair in result, got %d", len(resp.Result))
	}
	for _, row := range resp.Result {
		if len(row.Ask) == 0 || len(row.Bid) == 0 {
			return domain.Quote{}, fmt.Errorf("%w: kraken ticker is missing ask or bid", domain.ErrInvalidPrice)
		}
		return newQuote(row.Ask[0], row.Bid[0])
	}
	return domain.Quote{}, fmt.Errorf("kraken ticker: empty result")
}

func NewKrakenProvider(baseURL string) *KrakenProvider {
	return &KrakenProvider{baseURL: baseOrDefault(baseURL, defaultKrakenURL)}
}
