package exchanges

import (
	"encoding/json"
	"fmt"
	"strings"

	"arbscanner/internal/domain"

	"github.com/shopspring/decimal"
)

const defaultBitfinexURL = "https://api-pub.bitfinex.com"

// Positions in the v2 ticker array: [BID, BID_SIZE, ASK, ASK_SIZE, DAILY_CHANGE, ...].
const (
	bitfinexBidIdx = 0
	bitfinexAskIdx = 2
)

type BitfinexProvider struct {
	baseURL string
}

func (p *BitfinexProvider) Name() string { return Bitfinex }

func (p *BitfinexProvider) QuoteURL(asset string) string {
	return fmt.Sprintf("%s/v2/ticker/t%s%s", p.baseURL, strings.ToUpper(asset), quoteCurrency)
}

func (p *BitfinexProvider) Decode(body []byte) (domain.Quote, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return domain.Quote{}, fmt.Errorf("failed to decode bitfinex ticker: %w", err)
	}

	// errors come back as ["error", code, "message"]
	if len(fields) > 0 {
		var tag string
		if json.Unmarshal(fields[0], &tag) == nil && tag == "error" {
			return domain.Quote{}, fmt.Errorf("bitfinex returned error: %s", string(body))
		}
	}
	if len(fields) <= bitfinexAskIdx {
		return domain.Quote{}, fmt.Errorf("bitfinex ticker: expected at least %d fields, got %d", bitfinexAskIdx+1, len(fields))
	}

	var bid, ask decimal.Decimal
	if err := json.Unmarshal(fields[bitfinexBidIdx], &bid); err != nil {
		return domain.Quote{}, fmt.Errorf("%w: bitfinex bid: %v", domain.ErrInvalidPrice, err)
	}
	if err := json.Unmarshal(fields[bitfinexAskIdx], &ask); err != nil {
		return domain.Quote{}, fmt.Errorf("%w: bitfinex ask: %v", domain.ErrInvalidPrice, err)
	}
	return newQuote(ask, bid)
}

func NewBitfinexProvider(baseURL string) *BitfinexProvider {
	return &BitfinexProvider{baseURL: baseOrDefault(baseURL, defaultBitfinexURL)}
}
