package arbitrage

import (
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"arbscanner/internal/domain"
)

// Calculator turns a QuoteSet into the best buy/sell pair after round-trip fees.
type Calculator struct {
	feePerTradePct float64
}

func NewCalculator(feePerTradePct float64) *Calculator {
	return &Calculator{feePerTradePct: feePerTradePct}
}

func (c *Calculator) RoundTripFeePct() float64 {
	return c.feePerTradePct * 2
}

func (c *Calculator) Compute(asset string, quotes domain.QuoteSet, at time.Time) (domain.ArbitrageResult, error) {
	return Compute(asset, quotes, c.feePerTradePct, at)
}

// Compute picks the cheapest ask and the richest bid across exchanges.
//
// Fewer than two quotes, or no usable ask or bid, yields domain.ErrInsufficientData.
// A non-positive or non-finite price only removes that side of the quote from
// consideration. Ties resolve to the exchange whose name sorts first.
func Compute(asset string, quotes domain.QuoteSet, feePerTradePct float64, at time.Time) (domain.ArbitrageResult, error) {
	if len(quotes) < 2 {
		return domain.ArbitrageResult{}, domain.ErrInsufficientData
	}

	var buyExchange, sellExchange string
	var buyPrice, sellPrice float64
	for _, name := range slices.Sorted(maps.Keys(quotes)) {
		q := quotes[name]
		if domain.IsUsablePrice(q.Ask) && (buyExchange == "" || q.Ask < buyPrice) {
			buyExchange, buyPrice = name, q.Ask
		}
		if domain.IsUsablePrice(q.Bid) && (sellExchange == "" || q.Bid > sellPrice) {
			sellExchange, sellPrice = name, q.Bid
		}
	}
	if buyExchange == "" || sellExchange == "" {
		return domain.ArbitrageResult{}, domain.ErrInsufficientData
	}

	gross := (sellPrice - buyPrice) / buyPrice * 100
	return domain.ArbitrageResult{
		Asset:          strings.ToUpper(asset),
		Timestamp:      at.UTC(),
		GrossSpreadPct: gross,
		NetProfitPct:   gross - feePerTradePct*2,
		BuyExchange:    buyExchange,
		SellExchange:   sellExchange,
		BuyPrice:       buyPrice,
		SellPrice:      sellPrice,
		Quotes:         finiteQuotes(quotes),
	}, nil
}

// finiteQuotes copies the quotes that can be stored; a NaN or Inf side drops the whole quote.
func finiteQuotes(quotes domain.QuoteSet) domain.QuoteSet {
	out := make(domain.QuoteSet, len(quotes))
	for name, q := range quotes {
		if isFinite(q.Ask) && isFinite(q.Bid) {
			out[name] = q
		}
	}
	return out
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
