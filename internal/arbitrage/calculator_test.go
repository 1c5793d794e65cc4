package arbitrage

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"arbscanner/internal/domain"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)

func TestCalculator_Compute_NoAlertScenario(t *testing.T) {
	calc := NewCalculator(0.15)
	quotes := domain.QuoteSet{
		"kraken":   {Ask: 100.30, Bid: 100.10},
		"coinbase": {Ask: 100.00, Bid: 99.90},
	}

	res, err := calc.Compute("btc", quotes, testNow)
	require.NoError(t, err)
	require.Equal(t, "BTC", res.Asset)
	require.Equal(t, "coinbase", res.BuyExchange)
	require.Equal(t, "kraken", res.SellExchange)
	require.InDelta(t, 100.00, res.BuyPrice, 1e-12)
	require.InDelta(t, 100.10, res.SellPrice, 1e-12)
	require.InDelta(t, 0.10, res.GrossSpreadPct, 1e-9)
	require.InDelta(t, -0.20, res.NetProfitPct, 1e-9)
	require.Equal(t, testNow, res.Timestamp)
	require.True(t, res.Actionable())
}

func TestCalculator_Compute_AlertScenario(t *testing.T) {
	calc := NewCalculator(0.15)
	quotes := domain.QuoteSet{
		"kraken":   {Ask: 101.00, Bid: 100.90},
		"coinbase": {Ask: 100.00, Bid: 99.90},
	}

	res, err := calc.Compute("BTC", quotes, testNow)
	require.NoError(t, err)
	require.Equal(t, "coinbase", res.BuyExchange)
	require.Equal(t, "kraken", res.SellExchange)
	require.InDelta(t, 0.90, res.GrossSpreadPct, 1e-9)
	require.InDelta(t, 0.60, res.NetProfitPct, 1e-9)
}

func TestCalculator_Compute_InsufficientData(t *testing.T) {
	calc := NewCalculator(0.15)

	_, err := calc.Compute("BTC", nil, testNow)
	require.ErrorIs(t, err, domain.ErrInsufficientData)

	_, err = calc.Compute("BTC", domain.QuoteSet{"kraken": {Ask: 1, Bid: 1}}, testNow)
	require.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestCalculator_Compute_InvalidAskExcludedFromBuySide(t *testing.T) {
	calc := NewCalculator(0.1)
	cases := []struct {
		name string
		ask  float64
	}{
		{name: "zero", ask: 0},
		{name: "negative", ask: -5},
		{name: "nan", ask: math.NaN()},
		{name: "inf", ask: math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quotes := domain.QuoteSet{
				"bitfinex": {Ask: tc.ask, Bid: 100.50},
				"gemini":   {Ask: 100.20, Bid: 100.00},
				"kraken":   {Ask: 100.40, Bid: 100.10},
			}
			res, err := calc.Compute("ETH", quotes, testNow)
			require.NoError(t, err)
			require.Equal(t, "gemini", res.BuyExchange)
			// the bid side of the broken quote still counts
			require.Equal(t, "bitfinex", res.SellExchange)
			require.False(t, math.IsNaN(res.GrossSpreadPct))
			require.False(t, math.IsInf(res.GrossSpreadPct, 0))
		})
	}
}

func TestCalculator_Compute_NoUsableAsk_IsInsufficient(t *testing.T) {
	calc := NewCalculator(0.1)
	quotes := domain.QuoteSet{
		"kraken":   {Ask: 0, Bid: 100},
		"coinbase": {Ask: math.NaN(), Bid: 99},
	}
	_, err := calc.Compute("BTC", quotes, testNow)
	require.ErrorIs(t, err, domain.ErrInsufficientData)
}

func TestCalculator_Compute_SameExchangeIsRecorded(t *testing.T) {
	calc := NewCalculator(0.15)
	quotes := domain.QuoteSet{
		"kraken":   {Ask: 99.00, Bid: 101.00},
		"coinbase": {Ask: 100.00, Bid: 99.90},
	}
	res, err := calc.Compute("BTC", quotes, testNow)
	require.NoError(t, err)
	require.Equal(t, "kraken", res.BuyExchange)
	require.Equal(t, "kraken", res.SellExchange)
	require.False(t, res.Actionable())
}

func TestCalculator_Compute_TieBreakIsDeterministic(t *testing.T) {
	calc := NewCalculator(0.15)
	quotes := domain.QuoteSet{
		"kraken":   {Ask: 100.00, Bid: 100.50},
		"gemini":   {Ask: 100.00, Bid: 100.50},
		"coinbase": {Ask: 100.00, Bid: 100.50},
		"bitfinex": {Ask: 100.10, Bid: 100.40},
	}
	for i := 0; i < 50; i++ {
		res, err := calc.Compute("BTC", quotes, testNow)
		require.NoError(t, err)
		require.Equal(t, "coinbase", res.BuyExchange)
		require.Equal(t, "coinbase", res.SellExchange)
	}
}

func TestCalculator_Compute_DoesNotAliasInput(t *testing.T) {
	calc := NewCalculator(0.15)
	quotes := domain.QuoteSet{
		"kraken":   {Ask: 101.00, Bid: 100.90},
		"coinbase": {Ask: 100.00, Bid: 99.90},
	}
	res, err := calc.Compute("BTC", quotes, testNow)
	require.NoError(t, err)

	delete(quotes, "kraken")
	require.Len(t, res.Quotes, 2)
}

func TestCalculator_Compute_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"kraken", "coinbase", "bitfinex", "gemini"}
	fee := 0.15
	calc := NewCalculator(fee)

	for iter := 0; iter < 500; iter++ {
		quotes := domain.QuoteSet{}
		for _, name := range names {
			if rng.Intn(4) == 0 {
				continue
			}
			mid := 100 + rng.Float64()*2
			spread := rng.Float64() * 0.5
			quotes[name] = domain.Quote{Ask: mid + spread/2, Bid: mid - spread/2}
		}

		res, err := calc.Compute("BTC", quotes, testNow)
		if len(quotes) < 2 {
			require.ErrorIs(t, err, domain.ErrInsufficientData)
			continue
		}
		require.NoError(t, err, fmt.Sprintf("iteration %d", iter))

		for name, q := range quotes {
			require.LessOrEqual(t, res.BuyPrice, q.Ask, "buy %s vs %s", res.BuyExchange, name)
			require.GreaterOrEqual(t, res.SellPrice, q.Bid, "sell %s vs %s", res.SellExchange, name)
		}
		require.Equal(t, quotes[res.BuyExchange].Ask, res.BuyPrice)
		require.Equal(t, quotes[res.SellExchange].Bid, res.SellPrice)
		require.Equal(t, res.GrossSpreadPct-2*fee, res.NetProfitPct)
	}
}

func TestCalculator_Compute_NonFiniteQuoteIsLeftOutOfSnapshot(t *testing.T) {
	calc := NewCalculator(0.15)
	quotes := domain.QuoteSet{
		"coinbase": {Ask: math.Inf(1), Bid: 99.90},
		"gemini":   {Ask: 100.20, Bid: math.NaN()},
		"kraken":   {Ask: 100.30, Bid: 100.10},
		"bitfinex": {Ask: 0, Bid: 100.00},
	}

	res, err := calc.Compute("BTC", quotes, testNow)
	require.NoError(t, err)
	require.Equal(t, "gemini", res.BuyExchange)
	require.Equal(t, "kraken", res.SellExchange)

	require.Equal(t, domain.QuoteSet{
		"kraken":   {Ask: 100.30, Bid: 100.10},
		"bitfinex": {Ask: 0, Bid: 100.00},
	}, res.Quotes)
	_, err = json.Marshal(res.Quotes)
	require.NoError(t, err)
}
