package domain

import "time"

type ArbitrageResult struct {
	ID             int64
	Asset          string
	Timestamp      time.Time
	GrossSpreadPct float64
	NetProfitPct   float64
	BuyExchange    string
	SellExchange   string
	BuyPrice       float64
	SellPrice      float64
	Quotes         QuoteSet
}

// Actionable reports whether buying and selling happen on different exchanges.
func (r ArbitrageResult) Actionable() bool {
	return r.BuyExchange != r.SellExchange
}

const (
	DefaultResultLimit = 50
	MaxResultLimit     = 500
)

// ResultFilter selects the most recent results, optionally for a single asset.
type ResultFilter struct {
	Asset string
	Limit int
}

// EffectiveLimit clamps Limit into [1, MaxResultLimit], using DefaultResultLimit when unset.
func (f ResultFilter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultResultLimit
	case f.Limit > MaxResultLimit:
		return MaxResultLimit
	default:
		return f.Limit
	}
}

type Alert struct {
	Asset          string
	NetProfitPct   float64
	GrossSpreadPct float64
	BuyExchange    string
	SellExchange   string
	BuyPrice       float64
	SellPrice      float64
	DashboardURL   string
	Timestamp      time.Time
}

func NewAlert(r ArbitrageResult, dashboardURL string) Alert {
	return Alert{
		Asset:          r.Asset,
		NetProfitPct:   r.NetProfitPct,
		GrossSpreadPct: r.GrossSpreadPct,
		BuyExchange:    r.BuyExchange,
		SellExchange:   r.SellExchange,
		BuyPrice:       r.BuyPrice,
		SellPrice:      r.SellPrice,
		DashboardURL:   dashboardURL,
		Timestamp:      r.Timestamp,
	}
}
