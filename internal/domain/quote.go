package domain

import "math"

// Quote is the top of book on one exchange: Ask is paid when buying, Bid is received when selling.
type Quote struct {
	Ask float64 `json:"ask"`
	Bid float64 `json:"bid"`
}

// QuoteSet maps exchange name to its quote for a single cycle.
// Exchanges that failed to answer are absent, never zero-valued.
type QuoteSet map[string]Quote

func IsUsablePrice(p float64) bool {
	return p > 0 && !math.IsNaN(p) && !math.IsInf(p, 0)
}
