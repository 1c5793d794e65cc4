package handler

import (
	"net/http"
)

type GetTrackedAssetsResponse struct {
	Assets             []string `json:"assets" example:"BTC,ETH,SOL"`
	Exchanges          []string `json:"exchanges" example:"kraken,coinbase,bitfinex,gemini"`
	FeePerTradePct     float64  `json:"fee_per_trade_pct" example:"0.15"`
	ProfitThresholdPct float64  `json:"profit_threshold_pct" example:"0.5"`
	CycleIntervalSec   int      `json:"cycle_interval_sec" example:"30"`
}

// GetTrackedAssets godoc
// @Summary Scanner configuration
// @Description Tracked assets and exchanges with the fee and alert threshold in use
// @Tags Assets
// @Produce json
// @Success 200 {object} GetTrackedAssetsResponse
// @Router /assets [get]
func (h *Handler) GetTrackedAssets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, GetTrackedAssetsResponse{
		Assets:             h.validator.TrackedAssets(),
		Exchanges:          h.validator.TrackedExchanges(),
		FeePerTradePct:     h.settings.FeePerTradePct,
		ProfitThresholdPct: h.settings.ProfitThresholdPct,
		CycleIntervalSec:   h.settings.CycleIntervalSec,
	})
}
