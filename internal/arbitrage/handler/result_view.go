package handler

import (
	"time"

	"arbscanner/internal/domain"
)

type ResultResponse struct {
	ID             int64           `json:"id" example:"42"`
	Asset          string          `json:"asset" example:"BTC"`
	Timestamp      time.Time       `json:"timestamp"`
	GrossSpreadPct float64         `json:"gross_spread_pct" example:"0.9"`
	NetProfitPct   float64         `json:"net_profit_pct" example:"0.6"`
	BuyExchange    string          `json:"buy_exchange" example:"coinbase"`
	SellExchange   string          `json:"sell_exchange" example:"kraken"`
	BuyPrice       float64         `json:"buy_price" example:"100.0"`
	SellPrice      float64         `json:"sell_price" example:"100.9"`
	Quotes         domain.QuoteSet `json:"quotes"`
}

func toResultResponse(r domain.ArbitrageResult) ResultResponse {
	quotes := r.Quotes
	if quotes == nil {
		quotes = domain.QuoteSet{}
	}
	return ResultResponse{
		ID:             r.ID,
		Asset:          r.Asset,
		Timestamp:      r.Timestamp,
		GrossSpreadPct: r.GrossSpreadPct,
		NetProfitPct:   r.NetProfitPct,
		BuyExchange:    r.BuyExchange,
		SellExchange:   r.SellExchange,
		BuyPrice:       r.BuyPrice,
		SellPrice:      r.SellPrice,
		Quotes:         quotes,
	}
}
