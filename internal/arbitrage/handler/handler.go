package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"arbscanner/internal/domain"
)

type Validator interface {
	ValidateAsset(asset string) error
	ParseFilter(asset, limit string) (domain.ResultFilter, error)
	TrackedAssets() []string
	TrackedExchanges() []string
}

type Service interface {
	Recent(ctx context.Context, filter domain.ResultFilter) ([]domain.ArbitrageResult, error)
	Latest(ctx context.Context, asset string) (domain.ArbitrageResult, error)
}

// Settings are the scanner parameters exposed to dashboard clients.
type Settings struct {
	FeePerTradePct     float64
	ProfitThresholdPct float64
	CycleIntervalSec   int
}

type Handler struct {
	validator Validator
	service   Service
	settings  Settings
}

func NewResultsHandler(validator Validator, service Service, settings Settings) *Handler {
	return &Handler{validator: validator, service: service, settings: settings}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
