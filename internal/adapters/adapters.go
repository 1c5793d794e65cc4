package adapters

import (
	"context"

	"arbscanner/internal/adapters/exchanges"
	"arbscanner/internal/domain"
)

type QuoteClient interface {
	FetchQuote(ctx context.Context, provider exchanges.Provider, asset string) (domain.Quote, error)
}

type ResultRepository interface {
	Append(ctx context.Context, result domain.ArbitrageResult) (int64, error)
	Query(ctx context.Context, filter domain.ResultFilter) ([]domain.ArbitrageResult, error)
}

type ResultCache interface {
	GetLatest(asset string) (domain.ArbitrageResult, bool)
	SetLatest(result domain.ArbitrageResult)
}

type Notifier interface {
	Notify(ctx context.Context, alert domain.Alert) error
}
