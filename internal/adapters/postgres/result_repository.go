package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"arbscanner/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResultRepository struct {
	pool *pgxpool.Pool
}

// Append writes one result in its own transaction and returns the new row id.
func (r *ResultRepository) Append(ctx context.Context, result domain.ArbitrageResult) (int64, error) {
	quotesJSON, err := json.Marshal(result.Quotes)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal quotes for %q: %w", result.Asset, err)
	}
	if result.Quotes == nil {
		quotesJSON = []byte("{}")
	}

	const q = `
		insert into arbitrage_results (
			asset, observed_at, gross_spread_pct, net_profit_pct,
			buy_exchange, sell_exchange, buy_price, sell_price, quotes
		)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb)
		returning id;
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, q,
		strings.ToUpper(result.Asset),
		result.Timestamp.UTC(),
		result.GrossSpreadPct,
		result.NetProfitPct,
		result.BuyExchange,
		result.SellExchange,
		result.BuyPrice,
		result.SellPrice,
		string(quotesJSON),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert result for %q: %w", result.Asset, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// Query returns results newest first. An empty filter asset matches every asset.
func (r *ResultRepository) Query(ctx context.Context, filter domain.ResultFilter) ([]domain.ArbitrageResult, error) {
	const q = `
		select id, asset, observed_at, gross_spread_pct, net_profit_pct,
		       buy_exchange, sell_exchange, buy_price, sell_price, quotes
		from arbitrage_results
		where ($1 = '' or asset = $1)
		order by observed_at desc, id desc
		limit $2;
	`

	limit := filter.EffectiveLimit()
	rows, err := r.pool.Query(ctx, q, strings.ToUpper(filter.Asset), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	results := make([]domain.ArbitrageResult, 0, limit)
	for rows.Next() {
		var res domain.ArbitrageResult
		var quotesJSON []byte
		if err = rows.Scan(
			&res.ID,
			&res.Asset,
			&res.Timestamp,
			&res.GrossSpreadPct,
			&res.NetProfitPct,
			&res.BuyExchange,
			&res.SellExchange,
			&res.BuyPrice,
			&res.SellPrice,
			&quotesJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		if err = json.Unmarshal(quotesJSON, &res.Quotes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal quotes of result %d: %w", res.ID, err)
		}
		res.Timestamp = res.Timestamp.UTC()
		results = append(results, res)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}
	return results, nil
}

func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}
