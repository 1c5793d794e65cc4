package postgres

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"arbscanner/internal/platform/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

const (
	resultsTable      = "arbitrage_results"
	gooseVersionTable = "goose_db_version"
)

// expectedColumns is the current record shape, column name to information_schema data_type.
var expectedColumns = map[string]string{
	"id":               "bigint",
	"asset":            "text",
	"observed_at":      "timestamp with time zone",
	"gross_spread_pct": "double precision",
	"net_profit_pct":   "double precision",
	"buy_exchange":     "text",
	"sell_exchange":    "text",
	"buy_price":        "double precision",
	"sell_price":       "double precision",
	"quotes":           "jsonb",
}

// EnsureSchema brings arbitrage_results to the current shape.
//
// If the table exists with any other column set it is DROPPED together with the
// goose version table and recreated from the embedded migrations. Historical rows
// are lost; the store never holds rows of mixed shapes. recreated reports whether
// that happened.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) (recreated bool, err error) {
	current, err := currentColumns(ctx, pool)
	if err != nil {
		return false, err
	}

	switch {
	case len(current) == 0:
		// missing table: forget any recorded version so goose creates it again
		if err = dropTables(ctx, pool, gooseVersionTable); err != nil {
			return false, err
		}
	case !maps.Equal(current, expectedColumns):
		logrus.WithFields(logrus.Fields{
			"table":    resultsTable,
			"found":    sortedKeys(current),
			"expected": sortedKeys(expectedColumns),
		}).Warn("Schema mismatch, dropping and recreating table; existing rows are discarded")
		if err = dropTables(ctx, pool, resultsTable, gooseVersionTable); err != nil {
			return false, err
		}
		recreated = true
	}

	if err = migrateUp(ctx, pool); err != nil {
		return recreated, err
	}

	after, err := currentColumns(ctx, pool)
	if err != nil {
		return recreated, err
	}
	if !maps.Equal(after, expectedColumns) {
		return recreated, fmt.Errorf("table %s does not match expected shape after migration: %v", resultsTable, sortedKeys(after))
	}
	return recreated, nil
}

func currentColumns(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	const q = `
		select column_name, data_type
		from information_schema.columns
		where table_schema = current_schema() and table_name = $1;
	`
	rows, err := pool.Query(ctx, q, resultsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect columns of %s: %w", resultsTable, err)
	}
	defer rows.Close()

	cols := make(map[string]string)
	for rows.Next() {
		var name, dataType string
		if err = rows.Scan(&name, &dataType); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		cols[name] = dataType
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}
	return cols, nil
}

func dropTables(ctx context.Context, pool *pgxpool.Pool, tables ...string) error {
	for _, table := range tables {
		if _, err := pool.Exec(ctx, fmt.Sprintf("drop table if exists %s cascade", table)); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer func() { _ = sqlDB.Close() }()

	goose.SetBaseFS(db.Migrations)
	goose.SetLogger(logrus.StandardLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
