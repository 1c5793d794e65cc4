package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"arbscanner/internal/arbitrage"
	"arbscanner/internal/arbitrage/handler"
	"arbscanner/internal/domain"

	"github.com/stretchr/testify/require"
)

type memRepo struct{ results []domain.ArbitrageResult }

func (r *memRepo) Append(_ context.Context, res domain.ArbitrageResult) (int64, error) {
	res.ID = int64(len(r.results) + 1)
	r.results = append(r.results, res)
	return res.ID, nil
}

func (r *memRepo) Query(_ context.Context, f domain.ResultFilter) ([]domain.ArbitrageResult, error) {
	var out []domain.ArbitrageResult
	for i := len(r.results) - 1; i >= 0 && len(out) < f.Limit; i-- {
		if f.Asset == "" || r.results[i].Asset == f.Asset {
			out = append(out, r.results[i])
		}
	}
	return out, nil
}

type memCache struct {
	latest map[string]domain.ArbitrageResult
}

func (c *memCache) GetLatest(asset string) (domain.ArbitrageResult, bool) {
	r, ok := c.latest[asset]
	return r, ok
}

func (c *memCache) SetLatest(r domain.ArbitrageResult) { c.latest[r.Asset] = r }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	repo := &memRepo{}
	_, err := repo.Append(context.Background(), domain.ArbitrageResult{
		Asset: "BTC", Timestamp: time.Now().UTC(), BuyExchange: "coinbase", SellExchange: "kraken",
	})
	require.NoError(t, err)

	svc := arbitrage.NewService(repo, &memCache{latest: map[string]domain.ArbitrageResult{}})
	validator := arbitrage.NewValidator([]string{"BTC", "ETH"}, []string{"kraken", "coinbase"})
	return NewRouter(handler.NewResultsHandler(validator, svc, handler.Settings{FeePerTradePct: 0.15, ProfitThresholdPct: 0.5}))
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		path string
		want int
	}{
		{path: "/healthz", want: http.StatusOK},
		{path: "/api/v1/assets", want: http.StatusOK},
		{path: "/api/v1/results", want: http.StatusOK},
		{path: "/api/v1/results?asset=btc&limit=1", want: http.StatusOK},
		{path: "/api/v1/results?limit=1000", want: http.StatusBadRequest},
		{path: "/api/v1/results/btc/latest", want: http.StatusOK},
		{path: "/api/v1/results/eth/latest", want: http.StatusNotFound},
		{path: "/api/v1/results/doge/latest", want: http.StatusBadRequest},
		{path: "/api/v1/unknown", want: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.path, nil))
			require.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestRouter_LatestBody(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/results/BTC/latest", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body handler.ResultResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "BTC", body.Asset)
	require.Equal(t, "kraken", body.SellExchange)
}
