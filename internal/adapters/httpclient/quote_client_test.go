package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"arbscanner/internal/adapters/exchanges"
	"arbscanner/internal/domain"

	"github.com/stretchr/testify/require"
)

func requireReason(t *testing.T, err error, want domain.AbsenceReason) {
	t.Helper()
	var pe *domain.ProviderError
	require.True(t, errors.As(err, &pe), "expected *domain.ProviderError, got %T", err)
	require.Equal(t, want, pe.Reason)
}

func TestQuoteClient_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ask":"100.00","bid":"99.90"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewQuoteClient(srv.Client())
	q, err := c.FetchQuote(context.Background(), exchanges.NewCoinbaseProvider(srv.URL), "btc")
	require.NoError(t, err)
	require.Equal(t, "/products/BTC-USD/ticker", gotPath)
	require.InDelta(t, 100.00, q.Ask, 1e-9)
	require.InDelta(t, 99.90, q.Bid, 1e-9)
}

func TestQuoteClient_StatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewQuoteClient(srv.Client())
	_, err := c.FetchQuote(context.Background(), exchanges.NewGeminiProvider(srv.URL), "BTC")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status code 503")
	require.Contains(t, err.Error(), "gemini")
	requireReason(t, err, domain.ReasonHTTPStatus)
}

func TestQuoteClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{")) // invalid JSON
	}))
	t.Cleanup(srv.Close)

	c := NewQuoteClient(srv.Client())
	_, err := c.FetchQuote(context.Background(), exchanges.NewKrakenProvider(srv.URL), "BTC")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode response for asset \"BTC\"")
	requireReason(t, err, domain.ReasonDecode)
}

func TestQuoteClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := NewQuoteClient(srv.Client())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.FetchQuote(ctx, exchanges.NewBitfinexProvider(srv.URL), "ETH")
	require.Error(t, err)
	requireReason(t, err, domain.ReasonTimeout)
}

func TestQuoteClient_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	c := NewQuoteClient(srv.Client())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchQuote(ctx, exchanges.NewBitfinexProvider(srv.URL), "ETH")
	require.Error(t, err)
	requireReason(t, err, domain.ReasonCanceled)
}

func TestQuoteClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := NewQuoteClient(&http.Client{Timeout: time.Second})
	_, err := c.FetchQuote(context.Background(), exchanges.NewCoinbaseProvider(addr), "BTC")
	require.Error(t, err)
	requireReason(t, err, domain.ReasonNetwork)
}
