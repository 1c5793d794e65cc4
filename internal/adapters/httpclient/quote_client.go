package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"arbscanner/internal/adapters/exchanges"
	"arbscanner/internal/domain"
)

// maxBodyBytes bounds how much of a ticker response is read.
const maxBodyBytes = 1 << 20

type QuoteClient struct {
	http *http.Client
}

// FetchQuote performs a single GET against the provider's ticker endpoint.
// Every failure is returned as a *domain.ProviderError carrying the reason.
func (c *QuoteClient) FetchQuote(ctx context.Context, provider exchanges.Provider, asset string) (domain.Quote, error) {
	name := provider.Name()
	quoteURL := provider.QuoteURL(asset)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, quoteURL, nil)
	if err != nil {
		return domain.Quote{}, domain.NewProviderError(name, domain.ReasonNetwork,
			fmt.Errorf("failed to create request for asset %q: %w", asset, err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Quote{}, domain.NewProviderError(name, transportReason(ctx, err),
			fmt.Errorf("failed to execute request for asset %q: %w", asset, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Quote{}, domain.NewProviderError(name, domain.ReasonHTTPStatus,
			fmt.Errorf("unexpected status code %d for asset %q: %s", resp.StatusCode, asset, resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.Quote{}, domain.NewProviderError(name, transportReason(ctx, err),
			fmt.Errorf("failed to read response for asset %q: %w", asset, err))
	}

	quote, err := provider.Decode(body)
	if err != nil {
		return domain.Quote{}, domain.NewProviderError(name, domain.ReasonDecode,
			fmt.Errorf("failed to decode response for asset %q: %w", asset, err))
	}
	return quote, nil
}

func transportReason(ctx context.Context, err error) domain.AbsenceReason {
	var netErr interface{ Timeout() bool }
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return domain.ReasonCanceled
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return domain.ReasonTimeout
	default:
		return domain.ReasonNetwork
	}
}

func NewQuoteClient(httpClient *http.Client) *QuoteClient {
	return &QuoteClient{http: httpClient}
}
