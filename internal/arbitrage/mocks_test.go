package arbitrage

import (
	"context"
	"sync"

	"arbscanner/internal/adapters/exchanges"
	"arbscanner/internal/domain"

	"github.com/stretchr/testify/mock"
)

type stubProvider struct{ name string }

func (p stubProvider) Name() string { return p.name }

func (p stubProvider) QuoteURL(asset string) string { return "http://stub/" + p.name + "/" + asset }

func (p stubProvider) Decode([]byte) (domain.Quote, error) { return domain.Quote{}, nil }

func providers(names ...string) []exchanges.Provider {
	out := make([]exchanges.Provider, 0, len(names))
	for _, n := range names {
		out = append(out, stubProvider{name: n})
	}
	return out
}

type MockQuoteClient struct{ mock.Mock }

func (m *MockQuoteClient) FetchQuote(ctx context.Context, provider exchanges.Provider, asset string) (domain.Quote, error) {
	args := m.Called(ctx, provider.Name(), asset)
	q, _ := args.Get(0).(domain.Quote)
	return q, args.Error(1)
}

type MockResultRepository struct{ mock.Mock }

func (m *MockResultRepository) Append(ctx context.Context, result domain.ArbitrageResult) (int64, error) {
	args := m.Called(ctx, result)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *MockResultRepository) Query(ctx context.Context, filter domain.ResultFilter) ([]domain.ArbitrageResult, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).([]domain.ArbitrageResult)
	return res, args.Error(1)
}

type MockResultCache struct{ mock.Mock }

func (m *MockResultCache) GetLatest(asset string) (domain.ArbitrageResult, bool) {
	args := m.Called(asset)
	res, _ := args.Get(0).(domain.ArbitrageResult)
	return res, args.Bool(1)
}

func (m *MockResultCache) SetLatest(result domain.ArbitrageResult) {
	m.Called(result)
}

// recordingNotifier keeps every alert it was asked to deliver.
type recordingNotifier struct {
	mu     sync.Mutex
	alerts []domain.Alert
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, alert domain.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
	return n.err
}

func (n *recordingNotifier) sent() []domain.Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Alert(nil), n.alerts...)
}
