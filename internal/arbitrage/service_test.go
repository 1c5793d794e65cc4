package arbitrage

import (
	"context"
	"errors"
	"testing"

	"arbscanner/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Recent_NormalizesFilter(t *testing.T) {
	repo := new(MockResultRepository)
	svc := NewService(repo, new(MockResultCache))
	want := []domain.ArbitrageResult{{ID: 2, Asset: "BTC"}, {ID: 1, Asset: "BTC"}}

	repo.On("Query", mock.Anything, domain.ResultFilter{Asset: "BTC", Limit: domain.DefaultResultLimit}).Return(want, nil).Once()

	got, err := svc.Recent(context.Background(), domain.ResultFilter{Asset: "btc"})
	require.NoError(t, err)
	require.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestService_Recent_WrapsError(t *testing.T) {
	repo := new(MockResultRepository)
	svc := NewService(repo, new(MockResultCache))
	dbErr := errors.New("db down")

	repo.On("Query", mock.Anything, mock.Anything).Return(nil, dbErr).Once()

	_, err := svc.Recent(context.Background(), domain.ResultFilter{Limit: 10})
	require.ErrorIs(t, err, dbErr)
}

func TestService_Latest_CacheHit(t *testing.T) {
	repo := new(MockResultRepository)
	cache := new(MockResultCache)
	svc := NewService(repo, cache)
	cached := domain.ArbitrageResult{ID: 9, Asset: "ETH"}

	cache.On("GetLatest", "ETH").Return(cached, true).Once()

	got, err := svc.Latest(context.Background(), "eth")
	require.NoError(t, err)
	require.Equal(t, cached, got)
	repo.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}

func TestService_Latest_CacheMissFallsBackToStoreAndWarmsCache(t *testing.T) {
	repo := new(MockResultRepository)
	cache := new(MockResultCache)
	svc := NewService(repo, cache)
	stored := domain.ArbitrageResult{ID: 3, Asset: "BTC"}

	cache.On("GetLatest", "BTC").Return(nil, false).Once()
	repo.On("Query", mock.Anything, domain.ResultFilter{Asset: "BTC", Limit: 1}).Return([]domain.ArbitrageResult{stored}, nil).Once()
	cache.On("SetLatest", stored).Once()

	got, err := svc.Latest(context.Background(), "BTC")
	require.NoError(t, err)
	require.Equal(t, stored, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Latest_NotFound(t *testing.T) {
	repo := new(MockResultRepository)
	cache := new(MockResultCache)
	svc := NewService(repo, cache)

	cache.On("GetLatest", "SOL").Return(nil, false).Once()
	repo.On("Query", mock.Anything, mock.Anything).Return([]domain.ArbitrageResult{}, nil).Once()

	_, err := svc.Latest(context.Background(), "SOL")
	require.ErrorIs(t, err, domain.ErrResultNotFound)
	cache.AssertNotCalled(t, "SetLatest", mock.Anything)
}

func TestService_Latest_StoreError(t *testing.T) {
	repo := new(MockResultRepository)
	cache := new(MockResultCache)
	svc := NewService(repo, cache)

	cache.On("GetLatest", "BTC").Return(nil, false).Once()
	repo.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	_, err := svc.Latest(context.Background(), "BTC")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrResultNotFound)
}
