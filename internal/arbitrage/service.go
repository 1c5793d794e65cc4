package arbitrage

import (
	"context"
	"fmt"
	"strings"

	"arbscanner/internal/adapters"
	"arbscanner/internal/domain"
)

// Service answers read queries over stored results.
type Service struct {
	repo  adapters.ResultRepository
	cache adapters.ResultCache
}

func (s *Service) Recent(ctx context.Context, filter domain.ResultFilter) ([]domain.ArbitrageResult, error) {
	filter.Asset = strings.ToUpper(filter.Asset)
	filter.Limit = filter.EffectiveLimit()
	results, err := s.repo.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	return results, nil
}

// Latest serves from the cache when possible and warms it on a store hit.
func (s *Service) Latest(ctx context.Context, asset string) (domain.ArbitrageResult, error) {
	asset = strings.ToUpper(asset)
	if res, ok := s.cache.GetLatest(asset); ok {
		return res, nil
	}

	results, err := s.repo.Query(ctx, domain.ResultFilter{Asset: asset, Limit: 1})
	if err != nil {
		return domain.ArbitrageResult{}, fmt.Errorf("failed to query latest result: %w", err)
	}
	if len(results) == 0 {
		return domain.ArbitrageResult{}, domain.ErrResultNotFound
	}
	s.cache.SetLatest(results[0])
	return results[0], nil
}

func NewService(repo adapters.ResultRepository, cache adapters.ResultCache) *Service {
	return &Service{repo: repo, cache: cache}
}
