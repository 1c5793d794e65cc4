package arbitrage

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"arbscanner/internal/domain"
)

var (
	ErrAssetRequired    = errors.New("asset is required")
	ErrAssetUnsupported = errors.New("asset not tracked")
	ErrInvalidLimit     = fmt.Errorf("limit must be an integer between 1 and %d", domain.MaxResultLimit)
)

// AssetValidator checks read API input against the tracked configuration.
type AssetValidator struct {
	assetsSet map[string]struct{} // read only copy
	assetsLst []string            // read only copy
	exchanges []string            // read only copy
}

func (v *AssetValidator) ValidateAsset(asset string) error {
	if asset == "" {
		return ErrAssetRequired
	}
	if _, ok := v.assetsSet[asset]; !ok {
		return ErrAssetUnsupported
	}
	return nil
}

// ParseFilter builds a ResultFilter from raw query values. An empty asset means all assets.
func (v *AssetValidator) ParseFilter(asset, limit string) (domain.ResultFilter, error) {
	filter := domain.ResultFilter{Asset: strings.ToUpper(strings.TrimSpace(asset)), Limit: domain.DefaultResultLimit}
	if filter.Asset != "" {
		if err := v.ValidateAsset(filter.Asset); err != nil {
			return domain.ResultFilter{}, err
		}
	}
	if limit = strings.TrimSpace(limit); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > domain.MaxResultLimit {
			return domain.ResultFilter{}, ErrInvalidLimit
		}
		filter.Limit = n
	}
	return filter, nil
}

func (v *AssetValidator) TrackedAssets() []string {
	return slices.Clone(v.assetsLst)
}

func (v *AssetValidator) TrackedExchanges() []string {
	return slices.Clone(v.exchanges)
}

func NewValidator(assets, exchanges []string) *AssetValidator {
	set := make(map[string]struct{}, len(assets))
	lst := make([]string, 0, len(assets))
	for _, a := range assets {
		a = strings.ToUpper(a)
		if _, ok := set[a]; ok {
			continue
		}
		set[a] = struct{}{}
		lst = append(lst, a)
	}
	slices.Sort(lst)

	return &AssetValidator{
		assetsSet: set,
		assetsLst: lst,
		exchanges: slices.Clone(exchanges),
	}
}
