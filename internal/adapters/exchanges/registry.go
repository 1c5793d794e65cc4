package exchanges

import (
	"fmt"
	"strings"
)

// Registry is the fixed set of supported exchanges. It is built once at startup
// and never changes afterwards.
type Registry struct {
	byName map[string]Provider
	order  []string
}

func (r *Registry) Lookup(name string) (Provider, bool) {
	p, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Select resolves configured exchange names, keeping the given order and dropping duplicates.
func (r *Registry) Select(names []string) ([]Provider, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no exchanges configured")
	}
	seen := make(map[string]struct{}, len(names))
	providers := make([]Provider, 0, len(names))
	for _, name := range names {
		p, ok := r.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown exchange %q, supported: %s", name, strings.Join(r.order, ", "))
		}
		if _, dup := seen[p.Name()]; dup {
			continue
		}
		seen[p.Name()] = struct{}{}
		providers = append(providers, p)
	}
	return providers, nil
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{byName: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if _, ok := r.byName[p.Name()]; ok {
			continue
		}
		r.byName[p.Name()] = p
		r.order = append(r.order, p.Name())
	}
	return r
}

// DefaultRegistry returns the four exchanges pointed at their production endpoints.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewKrakenProvider(""),
		NewCoinbaseProvider(""),
		NewBitfinexProvider(""),
		NewGeminiProvider(""),
	)
}
