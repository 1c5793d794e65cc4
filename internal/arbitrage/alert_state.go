package arbitrage

import (
	"strings"
	"sync"
	"time"
)

// AlertState remembers when each asset last alerted. It lives only in memory.
type AlertState struct {
	mu   sync.Mutex
	last map[string]time.Time
}

// TryBegin claims the alert slot for asset unless it is still cooling down.
// The claim and the check happen under one lock, so concurrent callers
// for the same asset get exactly one true.
func (s *AlertState) TryBegin(asset string, now time.Time, cooldown time.Duration) bool {
	key := strings.ToUpper(asset)

	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.last[key]; ok && now.Sub(last) < cooldown {
		return false
	}
	s.last[key] = now
	return true
}

func (s *AlertState) LastAlert(asset string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.last[strings.ToUpper(asset)]
	return t, ok
}

func NewAlertState() *AlertState {
	return &AlertState{last: make(map[string]time.Time)}
}
