package arbitrage

import (
	"context"
	"time"

	"arbscanner/internal/adapters"
	"arbscanner/internal/domain"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const DefaultAlertCooldown = 600 * time.Second

type Decision string

const (
	DecisionBelowThreshold Decision = "below_threshold"
	DecisionCoolingDown    Decision = "cooling_down"
	DecisionSent           Decision = "sent"
	DecisionInert          Decision = "inert"
	DecisionFailed         Decision = "delivery_failed"
)

// Dispatcher decides whether a result deserves an alert and delivers it.
// With a nil notifier it still tracks cooldowns but never touches the network.
type Dispatcher struct {
	state        *AlertState
	notifier     adapters.Notifier
	clock        clockwork.Clock
	threshold    float64
	cooldown     time.Duration
	dashboardURL string
}

func (d *Dispatcher) Dispatch(ctx context.Context, result domain.ArbitrageResult) Decision {
	if result.NetProfitPct < d.threshold {
		return DecisionBelowThreshold
	}
	if !d.state.TryBegin(result.Asset, d.clock.Now(), d.cooldown) {
		return DecisionCoolingDown
	}

	log := logrus.WithFields(logrus.Fields{
		"asset":         result.Asset,
		"net_pct":       result.NetProfitPct,
		"buy_exchange":  result.BuyExchange,
		"sell_exchange": result.SellExchange,
	})
	if d.notifier == nil {
		log.Info("profitable spread found, alert channel is not configured")
		return DecisionInert
	}

	// the slot stays claimed even when delivery fails
	if err := d.notifier.Notify(ctx, domain.NewAlert(result, d.dashboardURL)); err != nil {
		log.WithError(err).Error("failed to deliver alert")
		return DecisionFailed
	}
	log.Info("alert sent")
	return DecisionSent
}

func NewDispatcher(state *AlertState, notifier adapters.Notifier, clock clockwork.Clock, thresholdPct float64, cooldown time.Duration, dashboardURL string) *Dispatcher {
	if cooldown < 0 {
		cooldown = DefaultAlertCooldown
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Dispatcher{
		state:        state,
		notifier:     notifier,
		clock:        clock,
		threshold:    thresholdPct,
		cooldown:     cooldown,
		dashboardURL: dashboardURL,
	}
}
