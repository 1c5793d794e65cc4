package arbitrage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"arbscanner/internal/adapters"
	"arbscanner/internal/adapters/exchanges"
	"arbscanner/internal/domain"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
)

type AssetStatus string

const (
	StatusRecorded     AssetStatus = "recorded"
	StatusInsufficient AssetStatus = "insufficient_data"
	StatusStoreFailed  AssetStatus = "store_failed"
	StatusFailed       AssetStatus = "failed"
	StatusPanicked     AssetStatus = "panicked"
)

type AssetOutcome struct {
	Asset    string
	Status   AssetStatus
	Result   domain.ArbitrageResult // set when Status is StatusRecorded
	Absent   map[string]domain.AbsenceReason
	Decision Decision
	Err      error
}

type CycleReport struct {
	ExecID   string
	Started  time.Time
	Duration time.Duration
	Assets   []AssetOutcome // in configured asset order
}

func (r CycleReport) Count(status AssetStatus) int {
	n := 0
	for _, a := range r.Assets {
		if a.Status == status {
			n++
		}
	}
	return n
}

// Cycle runs one sampling tick: every asset goes through fetch, compute, append and dispatch.
type Cycle struct {
	assets     []string
	providers  []exchanges.Provider
	fetcher    *Fetcher
	calculator *Calculator
	repo       adapters.ResultRepository
	cache      adapters.ResultCache
	dispatcher *Dispatcher
	clock      clockwork.Clock
}

func (c *Cycle) Run(ctx context.Context, execID string) CycleReport {
	report := CycleReport{
		ExecID:  execID,
		Started: c.clock.Now(),
		Assets:  make([]AssetOutcome, len(c.assets)),
	}

	p := pool.New().WithMaxGoroutines(max(len(c.assets), 1))
	for i, asset := range c.assets {
		p.Go(func() {
			report.Assets[i] = c.runAsset(ctx, execID, asset)
		})
	}
	p.Wait()

	report.Duration = c.clock.Since(report.Started)
	return report
}

// runAsset keeps a panic in one asset pipeline from taking down the others.
func (c *Cycle) runAsset(ctx context.Context, execID, asset string) AssetOutcome {
	var out AssetOutcome
	var pc panics.Catcher
	pc.Try(func() {
		out = c.processAsset(ctx, execID, asset)
	})
	if r := pc.Recovered(); r != nil {
		err := r.AsError()
		logrus.WithError(err).WithFields(logrus.Fields{"asset": asset, "exec_id": execID}).Error("asset pipeline panicked")
		return AssetOutcome{Asset: asset, Status: StatusPanicked, Err: err}
	}
	return out
}

func (c *Cycle) processAsset(ctx context.Context, execID, asset string) AssetOutcome {
	log := logrus.WithFields(logrus.Fields{"asset": asset, "exec_id": execID})

	// STEP 1: fetching quotes, failed providers are simply absent
	fetched := c.fetcher.Fetch(ctx, asset, c.providers)
	out := AssetOutcome{Asset: asset, Absent: fetched.Absent()}

	// STEP 2: computing the best spread
	result, err := c.calculator.Compute(asset, fetched.Quotes(), c.clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientData) {
			log.WithField("absent", out.Absent).Info("not enough quotes this cycle, skipping")
			out.Status = StatusInsufficient
			return out
		}
		log.WithError(err).Error("failed to compute arbitrage result")
		out.Status, out.Err = StatusFailed, err
		return out
	}

	// STEP 3: persisting; nothing is alerted for a result that was not stored
	id, err := c.repo.Append(ctx, result)
	if err != nil {
		log.WithError(err).Error("failed to store arbitrage result")
		out.Status, out.Err = StatusStoreFailed, fmt.Errorf("failed to append result: %w", err)
		return out
	}
	result.ID = id
	c.cache.SetLatest(result)

	// STEP 4: alerting
	out.Status = StatusRecorded
	out.Result = result
	out.Decision = c.dispatcher.Dispatch(ctx, result)

	log.WithFields(logrus.Fields{
		"gross_pct": result.GrossSpreadPct,
		"net_pct":   result.NetProfitPct,
		"buy":       result.BuyExchange,
		"sell":      result.SellExchange,
		"decision":  out.Decision,
	}).Debug("arbitrage result recorded")
	return out
}

func NewCycle(
	assets []string,
	providers []exchanges.Provider,
	fetcher *Fetcher,
	calculator *Calculator,
	repo adapters.ResultRepository,
	cache adapters.ResultCache,
	dispatcher *Dispatcher,
	clock clockwork.Clock,
) *Cycle {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cycle{
		assets:     assets,
		providers:  providers,
		fetcher:    fetcher,
		calculator: calculator,
		repo:       repo,
		cache:      cache,
		dispatcher: dispatcher,
		clock:      clock,
	}
}
