package arbitrage

import (
	"context"
	"sort"
	"sync"
	"time"

	"arbscanner/internal/adapters"
	"arbscanner/internal/adapters/exchanges"
	"arbscanner/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/panics"
)

const numWorkers = 4
const perRequestTimeout = 10 * time.Second

// ProviderOutcome is either a Quote or an error explaining why the provider is absent.
type ProviderOutcome struct {
	Provider string
	Quote    domain.Quote
	Err      error
}

func (o ProviderOutcome) Reason() domain.AbsenceReason {
	if o.Err == nil {
		return ""
	}
	return domain.ReasonOf(o.Err)
}

type FetchReport struct {
	Asset    string
	Outcomes []ProviderOutcome // sorted by provider name
}

// Quotes returns the partial QuoteSet built from successful outcomes.
func (r FetchReport) Quotes() domain.QuoteSet {
	quotes := make(domain.QuoteSet, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Err == nil {
			quotes[o.Provider] = o.Quote
		}
	}
	return quotes
}

func (r FetchReport) Absent() map[string]domain.AbsenceReason {
	absent := make(map[string]domain.AbsenceReason)
	for _, o := range r.Outcomes {
		if o.Err != nil {
			absent[o.Provider] = o.Reason()
		}
	}
	return absent
}

type Fetcher struct {
	client  adapters.QuoteClient
	workers int
	timeout time.Duration
}

// Fetch queries every provider for asset and never fails as a whole:
// a failing provider only shows up as an absent outcome.
func (f *Fetcher) Fetch(ctx context.Context, asset string, providers []exchanges.Provider) FetchReport {
	// STEP 1: filling the work queue with providers
	workQueue := make(chan exchanges.Provider, len(providers))
	for _, p := range providers {
		workQueue <- p
	}
	close(workQueue)

	// STEP 2: running workers, each one pushes outcomes into the channel
	outcomesCh := make(chan ProviderOutcome, len(providers))

	var wg sync.WaitGroup
	for i := 0; i < min(f.workers, len(providers)); i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			f.runWorker(ctx, workerID, asset, workQueue, outcomesCh)
		}(i)
	}

	wg.Wait()
	close(outcomesCh)

	// STEP 3: collecting outcomes; providers left in the queue after cancellation are reported as canceled
	report := FetchReport{Asset: asset, Outcomes: make([]ProviderOutcome, 0, len(providers))}
	for o := range outcomesCh {
		report.Outcomes = append(report.Outcomes, o)
	}
	for p := range workQueue {
		report.Outcomes = append(report.Outcomes, ProviderOutcome{
			Provider: p.Name(),
			Err:      domain.NewProviderError(p.Name(), domain.ReasonCanceled, ctx.Err()),
		})
	}
	sort.Slice(report.Outcomes, func(i, j int) bool {
		return report.Outcomes[i].Provider < report.Outcomes[j].Provider
	})
	return report
}

func (f *Fetcher) runWorker(ctx context.Context, workerID int, asset string, workQueue <-chan exchanges.Provider, outcomesCh chan<- ProviderOutcome) {
	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-workQueue:
			if !ok {
				return
			}
			outcomesCh <- f.safeProcessProvider(ctx, workerID, asset, p)
		}
	}
}

// safeProcessProvider turns a panic while talking to one provider into an absent outcome.
func (f *Fetcher) safeProcessProvider(ctx context.Context, workerID int, asset string, p exchanges.Provider) ProviderOutcome {
	var out ProviderOutcome
	var pc panics.Catcher
	pc.Try(func() {
		out = f.processProvider(ctx, workerID, asset, p)
	})
	if r := pc.Recovered(); r != nil {
		err := domain.NewProviderError(p.Name(), domain.ReasonDecode, r.AsError())
		logrus.WithError(err).WithFields(logrus.Fields{"asset": asset, "provider": p.Name()}).Error("provider handling panicked")
		return ProviderOutcome{Provider: p.Name(), Err: err}
	}
	return out
}

func (f *Fetcher) processProvider(ctx context.Context, workerID int, asset string, p exchanges.Provider) ProviderOutcome {
	// a slow exchange is dropped for this cycle rather than holding up the others
	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	quote, err := f.client.FetchQuote(reqCtx, p, asset)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"asset":    asset,
			"provider": p.Name(),
			"reason":   domain.ReasonOf(err),
			"worker":   workerID,
		}).Warn("provider dropped from this cycle")
		return ProviderOutcome{Provider: p.Name(), Err: err}
	}
	return ProviderOutcome{Provider: p.Name(), Quote: quote}
}

func NewFetcher(client adapters.QuoteClient) *Fetcher {
	return &Fetcher{client: client, workers: numWorkers, timeout: perRequestTimeout}
}
