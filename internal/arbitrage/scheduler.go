package arbitrage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const DefaultCycleInterval = 30 * time.Second

type Scheduler struct {
	cycle         *Cycle
	cycleInterval time.Duration
	// -----
	mu    sync.Mutex // guards sched
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLogger(gocronLogger{}))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		report := s.cycle.Run(jobCtx, execID)
		logrus.WithFields(logrus.Fields{
			"exec_id":      execID,
			"recorded":     report.Count(StatusRecorded),
			"insufficient": report.Count(StatusInsufficient),
			"failed":       report.Count(StatusStoreFailed) + report.Count(StatusFailed) + report.Count(StatusPanicked),
			"took":         report.Duration,
		}).Info("cycle finished")
	}

	// a slow cycle pushes the next one back instead of overlapping it
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.cycleInterval),
		gocron.NewTask(job),
		gocron.WithName("arbitrage-cycle"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return fmt.Errorf("failed to schedule cycle job: %w", err)
	}

	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// Shutdown stops the scheduler once; later calls are no-ops.
func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	sched := s.sched
	s.sched = nil
	s.mu.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewScheduler(cycle *Cycle, cycleInterval time.Duration) *Scheduler {
	if cycleInterval <= 0 {
		cycleInterval = DefaultCycleInterval
	}
	return &Scheduler{cycle: cycle, cycleInterval: cycleInterval}
}

// gocronLogger routes scheduler diagnostics through logrus.
type gocronLogger struct{}

func (gocronLogger) Debug(msg string, args ...any) { entry(args).Debug(msg) }
func (gocronLogger) Error(msg string, args ...any) { entry(args).Error(msg) }
func (gocronLogger) Info(msg string, args ...any)  { entry(args).Info(msg) }
func (gocronLogger) Warn(msg string, args ...any)  { entry(args).Warn(msg) }

// entry turns gocron's key/value pairs into logrus fields.
func entry(args []any) *logrus.Entry {
	fields := logrus.Fields{"component": "gocron"}
	for i := 0; i+1 < len(args); i += 2 {
		fields[fmt.Sprint(args[i])] = args[i+1]
	}
	return logrus.WithFields(fields)
}
