package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper is what the periodic job runs.
type Sweeper interface {
	SweepAll(ctx context.Context) (int, error)
}

// Notifier drains barbers whose followers still wait for a new-slots
// notice.
type Notifier interface {
	NotifyPending(ctx context.Context) (int, error)
}

// Scheduler runs the expired-slot sweep, then the pending follower
// notices, on a cron spec in the civil timezone. Runs never overlap.
type Scheduler struct {
	c   *cron.Cron
	log *slog.Logger
}

// New schedules the job. notifier may be nil.
func New(spec string, loc *time.Location, sweeper Sweeper, notifier Notifier, log *slog.Logger) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if _, err := sweeper.SweepAll(ctx); err != nil {
			log.Error("scheduled sweep failed", slog.Any("err", err))
		}
		if notifier == nil {
			return
		}
		if _, err := notifier.NotifyPending(ctx); err != nil {
			log.Error("pending notifications failed", slog.Any("err", err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("sweep schedule %q: %w", spec, err)
	}

	return &Scheduler{c: c, log: log}, nil
}

func (s *Scheduler) Start() {
	s.c.Start()
	s.log.Info("sweep scheduler started", slog.Int("jobs", len(s.c.Entries())))
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}
