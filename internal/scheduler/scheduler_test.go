package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
)

type countingSweeper struct{ runs int }

func (c *countingSweeper) SweepAll(ctx context.Context) (int, error) {
	c.runs++
	return 0, nil
}

type countingNotifier struct{ runs int }

func (c *countingNotifier) NotifyPending(ctx context.Context) (int, error) {
	c.runs++
	return 0, nil
}

func TestNewRejectsBadSpec(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := New("every minute", time.UTC, &countingSweeper{}, nil, log); err == nil {
		t.Fatalf("expected invalid spec to fail")
	}
}

func TestStartStop(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New("*/15 * * * *", time.UTC, &countingSweeper{}, &countingNotifier{}, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Start()
	s.Stop()
}

func TestJobSweepsThenDrainsPendingNotices(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sw, nt := &countingSweeper{}, &countingNotifier{}
	s, err := New("*/15 * * * *", time.UTC, sw, nt, log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := s.c.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one job, got %d", len(entries))
	}
	entries[0].Job.Run()

	if sw.runs != 1 || nt.runs != 1 {
		t.Fatalf("sweeps=%d notices=%d, want 1 and 1", sw.runs, nt.runs)
	}
}
