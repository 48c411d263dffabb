package notify

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/barber-slots/internal/models"
)

// SlotsOpened is the notice sent to followers after a barber publishes
// new slots.
type SlotsOpened struct {
	BarberID   string    `json:"barber_id"`
	BarberName string    `json:"barber_name"`
	Date       string    `json:"date"`
	Starts     []string  `json:"starts"`
	SentAt     time.Time `json:"sent_at"`
}

// Sender delivers one notice to one follower.
type Sender interface {
	Send(ctx context.Context, to models.Follower, n SlotsOpened) error
}

// Result counts the outcome of a fan-out.
type Result struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// FanOut sends n to every follower with at most limit sends in flight.
// A failed recipient is logged and skipped; it never aborts the others.
func FanOut(
	ctx context.Context,
	log *slog.Logger,
	sender Sender,
	followers []models.Follower,
	n SlotsOpened,
	limit int,
) Result {

	if limit <= 0 {
		limit = 8
	}

	ok := make([]bool, len(followers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, f := range followers {
		i, f := i, f
		g.Go(func() error {
			if err := sender.Send(gctx, f, n); err != nil {
				log.Warn("follower notice failed",
					slog.String("barber_id", n.BarberID),
					slog.String("customer_id", f.CustomerID),
					slog.Any("err", err),
				)
				return nil
			}
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	var res Result
	for _, sent := range ok {
		if sent {
			res.Sent++
		} else {
			res.Failed++
		}
	}
	return res
}

// LogSender only records the notice. Used when no transport is set up.
type LogSender struct {
	Log *slog.Logger
}

func (s LogSender) Send(ctx context.Context, to models.Follower, n SlotsOpened) error {
	s.Log.Info("slots opened notice",
		slog.String("barber_id", n.BarberID),
		slog.String("customer_id", to.CustomerID),
		slog.Int("slots", len(n.Starts)),
	)
	return nil
}
