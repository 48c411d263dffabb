package audit

import (
	"context"
	"log/slog"
	"sync"
)

type Event struct {
	BarberID string
	ActorID  string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

const (
	ActionBookingCreated   = "booking_created"
	ActionBookingCancelled = "booking_cancelled"
	ActionBookingCompleted = "booking_completed"
	ActionBookingNoShow    = "booking_no_show"
	ActionBookingConflict  = "booking_conflict"
	ActionSlotsOpened      = "slots_opened"
	ActionSlotsClosed      = "slots_closed"
	ActionSlotsSwept       = "slots_swept"
)

// Dispatcher writes events off the request path. When the queue is full
// the event is dropped; auditing never fails a request.
type Dispatcher struct {
	logger *Logger
	log    *slog.Logger
	queue  chan Event
	done   chan struct{}

	// guards queue against sends after Close
	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger *Logger, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(context.Background(), ev); err != nil {
			d.log.Warn("audit write failed", slog.String("action", ev.Action), slog.Any("err", err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", slog.String("action", ev.Action))
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", slog.String("action", ev.Action))
	}
}

// Close drains the queue and waits for the worker. Events dispatched
// afterwards are dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
