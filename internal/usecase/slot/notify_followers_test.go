package slot

import (
	"context"
	"sync"
	"testing"

	"github.com/BruksfildServices01/barber-slots/internal/logs"
	"github.com/BruksfildServices01/barber-slots/internal/models"
	"github.com/BruksfildServices01/barber-slots/internal/notify"
)

type recordingSender struct {
	mu    sync.Mutex
	sent  []notify.SlotsOpened
	peers []string
}

func (r *recordingSender) Send(ctx context.Context, to models.Follower, n notify.SlotsOpened) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	r.peers = append(r.peers, to.CustomerID)
	return nil
}

func pending(t *testing.T, e *env) bool {
	t.Helper()
	b, err := e.store.GetBarber(context.Background(), "barber-1")
	if err != nil {
		t.Fatalf("get barber: %v", err)
	}
	return b.PendingNotification
}

func TestOpenFlagsBarberUntilNotified(t *testing.T) {
	e := newEnv(t, sgt(2025, 5, 31, 12, 0))
	ctx := context.Background()

	if err := e.store.AddFollower(ctx, &models.Follower{BarberID: "barber-1", CustomerID: "alice"}); err != nil {
		t.Fatalf("follow: %v", err)
	}

	if _, err := e.editor.Open(ctx, "barber-1", "2025-06-01", []string{"2025-06-01 09:00"}); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := e.editor.Open(ctx, "barber-1", "2025-06-02", []string{"2025-06-02 09:50", "2025-06-02 09:00"}); err != nil {
		t.Fatalf("open: %v", err)
	}
	if !pending(t, e) {
		t.Fatal("opening slots should flag the barber")
	}

	// a profile save must not reset the flag
	if err := e.store.UpsertBarber(ctx, &models.Barber{ID: "barber-1", Name: "Sam", Email: "sam@example.com"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !pending(t, e) {
		t.Fatal("profile save cleared the flag")
	}

	sender := &recordingSender{}
	n := NewFollowerNotifier(e.store, e.store, e.clock, sender, logs.Discard())

	handled, err := n.NotifyPending(ctx)
	if err != nil || handled != 1 {
		t.Fatalf("notify pending: handled=%d err=%v", handled, err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected one notice per day, got %d", len(sender.sent))
	}
	if sender.sent[0].Date != "2025-06-01" || sender.sent[1].Date != "2025-06-02" {
		t.Fatalf("unexpected days: %s, %s", sender.sent[0].Date, sender.sent[1].Date)
	}
	if got := sender.sent[1].Starts; len(got) != 2 || got[0] != "2025-06-02 09:00" {
		t.Fatalf("unexpected starts: %v", got)
	}
	if pending(t, e) {
		t.Fatal("flag should be cleared after notifying")
	}

	handled, _ = n.NotifyPending(ctx)
	if handled != 0 || len(sender.sent) != 2 {
		t.Fatalf("second run should send nothing, handled=%d sent=%d", handled, len(sender.sent))
	}
}

func TestManualNotifyClearsFlag(t *testing.T) {
	e := newEnv(t, sgt(2025, 5, 31, 12, 0))
	ctx := context.Background()

	if _, err := e.editor.Open(ctx, "barber-1", "2025-06-01", []string{"2025-06-01 09:00"}); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := e.editor.NotifyFollowers(ctx, "barber-1", "2025-06-01", []string{"2025-06-01 09:00"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if pending(t, e) {
		t.Fatal("manual notice should clear the flag")
	}
}
