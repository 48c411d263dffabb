package audit

import (
	"sync"
	"testing"

	"github.com/BruksfildServices01/barber-slots/internal/logs"
)

func TestDispatcherDrainsOnClose(t *testing.T) {
	log := logs.Discard()
	d := NewDispatcher(New(nil, log), log)

	for i := 0; i < 10; i++ {
		d.Dispatch(Event{Action: ActionSlotsOpened, BarberID: "b1"})
	}
	d.Close()
	d.Close()
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: ActionBookingCreated})
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	log := logs.Discard()
	d := NewDispatcher(New(nil, log), log)
	d.Close()

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("dispatch after close panicked: %v", r)
		}
	}()
	d.Dispatch(Event{Action: ActionBookingCreated, BarberID: "b1"})
}

func TestDispatchRacingClose(t *testing.T) {
	log := logs.Discard()
	d := NewDispatcher(New(nil, log), log)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Dispatch(Event{Action: ActionSlotsSwept, BarberID: "b1"})
			}
		}()
	}
	d.Close()
	wg.Wait()
}
