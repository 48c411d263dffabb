package slot

import (
	"reflect"
	"testing"
	"time"
)

func sgt(t *testing.T) *time.Location {
	t.Helper()
	return time.FixedZone("SGT", 8*60*60)
}

func TestGenerateIsDeterministic(t *testing.T) {
	loc := sgt(t)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	p := DefaultPolicy()

	first := p.Generate(day, "barber-1")
	second := p.Generate(day, "barber-1")

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical sequences, got %v and %v", first, second)
	}
	if len(first) != p.Count {
		t.Fatalf("expected %d slots, got %d", p.Count, len(first))
	}
}

func TestGenerateGrid(t *testing.T) {
	loc := sgt(t)
	day := time.Date(2025, 6, 1, 15, 30, 0, 0, loc)

	got := DefaultPolicy().Generate(day, "barber-1")

	if got[0].Key() != "2025-06-01 09:00" {
		t.Fatalf("first slot: got %s", got[0].Key())
	}
	if got[1].Key() != "2025-06-01 10:00" {
		t.Fatalf("second slot: got %s", got[1].Key())
	}
	if d := got[0].End.Sub(got[0].Start); d != 50*time.Minute {
		t.Fatalf("duration: got %s", d)
	}
	for i := 1; i < len(got); i++ {
		if !got[i].Start.After(got[i-1].Start) {
			t.Fatalf("slots not ordered at %d", i)
		}
	}
}

func TestPolicyValidate(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}

	p := DefaultPolicy()
	p.Count = 40
	if err := p.Validate(); err == nil {
		t.Fatalf("expected overflow past midnight to be rejected")
	}

	p = DefaultPolicy()
	p.Duration = 0
	if err := p.Validate(); err == nil {
		t.Fatalf("expected zero duration to be rejected")
	}
}

func TestParseAnchor(t *testing.T) {
	d, err := ParseAnchor("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 9*time.Hour+30*time.Minute {
		t.Fatalf("got %s", d)
	}
	if _, err := ParseAnchor("9h"); err == nil {
		t.Fatalf("expected error")
	}
}
