package config

import (
	"testing"
	"time"
)

func TestSlotPolicyFromEnv(t *testing.T) {
	t.Setenv("SLOT_ANCHOR", "08:30")
	t.Setenv("SLOT_COUNT", "4")
	t.Setenv("SLOT_DURATION_MIN", "45")
	t.Setenv("SLOT_GAP_MIN", "15")

	p, err := Load().SlotPolicy()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Anchor != 8*time.Hour+30*time.Minute || p.Count != 4 {
		t.Fatalf("unexpected policy: %+v", p)
	}
	if p.Duration != 45*time.Minute || p.Gap != 15*time.Minute {
		t.Fatalf("unexpected policy: %+v", p)
	}
}

func TestSlotPolicyRejectsBadAnchor(t *testing.T) {
	t.Setenv("SLOT_ANCHOR", "nine")
	if _, err := Load().SlotPolicy(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSweepSchedule(t *testing.T) {
	c := &Config{}
	if c.SweepSchedule() != "*/15 * * * *" {
		t.Fatalf("unexpected default: %q", c.SweepSchedule())
	}
	c.SweepCron = "off"
	if c.SweepSchedule() != "" {
		t.Fatalf("expected sweep disabled")
	}
}

func TestSessionSelectionsDoNotExpireByDefault(t *testing.T) {
	t.Setenv("SESSION_TTL_MIN", "")
	if ttl := Load().SessionTTL; ttl != 0 {
		t.Fatalf("expected no session ttl, got %s", ttl)
	}
}
