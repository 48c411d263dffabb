package timezone

import "time"

const DefaultTimezone = "Asia/Singapore"

// fixed UTC+8, used when the host has no tz database
var fallback = time.FixedZone("SGT", 8*60*60)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return fallback
}

// ======================================================
// CLOCK
// ======================================================

// Clock is the single civil timezone of the system. Every comparison
// against "now" and every day boundary goes through it.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(tz string) *Clock {
	return &Clock{loc: Location(tz), now: time.Now}
}

// FixedClock always reports the same instant. Used by tests.
func FixedClock(tz string, at time.Time) *Clock {
	return &Clock{loc: Location(tz), now: func() time.Time { return at }}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Clock) ToLocal(t time.Time) time.Time {
	return t.In(c.loc)
}

func (c *Clock) StartOfDay(t time.Time) time.Time {
	l := t.In(c.loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, c.loc)
}

// EndOfDay is exclusive: the civil midnight that starts the next day.
func (c *Clock) EndOfDay(t time.Time) time.Time {
	return c.StartOfDay(t).AddDate(0, 0, 1)
}

func (c *Clock) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, c.loc)
}

func (c *Clock) ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, s, c.loc)
}

func (c *Clock) SameDay(a, b time.Time) bool {
	return c.StartOfDay(a).Equal(c.StartOfDay(b))
}
