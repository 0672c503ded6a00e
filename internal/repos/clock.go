package repos

import "time"

// TimeLayout matches strftime('%Y-%m-%d %H:%M:%f') so stored stamps sort as text.
const TimeLayout = "2006-01-02 15:04:05.000"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func stamp(c Clock) string { return c.Now().UTC().Format(TimeLayout) }

// FakeClock is a manually advanced Clock for tests.
type FakeClock struct {
	now time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
