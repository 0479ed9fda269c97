package collide

import (
	"time"
)

// Time is the frame clock a scene loop advances once per frame.
type Time struct {
	Time time.Time
	Dt   time.Duration
}

func NewTime() *Time {
	return &Time{Time: time.Now()}
}

func (t *Time) Tick() time.Duration {
	return t.TickAt(time.Now())
}

// TickAt advances the clock to now and returns the elapsed frame time.
func (t *Time) TickAt(now time.Time) time.Duration {
	t.Dt = now.Sub(t.Time)
	t.Time = now
	return t.Dt
}
