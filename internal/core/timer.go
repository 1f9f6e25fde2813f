package core

import "time"

// FixedStep gates simulation steps to a steady wall-clock interval when the
// host loop runs at its own rate (the ebiten update loop, for instance).
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	clock       func() time.Time
}

// NewFixedStep constructs a FixedStep controller firing once per interval.
// The first call to ShouldStep fires immediately.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{clock: time.Now}
	fs.SetInterval(interval)
	fs.accumulator = fs.step
	return fs
}

// SetInterval changes the step period. It is safe to call from the main loop.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	f.step = interval
}

// Interval returns the current step period.
func (f *FixedStep) Interval() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick.
// At most one step fires per call; missed ticks are not replayed in a burst
// beyond one interval of debt.
func (f *FixedStep) ShouldStep() bool {
	now := f.clock()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			f.accumulator = f.step
		}
		return true
	}
	return false
}
