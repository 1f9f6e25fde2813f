package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conjam/internal/core"
)

// Surface is the presentation collaborator. Draw receives the buffer the
// step just wrote; Alive is polled once per tick before any dispatch.
type Surface interface {
	Draw(f core.Frame) error
	Alive() bool
}

// LossReasoner is implemented by surfaces that can say why they died.
// destroyed is true when the loss was an intentional teardown.
type LossReasoner interface {
	LossReason() (reason string, destroyed bool)
}

// LostError reports a surface that stopped being valid mid-run.
type LostError struct {
	Reason    string
	Destroyed bool
	Step      uint64
}

func (e *LostError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("surface lost at step %d", e.Step)
	}
	return fmt.Sprintf("surface lost at step %d: %s", e.Step, e.Reason)
}

// Unwrap lets errors.Is match core.ErrResourceLost.
func (e *LostError) Unwrap() error { return core.ErrResourceLost }

// Stats describes one completed tick.
type Stats struct {
	Step       uint64
	Buffer     core.BufferID
	Population int
	StepTime   time.Duration
}

// Loop runs one step followed by one draw per tick.
type Loop struct {
	Session  *Session
	Surface  Surface
	Interval time.Duration
	// MaxSteps ends the run after the session reaches this many steps.
	MaxSteps int
	// Observe, when set, is called after every tick.
	Observe func(Stats)
}

// NewLoop builds a loop using the session's configured interval and limit.
func NewLoop(s *Session, surface Surface) *Loop {
	cfg := s.Config()
	return &Loop{Session: s, Surface: surface, Interval: cfg.TickInterval, MaxSteps: cfg.MaxSteps}
}

// Run ticks immediately and then once per Interval until ctx is done, the
// step limit is reached or the surface is lost. Cancellation is a clean
// shutdown and returns nil, even when the surface died with it.
func (l *Loop) Run(ctx context.Context) error {
	if l.Session == nil || l.Surface == nil {
		return errors.New("loop: session and surface are required")
	}
	interval := l.Interval
	if interval <= 0 {
		interval = l.Session.Config().TickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if l.done() {
			return nil
		}
		if err := l.Tick(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			// a surface torn down while shutting down is not a loss
			if errors.Is(err, core.ErrResourceLost) && ctx.Err() != nil {
				return nil
			}
			return err
		}
		if l.done() {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (l *Loop) done() bool {
	return l.MaxSteps > 0 && l.Session.StepCount() >= uint64(l.MaxSteps)
}

// Tick runs a single step and draws its result.
func (l *Loop) Tick(ctx context.Context) error {
	if !l.Surface.Alive() {
		lost := &LostError{Step: l.Session.StepCount()}
		if lr, ok := l.Surface.(LossReasoner); ok {
			lost.Reason, lost.Destroyed = lr.LossReason()
		}
		return lost
	}
	start := time.Now()
	if err := l.Session.Step(ctx); err != nil {
		return err
	}
	elapsed := time.Since(start)
	frame := l.Session.Frame()
	if err := l.Surface.Draw(frame); err != nil {
		return fmt.Errorf("draw step %d: %w", frame.Step, err)
	}
	if l.Observe != nil {
		l.Observe(Stats{
			Step:       frame.Step,
			Buffer:     frame.Buffer,
			Population: l.Session.Population(),
			StepTime:   elapsed,
		})
	}
	core.Logger().Debug("tick", "step", frame.Step, "buffer", frame.Buffer.String(), "elapsed", elapsed)
	return nil
}
