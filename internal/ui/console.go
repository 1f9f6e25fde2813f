// Package ui holds the presentation surfaces that are not tied to a GPU:
// a line-oriented console reporter and an interactive terminal view. The
// window HUD and overlay live here too under the ebiten build tag.
package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"conjam/internal/core"
	"conjam/internal/engine"

	"github.com/logrusorgru/aurora"
)

// Console is a headless surface that reports progress as colored lines.
type Console struct {
	w      io.Writer
	every  uint64
	frames uint64
	closed atomic.Bool
}

// NewConsole reports to w once every `every` steps; every <= 0 reports each
// step.
func NewConsole(w io.Writer, every int) *Console {
	if every <= 0 {
		every = 1
	}
	return &Console{w: w, every: uint64(every)}
}

// Draw accepts a frame. The console only counts them; Observe prints.
func (c *Console) Draw(core.Frame) error {
	c.frames++
	return nil
}

// Alive reports whether Close has been called.
func (c *Console) Alive() bool { return !c.closed.Load() }

// LossReason reports a closed console as an intentional teardown.
func (c *Console) LossReason() (string, bool) { return "console closed", true }

// Frames returns the number of frames drawn.
func (c *Console) Frames() uint64 { return c.frames }

// Observe prints s when its step falls on the reporting interval.
func (c *Console) Observe(s engine.Stats) {
	if s.Step%c.every != 0 {
		return
	}
	_, _ = fmt.Fprintln(c.w, StatusLine(s))
}

// Close stops the console; the loop notices on its next tick.
func (c *Console) Close() error {
	c.closed.Store(true)
	return nil
}

// StatusLine formats one tick as a single colored line.
func StatusLine(s engine.Stats) string {
	return renderProp("step", "%-6d", s.Step) +
		renderProp("buffer", "%s", s.Buffer) +
		renderProp("active", "%-6d", s.Population) +
		renderProp("time", "%v", s.StepTime.Round(time.Microsecond))
}

func renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}
