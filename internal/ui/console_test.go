package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"conjam/internal/core"
	"conjam/internal/engine"
)

func TestConsoleReportsEveryN(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, 3)
	for step := uint64(1); step <= 7; step++ {
		if err := c.Draw(core.Frame{Step: step}); err != nil {
			t.Fatalf("Draw: %v", err)
		}
		c.Observe(engine.Stats{Step: step, Population: int(step) * 2})
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("printed %d lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "12") {
		t.Fatalf("line for step 6 = %q", lines[1])
	}
	if c.Frames() != 7 {
		t.Fatalf("frames = %d", c.Frames())
	}
}

func TestConsoleClose(t *testing.T) {
	c := NewConsole(&bytes.Buffer{}, 0)
	if !c.Alive() {
		t.Fatal("new console is not alive")
	}
	_ = c.Close()
	if c.Alive() {
		t.Fatal("closed console is alive")
	}
	if _, destroyed := c.LossReason(); !destroyed {
		t.Fatal("closing must be an intentional teardown")
	}
}

func TestStatusAndConfigLines(t *testing.T) {
	line := StatusLine(engine.Stats{Step: 42, Buffer: core.BufferB, Population: 7, StepTime: 1500 * time.Nanosecond})
	for _, part := range []string{"step", "42", "B", "active", "7"} {
		if !strings.Contains(line, part) {
			t.Fatalf("status line %q is missing %q", line, part)
		}
	}
	if got := len(StatusLines(engine.Stats{})); got != 4 {
		t.Fatalf("status lines = %d", got)
	}

	cfg := core.DefaultConfig()
	cfg.MaxSteps = 12
	joined := strings.Join(ConfigLines(cfg), "\n")
	for _, part := range []string{"life", "128 x 128", "12 steps", "42"} {
		if !strings.Contains(joined, part) {
			t.Fatalf("configuration lines are missing %q:\n%s", part, joined)
		}
	}
}
