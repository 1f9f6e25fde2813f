package core

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Grid", Params: []Parameter{{Key: "size", Label: "Size", Value: "8x8"}}},
		{Name: "State", Params: []Parameter{{Key: "step", Label: "Step", Value: "3"}}},
	}}
	if v, ok := snap.Lookup("step"); !ok || v != "3" {
		t.Fatalf("Lookup(step) = %q, %v", v, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("Lookup found a missing key")
	}
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	SetLogger(custom)
	if Logger() != custom {
		t.Fatal("SetLogger did not install the logger")
	}
	SetLogger(nil)
	if Logger() == nil || Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("default logger must be a silent no-op")
	}
}
