package core

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

// ColorMode selects how rendered cells are colored.
type ColorMode string

const (
	// ColorGradient derives the color from the cell position.
	ColorGradient ColorMode = "gradient"
	// ColorFixed paints every active cell with Config.FixedColor.
	ColorFixed ColorMode = "fixed"
)

// Config controls a simulation session. It is fixed at construction.
type Config struct {
	Width  int
	Height int

	// TileSize is the edge length of one square dispatch tile.
	TileSize int
	// Workers bounds the tiles evaluated concurrently; <= 0 means GOMAXPROCS.
	Workers int

	TickInterval time.Duration
	// MaxSteps stops the frame loop after this many steps; 0 runs forever.
	MaxSteps int

	// CellHalfExtent is the half-size of the unit quad before per-cell scaling.
	CellHalfExtent float64
	Color          ColorMode
	FixedColor     color.RGBA

	Rule string

	Seed int64
	// Density is the random threshold: a cell starts active when a uniform
	// draw in [0, 1) is strictly greater than Density.
	Density float64
	// Pattern overwrites the bar and stem near the first rows after the
	// random fill.
	Pattern bool
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Width:          128,
		Height:         128,
		TileSize:       8,
		TickInterval:   50 * time.Millisecond,
		CellHalfExtent: 1,
		Color:          ColorGradient,
		FixedColor:     color.RGBA{R: 232, G: 196, B: 104, A: 255},
		Rule:           "life",
		Seed:           42,
		Density:        0.6,
		Pattern:        true,
	}
}

// Size returns the grid dimensions.
func (c Config) Size() Size { return Size{W: c.Width, H: c.Height} }

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	if err := checkExtent(c.Width, c.Height); err != nil {
		return err
	}
	if c.TileSize <= 0 {
		return configErrorf("tile", "must be positive, got %d", c.TileSize)
	}
	if c.TickInterval <= 0 {
		return configErrorf("tick", "must be positive, got %v", c.TickInterval)
	}
	if c.CellHalfExtent <= 0 {
		return configErrorf("half", "must be positive, got %g", c.CellHalfExtent)
	}
	if c.MaxSteps < 0 {
		return configErrorf("steps", "must not be negative, got %d", c.MaxSteps)
	}
	if c.Density < 0 || c.Density > 1 {
		return configErrorf("density", "must be within [0, 1], got %g", c.Density)
	}
	switch c.Color {
	case ColorGradient, ColorFixed:
	default:
		return configErrorf("color", "unknown color mode %q", c.Color)
	}
	if c.Rule == "" {
		return configErrorf("rule", "must be set")
	}
	return nil
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Unparseable values keep their default; Validate rejects out-of-range ones.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Height = parsed
		}
	}
	if v, ok := cfg["tile"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.TileSize = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["tick"]; ok {
		if parsed, err := parseInterval(v); err == nil {
			c.TickInterval = parsed
		}
	}
	if v, ok := cfg["steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.MaxSteps = parsed
		}
	}
	if v, ok := cfg["half"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.CellHalfExtent = parsed
		}
	}
	if v, ok := cfg["color"]; ok {
		c.Color = ColorMode(strings.ToLower(v))
	}
	if v, ok := cfg["fixed"]; ok {
		if parsed, err := ParseHexColor(v); err == nil {
			c.FixedColor = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		c.Rule = v
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Density = parsed
		}
	}
	if v, ok := cfg["pattern"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Pattern = parsed
		}
	}
	return c
}

// parseInterval accepts a duration ("50ms") or a bare millisecond count.
func parseInterval(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(v)
}

// ParseHexColor parses "#rrggbb" or "rrggbb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
