package core

import (
	"errors"
	"image/color"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Size() != (Size{W: 128, H: 128}) {
		t.Fatalf("default size = %+v", cfg.Size())
	}
	if cfg.TileSize != 8 || cfg.TickInterval != 50*time.Millisecond || cfg.Density != 0.6 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*Config)
	}{
		{"width", func(c *Config) { c.Width = 0 }},
		{"height", func(c *Config) { c.Height = -2 }},
		{"tile", func(c *Config) { c.TileSize = 0 }},
		{"tick", func(c *Config) { c.TickInterval = 0 }},
		{"half", func(c *Config) { c.CellHalfExtent = 0 }},
		{"steps", func(c *Config) { c.MaxSteps = -1 }},
		{"density", func(c *Config) { c.Density = 1.5 }},
		{"color", func(c *Config) { c.Color = "rainbow" }},
		{"rule", func(c *Config) { c.Rule = "" }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		err := cfg.Validate()
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("%s: expected *ConfigError, got %v", tc.field, err)
		}
		if cfgErr.Field != tc.field {
			t.Fatalf("%s: error names field %q", tc.field, cfgErr.Field)
		}
		if !errors.Is(err, ErrConfiguration) {
			t.Fatalf("%s: error does not wrap ErrConfiguration", tc.field)
		}
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":       "64",
		"h":       "32",
		"tile":    "16",
		"workers": "3",
		"tick":    "25",
		"steps":   "10",
		"half":    "0.5",
		"color":   "FIXED",
		"fixed":   "#102030",
		"rule":    "sand",
		"seed":    "-7",
		"density": "0.25",
		"pattern": "false",
	})
	want := Config{
		Width:          64,
		Height:         32,
		TileSize:       16,
		Workers:        3,
		TickInterval:   25 * time.Millisecond,
		MaxSteps:       10,
		CellHalfExtent: 0.5,
		Color:          ColorFixed,
		FixedColor:     color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255},
		Rule:           "sand",
		Seed:           -7,
		Density:        0.25,
		Pattern:        false,
	}
	if cfg != want {
		t.Fatalf("FromMap = %+v\nwant %+v", cfg, want)
	}
}

func TestFromMapKeepsDefaultsOnBadValues(t *testing.T) {
	def := DefaultConfig()
	cfg := FromMap(map[string]string{"w": "wide", "tick": "soon", "fixed": "blue", "pattern": "maybe"})
	if cfg != def {
		t.Fatalf("bad values changed the config: %+v", cfg)
	}
	if got := FromMap(map[string]string{"tick": "1s"}).TickInterval; got != time.Second {
		t.Fatalf("tick duration = %v, want 1s", got)
	}
	if FromMap(nil) != def {
		t.Fatal("nil map must yield defaults")
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("e8c468")
	if err != nil {
		t.Fatalf("ParseHexColor: %v", err)
	}
	if c != (color.RGBA{R: 0xe8, G: 0xc4, B: 0x68, A: 255}) {
		t.Fatalf("color = %+v", c)
	}
	for _, bad := range []string{"", "#fff", "#gg0000", "1234567"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Fatalf("ParseHexColor(%q) accepted", bad)
		}
	}
}

func TestLookupRuleUnknown(t *testing.T) {
	_, err := LookupRule("no-such-rule", Size{W: 4, H: 4})
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

type constRule uint32

func (constRule) Name() string                           { return "const" }
func (c constRule) Next(int, int, uint32, Reader) uint32 { return uint32(c) }

func TestRegisterRule(t *testing.T) {
	RegisterRule("", func(Size) Rule { return constRule(1) })
	RegisterRule("const-test", nil)
	if _, ok := Rules()[""]; ok {
		t.Fatal("empty name registered")
	}
	if _, ok := Rules()["const-test"]; ok {
		t.Fatal("nil factory registered")
	}

	RegisterRule("const-test", func(Size) Rule { return constRule(1) })
	defer delete(rules, "const-test")
	r, err := LookupRule("const-test", Size{W: 2, H: 2})
	if err != nil {
		t.Fatalf("LookupRule: %v", err)
	}
	if r.Next(0, 0, 0, Reader{}) != 1 {
		t.Fatal("factory not used")
	}
	found := false
	for _, name := range RuleNames() {
		if name == "const-test" {
			found = true
		}
	}
	if !found {
		t.Fatalf("RuleNames() = %v, missing const-test", RuleNames())
	}
}
