package app

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"conjam/internal/core"
	_ "conjam/internal/rules"

	"github.com/integrii/flaggy"
)

func TestDefaultFlagsMatchDefaultConfig(t *testing.T) {
	cfg, err := NewFlags().Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg != core.DefaultConfig() {
		t.Fatalf("default flags = %+v\nwant %+v", cfg, core.DefaultConfig())
	}
}

func TestFlagsParse(t *testing.T) {
	f := NewFlags()
	p := flaggy.NewParser("conjam-test")
	f.Bind(&p.Subcommand)
	f.BindWindow(&p.Subcommand)
	err := p.ParseArgs([]string{
		"-x", "32", "-y", "20", "-t", "4", "-i", "20ms", "-s", "9",
		"-r", "sand", "-c", "fixed", "-f", "#ff0000", "-e", "5", "-d", "0.3",
		"--no-pattern", "--scale", "2",
	})
	if err != nil {
		t.Fatalf("ParseArgs: %v", err)
	}
	cfg, err := f.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Width != 32 || cfg.Height != 20 || cfg.TileSize != 4 || cfg.MaxSteps != 9 {
		t.Fatalf("grid flags not applied: %+v", cfg)
	}
	if cfg.TickInterval != 20*time.Millisecond || cfg.Rule != "sand" || cfg.Seed != 5 || cfg.Density != 0.3 {
		t.Fatalf("run flags not applied: %+v", cfg)
	}
	if cfg.Color != core.ColorFixed || cfg.FixedColor != (color.RGBA{R: 255, A: 255}) || cfg.Pattern {
		t.Fatalf("render flags not applied: %+v", cfg)
	}
	if f.Scale != 2 {
		t.Fatalf("scale = %d", f.Scale)
	}
}

func TestFlagsRejectInvalid(t *testing.T) {
	cases := map[string]func(*Flags){
		"color": func(f *Flags) { f.Color = "rainbow" },
		"fixed": func(f *Flags) { f.Fixed = "zz" },
		"rule":  func(f *Flags) { f.Rule = "unknown" },
		"tile":  func(f *Flags) { f.Tile = 0 },
	}
	for field, mutate := range cases {
		f := NewFlags()
		mutate(f)
		_, err := f.Config()
		var cfgErr *core.ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Field != field {
			t.Fatalf("%s: err = %v", field, err)
		}
	}
}

func TestFlagsValuesFeedFromMap(t *testing.T) {
	f := NewFlags()
	f.Half = 0.3
	f.Interval = 1500 * time.Microsecond
	f.Workers = 3
	f.Color = "FIXED"
	f.NoPattern = true

	values := f.Values()
	if values["tick"] != "1.5ms" || values["pattern"] != "false" {
		t.Fatalf("values = %v", values)
	}
	cfg, err := f.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg != core.FromMap(values) {
		t.Fatalf("Config = %+v\nFromMap = %+v", cfg, core.FromMap(values))
	}
	if cfg.CellHalfExtent != 0.3 || cfg.TickInterval != 1500*time.Microsecond || cfg.Workers != 3 {
		t.Fatalf("numeric flags lost in conversion: %+v", cfg)
	}
	if cfg.Color != core.ColorFixed || cfg.Pattern {
		t.Fatalf("mode flags lost in conversion: %+v", cfg)
	}
}

func TestFlagsEmptyFixedKeepsDefaultColor(t *testing.T) {
	f := NewFlags()
	f.Fixed = ""
	cfg, err := f.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.FixedColor != core.DefaultConfig().FixedColor {
		t.Fatalf("fixed = %v", cfg.FixedColor)
	}
}
