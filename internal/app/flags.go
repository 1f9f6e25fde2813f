package app

import (
	"strconv"
	"strings"
	"time"

	"conjam/internal/core"

	"github.com/integrii/flaggy"
)

// Flags represents the command-line parameters shared by the conjam binaries.
type Flags struct {
	Width    int
	Height   int
	Tile     int
	Workers  int
	Interval time.Duration
	Steps    int
	Half     float64
	Rule     string
	Color    string
	Fixed    string
	Seed     int64
	Density  float64

	NoPattern bool

	// Scale is only bound for windowed builds.
	Scale int
}

// NewFlags returns Flags populated from core.DefaultConfig.
func NewFlags() *Flags {
	c := core.DefaultConfig()
	return &Flags{
		Width:    c.Width,
		Height:   c.Height,
		Tile:     c.TileSize,
		Workers:  c.Workers,
		Interval: c.TickInterval,
		Steps:    c.MaxSteps,
		Half:     c.CellHalfExtent,
		Rule:     c.Rule,
		Color:    string(c.Color),
		Fixed:    hexColor(c),
		Seed:     c.Seed,
		Density:  c.Density,
		Scale:    4,
	}
}

// Bind attaches the simulation flags to sc. Pass &flaggy.DefaultParser.Subcommand
// to bind them at the top level.
func (f *Flags) Bind(sc *flaggy.Subcommand) {
	sc.Int(&f.Width, "x", "width", "Width of the grid in cells")
	sc.Int(&f.Height, "y", "height", "Height of the grid in cells")
	sc.Int(&f.Tile, "t", "tile", "Edge length of one dispatch tile")
	sc.Int(&f.Workers, "w", "workers", "Tiles evaluated concurrently (0 uses every CPU)")
	sc.Duration(&f.Interval, "i", "interval", "Interval between steps, for example 50ms")
	sc.Int(&f.Steps, "s", "steps", "Stop after this many steps (0 runs until interrupted)")
	sc.Float64(&f.Half, "", "half", "Half extent of the cell quad")
	sc.String(&f.Rule, "r", "rule", "Rule to run ["+strings.Join(core.RuleNames(), "|")+"]")
	sc.String(&f.Color, "c", "color", "Cell coloring [gradient|fixed]")
	sc.String(&f.Fixed, "f", "fixed", "Cell color for --color fixed, as #rrggbb")
	sc.Int64(&f.Seed, "e", "seed", "Seed of the initial random fill")
	sc.Float64(&f.Density, "d", "density", "A cell starts active when a uniform draw exceeds this value")
	sc.Bool(&f.NoPattern, "", "no-pattern", "Do not stamp the bar and stem over the random fill")
}

// BindWindow attaches the flags only a window build understands.
func (f *Flags) BindWindow(sc *flaggy.Subcommand) {
	sc.Int(&f.Scale, "", "scale", "Pixels per cell")
}

// Values renders the flags as the key/value pairs understood by core.FromMap.
func (f *Flags) Values() map[string]string {
	return map[string]string{
		"w":       strconv.Itoa(f.Width),
		"h":       strconv.Itoa(f.Height),
		"tile":    strconv.Itoa(f.Tile),
		"workers": strconv.Itoa(f.Workers),
		"tick":    f.Interval.String(),
		"steps":   strconv.Itoa(f.Steps),
		"half":    strconv.FormatFloat(f.Half, 'g', -1, 64),
		"rule":    f.Rule,
		"color":   f.Color,
		"fixed":   f.Fixed,
		"seed":    strconv.FormatInt(f.Seed, 10),
		"density": strconv.FormatFloat(f.Density, 'g', -1, 64),
		"pattern": strconv.FormatBool(!f.NoPattern),
	}
}

// Config converts the parsed flags into a validated core.Config.
func (f *Flags) Config() (core.Config, error) {
	values := f.Values()
	if f.Fixed == "" {
		delete(values, "fixed")
	} else if _, err := core.ParseHexColor(f.Fixed); err != nil {
		return core.DefaultConfig(), &core.ConfigError{Field: "fixed", Reason: err.Error()}
	}
	c := core.FromMap(values)
	if err := c.Validate(); err != nil {
		return c, err
	}
	if _, err := core.LookupRule(c.Rule, c.Size()); err != nil {
		return c, err
	}
	return c, nil
}

func hexColor(c core.Config) string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.FixedColor.R, c.FixedColor.G, c.FixedColor.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0f]
	}
	return string(b)
}
