package engine

import (
	"conjam/internal/core"
	pkgcore "conjam/pkg/core"
)

// patternCells is the fixed structure written over the random fill: a bar
// on row 0 and a stem rising from its middle.
var patternCells = [][2]int{
	{3, 0}, {4, 0}, {5, 0},
	{4, 1}, {4, 2}, {4, 3}, {4, 4}, {4, 5}, {4, 6},
}

// SeedFunc returns the initial-state procedure for cfg. Cells are drawn in
// row-major order, one draw per cell, so a seed always reproduces the same
// grid for the same dimensions.
func SeedFunc(cfg core.Config) func(x, y int) uint32 {
	rng := pkgcore.NewRNG(cfg.Seed)
	var pattern map[[2]int]bool
	if cfg.Pattern {
		pattern = make(map[[2]int]bool, len(patternCells))
		for _, c := range patternCells {
			pattern[c] = true
		}
	}
	return func(x, y int) uint32 {
		v := rng.Above(cfg.Density)
		if pattern[[2]int{x, y}] {
			v = 1
		}
		return v
	}
}
