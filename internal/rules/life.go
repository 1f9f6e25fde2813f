package rules

import "conjam/internal/core"

// Life returns Conway's Game of Life: a sum of 2 keeps the cell, 3 sets it,
// anything else clears it.
func Life() *Program {
	p := &Program{ID: "life", Kind: Totalistic}
	p.Counts[2] = Keep
	p.Counts[3] = One
	return p
}

func init() {
	core.RegisterRule("life", func(core.Size) core.Rule { return Life() })
}
