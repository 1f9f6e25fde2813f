// Package rules describes cellular automaton transition rules as data. The
// same Program drives the in-process evaluator and the generated device
// program, so the two cannot disagree.
package rules

import "conjam/internal/core"

// Kind selects how a Program is evaluated.
type Kind uint8

const (
	// Totalistic programs map the neighbor sum to an Outcome.
	Totalistic Kind = iota
	// Clauses programs walk a prioritized clause list chosen by the
	// current cell value.
	Clauses
)

// Outcome is the result of a totalistic table lookup.
type Outcome uint8

const (
	// Zero clears the cell.
	Zero Outcome = iota
	// Keep copies the current value.
	Keep
	// One sets the cell to 1.
	One
)

// Boundary restricts a clause to cells on a hard vertical edge.
type Boundary uint8

const (
	NoBoundary Boundary = iota
	// AtFloor matches y == 0.
	AtFloor
	// AtCeiling matches y == height-1.
	AtCeiling
)

// Probe tests whether the neighbor at (x+DX, y+DY) is active (non-zero).
// Offsets wrap toroidally.
type Probe struct {
	DX, DY int
	Active bool
}

// Clause matches when its boundary test and every probe hold.
type Clause struct {
	Boundary Boundary
	Probes   []Probe
	Result   uint32
}

// Program is a declarative transition rule.
type Program struct {
	ID   string
	Kind Kind

	// Radius-1 Moore neighbor sum -> outcome. Sums past the table are Zero.
	Counts [9]Outcome

	// Clause lists for inactive and active cells. The first match wins;
	// the fallback applies when nothing matches.
	Inactive         []Clause
	Active           []Clause
	InactiveFallback uint32
	ActiveFallback   uint32
}

var _ core.Rule = (*Program)(nil)

// Name returns the rule identifier.
func (p *Program) Name() string { return p.ID }

// Next evaluates the program for cell (x, y).
func (p *Program) Next(x, y int, cur uint32, r core.Reader) uint32 {
	if p.Kind == Totalistic {
		return p.nextTotalistic(x, y, cur, r)
	}
	if cur == 0 {
		return firstMatch(p.Inactive, p.InactiveFallback, x, y, r)
	}
	return firstMatch(p.Active, p.ActiveFallback, x, y, r)
}

func (p *Program) nextTotalistic(x, y int, cur uint32, r core.Reader) uint32 {
	var sum uint32
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			sum += r.At(x+dx, y+dy)
		}
	}
	if sum >= uint32(len(p.Counts)) {
		return 0
	}
	switch p.Counts[sum] {
	case Keep:
		return cur
	case One:
		return 1
	default:
		return 0
	}
}

func firstMatch(clauses []Clause, fallback uint32, x, y int, r core.Reader) uint32 {
	for i := range clauses {
		if clauses[i].matches(x, y, r) {
			return clauses[i].Result
		}
	}
	return fallback
}

func (c *Clause) matches(x, y int, r core.Reader) bool {
	switch c.Boundary {
	case AtFloor:
		if y != 0 {
			return false
		}
	case AtCeiling:
		if y != r.Height()-1 {
			return false
		}
	}
	for _, pr := range c.Probes {
		if (r.At(x+pr.DX, y+pr.DY) != 0) != pr.Active {
			return false
		}
	}
	return true
}

// Radius returns the largest absolute probe offset the program reads.
func (p *Program) Radius() int {
	if p.Kind == Totalistic {
		return 1
	}
	radius := 0
	for _, list := range [][]Clause{p.Inactive, p.Active} {
		for _, c := range list {
			for _, pr := range c.Probes {
				radius = max(radius, abs(pr.DX), abs(pr.DY))
			}
		}
	}
	return radius
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
