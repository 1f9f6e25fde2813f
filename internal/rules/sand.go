package rules

import (
	"slices"

	"conjam/internal/core"
)

// Neighbor offsets for the sand rules. Gravity points towards y == 0.
var (
	below       = Probe{DX: 0, DY: -1}
	above       = Probe{DX: 0, DY: 1}
	left        = Probe{DX: -1, DY: 0}
	right       = Probe{DX: 1, DY: 0}
	belowLeft   = Probe{DX: -1, DY: -1}
	belowRight  = Probe{DX: 1, DY: -1}
	aboveLeft   = Probe{DX: -1, DY: 1}
	aboveRight  = Probe{DX: 1, DY: 1}
	above2Left  = Probe{DX: -1, DY: 2}
	above2Right = Probe{DX: 1, DY: 2}
)

func on(p Probe) Probe  { p.Active = true; return p }
func off(p Probe) Probe { p.Active = false; return p }

func with(base []Probe, extra Probe) []Probe {
	return append(slices.Clip(base), extra)
}

// grainClauses moves an active cell: it rests on the floor, falls straight
// down, then tries the down-left slide before the down-right one.
func grainClauses() []Clause {
	return []Clause{
		{Boundary: AtFloor, Result: 1},
		{Probes: []Probe{off(below)}, Result: 0},
		{Probes: []Probe{off(above), off(left), off(belowLeft)}, Result: 0},
		{Probes: []Probe{off(above), off(right), off(belowRight)}, Result: 0},
	}
}

// Sand returns the mass-conserving falling sand rule. An air cell only
// receives a grain when that grain's own clause list sends it there: the
// upper-left grain is received only when its down-left slide is blocked, and
// a grain only slides down-right when the upper-right grain is not sliding
// down-left into the same cell.
func Sand() *Program {
	fromUpperLeft := []Probe{on(left), on(aboveLeft), off(above2Left)}
	return &Program{
		ID:   "sand",
		Kind: Clauses,
		Inactive: []Clause{
			{Boundary: AtCeiling, Result: 0},
			{Probes: []Probe{on(above)}, Result: 1},
			{Probes: []Probe{on(right), on(aboveRight), off(above2Right)}, Result: 1},
			// upper-left grain's left neighbor is occupied
			{Probes: with(fromUpperLeft, on(Probe{DX: -2, DY: 1})), Result: 1},
			// upper-left grain's below-left neighbor is occupied
			{Probes: with(fromUpperLeft, on(Probe{DX: -2, DY: 0})), Result: 1},
		},
		Active:           settlingGrainClauses(),
		InactiveFallback: 0,
		ActiveFallback:   1,
	}
}

// settlingGrainClauses is grainClauses with the down-right slide split so it
// only fires while the target is unclaimed. The claim from the upper right
// needs (2,-1) and (2,0) active and (2,1) empty.
func settlingGrainClauses() []Clause {
	downRight := []Probe{off(above), off(right), off(belowRight)}
	return []Clause{
		{Boundary: AtFloor, Result: 1},
		{Probes: []Probe{off(below)}, Result: 0},
		{Probes: []Probe{off(above), off(left), off(belowLeft)}, Result: 0},
		{Probes: with(downRight, off(Probe{DX: 2, DY: -1})), Result: 0},
		{Probes: with(downRight, off(Probe{DX: 2, DY: 0})), Result: 0},
		{Probes: with(downRight, on(Probe{DX: 2, DY: 1})), Result: 0},
	}
}

// SandReference returns the sand rule with the literal symmetric receive
// test. It can duplicate a grain that slides down-left while its right-hand
// receiver also fires, and it can lose a grain whose down-right target is
// taken by the upper-right grain. Sand fixes both.
func SandReference() *Program {
	return &Program{
		ID:   "sand-reference",
		Kind: Clauses,
		Inactive: []Clause{
			{Boundary: AtCeiling, Result: 0},
			{Probes: []Probe{on(above)}, Result: 1},
			{Probes: []Probe{on(right), on(aboveRight), off(above2Right)}, Result: 1},
			{Probes: []Probe{on(left), on(aboveLeft), off(above2Left)}, Result: 1},
		},
		Active:           grainClauses(),
		InactiveFallback: 0,
		ActiveFallback:   1,
	}
}

func init() {
	core.RegisterRule("sand", func(core.Size) core.Rule { return Sand() })
	core.RegisterRule("sand-reference", func(core.Size) core.Rule { return SandReference() })
}
