package core

import (
	"maps"
	"slices"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns W*H.
func (s Size) Cells() int { return s.W * s.H }

// Rule is a pure per-cell transition function. Next receives the cell
// coordinate, its current value and a wrapped reader over the current
// buffer, and returns the value for the next buffer. Rules never fail for
// in-range coordinates.
type Rule interface {
	Name() string
	Next(x, y int, cur uint32, r Reader) uint32
}

// RuleFactory constructs a Rule for a grid of the given size.
type RuleFactory func(size Size) Rule

var rules = map[string]RuleFactory{}

// RegisterRule adds a rule factory under the provided name.
func RegisterRule(name string, f RuleFactory) {
	if name == "" || f == nil {
		return
	}
	rules[name] = f
}

// Rules exposes the registry of available rule factories.
func Rules() map[string]RuleFactory {
	return rules
}

// RuleNames returns the registered rule names in sorted order.
func RuleNames() []string {
	return slices.Sorted(maps.Keys(rules))
}

// LookupRule builds the named rule or returns a ConfigError.
func LookupRule(name string, size Size) (Rule, error) {
	f, ok := rules[name]
	if !ok {
		return nil, configErrorf("rule", "unknown rule %q (have %v)", name, RuleNames())
	}
	return f(size), nil
}

// Frame is a read-only view of the buffer the last step finished writing.
type Frame struct {
	Step   uint64
	Buffer BufferID
	Size   Size
	Cells  []uint32
}
