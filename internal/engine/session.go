// Package engine drives a simulation: the session owns the state buffers and
// the rule, the loop alternates steps and draws on a fixed interval.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"conjam/internal/core"
	"conjam/internal/dispatch"
)

// Session is one simulation run: two state buffers, a rule, a dispatcher and
// the step counter selecting the current buffer.
type Session struct {
	cfg   core.Config
	store *core.Store
	rule  core.Rule
	disp  *dispatch.Dispatcher
	step  uint64
	log   *slog.Logger
}

// NewSession validates cfg, allocates and seeds both buffers.
func NewSession(cfg core.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rule, err := core.LookupRule(cfg.Rule, cfg.Size())
	if err != nil {
		return nil, err
	}
	store, err := core.NewStore(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	disp, err := dispatch.New(cfg.Size(), cfg.TileSize, cfg.Workers)
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:   cfg,
		store: store,
		rule:  rule,
		disp:  disp,
		log:   core.Logger().With("rule", rule.Name()),
	}
	s.Reset(cfg.Seed)
	return s, nil
}

// Name returns the rule identifier.
func (s *Session) Name() string { return s.rule.Name() }

// Size returns the grid dimensions.
func (s *Session) Size() core.Size { return s.store.Size() }

// Config returns the configuration the session was built with.
func (s *Session) Config() core.Config { return s.cfg }

// Store exposes the state buffers.
func (s *Session) Store() *core.Store { return s.store }

// Dispatcher exposes the tile dispatcher.
func (s *Session) Dispatcher() *dispatch.Dispatcher { return s.disp }

// StepCount returns the number of completed steps.
func (s *Session) StepCount() uint64 { return s.step }

// Current returns the buffer holding the latest completed state.
func (s *Session) Current() core.BufferID { return s.store.Current(s.step) }

// Cells exposes the latest completed state.
func (s *Session) Cells() []uint32 { return s.store.Buffer(s.Current()) }

// Population counts active cells in the latest completed state.
func (s *Session) Population() int { return s.store.Population(s.Current()) }

// Reset reseeds both buffers from seed and rewinds the step counter.
func (s *Session) Reset(seed int64) {
	cfg := s.cfg
	cfg.Seed = seed
	s.store.Seed(SeedFunc(cfg))
	s.cfg.Seed = seed
	s.step = 0
	s.log.Info("session seeded", "seed", seed, "width", s.cfg.Width, "height", s.cfg.Height)
}

// Load seeds both buffers with fn and rewinds the step counter.
func (s *Session) Load(fn func(x, y int) uint32) {
	s.store.Seed(fn)
	s.step = 0
}

// Step advances the simulation by one generation. The counter only moves
// after every tile finished, so a cancelled step leaves Current unchanged.
func (s *Session) Step(ctx context.Context) error {
	if _, err := s.disp.Step(ctx, s.store, s.rule, s.step); err != nil {
		return fmt.Errorf("step %d: %w", s.step, err)
	}
	s.step++
	return nil
}

// Frame returns a view of the buffer the last step wrote.
func (s *Session) Frame() core.Frame {
	return core.Frame{
		Step:   s.step,
		Buffer: s.Current(),
		Size:   s.Size(),
		Cells:  s.Cells(),
	}
}

// Parameters reports the session settings and live counters.
func (s *Session) Parameters() core.ParameterSnapshot {
	tx, ty := s.disp.Extent()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				{Key: "rule", Label: "Rule", Value: s.rule.Name()},
				{Key: "size", Label: "Size", Value: fmt.Sprintf("%dx%d", s.cfg.Width, s.cfg.Height)},
				{Key: "tiles", Label: "Tiles", Value: fmt.Sprintf("%dx%d of %d", tx, ty, s.cfg.TileSize)},
				{Key: "seed", Label: "Seed", Value: strconv.FormatInt(s.cfg.Seed, 10)},
			},
		},
		{
			Name: "State",
			Params: []core.Parameter{
				{Key: "step", Label: "Step", Value: strconv.FormatUint(s.step, 10)},
				{Key: "buffer", Label: "Buffer", Value: s.Current().String()},
				{Key: "population", Label: "Active", Value: strconv.Itoa(s.Population())},
			},
		},
	}}
}
