package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"conjam/internal/core"
)

// Acquirer creates the presentation surface for a session. It returns an
// error wrapping core.ErrUnsupportedEnvironment when no surface can exist.
type Acquirer func(ctx context.Context, cfg core.Config) (Surface, error)

// Context owns a session and its surface with an explicit lifecycle.
type Context struct {
	cfg     core.Config
	acquire Acquirer

	// OnLost is invoked once per resource loss, before any recovery.
	OnLost func(err error)

	session *Session
	surface Surface
}

// NewContext prepares a context; nothing is allocated until Acquire.
func NewContext(cfg core.Config, acquire Acquirer) *Context {
	return &Context{cfg: cfg, acquire: acquire}
}

// Acquire builds the surface and a freshly seeded session. A previously
// acquired pair is released first.
func (c *Context) Acquire(ctx context.Context) error {
	if c.surface != nil || c.session != nil {
		if err := c.Release(); err != nil {
			return err
		}
	}
	session, err := NewSession(c.cfg)
	if err != nil {
		return err
	}
	if c.acquire == nil {
		return fmt.Errorf("acquire: %w", core.ErrUnsupportedEnvironment)
	}
	surface, err := c.acquire(ctx, c.cfg)
	if err != nil {
		return fmt.Errorf("acquire surface: %w", err)
	}
	if surface == nil {
		return fmt.Errorf("acquire surface: %w", core.ErrUnsupportedEnvironment)
	}
	c.session = session
	c.surface = surface
	core.Logger().Info("resources acquired", "rule", session.Name())
	return nil
}

// Release drops the session and closes the surface when it is an io.Closer.
func (c *Context) Release() error {
	var err error
	if closer, ok := c.surface.(io.Closer); ok {
		err = closer.Close()
	}
	c.surface = nil
	c.session = nil
	core.Logger().Info("resources released")
	return err
}

// Session returns the acquired session or nil.
func (c *Context) Session() *Session { return c.session }

// Surface returns the acquired surface or nil.
func (c *Context) Surface() Surface { return c.surface }

// Supervisor runs a Context's loop and re-acquires after unintended losses.
type Supervisor struct {
	Context *Context
	// MaxRecoveries bounds re-acquisitions; 0 never recovers.
	MaxRecoveries int
	Observe       func(Stats)
}

// Run acquires, loops and recovers until a clean stop, a fatal error or the
// recovery budget is spent.
func (s *Supervisor) Run(ctx context.Context) error {
	c := s.Context
	for attempt := 0; ; attempt++ {
		if err := c.Acquire(ctx); err != nil {
			return err
		}
		loop := NewLoop(c.Session(), c.Surface())
		loop.Observe = s.Observe
		runErr := loop.Run(ctx)
		if err := c.Release(); err != nil {
			core.Logger().Warn("release failed", "err", err)
		}
		if runErr == nil {
			return nil
		}
		var lost *LostError
		if !errors.As(runErr, &lost) {
			return runErr
		}
		if c.OnLost != nil {
			c.OnLost(runErr)
		}
		if lost.Destroyed || attempt >= s.MaxRecoveries || ctx.Err() != nil {
			return runErr
		}
		core.Logger().Warn("surface lost, reseeding", "attempt", attempt+1, "err", runErr)
	}
}
