// Package dispatch evaluates a rule over the whole grid in parallel, one
// square tile per work unit.
package dispatch

import (
	"context"
	"runtime"

	"conjam/internal/core"

	"golang.org/x/sync/errgroup"
)

// Binding pairs the buffer a step reads with the buffer it writes.
type Binding struct {
	Read  core.BufferID
	Write core.BufferID
}

// Tile is the origin of one tileSize*tileSize work unit.
type Tile struct {
	X0, Y0 int
}

// Dispatcher partitions a grid into square tiles and runs a rule over them.
// Tiles on the right and bottom edges may extend past the grid; invocations
// outside the grid are idle and write nothing.
type Dispatcher struct {
	size     core.Size
	tileSize int
	workers  int
	tilesX   int
	tilesY   int
	tiles    []Tile
	bindings [2]Binding
}

// New builds a dispatcher. workers <= 0 uses GOMAXPROCS.
func New(size core.Size, tileSize, workers int) (*Dispatcher, error) {
	if size.W <= 0 || size.H <= 0 {
		return nil, &core.ConfigError{Field: "size", Reason: "grid must be non-empty"}
	}
	if tileSize <= 0 {
		return nil, &core.ConfigError{Field: "tile", Reason: "must be positive"}
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	d := &Dispatcher{
		size:     size,
		tileSize: tileSize,
		workers:  workers,
		tilesX:   ceilDiv(size.W, tileSize),
		tilesY:   ceilDiv(size.H, tileSize),
		bindings: [2]Binding{
			{Read: core.BufferA, Write: core.BufferB},
			{Read: core.BufferB, Write: core.BufferA},
		},
	}
	d.tiles = make([]Tile, 0, d.tilesX*d.tilesY)
	for ty := 0; ty < d.tilesY; ty++ {
		for tx := 0; tx < d.tilesX; tx++ {
			d.tiles = append(d.tiles, Tile{X0: tx * tileSize, Y0: ty * tileSize})
		}
	}
	core.Logger().Debug("dispatch layout",
		"width", size.W, "height", size.H, "tile", tileSize,
		"tiles_x", d.tilesX, "tiles_y", d.tilesY, "workers", workers)
	return d, nil
}

// Extent returns the tile counts per dimension.
func (d *Dispatcher) Extent() (int, int) { return d.tilesX, d.tilesY }

// Tiles returns the precomputed tile origins in row-major order.
func (d *Dispatcher) Tiles() []Tile { return d.tiles }

// TileSize returns the tile edge length.
func (d *Dispatcher) TileSize() int { return d.tileSize }

// Binding returns the read/write pair used by the given step.
func (d *Dispatcher) Binding(step uint64) Binding { return d.bindings[step%2] }

// Step evaluates rule for every cell, reading the step's current buffer and
// writing the other one. A context cancelled before the step starts aborts it
// with no writes; once started the step always runs to completion.
func (d *Dispatcher) Step(ctx context.Context, store *core.Store, rule core.Rule, step uint64) (Binding, error) {
	b := d.Binding(step)
	if err := ctx.Err(); err != nil {
		return b, err
	}
	if err := core.CheckLayout(d.size, len(store.Buffer(b.Read))); err != nil {
		return b, err
	}
	in := store.Buffer(b.Read)
	out := store.Buffer(b.Write)
	r := store.Reader(b.Read)

	var g errgroup.Group
	g.SetLimit(d.workers)
	for _, t := range d.tiles {
		g.Go(func() error {
			d.runTile(t, rule, in, out, r)
			return nil
		})
	}
	return b, g.Wait()
}

func (d *Dispatcher) runTile(t Tile, rule core.Rule, in, out []uint32, r core.Reader) {
	for ly := 0; ly < d.tileSize; ly++ {
		for lx := 0; lx < d.tileSize; lx++ {
			d.invoke(t.X0+lx, t.Y0+ly, rule, in, out, r)
		}
	}
}

// invoke is one invocation at global id (x, y).
func (d *Dispatcher) invoke(x, y int, rule core.Rule, in, out []uint32, r core.Reader) {
	if x >= d.size.W || y >= d.size.H {
		return
	}
	i := y*d.size.W + x
	out[i] = rule.Next(x, y, in[i], r)
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }
