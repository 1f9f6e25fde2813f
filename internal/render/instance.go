// Package render turns a state buffer into instanced quads: one instance per
// cell, scaled by the cell value so inactive cells collapse to a point.
package render

import (
	"image/color"

	"conjam/internal/core"
)

// VertsPerQuad is the vertex count of the base quad (two triangles).
const VertsPerQuad = 6

// unitQuad holds the base quad corners before the half-extent scale.
var unitQuad = [VertsPerQuad][2]float32{
	{-1, -1}, {1, -1}, {1, 1},
	{-1, -1}, {1, 1}, {-1, 1},
}

// Instance is the per-instance data of one cell.
type Instance struct {
	X, Y  int
	State float32
	Color [4]float32
}

// Visible reports whether the instance covers any area.
func (in Instance) Visible() bool { return in.State != 0 }

// Vertex is a clip-space position with its color.
type Vertex struct {
	X, Y  float32
	Color [4]float32
}

// Renderer builds instance and vertex data for a fixed grid. The slices it
// returns are reused by the next call.
type Renderer struct {
	size      core.Size
	half      float32
	mode      core.ColorMode
	fixed     [4]float32
	instances []Instance
	verts     []Vertex
}

// New constructs a renderer for a grid of the given size.
func New(size core.Size, halfExtent float64, mode core.ColorMode, fixed color.Color) *Renderer {
	return &Renderer{
		size:      size,
		half:      float32(halfExtent),
		mode:      mode,
		fixed:     colorToFloat(fixed),
		instances: make([]Instance, size.Cells()),
	}
}

// NewFromConfig constructs a renderer from session settings.
func NewFromConfig(cfg core.Config) *Renderer {
	return New(cfg.Size(), cfg.CellHalfExtent, cfg.Color, cfg.FixedColor)
}

// Size returns the grid dimensions.
func (r *Renderer) Size() core.Size { return r.size }

// Cell maps an instance index to its grid coordinate.
func (r *Renderer) Cell(i int) (x, y int) {
	return i % r.size.W, i / r.size.W
}

// ColorAt returns the configured color for cell (x, y).
func (r *Renderer) ColorAt(x, y int) [4]float32 {
	if r.mode == core.ColorFixed {
		return r.fixed
	}
	return gradient(x, y, r.size)
}

// Instances derives one instance per cell from the frame.
func (r *Renderer) Instances(f core.Frame) ([]Instance, error) {
	if err := r.check(f); err != nil {
		return nil, err
	}
	for i, v := range f.Cells {
		x, y := r.Cell(i)
		r.instances[i] = Instance{X: x, Y: y, State: float32(v), Color: r.ColorAt(x, y)}
	}
	return r.instances, nil
}

// Quad expands one instance into its six clip-space vertices:
// (corner*half*state + 1)/grid - 1 + cell/grid*2.
func (r *Renderer) Quad(in Instance) [VertsPerQuad]Vertex {
	gw, gh := float32(r.size.W), float32(r.size.H)
	ox := float32(in.X) / gw * 2
	oy := float32(in.Y) / gh * 2
	var q [VertsPerQuad]Vertex
	for i, c := range unitQuad {
		q[i] = Vertex{
			X:     (c[0]*r.half*in.State+1)/gw - 1 + ox,
			Y:     (c[1]*r.half*in.State+1)/gh - 1 + oy,
			Color: in.Color,
		}
	}
	return q
}

// Vertices expands every instance of the frame. With visibleOnly the
// degenerate quads of inactive cells are skipped.
func (r *Renderer) Vertices(f core.Frame, visibleOnly bool) ([]Vertex, error) {
	instances, err := r.Instances(f)
	if err != nil {
		return nil, err
	}
	r.verts = r.verts[:0]
	for _, in := range instances {
		if visibleOnly && !in.Visible() {
			continue
		}
		q := r.Quad(in)
		r.verts = append(r.verts, q[:]...)
	}
	return r.verts, nil
}

func (r *Renderer) check(f core.Frame) error {
	if f.Size != r.size {
		return &core.ConfigError{Field: "layout", Reason: "frame size does not match renderer"}
	}
	return core.CheckLayout(r.size, len(f.Cells))
}

// ToPixel maps a clip-space vertex into a w*h pixel target with y growing
// downwards.
func ToPixel(v Vertex, w, h int) (float32, float32) {
	return (v.X + 1) / 2 * float32(w), (1 - v.Y) / 2 * float32(h)
}
