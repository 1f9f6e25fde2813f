package render

import (
	"fmt"
	"image"
	"io"

	"conjam/internal/core"

	"github.com/gogpu/gg"
)

// Snapshot is an offscreen surface that paints frames with the gg software
// rasterizer. Each Draw replaces the previous picture.
type Snapshot struct {
	r          *Renderer
	dc         *gg.Context
	background gg.RGBA
	frames     int
	closed     bool
}

// NewSnapshot allocates a canvas of scale pixels per cell.
func NewSnapshot(r *Renderer, scale int) *Snapshot {
	if scale <= 0 {
		scale = 1
	}
	size := r.Size()
	return &Snapshot{
		r:          r,
		dc:         gg.NewContext(size.W*scale, size.H*scale),
		background: gg.RGB(1, 1, 1),
	}
}

// SetBackground changes the clear color.
func (s *Snapshot) SetBackground(c gg.RGBA) { s.background = c }

// Draw paints the visible quads of f.
func (s *Snapshot) Draw(f core.Frame) error {
	if s.closed {
		return fmt.Errorf("snapshot: %w", core.ErrResourceLost)
	}
	verts, err := s.r.Vertices(f, true)
	if err != nil {
		return err
	}
	w, h := s.dc.Width(), s.dc.Height()
	s.dc.ClearWithColor(s.background)
	for i := 0; i+VertsPerQuad <= len(verts); i += VertsPerQuad {
		x0, y0, x1, y1 := quadBounds(verts[i:i+VertsPerQuad], w, h)
		c := verts[i].Color
		s.dc.SetRGBA(float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3]))
		s.dc.DrawRectangle(float64(x0), float64(y0), float64(x1-x0), float64(y1-y0))
		if err := s.dc.Fill(); err != nil {
			return fmt.Errorf("snapshot fill: %w", err)
		}
	}
	s.frames++
	return nil
}

// Alive reports whether the snapshot can still be drawn to.
func (s *Snapshot) Alive() bool { return !s.closed }

// LossReason reports a closed canvas as an intentional teardown.
func (s *Snapshot) LossReason() (string, bool) { return "snapshot closed", true }

// Frames returns the number of frames drawn.
func (s *Snapshot) Frames() int { return s.frames }

// Image returns the current picture.
func (s *Snapshot) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the current picture as PNG.
func (s *Snapshot) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// Close releases the canvas.
func (s *Snapshot) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.dc.Close()
}

// quadBounds returns the pixel rectangle covered by an axis-aligned quad.
func quadBounds(q []Vertex, w, h int) (x0, y0, x1, y1 float32) {
	x0, y0 = ToPixel(q[0], w, h)
	x1, y1 = x0, y0
	for _, v := range q[1:] {
		px, py := ToPixel(v, w, h)
		x0, x1 = min(x0, px), max(x1, px)
		y0, y1 = min(y0, py), max(y1, py)
	}
	return x0, y0, x1, y1
}
