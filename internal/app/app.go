//go:build ebiten

package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"time"

	"conjam/internal/core"
	"conjam/internal/engine"
	"conjam/internal/render"
	"conjam/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxBatchVerts keeps a DrawTriangles call within uint16 indices.
const maxBatchVerts = (65535 / render.VertsPerQuad) * render.VertsPerQuad

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// canvas is the engine.Surface of the window: Draw converts a frame into
// screen-space triangles that the next ebiten Draw call paints.
type canvas struct {
	r      *render.Renderer
	w, h   int
	verts  []ebiten.Vertex
	idx    []uint16
	closed bool
}

func (c *canvas) Draw(f core.Frame) error {
	quads, err := c.r.Vertices(f, true)
	if err != nil {
		return err
	}
	c.verts = c.verts[:0]
	for _, v := range quads {
		px, py := render.ToPixel(v, c.w, c.h)
		c.verts = append(c.verts, ebiten.Vertex{
			DstX:   px,
			DstY:   py,
			SrcX:   1,
			SrcY:   1,
			ColorR: v.Color[0],
			ColorG: v.Color[1],
			ColorB: v.Color[2],
			ColorA: v.Color[3],
		})
	}
	return nil
}

func (c *canvas) Alive() bool { return !c.closed }

func (c *canvas) LossReason() (string, bool) { return "window closed", true }

func (c *canvas) paint(screen *ebiten.Image) {
	for start := 0; start < len(c.verts); start += maxBatchVerts {
		end := min(start+maxBatchVerts, len(c.verts))
		batch := c.verts[start:end]
		c.idx = c.idx[:0]
		for i := range batch {
			c.idx = append(c.idx, uint16(i))
		}
		screen.DrawTriangles(batch, c.idx, whiteSubImage, nil)
	}
}

// Game adapts a simulation session to the ebiten.Game interface.
type Game struct {
	session *engine.Session
	loop    *engine.Loop
	canvas  *canvas
	clock   *core.FixedStep
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided session.
func New(session *engine.Session, scale int) *Game {
	if scale <= 0 {
		scale = 1
	}
	cfg := session.Config()
	size := session.Size()
	c := &canvas{r: render.NewFromConfig(cfg), w: size.W * scale, h: size.H * scale}
	g := &Game{
		session: session,
		canvas:  c,
		loop:    engine.NewLoop(session, c),
		clock:   core.NewFixedStep(cfg.TickInterval),
		hud:     ui.NewHUD(session, ui.PanelWidth),
		overlay: ui.NewOverlay(session, scale),
		scale:   scale,
		seed:    cfg.Seed,
	}
	_ = c.Draw(session.Frame())
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.session.Reset(seed)
	g.tickOnce = false
	_ = g.canvas.Draw(g.session.Frame())
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.canvas.closed = true
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update()

	if g.limitReached() {
		return nil
	}
	if (!g.paused && g.clock.ShouldStep()) || g.tickOnce {
		g.tickOnce = false
		if err := g.loop.Tick(context.Background()); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) limitReached() bool {
	return g.loop.MaxSteps > 0 && g.session.StepCount() >= uint64(g.loop.MaxSteps)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.White)
	g.canvas.paint(screen)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.canvas.w)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.canvas.w + ui.PanelWidth, g.canvas.h
}

// Run opens a window for cfg and blocks until it is closed.
func Run(cfg core.Config, scale int) error {
	session, err := engine.NewSession(cfg)
	if err != nil {
		return err
	}
	game := New(session, scale)
	size := session.Size()

	ebiten.SetWindowTitle("conjam - " + session.Name())
	ebiten.SetWindowSize(size.W*game.scale+ui.PanelWidth, size.H*game.scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
