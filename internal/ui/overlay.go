//go:build ebiten

package ui

import (
	"image/color"

	"conjam/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of the grid.
//
//	T  outlines the dispatch tiles
//	D  tints the cells the last step changed
type Overlay struct {
	session  *engine.Session
	scale    int
	showTile bool
	showDiff bool

	maskImg *ebiten.Image
	maskBuf []byte
	pixel   *ebiten.Image
}

// NewOverlay constructs an overlay for session drawn at scale pixels per cell.
func NewOverlay(session *engine.Session, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{session: session, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		o.showTile = !o.showTile
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.showDiff = !o.showDiff
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showDiff {
		o.drawDiff(screen)
	}
	if o.showTile {
		o.drawTiles(screen)
	}
}

func (o *Overlay) drawTiles(screen *ebiten.Image) {
	size := o.session.Size()
	d := o.session.Dispatcher()
	tx, ty := d.Extent()
	step := float64(d.TileSize() * o.scale)
	w := float64(size.W * o.scale)
	h := float64(size.H * o.scale)
	col := color.RGBA{R: 40, G: 40, B: 48, A: 140}
	for i := 1; i < tx; i++ {
		o.drawRect(screen, float64(i)*step, 0, 1, h, col)
	}
	// Cell rows grow upwards on screen, so tile edges are measured from
	// the bottom.
	for j := 1; j < ty; j++ {
		o.drawRect(screen, 0, h-float64(j)*step, w, 1, col)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawDiff(screen *ebiten.Image) {
	size := o.session.Size()
	total := size.Cells()
	if o.maskImg == nil {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}
	store := o.session.Store()
	cur := o.session.Current()
	now := store.Buffer(cur)
	before := store.Buffer(cur.Other())
	tint := color.RGBA{R: 255, G: 120, B: 40, A: 160}
	for y := 0; y < size.H; y++ {
		// flip so row 0 is at the bottom of the image
		row := (size.H - 1 - y) * size.W
		for x := 0; x < size.W; x++ {
			base := (row + x) * 4
			i := y*size.W + x
			if o.session.StepCount() == 0 || now[i] == before[i] {
				o.maskBuf[base+0] = 0
				o.maskBuf[base+1] = 0
				o.maskBuf[base+2] = 0
				o.maskBuf[base+3] = 0
				continue
			}
			// premultiplied alpha
			o.maskBuf[base+0] = premul(tint.R, tint.A)
			o.maskBuf[base+1] = premul(tint.G, tint.A)
			o.maskBuf[base+2] = premul(tint.B, tint.A)
			o.maskBuf[base+3] = tint.A
		}
	}
	o.maskImg.ReplacePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}

func premul(c, a uint8) uint8 {
	return uint8(uint16(c) * uint16(a) / 255)
}
