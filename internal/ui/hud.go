//go:build ebiten

package ui

import (
	"image/color"
	"strings"

	"conjam/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// PanelWidth is the width of the HUD panel in pixels.
const PanelWidth = 180

type parameterProvider interface {
	Name() string
	Size() core.Size
	Parameters() core.ParameterSnapshot
}

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	src        parameterProvider
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	title      string
}

// NewHUD constructs a HUD for the provided session and panel width.
func NewHUD(src parameterProvider, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{src: src, width: width, title: buildTitle(src.Name())}
}

// Update refreshes the cached parameter snapshot.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	h.snapshot = h.src.Parameters()
}

// Draw paints the HUD panel at offsetX, covering the full screen height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := screen.Bounds().Dy()
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawParameters()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(name string) string {
	if name == "" {
		return "conjam"
	}
	return "conjam: " + strings.ToUpper(name[:1]) + name[1:]
}

func (h *HUD) drawParameters() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for _, group := range h.snapshot.Groups {
		y += groupSpacing
		text.Draw(h.panel, group.Name, face, panelPadding, y, color.RGBA{R: 120, G: 190, B: 140, A: 255})
		for _, p := range group.Params {
			y += lineHeight
			if y > h.lastHeight-panelPadding {
				return
			}
			text.Draw(h.panel, p.Label, face, panelPadding, y, color.RGBA{R: 160, G: 160, B: 170, A: 255})
			bounds := text.BoundString(face, p.Value)
			x := h.width - panelPadding - bounds.Dx()
			text.Draw(h.panel, p.Value, face, x, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		}
	}
	y += groupSpacing
	for _, line := range keyHelp {
		y += lineHeight
		if y > h.lastHeight-panelPadding {
			return
		}
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 120, G: 120, B: 130, A: 255})
	}
}

var keyHelp = []string{
	"Space pause  N step",
	"R reset  S reseed",
	"T tiles  D changes",
	"Q quit",
}

const (
	panelPadding   = 12
	lineHeight     = 16
	groupSpacing   = 26
	headerBaseline = 18
)
