package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"conjam/internal/core"
	"conjam/internal/engine"
	"conjam/internal/render"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
)

const (
	fieldView  = "field"
	statusView = "status"
	configView = "configuration"
	helpView   = "help"

	leftColumnWidth = 28
)

type keyBinding struct {
	key     interface{}
	name    string
	descr   string
	handler func(v *gocui.View) error
}

// Terminal is an interactive surface drawing frames into a gocui view.
// MainLoop owns the terminal, so Run must be called from the goroutine that
// created it; frames arrive from the simulation goroutine through g.Update.
type Terminal struct {
	g      *gocui.Gui
	glyphs render.Glyphs
	keys   []keyBinding
	cfg    core.Config

	mu          sync.Mutex
	fieldW      int
	fieldH      int
	stats       engine.Stats
	alive       atomic.Bool
	quitOnce    sync.Once
	onQuit      func()
	cropWarning string
}

// NewTerminal takes over the controlling terminal.
func NewTerminal(cfg core.Config, glyphs render.Glyphs) (*Terminal, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("terminal: %v: %w", err, core.ErrUnsupportedEnvironment)
	}
	t := &Terminal{
		g:           g,
		glyphs:      glyphs,
		cfg:         cfg,
		cropWarning: aurora.Red("The field size is larger than the viewing area").BgBlack().String(),
	}
	t.alive.Store(true)
	t.keys = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit},
		{'q', "Q", "Exit", t.cmdQuit},
	}
	g.SetManagerFunc(t.layout)
	for _, kb := range t.keys {
		h := kb.handler
		if err := g.SetKeybinding("", kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			g.Close()
			return nil, err
		}
	}
	return t, nil
}

// Draw renders f into the field view.
func (t *Terminal) Draw(f core.Frame) error {
	t.mu.Lock()
	maxW, maxH := t.fieldW, t.fieldH
	t.mu.Unlock()
	if maxW <= 0 || maxH <= 0 {
		return nil
	}
	crop := f.Size.W > maxW || f.Size.H > maxH
	rows := render.TextRows(f, t.glyphs, maxW, maxH)
	if crop && len(rows) == maxH {
		rows[maxH-1] = t.cropWarning
	}
	var b bytes.Buffer
	for i, row := range rows {
		if i != 0 {
			b.WriteByte('\n')
		}
		b.WriteString(row)
	}
	content := b.String()
	t.g.Update(func(g *gocui.Gui) error {
		v, err := g.View(fieldView)
		if err != nil {
			return nil
		}
		v.Clear()
		_, _ = fmt.Fprint(v, content)
		return nil
	})
	return nil
}

// Alive reports false once the user quit.
func (t *Terminal) Alive() bool { return t.alive.Load() }

// LossReason reports a user quit as an intentional teardown.
func (t *Terminal) LossReason() (string, bool) { return "terminal closed", true }

// Observe updates the status view.
func (t *Terminal) Observe(s engine.Stats) {
	t.mu.Lock()
	t.stats = s
	t.mu.Unlock()
	t.g.Update(func(g *gocui.Gui) error {
		t.renderStatus(g)
		return nil
	})
}

// Run runs the terminal main loop on the calling goroutine and sim on a
// second one. The context passed to sim is cancelled when the user quits;
// the terminal closes when sim returns.
func (t *Terminal) Run(ctx context.Context, sim func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	t.onQuit = cancel

	simErr := make(chan error, 1)
	go func() {
		err := sim(ctx)
		t.g.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
		simErr <- err
	}()

	if err := t.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		cancel()
		<-simErr
		return err
	}
	t.markQuit()
	return <-simErr
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.markQuit()
	t.g.Close()
	return nil
}

func (t *Terminal) markQuit() {
	t.quitOnce.Do(func() {
		// a tick that sees the dead surface must also see ctx done
		if t.onQuit != nil {
			t.onQuit()
		}
		t.alive.Store(false)
	})
}

func (t *Terminal) cmdQuit(_ *gocui.View) error {
	t.markQuit()
	return gocui.ErrQuit
}

func (t *Terminal) renderStatus(g *gocui.Gui) {
	v, err := g.View(statusView)
	if err != nil {
		return
	}
	t.mu.Lock()
	s := t.stats
	t.mu.Unlock()
	v.Clear()
	for _, line := range StatusLines(s) {
		_, _ = fmt.Fprintln(v, line)
	}
}

func (t *Terminal) renderConfiguration(g *gocui.Gui) {
	v, err := g.View(configView)
	if err != nil {
		return
	}
	v.Clear()
	for _, line := range ConfigLines(t.cfg) {
		_, _ = fmt.Fprintln(v, line)
	}
}

func (t *Terminal) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	split := 3 + (maxY-5-3)/2

	if v, err := g.SetView(configView, 0, 0, leftColumnWidth, split); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration(g)
	}

	if v, err := g.SetView(statusView, 0, split+1, leftColumnWidth, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus(g)
	}

	v, err := g.SetView(fieldView, leftColumnWidth+1, 0, maxX-1, maxY-3)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Field"
		v.Frame = true
	}
	w, h := v.Size()
	t.mu.Lock()
	t.fieldW, t.fieldH = w, h
	t.mu.Unlock()

	if v, err := g.SetView(helpView, -1, maxY-3, maxX, maxY-1); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.keys {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}
	return nil
}

// StatusLines formats tick statistics for the status view.
func StatusLines(s engine.Stats) []string {
	return []string{
		renderProp("Step", "%v", s.Step),
		renderProp("Buffer", "%v", s.Buffer),
		renderProp("Active", "%v", s.Population),
		renderProp("Step time", "%v", s.StepTime),
	}
}

// ConfigLines formats the session settings for the configuration view.
func ConfigLines(cfg core.Config) []string {
	steps := "unlimited"
	if cfg.MaxSteps > 0 {
		steps = fmt.Sprintf("%d steps", cfg.MaxSteps)
	}
	return []string{
		renderProp("Rule", "%v", cfg.Rule),
		renderProp("Dimension", "%v x %v", cfg.Width, cfg.Height),
		renderProp("Tile", "%v", cfg.TileSize),
		renderProp("Interval", "%v", cfg.TickInterval),
		renderProp("Iterations", "%v", steps),
		renderProp("Seed", "%v", cfg.Seed),
	}
}
