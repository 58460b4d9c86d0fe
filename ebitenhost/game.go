// Package ebitenhost runs the cursor overlay inside an Ebitengine window.
// It polls the mouse each tick, hides the OS cursor while the overlay is
// active and draws the overlay with ebiten/vector on top of the document.
package ebitenhost

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/cursor"
)

const (
	defaultWidth  = 960
	defaultHeight = 600

	// toggleKey flips the reduced-motion preference.
	toggleKey = ebiten.KeyM
)

// Options configures NewGame and Run.
type Options struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool

	Config     cursor.Config
	Background cursor.Color

	// Script replays a JSON pointer script instead of reading the mouse.
	Script []byte

	// OnUpdate runs first in every tick. Tree mutations made here are
	// flushed before the pointer is routed.
	OnUpdate func(dt float64) error
}

// Game implements ebiten.Game around a cursor.Document.
type Game struct {
	opts   Options
	logger *slog.Logger

	doc      *cursor.Document
	pointer  *cursor.VirtualPointer
	clock    *cursor.FrameClock
	prefs    *cursor.Preferences
	cursor   *cursor.Cursor
	renderer *Renderer
	script   *cursor.ScriptRunner

	started bool
}

// NewGame wires a cursor to doc. The overlay activates on the first Update.
func NewGame(doc *cursor.Document, opts Options) (*Game, error) {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	cfg := opts.Config
	logger := cfg.ResolveLogger()

	touch := runtime.GOOS == "android" || runtime.GOOS == "ios"
	prefs, err := cursor.OpenPreferences(cursor.DetectEnvironment(touch), cfg.PreferencesPath)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:     opts,
		logger:   logger,
		doc:      doc,
		pointer:  cursor.NewVirtualPointer(doc),
		clock:    &cursor.FrameClock{},
		prefs:    prefs,
		renderer: NewRenderer(cfg.Style),
	}
	if opts.Script != nil {
		if g.script, err = cursor.LoadScript(opts.Script); err != nil {
			return nil, err
		}
	}
	g.cursor, err = cursor.New(cfg, cursor.Host{
		Capabilities: prefs,
		Pointer:      g.pointer,
		Frames:       g.clock,
		Tree:         doc,
		Changes:      doc,
		System:       systemCursor{},
		Renderer:     g.renderer,
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Update advances one tick: user callback, mutation flush, pointer routing,
// then the frame signal.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if g.opts.OnUpdate != nil {
		if err := g.opts.OnUpdate(dt); err != nil {
			return err
		}
	}
	g.doc.Flush()

	if g.script != nil {
		g.script.Step(g.pointer)
	} else {
		applyPointer(g.pointer, readPointer(), g.opts.Width, g.opts.Height)
	}
	if !g.started {
		g.started = true
		active := g.cursor.Activate()
		g.logger.Info("cursor overlay", "active", active, "reduced_motion", g.prefs.PrefersReducedMotion())
	}
	g.pointer.Refresh()

	if inpututil.IsKeyJustPressed(toggleKey) {
		if err := g.prefs.Toggle(); err != nil {
			g.logger.Warn("save motion preference", "err", err)
		}
	}

	g.clock.Tick(dt)
	return nil
}

// Draw paints the document, then the overlay, then the optional readouts.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(toNRGBA(g.opts.Background, 1))
	DrawDocument(screen, g.doc)
	g.renderer.Draw(screen)

	if g.opts.ShowFPS {
		motion := "full"
		if g.prefs.PrefersReducedMotion() {
			motion = "reduced"
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f  TPS: %.0f  motion: %s",
			ebiten.ActualFPS(), ebiten.ActualTPS(), motion), 4, g.opts.Height-16)
	}
}

// Layout implements ebiten.Game with a fixed logical size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.opts.Width, g.opts.Height
}

// Cursor returns the overlay driven by this game.
func (g *Game) Cursor() *cursor.Cursor { return g.cursor }

// Pointer returns the virtual pointer fed from the mouse.
func (g *Game) Pointer() *cursor.VirtualPointer { return g.pointer }

// Preferences returns the motion preference layer.
func (g *Game) Preferences() *cursor.Preferences { return g.prefs }

// Close tears the overlay down and restores the OS cursor.
func (g *Game) Close() {
	g.cursor.Close()
}

// Run opens a window and blocks until it is closed.
func Run(doc *cursor.Document, opts Options) error {
	g, err := NewGame(doc, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	ebiten.SetWindowTitle(g.opts.Title)
	ebiten.SetWindowSize(g.opts.Width, g.opts.Height)
	return ebiten.RunGame(g)
}

var _ ebiten.Game = (*Game)(nil)
