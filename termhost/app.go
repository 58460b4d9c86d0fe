// Package termhost runs the cursor overlay in a terminal via tcell. Mouse
// motion is reported in cells, so element geometry is in cells too.
package termhost

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/cursor"
)

const defaultFPS = 60

// Options configures an App.
type Options struct {
	Config     cursor.Config
	FPS        int
	Background cursor.Color

	// Script replays a JSON pointer script instead of reading the mouse.
	Script []byte

	// OnFrame runs first in every frame. Tree mutations made here are
	// flushed before the pointer is routed.
	OnFrame func(dt float64)
}

// App drives a cursor.Document and its overlay from tcell events.
type App struct {
	screen tcell.Screen
	opts   Options
	logger *slog.Logger

	doc      *cursor.Document
	pointer  *cursor.VirtualPointer
	clock    *cursor.FrameClock
	prefs    *cursor.Preferences
	cursor   *cursor.Cursor
	renderer *Renderer
	caret    *caret
	script   *cursor.ScriptRunner

	started bool
}

// New wires a cursor to doc on an initialised screen.
func New(screen tcell.Screen, doc *cursor.Document, opts Options) (*App, error) {
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	cfg := opts.Config
	prefs, err := cursor.OpenPreferences(cursor.DetectEnvironment(false), cfg.PreferencesPath)
	if err != nil {
		return nil, err
	}

	a := &App{
		screen:   screen,
		opts:     opts,
		logger:   cfg.ResolveLogger(),
		doc:      doc,
		pointer:  cursor.NewVirtualPointer(doc),
		clock:    &cursor.FrameClock{},
		prefs:    prefs,
		renderer: NewRenderer(screen, cfg.Style, opts.Background),
	}
	a.caret = &caret{screen: screen, pointer: a.pointer, visible: true}
	if opts.Script != nil {
		if a.script, err = cursor.LoadScript(opts.Script); err != nil {
			return nil, err
		}
	}
	a.cursor, err = cursor.New(cfg, cursor.Host{
		Capabilities: prefs,
		Pointer:      a.pointer,
		Frames:       a.clock,
		Tree:         doc,
		Changes:      doc,
		System:       a.caret,
		Renderer:     a.renderer,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// HandleEvent applies one tcell event. It returns false when the user asked
// to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'm':
				if err := a.prefs.Toggle(); err != nil {
					a.logger.Warn("save motion preference", "err", err)
				}
			}
		}

	case *tcell.EventMouse:
		if a.script != nil {
			return true
		}
		x, y := ev.Position()
		w, h := a.screen.Size()
		if x < 0 || y < 0 || x >= w || y >= h {
			a.pointer.Leave()
			return true
		}
		fx, fy := float64(x), float64(y)
		if px, py := a.pointer.Position(); !a.pointer.Inside() || px != fx || py != fy {
			a.pointer.Move(fx, fy)
		}
		pressed := ev.Buttons()&tcell.Button1 != 0
		switch {
		case pressed && !a.pointer.Pressed():
			a.pointer.Press()
		case !pressed && a.pointer.Pressed():
			a.pointer.Release()
		}

	case *tcell.EventFocus:
		if !ev.Focused {
			a.pointer.Leave()
		}

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// Step advances one frame and repaints the screen.
func (a *App) Step(dt float64) {
	if a.opts.OnFrame != nil {
		a.opts.OnFrame(dt)
	}
	a.doc.Flush()
	if a.script != nil {
		a.script.Step(a.pointer)
	}
	if !a.started {
		a.started = true
		active := a.cursor.Activate()
		a.logger.Info("cursor overlay", "active", active, "reduced_motion", a.prefs.PrefersReducedMotion())
	}
	a.pointer.Refresh()
	a.clock.Tick(dt)

	DrawDocument(a.screen, a.doc, a.opts.Background)
	a.renderer.Draw()
	a.caret.place()
	a.screen.Show()
}

// Run enables mouse reporting and runs the event and frame loop until ctx is
// done or the user quits. Events are read on a separate goroutine that has
// exited by the time Run returns; all cursor work happens on the calling
// goroutine. The screen stays initialized and is left for the caller to Fini.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse(tcell.MouseMotionEvents)
	a.screen.EnableFocus()
	defer a.screen.DisableMouse()

	ticker := time.NewTicker(time.Second / time.Duration(a.opts.FPS))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case <-done:
				return
			default:
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	defer func() {
		close(done)
		// Wake the reader if it is blocked in PollEvent.
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		wg.Wait()
	}()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			a.Step(dt)
			if a.script != nil && a.script.Done() {
				return nil
			}
		}
	}
}

// Cursor returns the overlay driven by this app.
func (a *App) Cursor() *cursor.Cursor { return a.cursor }

// Pointer returns the virtual pointer fed from mouse events.
func (a *App) Pointer() *cursor.VirtualPointer { return a.pointer }

// Preferences returns the motion preference layer.
func (a *App) Preferences() *cursor.Preferences { return a.prefs }

// Close tears the overlay down. The screen is left to the caller.
func (a *App) Close() {
	a.cursor.Close()
}

// caret stands in for the system cursor: the terminal's text caret follows
// the pointer while the overlay is inactive and is hidden while it runs.
type caret struct {
	screen  tcell.Screen
	pointer *cursor.VirtualPointer
	visible bool
}

func (c *caret) SetVisible(visible bool) {
	c.visible = visible
	c.place()
}

func (c *caret) place() {
	if !c.visible || !c.pointer.Inside() {
		c.screen.HideCursor()
		return
	}
	x, y := c.pointer.Position()
	c.screen.ShowCursor(int(math.Round(x)), int(math.Round(y)))
}
