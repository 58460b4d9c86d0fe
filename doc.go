// Package cursor replaces the native pointer with a custom overlay: a dot
// that tracks the pointer tightly, a trailing ring that lags behind it, and a
// glow that appears over interactive elements.
//
// The package is host-agnostic. A [Host] supplies the pointer device, the
// frame signal, the element tree and its mutation notifications, the
// environment capabilities, and a [Renderer]. Ready-made hosts live in
// subpackages: ebitenhost for [Ebitengine] windows and termhost for
// terminals via [tcell].
//
// # Quick start
//
//	doc := cursor.NewDocument()
//	doc.Root().AddChild(cursor.NewBox("cta", cursor.RoleButton, 40, 40, 120, 32))
//
//	pointer := cursor.NewVirtualPointer(doc)
//	clock := &cursor.FrameClock{}
//	c, err := cursor.New(cursor.DefaultConfig(), cursor.Host{
//		Capabilities: cursor.NewStaticEnvironment(false, false),
//		Pointer:      pointer,
//		Frames:       clock,
//		Tree:         doc,
//		Changes:      doc,
//		Renderer:     myRenderer,
//	})
//	if err != nil { ... }
//	c.Activate()
//	defer c.Close()
//
//	// each frame: flush tree changes, route the pointer, then tick
//	doc.Flush()
//	pointer.Move(mx, my)
//	pointer.Refresh()
//	clock.Tick(1.0 / 60)
//
// # Activation
//
// [Cursor.Activate] consults a [Gate]. With reduced motion requested or a
// touch-primary device nothing is subscribed and nothing is drawn. A reduced
// motion change mid-session stops or restarts the overlay.
//
// # Hover tracking
//
// An [Observer] binds one enter/leave pair to every element the
// [ElementMatchPredicate] accepts and rebinds by set difference on each
// mutation batch. The hover flag is true while the pointer is inside at
// least one bound element, so nested interactive elements never clear it
// early. Predicates can be written in expr or CEL via [PredicateConfig].
//
// # Smoothing
//
// Each channel is a [Spring] integrated in closed form. The damping ratio is
// clamped to at least 1 so the overlay never overshoots the pointer.
//
// [Ebitengine]: https://ebitengine.org
// [tcell]: https://github.com/gdamore/tcell
package cursor
