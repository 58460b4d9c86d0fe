package cursor

// PointerState is a snapshot of the raw pointer and its interaction flags.
type PointerState struct {
	Position Vec2
	Hovering bool
	Pressing bool
	Visible  bool
}

// Store is the single source of truth for the raw pointer state. It is owned
// by one activation of the subsystem; after Close every mutation is a no-op.
type Store struct {
	state  PointerState
	closed bool
}

// NewStore creates a store seeded with the given position. The pointer starts
// invisible until the first move or enter.
func NewStore(x, y float64) *Store {
	return &Store{state: PointerState{Position: Vec2{x, y}}}
}

// OnMove records the latest raw position and marks the pointer visible.
func (s *Store) OnMove(x, y float64) {
	if s.closed {
		return
	}
	s.state.Position = Vec2{x, y}
	s.state.Visible = true
}

// OnEnterViewport marks the pointer visible.
func (s *Store) OnEnterViewport() {
	if s.closed {
		return
	}
	s.state.Visible = true
}

// OnLeaveViewport marks the pointer invisible.
func (s *Store) OnLeaveViewport() {
	if s.closed {
		return
	}
	s.state.Visible = false
}

// OnPressStart marks the primary button as held.
func (s *Store) OnPressStart() {
	if s.closed {
		return
	}
	s.state.Pressing = true
}

// OnPressEnd marks the primary button as released.
func (s *Store) OnPressEnd() {
	if s.closed {
		return
	}
	s.state.Pressing = false
}

// SetHover sets the aggregated hover flag. Only the Observer calls it.
func (s *Store) SetHover(active bool) {
	if s.closed {
		return
	}
	s.state.Hovering = active
}

// Read returns a consistent snapshot of the current state.
func (s *Store) Read() PointerState {
	return s.state
}

// Close stops the store from accepting further mutations.
func (s *Store) Close() {
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	return s.closed
}
