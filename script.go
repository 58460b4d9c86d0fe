package cursor

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a pointer script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a pointer script into a VirtualPointer, one queued
// event per frame. Supported actions: move, press, release, click, path,
// enter, leave, wait.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	queue     []func(*VirtualPointer)
	waitCount int
	done      bool
}

// LoadScript parses a JSON pointer script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse pointer script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse pointer script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "move", "press", "release", "click", "path", "enter", "leave", "wait":
		default:
			return nil, fmt.Errorf("parse pointer script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// Done reports whether every step has been replayed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step(p *VirtualPointer) {
	if r.done {
		return
	}
	if len(r.queue) > 0 {
		r.pop(p)
		r.checkDone()
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	switch st.Action {
	case "move":
		r.push(func(p *VirtualPointer) { p.Move(st.X, st.Y) })
	case "press":
		r.push(func(p *VirtualPointer) { p.Move(st.X, st.Y); p.Press() })
	case "release":
		r.push(func(p *VirtualPointer) { p.Move(st.X, st.Y); p.Release() })
	case "click":
		r.push(func(p *VirtualPointer) { p.Move(st.X, st.Y); p.Press() })
		r.push(func(p *VirtualPointer) { p.Release() })
	case "path":
		r.queuePath(st)
	case "enter":
		r.push((*VirtualPointer).Enter)
	case "leave":
		r.push((*VirtualPointer).Leave)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	if len(r.queue) > 0 {
		r.pop(p)
	}
	r.checkDone()
}

// queuePath linearly interpolates a move from (FromX, FromY) to (ToX, ToY)
// over Frames frames (minimum 2).
func (r *ScriptRunner) queuePath(st scriptStep) {
	frames := st.Frames
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		x := st.FromX + (st.ToX-st.FromX)*t
		y := st.FromY + (st.ToY-st.FromY)*t
		r.push(func(p *VirtualPointer) { p.Move(x, y) })
	}
}

func (r *ScriptRunner) push(fn func(*VirtualPointer)) {
	r.queue = append(r.queue, fn)
}

func (r *ScriptRunner) pop(p *VirtualPointer) {
	fn := r.queue[0]
	r.queue[0] = nil
	r.queue = r.queue[1:]
	fn(p)
}

func (r *ScriptRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.queue) == 0 {
		r.done = true
	}
}
