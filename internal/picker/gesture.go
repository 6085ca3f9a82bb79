package picker

import "time"

// GestureTracker follows one pointer-down session over the clock face.
// It is built once per Machine and reads sub-mode, meridiem and value
// through the shared cell on every event, never from a snapshot taken when
// the drag began.
type GestureTracker struct {
	state   *Shared
	radius  float64
	commit  func(time.Time)
	release func()
	active  bool
}

func newGestureTracker(state *Shared, radius float64, commit func(time.Time), release func()) *GestureTracker {
	return &GestureTracker{
		state:   state,
		radius:  radius,
		commit:  commit,
		release: release,
	}
}

// Start begins a drag at (x, y), measured from the face's top-left corner,
// and commits the mapped time right away.
func (g *GestureTracker) Start(x, y float64) {
	if !g.state.View.Visible || g.state.View.Mode != TimeMode {
		return
	}
	g.active = true
	g.apply(x, y)
}

// Move commits the time under the pointer. Moves outside a drag are ignored.
func (g *GestureTracker) Move(x, y float64) {
	if !g.active {
		return
	}
	g.apply(x, y)
}

// Release ends the drag. Letting go while editing hours advances to minutes.
func (g *GestureTracker) Release() {
	if !g.active {
		return
	}
	g.active = false
	g.release()
}

// Active reports whether a drag is in progress.
func (g *GestureTracker) Active() bool {
	return g.active
}

func (g *GestureTracker) apply(x, y float64) {
	view := g.state.View
	g.commit(MapPoint(x, y, g.radius, view.SubMode, view.Meridiem, g.state.Value))
}

func (g *GestureTracker) reset() {
	g.active = false
}
