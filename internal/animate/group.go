// Package animate drives one-shot staggered entrance transitions.
//
// A Group starts NotTriggered, moves to Playing the first time its
// container becomes visible, and to Done once every child has finished.
// A group never re-arms for the lifetime of its mount.
package animate

import "time"

// Phase is the state of an entrance group
type Phase int

const (
	NotTriggered Phase = iota
	Playing
	Done
)

func (p Phase) String() string {
	switch p {
	case NotTriggered:
		return "not_triggered"
	case Playing:
		return "playing"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Timing configures a staggered transition
type Timing struct {
	Stagger  time.Duration // delay between consecutive children
	Duration time.Duration // length of one child's transition
}

// Group animates children entering one after another
type Group struct {
	name     string
	children int
	timing   Timing
	phase    Phase
	elapsed  time.Duration
}

// NewGroup creates a group for the given number of children
func NewGroup(name string, children int, timing Timing) *Group {
	if children < 0 {
		children = 0
	}
	return &Group{
		name:     name,
		children: children,
		timing:   timing,
	}
}

// Name returns the group's name
func (g *Group) Name() string {
	return g.name
}

// Phase returns the current state
func (g *Group) Phase() Phase {
	return g.phase
}

// Children returns the number of animated children
func (g *Group) Children() int {
	return g.children
}

// Trigger starts the transition. It only has an effect the first time
// and reports whether the group moved to Playing.
func (g *Group) Trigger() bool {
	if g.phase != NotTriggered {
		return false
	}
	g.phase = Playing
	return true
}

// Total is the time from trigger until the last child finishes
func (g *Group) Total() time.Duration {
	if g.children == 0 {
		return 0
	}
	return g.timing.Stagger*time.Duration(g.children-1) + g.timing.Duration
}

// Advance moves a playing group forward by dt and reports whether the
// group finished during this call.
func (g *Group) Advance(dt time.Duration) bool {
	if g.phase != Playing {
		return false
	}
	if dt > 0 {
		g.elapsed += dt
	}
	if g.elapsed >= g.Total() {
		g.phase = Done
		return true
	}
	return false
}

// Progress returns the eased completion of child i in [0, 1]
func (g *Group) Progress(i int) float64 {
	switch g.phase {
	case NotTriggered:
		return 0
	case Done:
		return 1
	}
	if g.timing.Duration <= 0 {
		return 1
	}

	start := g.timing.Stagger * time.Duration(i)
	t := float64(g.elapsed-start) / float64(g.timing.Duration)
	return EaseOut(clamp(t))
}

// EaseOut is a quadratic ease-out curve
func EaseOut(t float64) float64 {
	t = clamp(t)
	return 1 - (1-t)*(1-t)
}

func clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
