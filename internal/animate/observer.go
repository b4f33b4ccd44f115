// internal/animate/observer.go
package animate

// Region is a vertical span of the page in rows
type Region struct {
	Top    int
	Height int
}

// Bottom returns the first row after the region
func (r Region) Bottom() int {
	return r.Top + r.Height
}

// VisibleFraction returns how much of r lies inside view, in [0, 1]
func VisibleFraction(r, view Region) float64 {
	if r.Height <= 0 || view.Height <= 0 {
		return 0
	}
	top := max(r.Top, view.Top)
	bottom := min(r.Bottom(), view.Bottom())
	if bottom <= top {
		return 0
	}
	return float64(bottom-top) / float64(r.Height)
}

// Locator resolves a target id to its current page region. A target
// that is not laid out yet reports false.
type Locator func(id string) (Region, bool)

type target struct {
	id        string
	threshold float64
	callback  func()
	fired     bool
}

// Observer calls each registered callback once, the first time its
// target is visible past the target's threshold. It must be released
// with Disconnect when the owning component unmounts.
type Observer struct {
	targets      []*target
	disconnected bool
}

// NewObserver creates an empty observer
func NewObserver() *Observer {
	return &Observer{}
}

// Observe registers a one-shot callback for id. Observing after
// Disconnect is ignored.
func (o *Observer) Observe(id string, threshold float64, callback func()) {
	if o.disconnected || callback == nil {
		return
	}
	o.targets = append(o.targets, &target{
		id:        id,
		threshold: threshold,
		callback:  callback,
	})
}

// Check evaluates every pending target against the visible view and
// returns the ids that fired.
func (o *Observer) Check(view Region, locate Locator) []string {
	if o.disconnected || locate == nil {
		return nil
	}

	var fired []string
	for _, t := range o.targets {
		if t.fired {
			continue
		}
		r, ok := locate(t.id)
		if !ok {
			continue
		}
		frac := VisibleFraction(r, view)
		if frac <= 0 || frac < t.threshold {
			continue
		}
		t.fired = true
		t.callback()
		fired = append(fired, t.id)
	}
	return fired
}

// Pending returns the number of targets that have not fired
func (o *Observer) Pending() int {
	n := 0
	for _, t := range o.targets {
		if !t.fired {
			n++
		}
	}
	return n
}

// Disconnect releases every target. It is safe to call more than once.
func (o *Observer) Disconnect() {
	o.targets = nil
	o.disconnected = true
}

// Connected reports whether Disconnect has not been called yet
func (o *Observer) Connected() bool {
	return !o.disconnected
}

// Scroller is a scrollable container that can jump to its last line
type Scroller interface {
	GotoBottom()
}

// ScrollToBottom scrolls s to its end. A container that is not attached
// yet (nil) is skipped and reported as false.
func ScrollToBottom(s Scroller) bool {
	if s == nil {
		return false
	}
	s.GotoBottom()
	return true
}
