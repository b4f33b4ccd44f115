// internal/carousel/placement.go
package carousel

// Tier is the visual treatment a slot receives
type Tier int

const (
	TierCenter Tier = iota
	TierAdjacent
	TierFar
)

func (t Tier) String() string {
	switch t {
	case TierCenter:
		return "center"
	case TierAdjacent:
		return "adjacent"
	default:
		return "far"
	}
}

// Placement describes how a card at a given slot is drawn
type Placement struct {
	Slot    int
	Tier    Tier
	Side    int     // -1 left, 0 center, 1 right
	Shift   float64 // horizontal shift as a fraction of card width
	Scale   float64
	Opacity float64
	ZIndex  int
}

// Place maps a slot to its placement. Every offset beyond ±1 gets the
// same far treatment regardless of distance.
func Place(slot int) Placement {
	p := Placement{Slot: slot}
	switch {
	case slot < 0:
		p.Side = -1
	case slot > 0:
		p.Side = 1
	}

	switch abs(slot) {
	case 0:
		p.Tier = TierCenter
		p.Scale = 1
		p.Opacity = 1
		p.ZIndex = 30
	case 1:
		p.Tier = TierAdjacent
		p.Shift = 0.85 * float64(p.Side)
		p.Scale = 0.85
		p.Opacity = 0.7
		p.ZIndex = 20
	default:
		p.Tier = TierFar
		p.Shift = 1.10 * float64(p.Side)
		p.Scale = 0.7
		p.Opacity = 0.4
		p.ZIndex = 10
	}
	return p
}

// Placements returns the placement of every card in deck order
func (c *Controller) Placements() []Placement {
	out := make([]Placement, c.count)
	for i := range out {
		out[i] = Place(c.SlotFor(i))
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
