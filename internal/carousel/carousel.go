// Package carousel tracks which card of a deck is active and where every
// other card sits relative to it.
package carousel

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCards is returned when a controller is built for an empty deck
	ErrNoCards = errors.New("carousel needs at least one card")

	// ErrIndexOutOfRange is returned by GoTo for an index outside the deck
	ErrIndexOutOfRange = errors.New("card index out of range")
)

// Controller owns the active index. It is not safe for concurrent use;
// the UI update loop is its only caller.
type Controller struct {
	count  int
	active int
}

// New creates a controller for count cards with the first card active
func New(count int) (*Controller, error) {
	if count < 1 {
		return nil, ErrNoCards
	}
	return &Controller{count: count}, nil
}

// Len returns the number of cards
func (c *Controller) Len() int {
	return c.count
}

// Active returns the active index
func (c *Controller) Active() int {
	return c.active
}

// Next advances one card, wrapping past the end
func (c *Controller) Next() {
	c.active = (c.active + 1) % c.count
}

// Prev goes back one card, wrapping past the start
func (c *Controller) Prev() {
	c.active = (c.active - 1 + c.count) % c.count
}

// GoTo activates card i. Out-of-range indexes are rejected, not clamped.
// It reports whether the active index changed.
func (c *Controller) GoTo(i int) (bool, error) {
	if i < 0 || i >= c.count {
		return false, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, c.count)
	}
	if i == c.active {
		return false, nil
	}
	c.active = i
	return true, nil
}

// SlotFor returns the signed circular offset of card index from the
// active card: 0 for the active card, negative to its left.
func (c *Controller) SlotFor(index int) int {
	return Slot(index, c.active, c.count)
}

// Slots returns SlotFor for every card in deck order
func (c *Controller) Slots() []int {
	slots := make([]int, c.count)
	for i := range slots {
		slots[i] = c.SlotFor(i)
	}
	return slots
}

// Slot computes ((index - active + half) mod count) - half with
// half = count/2 and a non-negative modulo.
func Slot(index, active, count int) int {
	half := count / 2
	m := (index - active + half) % count
	if m < 0 {
		m += count
	}
	return m - half
}
