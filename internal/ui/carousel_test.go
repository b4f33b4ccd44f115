package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/internal/animate"
	"showcase/internal/carousel"
	"showcase/internal/cards"
	"showcase/internal/config"
)

func newTestCarousel(t *testing.T) *Carousel {
	t.Helper()
	c, err := NewCarousel(cards.Default(), config.Default().Carousel, nil)
	require.NoError(t, err)
	return c
}

// finish advances entrances until nothing is playing
func finish(t *testing.T, c *Carousel) {
	t.Helper()
	for i := 0; c.Animating(); i++ {
		require.Less(t, i, 10000, "animation never finished")
		c.Advance(config.Default().Carousel.Frame())
	}
}

func TestNewCarousel_EmptyDeck(t *testing.T) {
	_, err := NewCarousel(nil, config.Default().Carousel, nil)
	assert.True(t, errors.Is(err, carousel.ErrNoCards))
}

func TestCarousel_ScrollToBottomBeforeAttach(t *testing.T) {
	c := newTestCarousel(t)

	assert.False(t, c.Attached())
	assert.Nil(t, c.ActivePanel())
	assert.False(t, c.scrollToBottom(0), "missing panel should be skipped")

	c.Attach(100, 10)
	require.True(t, c.Attached())
	for i := 0; i < c.Len(); i++ {
		assert.True(t, c.panels[i].AtBottom(), "panel %d not scrolled to bottom", i)
	}
	assert.True(t, c.scrollToBottom(1))
	assert.False(t, c.scrollToBottom(7))
}

func TestCarousel_ObserverFiresOnce(t *testing.T) {
	c := newTestCarousel(t)
	c.Attach(100, 10)

	// regions are unknown until the first render
	assert.Empty(t, c.CheckVisibility(animate.Region{Top: 0, Height: 1000}, 0))

	c.Render()
	cardsRegion := c.regions[targetCards]
	offscreen := animate.Region{Top: 10000, Height: 10}
	assert.Empty(t, c.CheckVisibility(offscreen, 0))
	assert.Equal(t, animate.NotTriggered, c.CardsPhase())

	fired := c.CheckVisibility(animate.Region{Top: 0, Height: cardsRegion.Bottom()}, 0)
	assert.ElementsMatch(t, []string{targetCards}, fired)
	assert.Equal(t, animate.Playing, c.CardsPhase())
	assert.Equal(t, animate.NotTriggered, c.ChatPhase())

	finish(t, c)
	assert.Equal(t, animate.Done, c.CardsPhase())

	// scrolling away and back does not replay
	c.CheckVisibility(offscreen, 0)
	assert.Empty(t, c.CheckVisibility(animate.Region{Top: 0, Height: cardsRegion.Bottom()}, 0))
	assert.Equal(t, animate.Done, c.CardsPhase())
}

func TestCarousel_UnmountStopsObserving(t *testing.T) {
	c := newTestCarousel(t)
	c.Attach(100, 10)
	c.Render()
	c.Unmount()

	assert.Empty(t, c.CheckVisibility(animate.Region{Top: 0, Height: 1000}, 0))
	assert.Equal(t, animate.NotTriggered, c.CardsPhase())
	assert.Equal(t, animate.NotTriggered, c.ChatPhase())
}

func TestCarousel_GoToActiveKeepsAnimation(t *testing.T) {
	c := newTestCarousel(t)
	c.Attach(100, 10)
	c.Render()
	c.CheckVisibility(animate.Region{Top: 0, Height: 1000}, 0)
	finish(t, c)

	require.NoError(t, c.GoTo(0))
	assert.Equal(t, 0, c.Active())
	assert.False(t, c.Animating())
	assert.Equal(t, animate.Done, c.ChatPhase())

	err := c.GoTo(c.Len())
	assert.True(t, errors.Is(err, carousel.ErrIndexOutOfRange))
	assert.Equal(t, 0, c.Active())
}

func TestCarousel_Navigation(t *testing.T) {
	c := newTestCarousel(t)

	c.Prev()
	assert.Equal(t, 2, c.Active())
	c.Next()
	c.Next()
	assert.Equal(t, 1, c.Active())
}

func TestCarousel_ClickDot(t *testing.T) {
	c := newTestCarousel(t)
	c.Attach(120, 10)
	c.Render()

	var dot *hitRegion
	for i := range c.hits {
		if c.hits[i].target == (control{kind: dotControl, index: 2}) {
			dot = &c.hits[i]
		}
	}
	require.NotNil(t, dot, "no hit region for the third dot")

	hit, err := c.Click(dot.x, dot.y)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 2, c.Active())

	hit, err = c.Click(-1, -1)
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestCarousel_KeyboardFocus(t *testing.T) {
	c := newTestCarousel(t)

	ok, err := c.ActivateFocused()
	assert.False(t, ok)
	assert.NoError(t, err)

	// prev, dot 0, dot 1, dot 2, next
	c.FocusNext(-1)
	ok, err = c.ActivateFocused()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, c.Active(), "focused next button")

	c.FocusNext(1) // wraps to prev
	c.FocusNext(1)
	c.FocusNext(1)
	_, err = c.ActivateFocused()
	require.NoError(t, err)
	assert.Equal(t, 1, c.Active(), "dot 1 is already active")

	c.FocusNext(1)
	_, _ = c.ActivateFocused()
	assert.Equal(t, 2, c.Active())
}

func TestCarousel_RenderShowsActiveCard(t *testing.T) {
	c := newTestCarousel(t)
	c.Attach(120, 10)

	out := c.Render()
	assert.Contains(t, out, "See our agent at work")
	assert.Contains(t, out, "━━")

	cardsRegion, ok := c.regions[targetCards]
	require.True(t, ok)
	assert.Greater(t, cardsRegion.Height, 0)
	chat, ok := c.ChatRegion()
	require.True(t, ok)
	assert.Greater(t, chat.Top, cardsRegion.Top)
}

func TestCarousel_FarCardsShareAStub(t *testing.T) {
	deck := make([]cards.Card, 7)
	for i := range deck {
		deck[i] = cards.Card{Title: "Card", Messages: []cards.Message{{Agent: "security_teacher", Message: "m"}}}
	}
	c, err := NewCarousel(deck, config.Default().Carousel, nil)
	require.NoError(t, err)
	c.Attach(120, 6)
	c.Render()

	var shown []int
	for _, h := range c.hits {
		if h.target.kind == cardControl {
			shown = append(shown, h.target.index)
		}
	}
	// far left stub, adjacent, center, adjacent, far right stub
	assert.Equal(t, []int{5, 6, 0, 1, 2}, shown)
}
