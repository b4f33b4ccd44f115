package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/internal/animate"
	"showcase/internal/cards"
	"showcase/internal/db"
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	m, err := New(opts)
	require.NoError(t, err)
	return send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runFrames delivers frames until the carousel stops animating
func runFrames(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; m.Carousel().Animating(); i++ {
		require.Less(t, i, 10000, "animation never finished")
		m = send(m, frameMsg{})
	}
	return m
}

func TestNew_EmptyDeck(t *testing.T) {
	_, err := New(Options{Deck: []cards.Card{}})
	assert.Error(t, err)
}

func TestModel_LoadingBeforeSize(t *testing.T) {
	m, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, "Loading...", m.View())
}

func TestModel_PrevNextKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	require.Equal(t, 0, m.Carousel().Active())

	m = send(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.Carousel().Active())
	m = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = send(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, m.Carousel().Active())

	m = send(m, keyRunes("1"))
	assert.Equal(t, 0, m.Carousel().Active())

	m = send(m, keyRunes("9"))
	assert.Equal(t, 0, m.Carousel().Active())
	assert.Contains(t, m.status, "no card 9")
	assert.True(t, m.statusErr)
}

func TestModel_EntranceStartsOnScroll(t *testing.T) {
	m := newTestModel(t, Options{})
	c := m.Carousel()

	require.True(t, c.Attached())
	assert.Equal(t, animate.NotTriggered, c.CardsPhase(), "card row starts below the fold")
	assert.Equal(t, animate.NotTriggered, c.ChatPhase())

	m = send(m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, animate.Playing, c.CardsPhase())
	assert.Equal(t, animate.Playing, c.ChatPhase())

	m = runFrames(t, m)
	assert.Equal(t, animate.Done, c.CardsPhase())
	assert.Equal(t, animate.Done, c.ChatPhase())

	// back to the top and down again: nothing replays
	m = send(m, keyRunes("g"))
	m = send(m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.False(t, c.Animating())
	assert.Equal(t, animate.Done, c.CardsPhase())
}

func TestModel_FrameTicksOnlyWhileAnimating(t *testing.T) {
	m := newTestModel(t, Options{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.NotNil(t, cmd, "entrance should schedule a frame")

	m = runFrames(t, send(m, tea.KeyMsg{Type: tea.KeyPgDown}))
	_, cmd = m.Update(frameMsg{})
	assert.Nil(t, cmd)
}

func TestModel_PromptCommands(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{ExportDir: dir})

	run := func(m Model, s string) Model {
		m = send(m, keyRunes("/"))
		require.True(t, m.prompting)
		m = send(m, keyRunes(s))
		return send(m, tea.KeyMsg{Type: tea.KeyEnter})
	}

	m = run(m, "goto 3")
	assert.False(t, m.prompting)
	assert.Equal(t, 2, m.Carousel().Active())

	m = run(m, "goto 0")
	assert.Contains(t, m.status, "start at 1")
	assert.Equal(t, 2, m.Carousel().Active())

	m = run(m, "export")
	assert.False(t, m.statusErr, m.status)
	_, err := os.Stat(filepath.Join(dir, "transcripts", "built-in-demo.md"))
	assert.NoError(t, err)

	m = run(m, "booking")
	assert.True(t, m.page.AtBottom(), "booking is the last section")
	assert.Greater(t, m.page.YOffset+m.page.Height, m.bookingTop)

	m = run(m, "help")
	assert.Equal(t, ViewHelp, m.mode)
	assert.Contains(t, m.View(), "SHOWCASE HELP")
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewNormal, m.mode)
}

func TestModel_PromptEscape(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, keyRunes("/"))
	m = send(m, keyRunes("next"))
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.prompting)
	assert.Equal(t, 0, m.Carousel().Active())
}

func TestModel_SwitchDeck(t *testing.T) {
	store, err := db.OpenPath(filepath.Join(t.TempDir(), "decks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	small := []cards.Card{{
		Title:    "Single",
		Content:  "one card",
		Messages: []cards.Message{{Agent: "result_analyzer_agent", Message: "done"}},
	}}
	_, err = store.SaveDeck("Small deck", small)
	require.NoError(t, err)

	m := newTestModel(t, Options{Store: store})
	old := m.Carousel()
	m = send(m, tea.KeyMsg{Type: tea.KeyRight})

	m = send(m, keyRunes("D"))
	require.Equal(t, ViewDecks, m.mode)
	assert.Contains(t, m.View(), "Small deck")

	m = send(m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ViewNormal, m.mode)
	assert.NotSame(t, old, m.Carousel())
	assert.Equal(t, 1, m.Carousel().Len())
	assert.Equal(t, 0, m.Carousel().Active())
	assert.True(t, m.Carousel().Attached())
	assert.Equal(t, "Small deck", m.deckName)

	// the old carousel no longer observes the page
	assert.Empty(t, old.CheckVisibility(animate.Region{Top: 0, Height: 1000}, 0))
}

func TestModel_MouseClickDot(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(m, tea.KeyMsg{Type: tea.KeyPgDown})

	var dot hitRegion
	for _, h := range m.Carousel().hits {
		if h.target == (control{kind: dotControl, index: 1}) {
			dot = h
		}
	}
	require.NotZero(t, dot.w)

	// header row plus the page offset
	y := dot.y + m.carouselTop - m.page.YOffset + 1
	m = send(m, tea.MouseMsg{X: dot.x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 1, m.Carousel().Active())
}

func TestModel_QuitUnmounts(t *testing.T) {
	m := newTestModel(t, Options{})
	c := m.Carousel()
	require.True(t, c.Connected())

	next, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, next.(Model).Carousel().Connected())

	// the card row is never animated once released
	send(next.(Model), tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, animate.NotTriggered, c.CardsPhase())
}
