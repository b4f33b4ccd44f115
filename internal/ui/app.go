package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"showcase/internal/animate"
	"showcase/internal/booking"
	"showcase/internal/cards"
	"showcase/internal/commands"
	"showcase/internal/config"
	"showcase/internal/db"
	"showcase/internal/export"
)

// frameMsg advances entrance animations by one frame
type frameMsg time.Time

// Options configures a Model
type Options struct {
	Config   *config.Config
	Logger   *zap.Logger
	Store    *db.Store // optional deck library
	Deck     []cards.Card
	DeckName string
	// ExportDir is where /export writes transcripts. Empty uses the data dir.
	ExportDir string
}

type Model struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     *db.Store
	exportDir string

	builtin  []cards.Card
	deckName string
	carousel *Carousel
	bookURL  string
	bookErr  error

	width, height int
	ready         bool
	mode          ViewMode

	page      viewport.Model
	help      help.Model
	prompt    textinput.Model
	prompting bool
	picker    *DeckPicker

	status    string
	statusErr bool

	// page layout from the last render
	carouselTop int
	bookingTop  int

	ticking bool
}

// New builds the page model. An empty deck is rejected.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	deck := opts.Deck
	name := opts.DeckName
	if deck == nil {
		deck = cards.Default()
		name = "Built-in demo"
	}

	c, err := NewCarousel(deck, cfg.Carousel, logger)
	if err != nil {
		return Model{}, fmt.Errorf("mount carousel: %w", err)
	}

	prompt := textinput.New()
	prompt.Prompt = "/"
	prompt.Placeholder = "next, prev, goto 2, decks, export, booking, help"
	prompt.CharLimit = 64

	url, bookErr := booking.FromConfig(cfg.Booking).EmbedURL()
	if bookErr != nil {
		logger.Warn("booking widget disabled", zap.Error(bookErr))
	}

	return Model{
		cfg:       cfg,
		logger:    logger,
		store:     opts.Store,
		exportDir: opts.ExportDir,
		builtin:   cards.Default(),
		deckName:  name,
		carousel:  c,
		bookURL:   url,
		bookErr:   bookErr,
		help:      help.New(),
		prompt:    prompt,
		picker:    NewDeckPicker(),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Carousel exposes the mounted carousel component
func (m Model) Carousel() *Carousel {
	return m.carousel
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.sync()

	case frameMsg:
		m.ticking = false
		m.carousel.Advance(m.cfg.Carousel.Frame())
		return m, m.sync()

	case tea.MouseMsg:
		if m.mode != ViewNormal || m.prompting {
			return m, nil
		}
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		switch m.mode {
		case ViewHelp:
			return m.updateHelp(msg)
		case ViewDecks:
			return m.updateDecks(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	pageHeight := max(height-2, 1) // header + footer

	if !m.ready {
		m.page = viewport.New(width, pageHeight)
		m.page.MouseWheelEnabled = false
		m.ready = true
	} else {
		m.page.Width = width
		m.page.Height = pageHeight
	}
	m.help.Width = width
	m.prompt.Width = max(width-4, 10)
	m.picker.SetMaxHeight(height)

	chatHeight := min(max(pageHeight-17, 6), 24)
	m.carousel.Attach(width, chatHeight)
}

// heroHeight leaves the carousel heading peeking at the bottom of the
// first screen so the card row starts out of view
func (m Model) heroHeight() int {
	return max(m.page.Height-3, 6)
}

// render lays out the page and records section offsets
func (m *Model) render() {
	hero := m.renderHero()
	section := m.carousel.Render()
	book := m.renderBooking()

	m.carouselTop = lipgloss.Height(hero) + 1
	m.bookingTop = m.carouselTop + lipgloss.Height(section) + 1
	m.page.SetContent(strings.Join([]string{hero, section, book}, "\n\n"))
}

// sync re-renders, reports the visible page span to the observer and
// schedules the next frame while anything is animating
func (m *Model) sync() tea.Cmd {
	if !m.ready {
		return nil
	}
	m.render()
	view := animate.Region{Top: m.page.YOffset, Height: m.page.Height}
	if fired := m.carousel.CheckVisibility(view, m.carouselTop); len(fired) > 0 {
		m.render()
	}
	return m.scheduleFrame()
}

func (m *Model) scheduleFrame() tea.Cmd {
	if m.ticking || !m.carousel.Animating() {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.cfg.Carousel.Frame(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) scrollPage(delta int) {
	m.page.SetYOffset(m.page.YOffset + delta)
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, keys.Quit):
		m.carousel.Unmount()
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = ViewHelp
		return m, nil

	case key.Matches(msg, keys.Decks):
		m.openDecks()
		return m, nil

	case key.Matches(msg, keys.Command):
		m.prompting = true
		m.prompt.Reset()
		return m, m.prompt.Focus()

	case key.Matches(msg, keys.Prev):
		m.carousel.Prev()
	case key.Matches(msg, keys.Next):
		m.carousel.Next()
	case key.Matches(msg, keys.Jump):
		m.goTo(int(msg.String()[0] - '1'))
	case key.Matches(msg, keys.Focus):
		m.carousel.FocusNext(1)
	case key.Matches(msg, keys.FocusBack):
		m.carousel.FocusNext(-1)
	case key.Matches(msg, keys.Activate):
		if _, err := m.carousel.ActivateFocused(); err != nil {
			m.setStatus(err.Error(), true)
		}

	case key.Matches(msg, keys.Up):
		m.scrollPage(-1)
	case key.Matches(msg, keys.Down):
		m.scrollPage(1)
	case key.Matches(msg, keys.PageUp):
		m.scrollPage(-m.page.Height)
	case key.Matches(msg, keys.PageDown):
		m.scrollPage(m.page.Height)
	case key.Matches(msg, keys.Top):
		m.page.GotoTop()
	case key.Matches(msg, keys.Bottom):
		m.page.GotoBottom()

	case key.Matches(msg, keys.ChatUp):
		if p := m.carousel.ActivePanel(); p != nil {
			p.Scroll(-1)
		}
	case key.Matches(msg, keys.ChatDown):
		if p := m.carousel.ActivePanel(); p != nil {
			p.Scroll(1)
		}
	}
	return m, m.sync()
}

func (m *Model) goTo(i int) {
	if err := m.carousel.GoTo(i); err != nil {
		m.setStatus(fmt.Sprintf("no card %d: deck has %d cards", i+1, m.carousel.Len()), true)
	}
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// row 0 is the header bar
	pageY := msg.Y - 1 + m.page.YOffset
	sectionY := pageY - m.carouselTop

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := 3
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -3
		}
		if r, ok := m.carousel.ChatRegion(); ok && sectionY >= r.Top && sectionY < r.Bottom() {
			if p := m.carousel.ActivePanel(); p != nil {
				p.Scroll(delta)
				return m, m.sync()
			}
		}
		m.scrollPage(delta)

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		if _, err := m.carousel.Click(msg.X, sectionY); err != nil {
			m.setStatus(err.Error(), true)
		}

	default:
		return m, nil
	}
	return m, m.sync()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case "enter":
		input := "/" + m.prompt.Value()
		m.prompting = false
		m.prompt.Blur()
		m.runCommand(commands.Parse(input))
		return m, m.sync()
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) runCommand(cmd commands.Command) {
	switch c := cmd.(type) {
	case nil:
	case commands.Help:
		m.mode = ViewHelp
	case commands.Next:
		m.carousel.Next()
	case commands.Prev:
		m.carousel.Prev()
	case commands.GoTo:
		m.goTo(c.Index)
	case commands.ShowDecks:
		m.openDecks()
	case commands.Export:
		m.exportDeck()
	case commands.Booking:
		m.page.SetYOffset(m.bookingTop)
	case commands.ParseError:
		m.setStatus(c.Message, true)
	}
}

func (m *Model) exportDeck() {
	dir := m.exportDir
	if dir == "" {
		d, err := config.DataDir()
		if err != nil {
			m.setStatus(err.Error(), true)
			return
		}
		dir = d
	}
	path, err := export.WriteDeck(&export.DeckExport{
		Name:       m.deckName,
		ExportedAt: time.Now(),
		Cards:      m.carousel.Deck(),
	}, dir)
	if err != nil {
		m.logger.Error("export failed", zap.Error(err))
		m.setStatus("export failed: "+err.Error(), true)
		return
	}
	m.logger.Info("deck exported", zap.String("path", path))
	m.setStatus("exported to "+path, false)
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Esc, keys.Help, keys.Quit) {
		m.mode = ViewNormal
	}
	return m, nil
}

func (m *Model) openDecks() {
	err := m.picker.Load(m.store, len(m.builtin))
	if err != nil && !errors.Is(err, errNoStore) {
		m.logger.Warn("deck library unavailable", zap.Error(err))
		m.setStatus(err.Error(), true)
	}
	m.mode = ViewDecks
}

func (m Model) updateDecks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Esc, keys.Quit):
		m.mode = ViewNormal
	case key.Matches(msg, keys.Up):
		m.picker.Up()
	case key.Matches(msg, keys.Down):
		m.picker.Down()
	case key.Matches(msg, keys.Activate):
		m.mode = ViewNormal
		if d := m.picker.Selected(); d != nil {
			m.switchDeck(*d)
		}
		return m, m.sync()
	}
	return m, nil
}

// switchDeck unmounts the carousel and mounts a fresh one for d
func (m *Model) switchDeck(d db.Deck) {
	deck := m.builtin
	if d.ID != builtinDeckID {
		if m.store == nil {
			m.setStatus(errNoStore.Error(), true)
			return
		}
		loaded, err := m.store.LoadCards(d.ID)
		if err != nil {
			m.logger.Warn("load deck failed", zap.String("deck", d.ID), zap.Error(err))
			m.setStatus(err.Error(), true)
			return
		}
		deck = loaded
	}

	next, err := NewCarousel(deck, m.cfg.Carousel, m.logger)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.carousel.Unmount()
	m.carousel = next
	m.deckName = d.Name
	if m.ready {
		m.resize(m.width, m.height)
	}
	m.logger.Info("deck switched", zap.String("deck", d.Name), zap.Int("cards", len(deck)))
	m.setStatus("showing "+d.Name, false)
}

func (m Model) renderHero() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(White).
		Render("AI-Powered Penetration Testing Platform")
	sub := MutedStyle.Render("Revolutionizing automated security testing with AI agents that think like penetration testers.")
	hint := DimStyle.Render("scroll down (j) to see our agent at work")
	body := lipgloss.JoinVertical(lipgloss.Center, title, "", sub, "", "", hint)
	return lipgloss.Place(m.width, m.heroHeight(), lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderBooking() string {
	lines := []string{
		HeadingStyle.Render("Book a demo"),
		MutedStyle.Render("See the agents run against your own targets"),
		"",
	}
	if m.bookErr != nil {
		lines = append(lines, ErrorStyle.Render("booking unavailable: "+m.bookErr.Error()))
	} else {
		lines = append(lines, TitleStyle.Render(m.bookURL))
	}
	body := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body) + "\n"
}

func (m Model) renderHeader() string {
	info := fmt.Sprintf("showcase · %s · card %d/%d", m.deckName, m.carousel.Active()+1, m.carousel.Len())
	return HeaderStyle.Width(m.width).Render(info)
}

func (m Model) renderFooter() string {
	switch {
	case m.prompting:
		return m.prompt.View()
	case m.status != "" && m.statusErr:
		return ErrorStyle.Render(m.status)
	case m.status != "":
		return StatusStyle.Render(m.status)
	default:
		return m.help.View(keys)
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	switch m.mode {
	case ViewHelp:
		return m.renderHelp()
	case ViewDecks:
		return m.picker.Render(m.width, m.height)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.page.View(), m.renderFooter())
}
