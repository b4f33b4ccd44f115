// internal/ui/carousel.go
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"showcase/internal/animate"
	"showcase/internal/carousel"
	"showcase/internal/cards"
	"showcase/internal/config"
)

// Observer target ids, also used as region keys
const (
	targetCards    = "cards"
	targetMessages = "messages"
)

// control is a keyboard/pointer activatable element of the carousel
type control struct {
	kind  controlKind
	index int // card index for cardControl and dotControl
}

type controlKind int

const (
	prevControl controlKind = iota
	dotControl
	nextControl
	cardControl
)

// hitRegion maps a rectangle in section coordinates to a control
type hitRegion struct {
	x, y, w, h int
	target     control
}

func (r hitRegion) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// Carousel is the agent demo section: a card stack over the active
// card's transcript, with prev/next and position dots.
type Carousel struct {
	deck   []cards.Card
	ctrl   *carousel.Controller
	cfg    config.CarouselConfig
	logger *zap.Logger

	cardsAnim *animate.Group
	chatAnim  *animate.Group
	observer  *animate.Observer

	panels []*transcriptPanel // nil until attached
	width  int
	focus  int // index into controls(), -1 for none

	// layout from the last Render, in section coordinates
	regions map[string]animate.Region
	hits    []hitRegion
}

// NewCarousel mounts a carousel for deck. An empty deck is rejected.
func NewCarousel(deck []cards.Card, cfg config.CarouselConfig, logger *zap.Logger) (*Carousel, error) {
	ctrl, err := carousel.New(len(deck))
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	longest := 0
	for _, c := range deck {
		longest = max(longest, len(c.Messages))
	}

	c := &Carousel{
		deck:      cards.Clone(deck),
		ctrl:      ctrl,
		cfg:       cfg,
		logger:    logger,
		cardsAnim: animate.NewGroup(targetCards, len(deck), animate.Timing{Stagger: cfg.Stagger(), Duration: cfg.CardDuration()}),
		chatAnim:  animate.NewGroup(targetMessages, longest, animate.Timing{Stagger: cfg.Stagger(), Duration: cfg.MessageDuration()}),
		observer:  animate.NewObserver(),
		focus:     -1,
		regions:   make(map[string]animate.Region),
	}

	c.observer.Observe(targetCards, cfg.CardThreshold, func() { c.trigger(c.cardsAnim) })
	c.observer.Observe(targetMessages, cfg.MessageThreshold, func() { c.trigger(c.chatAnim) })

	logger.Debug("carousel mounted", zap.Int("cards", len(deck)))
	return c, nil
}

func (c *Carousel) trigger(g *animate.Group) {
	if g.Trigger() {
		c.logger.Debug("entrance started", zap.String("group", g.Name()), zap.Int("children", g.Children()))
	}
}

// Attach lays out the transcript panels at the given width and scrolls
// each to its last message. It runs once; later calls only resize.
func (c *Carousel) Attach(width, chatHeight int) {
	c.width = width
	if c.panels != nil {
		c.resize(chatHeight)
		return
	}

	inner := c.chatInnerWidth()
	md, err := newMarkdownRenderer(inner - 2)
	if err != nil {
		c.logger.Warn("markdown renderer unavailable, using plain text", zap.Error(err))
		md = nil
	}

	c.panels = make([]*transcriptPanel, len(c.deck))
	for i, card := range c.deck {
		c.panels[i] = newTranscriptPanel(card, inner, chatHeight, md)
	}
	c.refreshPanels()
	for i := range c.panels {
		c.scrollToBottom(i)
	}
}

// scrollToBottom is best effort: a panel that is not attached is skipped
func (c *Carousel) scrollToBottom(i int) bool {
	var s animate.Scroller
	if i >= 0 && i < len(c.panels) && c.panels[i] != nil {
		s = c.panels[i]
	}
	return animate.ScrollToBottom(s)
}

func (c *Carousel) resize(chatHeight int) {
	for _, p := range c.panels {
		p.Viewport.Height = chatHeight
	}
}

// Attached reports whether the transcript panels exist
func (c *Carousel) Attached() bool {
	return c.panels != nil
}

// Unmount releases the viewport observer
func (c *Carousel) Unmount() {
	c.observer.Disconnect()
	c.logger.Debug("carousel unmounted")
}

// Connected reports whether the carousel still observes the page
func (c *Carousel) Connected() bool {
	return c.observer.Connected()
}

// Active returns the active card index
func (c *Carousel) Active() int {
	return c.ctrl.Active()
}

// Len returns the number of cards
func (c *Carousel) Len() int {
	return c.ctrl.Len()
}

// Deck returns a copy of the mounted deck
func (c *Carousel) Deck() []cards.Card {
	return cards.Clone(c.deck)
}

// Next shows the following card
func (c *Carousel) Next() {
	c.ctrl.Next()
	c.logger.Debug("card changed", zap.String("via", "next"), zap.Int("active", c.ctrl.Active()))
}

// Prev shows the preceding card
func (c *Carousel) Prev() {
	c.ctrl.Prev()
	c.logger.Debug("card changed", zap.String("via", "prev"), zap.Int("active", c.ctrl.Active()))
}

// GoTo shows card i. Selecting the active card changes nothing.
func (c *Carousel) GoTo(i int) error {
	changed, err := c.ctrl.GoTo(i)
	if err != nil {
		c.logger.Warn("rejected card index", zap.Int("index", i), zap.Error(err))
		return err
	}
	if changed {
		c.logger.Debug("card changed", zap.String("via", "goto"), zap.Int("active", i))
	}
	return nil
}

// CardsPhase and ChatPhase expose the entrance states
func (c *Carousel) CardsPhase() animate.Phase { return c.cardsAnim.Phase() }
func (c *Carousel) ChatPhase() animate.Phase  { return c.chatAnim.Phase() }

// Animating reports whether any entrance is playing
func (c *Carousel) Animating() bool {
	return c.cardsAnim.Phase() == animate.Playing || c.chatAnim.Phase() == animate.Playing
}

// Advance moves playing entrances forward by one frame
func (c *Carousel) Advance(dt time.Duration) {
	for _, g := range []*animate.Group{c.cardsAnim, c.chatAnim} {
		if g.Advance(dt) {
			c.logger.Debug("entrance finished", zap.String("group", g.Name()))
		}
	}
	if c.chatAnim.Phase() != animate.NotTriggered {
		c.refreshPanels()
	}
}

func (c *Carousel) refreshPanels() {
	for _, p := range c.panels {
		p.Refresh(c.chatAnim.Progress)
	}
}

// CheckVisibility feeds the visible page span to the observer. offset
// is the section's top row on the page.
func (c *Carousel) CheckVisibility(view animate.Region, offset int) []string {
	return c.observer.Check(view, func(id string) (animate.Region, bool) {
		r, ok := c.regions[id]
		if !ok {
			return animate.Region{}, false
		}
		r.Top += offset
		return r, true
	})
}

// ActivePanel returns the transcript panel of the active card, or nil
func (c *Carousel) ActivePanel() *transcriptPanel {
	if c.panels == nil {
		return nil
	}
	return c.panels[c.ctrl.Active()]
}

// ChatRegion returns the transcript panel's span in section coordinates
func (c *Carousel) ChatRegion() (animate.Region, bool) {
	r, ok := c.regions[targetMessages]
	return r, ok
}

// controls lists focusable controls in tab order
func (c *Carousel) controls() []control {
	out := []control{{kind: prevControl}}
	for i := range c.deck {
		out = append(out, control{kind: dotControl, index: i})
	}
	return append(out, control{kind: nextControl})
}

// FocusNext moves keyboard focus by delta, wrapping
func (c *Carousel) FocusNext(delta int) {
	n := len(c.controls())
	if c.focus < 0 {
		if delta > 0 {
			c.focus = 0
		} else {
			c.focus = n - 1
		}
		return
	}
	c.focus = ((c.focus+delta)%n + n) % n
}

// ActivateFocused triggers the focused control. It reports false when
// nothing has focus.
func (c *Carousel) ActivateFocused() (bool, error) {
	ctrls := c.controls()
	if c.focus < 0 || c.focus >= len(ctrls) {
		return false, nil
	}
	return true, c.activate(ctrls[c.focus])
}

func (c *Carousel) activate(ct control) error {
	switch ct.kind {
	case prevControl:
		c.Prev()
	case nextControl:
		c.Next()
	case dotControl, cardControl:
		return c.GoTo(ct.index)
	}
	return nil
}

// Click activates the control under a section coordinate
func (c *Carousel) Click(x, y int) (bool, error) {
	for _, h := range c.hits {
		if h.contains(x, y) {
			return true, c.activate(h.target)
		}
	}
	return false, nil
}

func (c *Carousel) isFocused(ct control) bool {
	ctrls := c.controls()
	return c.focus >= 0 && c.focus < len(ctrls) && ctrls[c.focus] == ct
}

// Layout constants, in cells
const (
	cardRowHeight = 8
	farStubWidth  = 5
)

func (c *Carousel) centerWidth() int {
	return max(c.width*36/100, 24)
}

func (c *Carousel) chatInnerWidth() int {
	return max(min(c.width-4, 100), 20)
}

// Render draws the section and records its regions and hit targets
func (c *Carousel) Render() string {
	c.hits = c.hits[:0]
	var lines []string

	heading := HeadingStyle.Render("See our agent at work")
	sub := MutedStyle.Render("Witness the power of AI-driven vulnerability detection in action")
	lines = append(lines,
		lipgloss.PlaceHorizontal(c.width, lipgloss.Center, heading),
		lipgloss.PlaceHorizontal(c.width, lipgloss.Center, sub),
		"",
	)

	rowTop := len(lines)
	row := c.renderCardRow(rowTop)
	lines = append(lines, strings.Split(row, "\n")...)
	c.regions[targetCards] = animate.Region{Top: rowTop, Height: len(lines) - rowTop}
	lines = append(lines, "")

	chatTop := len(lines)
	chat := c.renderChat()
	lines = append(lines, strings.Split(chat, "\n")...)
	c.regions[targetMessages] = animate.Region{Top: chatTop, Height: len(lines) - chatTop}
	lines = append(lines, "")

	navTop := len(lines)
	lines = append(lines, c.renderNav(navTop))

	return strings.Join(lines, "\n")
}

// renderCardRow draws far stubs, adjacent cards and the center card.
// Every far card on a side shares one position, so each side shows a
// single stub for the far card nearest the center.
func (c *Carousel) renderCardRow(top int) string {
	type block struct {
		view  string
		index int
	}
	var left, right []block
	var center block

	placements := c.ctrl.Placements()
	slots := make([]int, len(placements))
	for i, p := range placements {
		slots[i] = p.Slot
	}
	farLeft, farRight := -1, -1
	hiddenLeft, hiddenRight := 0, 0
	for i, slot := range slots {
		switch {
		case slot <= -2:
			if farLeft < 0 || slot > slots[farLeft] {
				farLeft = i
			}
			hiddenLeft++
		case slot >= 2:
			if farRight < 0 || slot < slots[farRight] {
				farRight = i
			}
			hiddenRight++
		}
	}

	if farLeft >= 0 {
		left = append(left, block{view: c.renderStub(farLeft, placements[farLeft], hiddenLeft-1), index: farLeft})
	}
	for s := -1; s <= 1; s++ {
		for i, slot := range slots {
			if slot != s {
				continue
			}
			b := block{view: c.renderCard(i, placements[i]), index: i}
			switch {
			case slot < 0:
				left = append(left, b)
			case slot > 0:
				right = append(right, b)
			default:
				center = b
			}
		}
	}
	if farRight >= 0 {
		right = append(right, block{view: c.renderStub(farRight, placements[farRight], hiddenRight-1), index: farRight})
	}

	blocks := append(append(append([]block{}, left...), center), right...)
	views := make([]string, len(blocks))
	total := 0
	for i, b := range blocks {
		views[i] = b.view
		total += lipgloss.Width(b.view)
	}

	pad := max((c.width-total)/2, 0)
	x := pad
	for _, b := range blocks {
		w := lipgloss.Width(b.view)
		c.hits = append(c.hits, hitRegion{
			x: x, y: top, w: w, h: cardRowHeight,
			target: control{kind: cardControl, index: b.index},
		})
		x += w
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, views...)
	return lipgloss.NewStyle().MarginLeft(pad).Render(row)
}

// renderStub draws the far card i with a marker when more cards are
// stacked behind it
func (c *Carousel) renderStub(i int, p carousel.Placement, behind int) string {
	view := c.renderCard(i, p)
	if behind <= 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	lines[len(lines)-1] = lines[len(lines)-1] + DimStyle.Render(fmt.Sprintf("+%d", behind))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderCard draws one card at its placement, mid-entrance if playing
func (c *Carousel) renderCard(i int, p carousel.Placement) string {
	progress := c.cardsAnim.Progress(i)
	// entrance starts at 30% opacity and slides in from the right
	opacity := p.Opacity * (0.3 + 0.7*progress)
	slide := int((1 - progress) * 6)

	card := c.deck[i]
	fg := Fade(White, opacity)
	border := Fade(Dim, opacity)
	if p.Tier == carousel.TierCenter {
		border = Fade(Accent, opacity)
	}

	height := int(float64(cardRowHeight)*p.Scale + 0.5)
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(fg).
		Height(max(height-2, 1)).
		MarginLeft(slide)

	if p.Tier == carousel.TierFar {
		return style.Width(farStubWidth - 2).Align(lipgloss.Center).Render(fmt.Sprintf("%d", i+1))
	}

	width := c.centerWidth()
	if p.Tier == carousel.TierAdjacent {
		width = int(float64(width) * p.Scale)
	}
	inner := max(width-4, 8)

	title := ansi.Truncate(">_ "+card.Title, inner, "…")
	body := lipgloss.NewStyle().Width(inner).Render(card.Content)
	bodyLines := strings.Split(body, "\n")
	if maxBody := max(height-4, 0); len(bodyLines) > maxBody {
		bodyLines = bodyLines[:maxBody]
	}

	content := lipgloss.NewStyle().Bold(true).Foreground(fg).Render(title)
	if len(bodyLines) > 0 {
		content += "\n" + lipgloss.NewStyle().Foreground(Fade(Muted, opacity)).Render(strings.Join(bodyLines, "\n"))
	}
	return style.Width(width - 2).Padding(0, 1).Render(content)
}

// renderChat draws the active card's transcript in a terminal frame
func (c *Carousel) renderChat() string {
	inner := c.chatInnerWidth()
	bar := lipgloss.NewStyle().Foreground(Red).Render("●") + " " +
		lipgloss.NewStyle().Foreground(Yellow).Render("●") + " " +
		lipgloss.NewStyle().Foreground(Green).Render("●") + "  " +
		DimStyle.Render("autoVuln-agent-terminal")

	body := DimStyle.Render("loading transcript...")
	if p := c.ActivePanel(); p != nil {
		body = p.View()
	}

	box := TerminalBox.Width(inner).Render(bar + "\n" + body)
	return lipgloss.PlaceHorizontal(c.width, lipgloss.Center, box)
}

// renderNav draws prev, position dots and next
func (c *Carousel) renderNav(top int) string {
	type part struct {
		text string
		ct   control
	}
	parts := []part{{text: " ‹ ", ct: control{kind: prevControl}}}
	for i := range c.deck {
		dot := DimStyle.Render("●")
		if i == c.ctrl.Active() {
			dot = TitleStyle.Render("━━")
		}
		parts = append(parts, part{text: dot, ct: control{kind: dotControl, index: i}})
	}
	parts = append(parts, part{text: " › ", ct: control{kind: nextControl}})

	total := 0
	rendered := make([]string, len(parts))
	for i, pt := range parts {
		text := pt.text
		if c.isFocused(pt.ct) {
			text = FocusStyle.Render(ansi.Strip(text))
		}
		rendered[i] = text
		total += lipgloss.Width(text) + 1
	}
	total--

	pad := max((c.width-total)/2, 0)
	x := pad
	for i, pt := range parts {
		w := lipgloss.Width(rendered[i])
		c.hits = append(c.hits, hitRegion{x: x, y: top, w: w, h: 1, target: pt.ct})
		x += w + 1
	}

	return strings.Repeat(" ", pad) + strings.Join(rendered, " ")
}
