// internal/ui/keys.go
package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Focus     key.Binding
	FocusBack key.Binding
	Activate  key.Binding
	Jump      key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	ChatUp    key.Binding
	ChatDown  key.Binding
	Command   key.Binding
	Decks     key.Binding
	Help      key.Binding
	Esc       key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev card")),
	Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next card")),
	Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus control")),
	FocusBack: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "focus back")),
	Activate:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "activate")),
	Jump:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "go to card")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "scroll up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "scroll down")),
	PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
	Top:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	ChatUp:    key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "transcript up")),
	ChatDown:  key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "transcript down")),
	Command:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
	Decks:     key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "decks")),
	Help:      key.NewBinding(key.WithKeys("?", "f1"), key.WithHelp("?", "help")),
	Esc:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Down, k.Command, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Jump, k.Focus, k.FocusBack, k.Activate},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.ChatUp, k.ChatDown, k.Command, k.Decks, k.Help, k.Quit},
	}
}
