package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds every binding used across the pages. Pages pick the ones that
// apply to them.
type keyMap struct {
	Quit     key.Binding
	Back     key.Binding
	Submit   key.Binding
	Focus    key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Toggle   key.Binding
	Copy     key.Binding
	Goal     key.Binding
	Examples []key.Binding
	Digits   []key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "stoppen"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "terug"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "versturen"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "wissel focus"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "omhoog"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "omlaag"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "vorige"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "volgende"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "kiezen"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("spatie", "aan/uit"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "kopieer"),
		),
		Goal: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "ander doel"),
		),
		Examples: []key.Binding{
			key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "voorbeeld 1")),
			key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "voorbeeld 2")),
			key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "voorbeeld 3")),
		},
		Digits: []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "kies")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "kies")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "kies")),
		},
	}
}

// matchIndex returns the index of the first binding in bindings that matches
// msg, or -1.
func matchIndex(msg tea.KeyMsg, bindings []key.Binding) int {
	for i, b := range bindings {
		if key.Matches(msg, b) {
			return i
		}
	}
	return -1
}

// hintLine renders "key desc · key desc" for the given bindings.
func hintLine(bindings ...key.Binding) string {
	var s string
	for i, b := range bindings {
		if i > 0 {
			s += " · "
		}
		h := b.Help()
		s += h.Key + " " + h.Desc
	}
	return hintStyle.Render(s)
}
