package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PabloGalante/nuance-coach/internal/app/navigation"
)

type homeEntry struct {
	label string
	about string
	page  navigation.Page
}

var homeEntries = []homeEntry{
	{label: "Begrijp bericht", about: "Wat bedoelt de ander eigenlijk?", page: navigation.PageInterpret},
	{label: "Maak antwoord", about: "Drie antwoorden in verschillende tonen.", page: navigation.PageReply},
	{label: "Beschrijf je stijl", about: "Leg uit hoe jij het liefst communiceert.", page: navigation.PageStyle},
}

type homePage struct {
	keys   keyMap
	cursor int
	width  int
}

func newHomePage(keys keyMap) *homePage {
	return &homePage{keys: keys}
}

func (p *homePage) Init() tea.Cmd { return nil }

func (p *homePage) SetSize(width, _ int) { p.width = width }

func (p *homePage) Update(msg tea.Msg) (page, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch {
	case key.Matches(km, p.keys.Up):
		p.cursor = (p.cursor + len(homeEntries) - 1) % len(homeEntries)
	case key.Matches(km, p.keys.Down), key.Matches(km, p.keys.Focus):
		p.cursor = (p.cursor + 1) % len(homeEntries)
	case key.Matches(km, p.keys.Select):
		return p, navigate(navigation.To(homeEntries[p.cursor].page))
	default:
		if i := matchIndex(km, p.keys.Digits); i >= 0 && i < len(homeEntries) {
			return p, navigate(navigation.To(homeEntries[i].page))
		}
	}
	return p, nil
}

func (p *homePage) View() string {
	var b strings.Builder
	b.WriteString(header(false, "Nuance Coach",
		"Hulp bij het begrijpen van datingberichten en het opstellen van antwoorden."))
	b.WriteString("\n")

	for i, e := range homeEntries {
		body := selectedStyle.Render(e.label) + "\n" + mutedStyle.Render(e.about)
		if i != p.cursor {
			body = e.label + "\n" + mutedStyle.Render(e.about)
		}
		b.WriteString(card(body, i == p.cursor, min(contentWidth(p.width), 60)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintLine(p.keys.Up, p.keys.Down, p.keys.Select, p.keys.Quit))
	return b.String()
}
