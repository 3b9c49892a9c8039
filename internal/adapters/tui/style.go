package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PabloGalante/nuance-coach/internal/app/style"
	"github.com/PabloGalante/nuance-coach/internal/domain"
)

type stylePage struct {
	ctx      context.Context
	keys     keyMap
	flow     *style.Flow
	focus    focusArea
	cursor   int
	selected int
	width    int
}

func newStylePage(ctx context.Context, keys keyMap, deps Deps, notify func()) *stylePage {
	var opts []style.Option
	if deps.AfterFunc != nil {
		opts = append(opts, style.WithAfterFunc(deps.AfterFunc))
	}
	return &stylePage{
		ctx:  ctx,
		keys: keys,
		flow: style.NewFlow(deps.Analyzer, deps.Clipboard, notify, opts...),
	}
}

func (p *stylePage) Init() tea.Cmd { return nil }

func (p *stylePage) SetSize(width, _ int) { p.width = width }

func (p *stylePage) Update(msg tea.Msg) (page, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch {
	case key.Matches(km, p.keys.Submit):
		return p, p.submit()
	case key.Matches(km, p.keys.Focus):
		if p.focus == focusInput && p.flow.Snapshot().Result != nil {
			p.focus = focusResults
		} else {
			p.focus = focusInput
		}
		return p, nil
	}

	if p.focus == focusResults {
		p.updateResults(km)
		return p, nil
	}

	n := len(domain.Preferences)
	switch {
	case key.Matches(km, p.keys.Up):
		p.cursor = (p.cursor + n - 1) % n
	case key.Matches(km, p.keys.Down):
		p.cursor = (p.cursor + 1) % n
	case key.Matches(km, p.keys.Toggle):
		p.flow.Toggle(domain.Preferences[p.cursor])
	case key.Matches(km, p.keys.Select):
		return p, p.submit()
	}
	return p, nil
}

func (p *stylePage) submit() tea.Cmd {
	if !p.flow.Snapshot().CanSubmit() {
		return nil
	}
	p.selected = 0
	p.focus = focusInput
	return background(func() { p.flow.Submit(p.ctx) })
}

func (p *stylePage) updateResults(km tea.KeyMsg) {
	st := p.flow.Snapshot()
	if st.Result == nil {
		p.focus = focusInput
		return
	}
	n := len(st.Result.Variants)

	switch {
	case key.Matches(km, p.keys.Up):
		if n > 0 {
			p.selected = (p.selected + n - 1) % n
		}
	case key.Matches(km, p.keys.Down):
		if n > 0 {
			p.selected = (p.selected + 1) % n
		}
	case key.Matches(km, p.keys.Copy), key.Matches(km, p.keys.Select):
		_ = p.flow.Copy(p.selected)
	}
}

func (p *stylePage) View() string {
	st := p.flow.Snapshot()
	width := contentWidth(p.width)

	var b strings.Builder
	b.WriteString(header(true, "Beschrijf je stijl",
		"Kies je communicatievoorkeuren. We maken een natuurlijke uitleg die je kunt delen met een match."))

	b.WriteString("\n" + mutedStyle.Render("Mijn voorkeuren") + "\n")
	for i, pref := range domain.Preferences {
		box := "[ ]"
		if st.IsSelected(pref) {
			box = successStyle.Render("[x]")
		}
		line := box + " " + pref
		if p.focus == focusInput && i == p.cursor {
			line = selectedStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if st.Loading {
		b.WriteString("\n" + loadingStyle.Render("Bezig met schrijven...") + "\n")
		b.WriteString(mutedStyle.Render("Even geduld, we schrijven varianten...") + "\n")
	}
	if st.Err != "" {
		b.WriteString("\n" + errorStyle.Render(st.Err) + "\n")
	}
	if st.Result != nil {
		b.WriteString(headingStyle.Render("Jouw stijl in woorden") + "\n")
		for i, v := range st.Result.Variants {
			label := strings.TrimSpace(v.Tone.Emoji() + " " + v.Tone.Label())
			copyLabel := mutedStyle.Render("[c] Kopieer")
			if st.Copied == i {
				copyLabel = successStyle.Render("✓ Gekopieerd!")
			}
			body := selectedStyle.Render(label) + "\n" + v.Message + "\n" + copyLabel
			b.WriteString(card(body, p.focus == focusResults && i == p.selected, width) + "\n")
		}
	}

	b.WriteString("\n")
	if p.focus == focusResults {
		b.WriteString(hintLine(p.keys.Up, p.keys.Down, p.keys.Copy, p.keys.Focus, p.keys.Back))
	} else {
		b.WriteString(hintLine(p.keys.Up, p.keys.Down, p.keys.Toggle, p.keys.Submit, p.keys.Focus, p.keys.Back))
	}
	return b.String()
}
