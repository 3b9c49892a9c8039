package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PabloGalante/nuance-coach/internal/app/interpret"
	"github.com/PabloGalante/nuance-coach/internal/app/navigation"
	"github.com/PabloGalante/nuance-coach/internal/domain"
	"github.com/PabloGalante/nuance-coach/internal/observability"
)

type interpretPage struct {
	ctx    context.Context
	keys   keyMap
	flow   *interpret.Flow
	input  textarea.Model
	focus  focusArea
	action int
	width  int
}

func newInterpretPage(ctx context.Context, keys keyMap, deps Deps, notify func()) *interpretPage {
	return &interpretPage{
		ctx:   ctx,
		keys:  keys,
		flow:  interpret.NewFlow(deps.Analyzer, notify),
		input: newMessageInput(""),
	}
}

func (p *interpretPage) Init() tea.Cmd {
	return p.input.Focus()
}

func (p *interpretPage) SetSize(width, _ int) {
	p.width = width
	resizeInput(&p.input, width)
}

func (p *interpretPage) Update(msg tea.Msg) (page, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	if i := matchIndex(km, p.keys.Examples); i >= 0 && i < len(domain.Examples) {
		p.input.SetValue(domain.Examples[i])
		p.flow.UseExample(domain.Examples[i])
		return p, p.focusOn(focusInput)
	}

	switch {
	case key.Matches(km, p.keys.Submit):
		return p, p.submit()
	case key.Matches(km, p.keys.Focus):
		if p.focus == focusInput && len(p.flow.Snapshot().Actions()) > 0 {
			return p, p.focusOn(focusResults)
		}
		return p, p.focusOn(focusInput)
	}

	if p.focus == focusResults {
		return p, p.updateActions(km)
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(km)
	if v := p.input.Value(); v != p.flow.Snapshot().Text {
		p.flow.SetText(v)
	}
	return p, cmd
}

func (p *interpretPage) focusOn(area focusArea) tea.Cmd {
	p.focus = area
	if area == focusInput {
		return p.input.Focus()
	}
	p.input.Blur()
	return nil
}

func (p *interpretPage) submit() tea.Cmd {
	if !p.flow.Snapshot().CanSubmit() {
		return nil
	}
	p.action = 0
	p.focusOn(focusInput)
	return background(func() { p.flow.Submit(p.ctx) })
}

func (p *interpretPage) updateActions(km tea.KeyMsg) tea.Cmd {
	actions := p.flow.Snapshot().Actions()
	if len(actions) == 0 {
		return p.focusOn(focusInput)
	}
	p.action = min(p.action, len(actions)-1)

	switch {
	case key.Matches(km, p.keys.Left), key.Matches(km, p.keys.Up):
		p.action = (p.action + len(actions) - 1) % len(actions)
	case key.Matches(km, p.keys.Right), key.Matches(km, p.keys.Down):
		p.action = (p.action + 1) % len(actions)
	case key.Matches(km, p.keys.Select):
		a := actions[p.action]
		if a.Muted() {
			return nil
		}
		route, err := navigation.Parse(a.Link)
		if err != nil {
			observability.Logger().Error("bad action link", "link", a.Link, "error", err)
			return nil
		}
		return navigate(route)
	}
	return nil
}

func (p *interpretPage) View() string {
	st := p.flow.Snapshot()
	width := contentWidth(p.width)

	var b strings.Builder
	b.WriteString(header(true, "Begrijp bericht",
		"Plak het bericht dat je hebt ontvangen, of kies een voorbeeld."))

	b.WriteString("\n" + mutedStyle.Render("Probeer:") + " ")
	examples := make([]string, 0, len(domain.Examples))
	for i, ex := range domain.Examples {
		examples = append(examples, fmt.Sprintf("F%d %s", i+1, ex))
	}
	b.WriteString(chips(examples))
	b.WriteString("\n\n")

	b.WriteString("Ontvangen bericht\n")
	b.WriteString(p.input.View())
	b.WriteString("\n" + charCounter(st.Text) + "\n")

	if st.Loading {
		b.WriteString("\n" + loadingStyle.Render("Bezig met analyseren...") + "\n")
		b.WriteString(mutedStyle.Render("Even geduld, we analyseren het bericht...") + "\n")
	}
	if st.Err != "" {
		b.WriteString("\n" + errorStyle.Render(st.Err) + "\n")
	}
	if st.Result != nil {
		b.WriteString(p.viewResult(st, width))
	}

	b.WriteString("\n")
	if p.focus == focusResults {
		b.WriteString(hintLine(p.keys.Left, p.keys.Right, p.keys.Select, p.keys.Focus, p.keys.Back))
	} else {
		b.WriteString(hintLine(p.keys.Submit, p.keys.Examples[0], p.keys.Focus, p.keys.Back))
	}
	return b.String()
}

func (p *interpretPage) viewResult(st interpret.State, width int) string {
	res := st.Result
	var b strings.Builder

	b.WriteString(headingStyle.Render("Wat zegt dit letterlijk?") + "\n")
	b.WriteString(res.LiteralSummary + "\n")
	if len(res.ToneTags) > 0 {
		b.WriteString(chips(res.ToneTags) + "\n")
	}

	b.WriteString(headingStyle.Render("Wat kan dit betekenen?") + "\n")
	for _, m := range res.PossibleMeanings {
		body := m.Meaning + "\n" + confidenceBar(m.Confidence) + "\n" + mutedStyle.Render(m.Why)
		b.WriteString(card(body, false, width) + "\n")
	}

	b.WriteString(headingStyle.Render("Om rustig te blijven") + "\n")
	b.WriteString(res.Regulation + "\n")

	actions := st.Actions()
	if len(actions) == 0 {
		return b.String()
	}
	b.WriteString(headingStyle.Render("Wat kun je doen?") + "\n")
	for i, a := range actions {
		marker := "  "
		if p.focus == focusResults && i == p.action {
			marker = selectedStyle.Render("▸ ")
		}
		label := a.Label
		switch {
		case a.Muted():
			label = mutedStyle.Render(label)
		case p.focus == focusResults && i == p.action:
			label = selectedStyle.Render(label + " →")
		default:
			label += " →"
		}
		b.WriteString(marker + label + "  " + mutedStyle.Render(a.Why) + "\n")
	}
	return b.String()
}
