package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PabloGalante/nuance-coach/internal/app/navigation"
	"github.com/PabloGalante/nuance-coach/internal/app/reply"
	"github.com/PabloGalante/nuance-coach/internal/domain"
)

type replyPage struct {
	ctx      context.Context
	keys     keyMap
	flow     *reply.Flow
	input    textarea.Model
	focus    focusArea
	selected int
	width    int
}

func newReplyPage(ctx context.Context, keys keyMap, deps Deps, params navigation.ReplyParams, notify func()) *replyPage {
	var opts []reply.Option
	if deps.AfterFunc != nil {
		opts = append(opts, reply.WithAfterFunc(deps.AfterFunc))
	}
	flow := reply.NewFlow(deps.Analyzer, deps.Clipboard, params, notify, opts...)
	return &replyPage{
		ctx:   ctx,
		keys:  keys,
		flow:  flow,
		input: newMessageInput(flow.Snapshot().Text),
	}
}

func (p *replyPage) Init() tea.Cmd {
	return tea.Batch(p.input.Focus(), p.autoSubmit())
}

// autoSubmit drafts replies right away when the page was opened with both a
// message and a goal.
func (p *replyPage) autoSubmit() tea.Cmd {
	return background(func() { p.flow.Start(p.ctx) })
}

func (p *replyPage) SetSize(width, _ int) {
	p.width = width
	resizeInput(&p.input, width)
}

func (p *replyPage) Update(msg tea.Msg) (page, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	switch {
	case key.Matches(km, p.keys.Submit):
		return p, p.submit()
	case key.Matches(km, p.keys.Goal):
		p.flow.CycleGoal(1)
		return p, nil
	case key.Matches(km, p.keys.Focus):
		if p.focus == focusInput && p.flow.Snapshot().Result != nil {
			return p, p.focusOn(focusResults)
		}
		return p, p.focusOn(focusInput)
	}

	if p.focus == focusResults {
		return p, p.updateResults(km)
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(km)
	if v := p.input.Value(); v != p.flow.Snapshot().Text {
		p.flow.SetText(v)
	}
	return p, cmd
}

func (p *replyPage) focusOn(area focusArea) tea.Cmd {
	p.focus = area
	if area == focusInput {
		return p.input.Focus()
	}
	p.input.Blur()
	return nil
}

func (p *replyPage) submit() tea.Cmd {
	if !p.flow.Snapshot().CanSubmit() {
		return nil
	}
	p.selected = 0
	p.focusOn(focusInput)
	return background(func() { p.flow.Submit(p.ctx) })
}

func (p *replyPage) updateResults(km tea.KeyMsg) tea.Cmd {
	st := p.flow.Snapshot()
	if st.Result == nil {
		return p.focusOn(focusInput)
	}
	n := len(st.Result.Options)

	if i := matchIndex(km, p.keys.Digits); i >= 0 && i < len(domain.Refinements) {
		if st.Busy() {
			return nil
		}
		tweak := domain.Refinements[i].GoalTweak
		return background(func() { p.flow.Refine(p.ctx, tweak) })
	}

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
	return nil
}

func (p *replyPage) View() string {
	st := p.flow.Snapshot()
	width := contentWidth(p.width)

	var b strings.Builder
	b.WriteString(header(true, "Maak antwoord",
		"Plak het bericht en kies je doel. We stellen drie antwoorden voor."))

	b.WriteString("\nOntvangen bericht\n")
	b.WriteString(p.input.View())
	b.WriteString("\n" + charCounter(st.Text) + "\n\n")

	b.WriteString("Wat wil je bereiken? " + selectedStyle.Render(st.GoalLabel()) + " " +
		mutedStyle.Render(fmt.Sprintf("(%d/%d, ctrl+g)", goalPosition(st), len(st.GoalOptions))) + "\n")

	if st.Loading {
		b.WriteString("\n" + loadingStyle.Render("Bezig met schrijven...") + "\n")
		b.WriteString(mutedStyle.Render("Even geduld, we schrijven antwoorden...") + "\n")
	}
	if st.Err != "" {
		b.WriteString("\n" + errorStyle.Render(st.Err) + "\n")
	}
	if st.Result != nil {
		b.WriteString(p.viewResult(st, width))
	}

	b.WriteString("\n")
	if p.focus == focusResults {
		b.WriteString(hintLine(p.keys.Up, p.keys.Down, p.keys.Copy, p.keys.Digits[0], p.keys.Focus, p.keys.Back))
	} else {
		b.WriteString(hintLine(p.keys.Submit, p.keys.Goal, p.keys.Focus, p.keys.Back))
	}
	return b.String()
}

func (p *replyPage) viewResult(st reply.State, width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Voorgestelde antwoorden") + "\n")

	for i, opt := range st.Result.Options {
		label := strings.TrimSpace(opt.Style.Emoji() + " " + opt.Style.Label())
		copyLabel := mutedStyle.Render("[c] Kopieer")
		if st.Copied == i {
			copyLabel = successStyle.Render("✓ Gekopieerd!")
		}
		body := selectedStyle.Render(label) + "  " + mutedStyle.Render(opt.ImpactLabel) + "\n" +
			opt.Message + "\n" + copyLabel
		b.WriteString(card(body, p.focus == focusResults && i == p.selected, width) + "\n")
	}

	refinements := make([]string, 0, len(domain.Refinements))
	for i, r := range domain.Refinements {
		refinements = append(refinements, fmt.Sprintf("%d %s", i+1, r.Label))
	}
	b.WriteString(mutedStyle.Render("Pas aan:") + " " + chips(refinements) + "\n")

	if st.Refining {
		b.WriteString(loadingStyle.Render("Even herformuleren...") + "\n")
	}
	return b.String()
}

func goalPosition(st reply.State) int {
	for i, o := range st.GoalOptions {
		if o.Value == st.Goal {
			return i + 1
		}
	}
	return 0
}
