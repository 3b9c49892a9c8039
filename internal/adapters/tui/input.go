package tui

import (
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/PabloGalante/nuance-coach/internal/domain"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusResults
)

// newMessageInput returns the message textarea shared by the interpret and
// reply pages.
func newMessageInput(value string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Plak hier het bericht..."
	ta.CharLimit = domain.MaxMessageLength
	ta.ShowLineNumbers = false
	ta.Prompt = "┃ "
	ta.SetHeight(4)
	ta.SetWidth(60)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = mutedStyle
	ta.BlurredStyle = ta.FocusedStyle
	ta.SetValue(value)
	return ta
}

func resizeInput(ta *textarea.Model, width int) {
	ta.SetWidth(min(contentWidth(width), 100))
}

// charCounter renders "n / 5,000".
func charCounter(text string) string {
	n := utf8.RuneCountInString(text)
	return mutedStyle.Render(fmt.Sprintf("%s / %s tekens",
		humanize.Comma(int64(n)), humanize.Comma(domain.MaxMessageLength)))
}
