package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Warm palette; the accent matches the web front-end's primary button.
var (
	colorPrimary = lipgloss.Color("#e07a5f")
	colorSuccess = lipgloss.Color("#81b29a")
	colorError   = lipgloss.Color("#e63946")
	colorMuted   = lipgloss.Color("#8d8d8d")
	colorFg      = lipgloss.Color("#f4f1de")
	colorChipBg  = lipgloss.Color("#3d405b")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Bold(true).
			MarginTop(1)

	backStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	loadingStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Italic(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	chipStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorChipBg).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	selectedCardStyle = cardStyle.
				BorderForeground(colorPrimary)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)
)

const barWidth = 20

// confidenceBar renders pct (0-100) as a proportional bar plus label.
func confidenceBar(pct int) string {
	pct = max(0, min(100, pct))
	filled := pct * barWidth / 100
	bar := lipgloss.NewStyle().Foreground(colorPrimary).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %d%%", bar, pct)
}

func chips(labels []string) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, chipStyle.Render(l))
	}
	return strings.Join(parts, " ")
}

func card(body string, selected bool, width int) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(body)
}

// header renders the back link (except on the home page), title and subtitle.
func header(back bool, title, subtitle string) string {
	var b strings.Builder
	if back {
		b.WriteString(backStyle.Render("← Terug (esc)"))
		b.WriteString("\n\n")
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(subtitle))
	b.WriteString("\n")
	return b.String()
}
