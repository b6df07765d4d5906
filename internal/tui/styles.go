package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wesleyorama2/comparedemo/internal/logbuf"
)

var (
	colorWhite  = lipgloss.Color("#FAFAFA")
	colorGray   = lipgloss.Color("#888888")
	colorBlue   = lipgloss.Color("#5B9BD5")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorYellow = lipgloss.Color("#FFD93D")
	colorRed    = lipgloss.Color("#FF6B6B")
	colorAccent = lipgloss.Color("#7D56F4")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorAccent).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	enabledStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	disabledStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Strikethrough(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	timestampStyle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// severityStyle returns the style for a load log severity.
func severityStyle(sev logbuf.Severity) lipgloss.Style {
	switch sev {
	case logbuf.SeveritySuccess:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case logbuf.SeverityWarning:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case logbuf.SeverityError:
		return lipgloss.NewStyle().Foreground(colorRed)
	default:
		return lipgloss.NewStyle().Foreground(colorWhite)
	}
}
