package output

import (
	"github.com/fatih/color"

	"github.com/wesleyorama2/comparedemo/internal/logbuf"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Timestamp *color.Color
	Info      *color.Color
	Success   *color.Color
	Warning   *color.Color
	Error     *color.Color
	Status    *color.Color
	Highlight *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Timestamp: color.New(color.FgHiBlack),
		Info:      color.New(color.FgBlue, color.Bold),
		Success:   color.New(color.FgGreen, color.Bold),
		Warning:   color.New(color.FgYellow, color.Bold),
		Error:     color.New(color.FgRed, color.Bold),
		Status:    color.New(color.FgCyan),
		Highlight: color.New(color.FgMagenta, color.Bold),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	for _, c := range []*color.Color{
		scheme.Timestamp, scheme.Info, scheme.Success, scheme.Warning,
		scheme.Error, scheme.Status, scheme.Highlight,
	} {
		c.DisableColor()
	}

	return scheme
}

// ForSeverity returns the color for a log severity.
func (s *ColorScheme) ForSeverity(sev logbuf.Severity) *color.Color {
	switch sev {
	case logbuf.SeveritySuccess:
		return s.Success
	case logbuf.SeverityWarning:
		return s.Warning
	case logbuf.SeverityError:
		return s.Error
	default:
		return s.Info
	}
}

// SeverityIcon returns a symbol for a log severity, colored unless noColor.
func SeverityIcon(sev logbuf.Severity, noColor bool) string {
	var icon string
	var attr color.Attribute
	switch sev {
	case logbuf.SeveritySuccess:
		icon, attr = "✓", color.FgGreen
	case logbuf.SeverityWarning:
		icon, attr = "⚠", color.FgYellow
	case logbuf.SeverityError:
		icon, attr = "✗", color.FgRed
	default:
		icon, attr = "ℹ", color.FgBlue
	}
	if noColor {
		return icon
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(icon)
}
