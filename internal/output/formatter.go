// Package output renders responses, errors and log entries for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	dhttp "github.com/wesleyorama2/comparedemo/internal/http"
	"github.com/wesleyorama2/comparedemo/internal/logbuf"
)

// Format selects how response bodies are rendered.
type Format string

const (
	// FormatJSON pretty-prints bodies as indented JSON
	FormatJSON Format = "json"
	// FormatYAML renders bodies as YAML
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. The empty string means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or yaml)", s)
	}
}

// Formatter is responsible for formatting results, errors and log entries.
type Formatter struct {
	Format  Format
	NoColor bool
	scheme  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(format Format, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	if format == "" {
		format = FormatJSON
	}
	return &Formatter{Format: format, NoColor: noColor, scheme: scheme}
}

// FormatResult renders a decoded response body. Strings are printed as is.
func (f *Formatter) FormatResult(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return "null"
	}

	if f.Format == FormatYAML {
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return strings.TrimRight(string(out), "\n")
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}

// FormatError renders an error as "Error <status>: <payload>".
func (f *Formatter) FormatError(err error) string {
	return fmt.Sprintf("Error %s: %s", dhttp.StatusOf(err), f.FormatResult(dhttp.DataOf(err)))
}

// RenderEntry renders one log entry with its severity colored.
func (f *Formatter) RenderEntry(e logbuf.Entry) string {
	ts := f.scheme.Timestamp.Sprintf("[%s]", e.Time.Format("15:04:05"))
	tag := f.scheme.ForSeverity(e.Severity).Sprintf("%s:", strings.ToUpper(string(e.Severity)))
	return fmt.Sprintf("%s %s %s %s", SeverityIcon(e.Severity, f.NoColor), ts, tag, e.Message)
}

// RenderStatus renders the load status line.
func (f *Formatter) RenderStatus(status string) string {
	return f.scheme.Status.Sprint("● " + status)
}

// Highlight renders s in the highlight color.
func (f *Formatter) Highlight(s string) string {
	return f.scheme.Highlight.Sprint(s)
}
