package output

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dhttp "github.com/wesleyorama2/comparedemo/internal/http"
	"github.com/wesleyorama2/comparedemo/internal/logbuf"
)

func TestFormatResult(t *testing.T) {
	body := map[string]interface{}{"name": "Laptop", "price": 1200}

	jsonOut := NewFormatter(FormatJSON, true).FormatResult(body)
	assert.Equal(t, "{\n  \"name\": \"Laptop\",\n  \"price\": 1200\n}", jsonOut)

	yamlOut := NewFormatter(FormatYAML, true).FormatResult(body)
	assert.Equal(t, "name: Laptop\nprice: 1200", yamlOut)

	assert.Equal(t, "plain", NewFormatter(FormatJSON, true).FormatResult("plain"))
	assert.Equal(t, "null", NewFormatter(FormatJSON, true).FormatResult(nil))
}

func TestFormatError(t *testing.T) {
	f := NewFormatter(FormatJSON, true)

	got := f.FormatError(&dhttp.HTTPError{Status: 404, Data: map[string]interface{}{"error": "Product not found"}})
	assert.Equal(t, "Error 404: {\n  \"error\": \"Product not found\"\n}", got)

	got = f.FormatError(&dhttp.InputError{Message: "Username cannot be empty"})
	assert.Equal(t, "Error Input Error: {\n  \"error\": \"Username cannot be empty\"\n}", got)

	got = f.FormatError(&dhttp.TransportError{Err: errors.New("connection refused")})
	assert.Contains(t, got, "Error Network/Proxy/Listener Error:")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "JSON": FormatJSON, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestRenderEntry_NoColor(t *testing.T) {
	e := logbuf.Entry{
		Time:     time.Date(2026, 3, 4, 9, 8, 7, 0, time.UTC),
		Severity: logbuf.SeverityWarning,
		Message:  "Load is already running. Stop it first.",
	}
	assert.Equal(t, "⚠ [09:08:07] WARNING: Load is already running. Stop it first.", NewFormatter(FormatJSON, true).RenderEntry(e))
}

func TestColorSchemes(t *testing.T) {
	scheme := NoColorScheme()
	assert.Same(t, scheme.Error, scheme.ForSeverity(logbuf.SeverityError))
	assert.Same(t, scheme.Info, scheme.ForSeverity(logbuf.SeverityInfo))
	assert.Equal(t, "text", scheme.Warning.Sprint("text"))
}

func TestUseColor(t *testing.T) {
	assert.False(t, UseColor(&testWriter{}, false), "non-file writers are not terminals")
	t.Setenv("NO_COLOR", "1")
	assert.False(t, UseColor(nil, false))
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }
