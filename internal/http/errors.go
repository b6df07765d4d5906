package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// TransportStatus is the display status used for network-level failures.
const TransportStatus = "Network/Proxy/Listener Error"

// InputError reports a missing required field. It is raised before any
// network call is made.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return "input error: " + e.Message
}

// HTTPError is a completed exchange with a non-2xx status.
type HTTPError struct {
	Status int
	Data   interface{}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error %d: %s", e.Status, compactJSON(e.Data))
}

// TransportError wraps a failure to reach the remote end at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// newHTTPError keeps structured bodies as they are and wraps anything else
// in an {"error": ...} object.
func newHTTPError(status int, data interface{}, raw []byte) *HTTPError {
	parsed := gjson.ParseBytes(raw)
	if gjson.ValidBytes(raw) && (parsed.IsObject() || parsed.IsArray()) {
		return &HTTPError{Status: status, Data: data}
	}
	return &HTTPError{
		Status: status,
		Data:   map[string]interface{}{"error": "Server returned non-JSON error: " + string(raw)},
	}
}

// StatusOf returns the display status for an error from this package:
// "Input Error", the numeric HTTP status, the transport status, or "N/A".
func StatusOf(err error) string {
	var inputErr *InputError
	var httpErr *HTTPError
	var transportErr *TransportError
	switch {
	case errors.As(err, &inputErr):
		return "Input Error"
	case errors.As(err, &httpErr):
		return strconv.Itoa(httpErr.Status)
	case errors.As(err, &transportErr):
		return TransportStatus
	default:
		return "N/A"
	}
}

// DataOf returns the structured payload carried by an error from this
// package, shaped like {"error": "..."} when there is no response body.
func DataOf(err error) interface{} {
	var inputErr *InputError
	var httpErr *HTTPError
	var transportErr *TransportError
	switch {
	case errors.As(err, &inputErr):
		return map[string]interface{}{"error": inputErr.Message}
	case errors.As(err, &httpErr):
		return httpErr.Data
	case errors.As(err, &transportErr):
		return map[string]interface{}{"error": transportErr.Err.Error()}
	default:
		return map[string]interface{}{"error": err.Error()}
	}
}

// CompactJSON renders v as single-line JSON, or with %v if it cannot be
// marshalled.
func CompactJSON(v interface{}) string {
	return compactJSON(v)
}

func compactJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
