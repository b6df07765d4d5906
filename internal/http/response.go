package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// Response represents an HTTP response
type Response struct {
	StatusCode   int
	Status       string
	Headers      http.Header
	Body         io.ReadCloser
	ResponseTime time.Duration
	rawBody      []byte
	parsed       bool
}

// GetBody returns the response body as a byte array
func (r *Response) GetBody() ([]byte, error) {
	if r.parsed {
		return r.rawBody, nil
	}

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.rawBody = body
	r.parsed = true

	return body, nil
}

// Decoded returns the body as generic JSON, falling back to the raw text
// when it does not parse. An empty body decodes to nil.
func (r *Response) Decoded() interface{} {
	body, err := r.GetBody()
	if err != nil || len(body) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return string(body)
	}
	return v
}

// IsSuccess returns true if the response status code is in the 2xx range
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
