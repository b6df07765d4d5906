package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

// Client represents an HTTP client with customizable options
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// NewClient creates a new HTTP client with the given options.
// No timeout is applied unless WithTimeout is given: a stalled request
// stalls only itself.
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{},
		headers:    make(map[string]string),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithBaseURL sets the base URL for the client
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the timeout for the client. Zero means no timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHeader adds a header to the client
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes an HTTP request and returns the response. Transport failures
// are returned as *TransportError; the status code is not inspected here.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := req.Build(c.baseURL)
	if err != nil {
		return nil, err
	}

	for key, value := range c.headers {
		if _, ok := req.Headers[key]; ok {
			continue
		}
		httpReq.Header.Set(key, value)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq.WithContext(ctx))
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	bodyBytes, err := io.ReadAll(httpResp.Body)
	httpResp.Body.Close()
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	return &Response{
		StatusCode:   httpResp.StatusCode,
		Status:       httpResp.Status,
		Headers:      httpResp.Header,
		Body:         io.NopCloser(bytes.NewReader(bodyBytes)),
		ResponseTime: time.Since(start),
		rawBody:      bodyBytes,
		parsed:       true,
	}, nil
}

// Call executes the request and decodes the body. A 2xx response yields the
// decoded JSON (or the raw text when the body is not JSON, nil when empty).
// Any other status yields an *HTTPError; network failures a *TransportError.
func (c *Client) Call(ctx context.Context, req *Request) (interface{}, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	data := resp.Decoded()
	if !resp.IsSuccess() {
		return nil, newHTTPError(resp.StatusCode, data, resp.rawBody)
	}
	return data, nil
}
