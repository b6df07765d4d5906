package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected method POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/user/user" {
			t.Errorf("Expected path /api/user/user, got %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") != "comparedemo-test" {
			t.Errorf("Expected client header, got %s", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"user_id":"user1","username":"ada"}`))
	}))
	defer server.Close()

	client := NewClient(
		WithHeader("User-Agent", "comparedemo-test"),
		WithBaseURL(server.URL+"/api/user"),
	)

	resp, err := client.Do(context.Background(), NewRequest("POST", "/user").WithBody(map[string]string{"username": "ada"}))
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	if resp.ResponseTime <= 0 {
		t.Errorf("Expected a measured response time, got %v", resp.ResponseTime)
	}
	body, _ := resp.GetBody()
	if string(body) != `{"user_id":"user1","username":"ada"}` {
		t.Errorf("Unexpected body %s", body)
	}
}

func TestClient_WithOptions(t *testing.T) {
	client := NewClient()
	if client.httpClient.Timeout != 0 {
		t.Errorf("Expected no default timeout, got %v", client.httpClient.Timeout)
	}

	client = NewClient(WithTimeout(2*time.Second), WithBaseURL("http://example.com"))
	if client.httpClient.Timeout != 2*time.Second {
		t.Errorf("Expected timeout 2s, got %v", client.httpClient.Timeout)
	}
	if client.BaseURL() != "http://example.com" {
		t.Errorf("Expected base URL, got %s", client.BaseURL())
	}
}

func TestClient_CallSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Laptop","price":1200}`))
	}))
	defer server.Close()

	data, err := NewClient(WithBaseURL(server.URL)).Call(context.Background(), NewRequest("GET", "/product/prod123"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	obj := data.(map[string]interface{})
	if obj["name"] != "Laptop" {
		t.Errorf("Expected Laptop, got %v", obj["name"])
	}
}

func TestClient_CallHTTPError(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantData string
	}{
		{"json body", `{"error":"Product not found"}`, `{"error":"Product not found"}`},
		{"text body", `upstream exploded`, `{"error":"Server returned non-JSON error: upstream exploded"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewClient(WithBaseURL(server.URL)).Call(context.Background(), NewRequest("GET", "/x"))
			var httpErr *HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("Expected *HTTPError, got %T (%v)", err, err)
			}
			if httpErr.Status != http.StatusNotFound {
				t.Errorf("Expected status 404, got %d", httpErr.Status)
			}
			if got := CompactJSON(httpErr.Data); got != tt.wantData {
				t.Errorf("Expected data %s, got %s", tt.wantData, got)
			}
			if StatusOf(err) != "404" {
				t.Errorf("Expected display status 404, got %s", StatusOf(err))
			}
		})
	}
}

func TestClient_CallTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(WithBaseURL(url)).Call(context.Background(), NewRequest("GET", "/"))
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected *TransportError, got %T (%v)", err, err)
	}
	if StatusOf(err) != TransportStatus {
		t.Errorf("Expected %q, got %q", TransportStatus, StatusOf(err))
	}
}

func TestStatusAndDataOf(t *testing.T) {
	err := &InputError{Message: "Username cannot be empty"}
	if StatusOf(err) != "Input Error" {
		t.Errorf("Expected Input Error, got %s", StatusOf(err))
	}
	if CompactJSON(DataOf(err)) != `{"error":"Username cannot be empty"}` {
		t.Errorf("Unexpected data %s", CompactJSON(DataOf(err)))
	}
	if StatusOf(errors.New("boom")) != "N/A" {
		t.Errorf("Expected N/A for foreign errors")
	}
}
