// Package backend wraps the demo's user, product and order endpoints for
// either architecture (monolith or microservices).
package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/comparedemo/internal/config"
	dhttp "github.com/wesleyorama2/comparedemo/internal/http"
)

// Architecture names one backend deployment and the path prefix of each
// resource it serves.
type Architecture struct {
	Name        string
	UserBase    string
	ProductBase string
	OrderBase   string
}

// ArchitectureFromConfig resolves the named architecture from cfg.
func ArchitectureFromConfig(cfg *config.Config, name string) (Architecture, error) {
	bases, err := cfg.Bases(name)
	if err != nil {
		return Architecture{}, err
	}
	return Architecture{
		Name:        name,
		UserBase:    bases.UserBase(),
		ProductBase: bases.ProductBase(),
		OrderBase:   bases.OrderBase(),
	}, nil
}

// OrderPayload is the body of an order creation request.
type OrderPayload struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UserResult is the outcome of a user creation call.
type UserResult struct {
	Body interface{}
	// UserID is taken from "user_id" or, failing that, "userId".
	UserID string
}

// Service issues calls against one architecture.
type Service struct {
	client *dhttp.Client
	arch   Architecture
}

// NewService creates a Service that sends requests through client, whose
// base URL is the proxy root.
func NewService(client *dhttp.Client, arch Architecture) *Service {
	return &Service{client: client, arch: arch}
}

// Architecture returns the architecture this service targets.
func (s *Service) Architecture() Architecture {
	return s.arch
}

// CreateUser posts {username} to <user-base>/user.
func (s *Service) CreateUser(ctx context.Context, username string) (*UserResult, error) {
	if username == "" {
		return nil, &dhttp.InputError{Message: "Username cannot be empty"}
	}

	req := dhttp.NewRequest(http.MethodPost, s.arch.UserBase+"/user").
		WithBody(map[string]string{"username": username})
	data, err := s.client.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	return &UserResult{Body: data, UserID: extractUserID(data)}, nil
}

// GetProduct fetches <product-base>/product/{id}.
func (s *Service) GetProduct(ctx context.Context, productID string) (interface{}, error) {
	if productID == "" {
		return nil, &dhttp.InputError{Message: "Product ID cannot be empty"}
	}
	return s.client.Call(ctx, dhttp.NewRequest(http.MethodGet, s.arch.ProductBase+"/product/"+url.PathEscape(productID)))
}

// CreateOrder posts a quantity-1 order for userID and productID.
func (s *Service) CreateOrder(ctx context.Context, userID, productID string) (interface{}, error) {
	if userID == "" || productID == "" {
		return nil, &dhttp.InputError{Message: "User ID and Product ID cannot be empty"}
	}
	return s.SubmitOrder(ctx, OrderPayload{UserID: userID, ProductID: productID, Quantity: 1})
}

// SubmitOrder posts payload as is, tagged with a fresh X-Request-ID. It
// performs no input checks; the load generator supplies its own fallbacks.
func (s *Service) SubmitOrder(ctx context.Context, payload OrderPayload) (interface{}, error) {
	req := dhttp.NewRequest(http.MethodPost, s.arch.OrderBase+"/order").
		WithHeader("X-Request-ID", uuid.NewString()).
		WithBody(payload)
	return s.client.Call(ctx, req)
}

func extractUserID(data interface{}) string {
	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	for _, path := range []string{"user_id", "userId"} {
		if v := gjson.GetBytes(raw, path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
