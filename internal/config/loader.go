// Package config loads comparedemo settings from YAML, JSON or TOML files,
// environment variables and built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvBaseURL   = "COMPAREDEMO_BASE_URL"
	EnvNotifyURL = "COMPAREDEMO_NOTIFY_URL"
)

// Architecture names.
const (
	ArchMonolith      = "monolith"
	ArchMicroservices = "microservices"
)

// Config represents the top-level configuration
type Config struct {
	BaseURL        string        `json:"base_url" yaml:"base_url" toml:"base_url"`
	NotifyURL      string        `json:"notify_url" yaml:"notify_url" toml:"notify_url"`
	RequestTimeout string        `json:"request_timeout,omitempty" yaml:"request_timeout,omitempty" toml:"request_timeout"`
	LogCapacity    int           `json:"log_capacity" yaml:"log_capacity" toml:"log_capacity"`
	Monolith       APIBases      `json:"monolith" yaml:"monolith" toml:"monolith"`
	Microservices  APIBases      `json:"microservices" yaml:"microservices" toml:"microservices"`
	Load           LoadSettings  `json:"load" yaml:"load" toml:"load"`
	Control        ControlConfig `json:"control" yaml:"control" toml:"control"`
}

// APIBases holds the path prefix of each backend resource. Empty resource
// bases fall back to Base.
type APIBases struct {
	Base    string `json:"base,omitempty" yaml:"base,omitempty" toml:"base"`
	User    string `json:"user,omitempty" yaml:"user,omitempty" toml:"user"`
	Product string `json:"product,omitempty" yaml:"product,omitempty" toml:"product"`
	Order   string `json:"order,omitempty" yaml:"order,omitempty" toml:"order"`
}

// UserBase returns the user resource prefix.
func (b APIBases) UserBase() string { return firstNonEmpty(b.User, b.Base) }

// ProductBase returns the product resource prefix.
func (b APIBases) ProductBase() string { return firstNonEmpty(b.Product, b.Base) }

// OrderBase returns the order resource prefix.
func (b APIBases) OrderBase() string { return firstNonEmpty(b.Order, b.Base) }

// LoadSettings configures the load generator.
type LoadSettings struct {
	// Architecture whose order endpoint receives load.
	Architecture string `json:"architecture" yaml:"architecture" toml:"architecture"`
	// UserID and ProductID prefill the order form.
	UserID    string `json:"user_id,omitempty" yaml:"user_id,omitempty" toml:"user_id"`
	ProductID string `json:"product_id,omitempty" yaml:"product_id,omitempty" toml:"product_id"`
}

// ControlConfig configures the HTTP control surface.
type ControlConfig struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
}

// Default returns the configuration matching the stock demo deployment:
// everything behind one proxy, the scaling listener on localhost:9999.
func Default() *Config {
	return &Config{
		BaseURL:     "http://localhost:8080",
		NotifyURL:   "http://localhost:9999/notify",
		LogCapacity: 50,
		Monolith: APIBases{
			Base: "/api/monolith",
		},
		Microservices: APIBases{
			User:    "/api/user",
			Product: "/api/product",
			Order:   "/api/order",
		},
		Load: LoadSettings{
			Architecture: ArchMicroservices,
		},
		Control: ControlConfig{
			Addr: ":8088",
		},
	}
}

// Load builds the effective configuration: defaults, then the file at path
// (if any), then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := ValidateDocument(data, path); err != nil {
			return nil, err
		}
		if err := Parse(data, path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Parse decodes data over cfg. The format is chosen by the extension of
// path; unknown or empty extensions are treated as YAML.
func Parse(data []byte, path string, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvNotifyURL); v != "" {
		c.NotifyURL = v
	}
}

// Timeout returns the parsed request timeout. Zero means none.
func (c *Config) Timeout() time.Duration {
	d, _ := ParseDurationString(c.RequestTimeout)
	return d
}

// Bases returns the API prefixes for the named architecture.
func (c *Config) Bases(arch string) (APIBases, error) {
	switch arch {
	case ArchMonolith:
		return c.Monolith, nil
	case ArchMicroservices:
		return c.Microservices, nil
	default:
		return APIBases{}, fmt.Errorf("unknown architecture %q (want %s or %s)", arch, ArchMonolith, ArchMicroservices)
	}
}

// ParseDurationString parses a Go duration ("30s", "500ms") or a bare
// integer number of seconds. The empty string is zero.
func ParseDurationString(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	var seconds int
	if _, err := fmt.Sscanf(s, "%d", &seconds); err == nil && fmt.Sprint(seconds) == s {
		return time.Duration(seconds) * time.Second, nil
	}
	return 0, fmt.Errorf("invalid duration: %s", s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
