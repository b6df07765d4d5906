package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "definitions": {
    "bases": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "base":    {"type": "string"},
        "user":    {"type": "string"},
        "product": {"type": "string"},
        "order":   {"type": "string"}
      }
    }
  },
  "properties": {
    "base_url":        {"type": "string", "minLength": 1},
    "notify_url":      {"type": "string", "minLength": 1},
    "request_timeout": {"type": "string"},
    "log_capacity":    {"type": "integer", "minimum": 1},
    "monolith":        {"$ref": "#/definitions/bases"},
    "microservices":   {"$ref": "#/definitions/bases"},
    "load": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "architecture": {"enum": ["monolith", "microservices"]},
        "user_id":      {"type": "string"},
        "product_id":   {"type": "string"}
      }
    },
    "control": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "addr": {"type": "string"}
      }
    }
  }
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.json", strings.NewReader(documentSchema)); err != nil {
		panic(fmt.Sprintf("invalid config schema: %v", err))
	}
	return compiler.MustCompile("config.json")
}

// ValidateDocument checks the raw config file against the document schema,
// catching unknown keys and wrong types before decoding.
func ValidateDocument(data []byte, path string) error {
	var doc interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".toml":
		var m map[string]interface{}
		if _, err := toml.Decode(string(data), &m); err != nil {
			return fmt.Errorf("failed to parse TOML config: %w", err)
		}
		doc = m
	default:
		var m map[string]interface{}
		if err := yaml.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
		doc = m
	}

	// Round-trip through encoding/json so every decoder yields the same
	// generic types (float64 numbers, map[string]interface{} objects).
	normalized, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config document: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(normalized, &generic); err != nil {
		return fmt.Errorf("config document: %w", err)
	}
	if generic == nil {
		return nil
	}

	if err := compiledSchema.Validate(generic); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("config schema: %s", schemaMessages(verr))
		}
		return fmt.Errorf("config schema: %w", err)
	}
	return nil
}

func schemaMessages(err *jsonschema.ValidationError) string {
	var msgs []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			msgs = append(msgs, fmt.Sprintf("%s: %s", loc, e.Message))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(err)
	return strings.Join(msgs, "; ")
}

// Validate checks the effective configuration for issues that would cause
// confusing runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if err := validateURL(c.BaseURL); err != nil {
		errs = append(errs, ValidationError{Path: "base_url", Message: err.Error()})
	}
	if err := validateURL(c.NotifyURL); err != nil {
		errs = append(errs, ValidationError{Path: "notify_url", Message: err.Error()})
	}
	if d, err := ParseDurationString(c.RequestTimeout); err != nil {
		errs = append(errs, ValidationError{Path: "request_timeout", Message: err.Error()})
	} else if d < 0 {
		errs = append(errs, ValidationError{Path: "request_timeout", Message: "must be >= 0 (0 = no timeout)"})
	}
	if c.LogCapacity <= 0 {
		errs = append(errs, ValidationError{Path: "log_capacity", Message: "must be > 0"})
	}
	if _, err := c.Bases(c.Load.Architecture); err != nil {
		errs = append(errs, ValidationError{Path: "load.architecture", Message: err.Error()})
	}
	for name, bases := range map[string]APIBases{ArchMonolith: c.Monolith, ArchMicroservices: c.Microservices} {
		if bases.UserBase() == "" || bases.ProductBase() == "" || bases.OrderBase() == "" {
			errs = append(errs, ValidationError{Path: name, Message: "user, product and order bases must resolve (set base or each resource)"})
		}
	}

	return errors.Join(errs...)
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
