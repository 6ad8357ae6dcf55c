package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas
var schemaFiles embed.FS

const requestSchemaURL = "https://pokeradvisor.dev/schemas/request.json"

// Validator checks raw client messages against the request schema before
// they are decoded.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded request schema.
func NewValidator() (*Validator, error) {
	data, err := schemaFiles.ReadFile("schemas/request.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read request schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(requestSchemaURL, strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("failed to add request schema: %w", err)
	}
	schema, err := compiler.Compile(requestSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile request schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// ValidateRequest validates one client message.
func (v *Validator) ValidateRequest(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("request validation failed: %w", err)
	}
	return nil
}
