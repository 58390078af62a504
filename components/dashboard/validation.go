package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator validates panel configuration payloads against their schema.
type ConfigValidator interface {
	Validate(def PanelDefinition, config map[string]any) error
}

// JSONSchemaValidator compiles panel schemas on first use and caches them by
// schema content, so a manifest that redefines a panel's schema is picked up
// without restarting the validator.
type JSONSchemaValidator struct {
	mu       sync.Mutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures the provided configuration satisfies the panel schema. A
// panel without a schema accepts any configuration.
func (v *JSONSchemaValidator) Validate(def PanelDefinition, config map[string]any) error {
	if len(def.Schema) == 0 {
		return nil
	}
	raw, err := json.Marshal(def.Schema)
	if err != nil {
		return fmt.Errorf("dashboard: marshal schema %s: %w", def.Code, err)
	}
	schema, err := v.compile(def.Code, raw)
	if err != nil {
		return err
	}

	payload := map[string]any{}
	if config != nil {
		// Round-trip through JSON so typed values (ints, time strings)
		// normalize to what the schema library expects.
		data, err := json.Marshal(config)
		if err != nil {
			return fmt.Errorf("dashboard: marshal config for %s: %w", def.Code, err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("dashboard: normalize config for %s: %w", def.Code, err)
		}
	}

	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashboard: configuration for %s failed validation: %w", def.Code, err)
	}
	return nil
}

func (v *JSONSchemaValidator) compile(code string, raw []byte) (*jsonschema.Schema, error) {
	key := seriesHash(code, string(raw))
	v.mu.Lock()
	defer v.mu.Unlock()
	if schema, ok := v.compiled[key]; ok {
		return schema, nil
	}
	compiler := jsonschema.NewCompiler()
	name := code + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", code, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", code, err)
	}
	v.compiled[key] = schema
	return schema, nil
}

var sharedValidator = NewJSONSchemaValidator()

// ValidatePanelConfig validates a configuration map with the shared validator.
func ValidatePanelConfig(def PanelDefinition, config map[string]any) error {
	return sharedValidator.Validate(def, config)
}
