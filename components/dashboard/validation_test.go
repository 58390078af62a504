package dashboard

import "testing"

func TestJSONSchemaValidatorRejectsInvalidPayload(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := PanelDefinition{
		Code: "custom.ranked",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"limit"},
			"properties": map[string]any{
				"limit": map[string]any{"type": "integer", "minimum": 1},
			},
		},
	}
	if err := validator.Validate(def, map[string]any{"limit": 10}); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if err := validator.Validate(def, map[string]any{}); err == nil {
		t.Fatalf("expected validation error for missing limit")
	}
	if err := validator.Validate(def, map[string]any{"limit": 0}); err == nil {
		t.Fatalf("expected validation error for limit below minimum")
	}
}

func TestJSONSchemaValidatorCachesCompiledSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := PanelDefinition{
		Code:   "custom.cache",
		Schema: map[string]any{"type": "object"},
	}
	if err := validator.Validate(def, nil); err != nil {
		t.Fatalf("unexpected error validating config: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to contain 1 entry, got %d", len(validator.compiled))
	}
	if err := validator.Validate(def, map[string]any{}); err != nil {
		t.Fatalf("unexpected error on cached validation: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to stay at 1 entry, got %d", len(validator.compiled))
	}
}

func TestDefaultPanelConfigsSatisfyTheirSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	for _, def := range DefaultPanelDefinitions() {
		if err := validator.Validate(def, def.Config); err != nil {
			t.Fatalf("default config for %s fails its schema: %v", def.Code, err)
		}
	}
}
