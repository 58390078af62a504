package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/storelens/storelens/pkg/session"
)

// Config is the file-driven server configuration. Every field has a working
// default so `storelens serve` runs against a local backend with no file at
// all.
type Config struct {
	Listen          string `json:"listen" yaml:"listen"`
	BackendURL      string `json:"backend_url" yaml:"backend_url"`
	CredentialFile  string `json:"credential_file" yaml:"credential_file"`
	ManifestFile    string `json:"manifest_file" yaml:"manifest_file"`
	ChartAssetsHost string `json:"chart_assets_host" yaml:"chart_assets_host"`
}

const configSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "listen": {"type": "string", "minLength": 1},
    "backend_url": {"type": "string", "minLength": 1},
    "credential_file": {"type": "string"},
    "manifest_file": {"type": "string"},
    "chart_assets_host": {"type": "string"}
  }
}`

// LoadConfig reads an optional YAML file, validates it, and fills defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		Listen:     ":4000",
		BackendURL: "http://localhost:3001",
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("storelens: read config %s: %w", path, err)
		}
		if err := validateConfig(data); err != nil {
			return Config{}, fmt.Errorf("storelens: config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("storelens: parse config %s: %w", path, err)
		}
	}
	if cfg.CredentialFile == "" {
		fallback, err := session.DefaultCredentialPath()
		if err != nil {
			return Config{}, err
		}
		cfg.CredentialFile = fallback
	}
	return cfg, nil
}

// validateConfig checks the raw document against the schema before decoding,
// so typos in key names fail loudly instead of silently using defaults.
func validateConfig(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc == nil {
		return errors.New("config file is empty")
	}
	normalized, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var payload any
	if err := json.Unmarshal(normalized, &payload); err != nil {
		return err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("config.json", bytes.NewReader([]byte(configSchema))); err != nil {
		return err
	}
	schema, err := compiler.Compile("config.json")
	if err != nil {
		return err
	}
	return schema.Validate(payload)
}
