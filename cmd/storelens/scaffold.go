package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	dashboard "github.com/storelens/storelens/components/dashboard"
)

type scaffoldCmd struct {
	Code         string   `required:"" help:"Panel code (e.g. refund_rate)."`
	Name         string   `help:"Display name (defaults to a title-cased form of the code)."`
	Description  string   `help:"One-line description used in manifests."`
	Category     string   `default:"custom" help:"Panel category (stats, charts, tables, ...)."`
	ManifestPath string   `required:"" type:"path" help:"Path to the panel manifest YAML file to update."`
	SchemaPath   string   `type:"path" help:"Optional path to a JSON schema file for the panel configuration."`
	Tag          []string `help:"Optional tags to include in the manifest (use multiple --tag flags)."`
	Overwrite    bool     `help:"Overwrite an existing manifest entry with the same code."`
}

func (cmd *scaffoldCmd) Run(_ *appContext) error {
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("storelens: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, panel := range doc.Panels {
			if panel.Definition.Code == cmd.Code {
				return fmt.Errorf("storelens: manifest already defines panel %s (use --overwrite to replace)", cmd.Code)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}
	name := cmd.Name
	if name == "" {
		name = strcase.ToCase(cmd.Code, strcase.TitleCase, ' ')
	}

	entry := dashboard.ManifestPanel{
		Definition: dashboard.PanelDefinition{
			Code:        cmd.Code,
			Name:        name,
			Description: cmd.Description,
			Category:    cmd.Category,
			Schema:      schema,
		},
		Tags: cmd.Tag,
	}

	replaced := false
	for idx := range doc.Panels {
		if doc.Panels[idx].Definition.Code == cmd.Code {
			doc.Panels[idx] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Panels = append(doc.Panels, entry)
	}
	sort.Slice(doc.Panels, func(i, j int) bool {
		return doc.Panels[i].Definition.Code < doc.Panels[j].Definition.Code
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Added %s to %s\n", cmd.Code, manifestPath)
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("storelens: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("storelens: parse schema JSON: %w", err)
	}
	return schema, nil
}

func loadOrInitManifest(path string) (*dashboard.PanelManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &dashboard.PanelManifestDocument{
				Version: dashboard.ManifestVersion,
				Panels:  []dashboard.ManifestPanel{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("storelens: stat manifest: %w", err)
	}
	return dashboard.ReadManifest(path)
}

func writeManifest(path string, doc *dashboard.PanelManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storelens: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("storelens: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("storelens: write manifest: %w", err)
	}
	return nil
}
