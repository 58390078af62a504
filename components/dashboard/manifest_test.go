package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifest(t *testing.T) {
	const payload = `
version: 1
name: storefront-pack
panels:
  - definition:
      code: custom.inventory_levels
      name: Inventory Levels
      description: Stock counts per location.
      category: tables
      schema:
        type: object
        properties:
          limit:
            type: integer
    tags: ["inventory"]
`
	doc, err := DecodeManifest(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, doc.Panels, 1)

	panel := doc.Panels[0]
	assert.Equal(t, "custom.inventory_levels", panel.Definition.Code)
	assert.Equal(t, "Inventory Levels", panel.Definition.Name)
	assert.Equal(t, "tables", panel.Definition.Category)
	assert.Equal(t, []string{"inventory"}, panel.Tags)
}

func TestDecodeManifestRejectsDuplicateCodes(t *testing.T) {
	const payload = `
version: 1
panels:
  - definition:
      code: custom.dupe
      name: First
  - definition:
      code: custom.dupe
      name: Second
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicates")
}

func TestDecodeManifestRejectsUnknownVersion(t *testing.T) {
	_, err := DecodeManifest(strings.NewReader("version: 9\npanels: []\n"))
	require.Error(t, err)
}

func TestRegistryLoadManifestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panels.yaml")
	const payload = `
version: 1
panels:
  - definition:
      code: top_products
      name: Best Sellers
      config:
        limit: 5
`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	reg := NewRegistry()
	doc, err := reg.LoadManifestFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)

	def, ok := reg.Definition("top_products")
	require.True(t, ok)
	assert.Equal(t, "Best Sellers", def.Name)
	assert.Equal(t, 5, configInt(def.Config, "limit", 0))
}
