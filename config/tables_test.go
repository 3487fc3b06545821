package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables_Valid(t *testing.T) {
	require.NoError(t, DefaultTables().Validate())
}

func TestLoadTables_EmptyPathReturnsDefaults(t *testing.T) {
	tables, err := LoadTables("")

	require.NoError(t, err)
	assert.Equal(t, DefaultTables(), tables)
}

func TestLoadTables_OverrideKeepsUnsetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	override := []byte(`
provider_weights:
  gov-rent-index: 1.0
  comparable-listings: 0.5
gazetteer:
  boise:
    city: Boise
    state: ID
`)
	require.NoError(t, os.WriteFile(path, override, 0o644))

	tables, err := LoadTables(path)

	require.NoError(t, err)
	assert.Equal(t, 0.5, tables.ProviderWeights["comparable-listings"])
	assert.Equal(t, GazetteerEntry{City: "Boise", State: "ID"}, tables.Gazetteer["boise"])
	// Sections absent from the file keep their compiled-in values.
	assert.Equal(t, DefaultTables().TriggerKeywords, tables.TriggerKeywords)
	assert.Equal(t, DefaultTables().SuccessWeights, tables.SuccessWeights)
}

func TestLoadTables_InvalidOverrideRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	override := []byte(`
success_weights:
  market: 0.9
  relationship: 0.9
  timing: 0.0
  alignment: 0.0
`)
	require.NoError(t, os.WriteFile(path, override, 0o644))

	_, err := LoadTables(path)

	assert.Error(t, err)
}

func TestLoadTables_MissingFile(t *testing.T) {
	_, err := LoadTables(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestValidate_NonPositiveProviderWeight(t *testing.T) {
	tables := DefaultTables()
	tables.ProviderWeights["gov-rent-index"] = 0

	assert.Error(t, tables.Validate())
}

func TestValidate_EmptyTriggerKeywords(t *testing.T) {
	tables := DefaultTables()
	tables.TriggerKeywords = nil

	assert.Error(t, tables.Validate())
}
