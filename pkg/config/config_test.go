package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, root, name, content string) {
	t.Helper()
	dir := filepath.Join(root, "dev-config")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	got := Load(t.TempDir())
	assert.Equal(t, Defaults(), got)
}

func TestLoadEmptyRootFallsBackToDot(t *testing.T) {
	// No dev-config in the working directory of the test; defaults apply.
	assert.Equal(t, Defaults(), Load(""))
}

func TestLoadFlatKeys(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "versioning.yml", `
thresholds:
  major_bonus: 12
  minor_bonus: 6
  patch_bonus: 2
bonuses:
  breaking_cli: 7
  api_breaking: 9
  security: 4
bonus_multiplier_cap: 3.5
loc_divisors:
  patch: 100
  minor: 200
  major: 400
base_deltas:
  patch: 2
  minor: 6
  major: 12
`)

	got := Load(root)
	assert.Equal(t, 12, got.MajorBonusThreshold)
	assert.Equal(t, 6, got.MinorBonusThreshold)
	assert.Equal(t, 2, got.PatchBonusThreshold)
	assert.Equal(t, 7, got.BonusBreakingCli)
	assert.Equal(t, 9, got.BonusApiBreaking)
	assert.Equal(t, 4, got.BonusSecurity)
	assert.InDelta(t, 3.5, got.BonusMultiplierCap, 1e-9)
	assert.Equal(t, 100, got.LocDivisorPatch)
	assert.Equal(t, 200, got.LocDivisorMinor)
	assert.Equal(t, 400, got.LocDivisorMajor)
	assert.Equal(t, 2, got.BaseDeltaPatch)
	assert.Equal(t, 6, got.BaseDeltaMinor)
	assert.Equal(t, 12, got.BaseDeltaMajor)

	// Untouched keys keep defaults.
	assert.Equal(t, Defaults().BonusNewSource, got.BonusNewSource)
}

func TestLoadNestedKeysPreferredOverFlat(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "versioning.yml", `
bonuses:
  breaking_cli: 2
  breaking_changes:
    cli_breaking: 6
    api_breaking: 8
  cli:
    changes: 3
    manual: 2
  additions:
    new_doc: 4
  security:
    keyword: 7
`)

	got := Load(root)
	assert.Equal(t, 6, got.BonusBreakingCli, "nested key wins over flat")
	assert.Equal(t, 8, got.BonusApiBreaking)
	assert.Equal(t, 3, got.BonusCliChanges)
	assert.Equal(t, 2, got.BonusManualCli)
	assert.Equal(t, 4, got.BonusNewDoc)
	assert.Equal(t, 7, got.BonusSecurity)
}

func TestLoadTOMLAndJSON(t *testing.T) {
	tomlRoot := t.TempDir()
	writeConfig(t, tomlRoot, "versioning.toml", "[bonuses]\nsecurity = 9\n")
	assert.Equal(t, 9, Load(tomlRoot).BonusSecurity)

	jsonRoot := t.TempDir()
	writeConfig(t, jsonRoot, "versioning.json", `{"bonuses": {"security": 11}}`)
	assert.Equal(t, 11, Load(jsonRoot).BonusSecurity)
}

func TestLoadDecimalValuesTruncate(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "versioning.yml", "bonuses:\n  security: 6.9\n")
	assert.Equal(t, 6, Load(root).BonusSecurity)
}

func TestLoadIgnoresUnknownAndInvalid(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "versioning.yml", `
bonuses:
  security: -3
  no_such_bonus: 4
totally_unknown: true
`)
	got := Load(root)
	assert.Equal(t, Defaults().BonusSecurity, got.BonusSecurity, "non-positive value ignored")
}

func TestLoadUnparseableFileFallsBackToDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "versioning.yml", "{{{ not yaml")
	assert.Equal(t, Defaults(), Load(root))
}

func TestLoadProbesYmlBeforeToml(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "versioning.yml", "bonuses:\n  security: 2\n")
	writeConfig(t, root, "versioning.toml", "[bonuses]\nsecurity = 3\n")
	assert.Equal(t, 2, Load(root).BonusSecurity)
}
