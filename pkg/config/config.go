// Package config loads scoring weights and bump parameters from the
// repository's dev-config directory.
package config

import (
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Values holds all tunable scoring and bump parameters.
type Values struct {
	MajorBonusThreshold int
	MinorBonusThreshold int
	PatchBonusThreshold int

	BonusBreakingCli   int
	BonusApiBreaking   int
	BonusRemovedOption int
	BonusCliChanges    int
	BonusManualCli     int
	BonusNewSource     int
	BonusNewTest       int
	BonusNewDoc        int
	BonusSecurity      int

	BonusMultiplierCap float64

	BaseDeltaPatch int
	BaseDeltaMinor int
	BaseDeltaMajor int

	LocDivisorPatch int
	LocDivisorMinor int
	LocDivisorMajor int
}

// Defaults returns the built-in parameter set.
func Defaults() Values {
	return Values{
		MajorBonusThreshold: 8,
		MinorBonusThreshold: 4,
		PatchBonusThreshold: 0,

		BonusBreakingCli:   4,
		BonusApiBreaking:   5,
		BonusRemovedOption: 3,
		BonusCliChanges:    2,
		BonusManualCli:     1,
		BonusNewSource:     1,
		BonusNewTest:       1,
		BonusNewDoc:        1,
		BonusSecurity:      5,

		BonusMultiplierCap: 5.0,

		BaseDeltaPatch: 1,
		BaseDeltaMinor: 5,
		BaseDeltaMajor: 10,

		LocDivisorPatch: 250,
		LocDivisorMinor: 500,
		LocDivisorMajor: 1000,
	}
}

// configNames are probed in order under <repoRoot>/dev-config.
var configNames = []string{
	"versioning.yml",
	"versioning.yaml",
	"versioning.toml",
	"versioning.json",
}

// Load reads versioning parameters from <repoRoot>/dev-config. A missing or
// unreadable file yields the defaults and unknown keys are ignored; loading
// never fails because configuration is a soft input to the pipeline.
func Load(repoRoot string) Values {
	root := repoRoot
	if root == "" {
		root = "."
	}
	for _, name := range configNames {
		path := filepath.Join(root, "dev-config", name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if v, ok := loadFile(path); ok {
			return v
		}
	}
	return Defaults()
}

// loadFile parses one config file, picking the parser by extension.
func loadFile(path string) (Values, bool) {
	k := koanf.New(".")

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = ktoml.Parser()
	case ".json":
		parser = kjson.Parser()
	default:
		parser = kyaml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return Values{}, false
	}
	return fromKoanf(k), true
}

// fromKoanf resolves every parameter, preferring the nested key layout over
// the legacy flat one.
func fromKoanf(k *koanf.Koanf) Values {
	v := Defaults()

	intKey(k, &v.MajorBonusThreshold, "thresholds.major_bonus")
	intKey(k, &v.MinorBonusThreshold, "thresholds.minor_bonus")
	intKey(k, &v.PatchBonusThreshold, "thresholds.patch_bonus")

	bonus(k, &v.BonusBreakingCli, "breaking_changes.cli_breaking", "breaking_cli")
	bonus(k, &v.BonusApiBreaking, "breaking_changes.api_breaking", "api_breaking")
	bonus(k, &v.BonusRemovedOption, "breaking_changes.removed_option", "removed_option")
	bonus(k, &v.BonusCliChanges, "cli.changes", "cli_changes")
	bonus(k, &v.BonusManualCli, "cli.manual", "manual_cli")
	bonus(k, &v.BonusNewSource, "additions.new_source", "new_source")
	bonus(k, &v.BonusNewTest, "additions.new_test", "new_test")
	bonus(k, &v.BonusNewDoc, "additions.new_doc", "new_doc")
	bonus(k, &v.BonusSecurity, "security.keyword", "security")

	if k.Exists("bonus_multiplier_cap") {
		if f := k.Float64("bonus_multiplier_cap"); f >= 1.0 {
			v.BonusMultiplierCap = f
		}
	}

	intKey(k, &v.BaseDeltaPatch, "base_deltas.patch")
	intKey(k, &v.BaseDeltaMinor, "base_deltas.minor")
	intKey(k, &v.BaseDeltaMajor, "base_deltas.major")

	intKey(k, &v.LocDivisorPatch, "loc_divisors.patch")
	intKey(k, &v.LocDivisorMinor, "loc_divisors.minor")
	intKey(k, &v.LocDivisorMajor, "loc_divisors.major")

	return v
}

// bonus resolves a bonus weight under bonuses.<nested>, falling back to the
// legacy bonuses.<flat> spelling.
func bonus(k *koanf.Koanf, dst *int, nested, flat string) {
	if intKey(k, dst, "bonuses."+nested) {
		return
	}
	intKey(k, dst, "bonuses."+flat)
}

// intKey copies a positive integer (or truncated decimal) value into dst.
func intKey(k *koanf.Koanf, dst *int, key string) bool {
	if !k.Exists(key) {
		return false
	}
	n := int(k.Float64(key))
	if n <= 0 {
		return false
	}
	*dst = n
	return true
}
