// Package scoring folds extractor signals into a bonus total and a bump
// suggestion.
package scoring

import (
	"github.com/releasekit/nextver/internal/analyzer"
	"github.com/releasekit/nextver/pkg/config"
)

// Suggestion is the categorical bump recommendation.
type Suggestion string

const (
	Major Suggestion = "major"
	Minor Suggestion = "minor"
	Patch Suggestion = "patch"
	None  Suggestion = "none"
)

// TotalBonus accumulates the weighted signals. Each signal contributes at
// most once; the security term scales with the larger of the two security
// counts so the same finding is never paid twice.
//
// General breaking reuses the API-breaking weight on purpose: no dedicated
// config key exists, so exposing one later must not leave both applied.
func TotalBonus(rep analyzer.Report, cfg config.Values) int {
	total := 0

	if rep.Keywords.HasCliBreaking || rep.Cli.BreakingCliChanges {
		total += cfg.BonusBreakingCli
	}
	if rep.Keywords.HasApiBreaking || rep.Cli.ApiBreaking {
		total += cfg.BonusApiBreaking
	}
	if rep.Keywords.HasGeneralBreaking {
		total += cfg.BonusApiBreaking
	}

	security := rep.Security.SecurityKeywordsCommits
	if rep.Keywords.TotalSecurity > security {
		security = rep.Keywords.TotalSecurity
	}
	if security > 0 {
		total += security * cfg.BonusSecurity
	}

	if rep.Cli.CliChanges {
		total += cfg.BonusCliChanges
	}
	if rep.Cli.ManualCliChanges {
		total += cfg.BonusManualCli
	}

	if rep.Files.NewSourceFiles > 0 {
		total += cfg.BonusNewSource
	}
	if rep.Files.NewTestFiles > 0 {
		total += cfg.BonusNewTest
	}
	if rep.Files.NewDocFiles > 0 {
		total += cfg.BonusNewDoc
	}

	removed := rep.Cli.RemovedShortCount + rep.Cli.RemovedLongCount +
		rep.Cli.ManualRemovedLongCount + rep.Keywords.RemovedOptionsKeywords
	if removed > 0 {
		total += cfg.BonusRemovedOption
	}

	return total
}

// Suggest thresholds the bonus total into a bump kind.
func Suggest(totalBonus int, cfg config.Values) Suggestion {
	switch {
	case totalBonus >= cfg.MajorBonusThreshold:
		return Major
	case totalBonus >= cfg.MinorBonusThreshold:
		return Minor
	case totalBonus > cfg.PatchBonusThreshold:
		return Patch
	}
	return None
}
