package analyzer

import (
	"regexp"
	"strings"
)

// CliResults captures command-line surface changes mined from the diff.
type CliResults struct {
	CliChanges         bool `json:"cli_changes"`
	BreakingCliChanges bool `json:"breaking_cli_changes"`
	ApiBreaking        bool `json:"api_breaking"`
	ManualCliChanges   bool `json:"manual_cli_changes"`

	RemovedShortCount      int `json:"removed_short_count"`
	RemovedLongCount       int `json:"removed_long_count"`
	AddedLongCount         int `json:"added_long_count"`
	ManualAddedLongCount   int `json:"manual_added_long_count"`
	ManualRemovedLongCount int `json:"manual_removed_long_count"`
}

var (
	longOptRe = regexp.MustCompile(`--[A-Za-z0-9][A-Za-z0-9-]*`)

	// A removed short option: a '-' hunk line still carrying a "-x" flag.
	shortOptRemovedRe = regexp.MustCompile(`^-[^+].*[^-]-[A-Za-z](\s|$)`)

	// A removed C function prototype on a '-' hunk line.
	protoRemovedRe = regexp.MustCompile(`^-[^+].*[A-Za-z_][A-Za-z0-9_\s*]+\s+[A-Za-z_][A-Za-z0-9_]*\([^;]*\)\s*;\s*$`)

	caseLabelRe = regexp.MustCompile(`case\s+([^:\s]+)\s*:`)
)

// ExtractCliOptions mines option-level changes from two diff renderings: the
// unfiltered diff feeds the structural long-option sets, while the diff
// restricted to C/C++ files feeds the manual (comment- and string-excluded)
// sets and the short-option, prototype and switch-case heuristics.
//
// When removed switch-case labels prove a breaking change but no structural
// or manual removal was extracted, RemovedLongCount is synthesised to 1 so
// the removed-option bonus still applies downstream.
func ExtractCliOptions(diffAll, diffCpp string) CliResults {
	var r CliResults

	removedLong := map[string]struct{}{}
	addedLong := map[string]struct{}{}
	forEachHunkLine(diffAll, func(line string) {
		switch line[0] {
		case '-':
			collectLongOpts(line, removedLong)
		case '+':
			collectLongOpts(line, addedLong)
		}
	})

	manualRemoved := map[string]struct{}{}
	manualAdded := map[string]struct{}{}
	removedCases := map[string]struct{}{}
	addedCases := map[string]struct{}{}
	forEachHunkLine(diffCpp, func(line string) {
		switch line[0] {
		case '-':
			if !isCommentOrString(line) {
				collectLongOpts(line, manualRemoved)
			}
			if shortOptRemovedRe.MatchString(line) {
				r.RemovedShortCount++
			}
			if protoRemovedRe.MatchString(line) {
				r.ApiBreaking = true
			}
			collectCaseLabels(line, removedCases)
		case '+':
			if !isCommentOrString(line) {
				collectLongOpts(line, manualAdded)
			}
			collectCaseLabels(line, addedCases)
		}
	})

	r.RemovedLongCount = len(removedLong)
	r.AddedLongCount = len(addedLong)
	r.ManualRemovedLongCount = len(manualRemoved)
	r.ManualAddedLongCount = len(manualAdded)

	// A case label that disappears without being re-added elsewhere means a
	// dispatch arm is gone: the CLI surface shrank.
	breakingByCases := false
	for label := range removedCases {
		if _, readded := addedCases[label]; !readded {
			breakingByCases = true
			break
		}
	}
	r.BreakingCliChanges = breakingByCases

	if breakingByCases && r.RemovedLongCount == 0 && r.ManualRemovedLongCount == 0 && r.RemovedShortCount == 0 {
		r.RemovedLongCount = 1
	}

	r.ManualCliChanges = r.ManualAddedLongCount > 0 || r.ManualRemovedLongCount > 0
	r.CliChanges = r.BreakingCliChanges || r.ManualCliChanges ||
		r.AddedLongCount > 0 || r.RemovedLongCount > 0 || r.RemovedShortCount > 0

	return r
}

// forEachHunkLine visits every +/- hunk line, skipping diff headers.
func forEachHunkLine(diff string, fn func(line string)) {
	for _, line := range strings.Split(diff, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") || strings.HasPrefix(line, "@@") {
			continue
		}
		if line[0] != '+' && line[0] != '-' {
			continue
		}
		fn(line)
	}
}

func collectLongOpts(line string, into map[string]struct{}) {
	for _, m := range longOptRe.FindAllString(line, -1) {
		into[m] = struct{}{}
	}
}

func collectCaseLabels(line string, into map[string]struct{}) {
	for _, m := range caseLabelRe.FindAllStringSubmatch(line, -1) {
		into[m[1]] = struct{}{}
	}
}

// isCommentOrString reports whether a hunk line is a comment or contains both
// a double quote and "--" anywhere on the line (taken as a long option inside
// a quoted string); such lines are excluded from the manual option sets.
func isCommentOrString(line string) bool {
	body := strings.TrimLeft(line, "+-")
	body = strings.TrimLeft(body, " \t")
	if strings.HasPrefix(body, "//") || strings.HasPrefix(body, "/*") {
		return true
	}
	return strings.Contains(line, `"`) && strings.Contains(line, "--")
}
