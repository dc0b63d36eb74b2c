// Package analyzer mines version-bump signals from a repository range.
package analyzer

import (
	"github.com/releasekit/nextver/internal/vcs"
	"github.com/sourcegraph/conc"
)

// EmptyBaseRef is the display sentinel for a repository without commits.
const EmptyBaseRef = "EMPTY"

// Options configure one analysis run.
type Options struct {
	RepoRoot         string
	Refs             vcs.RefOptions
	OnlyPaths        string
	IgnoreWhitespace bool
}

// Report is the joined output of every extractor for one range.
type Report struct {
	Resolution vcs.Resolution

	// Display refs; BaseRef is "EMPTY" for a repository without commits.
	BaseRef   string
	TargetRef string

	Files    FileChangeStats
	Cli      CliResults
	Security SecurityResults
	Keywords KeywordResults
}

// Run resolves the range and executes the extractors. The three analysis
// families run concurrently; the memoized runner deduplicates the underlying
// git invocations they share. Subprocess failures degrade to empty streams
// and zero counters.
func Run(runner vcs.Runner, opts Options) Report {
	probe := vcs.NewProbe(runner)

	res := vcs.ResolveRefs(probe, opts.Refs)
	report := Report{Resolution: res, BaseRef: res.BaseRef, TargetRef: res.TargetRef}
	if res.EmptyRepo {
		report.BaseRef = EmptyBaseRef
		report.TargetRef = "HEAD"
		return report
	}

	diffOpts := vcs.DiffOptions{
		Base:             res.BaseRef,
		Target:           res.TargetRef,
		OnlyPaths:        opts.OnlyPaths,
		IgnoreWhitespace: opts.IgnoreWhitespace,
	}
	cppOpts := diffOpts
	cppOpts.OnlyPaths = ""
	cppOpts.CppOnly = true

	var wg conc.WaitGroup
	wg.Go(func() {
		report.Files = AnalyzeFileChanges(probe, diffOpts)
	})
	wg.Go(func() {
		diffAll := probe.Diff(diffOpts)
		diffCpp := probe.Diff(cppOpts)
		report.Cli = ExtractCliOptions(diffAll, diffCpp)
	})
	wg.Go(func() {
		diff := probe.Diff(diffOpts)
		log := probe.Log(res.BaseRef, res.TargetRef, false)
		report.Security = AnalyzeSecurity(diff, log)
		report.Keywords = AnalyzeKeywords(diff, log)
	})
	wg.Wait()

	return report
}
