package analyzer

import (
	"strings"
	"testing"

	"github.com/releasekit/nextver/internal/vcs"
	"github.com/stretchr/testify/assert"
)

// scriptRunner scripts git invocations by joined argument string. Unknown
// invocations fail, which the pipeline must absorb as soft errors.
type scriptRunner struct {
	outputs map[string]string
}

func (s *scriptRunner) Run(args ...string) (string, error) {
	out, ok := s.outputs[strings.Join(args, " ")]
	if !ok {
		return "", vcs.ErrGit
	}
	return out, nil
}

func TestAnalyzeFileChanges(t *testing.T) {
	r := &scriptRunner{outputs: map[string]string{
		"diff -M -C --name-status -z a..b": strings.Join([]string{
			"A", "src/engine.cpp",
			"A", "src/engine_test.cpp",
			"A", "docs/engine.md",
			"A", "src/vendor/dep/lib.c",
			"M", "src/main.cpp",
			"D", "src/legacy.cpp",
			"R100", "src/x.h", "src/y.h",
			"",
		}, "\x00"),
		"diff -M -C --numstat a..b": "120\t30\tsrc/engine.cpp\n10\t0\tdocs/engine.md\n",
	}}

	stats := AnalyzeFileChanges(vcs.NewProbe(r), vcs.DiffOptions{Base: "a", Target: "b"})
	assert.Equal(t, 4, stats.AddedFiles)
	assert.Equal(t, 2, stats.ModifiedFiles, "rename counts as modified")
	assert.Equal(t, 1, stats.DeletedFiles)
	assert.Equal(t, 1, stats.NewSourceFiles, "vendored addition ignored")
	assert.Equal(t, 1, stats.NewTestFiles)
	assert.Equal(t, 1, stats.NewDocFiles)
	assert.Equal(t, 130, stats.Insertions)
	assert.Equal(t, 30, stats.Deletions)
	assert.Equal(t, 160, stats.LineDelta())
}

func TestAnalyzeFileChangesUnchangedRange(t *testing.T) {
	r := &scriptRunner{outputs: map[string]string{
		"diff -M -C --quiet a..a": "",
	}}
	stats := AnalyzeFileChanges(vcs.NewProbe(r), vcs.DiffOptions{Base: "a", Target: "a"})
	assert.Equal(t, FileChangeStats{}, stats)
}

func TestRunEmptyRepo(t *testing.T) {
	r := &scriptRunner{outputs: map[string]string{}}

	report := Run(r, Options{})
	assert.Equal(t, EmptyBaseRef, report.BaseRef)
	assert.Equal(t, "HEAD", report.TargetRef)
	assert.True(t, report.Resolution.EmptyRepo)
	assert.Equal(t, FileChangeStats{}, report.Files)
	assert.Equal(t, CliResults{}, report.Cli)
}

func TestRunJoinsExtractors(t *testing.T) {
	diff := "--- a/src/opts.c\n+++ b/src/opts.c\n@@ -1,1 +1,1 @@\n-old --legacy flag\n+new --modern flag\n"
	r := &scriptRunner{outputs: map[string]string{
		"rev-parse -q --verify HEAD^{commit}":     "headsha",
		"describe --tags --abbrev=0 --match *":    "v1.0.0\n",
		"rev-parse -q --verify v1.0.0^{commit}":   "tagsha",
		"merge-base tagsha headsha":               "tagsha",
		"rev-list --count v1.0.0..headsha":        "2",
		"diff -M -C --unified=0 --no-ext-diff v1.0.0..HEAD": diff,
		"diff -M -C --unified=0 --no-ext-diff v1.0.0..HEAD -- *.c *.cc *.cpp *.cxx *.h *.hh *.hpp": diff,
		"log --format=%s %b v1.0.0..HEAD": "security: fix CVE-2024-9999\n",
		"diff -M -C --name-status -z v1.0.0..HEAD": "M\x00src/opts.c\x00",
		"diff -M -C --numstat v1.0.0..HEAD":        "1\t1\tsrc/opts.c\n",
	}}

	report := Run(r, Options{})
	assert.Equal(t, "v1.0.0", report.BaseRef)
	assert.Equal(t, "HEAD", report.TargetRef)
	assert.Equal(t, 2, report.Resolution.CommitCount)
	assert.Equal(t, 1, report.Cli.RemovedLongCount)
	assert.Equal(t, 1, report.Cli.AddedLongCount)
	assert.True(t, report.Cli.CliChanges)
	assert.GreaterOrEqual(t, report.Keywords.TotalSecurity, 2, "security + CVE in log")
	assert.Equal(t, 1, report.Security.SecurityKeywordsCommits)
}

func TestRunSubprocessFailureDegradesSoftly(t *testing.T) {
	// HEAD resolves, everything else fails: counters stay zero.
	r := &scriptRunner{outputs: map[string]string{
		"rev-parse -q --verify HEAD^{commit}": "headsha",
		"rev-parse -q --verify HEAD~1":        "parentsha\n",
		"rev-parse -q --verify parentsha^{commit}": "parentsha",
	}}

	report := Run(r, Options{})
	assert.False(t, report.Resolution.EmptyRepo)
	assert.Equal(t, FileChangeStats{}, report.Files)
	assert.Equal(t, CliResults{}, report.Cli)
	assert.Equal(t, SecurityResults{}, report.Security)
	assert.Equal(t, KeywordResults{}, report.Keywords)
}
