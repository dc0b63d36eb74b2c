package vcs

import (
	"strconv"
	"strings"
)

// Probe extracts diff and log streams for a (base, target) range. All output
// is textual; binary patches surface only as hunk markers and are excluded
// downstream by the path classifier.
type Probe struct {
	runner Runner
}

// NewProbe wraps a runner.
func NewProbe(r Runner) *Probe {
	return &Probe{runner: r}
}

// cppPathspec restricts a diff to C/C++ translation units and headers, for
// the manual and heuristic CLI patterns.
var cppPathspec = []string{"*.c", "*.cc", "*.cpp", "*.cxx", "*.h", "*.hh", "*.hpp"}

// HasCommits reports whether HEAD resolves to a commit.
func (p *Probe) HasCommits() bool {
	_, err := p.runner.Run("rev-parse", "-q", "--verify", "HEAD^{commit}")
	return err == nil
}

// ResolveCommit resolves a ref to a commit SHA, or "" when it does not
// resolve.
func (p *Probe) ResolveCommit(ref string) string {
	out, err := p.runner.Run("rev-parse", "-q", "--verify", ref+"^{commit}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// LastTag returns the most recent tag matching the glob, or "".
func (p *Probe) LastTag(match string) string {
	if match == "" {
		match = "*"
	}
	out, err := p.runner.Run("describe", "--tags", "--abbrev=0", "--match", match)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// CommitBeforeDate returns the latest commit committed no later than the
// given day (inclusive), or "".
func (p *Probe) CommitBeforeDate(date string) string {
	out, err := p.runner.Run("rev-list", "-1", "--before="+date+" 23:59:59", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// FirstCommit returns the root commit of HEAD's history, or "".
func (p *Probe) FirstCommit() string {
	out, err := p.runner.Run("rev-list", "--max-parents=0", "HEAD")
	if err != nil {
		return ""
	}
	// Multiple roots are possible; take the first.
	for _, line := range strings.Split(out, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}

// ParentOfHead returns HEAD~1 as a SHA, or "".
func (p *Probe) ParentOfHead() string {
	out, err := p.runner.Run("rev-parse", "-q", "--verify", "HEAD~1")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// MergeBase returns the most recent common ancestor of two commits, or "".
func (p *Probe) MergeBase(a, b string) string {
	out, err := p.runner.Run("merge-base", a, b)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// CountCommits counts commits in base..target.
func (p *Probe) CountCommits(base, target string, firstParent bool) int {
	args := []string{"rev-list", "--count"}
	if firstParent {
		args = append(args, "--first-parent")
	}
	args = append(args, base+".."+target)
	out, err := p.runner.Run(args...)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// DiffOptions select the range and filters for diff-based streams.
type DiffOptions struct {
	Base             string
	Target           string
	OnlyPaths        string // comma-separated pathspec globs
	IgnoreWhitespace bool
	CppOnly          bool // restrict to C/C++ files
}

func (o DiffOptions) diffArgs(extra ...string) []string {
	args := []string{"diff", "-M", "-C"}
	if o.IgnoreWhitespace {
		args = append(args, "-w")
	}
	args = append(args, extra...)
	args = append(args, o.Base+".."+o.Target)
	var paths []string
	if o.CppOnly {
		paths = cppPathspec
	} else {
		paths = splitPathspec(o.OnlyPaths)
	}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	return args
}

// Diff returns the unified zero-context diff for the range, with external
// diff drivers disabled.
func (p *Probe) Diff(o DiffOptions) string {
	out, err := p.runner.Run(o.diffArgs("--unified=0", "--no-ext-diff")...)
	if err != nil {
		return ""
	}
	return out
}

// IsUnchanged reports whether the range has an empty diff.
func (p *Probe) IsUnchanged(o DiffOptions) bool {
	_, err := p.runner.Run(o.diffArgs("--quiet")...)
	return err == nil
}

// NameStatusEntry is one record from a NUL-separated name-status diff.
type NameStatusEntry struct {
	Status byte   // A, M, D, R, C, ...
	Path   string // destination path for renames and copies
}

// NameStatus lists per-file change records for the range, following renames
// and copies to their destination path.
func (p *Probe) NameStatus(o DiffOptions) []NameStatusEntry {
	out, err := p.runner.Run(o.diffArgs("--name-status", "-z")...)
	if err != nil {
		return nil
	}
	fields := strings.Split(out, "\x00")
	var entries []NameStatusEntry
	for i := 0; i < len(fields); {
		status := fields[i]
		i++
		if status == "" {
			continue
		}
		code := status[0]
		path := ""
		if i < len(fields) {
			path = fields[i]
			i++
		}
		// Rename and copy records carry a second path: the destination.
		if code == 'R' || code == 'C' {
			if i < len(fields) {
				path = fields[i]
				i++
			}
		}
		entries = append(entries, NameStatusEntry{Status: code, Path: path})
	}
	return entries
}

// Numstat sums insertions and deletions across the range. Binary files
// report "-" columns and contribute nothing.
func (p *Probe) Numstat(o DiffOptions) (insertions, deletions int) {
	out, err := p.runner.Run(o.diffArgs("--numstat")...)
	if err != nil {
		return 0, 0
	}
	for _, line := range strings.Split(out, "\n") {
		cols := strings.SplitN(line, "\t", 3)
		if len(cols) < 3 {
			continue
		}
		if n, err := strconv.Atoi(cols[0]); err == nil {
			insertions += n
		}
		if n, err := strconv.Atoi(cols[1]); err == nil {
			deletions += n
		}
	}
	return insertions, deletions
}

// Log returns one "subject body" record per commit in base..target.
func (p *Probe) Log(base, target string, noMerges bool) string {
	args := []string{"log"}
	if noMerges {
		args = append(args, "--no-merges")
	}
	args = append(args, "--format=%s %b", base+".."+target)
	out, err := p.runner.Run(args...)
	if err != nil {
		return ""
	}
	return out
}
