// Package gitops performs the optional post-analysis git mutations.
package gitops

import (
	"fmt"
	"io"

	"github.com/releasekit/nextver/internal/vcs"
	"github.com/releasekit/nextver/pkg/semver"
)

// Options select which mutations run and how.
type Options struct {
	Commit   bool
	Tag      bool
	Push     bool
	PushTags bool

	AllowDirty   bool
	SignCommit   bool
	AnnotatedTag bool // false means a lightweight tag
	SignedTag    bool
	NoVerify     bool

	Remote    string
	TagPrefix string
	Message   string // extra commit message paragraph
}

// Exit codes for mutation failures. The analysis phase never uses these;
// they surface only when a mutation was explicitly requested.
const (
	ExitDetachedHead = 2
	ExitDirtyTree    = 3
	ExitCommitFailed = 4
	ExitPrerelease   = 5
	ExitTagFailed    = 6
	ExitPushFailed   = 7
	ExitPushTags     = 8
)

// Apply runs the requested mutations in commit, tag, push order. It returns
// 0 on success or one of the exit codes above; diagnostics go to errw.
// Prerelease versions are never committed or tagged.
func Apply(opts Options, runner vcs.Runner, repoRoot, newVersion, currentVersion string, errw io.Writer) int {
	if !opts.Commit && !opts.Tag && !opts.Push && !opts.PushTags {
		return 0
	}

	if detached, err := vcs.IsDetachedHead(repoRoot); err == nil && detached {
		fmt.Fprintln(errw, "Error: Detached HEAD; checkout a branch before continuing.")
		return ExitDetachedHead
	}

	prerelease := semver.IsPrerelease(newVersion)

	if !prerelease {
		runner.Run("add", "--", "VERSION")
	}

	if opts.Commit && !prerelease {
		if !opts.AllowDirty {
			if dirty, err := vcs.IsDirty(repoRoot); err == nil && dirty {
				fmt.Fprintln(errw, "Error: working tree has changes; use --allow-dirty to override.")
				return ExitDirtyTree
			}
		}
		if hasStagedChanges(runner) {
			if code := commit(opts, runner, newVersion, currentVersion, errw); code != 0 {
				return code
			}
		}
	}

	if opts.Tag {
		if prerelease {
			fmt.Fprintln(errw, "Error: Pre-release versions should not be tagged.")
			return ExitPrerelease
		}
		if code := tag(opts, runner, newVersion, errw); code != 0 {
			return code
		}
	}

	if opts.Push {
		branch, err := vcs.CurrentBranch(repoRoot)
		if err != nil {
			branch = "HEAD"
		}
		if _, err := runner.Run("push", opts.Remote, branch); err != nil {
			fmt.Fprintln(errw, "Error: git push failed.")
			return ExitPushFailed
		}
	}
	if opts.PushTags {
		if _, err := runner.Run("push", opts.Remote, "--tags"); err != nil {
			fmt.Fprintln(errw, "Error: git push --tags failed.")
			return ExitPushTags
		}
	}

	return 0
}

// hasStagedChanges reports whether the index differs from HEAD.
func hasStagedChanges(runner vcs.Runner) bool {
	_, err := runner.Run("diff", "--cached", "--quiet")
	return err != nil
}

func commit(opts Options, runner vcs.Runner, newVersion, currentVersion string, errw io.Writer) int {
	args := []string{"commit"}
	if opts.NoVerify {
		args = append(args, "--no-verify")
	}
	if opts.SignCommit {
		args = append(args, "-S")
	} else {
		args = append(args, "--no-gpg-sign")
	}

	args = append(args, "-m", fmt.Sprintf("chore(release): %s%s", opts.TagPrefix, newVersion))
	switch currentVersion {
	case "none":
		args = append(args, "-m", "bump: initial version "+newVersion)
	case "":
	default:
		args = append(args, "-m", fmt.Sprintf("bump: %s → %s", currentVersion, newVersion))
	}
	if opts.Message != "" {
		args = append(args, "-m", opts.Message)
	}

	if _, err := runner.Run(args...); err != nil {
		fmt.Fprintln(errw, "Error: git commit failed.")
		return ExitCommitFailed
	}
	return 0
}

func tag(opts Options, runner vcs.Runner, newVersion string, errw io.Writer) int {
	name := opts.TagPrefix + newVersion
	var args []string
	switch {
	case opts.SignedTag:
		args = []string{"tag", "-s", name, "-m", "Release " + name}
	case opts.AnnotatedTag:
		args = []string{"tag", "-a", name, "-m", "Release " + name}
	default:
		args = []string{"tag", name}
	}

	if _, err := runner.Run(args...); err != nil {
		fmt.Fprintln(errw, "Error: git tag failed.")
		return ExitTagFailed
	}
	return 0
}
