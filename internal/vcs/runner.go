// Package vcs drives the git subprocess and resolves analysis references.
package vcs

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ErrGit is returned when a git invocation exits non-zero. Callers in the
// analysis pipeline treat it as a soft failure and fall back to empty output.
var ErrGit = errors.New("git command failed")

// Runner executes git with an argument vector and captures stdout. Stderr is
// discarded; only the exit status is observed.
type Runner interface {
	Run(args ...string) (string, error)
}

// GitRunner runs git in a fixed working directory. Identical invocations are
// memoized for the lifetime of the runner, so extractors that share a diff
// spawn the subprocess once.
type GitRunner struct {
	dir string

	mu   sync.Mutex
	memo map[uint64]memoEntry
}

type memoEntry struct {
	out string
	err error
}

// NewGitRunner creates a runner rooted at dir. An empty dir means the
// current working directory.
func NewGitRunner(dir string) *GitRunner {
	return &GitRunner{dir: dir, memo: make(map[uint64]memoEntry)}
}

// Run spawns git with the given arguments. The argument vector is passed to
// the process directly; nothing is ever routed through a shell.
func (r *GitRunner) Run(args ...string) (string, error) {
	key := argsKey(args)

	r.mu.Lock()
	if e, ok := r.memo[key]; ok {
		r.mu.Unlock()
		return e.out, e.err
	}
	r.mu.Unlock()

	full := append([]string{"-c", "color.ui=false", "-c", "core.quotepath=false"}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = r.dir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = nil

	err := cmd.Run()
	out := stdout.String()
	if err != nil {
		err = ErrGit
	}

	r.mu.Lock()
	r.memo[key] = memoEntry{out: out, err: err}
	r.mu.Unlock()
	return out, err
}

func argsKey(args []string) uint64 {
	h := xxhash.New()
	for _, a := range args {
		h.WriteString(a)
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// splitPathspec turns a comma-separated --only-paths value into trimmed
// pathspec entries.
func splitPathspec(csv string) []string {
	if csv == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(csv, ",") {
		if t := strings.TrimSpace(tok); t != "" {
			out = append(out, t)
		}
	}
	return out
}
