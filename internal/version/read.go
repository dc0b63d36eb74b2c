package version

import (
	"os"
	"path/filepath"
	"strings"
)

// ReadCurrent returns the version recorded in <repoRoot>/VERSION, or "0.0.0"
// when the file is missing, escapes the root, or does not hold a bare
// dotted triplet.
func ReadCurrent(repoRoot string) string {
	root := repoRoot
	if root == "" {
		root = "."
	}
	data := readUnderRoot(root, "VERSION")
	if data == "" {
		return "0.0.0"
	}
	v := strings.TrimSpace(data)
	if !looksLikeTriplet(v) {
		return "0.0.0"
	}
	return v
}

// looksLikeTriplet accepts digits-and-dots strings with exactly two dots.
func looksLikeTriplet(v string) bool {
	if v == "" || strings.Count(v, ".") != 2 {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c != '.' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// readUnderRoot reads a file confined to the given base directory. Absolute
// paths and any path whose resolved form escapes the base return empty;
// refusal is silent to preserve the soft-failure contract.
func readUnderRoot(root, rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return ""
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return ""
	}
	target := filepath.Join(absRoot, rel)

	// Join cleans the path; a target that climbed out of the root no longer
	// has it as a prefix.
	relBack, err := filepath.Rel(absRoot, target)
	if err != nil || relBack == ".." || strings.HasPrefix(relBack, ".."+string(filepath.Separator)) {
		return ""
	}

	// Resolve symlinks so a link inside the root cannot point outside it.
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		resolvedRoot, err := filepath.EvalSymlinks(absRoot)
		if err != nil {
			return ""
		}
		back, err := filepath.Rel(resolvedRoot, resolved)
		if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
			return ""
		}
		target = resolved
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return ""
	}
	return string(data)
}
