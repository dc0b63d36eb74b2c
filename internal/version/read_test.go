package version

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVersion(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, "VERSION"), []byte(content), 0o644))
}

func TestReadCurrent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain triplet", "1.2.3", "1.2.3"},
		{"trailing newline", "4.5.6\n", "4.5.6"},
		{"surrounding whitespace", "  7.8.9\t\n", "7.8.9"},
		{"prerelease rejected", "1.2.3-rc.1", "0.0.0"},
		{"two segments rejected", "1.2", "0.0.0"},
		{"four segments rejected", "1.2.3.4", "0.0.0"},
		{"garbage rejected", "not a version", "0.0.0"},
		{"empty file", "", "0.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeVersion(t, root, tt.content)
			assert.Equal(t, tt.want, ReadCurrent(root))
		})
	}
}

func TestReadCurrentMissingFile(t *testing.T) {
	assert.Equal(t, "0.0.0", ReadCurrent(t.TempDir()))
}

func TestReadUnderRootRefusals(t *testing.T) {
	root := t.TempDir()
	writeVersion(t, root, "1.0.0")

	outside := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(outside, []byte("2.0.0"), 0o644))

	assert.Equal(t, "", readUnderRoot(root, outside), "absolute path refused")
	assert.Equal(t, "", readUnderRoot(root, filepath.Join("..", filepath.Base(outside))), "traversal refused")
	assert.Equal(t, "", readUnderRoot(root, ""), "empty path refused")
	assert.Equal(t, "1.0.0", readUnderRoot(root, "VERSION"))
}

func TestReadUnderRootSymlinkEscapeRefused(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(t.TempDir(), "escape")
	require.NoError(t, os.WriteFile(outside, []byte("3.0.0"), 0o644))
	link := filepath.Join(root, "VERSION")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	assert.Equal(t, "", readUnderRoot(root, "VERSION"))
	assert.Equal(t, "0.0.0", ReadCurrent(root))
}
