// Package classify maps repository paths to coarse change categories.
package classify

import "strings"

// Kind is the category a path falls into.
type Kind int

const (
	Other Kind = iota
	Ignored
	Test
	Source
	Doc
)

func (k Kind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case Test:
		return "test"
	case Source:
		return "source"
	case Doc:
		return "doc"
	default:
		return "other"
	}
}

var ignoredDirs = []string{
	"/build/", "/dist/", "/out/", "/third-party/", "/third_party/", "/vendor/",
	"/.git/", "/node_modules/", "/target/", "/bin/", "/obj/",
}

var ignoredExts = []string{
	".lock", ".exe", ".dll", ".so", ".dylib", ".a", ".jar", ".war", ".ear",
	".zip", ".tar", ".gz", ".bz2", ".xz", ".7z", ".rar",
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".pdf",
}

var testDirs = []string{"/test/", "/tests/", "/unittests/", "/it/", "/e2e/"}

var testSuffixes = []string{
	"_test.c", "_test.cc", "_test.cpp", "_test.cxx",
	".test.c", ".test.cc", ".test.cpp", ".test.cxx",
	".test.py", ".test.js", ".test.ts",
	".spec.c", ".spec.cc", ".spec.cpp", ".spec.cxx",
	".spec.js", ".spec.ts",
}

var sourceDirs = []string{"/src/", "/source/", "/app/", "/lib/", "/include/"}

var sourceExts = []string{
	".c", ".cc", ".cpp", ".cxx", ".h", ".hh", ".hpp", ".inl",
	".go", ".rs", ".java", ".cs", ".m", ".mm", ".swift", ".kt",
	".ts", ".tsx", ".js", ".jsx", ".sh", ".py", ".rb", ".php", ".pl",
	".lua", ".sql", ".cmake", ".yml", ".yaml",
}

var sourceFiles = []string{"CMakeLists.txt", "Makefile", "makefile", "GNUmakefile"}

var docDirs = []string{"/doc/", "/docs/", "/documentation/", "/examples/"}

var docExts = []string{".md", ".markdown", ".mkd", ".rst", ".adoc", ".txt"}

// Path classifies a repository-relative path. The first matching rule wins:
// ignored, test, source, doc, then other.
func Path(path string) Kind {
	if containsAny(path, ignoredDirs) || hasAnySuffix(path, ignoredExts) {
		return Ignored
	}
	if containsAny(path, testDirs) || hasAnySuffix(path, testSuffixes) {
		return Test
	}
	if containsAny(path, sourceDirs) || hasAnySuffix(path, sourceExts) || hasAnySuffix(path, sourceFiles) {
		return Source
	}
	if containsAny(path, docDirs) || hasAnySuffix(path, docExts) {
		return Doc
	}
	return Other
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
