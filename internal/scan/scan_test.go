package scan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repograde/repograde/internal/models"
)

// writeTree materializes a map of relative path -> content under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestScanDetectsSignals(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md":                 "# Demo\n\nSee [docs](https://example.com).\n\n## Usage\n",
		"src/app.py":                "print('hi')\n",
		"src/helpers.py":            "pass\n",
		"tests/test_app.py":         "import pytest\n\ndef test_ok():\n    assert True\n",
		"pytest.ini":                "[pytest]\n",
		"requirements.txt":          "pytest\nrequests\n",
		".github/workflows/ci.yml":  "name: ci\n",
		".git/config":               "should be ignored\n",
		".git/hooks/pre-commit.txt": "ignored too\n",
	})

	snap, err := Scan(root)
	require.NoError(t, err)

	assert.Equal(t, "python", snap.PrimaryLanguage)
	// pytest.ini matches both the test-file pattern ("test") and QA configs.
	assert.Contains(t, snap.TestFiles, "tests/test_app.py")
	assert.Equal(t, []string{".github/workflows/ci.yml"}, snap.CIFiles)
	assert.Contains(t, snap.QAConfigFiles, "pytest.ini")
	assert.Contains(t, snap.ManifestFiles, "requirements.txt")
	assert.Equal(t, []string{"pytest"}, snap.Frameworks)
	assert.Equal(t, 7, snap.TotalFiles, "git internals must not be counted")
	assert.Equal(t, "README.md", snap.ReadmePath)

	require.NotNil(t, snap.Readme)
	assert.Equal(t, []string{"Demo", "Usage"}, snap.Readme.Headings)
	assert.Equal(t, 1, snap.Readme.LinkCount)

	sig := snap.Signals(12)
	assert.Equal(t, 12, sig.CommitCount)
	assert.True(t, sig.HasCI)
	assert.Equal(t, 2, sig.TestFileCount) // test_app.py and pytest.ini
}

func TestScanEmptyDirectory(t *testing.T) {
	snap, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, snap.TotalFiles)
	assert.Equal(t, "unknown", snap.PrimaryLanguage)
	assert.Empty(t, snap.Frameworks)
	assert.Nil(t, snap.Readme)
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestMatchesCI(t *testing.T) {
	tests := []struct {
		rel  string
		want bool
	}{
		{".github/workflows/build.yml", true},
		{".circleci/config.yml", true},
		{"Jenkinsfile", true},
		{".travis.yml", true},
		{"azure-pipelines.yml", true},
		{"docs/Jenkinsfile.md", false},
		{"src/main.go", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchesCI(tt.rel), tt.rel)
	}
}

func TestExcerptPerCategory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md":                "# Thing\n",
		"tests/test_core.py":       "def test_core():\n    assert 1\n",
		".github/workflows/ci.yml": "name: ci\njobs: {}\n",
		"requirements.txt":         "pytest\n",
		"src/core.py":              "x = 1\n",
	})
	snap, err := Scan(root)
	require.NoError(t, err)

	testExcerpt, err := snap.Excerpt(models.CategoryTestAutomation)
	require.NoError(t, err)
	assert.Contains(t, testExcerpt, "tests/test_core.py")
	assert.Contains(t, testExcerpt, "def test_core")

	ciExcerpt, err := snap.Excerpt(models.CategoryCIPipeline)
	require.NoError(t, err)
	assert.Contains(t, ciExcerpt, ".github/workflows/ci.yml")

	structExcerpt, err := snap.Excerpt(models.CategoryRepositoryStructure)
	require.NoError(t, err)
	assert.Contains(t, structExcerpt, "Repository layout:")
	assert.Contains(t, structExcerpt, "src/core.py")
	assert.Contains(t, structExcerpt, "requirements.txt")
}

func TestExcerptUnknownCategory(t *testing.T) {
	snap := &Snapshot{Root: t.TempDir()}
	_, err := snap.Excerpt(models.Category("bogus"))
	require.Error(t, err)
}

func TestExcerptTruncatesLargeTestFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"test_big.py": strings.Repeat("x", maxTestFileChars+500),
	})
	snap, err := Scan(root)
	require.NoError(t, err)

	excerpt, err := snap.Excerpt(models.CategoryTestAutomation)
	require.NoError(t, err)
	assert.Contains(t, excerpt, "(truncated)")
	assert.Less(t, len(excerpt), maxTestFileChars+200)
}
