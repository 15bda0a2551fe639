// Package scan extracts heuristic signals from a cloned repository: test
// files, CI configuration, QA tool configs, primary language, and test
// frameworks. Scanning is pure file-system inspection; no AI judgment.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/repograde/repograde/internal/models"
)

var testFilePattern = regexp.MustCompile(`(?i)test|spec|__tests__|\.test\.|\.spec\.`)

// CI configuration locations. Entries with a path separator are directories
// whose files all count.
var ciPatterns = []string{
	".github/workflows",
	".gitlab-ci.yml",
	"Jenkinsfile",
	".circleci",
	".travis.yml",
	"azure-pipelines.yml",
	"buildspec.yml",
}

// QA tool configuration name fragments, matched case-insensitively against
// file names anywhere in the tree.
var qaConfigPatterns = []string{
	"pytest.ini",
	"tox.ini",
	"cypress.json",
	"cypress.config.js",
	"selenium",
	"playwright.config",
	"jest.config",
	"karma.conf",
	"protractor.conf",
	"codecept.conf",
	"nightwatch.conf",
	"wdio.conf",
}

var languageExtensions = map[string][]string{
	"python":     {".py"},
	"java":       {".java"},
	"javascript": {".js", ".jsx"},
	"typescript": {".ts", ".tsx"},
	"csharp":     {".cs"},
	"ruby":       {".rb"},
	"php":        {".php"},
	"go":         {".go"},
}

var frameworkKeywords = map[string][]string{
	"python":     {"pytest", "unittest", "nose", "behave", "lettuce"},
	"java":       {"junit", "testng", "cucumber", "spock", "mockito"},
	"javascript": {"jest", "mocha", "jasmine", "cypress", "playwright", "webdriver"},
	"typescript": {"jest", "mocha", "jasmine", "cypress", "playwright"},
	"csharp":     {"nunit", "xunit", "mstest", "specflow"},
	"ruby":       {"rspec", "minitest", "cucumber"},
	"php":        {"phpunit", "behat", "codeception"},
	"go":         {"testing", "ginkgo", "testify"},
}

// Dependency manifests searched for framework keywords.
var manifestNames = []string{
	"requirements.txt",
	"package.json",
	"pom.xml",
	"build.gradle",
	"Gemfile",
	"composer.json",
	"go.mod",
}

// maxFrameworkTestFiles caps how many test files are read during framework
// keyword detection.
const maxFrameworkTestFiles = 10

// Snapshot is the result of scanning one repository working tree. Paths are
// relative to Root.
type Snapshot struct {
	Root            string
	TestFiles       []string
	CIFiles         []string
	QAConfigFiles   []string
	ManifestFiles   []string
	TotalFiles      int
	PrimaryLanguage string
	Frameworks      []string
	ReadmePath      string
	Readme          *ReadmeDigest
}

// Scan walks the repository tree once and derives all heuristic signals.
// The .git directory is excluded from every count.
func Scan(root string) (*Snapshot, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", root)
	}

	snap := &Snapshot{Root: root}
	extCounts := map[string]int{}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		name := d.Name()

		snap.TotalFiles++

		if testFilePattern.MatchString(name) {
			snap.TestFiles = append(snap.TestFiles, rel)
		}
		if matchesCI(rel) {
			snap.CIFiles = append(snap.CIFiles, rel)
		}
		if matchesQAConfig(name) {
			snap.QAConfigFiles = append(snap.QAConfigFiles, rel)
		}
		if isManifest(name) {
			snap.ManifestFiles = append(snap.ManifestFiles, rel)
		}
		if snap.ReadmePath == "" && strings.HasPrefix(strings.ToLower(name), "readme") && filepath.Dir(rel) == "." {
			snap.ReadmePath = rel
		}

		for lang, exts := range languageExtensions {
			for _, ext := range exts {
				if strings.HasSuffix(name, ext) {
					extCounts[lang]++
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Strings(snap.TestFiles)
	sort.Strings(snap.CIFiles)
	sort.Strings(snap.QAConfigFiles)
	sort.Strings(snap.ManifestFiles)

	snap.PrimaryLanguage = primaryLanguage(extCounts)
	snap.Frameworks = snap.detectFrameworks()

	if snap.ReadmePath != "" {
		if digest, err := DigestReadme(filepath.Join(root, snap.ReadmePath)); err == nil {
			snap.Readme = digest
		}
	}

	return snap, nil
}

func matchesCI(rel string) bool {
	for _, pattern := range ciPatterns {
		if strings.Contains(pattern, "/") || pattern == ".circleci" {
			// Directory pattern: any file under it counts. .circleci has no
			// separator but is a directory by convention.
			if strings.HasPrefix(rel, strings.TrimSuffix(pattern, "/")+"/") {
				return true
			}
			continue
		}
		if rel == pattern {
			return true
		}
	}
	return false
}

func matchesQAConfig(name string) bool {
	lower := strings.ToLower(name)
	for _, pattern := range qaConfigPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

func isManifest(name string) bool {
	for _, m := range manifestNames {
		if name == m {
			return true
		}
	}
	return strings.HasSuffix(name, ".csproj")
}

func primaryLanguage(extCounts map[string]int) string {
	best := "unknown"
	bestCount := 0
	// Deterministic tie-break by language name.
	langs := make([]string, 0, len(extCounts))
	for lang := range extCounts {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if extCounts[lang] > bestCount {
			best = lang
			bestCount = extCounts[lang]
		}
	}
	return best
}

// detectFrameworks searches dependency manifests and a bounded number of
// test files for the primary language's framework keywords.
func (s *Snapshot) detectFrameworks() []string {
	keywords, ok := frameworkKeywords[s.PrimaryLanguage]
	if !ok {
		return nil
	}

	var haystack strings.Builder
	for _, rel := range s.ManifestFiles {
		appendFileLowered(&haystack, filepath.Join(s.Root, rel))
	}
	testFiles := s.TestFiles
	if len(testFiles) > maxFrameworkTestFiles {
		testFiles = testFiles[:maxFrameworkTestFiles]
	}
	for _, rel := range testFiles {
		appendFileLowered(&haystack, filepath.Join(s.Root, rel))
	}

	content := haystack.String()
	var found []string
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			found = append(found, kw)
		}
	}
	sort.Strings(found)
	return found
}

func appendFileLowered(b *strings.Builder, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	b.WriteString(strings.ToLower(string(data)))
	b.WriteByte('\n')
}

// Signals converts the snapshot plus a commit count into normalized
// repository signals.
func (s *Snapshot) Signals(commitCount int) models.RepositorySignals {
	return models.RepositorySignals{
		CommitCount:     commitCount,
		PrimaryLanguage: s.PrimaryLanguage,
		TestFileCount:   len(s.TestFiles),
		TotalFileCount:  s.TotalFiles,
		TestFrameworks:  s.Frameworks,
		HasCI:           len(s.CIFiles) > 0,
	}.Normalize()
}
