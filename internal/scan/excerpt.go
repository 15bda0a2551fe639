package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/repograde/repograde/internal/models"
)

// Excerpt size limits. Test files are truncated harder than configs because
// they dominate volume.
const (
	maxExcerptTestFiles = 20
	maxTestFileChars    = 3000
	maxConfigFileChars  = 1000
	maxTreeEntries      = 200
)

// Excerpt assembles the repository content relevant to one assessment
// category: test sources for test automation, pipeline configs for CI, and
// so on. The result is bounded in size and deterministic for a given tree.
func (s *Snapshot) Excerpt(category models.Category) (string, error) {
	if !category.Valid() {
		return "", fmt.Errorf("building excerpt: unknown category %q", category)
	}

	var sb strings.Builder
	switch category {
	case models.CategoryTestAutomation:
		s.writeFiles(&sb, "Test file", s.TestFiles, maxExcerptTestFiles, maxTestFileChars)
		s.writeFiles(&sb, "QA config", s.QAConfigFiles, len(s.QAConfigFiles), maxConfigFileChars)
	case models.CategoryCIPipeline:
		s.writeFiles(&sb, "CI config", s.CIFiles, len(s.CIFiles), maxConfigFileChars)
	case models.CategoryTechnicalSkills:
		s.writeOverview(&sb)
		s.writeFiles(&sb, "Test file", s.TestFiles, maxExcerptTestFiles, maxTestFileChars)
	case models.CategoryQualityProcess:
		s.writeOverview(&sb)
		s.writeFiles(&sb, "QA config", s.QAConfigFiles, len(s.QAConfigFiles), maxConfigFileChars)
	case models.CategoryRepositoryStructure:
		s.writeOverview(&sb)
		s.writeTree(&sb)
		s.writeFiles(&sb, "Manifest", s.ManifestFiles, len(s.ManifestFiles), maxConfigFileChars)
	}

	if sb.Len() == 0 {
		return "No relevant files found in repository.\n", nil
	}
	return sb.String(), nil
}

func (s *Snapshot) writeOverview(sb *strings.Builder) {
	fmt.Fprintf(sb, "Primary language: %s\n", s.PrimaryLanguage)
	fmt.Fprintf(sb, "Total files: %d, test files: %d, CI configs: %d\n",
		s.TotalFiles, len(s.TestFiles), len(s.CIFiles))
	if len(s.Frameworks) > 0 {
		fmt.Fprintf(sb, "Detected frameworks: %s\n", strings.Join(s.Frameworks, ", "))
	}
	if s.Readme != nil {
		sb.WriteString(s.Readme.Summary())
	}
	sb.WriteByte('\n')
}

func (s *Snapshot) writeFiles(sb *strings.Builder, label string, files []string, maxFiles, maxChars int) {
	if len(files) > maxFiles {
		files = files[:maxFiles]
	}
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(s.Root, rel))
		if err != nil {
			continue
		}
		content := string(data)
		if len(content) > maxChars {
			content = content[:maxChars] + "\n... (truncated)"
		}
		fmt.Fprintf(sb, "=== %s: %s ===\n%s\n\n", label, rel, content)
	}
}

// writeTree lists a bounded tree of file paths so structure can be judged
// without file contents.
func (s *Snapshot) writeTree(sb *strings.Builder) {
	entries := make([]string, 0, maxTreeEntries)
	filepath.WalkDir(s.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil || len(entries) >= maxTreeEntries {
			return filepath.SkipAll
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(s.Root, path)
		if relErr == nil {
			entries = append(entries, filepath.ToSlash(rel))
		}
		return nil
	})
	sb.WriteString("Repository layout:\n")
	for _, e := range entries {
		fmt.Fprintf(sb, "  %s\n", e)
	}
	sb.WriteByte('\n')
}
