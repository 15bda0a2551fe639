package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)

	assert.Equal(t, Defaults().Model, cfg.Model)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "qa_reports", cfg.OutputDir)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("workers: 8\nmodel: gpt-5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "gpt-5", cfg.Model)
	// Unset fields keep defaults.
	assert.Equal(t, 50, cfg.CloneDepth)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero workers", "workers: 0\n"},
		{"negative depth", "clone_depth: -1\n"},
		{"empty model", "model: \"\"\n"},
		{"bad scoring weights", "scoring:\n  weights:\n    test_automation: 0.9\n"},
		{"malformed yaml", "workers: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestScoringConfigFallsBack(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 70, cfg.ScoringConfig().PassScore)
}

func TestGitHubTokenFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_sentinel")
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, "ghp_sentinel", cfg.GitHubToken)
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, WriteTemplate(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults().Model, cfg.Model)

	require.Error(t, WriteTemplate(path), "must not overwrite an existing config")
}
