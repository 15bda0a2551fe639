package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfigYAML(t *testing.T) {
	spec := &ConfigSpec{
		Model:      "gpt-5",
		Workers:    4,
		CloneDepth: 25,
		OutputDir:  "reports",
		CacheDir:   ".repograde-cache",
		KeepClones: true,
	}

	result, err := GenerateConfigYAML(spec)
	require.NoError(t, err)

	assert.Contains(t, result, "model: gpt-5")
	assert.Contains(t, result, "workers: 4")
	assert.Contains(t, result, "clone_depth: 25")
	assert.Contains(t, result, "output_dir: reports")
	assert.Contains(t, result, "cache_dir: .repograde-cache")
	assert.Contains(t, result, "keep_clones: true")
}

func TestGenerateConfigYAMLNoCache(t *testing.T) {
	result, err := GenerateConfigYAML(&ConfigSpec{
		Model:     "claude-sonnet-4",
		Workers:   3,
		OutputDir: "qa_reports",
	})
	require.NoError(t, err)
	assert.Contains(t, result, "cache_dir: \n")
	assert.Contains(t, result, "keep_clones: false")
}

func TestValidateInputs(t *testing.T) {
	assert.NoError(t, validatePositiveInt("3"))
	assert.Error(t, validatePositiveInt("0"))
	assert.Error(t, validatePositiveInt("abc"))

	assert.NoError(t, validateNonNegativeInt("0"))
	assert.Error(t, validateNonNegativeInt("-1"))
}
