package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repograde/repograde/internal/models"
)

func TestReadURLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `# candidate repositories
https://github.com/acme/widgets

https://github.com/acme/gadgets
  # indented comment
  https://github.com/acme/trimmed
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := readURLFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://github.com/acme/widgets",
		"https://github.com/acme/gadgets",
		"https://github.com/acme/trimmed",
	}, urls)
}

func TestReadURLFileMissing(t *testing.T) {
	_, err := readURLFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestBatchFailure(t *testing.T) {
	tests := []struct {
		name    string
		summary *models.BatchSummary
		wantMsg string
	}{
		{
			name: "all clean",
			summary: &models.BatchSummary{
				TotalRepositories:     2,
				SuccessfulEvaluations: 2,
				VerdictDistribution:   map[models.Verdict]int{models.VerdictPass: 2},
			},
		},
		{
			name: "evaluation failures",
			summary: &models.BatchSummary{
				TotalRepositories:     3,
				SuccessfulEvaluations: 2,
				FailedEvaluations:     1,
				VerdictDistribution:   map[models.Verdict]int{models.VerdictPass: 2},
			},
			wantMsg: "1 of 3 repositories could not be evaluated",
		},
		{
			name: "fail verdict present",
			summary: &models.BatchSummary{
				TotalRepositories:     2,
				SuccessfulEvaluations: 2,
				VerdictDistribution:   map[models.Verdict]int{models.VerdictPass: 1, models.VerdictFail: 1},
			},
			wantMsg: "1 received a FAIL verdict",
		},
		{
			name: "failures and fail verdicts combine",
			summary: &models.BatchSummary{
				TotalRepositories:     4,
				SuccessfulEvaluations: 3,
				FailedEvaluations:     1,
				VerdictDistribution:   map[models.Verdict]int{models.VerdictFail: 2, models.VerdictConditionalPass: 1},
			},
			wantMsg: "1 of 4 repositories could not be evaluated; 2 received a FAIL verdict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := batchFailure(tt.summary)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			var evalErr *EvalFailureError
			require.ErrorAs(t, err, &evalErr)
			assert.Equal(t, tt.wantMsg, evalErr.Message)
		})
	}
}

func TestBatchCommandRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("# only comments\n"), 0o644))

	cmd := newRootCommand()
	cmd.SetArgs([]string{"batch", path, "--config", filepath.Join(dir, "repograde.yaml")})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no repository URLs")
}
