package gitrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https github", "https://github.com/user/repo", false},
		{"https with .git suffix", "https://github.com/user/repo.git", false},
		{"http host", "http://example.com/repo", false},
		{"missing scheme", "github.com/user/repo", true},
		{"empty", "", true},
		{"scheme only", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCloner_CloneURLTokenInjection(t *testing.T) {
	c := &Cloner{Token: "secret-token"}

	withToken := c.cloneURL("https://github.com/user/private")
	assert.Equal(t, "https://secret-token@github.com/user/private", withToken)

	// Non-GitHub remotes are left alone.
	other := c.cloneURL("https://gitlab.com/user/repo")
	assert.Equal(t, "https://gitlab.com/user/repo", other)

	// No token configured means no rewriting.
	plain := (&Cloner{}).cloneURL("https://github.com/user/repo")
	assert.Equal(t, "https://github.com/user/repo", plain)
}

func TestCloner_CloneRejectsInvalidURL(t *testing.T) {
	c := NewCloner()
	_, err := c.Clone(t.Context(), "not-a-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid repository URL")
}

func TestNewCloner_Defaults(t *testing.T) {
	c := NewCloner()
	assert.True(t, c.Shallow)
	assert.Equal(t, DefaultCloneDepth, c.Depth)
}
