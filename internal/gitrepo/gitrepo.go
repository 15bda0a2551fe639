// Package gitrepo acquires repositories for evaluation: URL validation,
// shallow cloning into temp directories, commit counting, and cleanup.
// All git operations shell out to the git CLI.
package gitrepo

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultCloneDepth is the history depth used for shallow clones.
const DefaultCloneDepth = 50

// Cloner clones repositories into temp directories.
type Cloner struct {
	// Shallow limits clone history to Depth commits.
	Shallow bool
	Depth   int
	// Token is injected into https GitHub clone URLs for private repos.
	Token string
}

// NewCloner returns a cloner with shallow cloning at the default depth.
func NewCloner() *Cloner {
	return &Cloner{Shallow: true, Depth: DefaultCloneDepth}
}

// ValidateURL checks that a repository URL has a scheme and host.
func ValidateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid repository URL %q: %w", rawURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid repository URL %q: missing scheme or host", rawURL)
	}
	return nil
}

// cloneURL returns the URL to pass to git, with the access token injected
// for https GitHub remotes when one is configured.
func (c *Cloner) cloneURL(rawURL string) string {
	if c.Token == "" || !strings.Contains(rawURL, "github.com") {
		return rawURL
	}
	return strings.Replace(rawURL, "https://", "https://"+c.Token+"@", 1)
}

// Clone clones the repository into a fresh temp directory and returns its
// path. The caller owns the directory and removes it with Cleanup.
func (c *Cloner) Clone(ctx context.Context, rawURL string) (string, error) {
	if err := ValidateURL(rawURL); err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp("", "repograde-*")
	if err != nil {
		return "", fmt.Errorf("creating clone directory: %w", err)
	}

	args := []string{"clone", "--quiet"}
	if c.Shallow {
		depth := c.Depth
		if depth <= 0 {
			depth = DefaultCloneDepth
		}
		args = append(args, "--depth", strconv.Itoa(depth))
	}
	args = append(args, c.cloneURL(rawURL), dir)

	cmd := exec.CommandContext(ctx, "git", args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		Cleanup(dir)
		msg := strings.TrimSpace(stderr.String())
		if c.Token != "" {
			// Never leak the token through error output.
			msg = strings.ReplaceAll(msg, c.Token, "***")
		}
		if msg == "" {
			return "", fmt.Errorf("git clone of %s failed: %w", rawURL, err)
		}
		return "", fmt.Errorf("git clone of %s failed: %s", rawURL, msg)
	}

	return dir, nil
}

// Cleanup removes a cloned repository directory. Best effort.
func Cleanup(dir string) {
	if dir != "" {
		_ = os.RemoveAll(dir)
	}
}

// CommitCount returns the number of commits reachable from HEAD.
func CommitCount(ctx context.Context, repoDir string) (int, error) {
	out, err := gitOutput(ctx, repoDir, "rev-list", "--count", "HEAD")
	if err != nil {
		return 0, fmt.Errorf("counting commits: %w", err)
	}
	count, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("parsing commit count %q: %w", out, err)
	}
	return count, nil
}

// HeadCommit returns the full hash of the current HEAD commit.
func HeadCommit(ctx context.Context, repoDir string) (string, error) {
	out, err := gitOutput(ctx, repoDir, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	return out, nil
}

func gitOutput(ctx context.Context, repoDir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", repoDir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GitAvailable reports whether the git binary is on PATH.
func GitAvailable() bool {
	_, err := exec.LookPath("git")
	return err == nil
}
