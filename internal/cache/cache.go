// Package cache stores completed evaluation outcomes on disk so re-running
// a batch against unchanged repositories skips the clone and AI assessment.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/repograde/repograde/internal/models"
	"github.com/repograde/repograde/internal/scoring"
)

const cacheExt = ".json.gz"

// Cache is a directory of gzip-compressed evaluation outcomes keyed by
// content hash. A zero-value dir disables caching.
type Cache struct {
	dir string
	mu  sync.Mutex
}

// New creates a cache rooted at dir. An empty dir yields a disabled cache
// where Get always misses and Put is a no-op.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key derives the cache key for one evaluation. An outcome is reusable only
// while the repository head, the judge model, and the scoring configuration
// all stay the same.
func Key(url, headCommit, model string, cfg scoring.Config) (string, error) {
	h := sha256.New()

	if err := writeString(h, url); err != nil {
		return "", err
	}
	if err := writeString(h, headCommit); err != nil {
		return "", err
	}
	if err := writeString(h, model); err != nil {
		return "", err
	}

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling scoring config: %w", err)
	}
	if _, err := h.Write(cfgJSON); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get retrieves a cached outcome if it exists and decodes cleanly. Any
// corrupt entry is treated as a miss.
func (c *Cache) Get(key string) (*models.EvaluationOutcome, bool) {
	if c.dir == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Open(c.cachePath(key))
	if err != nil {
		return nil, false
	}
	defer f.Close() //nolint:errcheck

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, false
	}
	defer zr.Close() //nolint:errcheck

	var outcome models.EvaluationOutcome
	if err := json.NewDecoder(zr).Decode(&outcome); err != nil {
		return nil, false
	}

	return &outcome, true
}

// Put stores an outcome in the cache.
func (c *Cache) Put(key string, outcome *models.EvaluationOutcome) error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	f, err := os.Create(c.cachePath(key))
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	zw := gzip.NewWriter(f)
	if err := json.NewEncoder(zw).Encode(outcome); err != nil {
		return fmt.Errorf("encoding outcome: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flushing cache file: %w", err)
	}

	return nil
}

// Clear removes all cached outcomes. It refuses to delete a directory that
// contains anything other than cache entries.
func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return nil
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			return fmt.Errorf("cache directory contains subdirectories - refusing to delete for safety")
		}
		if !strings.HasSuffix(entry.Name(), cacheExt) {
			return fmt.Errorf("cache directory contains non-cache files - refusing to delete for safety")
		}
	}

	return os.RemoveAll(c.dir)
}

func (c *Cache) cachePath(key string) string {
	return filepath.Join(c.dir, key+cacheExt)
}

func writeString(w io.Writer, s string) error {
	// Null byte delimiter prevents hash collisions between adjacent fields.
	_, err := w.Write([]byte(s + "\x00"))
	return err
}
