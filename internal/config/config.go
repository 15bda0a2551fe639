// Package config loads tool configuration from an optional repograde.yaml
// plus environment variables. Secrets never live in the YAML file; the
// GitHub token comes from the environment, optionally seeded by a .env file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/repograde/repograde/internal/scoring"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "repograde.yaml"

// githubTokenEnv names the environment variable holding a GitHub token used
// for cloning private repositories.
const githubTokenEnv = "GITHUB_TOKEN"

// Config is the full tool configuration.
type Config struct {
	// Model is the judge model slug.
	Model string `yaml:"model"`

	// Workers bounds concurrent repository evaluations in batch mode.
	Workers int `yaml:"workers"`

	// CloneDepth is the shallow-clone depth. Zero disables shallow cloning.
	CloneDepth int `yaml:"clone_depth"`

	// CacheDir stores completed outcomes. Empty disables caching.
	CacheDir string `yaml:"cache_dir"`

	// OutputDir receives generated reports.
	OutputDir string `yaml:"output_dir"`

	// KeepClones leaves cloned working trees on disk after evaluation.
	KeepClones bool `yaml:"keep_clones"`

	// Scoring overrides the built-in scoring configuration when present.
	Scoring *scoring.Config `yaml:"scoring"`

	// GitHubToken is resolved from the environment, never from YAML.
	GitHubToken string `yaml:"-"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		Model:      "claude-sonnet-4",
		Workers:    3,
		CloneDepth: 50,
		CacheDir:   ".repograde-cache",
		OutputDir:  "qa_reports",
	}
}

// Load reads configuration from path, falling back to defaults for any
// field the file leaves unset. A missing file is not an error; a malformed
// one is. Environment variables are loaded from .env when present.
func Load(path string) (*Config, error) {
	// Missing .env is fine; it is a convenience for local runs.
	_ = godotenv.Load()

	cfg := Defaults()
	cfg.GitHubToken = os.Getenv(githubTokenEnv)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks field ranges and any scoring overrides.
func (c *Config) Validate() error {
	if c.Model == "" {
		return errors.New("model must not be empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.CloneDepth < 0 {
		return fmt.Errorf("clone_depth must not be negative, got %d", c.CloneDepth)
	}
	if c.Scoring != nil {
		if err := c.Scoring.Validate(); err != nil {
			return fmt.Errorf("scoring: %w", err)
		}
	}
	return nil
}

// ScoringConfig returns the effective scoring configuration.
func (c *Config) ScoringConfig() scoring.Config {
	if c.Scoring != nil {
		return *c.Scoring
	}
	return scoring.Default()
}

// WriteTemplate writes a starter config file to path. It refuses to
// overwrite an existing file.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("marshaling template: %w", err)
	}

	header := "# repograde configuration. Remove any line to keep its default.\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}
