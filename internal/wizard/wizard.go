// Package wizard drives the interactive setup flow behind `repograde init`.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ConfigSpec holds the fields collected during the interactive setup.
type ConfigSpec struct {
	Model      string
	Workers    int
	CloneDepth int
	OutputDir  string
	CacheDir   string
	KeepClones bool
}

const configTemplate = `# repograde configuration. Remove any line to keep its default.
model: {{ .Model }}
workers: {{ .Workers }}
clone_depth: {{ .CloneDepth }}
output_dir: {{ .OutputDir }}
cache_dir: {{ .CacheDir }}
keep_clones: {{ .KeepClones }}
`

// RunConfigWizard runs an interactive huh form to collect tool settings.
func RunConfigWizard(in io.Reader, out io.Writer) (*ConfigSpec, error) {
	var (
		model      = "claude-sonnet-4"
		workersRaw = "3"
		depthRaw   = "50"
		outputDir  = "qa_reports"
		useCache   = true
		keepClones bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Judge model").
				Description("Model slug used for repository assessment").
				Value(&model).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("model is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Workers").
				Description("Concurrent repository evaluations in batch mode").
				Value(&workersRaw).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Clone depth").
				Description("Shallow clone depth; 0 clones full history").
				Value(&depthRaw).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Report directory").
				Value(&outputDir),
			huh.NewConfirm().
				Title("Cache completed evaluations?").
				Value(&useCache),
			huh.NewConfirm().
				Title("Keep cloned repositories on disk?").
				Value(&keepClones),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("setup wizard failed: %w", err)
	}

	workers, _ := strconv.Atoi(strings.TrimSpace(workersRaw))
	depth, _ := strconv.Atoi(strings.TrimSpace(depthRaw))

	spec := &ConfigSpec{
		Model:      strings.TrimSpace(model),
		Workers:    workers,
		CloneDepth: depth,
		OutputDir:  strings.TrimSpace(outputDir),
		KeepClones: keepClones,
	}
	if useCache {
		spec.CacheDir = ".repograde-cache"
	}
	return spec, nil
}

// GenerateConfigYAML renders the collected settings as a repograde.yaml body.
func GenerateConfigYAML(spec *ConfigSpec) (string, error) {
	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing config template: %w", err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, spec); err != nil {
		return "", fmt.Errorf("rendering config: %w", err)
	}
	return sb.String(), nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a whole number of at least 1")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("enter a whole number of at least 0")
	}
	return nil
}
