package judge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	copilot "github.com/github/copilot-sdk/go"
	"github.com/go-viper/mapstructure/v2"

	"github.com/repograde/repograde/internal/models"
	"github.com/repograde/repograde/internal/utils"
)

// CopilotOptions configures the copilot-backed judge.
type CopilotOptions struct {
	// Model is the model slug used for assessments.
	Model string

	// WorkingDirectory is the cwd for the copilot CLI process.
	WorkingDirectory string
}

// CopilotJudge scores categories by running an assessment prompt through
// the copilot CLI. Each Assess call uses its own client and session so
// concurrent assessments never share state.
type CopilotJudge struct {
	opts CopilotOptions
}

// NewCopilotJudge returns a judge backed by the copilot CLI.
func NewCopilotJudge(opts CopilotOptions) (*CopilotJudge, error) {
	if opts.Model == "" {
		return nil, errors.New("missing model for copilot judge")
	}
	return &CopilotJudge{opts: opts}, nil
}

// Assess implements [Judge].
func (j *CopilotJudge) Assess(ctx context.Context, category models.Category, excerpt string) (*Assessment, error) {
	if !category.Valid() {
		return nil, &AssessmentError{Category: category, Err: fmt.Errorf("unknown category %q", category)}
	}

	client := copilot.NewClient(&copilot.ClientOptions{
		Cwd:             j.opts.WorkingDirectory,
		AutoStart:       utils.Ptr(true),
		AutoRestart:     utils.Ptr(true),
		UseLoggedInUser: utils.Ptr(true),
		LogLevel:        "error",
	})

	defer func() {
		if err := client.Stop(); err != nil {
			slog.ErrorContext(ctx, "error stopping copilot client after assessment", "category", category)
		}
	}()

	collector := newScoreCollector(category)

	session, err := client.CreateSession(ctx, &copilot.SessionConfig{
		Model:     j.opts.Model,
		Streaming: true,
		Tools:     collector.Tools,
	})
	if err != nil {
		return nil, &AssessmentError{Category: category, Err: fmt.Errorf("failed to start copilot session: %w", err)}
	}

	session.On(utils.SessionToSlog)

	resp, err := session.SendAndWait(ctx, copilot.MessageOptions{
		Prompt: buildPrompt(category, excerpt),
		Mode:   "enqueue",
	})
	if err != nil {
		return nil, &AssessmentError{Category: category, Err: fmt.Errorf("failed to send assessment prompt: %w", err)}
	}

	if assessment := collector.Result(); assessment != nil {
		return assessment, nil
	}

	// The model answered in prose instead of calling the tool. Salvage a
	// JSON payload from the response text if one is present.
	if resp != nil && resp.Data.Content != nil {
		if assessment, ok := decodeScorePayloadText(category, *resp.Data.Content); ok {
			slog.DebugContext(ctx, "recovered scores from response text", "category", category)
			return assessment, nil
		}
	}

	return nil, &AssessmentError{Category: category, Err: errors.New("model produced no usable score submission")}
}

// scoreCollector owns the submit tool and the judgment it captures. Repeat
// submissions overwrite earlier ones; the last complete payload wins.
type scoreCollector struct {
	Tools []copilot.Tool

	mu       sync.Mutex
	category models.Category
	result   *Assessment
}

func newScoreCollector(category models.Category) *scoreCollector {
	c := &scoreCollector{category: category}

	c.Tools = []copilot.Tool{
		{
			Name:        submitScoresToolName,
			Description: "Submit the dimension scores and reasoning for the category under assessment.",
			Parameters:  scorePayloadSchema(category),
			Handler: func(invocation copilot.ToolInvocation) (copilot.ToolResult, error) {
				assessment, err := decodeScorePayload(category, invocation.Arguments)
				if err != nil {
					return copilot.ToolResult{}, err
				}
				c.mu.Lock()
				c.result = assessment
				c.mu.Unlock()
				return copilot.ToolResult{}, nil
			},
		},
	}

	return c
}

func (c *scoreCollector) Result() *Assessment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// decodeScorePayload validates a raw score submission against the category
// schema and converts it into an assessment.
func decodeScorePayload(category models.Category, payload any) (*Assessment, error) {
	if errs := validateScorePayload(category, payload); len(errs) > 0 {
		return nil, fmt.Errorf("score submission rejected: %s", strings.Join(errs, "; "))
	}

	var fields struct {
		Reasoning string `mapstructure:"reasoning"`
	}
	if err := mapstructure.Decode(payload, &fields); err != nil {
		return nil, fmt.Errorf("decoding score submission: %w", err)
	}

	raw, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("score submission is not an object: %T", payload)
	}
	dims := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != "reasoning" {
			dims[k] = v
		}
	}

	values := map[string]int{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &values,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("building score decoder: %w", err)
	}
	if err := decoder.Decode(dims); err != nil {
		return nil, fmt.Errorf("decoding dimension scores: %w", err)
	}

	return &Assessment{
		Scores:    models.NewScoreSet(category, values),
		Reasoning: fields.Reasoning,
	}, nil
}

// decodeScorePayloadText extracts a JSON object from free text, tolerating a
// markdown code fence, and decodes it as a score submission. Unlike the tool
// path there is no schema gate here: the judge's prose output carries no
// guarantee of respecting bounds, so missing dimensions default to 0 and
// out-of-range values are clamped rather than rejected.
func decodeScorePayloadText(category models.Category, content string) (*Assessment, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, false
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return nil, false
	}

	return decodeScorePayloadLenient(category, payload), true
}

// decodeScorePayloadLenient converts a raw payload into an assessment the way
// a downstream consumer must: every dimension defaults to 0 when missing or
// non-numeric, and NewScoreSet clamps whatever arrives to [0, 10].
func decodeScorePayloadLenient(category models.Category, payload map[string]any) *Assessment {
	values := make(map[string]int, len(category.Dimensions()))
	for _, dim := range category.Dimensions() {
		if n, ok := toInt(payload[dim]); ok {
			values[dim] = n
		}
	}

	reasoning, _ := payload["reasoning"].(string)

	return &Assessment{
		Scores:    models.NewScoreSet(category, values),
		Reasoning: reasoning,
	}
}

// toInt coerces the numeric shapes a decoded JSON value can take.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	default:
		return 0, false
	}
}
