// Package orchestration runs the evaluation pipeline: clone, scan, judge
// each category, score, and report. Single-repository runs and concurrent
// batches share the same evaluator.
package orchestration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/repograde/repograde/internal/cache"
	"github.com/repograde/repograde/internal/config"
	"github.com/repograde/repograde/internal/gitrepo"
	"github.com/repograde/repograde/internal/judge"
	"github.com/repograde/repograde/internal/models"
	"github.com/repograde/repograde/internal/scan"
	"github.com/repograde/repograde/internal/scoring"
)

// Evaluator evaluates one repository at a time. It is safe for concurrent
// use: every Evaluate call works in its own clone directory.
type Evaluator struct {
	cloner     *gitrepo.Cloner
	judge      judge.Judge
	engine     *scoring.Engine
	cache      *cache.Cache
	model      string
	keepClones bool
}

// New builds an evaluator from tool configuration and a judge.
func New(cfg *config.Config, j judge.Judge) (*Evaluator, error) {
	engine, err := scoring.NewEngine(cfg.ScoringConfig())
	if err != nil {
		return nil, fmt.Errorf("building scoring engine: %w", err)
	}

	cloner := gitrepo.NewCloner()
	cloner.Depth = cfg.CloneDepth
	cloner.Shallow = cfg.CloneDepth > 0
	cloner.Token = cfg.GitHubToken

	return &Evaluator{
		cloner:     cloner,
		judge:      j,
		engine:     engine,
		cache:      cache.New(cfg.CacheDir),
		model:      cfg.Model,
		keepClones: cfg.KeepClones,
	}, nil
}

// Evaluate runs the full pipeline for one repository URL.
func (e *Evaluator) Evaluate(ctx context.Context, url string) (*models.EvaluationOutcome, error) {
	if err := gitrepo.ValidateURL(url); err != nil {
		return nil, err
	}

	dir, err := e.cloner.Clone(ctx, url)
	if err != nil {
		return nil, err
	}
	if !e.keepClones {
		defer gitrepo.Cleanup(dir)
	} else {
		slog.InfoContext(ctx, "keeping clone", "url", url, "dir", dir)
	}

	head, err := gitrepo.HeadCommit(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("resolving head commit for %s: %w", url, err)
	}

	key, err := cache.Key(url, head, e.model, e.engine.Config())
	if err != nil {
		return nil, fmt.Errorf("deriving cache key for %s: %w", url, err)
	}
	if outcome, ok := e.cache.Get(key); ok {
		slog.DebugContext(ctx, "cache hit", "url", url, "head", head)
		return outcome, nil
	}

	commitCount, err := gitrepo.CommitCount(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("counting commits for %s: %w", url, err)
	}

	snapshot, err := scan.Scan(dir)
	if err != nil {
		return nil, err
	}
	signals := snapshot.Signals(commitCount)

	categories, err := e.assessCategories(ctx, url, snapshot)
	if err != nil {
		return nil, err
	}

	outcome, err := e.score(url, signals, categories)
	if err != nil {
		return nil, err
	}

	if err := e.cache.Put(key, outcome); err != nil {
		// Failing to cache must not fail the evaluation.
		slog.WarnContext(ctx, "failed to cache outcome", "url", url, "error", err)
	}

	return outcome, nil
}

// assessCategories judges every tracked category against its excerpt.
// Categories run sequentially; concurrency lives at the repository level.
func (e *Evaluator) assessCategories(ctx context.Context, url string, snapshot *scan.Snapshot) (map[models.Category]models.ScoreSet, error) {
	categories := make(map[models.Category]models.ScoreSet, len(models.Categories()))

	for _, cat := range models.Categories() {
		excerpt, err := snapshot.Excerpt(cat)
		if err != nil {
			return nil, err
		}

		assessment, err := e.judge.Assess(ctx, cat, excerpt)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", url, err)
		}

		slog.DebugContext(ctx, "category assessed",
			"url", url,
			"category", cat,
			"average", assessment.Scores.Average(),
			"reasoning", assessment.Reasoning)

		categories[cat] = assessment.Scores
	}

	return categories, nil
}

// score turns signals plus category scores into a final immutable outcome.
func (e *Evaluator) score(url string, signals models.RepositorySignals, categories map[models.Category]models.ScoreSet) (*models.EvaluationOutcome, error) {
	averages := models.CategoryAverages(categories)

	overall, err := e.engine.Aggregate(averages)
	if err != nil {
		return nil, fmt.Errorf("scoring %s: %w", url, err)
	}

	level := e.engine.Classify(overall)

	verdict, reason, err := e.engine.Decide(averages, overall, signals)
	if err != nil {
		return nil, fmt.Errorf("deciding verdict for %s: %w", url, err)
	}

	strengths, improvements := e.engine.Insights(averages, signals)

	return &models.EvaluationOutcome{
		URL:           url,
		Timestamp:     time.Now().UTC(),
		Signals:       signals,
		Categories:    categories,
		OverallScore:  overall,
		Level:         level,
		Verdict:       verdict,
		VerdictReason: reason,
		Strengths:     strengths,
		Improvements:  improvements,
	}, nil
}
