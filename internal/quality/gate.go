// Package quality combines the report validators into one weighted score and
// a publish/block decision.
package quality

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"valuator/internal/domain"
	"valuator/internal/validation"
	"valuator/internal/valuation"
)

// Category names; they double as weight keys in the rules file.
const (
	CategoryDataIntegrity = "data_integrity"
	CategoryBusinessRules = "business_rules"
	CategoryCompleteness  = "completeness"
	CategoryConsistency   = "consistency"
)

var categoryOrder = []string{CategoryDataIntegrity, CategoryBusinessRules, CategoryCompleteness, CategoryConsistency}

const (
	errorPenalty   = 25.0
	warningPenalty = 5.0
)

// CategoryResult is one weighted category.
type CategoryResult struct {
	Name   string            `json:"name"`
	Weight float64           `json:"weight"`
	Score  float64           `json:"score"`
	Result validation.Result `json:"result"`
}

// Result is the gate's decision.
type Result struct {
	Score          float64          `json:"score"`
	Categories     []CategoryResult `json:"categories"`
	BlockingErrors []string         `json:"blocking_errors"`
	Warnings       []string         `json:"warnings"`
	CanProceed     bool             `json:"can_proceed"`
	EvaluatedAt    time.Time        `json:"evaluated_at"`
}

// Category returns the named category result.
func (r Result) Category(name string) (CategoryResult, bool) {
	for _, c := range r.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return CategoryResult{}, false
}

// GateError is returned by EvaluateStrict when the report may not proceed.
type GateError struct {
	Result Result
}

func (e *GateError) Error() string {
	if len(e.Result.BlockingErrors) == 0 {
		return fmt.Sprintf("quality gate blocked: score %.1f below minimum", e.Result.Score)
	}
	return "quality gate blocked: " + strings.Join(e.Result.BlockingErrors, "; ")
}

// Unwrap lets callers match domain.ErrValidation.
func (e *GateError) Unwrap() error { return domain.ErrValidation }

// Gate evaluates assembled reports.
type Gate struct {
	rules   *validation.Rules
	weights map[string]float64
	logger  *zap.Logger
}

// New validates the category weights and returns a Gate.
func New(rules *validation.Rules, logger *zap.Logger) (*Gate, error) {
	if rules == nil {
		rules = validation.DefaultRules()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	weights := make(map[string]float64, len(categoryOrder))
	sum := 0.0
	for _, c := range categoryOrder {
		w, ok := rules.QualityGate.Weights[c]
		if !ok {
			return nil, eris.Errorf("quality: no weight for category %s", c)
		}
		weights[c] = w
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return nil, eris.Errorf("quality: category weights sum to %.4f, want 1.0", sum)
	}
	return &Gate{rules: rules, weights: weights, logger: logger}, nil
}

// Evaluate runs every category against sections and the snapshot. All
// categories always run; any category error blocks publication regardless of
// the aggregate score.
func (g *Gate) Evaluate(ctx context.Context, sections map[string]string, data *valuation.Accessor) (Result, error) {
	results := make([]validation.Result, len(categoryOrder))
	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		results[0] = checkIntegrity(sections, g.rules.QualityGate)
		return nil
	})
	eg.Go(func() error {
		results[1] = validation.NewBusinessRuleValidator(data, g.rules).Validate()
		return nil
	})
	eg.Go(func() error {
		results[2] = validation.NewCompletenessValidator(g.rules).Validate(sections)
		return nil
	})
	eg.Go(func() error {
		results[3] = g.consistency(sections, data)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return Result{}, eris.Wrap(err, "quality: evaluate")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, eris.Wrap(err, "quality: evaluate")
	}

	out := Result{BlockingErrors: []string{}, Warnings: []string{}, EvaluatedAt: time.Now().UTC()}
	for i, name := range categoryOrder {
		r := results[i]
		score := categoryScore(r)
		out.Categories = append(out.Categories, CategoryResult{Name: name, Weight: g.weights[name], Score: score, Result: r})
		out.Score += score * g.weights[name]
		for _, e := range r.Errors {
			out.BlockingErrors = append(out.BlockingErrors, name+": "+e)
		}
		for _, w := range r.Warnings {
			out.Warnings = append(out.Warnings, name+": "+w)
		}
	}
	out.Score = math.Round(out.Score*10) / 10
	out.CanProceed = len(out.BlockingErrors) == 0 && out.Score >= g.rules.QualityGate.MinScore

	g.logger.Info("quality: gate evaluated",
		zap.Float64("score", out.Score),
		zap.Int("blocking_errors", len(out.BlockingErrors)),
		zap.Int("warnings", len(out.Warnings)),
		zap.Bool("can_proceed", out.CanProceed),
	)
	return out, nil
}

// EvaluateStrict is Evaluate for callers that want generation to fail
// outright: it returns a *GateError when the report may not proceed.
func (g *Gate) EvaluateStrict(ctx context.Context, sections map[string]string, data *valuation.Accessor) (Result, error) {
	res, err := g.Evaluate(ctx, sections, data)
	if err != nil {
		return res, err
	}
	if !res.CanProceed {
		return res, &GateError{Result: res}
	}
	return res, nil
}

// consistency folds critical narrative mismatches into the consistency
// result, leaving out metrics the consistency rules already track.
func (g *Gate) consistency(sections map[string]string, data *valuation.Accessor) validation.Result {
	res := validation.NewConsistencyValidator(data, g.rules).Validate(sections)
	tracked := make(map[string]bool, len(g.rules.Consistency.Metrics))
	for _, m := range g.rules.Consistency.Metrics {
		tracked[m.Key] = true
	}
	narr := validation.NewNarrativeValidator(data, g.rules, g.logger).CriticalMismatches(sections, tracked)
	res.Errors = append(res.Errors, narr.Errors...)
	res.Mismatches = append(res.Mismatches, narr.Mismatches...)
	res.Passed = len(res.Errors) == 0
	return res
}

func categoryScore(r validation.Result) float64 {
	s := 100 - errorPenalty*float64(len(r.Errors)) - warningPenalty*float64(len(r.Warnings))
	if s < 0 {
		return 0
	}
	return s
}
