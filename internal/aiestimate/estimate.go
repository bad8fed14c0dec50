package aiestimate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dsablic/codecheck/internal/analyzer"
	"github.com/dsablic/codecheck/internal/explain"
	"github.com/dsablic/codecheck/internal/features"
	"github.com/dsablic/codecheck/internal/license"
	"github.com/dsablic/codecheck/internal/model"
	"github.com/dsablic/codecheck/internal/scoring"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 10

// EmptyInputMessage is shown to users who submit blank code.
const EmptyInputMessage = "Please paste some code to analyze."

// ErrEmptyInput is returned for empty or whitespace-only code.
var ErrEmptyInput = errors.New("empty code")

// Request describes one analysis call.
type Request struct {
	Code     string
	Language string // hint; "" or "auto" means detect
	Extended bool
	// SkipOriginality leaves OriginalityScore unset.
	SkipOriginality bool
}

// Estimator runs the extract, score and explain pipeline. It holds no
// per-call state and is safe for concurrent use.
type Estimator struct {
	Scorer   scoring.Scorer
	Analyzer *analyzer.Analyzer
	// Delay is waited before scoring, standing in for a remote round trip.
	Delay time.Duration
	Now   func() time.Time
}

// New returns an Estimator using the heuristic scorer.
func New() *Estimator {
	return &Estimator{
		Scorer:   scoring.Heuristic{},
		Analyzer: analyzer.New(),
		Now:      time.Now,
	}
}

// Validate rejects empty or whitespace-only code with ErrEmptyInput.
func Validate(code string) error {
	if strings.TrimSpace(code) == "" {
		return ErrEmptyInput
	}
	return nil
}

// Estimate analyzes a single snippet.
func (e *Estimator) Estimate(ctx context.Context, req Request) (*model.ScoringResult, error) {
	if err := Validate(req.Code); err != nil {
		return nil, err
	}

	fs := features.Extract(req.Code, features.Options{Extended: req.Extended})

	if e.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.Delay):
		}
	}

	verdict := e.Scorer.Score(fs)
	explanation, indicators := explain.Explain(fs, verdict.Classification)

	result := &model.ScoringResult{
		Classification: verdict.Classification,
		Confidence:     verdict.Confidence,
		Band:           scoring.Band(verdict.Confidence),
		Explanation:    explanation,
		Indicators:     indicators,
		Characters:     fs.Length,
		Features:       fs,
		Contributions:  verdict.Contributions,
		CreatedAt:      e.now().UTC().Format(time.RFC3339),
	}

	if !req.SkipOriginality {
		originality := explain.Originality(fs)
		result.OriginalityScore = &originality
	}

	e.describe(result, req)
	return result, nil
}

// describe adds the language, scc breakdown and license indicators.
func (e *Estimator) describe(result *model.ScoringResult, req Request) {
	if e.Analyzer == nil {
		return
	}
	hint := strings.TrimSpace(req.Language)
	explicit := hint != "" && !strings.EqualFold(hint, analyzer.Auto)
	if !explicit && !req.Extended {
		return
	}

	result.Language = e.Analyzer.ResolveLanguage(hint, req.Code)
	if !req.Extended {
		return
	}

	if result.Language != "" {
		result.Indicators = append(result.Indicators, fmt.Sprintf("Detected language: %s", result.Language))
	}
	if b := e.Analyzer.Breakdown(result.Language, req.Code); b != nil {
		result.Breakdown = b
		result.Indicators = append(result.Indicators,
			fmt.Sprintf("Code lines: %d, comment lines: %d, blank lines: %d", b.Code, b.Comments, b.Blanks))
	}
	if id := license.DetectText(req.Code); id != "" {
		result.License = id
		result.Indicators = append(result.Indicators, fmt.Sprintf("Embedded license text detected: %s", id))
	}
}

// EstimateAll analyzes independent snippets concurrently. Results keep the
// order of reqs; a failed request leaves a nil slot and a partial error
// message. The returned error is set only when ctx is done. progress, if
// non-nil, is called once per finished request with the running count.
func (e *Estimator) EstimateAll(ctx context.Context, reqs []Request, concurrency int, progress func(completed, index int)) ([]*model.ScoringResult, []string, error) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	results := make([]*model.ScoringResult, len(reqs))
	errs := make([]error, len(reqs))

	var mu sync.Mutex
	completed := 0
	finish := func(i int) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		completed++
		progress(completed, i)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			res, err := e.Estimate(gctx, req)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				errs[i] = err
			}
			results[i] = res
			finish(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var partialErrors []string
	for i, err := range errs {
		if err != nil {
			partialErrors = append(partialErrors, fmt.Sprintf("request %d: %v", i, err))
		}
	}
	return results, partialErrors, nil
}

func (e *Estimator) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}
