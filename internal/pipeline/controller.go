// Package pipeline drives the bounded refine loop: generate a draft, score it
// concurrently for keyword compliance and structural validity, evaluate the
// quality standards, then pass, revise with feedback, or stop at the
// iteration budget. The loop is an explicit state machine; see state.go for
// the edge table.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/ats"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/config"
	apperrors "github.com/MohammadAbidShah/Resume-builder-ai/internal/errors"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/generator"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/latex"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/logging"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/profile"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/resume"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/standards"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/terms"
)

// retryFeedback is the generic criticism used when a round's generator call
// failed and nothing round-specific can be said.
const retryFeedback = "The previous generation attempt failed. Regenerate the resume from the candidate profile and job description, covering every target keyword."

// Controller owns the round loop and the append-only iteration record
// sequence. The scoring components it drives are stateless.
type Controller struct {
	cfg       config.Config
	ranker    *terms.Ranker
	scorer    *ats.Scorer
	validator *latex.Validator
	evaluator *standards.Evaluator
	generator *generator.Generator
	logger    logging.Logger
}

// New wires a Controller from one immutable configuration and a generator.
func New(cfg config.Config, gen *generator.Generator, logger logging.Logger) *Controller {
	logger = logging.OrNop(logger)
	return &Controller{
		cfg:       cfg,
		ranker:    terms.NewRanker(logger),
		scorer:    ats.NewScorer(cfg.SectionWeights, cfg.HighImportanceFloor, logger),
		validator: latex.NewValidator(logger),
		evaluator: standards.NewEvaluator(cfg, logger),
		generator: gen,
		logger:    logger,
	}
}

// Run executes one full refinement run. Input problems (blank job
// description, invalid profile) return an error before any round executes;
// everything after that resolves to an ExecutionResult. On caller
// cancellation the partial result is returned alongside the context error.
func (c *Controller) Run(ctx context.Context, jobDescription string, prof profile.Profile) (ExecutionResult, error) {
	start := time.Now()

	ranked, err := c.ranker.Rank(jobDescription)
	if err != nil {
		return ExecutionResult{}, err
	}
	if err := prof.Validate(); err != nil {
		return ExecutionResult{}, err
	}

	result := ExecutionResult{
		RunID:       uuid.NewString(),
		FinalStatus: StatusFail,
		Model:       c.generator.Model(),
		RankedTerms: ranked,
	}
	c.logger.Info("Run %s: %d ranked terms, budget %d rounds", result.RunID, len(ranked), c.cfg.MaxIterations)

	state := StateGenerate
	feedback := ""
	var previous *resume.Content
	previousPlain := ""

	for round := 1; round <= c.cfg.MaxIterations && !state.Terminal(); round++ {
		if err := ctx.Err(); err != nil {
			result.ElapsedSeconds = time.Since(start).Seconds()
			return result, fmt.Errorf("run aborted before round %d: %w", round, err)
		}

		roundStart := time.Now()
		record := IterationRecord{Index: round}

		draft, genErr := c.generateWithTimeout(ctx, round, generator.Input{
			Profile:        prof,
			JobDescription: jobDescription,
			Ranked:         ranked,
			Feedback:       feedback,
			Previous:       previous,
		})

		if genErr != nil {
			// The failed round still consumes budget and leaves an audit entry.
			c.logger.Warn("Round %d: generation failed: %v", round, genErr)
			record.GenerationError = genErr.Error()
			record.Decision = standards.DecisionContinue
			record.Feedback = retryFeedback
			record.DurationSeconds = time.Since(roundStart).Seconds()
			result.Iterations = append(result.Iterations, record)
			result.TotalIterations = round

			feedback = retryFeedback
			if state, err = advance(state, StateContinue); err != nil {
				return result, err
			}
			if round < c.cfg.MaxIterations {
				state, err = advance(state, StateGenerate)
			} else {
				state, err = advance(state, StateFailMaxIter)
			}
			if err != nil {
				return result, err
			}
			continue
		}
		result.FinalDraft = draft

		if state, err = advance(state, StateScore); err != nil {
			return result, err
		}
		compliance, structure, scoreErr := c.score(ctx, draft, ranked)
		if scoreErr != nil {
			c.logger.Error("Round %d: scoring failed, substituting worst-case reports: %v", round, scoreErr)
			record.ScoringError = scoreErr.Error()
		}

		if state, err = advance(state, StateDecide); err != nil {
			return result, err
		}
		eval := c.evaluator.Evaluate(compliance, structure, ranked)

		record.Compliance = compliance
		record.Structure = structure
		record.Checklist = eval.Checklist
		record.Decision = eval.Decision
		record.Feedback = eval.Feedback
		record.DraftDelta = draftDelta(previousPlain, draft.PlainText)
		record.DurationSeconds = time.Since(roundStart).Seconds()
		result.Iterations = append(result.Iterations, record)
		result.TotalIterations = round

		if eval.Decision == standards.DecisionPass {
			if state, err = advance(state, StatePass); err != nil {
				return result, err
			}
			result.FinalStatus = StatusPass
			break
		}

		if state, err = advance(state, StateContinue); err != nil {
			return result, err
		}
		feedback = eval.Feedback
		previous = &draft.Content
		previousPlain = draft.PlainText
		if round < c.cfg.MaxIterations {
			if state, err = advance(state, StateGenerate); err != nil {
				return result, err
			}
			if c.cfg.RerankEachRound {
				if reranked, rankErr := c.ranker.Rank(jobDescription); rankErr == nil {
					ranked = reranked
				}
			}
		} else {
			if state, err = advance(state, StateFailMaxIter); err != nil {
				return result, err
			}
		}
	}

	result.ElapsedSeconds = time.Since(start).Seconds()
	c.logger.Info("Run %s finished: status=%s rounds=%d elapsed=%.1fs",
		result.RunID, result.FinalStatus, result.TotalIterations, result.ElapsedSeconds)
	return result, nil
}

// generateWithTimeout bounds one generator call by the per-round budget.
func (c *Controller) generateWithTimeout(ctx context.Context, round int, in generator.Input) (resume.Draft, error) {
	rctx, cancel := context.WithTimeout(ctx, c.cfg.IterationTimeout)
	defer cancel()
	return c.generator.Generate(rctx, round, in)
}

// score runs the compliance scorer and structure validator as two concurrent
// tasks over the same scan, joining before the standards evaluation. A panic
// or failure in either substitutes worst-case reports so the round still
// reaches a decision.
func (c *Controller) score(ctx context.Context, draft resume.Draft, ranked []terms.RankedTerm) (ats.Report, latex.StructureReport, error) {
	scan := latex.Scan(draft.LaTeX)

	var compliance ats.Report
	var structure latex.StructureReport

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &apperrors.ScoringError{Component: "compliance", Err: fmt.Errorf("panic: %v", r)}
			}
		}()
		compliance = c.scorer.Score(scan, ranked)
		return nil
	})
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &apperrors.ScoringError{Component: "structure", Err: fmt.Errorf("panic: %v", r)}
			}
		}()
		structure = c.validator.ValidateScanned(draft.LaTeX, scan)
		return nil
	})

	if err := g.Wait(); err != nil {
		return worstCaseCompliance(ranked), worstCaseStructure(err), err
	}
	return compliance, structure, nil
}

// worstCaseCompliance treats every ranked term as missing so the decision is
// honest about what the failed scorer could not establish.
func worstCaseCompliance(ranked []terms.RankedTerm) ats.Report {
	missing := make([]string, 0, len(ranked))
	for _, term := range ranked {
		missing = append(missing, term.Text)
	}
	return ats.Report{
		OverallScore:   0,
		MissingTerms:   missing,
		BlockingIssues: []string{"compliance scoring failed"},
	}
}

func worstCaseStructure(err error) latex.StructureReport {
	return latex.StructureReport{
		IsValid:      false,
		SyntaxErrors: []string{fmt.Sprintf("structure validation failed: %v", err)},
		QualityScore: 0,
	}
}

// draftDelta summarizes the text movement between consecutive drafts.
func draftDelta(previous, current string) string {
	if previous == "" {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(previous, current, false)
	inserted, deleted := 0, 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			inserted += len(d.Text)
		case diffmatchpatch.DiffDelete:
			deleted += len(d.Text)
		}
	}
	return fmt.Sprintf("+%d/-%d chars", inserted, deleted)
}
