// Package matrix runs the medication by food interaction grid.
package matrix

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"medexplain/internal/config"
	"medexplain/internal/domain"
	"medexplain/internal/observability/metrics"
)

// InteractionChecker is the part of the document understanding service the engine needs.
type InteractionChecker interface {
	CheckInteraction(ctx context.Context, medications, foods []string) ([]domain.InteractionStatement, error)
}

// Engine issues one interaction request per (medication, food) pair, one at a time,
// medications outer and foods inner, and flattens the statements in that order.
type Engine struct {
	checker  InteractionChecker
	policy   domain.FailurePolicy
	maxPairs int
	logger   *zap.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

// NewEngine creates an Engine. An unknown policy falls back to abort.
func NewEngine(checker InteractionChecker, cfg config.MatrixConfig, logger *zap.Logger, m *metrics.Metrics) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := domain.FailurePolicy(cfg.FailurePolicy)
	if policy != domain.FailurePolicyIsolate {
		policy = domain.FailurePolicyAbort
	}
	return &Engine{
		checker:  checker,
		policy:   policy,
		maxPairs: cfg.MaxPairs,
		logger:   logger,
		metrics:  m,
		tracer:   otel.Tracer("medexplain/matrix"),
	}
}

// Policy returns the failure policy in effect.
func (e *Engine) Policy() domain.FailurePolicy {
	return e.policy
}

// Validate reports whether meds and foods can be run without issuing any request.
// Both lists must be non-empty, every name must be non-blank, and the grid must
// fit within the configured pair limit.
func (e *Engine) Validate(meds, foods []string) error {
	if len(meds) == 0 || len(foods) == 0 {
		return domain.ErrMissingInput
	}
	for i, m := range meds {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("%w: medication %d has no name", domain.ErrInvalidMedication, i)
		}
	}
	for i, f := range foods {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: food %d has no name", domain.ErrInvalidFood, i)
		}
	}
	total := len(meds) * len(foods)
	if e.maxPairs > 0 && total > e.maxPairs {
		return fmt.Errorf("%w: %d pairs exceeds the limit of %d", domain.ErrMatrixTooLarge, total, e.maxPairs)
	}
	return nil
}

// Run checks every pair of meds and foods.
//
// Under the abort policy the first failed pair ends the run with
// ErrInteractionCheckFailed wrapping a *PairError, and no records are returned.
// Under the isolate policy failed pairs are reported in MatrixResult.Failures and
// the run fails only when every pair failed.
func (e *Engine) Run(ctx context.Context, meds, foods []string) (*domain.MatrixResult, error) {
	if err := e.Validate(meds, foods); err != nil {
		return nil, err
	}
	total := len(meds) * len(foods)

	ctx, span := e.tracer.Start(ctx, "matrix.run", trace.WithAttributes(
		attribute.Int("matrix.medications", len(meds)),
		attribute.Int("matrix.foods", len(foods)),
		attribute.Int("matrix.pairs", total),
		attribute.String("matrix.policy", string(e.policy)),
	))
	defer span.End()

	start := time.Now()
	records := []domain.InteractionRecord{}
	var failures []domain.PairFailure
	var firstErr *PairError

	for i, med := range meds {
		for j, food := range foods {
			idx := i*len(foods) + j
			statements, err := e.checkPair(ctx, idx, med, food)
			if err != nil {
				pe := &PairError{Index: idx, Medication: med, Food: food, Err: err}
				e.logger.Warn("interaction pair failed",
					zap.Int("index", idx),
					zap.String("medication", med),
					zap.String("food", food),
					zap.Error(err))

				if e.policy == domain.FailurePolicyAbort {
					e.finish(span, idx+1, 1, start, pe)
					return nil, fmt.Errorf("%w: %w", domain.ErrInteractionCheckFailed, pe)
				}
				if firstErr == nil {
					firstErr = pe
				}
				failures = append(failures, domain.PairFailure{
					Index:      idx,
					Medication: med,
					Food:       food,
					Reason:     err.Error(),
				})
				continue
			}

			for _, st := range statements {
				severity := domain.ParseSeverity(st.Severity)
				records = append(records, domain.InteractionRecord{
					Medication: med,
					Food:       food,
					Text:       st.Text,
					Severity:   severity,
				})
				e.metrics.ObserveInteraction(string(severity))
			}
		}
	}

	if len(failures) == total {
		e.finish(span, total, len(failures), start, firstErr)
		return nil, fmt.Errorf("%w: all %d pairs failed: %w", domain.ErrInteractionCheckFailed, total, firstErr)
	}

	e.finish(span, total, len(failures), start, nil)
	e.logger.Info("interaction matrix completed",
		zap.Int("pairs", total),
		zap.Int("records", len(records)),
		zap.Int("failed_pairs", len(failures)),
		zap.Duration("duration", time.Since(start)))

	return &domain.MatrixResult{
		Records:      records,
		PairsChecked: total,
		Failures:     failures,
	}, nil
}

func (e *Engine) checkPair(ctx context.Context, idx int, med, food string) ([]domain.InteractionStatement, error) {
	ctx, span := e.tracer.Start(ctx, "matrix.pair", trace.WithAttributes(
		attribute.Int("pair.index", idx),
		attribute.String("pair.medication", med),
		attribute.String("pair.food", food),
	))
	defer span.End()

	statements, err := e.checker.CheckInteraction(ctx, []string{med}, []string{food})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("pair.statements", len(statements)))
	return statements, nil
}

func (e *Engine) finish(span trace.Span, checked, failed int, start time.Time, err error) {
	e.metrics.ObserveMatrix(checked, failed, time.Since(start), err)
	span.SetAttributes(
		attribute.Int("matrix.pairs_checked", checked),
		attribute.Int("matrix.pairs_failed", failed),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
