package comparables

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"hotelcomp/pkg/contracts/domain"
)

const tracerName = "hotelcomp/comparables"

// Engine runs the filter, selector and estimator over a subject scope
type Engine struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewEngine creates a comparison engine
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		logger: logger.With(slog.String("component", "comparables")),
		tracer: otel.Tracer(tracerName),
	}
}

// Compare matches a single subject against the dataset
func Compare(subject domain.PropertyRecord, dataset []domain.PropertyRecord, tolerance float64, maxResults int) domain.ComparisonResult {
	candidates := Filter(subject, dataset, tolerance)
	selection := Select(candidates, subject, maxResults)
	if selection == nil {
		selection = []domain.Comparable{}
	}

	return domain.ComparisonResult{
		Subject:        subject,
		Status:         domain.MatchStatus(len(candidates), len(selection)),
		CandidateCount: len(candidates),
		Selection:      selection,
		Estimate:       Estimate(selection, subject),
	}
}

// ResolveSubjects returns the subjects a scope selects, in dataset order.
// Subjects are collapsed by identity key, keeping the first occurrence.
// The second return value lists scope keys absent from the dataset.
func ResolveSubjects(dataset []domain.PropertyRecord, scope Scope) ([]domain.PropertyRecord, []domain.IdentityKey) {
	var wanted map[domain.IdentityKey]bool
	if !scope.IsAll() {
		wanted = make(map[domain.IdentityKey]bool, len(scope.Keys))
		for _, k := range scope.Keys {
			wanted[k] = false
		}
	}

	seen := make(map[domain.IdentityKey]struct{}, len(dataset))
	subjects := make([]domain.PropertyRecord, 0, len(dataset))
	for _, rec := range dataset {
		key := rec.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if wanted != nil {
			if _, ok := wanted[key]; !ok {
				continue
			}
			wanted[key] = true
		}
		subjects = append(subjects, rec)
	}

	var missing []domain.IdentityKey
	if wanted != nil {
		for _, k := range scope.Keys {
			if !wanted[k] {
				missing = append(missing, k)
				wanted[k] = true // report each key once
			}
		}
	}
	return subjects, missing
}

// Run compares every subject in the scope against the dataset.
//
// Options are validated before any work starts; an invalid configuration
// rejects the whole run. Subjects are processed by a bounded worker group and
// results are returned in scope order. The dataset is only read.
func (e *Engine) Run(ctx context.Context, dataset []domain.PropertyRecord, opts Options) (*Run, error) {
	start := time.Now()

	ctx, span := e.tracer.Start(ctx, "comparables.run",
		trace.WithAttributes(
			attribute.Int("dataset.records", len(dataset)),
			attribute.Float64("comparison.tolerance", opts.Tolerance),
			attribute.Int("comparison.max_results", opts.MaxResults),
		),
	)
	defer span.End()

	if err := ValidateOptions(opts); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.WarnContext(ctx, "comparison run rejected", "error", err)
		return nil, fmt.Errorf("validate options: %w", err)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}

	subjects, missing := ResolveSubjects(dataset, opts.Scope)
	if len(missing) > 0 {
		e.logger.WarnContext(ctx, "scope keys not found in dataset",
			"missing", len(missing),
			"first_missing", missing[0].String(),
		)
	}

	runID := uuid.New().String()
	e.logger.InfoContext(ctx, "starting comparison run",
		"run_id", runID,
		"records", len(dataset),
		"subjects", len(subjects),
		"tolerance", opts.Tolerance,
		"max_results", opts.MaxResults,
		"workers", workers,
	)

	results := make([]domain.ComparisonResult, len(subjects))
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i := range subjects {
		g.Go(func() error {
			results[i] = Compare(subjects[i], dataset, opts.Tolerance, opts.MaxResults)
			return nil
		})
	}
	// Workers never fail; Wait only joins them
	_ = g.Wait()

	summary := domain.RunSummary{
		RunID:      runID,
		Tolerance:  opts.Tolerance,
		MaxResults: opts.MaxResults,
	}
	for _, r := range results {
		summary.TotalProcessed++
		if r.Matched() {
			summary.MatchedCount++
		} else {
			summary.NoMatchCount++
		}
		e.logger.DebugContext(ctx, "subject compared",
			"address", r.Subject.Address,
			"status", r.Status,
		)
	}
	summary.Duration = time.Since(start)

	span.SetAttributes(
		attribute.String("comparison.run_id", runID),
		attribute.Int("comparison.total_processed", summary.TotalProcessed),
		attribute.Int("comparison.matched", summary.MatchedCount),
		attribute.Int("comparison.no_match", summary.NoMatchCount),
	)

	e.logger.InfoContext(ctx, "comparison run completed",
		"run_id", runID,
		"total_processed", summary.TotalProcessed,
		"matched", summary.MatchedCount,
		"no_match", summary.NoMatchCount,
		"duration", summary.Duration,
	)

	return &Run{Summary: summary, Results: results}, nil
}
