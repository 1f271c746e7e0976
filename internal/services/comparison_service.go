package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"hotelcomp/internal/comparables"
	"hotelcomp/internal/config"
	"hotelcomp/internal/dataprocessing"
	apperrors "hotelcomp/internal/errors"
	"hotelcomp/internal/exporter"
	"hotelcomp/internal/files"
	"hotelcomp/internal/infrastructure"
	"hotelcomp/pkg/contracts/domain"
)

// RunRequest describes one comparison run. Nil Tolerance and MaxResults
// fall back to the configured defaults.
type RunRequest struct {
	Records    []domain.PropertyRecord
	Tolerance  *float64
	MaxResults *int
	// Addresses selects subjects by property address; empty means all
	Addresses []string
}

// RunOutcome is a finished run plus the scope addresses that matched nothing
type RunOutcome struct {
	Run              *comparables.Run
	UnknownAddresses []string
}

// ComparisonService loads datasets, runs the engine and renders reports
type ComparisonService struct {
	engine   *comparables.Engine
	loader   *dataprocessing.Loader
	workbook *exporter.WorkbookWriter
	csv      *exporter.CSVWriter
	paths    *config.Paths
	reports  *files.Catalog
	defaults config.ComparisonConfig
	metrics  *infrastructure.BusinessMetrics
	logger   *slog.Logger
}

// NewComparisonService wires the service. paths and metrics may be nil;
// without paths relative report paths are used as given.
func NewComparisonService(defaults config.ComparisonConfig, paths *config.Paths, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *ComparisonService {
	if logger == nil {
		logger = slog.Default()
	}

	var reports *files.Catalog
	if paths != nil {
		reports = files.NewCatalog(paths.ReportsDir)
	}

	return &ComparisonService{
		engine:   comparables.NewEngine(logger),
		loader:   dataprocessing.NewLoader(logger),
		workbook: exporter.NewWorkbookWriter(logger),
		csv:      exporter.NewCSVWriter(paths),
		paths:    paths,
		reports:  reports,
		defaults: defaults,
		metrics:  metrics,
		logger:   infrastructure.WithComponent(logger, "comparison_service"),
	}
}

// Defaults returns the configured run parameters
func (s *ComparisonService) Defaults() config.ComparisonConfig {
	return s.defaults
}

// LoadDataset reads and normalizes an uploaded dataset. The format is
// inferred from name.
func (s *ComparisonService) LoadDataset(ctx context.Context, r io.Reader, name, sheet string) (*dataprocessing.Dataset, error) {
	format, err := dataprocessing.FormatFromName(name)
	if err != nil {
		return nil, err
	}

	ds, err := s.loader.Load(r, name, format, dataprocessing.LoadOptions{Sheet: sheet})
	if err != nil {
		return nil, err
	}
	s.recordLoad(ctx, ds)
	return ds, nil
}

// LoadDatasetFile reads and normalizes a dataset from disk
func (s *ComparisonService) LoadDatasetFile(ctx context.Context, path, sheet string) (*dataprocessing.Dataset, error) {
	if err := files.ValidateDatasetFile(path); err != nil {
		return nil, err
	}

	ds, err := s.loader.LoadFile(path, dataprocessing.LoadOptions{Sheet: sheet})
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	s.recordLoad(ctx, ds)
	return ds, nil
}

func (s *ComparisonService) recordLoad(ctx context.Context, ds *dataprocessing.Dataset) {
	dropped := make(map[string]int, len(ds.Report.Dropped))
	for reason, n := range ds.Report.Dropped {
		dropped[string(reason)] = n
	}
	s.metrics.RecordDatasetLoad(ctx, ds.Report.Loaded, dropped)
}

// Options resolves a request's parameters against the configured defaults
func (s *ComparisonService) Options(req RunRequest) (comparables.Options, []string) {
	opts := s.defaults.Options()
	if req.Tolerance != nil {
		opts.Tolerance = *req.Tolerance
	}
	if req.MaxResults != nil {
		opts.MaxResults = *req.MaxResults
	}

	scope, unknown := dataprocessing.ScopeByAddress(req.Records, req.Addresses)
	opts.Scope = scope
	return opts, unknown
}

// Compare runs the engine over the request's records. Invalid parameters
// come back as *comparables.ConfigurationError; a subject without
// candidates is a normal "no match" result.
func (s *ComparisonService) Compare(ctx context.Context, req RunRequest) (*RunOutcome, error) {
	if len(req.Records) == 0 {
		return nil, apperrors.NewAppValidationError(ErrEmptyDataset.Error())
	}

	opts, unknown := s.Options(req)
	if len(unknown) > 0 {
		s.logger.WarnContext(ctx, "addresses not found in dataset",
			slog.Int("count", len(unknown)),
			slog.String("first", unknown[0]),
		)
	}

	run, err := s.engine.Run(ctx, req.Records, opts)
	if err != nil {
		var cfgErr *comparables.ConfigurationError
		if errors.As(err, &cfgErr) {
			s.metrics.RecordRejectedRun(ctx, cfgErr.Field)
		}
		return nil, err
	}

	s.metrics.RecordComparisonRun(ctx, run.Summary, run.Results)
	if states := untaxedStates(run.Results); len(states) > 0 {
		s.logger.WarnContext(ctx, "matched subjects in states without a tax rate; overpaid is zero",
			slog.String("states", strings.Join(states, ", ")))
	}
	infrastructure.SetSpanAttributes(ctx,
		attribute.String("comparison.run_id", run.Summary.RunID),
		attribute.Int("comparison.matched", run.Summary.MatchedCount),
	)

	return &RunOutcome{Run: run, UnknownAddresses: unknown}, nil
}

// untaxedStates lists, once each in result order, the states of matched
// subjects missing from the tax rate table
func untaxedStates(results []domain.ComparisonResult) []string {
	var states []string
	seen := make(map[string]bool)
	for _, r := range results {
		state := r.Subject.State
		if !r.Matched() || seen[state] || comparables.HasStateTaxRate(state) {
			continue
		}
		seen[state] = true
		states = append(states, state)
	}
	return states
}

// WriteWorkbook renders the results workbook of run to w
func (s *ComparisonService) WriteWorkbook(ctx context.Context, w io.Writer, run *comparables.Run) error {
	if run == nil {
		return ErrNilRun
	}
	if err := s.workbook.Write(w, run); err != nil {
		return apperrors.NewStorageError("failed to render workbook", err)
	}
	s.metrics.RecordReport(ctx, "xlsx")
	return nil
}

// SaveWorkbook writes the results workbook to path. An empty path picks a
// timestamped name in the reports directory.
func (s *ComparisonService) SaveWorkbook(ctx context.Context, path string, run *comparables.Run) (string, error) {
	if run == nil {
		return "", ErrNilRun
	}

	inReports := path == ""
	path = s.reportPath(path, config.ReportFileName(run.Summary.RunID, time.Now()))
	if err := s.workbook.Save(path, run); err != nil {
		infrastructure.RecordError(ctx, err)
		return "", apperrors.NewStorageError("failed to save workbook", err).WithContext("path", path)
	}
	s.metrics.RecordReport(ctx, "xlsx")

	if inReports {
		s.pruneReports(ctx)
	}
	return path, nil
}

// pruneReports applies the configured report retention
func (s *ComparisonService) pruneReports(ctx context.Context) {
	if s.reports == nil || s.paths.KeepReports <= 0 {
		return
	}
	removed, err := s.reports.Prune(s.paths.KeepReports)
	if err != nil {
		infrastructure.WithError(s.logger, err).WarnContext(ctx, "report retention failed")
		return
	}
	if len(removed) > 0 {
		s.logger.InfoContext(ctx, "old reports removed", slog.Int("count", len(removed)))
	}
}

// ListReports returns the saved reports, newest first
func (s *ComparisonService) ListReports(ctx context.Context) ([]files.FileInfo, error) {
	if s.reports == nil {
		return []files.FileInfo{}, nil
	}
	return s.reports.List()
}

// ResolveReport finds a saved report by file name
func (s *ComparisonService) ResolveReport(ctx context.Context, name string) (files.FileInfo, error) {
	if s.reports == nil {
		return files.FileInfo{}, apperrors.NewNotFoundError(name)
	}
	return s.reports.Resolve(name)
}

// LatestReport returns the most recently saved report
func (s *ComparisonService) LatestReport(ctx context.Context) (files.FileInfo, error) {
	reports, err := s.ListReports(ctx)
	if err != nil {
		return files.FileInfo{}, err
	}
	latest, ok := files.GetLatestFile(reports)
	if !ok {
		return files.FileInfo{}, apperrors.NewNotFoundError("report")
	}
	return latest, nil
}

// SavePreview writes the per-subject preview CSV to path
func (s *ComparisonService) SavePreview(ctx context.Context, path string, run *comparables.Run) error {
	if run == nil {
		return ErrNilRun
	}
	if err := s.csv.WritePreview(path, run); err != nil {
		return apperrors.NewStorageError("failed to save preview", err).WithContext("path", path)
	}
	s.metrics.RecordReport(ctx, "csv")
	return nil
}

// WritePreview renders the per-subject preview CSV of run to w
func (s *ComparisonService) WritePreview(ctx context.Context, w io.Writer, run *comparables.Run) error {
	if run == nil {
		return ErrNilRun
	}
	if err := exporter.WritePreviewTo(w, run); err != nil {
		return apperrors.NewStorageError("failed to render preview", err)
	}
	s.metrics.RecordReport(ctx, "csv")
	return nil
}

func (s *ComparisonService) reportPath(path, fallback string) string {
	if path != "" {
		return path
	}
	if s.paths != nil {
		return s.paths.GetReportPath(fallback)
	}
	return fallback
}

// Search finds records whose address fuzzy-matches query
func (s *ComparisonService) Search(ctx context.Context, records []domain.PropertyRecord, query string, threshold float64) ([]dataprocessing.AddressMatch, error) {
	if len(records) == 0 {
		return nil, apperrors.NewAppValidationError(ErrEmptyDataset.Error())
	}
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewAppValidationError("query must not be blank")
	}

	matches := dataprocessing.SearchAddresses(records, query, threshold)
	s.logger.DebugContext(ctx, "address search",
		slog.String("query", query),
		slog.Int("matches", len(matches)),
	)
	return matches, nil
}

// PrepareRecords trims text fields and resolves hotel classes of records
// submitted as JSON. It returns the indexes whose class could not be
// resolved.
func PrepareRecords(records []domain.PropertyRecord) []int {
	var unresolved []int
	for i := range records {
		r := &records[i]
		r.Address = strings.TrimSpace(r.Address)
		r.State = strings.TrimSpace(r.State)
		r.County = strings.TrimSpace(r.County)
		r.ProjectName = strings.TrimSpace(r.ProjectName)
		r.OwnerName = strings.TrimSpace(r.OwnerName)
		if !r.ResolveClass() {
			unresolved = append(unresolved, i)
		}
	}
	return unresolved
}

// UnresolvedClassError reports records whose class label is not in the
// vocabulary
func UnresolvedClassError(records []domain.PropertyRecord, indexes []int) error {
	if len(indexes) == 0 {
		return nil
	}
	labels := make([]string, 0, len(indexes))
	for _, i := range indexes {
		labels = append(labels, fmt.Sprintf("records[%d]: %q", i, records[i].ClassLabel))
	}
	return apperrors.NewAppValidationError("unknown hotel class").
		WithContext("records", labels).
		WithContext("allowed", classLabels())
}

func classLabels() []string {
	all := domain.AllHotelClasses()
	labels := make([]string, len(all))
	for i, c := range all {
		labels[i] = c.Label()
	}
	return labels
}
