package dataprocessing

import (
	"io"
	"log/slog"
	"time"

	"hrpulse/pkg/contracts/domain"
)

// Pipeline turns a loosely-structured workbook into the canonical
// employee table: load and normalize the sheets, resolve the vacation
// and termination joins, then enrich field by field. Recoverable
// conditions accumulate as warnings on the Result; only a missing
// required sheet or an unreadable workbook fails the build.
type Pipeline struct {
	logger          *slog.Logger
	now             func() time.Time
	departmentFixes map[string]string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithNow overrides the reference date used for tenure computation.
func WithNow(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithDepartmentFixes replaces the known-typo correction table.
func WithDepartmentFixes(fixes map[string]string) Option {
	return func(p *Pipeline) { p.departmentFixes = fixes }
}

// NewPipeline creates a pipeline with the default typo table and wall
// clock.
func NewPipeline(logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		logger:          logger.With(slog.String("component", "pipeline")),
		now:             time.Now,
		departmentFixes: DefaultDepartmentFixes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is one built canonical table plus the load diagnostics.
type Result struct {
	Records         []domain.EmployeeRecord `json:"records"`
	Warnings        []domain.LoadWarning    `json:"warnings,omitempty"`
	TerminationJoin domain.JoinStrategy     `json:"termination_join"`
	LoadedAt        time.Time               `json:"loaded_at"`
}

// Build runs the full pipeline over a workbook byte source. The returned
// record count always equals the roster row count: both joins preserve
// every roster row.
func (p *Pipeline) Build(r io.Reader) (*Result, error) {
	set, err := LoadWorkbook(r, p.logger)
	if err != nil {
		return nil, err
	}

	records := sheetRecords(&set.Roster)
	warnings := set.Warnings

	warnings = append(warnings, joinVacations(records, &set.Vacations)...)

	strategy, termWarnings := joinTerminations(records, &set.Roster, &set.Terminations)
	warnings = append(warnings, termWarnings...)

	dropSensitive(records)

	// Tenure compares date components only; drop the time of day.
	now := p.now()
	now = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	enriched := make([]domain.EmployeeRecord, 0, len(records))
	for _, rec := range records {
		enriched = append(enriched, enrichRecord(rec, now, p.departmentFixes))
	}

	p.logger.Info("canonical table built",
		slog.Int("rows", len(enriched)),
		slog.Int("warnings", len(warnings)),
		slog.String("termination_join", string(strategy)))

	return &Result{
		Records:         enriched,
		Warnings:        warnings,
		TerminationJoin: strategy,
		LoadedAt:        now,
	}, nil
}
