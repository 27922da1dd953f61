// Package services holds the application services behind the HTTP
// handlers: workbook ingestion with snapshot caching, dashboard
// queries, and health reporting.
package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"hrpulse/internal/dataprocessing"
	"hrpulse/internal/dataset"
	"hrpulse/internal/exporter"
	"hrpulse/pkg/contracts/domain"
)

// ErrSnapshotNotFound is returned when a dataset ID has no cached snapshot.
var ErrSnapshotNotFound = errors.New("dataset snapshot not found")

// Snapshot is a fully processed workbook held in memory. Records are
// immutable once built; query methods copy before filtering.
type Snapshot struct {
	ID       string                  `json:"id"`
	LoadedAt time.Time               `json:"loaded_at"`
	Records  []domain.EmployeeRecord `json:"-"`
	Warnings []domain.LoadWarning    `json:"warnings"`
	JoinKey  domain.JoinStrategy     `json:"termination_join_key"`
}

// DashboardService ingests workbooks through the processing pipeline
// and serves filtered views over the cached snapshots. Snapshots are
// keyed by the SHA-256 of the workbook content, so re-uploading the
// same file is a cache hit.
type DashboardService struct {
	pipeline *dataprocessing.Pipeline
	logger   *slog.Logger

	mu        sync.RWMutex
	snapshots map[string]*Snapshot
	group     singleflight.Group
}

// NewDashboardService creates a dashboard service around a pipeline.
func NewDashboardService(pipeline *dataprocessing.Pipeline, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		pipeline:  pipeline,
		logger:    logger,
		snapshots: make(map[string]*Snapshot),
	}
}

// Ingest builds a snapshot from workbook content. Concurrent uploads
// of the same content share one pipeline run.
func (s *DashboardService) Ingest(ctx context.Context, workbook []byte) (*Snapshot, error) {
	sum := sha256.Sum256(workbook)
	id := hex.EncodeToString(sum[:16])

	s.mu.RLock()
	cached, ok := s.snapshots[id]
	s.mu.RUnlock()
	if ok {
		s.logger.InfoContext(ctx, "snapshot cache hit", slog.String("dataset_id", id))
		return cached, nil
	}

	v, err, shared := s.group.Do(id, func() (interface{}, error) {
		result, err := s.pipeline.Build(bytes.NewReader(workbook))
		if err != nil {
			return nil, fmt.Errorf("building snapshot: %w", err)
		}

		snapshot := &Snapshot{
			ID:       id,
			LoadedAt: result.LoadedAt,
			Records:  result.Records,
			Warnings: result.Warnings,
			JoinKey:  result.TerminationJoin,
		}

		s.mu.Lock()
		s.snapshots[id] = snapshot
		s.mu.Unlock()

		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}

	snapshot := v.(*Snapshot)
	s.logger.InfoContext(ctx, "snapshot built",
		slog.String("dataset_id", id),
		slog.Int("records", len(snapshot.Records)),
		slog.Int("warnings", len(snapshot.Warnings)),
		slog.Bool("deduplicated", shared),
	)
	return snapshot, nil
}

// IngestReader reads the workbook fully and delegates to Ingest.
func (s *DashboardService) IngestReader(ctx context.Context, r io.Reader) (*Snapshot, error) {
	workbook, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}
	return s.Ingest(ctx, workbook)
}

// Snapshot returns the cached snapshot for a dataset ID.
func (s *DashboardService) Snapshot(id string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return snapshot, nil
}

// Invalidate drops a cached snapshot. It reports whether one existed.
func (s *DashboardService) Invalidate(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.snapshots[id]
	delete(s.snapshots, id)
	return ok
}

// Records returns the snapshot's records narrowed by the filter.
func (s *DashboardService) Records(id string, filter domain.FilterSpec) ([]domain.EmployeeRecord, error) {
	snapshot, err := s.Snapshot(id)
	if err != nil {
		return nil, err
	}
	return dataset.Apply(snapshot.Records, filter), nil
}

// Summary returns headcount KPIs over the filtered records.
func (s *DashboardService) Summary(id string, filter domain.FilterSpec) (domain.HeadcountSummary, error) {
	records, err := s.Records(id, filter)
	if err != nil {
		return domain.HeadcountSummary{}, err
	}
	return dataset.HeadcountKPIs(records), nil
}

// Frequency returns a category frequency table for a field over the
// filtered records. Education level tables keep their canonical order.
func (s *DashboardService) Frequency(id, field string, filter domain.FilterSpec) ([]domain.CategoryCount, error) {
	if !dataset.KnownField(field) {
		return nil, fmt.Errorf("%w: %q", dataset.ErrUnknownField, field)
	}
	records, err := s.Records(id, filter)
	if err != nil {
		return nil, err
	}

	var ordering []string
	if field == dataset.FieldEducationLevel {
		ordering = domain.EducationLevels
	}
	return dataset.CategoryFrequency(records, field, ordering)
}

// Companies returns the unique employee count per company over the
// filtered records.
func (s *DashboardService) Companies(id string, filter domain.FilterSpec) ([]domain.GroupCount, error) {
	records, err := s.Records(id, filter)
	if err != nil {
		return nil, err
	}
	return dataset.GroupedUniqueCount(records, dataset.FieldCompany, dataset.FieldName)
}

// Calendar returns birthdays and vacation forecasts for a month (1-12)
// over the filtered records.
func (s *DashboardService) Calendar(id string, month int, filter domain.FilterSpec) (domain.CalendarReport, error) {
	if month < 1 || month > 12 {
		return domain.CalendarReport{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	records, err := s.Records(id, filter)
	if err != nil {
		return domain.CalendarReport{}, err
	}
	return domain.CalendarReport{
		Month:     month,
		Birthdays: dataset.BirthdaysInMonth(records, month),
		Vacations: dataset.VacationsInMonth(records, month),
	}, nil
}

// MonthlyHires returns hire counts per calendar month over the
// filtered records.
func (s *DashboardService) MonthlyHires(id string, filter domain.FilterSpec) ([]domain.MonthlyCount, error) {
	records, err := s.Records(id, filter)
	if err != nil {
		return nil, err
	}
	return dataset.MonthlyHires(records), nil
}

// ExportCSV streams the filtered records as CSV to w.
func (s *DashboardService) ExportCSV(id string, filter domain.FilterSpec, w io.Writer) error {
	records, err := s.Records(id, filter)
	if err != nil {
		return err
	}
	return exporter.WriteRecords(w, records, exporter.Options{BOMPrefix: true})
}

// SnapshotIDs lists the cached dataset IDs, sorted.
func (s *DashboardService) SnapshotIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
