package dataprocessing

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"hrpulse/pkg/contracts/domain"
)

// Logical sheet names expected in the workbook. Lookup is trim-, case-
// and accent-insensitive, so "férias " still resolves.
const (
	SheetRoster       = "TODOS"
	SheetVacations    = "Férias"
	SheetTerminations = "DESLIGADOS"
)

// Sheet is one loaded worksheet with normalized headers. Rows may be
// shorter than the header row; use Value for bounds-safe access.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Column returns the index of the normalized header name, or -1.
func (s *Sheet) Column(name string) int {
	for i, h := range s.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// ColumnPrefix returns the index of the first header with the given
// prefix, or -1. Used for year-suffixed columns such as
// "previsao_ferias_2025".
func (s *Sheet) ColumnPrefix(prefix string) int {
	for i, h := range s.Headers {
		if strings.HasPrefix(h, prefix) {
			return i
		}
	}
	return -1
}

// Value returns the trimmed cell at col for a row, tolerating short rows.
func (s *Sheet) Value(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// Empty reports whether the sheet holds no data rows.
func (s *Sheet) Empty() bool {
	return len(s.Rows) == 0
}

// SheetSet holds the three logical sheets of one workbook plus the
// warnings collected while loading them.
type SheetSet struct {
	Roster       Sheet
	Vacations    Sheet
	Terminations Sheet
	Warnings     []domain.LoadWarning
}

// LoadWorkbook reads the roster, vacation-schedule and terminations
// sheets from a workbook byte source. Roster and vacations are required;
// a load without either fails outright. A missing terminations sheet
// degrades to an empty table and a warning so the rest of the pipeline
// still runs.
func LoadWorkbook(r io.Reader, logger *slog.Logger) (*SheetSet, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	set := &SheetSet{}

	roster, err := loadSheet(f, SheetRoster)
	if err != nil {
		return nil, err
	}
	set.Roster = *roster

	vacations, err := loadSheet(f, SheetVacations)
	if err != nil {
		return nil, err
	}
	set.Vacations = *vacations

	terminations, err := loadSheet(f, SheetTerminations)
	if err != nil {
		logger.Warn("terminations sheet not found, continuing without it",
			slog.String("sheet", SheetTerminations))
		set.Terminations = Sheet{Name: SheetTerminations}
		set.Warnings = append(set.Warnings, domain.LoadWarning{
			Code:    domain.WarnMissingSheet,
			Sheet:   SheetTerminations,
			Message: fmt.Sprintf("optional sheet %q not found; termination dates will be null", SheetTerminations),
		})
	} else {
		set.Terminations = *terminations
	}

	logger.Info("workbook loaded",
		slog.Int("roster_rows", len(set.Roster.Rows)),
		slog.Int("vacation_rows", len(set.Vacations.Rows)),
		slog.Int("termination_rows", len(set.Terminations.Rows)))

	return set, nil
}

// loadSheet finds a sheet by normalized name and returns it with
// canonical headers. The first row is taken as the header row.
func loadSheet(f *excelize.File, name string) (*Sheet, error) {
	actual, ok := findSheet(f, name)
	if !ok {
		return nil, fmt.Errorf("required sheet %q not found in workbook", name)
	}

	rows, err := f.GetRows(actual)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", actual, err)
	}
	if len(rows) == 0 {
		return &Sheet{Name: name}, nil
	}

	return &Sheet{
		Name:    name,
		Headers: NormalizeHeaders(rows[0]),
		Rows:    rows[1:],
	}, nil
}

func findSheet(f *excelize.File, name string) (string, bool) {
	want := normalizeSheetName(name)
	for _, candidate := range f.GetSheetList() {
		if normalizeSheetName(candidate) == want {
			return candidate, true
		}
	}
	return "", false
}
