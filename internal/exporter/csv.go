package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"hrpulse/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize UTF-8 output; the exported data carries
// accented Portuguese text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EmployeeHeaders is the fixed CSV header row, matching the canonical
// field names one to one.
var EmployeeHeaders = []string{
	"employee_id",
	"name",
	"status",
	"company",
	"department",
	"sub_department",
	"role",
	"cost_type",
	"hire_date",
	"birth_date",
	"termination_date",
	"vacation_forecast_month",
	"vacation_deadline",
	"age",
	"gender",
	"race",
	"education_level",
	"has_children",
	"number_of_children",
	"tenure_text",
}

// EmployeeRow serializes one record in EmployeeHeaders order. Null
// fields serialize as empty cells, dates as 2006-01-02.
func EmployeeRow(rec domain.EmployeeRecord) []string {
	return []string{
		rec.EmployeeID,
		rec.Name,
		string(rec.Status),
		rec.Company,
		rec.Department,
		rec.SubDepartment,
		rec.Role,
		rec.CostType,
		formatDate(rec.HireDate),
		formatDate(rec.BirthDate),
		formatDate(rec.TerminationDate),
		formatInt(rec.VacationForecastMonth),
		formatDate(rec.VacationDeadline),
		formatInt(rec.Age),
		rec.Gender,
		rec.Race,
		rec.EducationLevel,
		rec.HasChildren,
		strconv.Itoa(rec.NumberOfChildren),
		formatString(rec.TenureText),
	}
}

// Options configures CSV output.
type Options struct {
	// BOMPrefix prepends a UTF-8 BOM for Excel compatibility.
	BOMPrefix bool
}

// WriteRecords writes the header row and one CSV row per record.
func WriteRecords(w io.Writer, records []domain.EmployeeRecord, opts Options) error {
	if opts.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(EmployeeHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(EmployeeRow(rec)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the records to a CSV file, creating the parent
// directory if needed.
func WriteFile(path string, records []domain.EmployeeRecord, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteRecords(file, records, opts); err != nil {
		return err
	}
	return file.Close()
}

// StreamWriter writes records one at a time for large exports.
type StreamWriter struct {
	writer *csv.Writer
}

// NewStreamWriter writes the BOM and header row up front and returns a
// writer for the data rows.
func NewStreamWriter(w io.Writer, opts Options) (*StreamWriter, error) {
	if opts.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return nil, fmt.Errorf("failed to write BOM: %w", err)
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(EmployeeHeaders); err != nil {
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}
	return &StreamWriter{writer: cw}, nil
}

// Write appends one record.
func (s *StreamWriter) Write(rec domain.EmployeeRecord) error {
	return s.writer.Write(EmployeeRow(rec))
}

// Flush flushes buffered rows and reports any write error.
func (s *StreamWriter) Flush() error {
	s.writer.Flush()
	return s.writer.Error()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
