package dataprocessing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hrpulse/pkg/contracts/domain"
)

// Roster column names after normalization. The export keeps the source's
// Portuguese naming, so these are what LoadWorkbook actually produces.
const (
	colStatus        = "status"
	colCompany       = "empresa"
	colDepartment    = "setor"
	colSubDepartment = "sub_setor"
	colRole          = "funcao"
	colCostType      = "custo"
	colHireDate      = "admissao"
	colBirthDate     = "data_de_nasc."
	colAge           = "idade"
	colGender        = "sexo"
	colRace          = "raca"
	colEducation     = "nivel_escolaridade"
	colHasChildren   = "filho(s)"
	colChildrenCount = "quantos"
)

// sensitiveColumns are national-identifier columns that must never reach
// the canonical table. Dropping them is a no-op when absent.
var sensitiveColumns = []string{"cpf", "rg"}

// DefaultDepartmentFixes corrects known misspellings in the department
// column. This is a data-quality patch for the source dataset, kept as a
// lookup table so further corrections need no code change.
var DefaultDepartmentFixes = map[string]string{
	"MAMUTENÇÃO": "MANUTENÇÃO",
}

var digitRun = regexp.MustCompile(`\d+`)

// dateLayouts are tried in order when coercing cell text to a date.
// ISO first, then the day-first forms the source uses, then the short
// month-first form excelize renders for date-styled cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"01-02-06",
	"1/2/06",
}

// excelEpoch is day zero of the 1900 date system used by xlsx serials.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseDate coerces free-form cell text to a date. Unparsable input
// resolves to nil, never an error; coercion failures are a per-field
// concern and must not abort the row.
func parseDate(value string) *time.Time {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t
		}
	}
	// Raw serial number, e.g. "45678" for an unstyled date cell.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t := excelEpoch.AddDate(0, 0, int(serial))
		return &t
	}
	return nil
}

// extractAge pulls the first contiguous digit run out of a free-text age
// field ("35 anos" -> 35). Nil when no digits are present.
func extractAge(value string) *int {
	match := digitRun.FindString(value)
	if match == "" {
		return nil
	}
	age, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &age
}

// parseChildrenCount coerces the children-count cell to a non-negative
// integer, defaulting to zero on null or malformed input.
func parseChildrenCount(value string) int {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return int(f)
	}
	return 0
}

// tenureSince renders the calendar-aware elapsed time between hire and
// now, truncated to whole years, months and days.
func tenureSince(hire, now time.Time) string {
	years, months, days := calendarDiff(hire, now)
	return fmt.Sprintf("%d years, %d months, %d days", years, months, days)
}

// calendarDiff decomposes the difference between two dates into whole
// years, months and days using real month lengths, not a fixed 30-day
// month. Days are measured from the anchor date `from` shifted by the
// whole months, with month-end clamping (Jan 31 plus one month anchors
// at the last day of February).
func calendarDiff(from, to time.Time) (years, months, days int) {
	total := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		total--
	}
	years, months = total/12, total%12

	anchor := addMonthsClamped(from, total)
	days = int(to.Sub(anchor).Hours() / 24)
	return years, months, days
}

// addMonthsClamped shifts a date by whole months, clamping the day to
// the target month's length instead of normalizing into the next month.
func addMonthsClamped(t time.Time, months int) time.Time {
	monthIndex := t.Year()*12 + int(t.Month()) - 1 + months
	year, month := monthIndex/12, time.Month(monthIndex%12+1)

	day := t.Day()
	if last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day(); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// dropSensitive removes sensitive identifier columns from the raw
// records before any of them can be mapped onto the canonical table.
func dropSensitive(records []map[string]string) {
	for _, rec := range records {
		for _, col := range sensitiveColumns {
			delete(rec, col)
		}
	}
}

// enrichRecord maps one joined raw record onto an EmployeeRecord. Each
// transformation is independent: text nulls become the sentinel, numbers
// and dates coerce tolerantly, and the derived tenure text is computed
// against the supplied reference date.
func enrichRecord(rec map[string]string, now time.Time, departmentFixes map[string]string) domain.EmployeeRecord {
	text := func(col string) string {
		if v := strings.TrimSpace(rec[col]); v != "" {
			return v
		}
		return domain.NotInformed
	}

	department := text(colDepartment)
	if fixed, ok := departmentFixes[department]; ok {
		department = fixed
	}

	out := domain.EmployeeRecord{
		EmployeeID:       text(colEmployeeID),
		Name:             text(colName),
		Status:           domain.EmploymentStatus(text(colStatus)),
		Company:          text(colCompany),
		Department:       department,
		SubDepartment:    text(colSubDepartment),
		Role:             text(colRole),
		CostType:         text(colCostType),
		Gender:           text(colGender),
		Race:             text(colRace),
		EducationLevel:   text(colEducation),
		HasChildren:      strings.ToUpper(text(colHasChildren)),
		NumberOfChildren: parseChildrenCount(rec[colChildrenCount]),
		Age:              extractAge(rec[colAge]),
		HireDate:         parseDate(rec[colHireDate]),
		BirthDate:        parseDate(rec[colBirthDate]),
		TerminationDate:  parseDate(rec[colTerminationDate]),
		VacationDeadline: parseDate(rec[colVacationDeadline]),
	}

	if raw := strings.TrimSpace(rec[colVacationForecast]); raw != "" {
		if month, err := strconv.Atoi(raw); err == nil && month >= 1 && month <= 12 {
			out.VacationForecastMonth = &month
		}
	}

	if out.HireDate != nil {
		tenure := tenureSince(*out.HireDate, now)
		out.TenureText = &tenure
	}

	return out
}
