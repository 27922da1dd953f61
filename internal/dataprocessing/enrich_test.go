package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpulse/pkg/contracts/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{name: "iso", input: "2020-01-15", want: ptr(date(2020, time.January, 15))},
		{name: "iso with time", input: "2020-01-15 00:00:00", want: ptr(date(2020, time.January, 15))},
		{name: "brazilian", input: "15/01/2020", want: ptr(date(2020, time.January, 15))},
		{name: "short excel style", input: "01-15-20", want: ptr(date(2020, time.January, 15))},
		{name: "serial number", input: "43845", want: ptr(date(2020, time.January, 15))},
		{name: "garbage", input: "n/a", want: nil},
		{name: "empty", input: "", want: nil},
		{name: "whitespace", input: "   ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDate(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %v got %v", tt.want, got)
		})
	}
}

func TestExtractAge(t *testing.T) {
	tests := []struct {
		input string
		want  *int
	}{
		{"35", intPtr(35)},
		{"35 anos", intPtr(35)},
		{"idade: 42", intPtr(42)},
		{"sem registro", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := extractAge(tt.input)
		if tt.want == nil {
			assert.Nil(t, got, "input %q", tt.input)
		} else {
			require.NotNil(t, got, "input %q", tt.input)
			assert.Equal(t, *tt.want, *got)
		}
	}
}

func TestParseChildrenCount(t *testing.T) {
	assert.Equal(t, 0, parseChildrenCount(""))
	assert.Equal(t, 0, parseChildrenCount("n/a"))
	assert.Equal(t, 2, parseChildrenCount("2"))
	assert.Equal(t, 3, parseChildrenCount("3.0"))
	assert.Equal(t, 0, parseChildrenCount("-1"))
}

func TestCalendarDiff(t *testing.T) {
	tests := []struct {
		name                string
		from, to            time.Time
		years, months, days int
	}{
		{"exact years", date(2020, time.January, 15), date(2025, time.January, 15), 5, 0, 0},
		{"day borrow", date(2020, time.January, 31), date(2020, time.March, 1), 0, 1, 1},
		{"month borrow", date(2020, time.November, 10), date(2021, time.February, 10), 0, 3, 0},
		{"full decomposition", date(2020, time.January, 15), date(2026, time.August, 28), 6, 7, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m, d := calendarDiff(tt.from, tt.to)
			assert.Equal(t, tt.years, y)
			assert.Equal(t, tt.months, m)
			assert.Equal(t, tt.days, d)
		})
	}
}

func TestTenureSince(t *testing.T) {
	got := tenureSince(date(2020, time.January, 15), date(2026, time.August, 28))
	assert.Equal(t, "6 years, 7 months, 13 days", got)
}

func TestEnrichRecord(t *testing.T) {
	now := date(2026, time.August, 28)
	rec := map[string]string{
		colEmployeeID:       "101",
		colName:             "Ana Souza",
		colStatus:           "ACTIVE",
		colCompany:          "X",
		colDepartment:       "MAMUTENÇÃO",
		colRole:             "Analista",
		colHireDate:         "2020-01-15",
		colBirthDate:        "15/03/1990",
		colAge:              "35 anos",
		colHasChildren:      "sim",
		colChildrenCount:    "2",
		colVacationForecast: "3",
		colVacationDeadline: "2025-06-30",
	}

	out := enrichRecord(rec, now, DefaultDepartmentFixes)

	assert.Equal(t, "Ana Souza", out.Name)
	assert.Equal(t, domain.StatusActive, out.Status)
	// Known typo corrected through the lookup table.
	assert.Equal(t, "MANUTENÇÃO", out.Department)
	// Missing text fields get the sentinel.
	assert.Equal(t, domain.NotInformed, out.SubDepartment)
	assert.Equal(t, domain.NotInformed, out.CostType)
	assert.Equal(t, domain.NotInformed, out.Gender)
	assert.Equal(t, "SIM", out.HasChildren)
	assert.Equal(t, 2, out.NumberOfChildren)
	require.NotNil(t, out.Age)
	assert.Equal(t, 35, *out.Age)
	require.NotNil(t, out.HireDate)
	assert.True(t, out.HireDate.Equal(date(2020, time.January, 15)))
	require.NotNil(t, out.BirthDate)
	require.NotNil(t, out.VacationForecastMonth)
	assert.Equal(t, 3, *out.VacationForecastMonth)
	require.NotNil(t, out.TenureText)
	assert.Equal(t, "6 years, 7 months, 13 days", *out.TenureText)
	assert.Nil(t, out.TerminationDate)
}

func TestEnrichRecordUnparsableHireDate(t *testing.T) {
	out := enrichRecord(map[string]string{
		colName:     "Caio",
		colHireDate: "n/a",
	}, date(2026, time.August, 28), nil)

	assert.Nil(t, out.HireDate)
	assert.Nil(t, out.TenureText)
	assert.Equal(t, 0, out.NumberOfChildren)
	assert.Nil(t, out.Age)
}

func TestEnrichRecordVacationMonthOutOfRange(t *testing.T) {
	out := enrichRecord(map[string]string{
		colName:             "Caio",
		colVacationForecast: "13",
	}, date(2026, time.August, 28), nil)
	assert.Nil(t, out.VacationForecastMonth)
}

func TestDropSensitive(t *testing.T) {
	records := []map[string]string{
		{"nome": "Ana", "cpf": "123.456.789-00", "rg": "MG-1"},
		{"nome": "Beto"},
	}
	dropSensitive(records)
	for _, rec := range records {
		assert.NotContains(t, rec, "cpf")
		assert.NotContains(t, rec, "rg")
	}
}

func ptr(t time.Time) *time.Time { return &t }
func intPtr(n int) *int          { return &n }
