package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpulse/pkg/contracts/domain"
)

func sampleRecords() []domain.EmployeeRecord {
	hire := time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)
	tenure := "6 years, 7 months, 13 days"
	age := 35
	month := 3
	return []domain.EmployeeRecord{
		{
			EmployeeID: "101", Name: "Ana", Status: domain.StatusActive,
			Company: "X", Department: "MANUTENÇÃO", SubDepartment: domain.NotInformed,
			Role: "Analista", CostType: "Direto",
			HireDate: &hire, VacationForecastMonth: &month,
			Age: &age, Gender: "F", Race: "Parda",
			EducationLevel: "Superior Completo", HasChildren: "SIM",
			NumberOfChildren: 2, TenureText: &tenure,
		},
		{
			Name: "Caio", Status: domain.StatusActive, Company: "Y",
			Department: domain.NotInformed, SubDepartment: domain.NotInformed,
			Role: domain.NotInformed, CostType: domain.NotInformed,
			Gender: "M", Race: domain.NotInformed,
			EducationLevel: "Fundamental", HasChildren: domain.NotInformed,
			EmployeeID: domain.NotInformed,
		},
	}
}

func TestWriteRecordsRoundTrip(t *testing.T) {
	records := sampleRecords()

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, records, Options{BOMPrefix: true}))

	// Strip the BOM before parsing back.
	data := bytes.TrimPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF})
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, len(records)+1)
	assert.Equal(t, EmployeeHeaders, rows[0])

	for i, rec := range records {
		assert.Equal(t, EmployeeRow(rec), rows[i+1], "row %d", i)
	}

	// Spot-check formatting of typed fields.
	header := indexOf(rows[0])
	assert.Equal(t, "2020-01-15", rows[1][header["hire_date"]])
	assert.Equal(t, "3", rows[1][header["vacation_forecast_month"]])
	assert.Equal(t, "2", rows[1][header["number_of_children"]])
	assert.Equal(t, "", rows[2][header["hire_date"]])
	assert.Equal(t, "", rows[2][header["age"]])
	assert.Equal(t, "0", rows[2][header["number_of_children"]])
}

func TestWriteRecordsWithoutBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, nil, Options{}))
	assert.False(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "employees.csv")
	require.NoError(t, WriteFile(path, sampleRecords(), Options{BOMPrefix: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestStreamWriter(t *testing.T) {
	var buf bytes.Buffer
	sw, err := NewStreamWriter(&buf, Options{})
	require.NoError(t, err)

	for _, rec := range sampleRecords() {
		require.NoError(t, sw.Write(rec))
	}
	require.NoError(t, sw.Flush())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func indexOf(header []string) map[string]int {
	out := make(map[string]int, len(header))
	for i, h := range header {
		out[h] = i
	}
	return out
}
