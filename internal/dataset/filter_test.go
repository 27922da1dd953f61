package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpulse/pkg/contracts/domain"
)

func intPtr(n int) *int { return &n }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleRecords() []domain.EmployeeRecord {
	return []domain.EmployeeRecord{
		{
			Name: "Ana", Status: domain.StatusActive, Company: "X",
			Department: "Comercial", Gender: "F", Age: intPtr(35),
			NumberOfChildren: 2, HasChildren: "SIM",
			HireDate: datePtr(2020, time.January, 15),
		},
		{
			Name: "Beto", Status: domain.StatusTerminated, Company: "X",
			Department: "MANUTENÇÃO", Gender: "M", Age: intPtr(41),
			NumberOfChildren: 0, HasChildren: "NÃO",
			HireDate: datePtr(2021, time.June, 1),
		},
		{
			Name: "Caio", Status: domain.StatusActive, Company: "Y",
			Department: "Administrativo", Gender: "M", Age: nil,
			NumberOfChildren: 0, HasChildren: domain.NotInformed,
			HireDate: nil,
		},
	}
}

func names(records []domain.EmployeeRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestApplyIdentity(t *testing.T) {
	records := sampleRecords()
	got := Apply(records, domain.FilterSpec{})

	assert.Equal(t, records, got)
	// The result is a copy, never the canonical slice itself.
	require.Len(t, got, len(records))
	got[0].Name = "mutated"
	assert.Equal(t, "Ana", records[0].Name)
}

func TestApplyStatusMembership(t *testing.T) {
	got := Apply(sampleRecords(), domain.FilterSpec{Statuses: []string{"ACTIVE"}})
	assert.Equal(t, []string{"Ana", "Caio"}, names(got))
}

func TestApplyConjunction(t *testing.T) {
	got := Apply(sampleRecords(), domain.FilterSpec{
		Statuses:  []string{"ACTIVE"},
		Companies: []string{"X"},
	})
	assert.Equal(t, []string{"Ana"}, names(got))
}

func TestApplyAgeRange(t *testing.T) {
	// Null ages never satisfy a numeric range predicate.
	got := Apply(sampleRecords(), domain.FilterSpec{AgeMin: intPtr(30), AgeMax: intPtr(40)})
	assert.Equal(t, []string{"Ana"}, names(got))
}

func TestApplyChildrenRange(t *testing.T) {
	got := Apply(sampleRecords(), domain.FilterSpec{ChildrenMin: intPtr(1)})
	assert.Equal(t, []string{"Ana"}, names(got))

	got = Apply(sampleRecords(), domain.FilterSpec{ChildrenMax: intPtr(0)})
	assert.Equal(t, []string{"Beto", "Caio"}, names(got))
}

func TestApplyHireDateRange(t *testing.T) {
	got := Apply(sampleRecords(), domain.FilterSpec{
		HireDateFrom: datePtr(2020, time.January, 1),
		HireDateTo:   datePtr(2020, time.December, 31),
	})
	assert.Equal(t, []string{"Ana"}, names(got))
}

func TestApplyHireDateRangeIgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2020, time.January, 15, 23, 59, 0, 0, time.UTC)
	got := Apply(sampleRecords(), domain.FilterSpec{HireDateFrom: &from})
	assert.Equal(t, []string{"Ana", "Beto"}, names(got))
}

func TestApplyInvertedRangeYieldsEmpty(t *testing.T) {
	got := Apply(sampleRecords(), domain.FilterSpec{AgeMin: intPtr(50), AgeMax: intPtr(20)})
	assert.Empty(t, got)
}

func TestApplyMonotonicity(t *testing.T) {
	records := sampleRecords()
	base := domain.FilterSpec{Statuses: []string{"ACTIVE"}}
	narrower := domain.FilterSpec{Statuses: []string{"ACTIVE"}, Companies: []string{"X"}}
	narrowest := domain.FilterSpec{Statuses: []string{"ACTIVE"}, Companies: []string{"X"}, Genders: []string{"M"}}

	n0 := len(Apply(records, domain.FilterSpec{}))
	n1 := len(Apply(records, base))
	n2 := len(Apply(records, narrower))
	n3 := len(Apply(records, narrowest))

	assert.GreaterOrEqual(t, n0, n1)
	assert.GreaterOrEqual(t, n1, n2)
	assert.GreaterOrEqual(t, n2, n3)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	Apply(records, domain.FilterSpec{Statuses: []string{"TERMINATED"}})
	assert.Equal(t, sampleRecords(), records)
}

func TestFilterSpecIsZero(t *testing.T) {
	assert.True(t, domain.FilterSpec{}.IsZero())
	assert.False(t, domain.FilterSpec{Genders: []string{"F"}}.IsZero())
	assert.False(t, domain.FilterSpec{AgeMin: intPtr(1)}.IsZero())
}
