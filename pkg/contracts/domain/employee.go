package domain

import (
	"time"
)

// NotInformed is the sentinel substituted for missing text data during
// enrichment. After the pipeline runs, no text field of an EmployeeRecord
// is ever empty.
const NotInformed = "NOT INFORMED"

// EmployeeRecord is one row of the canonical table: the cleaned, joined
// and enriched view of a roster entry. The canonical table is immutable
// once built; filtering always produces new slices.
type EmployeeRecord struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Name       string `json:"name" validate:"required"`

	Status        EmploymentStatus `json:"status"`
	Company       string           `json:"company"`
	Department    string           `json:"department"`
	SubDepartment string           `json:"sub_department"`
	Role          string           `json:"role"`
	CostType      string           `json:"cost_type"`

	HireDate              *time.Time `json:"hire_date,omitempty"`
	BirthDate             *time.Time `json:"birth_date,omitempty"`
	TerminationDate       *time.Time `json:"termination_date,omitempty"`
	VacationForecastMonth *int       `json:"vacation_forecast_month,omitempty" validate:"omitempty,min=1,max=12"`
	VacationDeadline      *time.Time `json:"vacation_deadline,omitempty"`

	Age              *int   `json:"age,omitempty" validate:"omitempty,min=0"`
	Gender           string `json:"gender"`
	Race             string `json:"race"`
	EducationLevel   string `json:"education_level"`
	HasChildren      string `json:"has_children"`
	NumberOfChildren int    `json:"number_of_children" validate:"min=0"`

	// TenureText summarizes elapsed years/months/days since HireDate.
	// Nil exactly when HireDate is nil.
	TenureText *string `json:"tenure_text,omitempty"`
}

// EmploymentStatus is the employment state as recorded in the roster.
// The set is closed for the values the dashboard reasons about; unknown
// source values pass through unchanged.
type EmploymentStatus string

const (
	StatusActive     EmploymentStatus = "ACTIVE"
	StatusProbation  EmploymentStatus = "PROBATION"
	StatusTerminated EmploymentStatus = "TERMINATED"
)

// EducationLevels is the ordered education-level domain, lowest first.
// Frequency tables sort by this ordering and include unobserved levels
// with a zero count.
var EducationLevels = []string{
	"Fundamental",
	"Médio",
	"Superior Incompleto",
	"Superior Completo",
	"Pós-graduação",
}
