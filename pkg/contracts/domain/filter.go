package domain

import (
	"time"
)

// FilterSpec is the full set of predicates for one query against the
// canonical table. A nil bound or empty set means the predicate is
// inactive; an entirely zero spec is the identity filter. Specs are
// stateless and rebuilt per interaction.
type FilterSpec struct {
	Statuses        []string `json:"statuses,omitempty"`
	Companies       []string `json:"companies,omitempty"`
	Departments     []string `json:"departments,omitempty"`
	SubDepartments  []string `json:"sub_departments,omitempty"`
	Roles           []string `json:"roles,omitempty"`
	CostTypes       []string `json:"cost_types,omitempty"`
	EducationLevels []string `json:"education_levels,omitempty"`
	Races           []string `json:"races,omitempty"`
	Genders         []string `json:"genders,omitempty"`
	HasChildren     []string `json:"has_children,omitempty"`

	AgeMin      *int `json:"age_min,omitempty" validate:"omitempty,min=0"`
	AgeMax      *int `json:"age_max,omitempty" validate:"omitempty,min=0"`
	ChildrenMin *int `json:"children_min,omitempty" validate:"omitempty,min=0"`
	ChildrenMax *int `json:"children_max,omitempty" validate:"omitempty,min=0"`

	// Hire-date range, compared on the date component only.
	HireDateFrom *time.Time `json:"hire_date_from,omitempty"`
	HireDateTo   *time.Time `json:"hire_date_to,omitempty"`
}

// IsZero reports whether no predicate is active.
func (f FilterSpec) IsZero() bool {
	return len(f.Statuses) == 0 &&
		len(f.Companies) == 0 &&
		len(f.Departments) == 0 &&
		len(f.SubDepartments) == 0 &&
		len(f.Roles) == 0 &&
		len(f.CostTypes) == 0 &&
		len(f.EducationLevels) == 0 &&
		len(f.Races) == 0 &&
		len(f.Genders) == 0 &&
		len(f.HasChildren) == 0 &&
		f.AgeMin == nil && f.AgeMax == nil &&
		f.ChildrenMin == nil && f.ChildrenMax == nil &&
		f.HireDateFrom == nil && f.HireDateTo == nil
}
