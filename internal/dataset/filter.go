package dataset

import (
	"time"

	"hrpulse/pkg/contracts/domain"
)

// predicate is one active filter condition over a single field.
type predicate func(domain.EmployeeRecord) bool

// Apply evaluates a FilterSpec against the canonical table and returns
// the rows satisfying every active predicate. The input slice is never
// mutated; an all-default spec returns a copy of the input. Predicates
// are applied one at a time so an inverted range or a selective set
// short-circuits the remaining work as soon as the candidate set is
// empty.
func Apply(records []domain.EmployeeRecord, spec domain.FilterSpec) []domain.EmployeeRecord {
	out := make([]domain.EmployeeRecord, len(records))
	copy(out, records)

	for _, p := range activePredicates(spec) {
		out = filterBy(out, p)
		if len(out) == 0 {
			break
		}
	}
	return out
}

func filterBy(records []domain.EmployeeRecord, p predicate) []domain.EmployeeRecord {
	kept := records[:0]
	for _, rec := range records {
		if p(rec) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// activePredicates compiles the spec into the list of non-default
// predicates. An empty categorical set means "show all", not "show
// none", so it compiles to nothing.
func activePredicates(spec domain.FilterSpec) []predicate {
	var preds []predicate

	addSet := func(values []string, key func(domain.EmployeeRecord) string) {
		if len(values) == 0 {
			return
		}
		allowed := make(map[string]struct{}, len(values))
		for _, v := range values {
			allowed[v] = struct{}{}
		}
		preds = append(preds, func(rec domain.EmployeeRecord) bool {
			_, ok := allowed[key(rec)]
			return ok
		})
	}

	addSet(spec.Statuses, func(r domain.EmployeeRecord) string { return string(r.Status) })
	addSet(spec.Companies, func(r domain.EmployeeRecord) string { return r.Company })
	addSet(spec.Departments, func(r domain.EmployeeRecord) string { return r.Department })
	addSet(spec.SubDepartments, func(r domain.EmployeeRecord) string { return r.SubDepartment })
	addSet(spec.Roles, func(r domain.EmployeeRecord) string { return r.Role })
	addSet(spec.CostTypes, func(r domain.EmployeeRecord) string { return r.CostType })
	addSet(spec.EducationLevels, func(r domain.EmployeeRecord) string { return r.EducationLevel })
	addSet(spec.Races, func(r domain.EmployeeRecord) string { return r.Race })
	addSet(spec.Genders, func(r domain.EmployeeRecord) string { return r.Gender })
	addSet(spec.HasChildren, func(r domain.EmployeeRecord) string { return r.HasChildren })

	if spec.AgeMin != nil {
		min := *spec.AgeMin
		preds = append(preds, func(r domain.EmployeeRecord) bool {
			return r.Age != nil && *r.Age >= min
		})
	}
	if spec.AgeMax != nil {
		max := *spec.AgeMax
		preds = append(preds, func(r domain.EmployeeRecord) bool {
			return r.Age != nil && *r.Age <= max
		})
	}
	if spec.ChildrenMin != nil {
		min := *spec.ChildrenMin
		preds = append(preds, func(r domain.EmployeeRecord) bool {
			return r.NumberOfChildren >= min
		})
	}
	if spec.ChildrenMax != nil {
		max := *spec.ChildrenMax
		preds = append(preds, func(r domain.EmployeeRecord) bool {
			return r.NumberOfChildren <= max
		})
	}
	if spec.HireDateFrom != nil {
		from := dateOnly(*spec.HireDateFrom)
		preds = append(preds, func(r domain.EmployeeRecord) bool {
			return r.HireDate != nil && !dateOnly(*r.HireDate).Before(from)
		})
	}
	if spec.HireDateTo != nil {
		to := dateOnly(*spec.HireDateTo)
		preds = append(preds, func(r domain.EmployeeRecord) bool {
			return r.HireDate != nil && !dateOnly(*r.HireDate).After(to)
		})
	}

	return preds
}

// dateOnly truncates to the date component; range comparisons ignore
// the time of day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
