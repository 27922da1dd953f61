package dataset

import (
	"errors"
	"fmt"
	"sort"

	"hrpulse/pkg/contracts/domain"
)

// ErrUnknownField is returned by the aggregation helpers when asked to
// group or count by a field name outside the Field* set. Wrapped errors
// match with errors.Is.
var ErrUnknownField = errors.New("unknown field")

// Field names accepted by the aggregation helpers.
const (
	FieldName           = "name"
	FieldStatus         = "status"
	FieldCompany        = "company"
	FieldDepartment     = "department"
	FieldSubDepartment  = "sub_department"
	FieldRole           = "role"
	FieldCostType       = "cost_type"
	FieldEducationLevel = "education_level"
	FieldRace           = "race"
	FieldGender         = "gender"
	FieldHasChildren    = "has_children"
)

// fieldValue extracts a categorical field by name. Unknown fields report
// false so callers can reject them before aggregating.
func fieldValue(rec domain.EmployeeRecord, field string) (string, bool) {
	switch field {
	case FieldName:
		return rec.Name, true
	case FieldStatus:
		return string(rec.Status), true
	case FieldCompany:
		return rec.Company, true
	case FieldDepartment:
		return rec.Department, true
	case FieldSubDepartment:
		return rec.SubDepartment, true
	case FieldRole:
		return rec.Role, true
	case FieldCostType:
		return rec.CostType, true
	case FieldEducationLevel:
		return rec.EducationLevel, true
	case FieldRace:
		return rec.Race, true
	case FieldGender:
		return rec.Gender, true
	case FieldHasChildren:
		return rec.HasChildren, true
	default:
		return "", false
	}
}

// KnownField reports whether field is a recognized categorical field.
func KnownField(field string) bool {
	_, ok := fieldValue(domain.EmployeeRecord{}, field)
	return ok
}

// GroupedUniqueCount counts distinct values of valueField per distinct
// value of groupField, e.g. unique employee names per company. Rows with
// repeated values inside a group count once. The result is sorted by
// group for determinism.
func GroupedUniqueCount(records []domain.EmployeeRecord, groupField, valueField string) ([]domain.GroupCount, error) {
	if !KnownField(groupField) {
		return nil, fmt.Errorf("%w: group field %q", ErrUnknownField, groupField)
	}
	if !KnownField(valueField) {
		return nil, fmt.Errorf("%w: value field %q", ErrUnknownField, valueField)
	}

	seen := make(map[string]map[string]struct{})
	for _, rec := range records {
		group, _ := fieldValue(rec, groupField)
		value, _ := fieldValue(rec, valueField)
		if seen[group] == nil {
			seen[group] = make(map[string]struct{})
		}
		seen[group][value] = struct{}{}
	}

	out := make([]domain.GroupCount, 0, len(seen))
	for group, values := range seen {
		out = append(out, domain.GroupCount{Group: group, Count: len(values)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out, nil
}

// CategoryFrequency counts rows per distinct value of field. Without an
// ordering the result is sorted by descending count then category; with
// an explicit ordering the rows follow it and unobserved categories
// appear with a zero count, ahead of any categories outside the
// ordering.
func CategoryFrequency(records []domain.EmployeeRecord, field string, ordering []string) ([]domain.CategoryCount, error) {
	if !KnownField(field) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	counts := make(map[string]int)
	for _, rec := range records {
		value, _ := fieldValue(rec, field)
		counts[value]++
	}

	out := make([]domain.CategoryCount, 0, len(counts))
	if len(ordering) > 0 {
		listed := make(map[string]struct{}, len(ordering))
		for _, category := range ordering {
			listed[category] = struct{}{}
			out = append(out, domain.CategoryCount{Category: category, Count: counts[category]})
		}
		var extra []string
		for category := range counts {
			if _, ok := listed[category]; !ok {
				extra = append(extra, category)
			}
		}
		sort.Strings(extra)
		for _, category := range extra {
			out = append(out, domain.CategoryCount{Category: category, Count: counts[category]})
		}
	} else {
		for category, count := range counts {
			out = append(out, domain.CategoryCount{Category: category, Count: count})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count > out[j].Count
			}
			return out[i].Category < out[j].Category
		})
	}

	if total := len(records); total > 0 {
		for i := range out {
			out[i].Percent = float64(out[i].Count) / float64(total) * 100
		}
	}
	return out, nil
}

// HeadcountKPIs computes the overview KPI block from the (possibly
// filtered) table.
func HeadcountKPIs(records []domain.EmployeeRecord) domain.HeadcountSummary {
	summary := domain.HeadcountSummary{Total: len(records)}
	for _, rec := range records {
		switch rec.Status {
		case domain.StatusActive:
			summary.Active++
		case domain.StatusProbation:
			summary.Probation++
		case domain.StatusTerminated:
			summary.Terminated++
		}
	}
	return summary
}

// BirthdaysInMonth returns the records whose birth date falls in the
// given calendar month.
func BirthdaysInMonth(records []domain.EmployeeRecord, month int) []domain.EmployeeRecord {
	var out []domain.EmployeeRecord
	for _, rec := range records {
		if rec.BirthDate != nil && int(rec.BirthDate.Month()) == month {
			out = append(out, rec)
		}
	}
	return out
}

// VacationsInMonth returns the records whose vacation forecast month
// equals the given month.
func VacationsInMonth(records []domain.EmployeeRecord, month int) []domain.EmployeeRecord {
	var out []domain.EmployeeRecord
	for _, rec := range records {
		if rec.VacationForecastMonth != nil && *rec.VacationForecastMonth == month {
			out = append(out, rec)
		}
	}
	return out
}

// MonthlyHires counts hires per calendar month, keyed "2006-01" and
// sorted chronologically. Records without a hire date are skipped.
func MonthlyHires(records []domain.EmployeeRecord) []domain.MonthlyCount {
	counts := make(map[string]int)
	for _, rec := range records {
		if rec.HireDate == nil {
			continue
		}
		counts[rec.HireDate.Format("2006-01")]++
	}

	out := make([]domain.MonthlyCount, 0, len(counts))
	for month, count := range counts {
		out = append(out, domain.MonthlyCount{Month: month, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
