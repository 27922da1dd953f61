package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"

	"hrpulse/pkg/contracts/domain"
)

// Canonical column names the joins read and write. Secondary sheets name
// their columns inconsistently, so lookups go through Column/ColumnPrefix
// on normalized headers instead of fixed indices.
const (
	colName             = "nome"
	colEmployeeID       = "ald"
	colVacationForecast = "previsao_ferias"
	colVacationDeadline = "limite"
	colTerminationDate  = "data_desligamento"
)

// terminationDateColumns are the normalized spellings accepted for the
// termination-date column of the DESLIGADOS sheet.
var terminationDateColumns = []string{
	"data_desligamento",
	"data_de_desligamento",
	"desligamento",
	"data_demissao",
}

// employeeIDColumns are accepted employee-identifier columns, in
// preference order, for the termination join key.
var employeeIDColumns = []string{"ald", "matricula", "id_funcionario", "id"}

// MonthNames maps month numbers to Portuguese month names.
var MonthNames = map[int]string{
	1: "Janeiro", 2: "Fevereiro", 3: "Março", 4: "Abril",
	5: "Maio", 6: "Junho", 7: "Julho", 8: "Agosto",
	9: "Setembro", 10: "Outubro", 11: "Novembro", 12: "Dezembro",
}

// monthNumbers is the inverse of MonthNames, keyed lowercase.
var monthNumbers = func() map[string]int {
	m := make(map[string]int, len(MonthNames))
	for n, name := range MonthNames {
		m[strings.ToLower(name)] = n
	}
	return m
}()

// MonthNumber resolves a free-text Portuguese month name to 1-12. The
// input is trimmed and lowercased; anything unmapped reports false.
func MonthNumber(name string) (int, bool) {
	n, ok := monthNumbers[strings.ToLower(strings.TrimSpace(name))]
	return n, ok
}

// sheetRecords converts a sheet into one map per row keyed by normalized
// header. Cells are trimmed; short rows yield empty strings.
func sheetRecords(s *Sheet) []map[string]string {
	records := make([]map[string]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		rec := make(map[string]string, len(s.Headers))
		for i, h := range s.Headers {
			if h == "" {
				continue
			}
			rec[h] = s.Value(row, i)
		}
		records = append(records, rec)
	}
	return records
}

// vacationEntry is the projection of one vacation-schedule row.
type vacationEntry struct {
	month    string
	deadline string
}

// joinVacations left-joins the vacation projection (name, forecast month,
// deadline) into the roster records. The month name is resolved through
// the Portuguese month table; unmapped names leave the forecast unset.
// Every roster record is preserved whether or not it matches.
func joinVacations(records []map[string]string, vacations *Sheet) []domain.LoadWarning {
	var warnings []domain.LoadWarning

	nameCol := vacations.Column(colName)
	monthCol := vacations.ColumnPrefix(colVacationForecast)
	deadlineCol := vacations.Column(colVacationDeadline)

	if nameCol < 0 || monthCol < 0 {
		missing := colName
		if nameCol >= 0 {
			missing = colVacationForecast
		}
		warnings = append(warnings, domain.LoadWarning{
			Code:    domain.WarnMissingColumn,
			Sheet:   SheetVacations,
			Column:  missing,
			Message: fmt.Sprintf("vacation sheet has no %q column; vacation forecast will be null", missing),
		})
		return warnings
	}

	// First occurrence wins when a name repeats in the schedule.
	byName := make(map[string]vacationEntry, len(vacations.Rows))
	for _, row := range vacations.Rows {
		name := vacations.Value(row, nameCol)
		if name == "" {
			continue
		}
		if _, seen := byName[name]; seen {
			continue
		}
		byName[name] = vacationEntry{
			month:    vacations.Value(row, monthCol),
			deadline: vacations.Value(row, deadlineCol),
		}
	}

	for _, rec := range records {
		entry, ok := byName[strings.TrimSpace(rec[colName])]
		if !ok {
			continue
		}
		if n, mapped := MonthNumber(entry.month); mapped {
			rec[colVacationForecast] = strconv.Itoa(n)
		}
		if entry.deadline != "" {
			rec[colVacationDeadline] = entry.deadline
		}
	}
	return warnings
}

// joinTerminations left-joins termination dates into the roster using the
// best available key: an employee-identifier column present on both
// sides, falling back to the name column. A roster record that already
// carries a termination date keeps it; the joined value only fills
// nulls. Returns the strategy that succeeded alongside any warnings.
func joinTerminations(records []map[string]string, roster, terminations *Sheet) (domain.JoinStrategy, []domain.LoadWarning) {
	if terminations.Empty() {
		return domain.JoinKeyNone, nil
	}

	dateCol := -1
	for _, candidate := range terminationDateColumns {
		if c := terminations.Column(candidate); c >= 0 {
			dateCol = c
			break
		}
	}
	if dateCol < 0 {
		return domain.JoinKeyNone, []domain.LoadWarning{{
			Code:    domain.WarnMissingColumn,
			Sheet:   SheetTerminations,
			Column:  colTerminationDate,
			Message: "terminations sheet has no recognizable termination-date column; termination dates will be null",
		}}
	}

	strategy, rosterKey, termKey := chooseJoinKey(roster, terminations)
	if strategy == domain.JoinKeyNone {
		return strategy, []domain.LoadWarning{{
			Code:    domain.WarnNoJoinKey,
			Sheet:   SheetTerminations,
			Message: "no join key shared between roster and terminations sheet; termination dates will be null",
		}}
	}

	keyCol := terminations.Column(termKey)
	byKey := make(map[string]string, len(terminations.Rows))
	for _, row := range terminations.Rows {
		key := terminations.Value(row, keyCol)
		if key == "" {
			continue
		}
		if _, seen := byKey[key]; seen {
			continue
		}
		byKey[key] = terminations.Value(row, dateCol)
	}

	for _, rec := range records {
		if rec[colTerminationDate] != "" {
			// Existing value wins; the join only fills nulls.
			continue
		}
		if date, ok := byKey[strings.TrimSpace(rec[rosterKey])]; ok && date != "" {
			rec[colTerminationDate] = date
		}
	}
	return strategy, nil
}

// chooseJoinKey prefers an employee-identifier column present in both
// tables, then the name column, then reports that no key is viable.
func chooseJoinKey(roster, terminations *Sheet) (domain.JoinStrategy, string, string) {
	for _, id := range employeeIDColumns {
		if roster.Column(id) >= 0 && terminations.Column(id) >= 0 {
			return domain.JoinKeyEmployeeID, id, id
		}
	}
	if roster.Column(colName) >= 0 && terminations.Column(colName) >= 0 {
		return domain.JoinKeyName, colName, colName
	}
	return domain.JoinKeyNone, "", ""
}
