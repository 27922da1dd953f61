package domain

// WarningCode identifies a recoverable load condition. Warnings surface
// once per load; fatal conditions are returned as errors instead.
type WarningCode string

const (
	WarnMissingSheet  WarningCode = "missing_sheet"
	WarnMissingColumn WarningCode = "missing_column"
	WarnNoJoinKey     WarningCode = "no_join_key"
)

// LoadWarning is a non-fatal signal emitted while building the canonical
// table: an optional sheet absent, an expected column not found, or no
// viable join key. The affected fields stay null and the load continues.
type LoadWarning struct {
	Code    WarningCode `json:"code"`
	Sheet   string      `json:"sheet,omitempty"`
	Column  string      `json:"column,omitempty"`
	Message string      `json:"message"`
}

// JoinStrategy records which key the termination join resolved to.
type JoinStrategy string

const (
	JoinKeyEmployeeID JoinStrategy = "employee_id"
	JoinKeyName       JoinStrategy = "name"
	JoinKeyNone       JoinStrategy = "none"
)
