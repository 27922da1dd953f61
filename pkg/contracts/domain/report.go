package domain

// GroupCount is one row of a grouped unique-value count, e.g. distinct
// employees per company.
type GroupCount struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}

// CategoryCount is one row of a category frequency table. Percent is the
// category's share of the table total, 0-100.
type CategoryCount struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// MonthlyCount is a per-calendar-month count, keyed "2006-01".
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// HeadcountSummary is the KPI block shown on the dashboard overview.
type HeadcountSummary struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Probation  int `json:"probation"`
	Terminated int `json:"terminated"`
}

// CalendarReport lists employees with a birthday or a forecast vacation
// in a given month.
type CalendarReport struct {
	Month     int              `json:"month" validate:"min=1,max=12"`
	Birthdays []EmployeeRecord `json:"birthdays"`
	Vacations []EmployeeRecord `json:"vacations"`
}
