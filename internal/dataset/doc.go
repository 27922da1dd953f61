// Package dataset provides set-based views over the canonical employee
// table: the conjunctive filter-predicate engine and the aggregation
// helpers feeding the dashboard's tables, KPIs and charts. All
// operations treat the input slice as immutable and return fresh
// slices.
package dataset
