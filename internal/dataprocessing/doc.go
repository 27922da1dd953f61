// Package dataprocessing implements the data-preparation pipeline that
// turns a multi-sheet HR workbook export into the canonical employee
// table. It normalizes column headers, loads the roster, vacation and
// terminations sheets, resolves the cross-sheet joins with fallback
// keys, and enriches each row with derived fields such as numeric age
// and tenure text.
//
// The pipeline degrades gracefully: optional sheets, missing columns and
// malformed cell values become warnings and null fields rather than load
// failures. Only the roster and vacation-schedule sheets are required.
package dataprocessing
