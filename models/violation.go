// models/violation.go
package models

import "time"

// Subject is the property being monitored, keyed by tax block and lot.
// Immutable for the lifetime of a monitoring run; passed by value everywhere.
type Subject struct {
	Block string
	Lot   string
}

// RawViolation is one record as returned by a Socrata endpoint: an ephemeral,
// per-run field map. It is never persisted as such; it is either promoted into
// a tracked row (and attached to the report) or discarded as already seen.
type RawViolation map[string]any

// Field returns the named field as a string, or "" when the field is missing
// or not string-typed. Socrata returns nearly everything as strings; nested
// values (e.g. 311 location objects) are not display fields.
func (r RawViolation) Field(name string) string {
	if v, ok := r[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// TrackedViolation is one durable row of the violations ledger: a record the
// monitor has already reported on. Rows are written once and never updated
// or deleted.
type TrackedViolation struct {
	ID            int64  `csv:"-" db:"id"`
	Source        Source `csv:"source" db:"source"`
	ViolationID   string `csv:"violation_id" db:"violation_id"`
	Block         string `csv:"block" db:"block"`
	Lot           string `csv:"lot" db:"lot"`
	ViolationDate string `csv:"violation_date" db:"violation_date"`
	CreatedDate   string `csv:"created_date" db:"created_date"` // first seen, ISO 8601
}

// Report holds one cycle's newly observed records, grouped by source.
// A missing or empty entry means "no novel records from that source".
type Report struct {
	Subject     Subject
	GeneratedAt time.Time
	Sections    map[Source][]RawViolation
}

// TotalNew returns the number of novel records across all sources.
func (r *Report) TotalNew() int {
	total := 0
	for _, recs := range r.Sections {
		total += len(recs)
	}
	return total
}
