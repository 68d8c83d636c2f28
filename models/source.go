// models/source.go
package models

import "fmt"

// Source identifies one of the NYC Open Data feeds we monitor.
// The values double as the `source` column in the violations table,
// so they must stay stable once data has been tracked.
type Source string

const (
	Source311  Source = "311_complaints"
	SourceHPD  Source = "hpd_violations"
	SourceOATH Source = "oath_violations"
	SourceDOB  Source = "dob_violations"
)

// ReportColumn maps a raw Socrata field to a column header in the report.
type ReportColumn struct {
	Header string
	Field  string
}

// SourceSpec is the single registration point for everything source-specific:
// which dataset to query, which field carries the record's native identifier,
// which field carries the record's own date, how the property filter is
// expressed, and which columns the report shows. Adding a fifth feed means
// adding one entry to sourceSpecs.
type SourceSpec struct {
	Source  Source
	Dataset string // Socrata dataset id, e.g. "erm2-nwe9"
	Label   string

	// IDField is the source-native unique identifier field. These are NOT
	// interchangeable: 311 uses unique_key, HPD violationid, OATH
	// summons_number, DOB isn_dob_bis_viol.
	IDField string

	// DateField is the source's own date-of-record field. Used for the
	// cutoff filter, the newest-first ordering, and display.
	DateField string

	// AddressSearch selects the 311-style free-text address match instead
	// of the block/lot equality filter.
	AddressSearch bool

	Columns []ReportColumn
}

// Where builds the SoQL $where clause for this source: records concerning
// the subject with the source's own date field after the cutoff date.
func (s SourceSpec) Where(subject Subject, sinceDate string) string {
	if s.AddressSearch {
		return fmt.Sprintf("incident_address LIKE '%%%s %%%s%%' AND %s > '%s'",
			subject.Block, subject.Lot, s.DateField, sinceDate)
	}
	return fmt.Sprintf("block = '%s' AND lot = '%s' AND %s > '%s'",
		subject.Block, subject.Lot, s.DateField, sinceDate)
}

var sourceSpecs = []SourceSpec{
	{
		Source:        Source311,
		Dataset:       "erm2-nwe9",
		Label:         "311 Complaints",
		IDField:       "unique_key",
		DateField:     "created_date",
		AddressSearch: true,
		Columns: []ReportColumn{
			{Header: "Date", Field: "created_date"},
			{Header: "Type", Field: "complaint_type"},
			{Header: "Description", Field: "descriptor"},
			{Header: "Address", Field: "incident_address"},
		},
	},
	{
		Source:    SourceHPD,
		Dataset:   "wvxf-dwi5",
		Label:     "HPD Violations",
		IDField:   "violationid",
		DateField: "inspectiondate",
		Columns: []ReportColumn{
			{Header: "Date", Field: "inspectiondate"},
			{Header: "Type", Field: "violationtype"},
			{Header: "Description", Field: "violationdescription"},
			{Header: "Class", Field: "class"},
		},
	},
	{
		Source:    SourceOATH,
		Dataset:   "6bgk-3dad",
		Label:     "OATH Violations",
		IDField:   "summons_number",
		DateField: "hearing_date",
		Columns: []ReportColumn{
			{Header: "Hearing Date", Field: "hearing_date"},
			{Header: "Violation", Field: "violation_type"},
			{Header: "Status", Field: "status"},
		},
	},
	{
		Source:    SourceDOB,
		Dataset:   "3h2n-5cm9",
		Label:     "DOB Violations",
		IDField:   "isn_dob_bis_viol",
		DateField: "issue_date",
		Columns: []ReportColumn{
			{Header: "Issue Date", Field: "issue_date"},
			{Header: "Type", Field: "violation_type_code"},
			{Header: "Description", Field: "description"},
			{Header: "Severity", Field: "severity"},
		},
	},
}

// AllSourceSpecs returns the source registry in report order.
func AllSourceSpecs() []SourceSpec {
	specs := make([]SourceSpec, len(sourceSpecs))
	copy(specs, sourceSpecs)
	return specs
}

// SpecFor looks up the descriptor for a source tag.
func SpecFor(source Source) (SourceSpec, error) {
	for _, s := range sourceSpecs {
		if s.Source == source {
			return s, nil
		}
	}
	return SourceSpec{}, fmt.Errorf("unknown source: %s", source)
}
