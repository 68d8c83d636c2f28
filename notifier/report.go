// notifier/report.go
package notifier

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/propwatch/violationwatch/models"
)

// reportTemplate mirrors the report layout recipients are used to: a property
// header followed by one section per source, each either a table of the new
// records or a "nothing new" line.
const reportTemplate = `<html>
<head>
<style>
table {border-collapse: collapse; width: 100%;}
th, td {border: 1px solid #ddd; padding: 8px; text-align: left;}
th {background-color: #f2f2f2;}
.section {margin-bottom: 20px;}
.no-violations {color: #666; font-style: italic;}
</style>
</head>
<body>
<h2>NYC Property Violations Report</h2>
<p><strong>Property:</strong> Block {{.Block}}, Lot {{.Lot}}</p>
<p><strong>Date:</strong> {{.Date}}</p>
{{range .Sections}}<div class="section">
<h3>{{.Label}}</h3>
{{if .Rows}}<table>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{else}}<p class="no-violations">No new violations found</p>
{{end}}</div>
{{end}}</body>
</html>
`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

type reportSection struct {
	Label   string
	Headers []string
	Rows    [][]string
}

type reportView struct {
	Block    string
	Lot      string
	Date     string
	Sections []reportSection
}

// RenderReport produces the HTML report body. Sections follow the source
// registry order; each source's columns come from its descriptor, so the
// rendering rules live in exactly one place.
func RenderReport(report *models.Report) (string, error) {
	view := reportView{
		Block: report.Subject.Block,
		Lot:   report.Subject.Lot,
		Date:  report.GeneratedAt.Format("2006-01-02"),
	}

	for _, spec := range models.AllSourceSpecs() {
		section := reportSection{Label: spec.Label}
		for _, col := range spec.Columns {
			section.Headers = append(section.Headers, col.Header)
		}
		for _, rec := range report.Sections[spec.Source] {
			row := make([]string, 0, len(spec.Columns))
			for _, col := range spec.Columns {
				row = append(row, rec.Field(col.Field))
			}
			section.Rows = append(section.Rows, row)
		}
		view.Sections = append(view.Sections, section)
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}
