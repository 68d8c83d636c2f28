// notifier/report_test.go
package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propwatch/violationwatch/models"
)

func sampleReport(t *testing.T) *models.Report {
	t.Helper()
	generatedAt, err := time.Parse("2006-01-02", "2025-06-01")
	require.NoError(t, err)

	return &models.Report{
		Subject:     models.Subject{Block: "1234", Lot: "56"},
		GeneratedAt: generatedAt,
		Sections: map[models.Source][]models.RawViolation{
			models.Source311: {
				{
					"unique_key":       "A1",
					"created_date":     "2025-06-01T08:30:00.000",
					"complaint_type":   "Noise - Residential",
					"descriptor":       "Loud Music/Party",
					"incident_address": "100 MAIN STREET",
				},
			},
		},
	}
}

func TestRenderReport_Golden(t *testing.T) {
	html, err := RenderReport(sampleReport(t))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "report", []byte(html))
}

func TestRenderReport_Structure(t *testing.T) {
	html, err := RenderReport(sampleReport(t))
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	// One section per source, in registry order.
	sections := doc.Find("div.section")
	require.Equal(t, 4, sections.Length())
	wantLabels := []string{"311 Complaints", "HPD Violations", "OATH Violations", "DOB Violations"}
	sections.Each(func(i int, s *goquery.Selection) {
		assert.Equal(t, wantLabels[i], strings.TrimSpace(s.Find("h3").Text()))
	})

	// Only the populated section renders a table.
	require.Equal(t, 1, doc.Find("table").Length())
	table := doc.Find("table").First()
	headers := table.Find("th").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Date", "Type", "Description", "Address"}, headers)
	cells := table.Find("td").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"2025-06-01T08:30:00.000", "Noise - Residential", "Loud Music/Party", "100 MAIN STREET"}, cells)

	// Empty sections say so.
	assert.Equal(t, 3, doc.Find("p.no-violations").Length())
}

func TestRenderReport_EscapesFieldValues(t *testing.T) {
	report := sampleReport(t)
	report.Sections[models.Source311][0]["descriptor"] = `<script>alert("x")</script>`

	html, err := RenderReport(report)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestSendReport_EmptyReportIsNotSent(t *testing.T) {
	// No SMTP server involved: an empty report returns before any dial.
	n := NewEmailNotifier(sampleEmailConfig())
	err := n.SendReport(&models.Report{
		Subject:  models.Subject{Block: "1234", Lot: "56"},
		Sections: map[models.Source][]models.RawViolation{},
	})
	assert.NoError(t, err)
}

func TestSendReport_NoRecipientsSkipsDelivery(t *testing.T) {
	cfg := sampleEmailConfig()
	cfg.ToEmails = nil
	n := NewEmailNotifier(cfg)
	assert.NoError(t, n.SendReport(sampleReport(t)))
}
