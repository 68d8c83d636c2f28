// services/monitor_service.go
package services

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/propwatch/violationwatch/config"
	"github.com/propwatch/violationwatch/metrics"
	"github.com/propwatch/violationwatch/models"
	"github.com/propwatch/violationwatch/utils"
)

// Fetcher is the source-adapter contract the orchestrator depends on.
// Satisfied by fetcher.Client; tests substitute fakes per source.
type Fetcher interface {
	FetchSource(ctx context.Context, spec models.SourceSpec, subject models.Subject, sinceDate string) ([]models.RawViolation, error)
}

// Notifier delivers an assembled report. Delivery failure is terminal for the
// notification only; it never rolls back tracking state.
type Notifier interface {
	SendReport(report *models.Report) error
}

// RunSummary is what the status endpoint reports about the last cycle.
type RunSummary struct {
	CompletedAt time.Time `json:"completed_at"`
	NewRecords  int       `json:"new_records"`
}

// Monitor drives one check cycle: fetch every source, filter novelty against
// the ledger, and hand the novel-record map to the notifier.
type Monitor struct {
	cfg      *config.Config
	fetcher  Fetcher
	tracker  *Tracker
	notifier Notifier

	lastRun atomic.Pointer[RunSummary]
}

func NewMonitor(cfg *config.Config, f Fetcher, t *Tracker, n Notifier) *Monitor {
	return &Monitor{cfg: cfg, fetcher: f, tracker: t, notifier: n}
}

// LastRun returns the summary of the most recent completed cycle, or nil.
func (m *Monitor) LastRun() *RunSummary {
	return m.lastRun.Load()
}

// RunCheck executes one cycle for the configured property and returns the
// assembled report.
//
// Error containment follows the per-layer rules: a single source's fetch
// failure is logged and yields an empty section for that source only; a
// storage error aborts the cycle; a delivery failure is logged and the
// already-committed tracking writes stand.
func (m *Monitor) RunCheck(ctx context.Context) (*models.Report, error) {
	return m.RunCheckSince(ctx, utils.CutoffDate(time.Now(), m.cfg.Monitor.LookbackDays))
}

// RunCheckSince is RunCheck with an explicit cutoff date (YYYY-MM-DD),
// used by the CLI --since override for manual backfills.
func (m *Monitor) RunCheckSince(ctx context.Context, sinceDate string) (*models.Report, error) {
	subject := models.Subject{Block: m.cfg.Property.Block, Lot: m.cfg.Property.Lot}
	log.Printf("Monitor: checking violations for Block %s, Lot %s since %s\n", subject.Block, subject.Lot, sinceDate)

	report := &models.Report{
		Subject:     subject,
		GeneratedAt: time.Now(),
		Sections:    make(map[models.Source][]models.RawViolation),
	}

	for _, spec := range models.AllSourceSpecs() {
		records, err := m.fetcher.FetchSource(ctx, spec, subject, sinceDate)
		if err != nil {
			// Non-fatal: this source contributes nothing this cycle.
			log.Printf("ERROR Monitor: fetch failed for %s: %v\n", spec.Source, err)
			metrics.SourceErrorsTotal.WithLabelValues(string(spec.Source)).Inc()
			records = nil
		}

		novel, err := m.tracker.FilterNovel(spec, records, subject)
		if err != nil {
			return nil, err
		}
		report.Sections[spec.Source] = novel
		metrics.NewViolationsTotal.WithLabelValues(string(spec.Source)).Add(float64(len(novel)))
	}

	log.Printf("Monitor: found %d new violations\n", report.TotalNew())

	if m.notifier != nil {
		if err := m.notifier.SendReport(report); err != nil {
			log.Printf("ERROR Monitor: failed to send report: %v\n", err)
			metrics.ReportErrorsTotal.Inc()
		} else if report.TotalNew() > 0 {
			metrics.ReportsSentTotal.Inc()
		}
	}

	metrics.ChecksTotal.Inc()
	metrics.LastCheckTimestamp.SetToCurrentTime()
	m.lastRun.Store(&RunSummary{CompletedAt: time.Now(), NewRecords: report.TotalNew()})
	return report, nil
}
