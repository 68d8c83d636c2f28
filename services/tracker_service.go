// services/tracker_service.go
package services

import (
	"log"

	"github.com/propwatch/violationwatch/database"
	"github.com/propwatch/violationwatch/models"
)

// Tracker decides which of a source's records have never been seen before and
// durably marks each one as seen. It runs once per source with no state
// shared between sources.
type Tracker struct {
	store *database.ViolationStore
}

func NewTracker(store *database.ViolationStore) *Tracker {
	return &Tracker{store: store}
}

// FilterNovel walks the records in adapter order and returns the subsequence
// whose (source, id) pair is not yet tracked, inserting each novel record
// into the store as it is selected.
//
// Records without the source's identifier field are skipped entirely: they
// have no stable identity, so persisting them is impossible and reporting
// them would repeat every cycle. A storage error aborts the cycle; the
// store's idempotent insert makes the re-run safe.
func (t *Tracker) FilterNovel(spec models.SourceSpec, records []models.RawViolation, subject models.Subject) ([]models.RawViolation, error) {
	var novel []models.RawViolation
	skipped := 0

	for _, rec := range records {
		id := rec.Field(spec.IDField)
		if id == "" {
			skipped++
			continue
		}

		seen, err := t.store.Exists(spec.Source, id)
		if err != nil {
			return nil, err
		}
		if seen {
			continue
		}

		novel = append(novel, rec)
		if err := t.store.Insert(spec.Source, id, subject, rec.Field(spec.DateField)); err != nil {
			return nil, err
		}
	}

	if skipped > 0 {
		log.Printf("WARN Tracker: skipped %d %s records with no %s value\n", skipped, spec.Source, spec.IDField)
	}
	return novel, nil
}
