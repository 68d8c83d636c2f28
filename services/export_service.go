// services/export_service.go
package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"

	"github.com/jszwec/csvutil"

	"github.com/propwatch/violationwatch/database"
	"github.com/propwatch/violationwatch/models"
)

// ExportTrackedCSV writes the full tracked ledger to w as CSV, newest first,
// with a header row driven by the csv tags on models.TrackedViolation.
func ExportTrackedCSV(store *database.ViolationStore, w io.Writer) error {
	tracked, err := store.ListTracked()
	if err != nil {
		return fmt.Errorf("failed to load tracked violations for export: %w", err)
	}

	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if err := enc.EncodeHeader(models.TrackedViolation{}); err != nil {
		return fmt.Errorf("failed to encode CSV header: %w", err)
	}
	for _, v := range tracked {
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode tracked violation %s/%s: %w", v.Source, v.ViolationID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV export: %w", err)
	}

	log.Printf("Export: wrote %d tracked violations\n", len(tracked))
	return nil
}
