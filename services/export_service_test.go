// services/export_service_test.go
package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propwatch/violationwatch/models"
)

func TestExportTrackedCSV(t *testing.T) {
	store := newTestStore(t)
	subject := models.Subject{Block: "1234", Lot: "56"}
	require.NoError(t, store.Insert(models.Source311, "A1", subject, "2025-05-01"))
	require.NoError(t, store.Insert(models.SourceDOB, "D1", subject, "2025-05-02"))

	var buf bytes.Buffer
	require.NoError(t, ExportTrackedCSV(store, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + two records

	assert.Equal(t, []string{"source", "violation_id", "block", "lot", "violation_date", "created_date"}, rows[0])
	// Newest first.
	assert.Equal(t, "dob_violations", rows[1][0])
	assert.Equal(t, "D1", rows[1][1])
	assert.Equal(t, "311_complaints", rows[2][0])
	assert.Equal(t, "1234", rows[2][2])
	assert.Equal(t, "56", rows[2][3])
}

func TestExportTrackedCSV_EmptyLedgerStillWritesHeader(t *testing.T) {
	store := newTestStore(t)

	var buf bytes.Buffer
	require.NoError(t, ExportTrackedCSV(store, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "source", rows[0][0])
}
