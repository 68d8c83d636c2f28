// services/tracker_service_test.go
package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propwatch/violationwatch/config"
	"github.com/propwatch/violationwatch/database"
	"github.com/propwatch/violationwatch/models"
)

func newTestStore(t *testing.T) *database.ViolationStore {
	t.Helper()
	store, err := database.OpenStore(config.DatabaseConfig{
		Driver: "sqlite3",
		Path:   filepath.Join(t.TempDir(), "violations.db"),
	})
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func hpdSpec(t *testing.T) models.SourceSpec {
	t.Helper()
	spec, err := models.SpecFor(models.SourceHPD)
	require.NoError(t, err)
	return spec
}

func TestFilterNovel_Determinism(t *testing.T) {
	store := newTestStore(t)
	tracker := NewTracker(store)
	spec := hpdSpec(t)
	subject := models.Subject{Block: "1234", Lot: "56"}

	records := []models.RawViolation{
		{"violationid": "V1", "inspectiondate": "2025-05-02"},
		{"violationid": "V2", "inspectiondate": "2025-05-01"},
	}

	novel, err := tracker.FilterNovel(spec, records, subject)
	require.NoError(t, err)
	require.Len(t, novel, 2)
	// Adapter order is preserved.
	assert.Equal(t, "V1", novel[0].Field("violationid"))
	assert.Equal(t, "V2", novel[1].Field("violationid"))

	// The identical input a second time yields nothing: everything was just
	// tracked.
	novel, err = tracker.FilterNovel(spec, records, subject)
	require.NoError(t, err)
	assert.Empty(t, novel)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestFilterNovel_PartiallySeen(t *testing.T) {
	store := newTestStore(t)
	tracker := NewTracker(store)
	spec := hpdSpec(t)
	subject := models.Subject{Block: "1234", Lot: "56"}

	require.NoError(t, store.Insert(models.SourceHPD, "V1", subject, "2025-05-02"))

	records := []models.RawViolation{
		{"violationid": "V1", "inspectiondate": "2025-05-02"},
		{"violationid": "V2", "inspectiondate": "2025-05-01"},
	}

	novel, err := tracker.FilterNovel(spec, records, subject)
	require.NoError(t, err)
	require.Len(t, novel, 1)
	assert.Equal(t, "V2", novel[0].Field("violationid"))
}

func TestFilterNovel_MissingIdentifierSkipped(t *testing.T) {
	store := newTestStore(t)
	tracker := NewTracker(store)
	spec := hpdSpec(t)
	subject := models.Subject{Block: "1234", Lot: "56"}

	records := []models.RawViolation{
		{"inspectiondate": "2025-05-02"},                        // no id field at all
		{"violationid": "", "inspectiondate": "2025-05-02"},     // empty id
		{"violationid": "V9", "inspectiondate": "2025-05-01"},
	}

	novel, err := tracker.FilterNovel(spec, records, subject)
	require.NoError(t, err)
	require.Len(t, novel, 1)
	assert.Equal(t, "V9", novel[0].Field("violationid"))

	// Identifier-less records are never persisted either.
	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFilterNovel_StorageErrorPropagates(t *testing.T) {
	store := newTestStore(t)
	tracker := NewTracker(store)
	store.Close()

	_, err := tracker.FilterNovel(hpdSpec(t), []models.RawViolation{
		{"violationid": "V1", "inspectiondate": "2025-05-02"},
	}, models.Subject{Block: "1234", Lot: "56"})
	assert.Error(t, err)
}
