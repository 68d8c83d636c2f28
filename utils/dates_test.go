// utils/dates_test.go
package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCutoffDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-06-14", CutoffDate(now, 1))
	assert.Equal(t, "2025-06-08", CutoffDate(now, 7))
	// Below-minimum lookback clamps to one day.
	assert.Equal(t, "2025-06-14", CutoffDate(now, 0))
}

func TestCutoffDate_MonthBoundary(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02-28", CutoffDate(now, 1))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2025-06-14"))
	assert.False(t, IsValidDate("06/14/2025"))
	assert.False(t, IsValidDate("2025-13-01"))
	assert.False(t, IsValidDate(""))
}
