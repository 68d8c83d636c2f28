// utils/dates.go
package utils

import "time"

// DateLayout is the YYYY-MM-DD form the Socrata date filters expect.
const DateLayout = "2006-01-02"

// CutoffDate returns the date lookbackDays before now, formatted for a
// Socrata $where filter. lookbackDays of 1 means "yesterday".
func CutoffDate(now time.Time, lookbackDays int) string {
	if lookbackDays < 1 {
		lookbackDays = 1
	}
	return now.AddDate(0, 0, -lookbackDays).Format(DateLayout)
}

// IsValidDate reports whether s is a well-formed YYYY-MM-DD date.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
