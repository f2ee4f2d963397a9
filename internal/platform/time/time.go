// Package time holds timestamp helpers for artifact names and records
package time

import "time"

// StampLayout is the suffix used in artifact file names, e.g. 20250101_120000
const StampLayout = "20060102_150405"

// DayLayout is the calendar-date layout used on entries
const DayLayout = "2006-01-02"

// Now is the clock seam
var Now = time.Now

// Stamp formats t for artifact file names
func Stamp(t time.Time) string { return t.Format(StampLayout) }

// Day formats a unix seconds value as YYYY-MM-DD in UTC
func Day(unix float64) string { return time.Unix(int64(unix), 0).UTC().Format(DayLayout) }
