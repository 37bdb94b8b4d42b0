package ingest

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp layouts accepted by NormalizeTimestamp, tried in order. The
// zone-less layouts are interpreted in local time; a bare date is taken as
// UTC midnight to match the behavior of the dashboard this feed was built
// for.
var timestampLayouts = []struct {
	layout string
	local  bool
}{
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02T15:04", true},
	{"2006-01-02", false},
}

// NormalizeTimestamp converts a loosely formatted timestamp string into
// epoch milliseconds. Inputs shaped like "2026-02-13 18:28:11" are
// accepted by swapping the first space for a 'T'. Empty or unparsable
// input returns 0, the "unknown" sentinel; pre-1970 instants yield
// negative values.
func NormalizeTimestamp(raw string) int64 {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0
	}
	if !strings.Contains(cleaned, "T") {
		cleaned = strings.Replace(cleaned, " ", "T", 1)
	}

	for _, l := range timestampLayouts {
		var (
			t   time.Time
			err error
		)
		if l.local {
			t, err = time.ParseInLocation(l.layout, cleaned, time.Local)
		} else {
			t, err = time.Parse(l.layout, cleaned)
		}
		if err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// FormatDateMDY renders an instant as "MM/DD/YYYY" on the local calendar.
// The 0 sentinel renders as an empty string.
func FormatDateMDY(ms int64) string {
	if ms == 0 {
		return ""
	}
	d := time.UnixMilli(ms).Local()
	return fmt.Sprintf("%02d/%02d/%04d", int(d.Month()), d.Day(), d.Year())
}

// FormatTimeAMPM renders an instant as "H:MM AM|PM" local wall-clock
// time, with hour 0 shown as 12. The 0 sentinel renders as an empty
// string.
func FormatTimeAMPM(ms int64) string {
	if ms == 0 {
		return ""
	}
	d := time.UnixMilli(ms).Local()

	hours := d.Hour()
	ampm := "AM"
	if hours >= 12 {
		ampm = "PM"
	}
	hours = hours % 12
	if hours == 0 {
		hours = 12
	}
	return fmt.Sprintf("%d:%02d %s", hours, d.Minute(), ampm)
}
