package logging

import "time"

// TimestampLayout is the local-time layout shared by console diagnostics and
// the audit log.
const TimestampLayout = "2006-01-02 15:04:05"

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(time.Local).Format(TimestampLayout)
}
