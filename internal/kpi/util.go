package kpi

import (
	"database/sql"
	"strings"
	"time"
)

func nullString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

// parseDate parses a text date column at day granularity. The CRM export
// sometimes appends a time part; only the leading date token is used.
// Unparseable values are skipped, never fatal.
func parseDate(raw, layout string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if idx := strings.IndexByte(raw, ' '); idx > 0 {
		raw = raw[:idx]
	}
	t, err := time.Parse(layout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
