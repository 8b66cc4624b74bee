package repository

import (
	"database/sql"
	"time"
)

const dateLayout = "2006-01-02"

// parseNullableTime parses a sql.NullString into a time.Time using the given
// layout. NULL, empty or malformed values yield the zero time.
func parseNullableTime(s sql.NullString, layout string) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// timeToNullable stores the zero time as SQL NULL.
func timeToNullable(t time.Time, layout string) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(layout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// nullableIntToValue converts a *int to a value suitable for SQLite storage.
func nullableIntToValue(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableFloatToValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// stamp fills zero timestamps with now.
func stamp(ts ...*time.Time) {
	now := time.Now().UTC().Truncate(time.Second)
	for _, t := range ts {
		if t.IsZero() {
			*t = now
		}
	}
}
