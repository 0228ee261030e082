package records

import "time"

// FilterByDate returns the records whose DateTime falls on the same calendar
// day as date, evaluated in date's location. A zero date disables the filter
// and returns rows unchanged. The input slice is never modified.
func FilterByDate(rows []Record, date time.Time) []Record {
	if date.IsZero() {
		return rows
	}

	y, m, d := date.Date()
	filtered := make([]Record, 0, len(rows))
	for _, r := range rows {
		if r.DateTime.IsZero() {
			continue
		}
		ry, rm, rd := r.DateTime.In(date.Location()).Date()
		if ry == y && rm == m && rd == d {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ParseFilterDate parses a YYYY-MM-DD date in the local timezone. An empty
// string yields the zero time, which clears the filter.
func ParseFilterDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(time.DateOnly, s, time.Local)
}
