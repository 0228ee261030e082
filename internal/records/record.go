package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Record is one scraped-document entry. The table engine only reads records.
type Record struct {
	// ID is a display-only number; it is not unique across pages.
	ID       int       `json:"id"`
	DateTime time.Time `json:"dateTime"`
	Status   bool      `json:"status"`
	FileName string    `json:"fileName"`
	FileLink string    `json:"fileLink"`
}

// Category describes the document collection being browsed.
type Category struct {
	Title string `json:"title" yaml:"title"`
	// Type namespaces the download path of every record in the collection.
	Type string `json:"type" yaml:"type"`
}

// recordJSON mirrors Record with a raw timestamp so both RFC 3339 strings
// and epoch milliseconds are accepted.
type recordJSON struct {
	ID       int             `json:"id"`
	DateTime json.RawMessage `json:"dateTime"`
	Status   bool            `json:"status"`
	FileName string          `json:"fileName"`
	FileLink string          `json:"fileLink"`
}

// UnmarshalJSON decodes a record. A missing or null dateTime leaves the zero
// time, which sorts before every real timestamp.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ts, err := parseTimestamp(raw.DateTime)
	if err != nil {
		return fmt.Errorf("record %d: %w", raw.ID, err)
	}

	*r = Record{
		ID:       raw.ID,
		DateTime: ts,
		Status:   raw.Status,
		FileName: raw.FileName,
		FileLink: raw.FileLink,
	}
	return nil
}

// parseTimestamp accepts null, a JSON number of epoch milliseconds, or a
// string in RFC 3339 (with or without fractional seconds) or YYYY-MM-DD form.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return time.Time{}, nil
	}

	if trimmed[0] != '"' {
		var millis int64
		if err := json.Unmarshal(trimmed, &millis); err != nil {
			return time.Time{}, fmt.Errorf("invalid dateTime %s: %w", trimmed, err)
		}
		return time.UnixMilli(millis).UTC(), nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return time.Time{}, fmt.Errorf("invalid dateTime %s: %w", trimmed, err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid dateTime %q: expected RFC 3339 or YYYY-MM-DD", s)
}
