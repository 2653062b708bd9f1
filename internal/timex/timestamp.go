// Package timex canonicalizes timestamps exchanged with the remote service
// and stored in the local database, and provides a JSON-friendly Duration
// for configuration files.
//
// Historical rows were written in several formats: RFC 3339 (with or without
// fractional seconds), RFC 1123 ("Mon, 02 Jan 2006 15:04:05 GMT"), and the
// zoneless SQLite CURRENT_TIMESTAMP layout. A zoneless value is interpreted
// as UTC. All comparisons and all wire payloads go through ParseUTC /
// FormatUTC so that "newer than" always means a comparison of absolute
// instants.
package timex

import (
	"fmt"
	"strings"
	"time"
)

// sqliteLayout is what SQLite's CURRENT_TIMESTAMP produces. It carries no
// zone information.
const sqliteLayout = "2006-01-02 15:04:05"

var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
}

// ParseUTC parses s in any of the accepted layouts and returns the instant
// in UTC. Zoneless values are assumed to already be UTC.
func ParseUTC(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	if t, err := time.ParseInLocation(sqliteLayout, s, time.UTC); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}

// FormatUTC renders t as RFC 3339 with nanoseconds, in UTC. This is the only
// format the client writes, both to the wire and to local storage.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Now returns the current instant truncated to UTC.
func Now() time.Time {
	return time.Now().UTC()
}
