package repos

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// TimestampLayout is the format show start times are persisted in
const TimestampLayout = "2006-01-02 15:04:05"

// EncodeGenres serializes a list of genres into the JSON array string stored inside the database
func EncodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	data, err := json.Marshal(genres)
	if err != nil {
		return "", errors.Wrap(err, "EncodeGenres: Failed to serialize genres")
	}
	return string(data), nil
}

// DecodeGenres deserializes the JSON array string stored inside the database into a list of genres. An empty
// string or a JSON null is treated as an empty list.
func DecodeGenres(raw string) ([]string, error) {
	genres := []string{}
	if raw == "" {
		return genres, nil
	}
	if err := json.Unmarshal([]byte(raw), &genres); err != nil {
		return nil, errors.Wrapf(err, "DecodeGenres: Malformed genre list %q", raw)
	}
	if genres == nil {
		genres = []string{}
	}
	return genres, nil
}

// FormatTimestamp formats a point in time in the persisted timestamp format
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a persisted timestamp as naive local time. Only the exact format YYYY-MM-DD HH:MM:SS is
// accepted.
func ParseTimestamp(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "ParseTimestamp: Malformed timestamp %q", raw)
	}
	return t, nil
}
