package repository

import "time"

// timestampLayout is a fixed-width RFC 3339 encoding in UTC. RFC3339Nano
// trims trailing fractional zeros, which breaks lexicographic ordering of the
// stored strings ("...59Z" sorts after "...59.999999999Z"); SQL range filters
// and ORDER BY on timestamp columns rely on string order matching instant
// order, so those columns must be written with this layout.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err == nil {
		return t.UTC(), nil
	}
	t, err = time.Parse(time.RFC3339, raw)
	if err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, err
}
