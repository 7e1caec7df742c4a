package model

import (
	"strings"
	"time"
)

// zoned layouts carry their own offset; local layouts are read in the
// viewer's location.
var (
	zonedLayouts = []string{time.RFC3339Nano, time.RFC3339}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
)

// PublishedAt parses valid_start. ok is false when the field is absent or
// unparseable.
func (r JobRecord) PublishedAt(loc *time.Location) (t time.Time, ok bool) {
	raw := strings.TrimSpace(r.ValidStart)
	if raw == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
