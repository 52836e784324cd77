package service

import (
	"time"

	"github.com/seido-dojo/portal-api/internal/models"
)

// Sheet cells are typed free-hand by staff, so date parsing tolerates the
// day-first variants that show up in practice.
var dateLayouts = []string{
	models.DateLayout,
	"2-1-2006",
	"02/01/2006",
	"2/1/2006",
}

var timestampLayouts = []string{
	models.TimestampLayout,
	"2-1-2006 15:04:05",
	"02-01-2006 15:04",
	"02/01/2006 15:04:05",
}

// parseDayFirstDate parses a day-first date cell.
func parseDayFirstDate(raw string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDayFirstTimestamp parses a day-first timestamp cell, falling back to
// the date-only layouts.
func parseDayFirstTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return parseDayFirstDate(raw, loc)
}

// nextMonday normalizes a start date forward to Monday. A date already on a
// Monday stays put; leave always runs in whole Monday-start weeks.
func nextMonday(t time.Time) time.Time {
	if t.Weekday() == time.Monday {
		return t
	}
	offset := (8 - int(t.Weekday())) % 7
	return t.AddDate(0, 0, offset)
}
