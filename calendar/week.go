/*
Package calendar derives week windows and buckets stored records into them.

PURPOSE:
  Everything week-shaped lives here: the Monday-to-Sunday window for a
  date, the labeled week table for a year, date filtering of stored
  records, and the weekly statistics rebuilt on every query.

ONE CALENDAR CONVENTION:
  Every function in this package uses the same Monday-start week derived
  by WeekOf. Week labels number weeks by emission order within the table,
  not by ISO week number, and aggregation groups by the WeekOf window of
  each date. No second notion of "week" exists.

BEST-EFFORT PARSING:
  Stored records are semi-structured text. A record whose Fecha does not
  parse is skipped during filtering; a record whose money fields do not
  parse still counts, with a zero amount (see money.ParseOrZero).

SEE ALSO:
  - stats.go: Weekly aggregation over filtered records
  - record: the stored record shape
*/
package calendar

import (
	"fmt"
	"time"

	"github.com/turno/shift-engine/record"
)

// =============================================================================
// WEEK WINDOW
// =============================================================================

// WeekWindow is a Monday-to-Sunday date range with a display label.
// Derived, never persisted.
type WeekWindow struct {
	Start time.Time // Monday, midnight UTC
	End   time.Time // Sunday, midnight UTC
	Label string
}

// Contains reports whether the date falls within [Start, End] inclusive.
// Only the calendar date matters.
func (w WeekWindow) Contains(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(w.Start) && !d.After(w.End)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOf returns the Monday on/before the given date.
func mondayOf(date time.Time) time.Time {
	d := dateOnly(date)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

func rangeLabel(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format("02/01"), end.Format("02/01"))
}

// WeekOf returns the week window containing the given date.
func WeekOf(date time.Time) WeekWindow {
	start := mondayOf(date)
	end := start.AddDate(0, 0, 6)
	return WeekWindow{Start: start, End: end, Label: rangeLabel(start, end)}
}

// WeeksOfYear returns up to 53 week windows beginning from the Monday
// on/before January 1 of the year, stopping once a window starts in the
// next year. Labels carry the 1-based emission index:
// "Semana 1 (30/12 - 05/01)".
func WeeksOfYear(year int) []WeekWindow {
	first := mondayOf(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))

	var weeks []WeekWindow
	for i := 0; i < 53; i++ {
		start := first.AddDate(0, 0, 7*i)
		if start.Year() > year {
			break
		}
		end := start.AddDate(0, 0, 6)
		weeks = append(weeks, WeekWindow{
			Start: start,
			End:   end,
			Label: fmt.Sprintf("Semana %d (%s)", i+1, rangeLabel(start, end)),
		})
	}
	return weeks
}

// FilterByWeek keeps the records whose Fecha falls inside the window.
// Records with a missing or unparsable date are silently skipped.
func FilterByWeek(records []record.Record, window WeekWindow) []record.Record {
	var out []record.Record
	for _, r := range records {
		date, ok := r.Date()
		if !ok {
			continue
		}
		if window.Contains(date) {
			out = append(out, r)
		}
	}
	return out
}
