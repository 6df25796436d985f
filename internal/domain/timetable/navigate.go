package timetable

import (
	"fmt"
	"time"
)

// View selects the calendar layout. A tagged variant rather than a string so
// geometry and card-position code dispatch on it exactly once.
type View int

const (
	ViewDay View = iota
	ViewWeek
	ViewMonth
)

// String returns the view name used in URLs and templates.
func (v View) String() string {
	switch v {
	case ViewWeek:
		return "week"
	case ViewMonth:
		return "month"
	default:
		return "day"
	}
}

// ParseView maps a view name to its View. Unknown names default to ViewWeek,
// the landing view.
func ParseView(name string) View {
	switch name {
	case "day":
		return ViewDay
	case "month":
		return ViewMonth
	default:
		return ViewWeek
	}
}

// Label returns the header label for the given date and view.
// Day: full weekday and date. Week: Monday-start range, with the month
// written once when both ends share it. Month: month and year.
// PRE: none
// POST: non-empty display string
func Label(date time.Time, view View) string {
	switch view {
	case ViewDay:
		return date.Format("Monday, 2 January 2006")
	case ViewWeek:
		start := WeekStart(date)
		end := start.AddDate(0, 0, 6)
		if start.Month() == end.Month() {
			return fmt.Sprintf("%d – %d %s", start.Day(), end.Day(), end.Format("January 2006"))
		}
		return fmt.Sprintf("%s – %s", start.Format("2 January"), end.Format("2 January 2006"))
	default:
		return date.Format("January 2006")
	}
}

// Prev steps the date one unit back for the given view.
func Prev(date time.Time, view View) time.Time {
	return step(date, view, -1)
}

// Next steps the date one unit forward for the given view.
func Next(date time.Time, view View) time.Time {
	return step(date, view, 1)
}

func step(date time.Time, view View, dir int) time.Time {
	switch view {
	case ViewDay:
		return date.AddDate(0, 0, dir)
	case ViewWeek:
		return date.AddDate(0, 0, 7*dir)
	default:
		return date.AddDate(0, dir, 0)
	}
}

// Today returns now truncated to its calendar day. The view is untouched by
// a today jump; callers keep their current View.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
