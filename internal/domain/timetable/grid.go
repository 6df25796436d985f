package timetable

import (
	"time"

	"fitdesk/internal/domain/session"
)

// Grid layout constants.
const (
	// DefaultRowHeight is the pixel height of one hour row in day/week views.
	DefaultRowHeight = 60.0
	// FirstHour and LastHour bound the visible hour ruler (inclusive).
	FirstHour = 0
	LastHour  = 23
	// ColumnGapPercent is subtracted from each session box's width and left
	// offset so side-by-side boxes don't touch.
	ColumnGapPercent = 1.0
)

// Box is the resolved geometry for one session block in a day/week grid.
// Top and Height are pixels against the hour ruler; LeftPercent and
// WidthPercent are relative to the day column's width.
type Box struct {
	Top          float64
	Height       float64
	LeftPercent  float64
	WidthPercent float64
}

// PlacedBox pairs a column-resolved session with its grid geometry.
type PlacedBox struct {
	Placed
	Box Box
}

// DayGrid is one day column: its date, its sessions with resolved geometry,
// and the now-indicator offset when the day is today.
type DayGrid struct {
	Date     time.Time
	Sessions []PlacedBox
	IsToday  bool
	// NowOffset is the vertical pixel offset of the now indicator.
	// Only meaningful when IsToday is true.
	NowOffset float64
}

// WeekGrid is seven Monday-start day columns.
type WeekGrid struct {
	Start time.Time // Monday of the displayed week
	Days  [7]DayGrid
}

// MonthCell is one date cell in the month grid. Sessions stack in input
// order; the month view does no column math.
type MonthCell struct {
	Date     time.Time
	InMonth  bool // false for leading/trailing days of adjacent months
	IsToday  bool
	Sessions []session.Session
}

// MonthGrid is a whole number of 7-day weeks covering the displayed month.
type MonthGrid struct {
	Month time.Time // first day of the displayed month
	Weeks [][7]MonthCell
}

// hourOffset converts an instant to fractional hours since midnight.
func hourOffset(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// geometry computes the box for one placed session.
// Height is clamped at zero so a malformed interval degrades to an empty
// box instead of negative geometry; validation belongs upstream.
func geometry(p Placed, rowHeight float64) Box {
	top := hourOffset(p.Session.Start) * rowHeight
	height := p.Session.End.Sub(p.Session.Start).Hours() * rowHeight
	if height < 0 {
		height = 0
	}
	slot := 100.0 / float64(p.ColumnCount)
	return Box{
		Top:          top,
		Height:       height,
		LeftPercent:  slot*float64(p.ColumnIndex) + ColumnGapPercent/2,
		WidthPercent: slot - ColumnGapPercent,
	}
}

// NowIndicatorOffset returns the vertical pixel offset of the now line.
// Callers refresh it at most once per minute; sub-minute precision is not
// needed and Second/Nanosecond are ignored.
func NowIndicatorOffset(now time.Time, rowHeight float64) float64 {
	return hourOffset(now) * rowHeight
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// BuildDayGrid places the sessions that start on date into one day column.
// Sessions starting on other days are ignored; the column resolver runs on
// this day's sessions only.
// PRE: rowHeight > 0; sessions satisfy Start < End
// POST: returned grid contains exactly the sessions with Start on date, each
// with non-colliding column geometry
func BuildDayGrid(date time.Time, sessions []session.Session, rowHeight float64, now time.Time) DayGrid {
	var todays []session.Session
	for _, s := range sessions {
		if s.OnDay(date) {
			todays = append(todays, s)
		}
	}

	grid := DayGrid{Date: date, IsToday: SameDay(date, now)}
	if grid.IsToday {
		grid.NowOffset = NowIndicatorOffset(now, rowHeight)
	}
	for _, p := range AssignColumns(todays) {
		grid.Sessions = append(grid.Sessions, PlacedBox{Placed: p, Box: geometry(p, rowHeight)})
	}
	return grid
}

// WeekStart returns the Monday at midnight of the week containing date.
func WeekStart(date time.Time) time.Time {
	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	offset := (int(midnight.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return midnight.AddDate(0, 0, -offset)
}

// BuildWeekGrid builds seven independent day columns for the Monday-start
// week containing date. Column assignment is scoped per day: sessions on
// different days never influence each other's columns.
// PRE: rowHeight > 0
// POST: Days[0] is Monday; each day holds only its own sessions
func BuildWeekGrid(date time.Time, sessions []session.Session, rowHeight float64, now time.Time) WeekGrid {
	start := WeekStart(date)
	grid := WeekGrid{Start: start}
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		grid.Days[i] = BuildDayGrid(day, sessions, rowHeight, now)
	}
	return grid
}

// BuildMonthGrid buckets sessions into date cells spanning whole weeks from
// the week containing the 1st through the week containing the last day of
// the month. Cells outside the month are populated but flagged InMonth=false.
// Sessions appear in a cell in input order; there is no overlap math here.
// PRE: none
// POST: every week row has exactly 7 cells; a session appears in exactly the
// cell of its Start day when that day is displayed
func BuildMonthGrid(date time.Time, sessions []session.Session, now time.Time) MonthGrid {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	last := first.AddDate(0, 1, -1)

	grid := MonthGrid{Month: first}
	for cur := WeekStart(first); !cur.After(last); cur = cur.AddDate(0, 0, 7) {
		var week [7]MonthCell
		for i := 0; i < 7; i++ {
			day := cur.AddDate(0, 0, i)
			cell := MonthCell{
				Date:    day,
				InMonth: day.Month() == first.Month(),
				IsToday: SameDay(day, now),
			}
			for _, s := range sessions {
				if s.OnDay(day) {
					cell.Sessions = append(cell.Sessions, s)
				}
			}
			week[i] = cell
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}
