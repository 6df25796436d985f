package timetable

import (
	"math"
	"testing"
	"time"

	"fitdesk/internal/domain/session"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestBuildDayGrid_Geometry tests vertical and horizontal placement math.
func TestBuildDayGrid_Geometry(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) // not today
	grid := BuildDayGrid(day, []session.Session{
		mkSession("a", 9, 30, 11, 0),
		mkSession("b", 9, 30, 10, 30),
	}, DefaultRowHeight, now)

	if len(grid.Sessions) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(grid.Sessions))
	}
	if grid.IsToday {
		t.Fatal("grid should not be flagged today")
	}

	a := grid.Sessions[0]
	if a.Session.ID != "a" {
		t.Fatalf("expected a first (stable start sort), got %s", a.Session.ID)
	}
	if !approx(a.Box.Top, 9.5*DefaultRowHeight) {
		t.Errorf("top = %v, want %v", a.Box.Top, 9.5*DefaultRowHeight)
	}
	if !approx(a.Box.Height, 1.5*DefaultRowHeight) {
		t.Errorf("height = %v, want %v", a.Box.Height, 1.5*DefaultRowHeight)
	}
	// Two columns: each box is half the row minus the gap.
	if !approx(a.Box.WidthPercent, 50-ColumnGapPercent) {
		t.Errorf("width%% = %v, want %v", a.Box.WidthPercent, 50-ColumnGapPercent)
	}
	b := grid.Sessions[1]
	if !approx(b.Box.LeftPercent, 50+ColumnGapPercent/2) {
		t.Errorf("second column left%% = %v, want %v", b.Box.LeftPercent, 50+ColumnGapPercent/2)
	}
}

// TestBuildDayGrid_MidnightCrossing tests that a session crossing midnight
// appears only on the day it starts.
func TestBuildDayGrid_MidnightCrossing(t *testing.T) {
	s := session.Session{
		ID:    "late",
		Start: time.Date(2025, 10, 31, 23, 30, 0, 0, time.UTC),
		End:   time.Date(2025, 11, 1, 0, 15, 0, 0, time.UTC),
	}
	now := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

	startDay := BuildDayGrid(time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC), []session.Session{s}, DefaultRowHeight, now)
	if len(startDay.Sessions) != 1 {
		t.Fatalf("session should appear on its start day, got %d boxes", len(startDay.Sessions))
	}

	endDay := BuildDayGrid(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), []session.Session{s}, DefaultRowHeight, now)
	if len(endDay.Sessions) != 0 {
		t.Fatalf("session should not appear on its end day, got %d boxes", len(endDay.Sessions))
	}
}

// TestBuildDayGrid_NowIndicator tests the now-line offset on today's grid.
func TestBuildDayGrid_NowIndicator(t *testing.T) {
	now := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	grid := BuildDayGrid(Today(now), nil, DefaultRowHeight, now)
	if !grid.IsToday {
		t.Fatal("grid for today should be flagged")
	}
	if !approx(grid.NowOffset, 14.5*DefaultRowHeight) {
		t.Errorf("now offset = %v, want %v", grid.NowOffset, 14.5*DefaultRowHeight)
	}
}

// TestBuildWeekGrid_DayIsolation tests that identical times on different
// days never influence each other's column assignment.
func TestBuildWeekGrid_DayIsolation(t *testing.T) {
	monday := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	sessions := []session.Session{
		{ID: "mon1", Start: monday, End: monday.Add(time.Hour)},
		{ID: "mon2", Start: monday, End: monday.Add(time.Hour)},
		{ID: "tue", Start: tuesday, End: tuesday.Add(time.Hour)},
	}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	grid := BuildWeekGrid(monday, sessions, DefaultRowHeight, now)

	if grid.Start.Weekday() != time.Monday {
		t.Fatalf("week should start Monday, got %v", grid.Start.Weekday())
	}
	if len(grid.Days[0].Sessions) != 2 {
		t.Fatalf("Monday should have 2 sessions, got %d", len(grid.Days[0].Sessions))
	}
	tue := grid.Days[1].Sessions
	if len(tue) != 1 {
		t.Fatalf("Tuesday should have 1 session, got %d", len(tue))
	}
	if tue[0].ColumnIndex != 0 || tue[0].ColumnCount != 1 {
		t.Fatalf("Tuesday session should get (0,1) independent of Monday, got (%d,%d)",
			tue[0].ColumnIndex, tue[0].ColumnCount)
	}
}

// TestWeekStart tests Monday-start week computation across a weekend.
func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want time.Time
	}{
		{"monday maps to itself", time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC), time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		{"sunday maps back six days", time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC), time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		{"wednesday", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekStart(tc.date); !got.Equal(tc.want) {
				t.Fatalf("WeekStart(%v) = %v, want %v", tc.date, got, tc.want)
			}
		})
	}
}

// TestBuildMonthGrid_WholeWeeks tests that the month grid spans whole weeks
// and populates out-of-month cells.
func TestBuildMonthGrid_WholeWeeks(t *testing.T) {
	// October 2025: 1st is a Wednesday, 31st is a Friday.
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	sessions := []session.Session{
		{ID: "prev", Start: time.Date(2025, 9, 29, 10, 0, 0, 0, time.UTC), End: time.Date(2025, 9, 29, 11, 0, 0, 0, time.UTC)},
		{ID: "mid", Start: time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC), End: time.Date(2025, 10, 15, 11, 0, 0, 0, time.UTC)},
		{ID: "next", Start: time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC), End: time.Date(2025, 11, 2, 11, 0, 0, 0, time.UTC)},
	}
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	grid := BuildMonthGrid(date, sessions, now)

	if len(grid.Weeks) != 5 {
		t.Fatalf("October 2025 should render 5 weeks, got %d", len(grid.Weeks))
	}
	first := grid.Weeks[0][0]
	if first.Date.Weekday() != time.Monday {
		t.Fatalf("first cell should be a Monday, got %v", first.Date.Weekday())
	}
	if first.InMonth {
		t.Fatal("29 Sep cell should be flagged out-of-month")
	}
	if len(first.Sessions) != 1 || first.Sessions[0].ID != "prev" {
		t.Fatal("out-of-month cell should still be populated with its sessions")
	}

	// 15 Oct is in week 3 (Mon 13 Oct + 2).
	mid := grid.Weeks[2][2]
	if !mid.InMonth || !mid.IsToday {
		t.Fatalf("15 Oct cell flags wrong: inMonth=%v isToday=%v", mid.InMonth, mid.IsToday)
	}
	if len(mid.Sessions) != 1 || mid.Sessions[0].ID != "mid" {
		t.Fatal("15 Oct cell should hold its session")
	}

	last := grid.Weeks[4][6]
	if !SameDay(last.Date, time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("last cell should be 2 Nov, got %v", last.Date)
	}
	if len(last.Sessions) != 1 || last.Sessions[0].ID != "next" {
		t.Fatal("trailing cell should hold the November session")
	}
}

// TestGeometry_DegenerateIntervalClamped tests that a malformed interval
// yields zero height rather than negative geometry.
func TestGeometry_DegenerateIntervalClamped(t *testing.T) {
	p := Placed{
		Session: session.Session{
			Start: at(10, 0),
			End:   at(9, 0),
		},
		ColumnIndex: 0,
		ColumnCount: 1,
	}
	box := geometry(p, DefaultRowHeight)
	if box.Height != 0 {
		t.Fatalf("degenerate interval height = %v, want 0", box.Height)
	}
}
