package projections

import (
	"context"
	"log/slog"
	"time"

	"fitdesk/internal/domain/session"
	"fitdesk/internal/domain/timetable"
)

// CalendarSessionStore defines the session store interface needed by the calendar projection.
type CalendarSessionStore interface {
	ListByRange(ctx context.Context, from, to time.Time) ([]session.Session, error)
}

// CalendarCustomerStore defines the customer store interface needed by the calendar projection.
type CalendarCustomerStore interface {
	ListNames(ctx context.Context) (map[string]string, error)
}

// CalendarEmployeeStore defines the employee store interface needed by the calendar projection.
type CalendarEmployeeStore interface {
	ListNames(ctx context.Context) (map[string]string, error)
}

// GetCalendarQuery carries query parameters for the calendar projection.
type GetCalendarQuery struct {
	View     string // "day", "week" or "month"
	Date     string // YYYY-MM-DD; empty means today
	Status   string // optional session status filter
	Search   string // optional keyword filter
	Selected string // optional session ID whose detail card is pinned open
}

// SessionCard is the pinned detail card for the selected session.
type SessionCard struct {
	Session  session.Session
	Position string // card side relative to the session box: left, right or center
}

// GetCalendarDeps holds dependencies for the calendar projection.
type GetCalendarDeps struct {
	SessionStore  CalendarSessionStore
	CustomerStore CalendarCustomerStore
	EmployeeStore CalendarEmployeeStore
}

// GetCalendarResult carries the rendered calendar state. Exactly one of
// Day, Week or Month is populated, matching View.
type GetCalendarResult struct {
	View  timetable.View
	Date  time.Time
	Label string

	// Navigation targets as YYYY-MM-DD for header links.
	PrevDate  string
	NextDate  string
	TodayDate string

	Day   *timetable.DayGrid
	Week  *timetable.WeekGrid
	Month *timetable.MonthGrid

	// Card is the pinned detail card, nil when no visible session is selected.
	Card *SessionCard

	// Display names keyed by ID for rendering session boxes and cards.
	CustomerNames map[string]string
	EmployeeNames map[string]string
}

// QueryGetCalendar loads the sessions visible in the requested view, applies
// filters and resolves overlap columns and box geometry.
// PRE: Valid query parameters (unknown view falls back to week)
// POST: Returns the grid for the view with all visible sessions placed
func QueryGetCalendar(ctx context.Context, query GetCalendarQuery, deps GetCalendarDeps, now time.Time) (GetCalendarResult, error) {
	view := timetable.ParseView(query.View)

	date := timetable.Today(now)
	if query.Date != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", query.Date, now.Location()); err == nil {
			date = parsed
		}
	}

	from, to := viewRange(date, view)
	sessions, err := deps.SessionStore.ListByRange(ctx, from, to)
	if err != nil {
		return GetCalendarResult{}, err
	}

	filter := timetable.Filter{Status: query.Status, Keyword: query.Search}
	sessions = filter.Apply(sessions)

	result := GetCalendarResult{
		View:      view,
		Date:      date,
		Label:     timetable.Label(date, view),
		PrevDate:  timetable.Prev(date, view).Format("2006-01-02"),
		NextDate:  timetable.Next(date, view).Format("2006-01-02"),
		TodayDate: timetable.Today(now).Format("2006-01-02"),
	}

	switch view {
	case timetable.ViewDay:
		grid := timetable.BuildDayGrid(date, sessions, timetable.DefaultRowHeight, now)
		result.Day = &grid
	case timetable.ViewMonth:
		grid := timetable.BuildMonthGrid(date, sessions, now)
		result.Month = &grid
	default:
		grid := timetable.BuildWeekGrid(date, sessions, timetable.DefaultRowHeight, now)
		result.Week = &grid
	}

	if query.Selected != "" {
		buildCard(query.Selected, &result)
	}

	if deps.CustomerStore != nil {
		names, err := deps.CustomerStore.ListNames(ctx)
		if err != nil {
			slog.Warn("calendar_names_failed", "store", "customer", "error", err)
		} else {
			result.CustomerNames = names
		}
	}
	if deps.EmployeeStore != nil {
		names, err := deps.EmployeeStore.ListNames(ctx)
		if err != nil {
			slog.Warn("calendar_names_failed", "store", "employee", "error", err)
		} else {
			result.EmployeeNames = names
		}
	}

	return result, nil
}

// nominalCalendarWidth approximates the rendered calendar width in pixels for
// card placement. The true viewport is only known client-side; the client
// script recomputes on hover, this keeps placement sensible without it.
const nominalCalendarWidth = 1120.0

// buildCard resolves the selected session's detail card through the
// interaction state machine. A selection naming a session that is not in the
// rendered batch resets the state and leaves no card, so a stale link never
// pins a card for an invisible session.
func buildCard(id string, result *GetCalendarResult) {
	var in timetable.Interaction
	selected, space, columns, ok := locateSession(id, result)
	if !ok {
		in.Reset()
		return
	}

	in.PointerEnter(id, result.View, space, columns)
	in.Click(id)
	// The pointer moves off the box toward the card; selection keeps it open.
	in.PointerLeave(id)
	if !in.CardVisible(id) {
		return
	}
	result.Card = &SessionCard{Session: selected, Position: in.HoverPosition.String()}
}

// locateSession finds the selected session in the populated grid and derives
// the horizontal space on each side of its box.
func locateSession(id string, result *GetCalendarResult) (session.Session, timetable.SideSpace, int, bool) {
	switch {
	case result.Day != nil:
		if p, ok := findPlaced(id, result.Day.Sessions); ok {
			return p.Session, columnSpace(p.Box, 0, nominalCalendarWidth), p.ColumnCount, true
		}
	case result.Week != nil:
		colWidth := nominalCalendarWidth / 7
		for i := range result.Week.Days {
			if p, ok := findPlaced(id, result.Week.Days[i].Sessions); ok {
				return p.Session, columnSpace(p.Box, float64(i)*colWidth, colWidth), p.ColumnCount, true
			}
		}
	case result.Month != nil:
		cellWidth := nominalCalendarWidth / 7
		for _, week := range result.Month.Weeks {
			for i, cell := range week {
				for _, s := range cell.Sessions {
					if s.ID == id {
						space := timetable.SideSpace{
							Left:  float64(i) * cellWidth,
							Right: nominalCalendarWidth - float64(i+1)*cellWidth,
						}
						return s, space, 1, true
					}
				}
			}
		}
	}
	return session.Session{}, timetable.SideSpace{}, 0, false
}

func findPlaced(id string, placed []timetable.PlacedBox) (timetable.PlacedBox, bool) {
	for _, p := range placed {
		if p.Session.ID == id {
			return p, true
		}
	}
	return timetable.PlacedBox{}, false
}

// columnSpace converts a box's percent geometry inside a day column into
// absolute pixel space against the whole calendar.
func columnSpace(box timetable.Box, columnLeft, columnWidth float64) timetable.SideSpace {
	left := columnLeft + box.LeftPercent/100*columnWidth
	width := box.WidthPercent / 100 * columnWidth
	return timetable.SideSpace{
		Left:  left,
		Right: nominalCalendarWidth - left - width,
	}
}

// viewRange returns the half-open [from, to) window of session starts
// needed to render the given view.
func viewRange(date time.Time, view timetable.View) (time.Time, time.Time) {
	switch view {
	case timetable.ViewDay:
		return date, date.AddDate(0, 0, 1)
	case timetable.ViewMonth:
		first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		last := first.AddDate(0, 1, -1)
		return timetable.WeekStart(first), timetable.WeekStart(last).AddDate(0, 0, 7)
	default:
		start := timetable.WeekStart(date)
		return start, start.AddDate(0, 0, 7)
	}
}
