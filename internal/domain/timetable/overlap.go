// Package timetable implements the scheduling calendar core: the first-fit
// column resolver that places overlapping sessions side by side, the day/week/
// month grid geometry, the hover/selection protocol for session detail cards,
// and the calendar header navigation. The package is pure: it consumes session
// records and produces placement data, never touching storage or transport.
package timetable

import (
	"sort"
	"time"

	"fitdesk/internal/domain/session"
)

// Placed annotates a session with its resolved column slot.
// ColumnIndex is 0-based; ColumnCount is shared by every session in the batch
// (the width of the widest concurrent cluster divides the whole day's row).
type Placed struct {
	Session     session.Session
	ColumnIndex int
	ColumnCount int // >= 1
}

// AssignColumns assigns each session a (column, columnCount) pair so that
// time-overlapping sessions never share a column.
//
// First-fit over a stable start-time ordering: each session takes the
// lowest-indexed column whose previous occupant has already ended
// (columnEnd <= start, half-open intervals). The assignment is deterministic
// for a given input order because the sort is stable.
//
// Must be invoked once per rendering context (one call per calendar day):
// sessions on different days never share column assignment.
// PRE: every session satisfies Start < End
// POST: no two overlapping sessions share ColumnIndex; all results carry the
// same ColumnCount = max assigned column + 1; empty input yields empty output
func AssignColumns(sessions []session.Session) []Placed {
	if len(sessions) == 0 {
		return nil
	}

	ordered := make([]session.Session, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start.Before(ordered[j].Start)
	})

	placed := make([]Placed, len(ordered))
	var columnEnd []time.Time // end instant of the last session in each column
	for i, s := range ordered {
		col := -1
		for c, end := range columnEnd {
			if end.Compare(s.Start) <= 0 {
				col = c
				break
			}
		}
		if col == -1 {
			columnEnd = append(columnEnd, s.End)
			col = len(columnEnd) - 1
		} else {
			columnEnd[col] = s.End
		}
		placed[i] = Placed{Session: s, ColumnIndex: col}
	}

	// Batch-wide column count: non-overlapping sessions elsewhere in the day
	// still divide their row by the widest cluster's width.
	count := len(columnEnd)
	for i := range placed {
		placed[i].ColumnCount = count
	}
	return placed
}
