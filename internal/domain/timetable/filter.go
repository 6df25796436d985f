package timetable

import (
	"strings"
	"time"

	"fitdesk/internal/domain/session"
)

// Filter narrows a session list before it reaches the grid. Zero values mean
// "no constraint": an empty Filter passes everything through.
type Filter struct {
	Status  string // exact status match when non-empty
	Keyword string // case-insensitive substring over title/customer/employee
	From    time.Time
	To      time.Time // half-open: sessions starting at To are excluded
}

// Apply returns the sessions matching every set constraint, preserving input
// order (the resolver's stable sort depends on it for tie-breaking).
// PRE: none
// POST: result is a subsequence of sessions
func (f Filter) Apply(sessions []session.Session) []session.Session {
	if f.Status == "" && f.Keyword == "" && f.From.IsZero() && f.To.IsZero() {
		return sessions
	}
	var out []session.Session
	for _, s := range sessions {
		if f.matches(&s) {
			out = append(out, s)
		}
	}
	return out
}

func (f Filter) matches(s *session.Session) bool {
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.Keyword != "" && !keywordMatch(s, f.Keyword) {
		return false
	}
	if !f.From.IsZero() && s.Start.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && s.Start.Compare(f.To) >= 0 {
		return false
	}
	return true
}

func keywordMatch(s *session.Session, keyword string) bool {
	kw := strings.ToLower(keyword)
	for _, field := range []string{s.Title, s.CustomerID, s.EmployeeID} {
		if strings.Contains(strings.ToLower(field), kw) {
			return true
		}
	}
	return false
}
