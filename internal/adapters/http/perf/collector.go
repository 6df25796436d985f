// Package perf records request and query timings in a fixed ring buffer so the
// admin perf endpoint can report percentiles without an external metrics stack.
package perf

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the ring capacity used when none is given.
const DefaultRingSize = 10000

// EntryKind distinguishes HTTP requests from store queries.
type EntryKind uint8

const (
	KindRequest EntryKind = iota
	KindQuery
)

// Entry is one timing sample.
type Entry struct {
	Kind       EntryKind
	Path       string // HTTP path or "store.Method"
	StatusCode int    // HTTP status, 0 for queries
	DurationMs float64
	Timestamp  time.Time
}

// Collector keeps the most recent samples in a ring. Recording never blocks on
// aggregation: all the work happens in Snapshot.
type Collector struct {
	mu    sync.Mutex
	ring  []Entry
	size  int
	pos   int
	total int64
}

// NewCollector returns a collector with capacity size, or DefaultRingSize when
// size is not positive.
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{
		ring: make([]Entry, size),
		size: size,
	}
}

// Record stores a sample, overwriting the oldest one when the ring is full.
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.ring[c.pos] = e
	c.pos = (c.pos + 1) % c.size
	c.mu.Unlock()
	atomic.AddInt64(&c.total, 1)
}

// TotalRecorded returns how many samples have ever been recorded, including
// ones the ring has since overwritten.
func (c *Collector) TotalRecorded() int64 {
	return atomic.LoadInt64(&c.total)
}

// Snapshot is the aggregated view served by the admin perf endpoint.
type Snapshot struct {
	TotalRequests  int64
	RequestP50Ms   float64
	RequestP95Ms   float64
	RequestP99Ms   float64
	SlowestPaths   []PathStat
	SlowestQueries []PathStat
}

// PathStat aggregates samples that share a path or store method.
type PathStat struct {
	Path    string
	AvgMs   float64
	MaxMs   float64
	Count   int
	TotalMs float64
}

type statMap map[string]*PathStat

func (m statMap) add(e Entry) {
	s, ok := m[e.Path]
	if !ok {
		s = &PathStat{Path: e.Path}
		m[e.Path] = s
	}
	s.Count++
	s.TotalMs += e.DurationMs
	if e.DurationMs > s.MaxMs {
		s.MaxMs = e.DurationMs
	}
}

func (m statMap) top(n int) []PathStat {
	list := make([]PathStat, 0, len(m))
	for _, s := range m {
		s.AvgMs = s.TotalMs / float64(s.Count)
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].AvgMs > list[j].AvgMs
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}

// Snapshot aggregates samples recorded at or after since. It sorts, so callers
// should invoke it per page load rather than per request.
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := make([]Entry, c.size)
	copy(buf, c.ring)
	c.mu.Unlock()

	var durations []float64
	requests := statMap{}
	queries := statMap{}

	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		switch e.Kind {
		case KindRequest:
			durations = append(durations, e.DurationMs)
			requests.add(e)
		case KindQuery:
			queries.add(e)
		}
	}

	snap := Snapshot{
		TotalRequests:  c.TotalRecorded(),
		SlowestPaths:   requests.top(topN),
		SlowestQueries: queries.top(topN),
	}

	if len(durations) > 0 {
		sort.Float64s(durations)
		snap.RequestP50Ms = percentile(durations, 50)
		snap.RequestP95Ms = percentile(durations, 95)
		snap.RequestP99Ms = percentile(durations, 99)
	}

	return snap
}

// percentile interpolates the p-th percentile from an ascending slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper || upper >= len(sorted) {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
