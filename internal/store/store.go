package store

import (
	"errors"
	"slices"
	"time"

	"github.com/atulty/calendar-app-sub000/internal/event"
)

// ErrConflict reports an insertion rejected by auto-decline.
var ErrConflict = errors.New("event overlaps an existing event")

// EventStore holds one calendar's events, bucketed by start instant.
// The zero value is not usable; call New.
type EventStore struct {
	buckets map[int64][]event.Event
	keys    []int64 // bucket keys, sorted ascending
	size    int
}

// New creates an empty store.
func New() *EventStore {
	return &EventStore{buckets: make(map[int64][]event.Event)}
}

// key collapses a start time to its instant, so events held in different
// locations share a bucket when they start at the same moment.
func key(t time.Time) int64 { return t.UnixNano() }

// Add inserts e into the bucket for its start instant, creating the bucket
// if absent. With autoDecline set, the insert is rejected with ErrConflict
// when e overlaps any stored event and the store is left untouched.
// Without it, overlapping inserts are permitted.
func (s *EventStore) Add(e event.Event, autoDecline bool) error {
	if autoDecline && s.HasConflict(e) {
		return ErrConflict
	}
	s.insert(e)
	return nil
}

func (s *EventStore) insert(e event.Event) {
	k := key(e.Start())
	if _, ok := s.buckets[k]; !ok {
		i, _ := slices.BinarySearch(s.keys, k)
		s.keys = slices.Insert(s.keys, i, k)
	}
	s.buckets[k] = append(s.buckets[k], e)
	s.size++
}

// HasConflict reports whether e overlaps any stored event, skipping the
// stored value that shares e's ID. The self-exclusion lets an editor test
// a candidate replacement against everything except the event it replaces.
func (s *EventStore) HasConflict(e event.Event) bool {
	endKey := key(e.End())
	for _, k := range s.keys {
		// Buckets at or past e's end start too late to overlap it.
		if k >= endKey {
			break
		}
		for _, o := range s.buckets[k] {
			if o.ID() == e.ID() {
				continue
			}
			if e.Overlaps(o) {
				return true
			}
		}
	}
	return false
}

// Find returns the first event in the exact-start bucket whose subject
// matches, ignoring case. Insertion order breaks ties between duplicate
// subjects.
func (s *EventStore) Find(subject string, start time.Time) (event.Event, bool) {
	for _, o := range s.buckets[key(start)] {
		if o.SameSubject(subject) {
			return o, true
		}
	}
	return event.Event{}, false
}

// EventsOnDate returns every event whose start date equals day's calendar
// date, regardless of how far past midnight it runs. An event spanning
// into the queried day without starting on it does not qualify.
func (s *EventStore) EventsOnDate(day time.Time) []event.Event {
	var out []event.Event
	for _, k := range s.keys {
		for _, o := range s.buckets[k] {
			if o.StartsOn(day) {
				out = append(out, o)
			}
		}
	}
	return out
}

// EventsInRange returns the events fully contained in the window: start in
// [start, end), end in (start, end]. An event that begins inside the
// window but runs past its end is excluded.
func (s *EventStore) EventsInRange(start, end time.Time) []event.Event {
	var out []event.Event
	for _, k := range s.keys {
		for _, o := range s.buckets[k] {
			es, ee := o.Start(), o.End()
			if !es.Before(start) && es.Before(end) && ee.After(start) && !ee.After(end) {
				out = append(out, o)
			}
		}
	}
	return out
}

// OccupiedAt reports whether any stored event covers the instant t. An
// event covers its start but not its end, matching the open-interval
// conflict rule.
func (s *EventStore) OccupiedAt(t time.Time) bool {
	tk := key(t)
	for _, k := range s.keys {
		if k > tk {
			break
		}
		for _, o := range s.buckets[k] {
			if !t.Before(o.Start()) && t.Before(o.End()) {
				return true
			}
		}
	}
	return false
}

// Replace removes old and inserts its replacement as one operation. It
// reports false and leaves the store unchanged when old is not present.
// Replace performs no conflict checking; callers decide policy first.
func (s *EventStore) Replace(old, updated event.Event) bool {
	if !s.Remove(old) {
		return false
	}
	s.insert(updated)
	return true
}

// Remove deletes the stored event carrying e's ID from e's start bucket,
// pruning the bucket when it empties. It reports whether anything was
// removed.
func (s *EventStore) Remove(e event.Event) bool {
	k := key(e.Start())
	bucket := s.buckets[k]
	for i, o := range bucket {
		if o.ID() != e.ID() {
			continue
		}
		bucket = slices.Delete(bucket, i, i+1)
		if len(bucket) == 0 {
			delete(s.buckets, k)
			if j, ok := slices.BinarySearch(s.keys, k); ok {
				s.keys = slices.Delete(s.keys, j, j+1)
			}
		} else {
			s.buckets[k] = bucket
		}
		s.size--
		return true
	}
	return false
}

// All lists every event, chronological by bucket and insertion-ordered
// within a bucket.
func (s *EventStore) All() []event.Event {
	out := make([]event.Event, 0, s.size)
	for _, k := range s.keys {
		out = append(out, s.buckets[k]...)
	}
	return out
}

// Len returns the number of stored events.
func (s *EventStore) Len() int { return s.size }
