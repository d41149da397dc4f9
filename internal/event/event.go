// Package event defines the immutable calendar event value type, the
// editable-property vocabulary, and weekly recurrence expansion.
package event

import (
	"fmt"
	"strings"
	"time"
)

// Visibility states how an event is rendered to other calendar users.
type Visibility string

const (
	// VisibilityDefault inherits the calendar's default rendering.
	VisibilityDefault Visibility = ""

	// VisibilityPublic marks the event as visible to everyone.
	VisibilityPublic Visibility = "public"

	// VisibilityPrivate hides event details from other users.
	VisibilityPrivate Visibility = "private"
)

// ParseVisibility converts user input into a Visibility. The empty string
// maps to VisibilityDefault.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return VisibilityDefault, nil
	case "public":
		return VisibilityPublic, nil
	case "private":
		return VisibilityPrivate, nil
	}
	return VisibilityDefault, fmt.Errorf("unknown visibility %q (want public or private)", s)
}

// String implements fmt.Stringer.
func (v Visibility) String() string {
	if v == VisibilityDefault {
		return "default"
	}
	return string(v)
}

// Event is a single calendar entry.
//
// Event is an immutable value: constructors and With* methods validate and
// return fresh copies, so a stored Event can never change underneath its
// store bucket. Start and end carry the owning calendar's location; the
// instant they denote is what survives a calendar timezone change, while
// the wall-clock rendering shifts.
type Event struct {
	id          string
	subject     string
	start       time.Time
	end         time.Time
	description string
	location    string
	visibility  Visibility
	recurring   bool
}

// New creates a timed event. The subject must not be blank and the event
// must end on or after its start.
func New(id, subject string, start, end time.Time) (Event, error) {
	e := Event{id: id, subject: subject, start: start, end: end}
	if err := e.validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

// NewAllDay creates an event covering one calendar day: midnight through
// 23:59 on day's date, in day's location.
func NewAllDay(id, subject string, day time.Time) (Event, error) {
	start, end := AllDayBounds(day)
	return New(id, subject, start, end)
}

// AllDayBounds returns the interval an all-day event on day's date spans:
// midnight through 23:59 in day's location. All-day recurrence templates
// derive their bounds from the same rule.
func AllDayBounds(day time.Time) (start, end time.Time) {
	y, m, d := day.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	end = time.Date(y, m, d, 23, 59, 0, 0, day.Location())
	return start, end
}

func (e Event) validate() error {
	if strings.TrimSpace(e.subject) == "" {
		return fmt.Errorf("event subject must not be blank")
	}
	if e.start.IsZero() || e.end.IsZero() {
		return fmt.Errorf("event %q needs both a start and an end time", e.subject)
	}
	if e.end.Before(e.start) {
		return fmt.Errorf("event %q ends before it starts", e.subject)
	}
	return nil
}

// ID returns the identity assigned at creation. Copies and series
// occurrences receive fresh identities; edits keep the original.
func (e Event) ID() string { return e.id }

// Subject returns the event subject.
func (e Event) Subject() string { return e.subject }

// Start returns the start time in the owning calendar's location.
func (e Event) Start() time.Time { return e.start }

// End returns the end time in the owning calendar's location.
func (e Event) End() time.Time { return e.end }

// Description returns the optional description.
func (e Event) Description() string { return e.description }

// Location returns the optional location.
func (e Event) Location() string { return e.location }

// Visibility returns the event visibility.
func (e Event) Visibility() Visibility { return e.visibility }

// Recurring reports whether the event was generated from a series.
func (e Event) Recurring() bool { return e.recurring }

// Duration returns the elapsed time between start and end.
func (e Event) Duration() time.Duration { return e.end.Sub(e.start) }

// AllDay reports whether the event spans exactly midnight through 23:59 of
// a single calendar day.
func (e Event) AllDay() bool {
	sy, sm, sd := e.start.Date()
	ey, em, ed := e.end.Date()
	if sy != ey || sm != em || sd != ed {
		return false
	}
	h, min, sec := e.start.Clock()
	if h != 0 || min != 0 || sec != 0 {
		return false
	}
	h, min, sec = e.end.Clock()
	return h == 23 && min == 59 && sec == 0
}

// Overlaps reports whether the open intervals of the two events intersect:
// e.start < o.end and e.end > o.start. Events that merely touch at a
// boundary do not overlap. The comparison is between instants, so events
// held in different locations compare correctly.
func (e Event) Overlaps(o Event) bool {
	return e.start.Before(o.end) && o.start.Before(e.end)
}

// StartsOn reports whether the event starts on day's calendar date,
// ignoring time of day and location.
func (e Event) StartsOn(day time.Time) bool {
	sy, sm, sd := e.start.Date()
	dy, dm, dd := day.Date()
	return sy == dy && sm == dm && sd == dd
}

// SameSubject reports whether the event's subject equals s ignoring case.
func (e Event) SameSubject(s string) bool {
	return foldEqual(e.subject, s)
}

// WithSubject returns a copy with the subject replaced.
func (e Event) WithSubject(subject string) (Event, error) {
	e.subject = subject
	if err := e.validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

// WithStart returns a copy starting at start. The new start must not fall
// after the event's current end.
func (e Event) WithStart(start time.Time) (Event, error) {
	e.start = start
	if err := e.validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

// WithEnd returns a copy ending at end. The new end must not fall before
// the event's current start.
func (e Event) WithEnd(end time.Time) (Event, error) {
	e.end = end
	if err := e.validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

// WithDescription returns a copy with the description replaced.
func (e Event) WithDescription(description string) Event {
	e.description = description
	return e
}

// WithLocation returns a copy with the location replaced.
func (e Event) WithLocation(location string) Event {
	e.location = location
	return e
}

// WithVisibility returns a copy with the visibility replaced.
func (e Event) WithVisibility(v Visibility) Event {
	e.visibility = v
	return e
}

// In returns a copy whose start and end are expressed in loc. The instants
// are unchanged; only the wall-clock rendering shifts.
func (e Event) In(loc *time.Location) Event {
	e.start = e.start.In(loc)
	e.end = e.end.In(loc)
	return e
}

// Rescheduled returns a copy with a fresh identity and new start and end
// times, keeping subject, description, location, visibility, and the
// recurring flag. It is the construction path for cross-calendar copies.
func (e Event) Rescheduled(id string, start, end time.Time) (Event, error) {
	e.id = id
	e.start = start
	e.end = end
	if err := e.validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}
