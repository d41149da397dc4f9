package event

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// maxOccurrences caps eager expansion so a far-future boundary cannot
// wedge the engine in a generation loop.
const maxOccurrences = 5000

// Series describes a weekly recurrence: a single-day template event
// repeated on a set of weekdays until a count is reached or an exclusive
// boundary is crossed.
//
// A Series is transient. Expansion produces concrete occurrences; the
// series itself is never stored.
type Series struct {
	template    Event
	days        WeekdaySet
	count       int       // > 0 in count mode
	until       time.Time // exclusive boundary; zero in count mode
	untilIsDate bool      // boundary was given as a bare date
}

// NewCountSeries builds a series that stops after count occurrences.
func NewCountSeries(template Event, days WeekdaySet, count int) (Series, error) {
	if count <= 0 {
		return Series{}, fmt.Errorf("occurrence count must be positive, got %d", count)
	}
	s := Series{template: template, days: days, count: count}
	if err := s.validate(); err != nil {
		return Series{}, err
	}
	return s, nil
}

// NewUntilSeries builds a series that stops at an exclusive boundary.
// A boundary given as a bare date compares by calendar date; a date-time
// boundary compares against each candidate day combined with the
// template's end time of day.
func NewUntilSeries(template Event, days WeekdaySet, until time.Time, untilIsDate bool) (Series, error) {
	if until.IsZero() {
		return Series{}, fmt.Errorf("series boundary must not be zero")
	}
	s := Series{template: template, days: days, until: until, untilIsDate: untilIsDate}
	if err := s.validate(); err != nil {
		return Series{}, err
	}
	return s, nil
}

func (s Series) validate() error {
	if err := s.template.validate(); err != nil {
		return err
	}
	if s.days == 0 {
		return fmt.Errorf("series %q needs at least one weekday", s.template.subject)
	}
	sy, sm, sd := s.template.start.Date()
	ey, em, ed := s.template.end.Date()
	if sy != ey || sm != em || sd != ed {
		return fmt.Errorf("series template %q must start and end on the same day", s.template.subject)
	}
	return nil
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// Expand eagerly generates the occurrences in chronological order. Each
// occurrence keeps the template's subject, description, location, and
// visibility, takes its date from the rule and its start/end time of day
// from the template, is marked recurring, and receives an identity from
// newID. A boundary that falls before the first candidate yields an empty
// list, not an error.
func (s Series) Expand(newID func() string) ([]Event, error) {
	byDays := make([]rrule.Weekday, 0, 7)
	for _, day := range s.days.Weekdays() {
		byDays = append(byDays, rruleWeekdays[day])
	}
	opt := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   s.template.start,
		Byweekday: byDays,
	}
	if s.count > 0 {
		opt.Count = s.count
	}
	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("building recurrence rule: %w", err)
	}

	var out []Event
	next := rule.Iterator()
	for {
		start, ok := next()
		if !ok {
			break
		}
		if s.count == 0 && !s.beforeBoundary(start) {
			break
		}
		if len(out) == maxOccurrences {
			return nil, fmt.Errorf("series %q exceeds %d occurrences", s.template.subject, maxOccurrences)
		}
		occ := s.template
		occ.id = newID()
		occ.start = start
		occ.end = s.endOn(start)
		occ.recurring = true
		out = append(out, occ)
	}
	return out, nil
}

// endOn combines day's calendar date with the template's end time of day.
func (s Series) endOn(day time.Time) time.Time {
	y, m, d := day.Date()
	h, min, sec := s.template.end.Clock()
	return time.Date(y, m, d, h, min, sec, 0, day.Location())
}

// beforeBoundary reports whether an occurrence starting at start falls
// strictly before the exclusive boundary.
func (s Series) beforeBoundary(start time.Time) bool {
	if s.untilIsDate {
		sy, sm, sd := start.Date()
		uy, um, ud := s.until.Date()
		if sy != uy {
			return sy < uy
		}
		if sm != um {
			return sm < um
		}
		return sd < ud
	}
	return s.endOn(start).Before(s.until)
}
