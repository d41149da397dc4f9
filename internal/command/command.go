// Package command parses the calendar application's text command language
// into typed values and executes them against an engine registry.
//
// The package sits between the presentation layer (interactive prompt,
// headless scripts, scenario harness) and the engine: Parse turns one input
// line into a Command, Executor.Execute runs it and returns the transcript
// text to print. All text-to-time conversion happens here; the engine only
// ever sees parsed primitives.
package command

import (
	"time"

	"github.com/atulty/calendar-app-sub000/internal/event"
)

// Command is one parsed input line. Concrete command types are plain data;
// execution lives on Executor.
type Command interface {
	isCommand()
}

// Repeat carries the recurrence clause of a create event command. Count
// selects count termination when positive; otherwise Until bounds the
// series, with UntilIsDate recording whether the boundary was given as a
// bare date.
type Repeat struct {
	Days        event.WeekdaySet
	Count       int
	Until       time.Time
	UntilIsDate bool
}

// CreateCalendar registers a new calendar.
type CreateCalendar struct {
	Name     string
	Timezone string
}

// EditCalendar renames a calendar or moves it to a new timezone.
// Property is "name" or "timezone"; the parser rejects anything else.
type EditCalendar struct {
	Name     string
	Property string
	Value    string
}

// UseCalendar selects the calendar that subsequent event commands target.
type UseCalendar struct {
	Name string
}

// CreateEvent adds a single event or, with Repeat set, a recurring series.
// AllDay commands carry the day in Start and leave End zero.
type CreateEvent struct {
	Subject     string
	Start       time.Time
	End         time.Time
	AllDay      bool
	AutoDecline bool
	Repeat      *Repeat
}

// EditEvent changes one property of the event identified by subject, start
// and end.
type EditEvent struct {
	Subject string
	From    time.Time
	To      time.Time
	Change  event.Change
}

// EditEvents changes one property of every event with the subject starting
// at or after From.
type EditEvents struct {
	Subject string
	From    time.Time
	Change  event.Change
}

// EditSeries changes one property of every recurring event with the
// subject. From names an occurrence for grammar fidelity; the whole series
// is edited regardless of which occurrence is named.
type EditSeries struct {
	Subject string
	From    time.Time
	Change  event.Change
}

// RemoveEvent deletes the event identified by subject and start.
type RemoveEvent struct {
	Subject string
	From    time.Time
}

// CopyEvent copies one event to another calendar at a literal target wall
// time.
type CopyEvent struct {
	Subject string
	From    time.Time
	Target  string
	To      time.Time
}

// CopyEventsOn copies every event starting on Day to another calendar,
// shifted so they land on To.
type CopyEventsOn struct {
	Day    time.Time
	Target string
	To     time.Time
}

// CopyEventsBetween copies every event contained in [Start, End] to
// another calendar, shifted so the earliest lands on To.
type CopyEventsBetween struct {
	Start  time.Time
	End    time.Time
	Target string
	To     time.Time
}

// PrintEventsOn lists events starting on a date.
type PrintEventsOn struct {
	Day time.Time
}

// PrintEventsRange lists events fully contained in a datetime range.
type PrintEventsRange struct {
	From time.Time
	To   time.Time
}

// ShowStatus reports whether any event covers the queried instant.
type ShowStatus struct {
	At time.Time
}

// ExportCSV writes the active calendar's events to a CSV file.
type ExportCSV struct {
	Path string
}

// ExportICS writes the active calendar's events to an iCalendar file.
type ExportICS struct {
	Path string
}

// ImportCSV reads a CSV file into the active calendar.
type ImportCSV struct {
	Path string
}

// Exit ends the session.
type Exit struct{}

func (CreateCalendar) isCommand()    {}
func (EditCalendar) isCommand()      {}
func (UseCalendar) isCommand()       {}
func (CreateEvent) isCommand()       {}
func (EditEvent) isCommand()         {}
func (EditEvents) isCommand()        {}
func (EditSeries) isCommand()        {}
func (RemoveEvent) isCommand()       {}
func (CopyEvent) isCommand()         {}
func (CopyEventsOn) isCommand()      {}
func (CopyEventsBetween) isCommand() {}
func (PrintEventsOn) isCommand()     {}
func (PrintEventsRange) isCommand()  {}
func (ShowStatus) isCommand()        {}
func (ExportCSV) isCommand()         {}
func (ExportICS) isCommand()         {}
func (ImportCSV) isCommand()         {}
func (Exit) isCommand()              {}
