package engine

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/atulty/calendar-app-sub000/internal/event"
	"github.com/atulty/calendar-app-sub000/internal/store"
)

// wallLayout renders wall-clock times in diagnostics.
const wallLayout = "2006-01-02 15:04"

// dateLayout renders bare dates in diagnostics.
const dateLayout = "2006-01-02"

// Calendar pairs a name and timezone with the store holding its events.
// Calendars are registered and resolved through the Registry; the name is
// immutable, so a rename builds a replacement value around the same store.
type Calendar struct {
	name   string
	loc    *time.Location
	events *store.EventStore
}

// Name returns the calendar's registry key.
func (c *Calendar) Name() string { return c.name }

// Timezone returns the calendar's location.
func (c *Calendar) Timezone() *time.Location { return c.loc }

// Registry owns every calendar and tracks which one is in use. Event
// operations always target the calendar in use; copy operations may name
// another registered calendar as their destination.
type Registry struct {
	mu        sync.Mutex
	ids       IDGenerator
	calendars map[string]*Calendar
	active    *Calendar
}

// Option configures a Registry.
type Option func(*Registry)

// WithIDGenerator replaces the production UUIDv7 generator.
// Deterministic runs inject a SequenceGenerator.
func WithIDGenerator(g IDGenerator) Option {
	return func(r *Registry) { r.ids = g }
}

// NewRegistry creates an empty registry with no calendar in use.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		ids:       UUIDv7Generator{},
		calendars: make(map[string]*Calendar),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewID mints an event identity using the registry's generator. Import
// code uses it so staged events share the identity space of created ones.
func (r *Registry) NewID() string {
	return r.ids.Generate()
}

// atZone reinterprets t's wall-clock fields in loc. Callers carry wall
// times in an arbitrary location (parsers use UTC); the owning calendar's
// timezone is what gives them meaning.
func atZone(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// loadZone resolves an IANA timezone name, rejecting blanks explicitly:
// time.LoadLocation maps "" to UTC, which would hide caller mistakes.
func loadZone(op, name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, validationError(op, "timezone must not be blank")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, validationError(op, "unknown timezone %q", name)
	}
	return loc, nil
}

func (r *Registry) requireActive(op string) (*Calendar, error) {
	if r.active == nil {
		return nil, validationError(op, "no calendar is in use")
	}
	return r.active, nil
}

func (r *Registry) lookup(op, name string) (*Calendar, error) {
	cal, ok := r.calendars[name]
	if !ok {
		return nil, notFoundError(op, "calendar %q not found", name)
	}
	return cal, nil
}

// CreateCalendar registers a new calendar bound to a fresh event store.
// The name must be non-blank and unused; the timezone must be a valid
// IANA name such as "America/New_York".
func (r *Registry) CreateCalendar(name, timezone string) error {
	const op = "create calendar"
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return validationError(op, "calendar name must not be blank")
	}
	if _, ok := r.calendars[name]; ok {
		return duplicateError(op, "calendar %q already exists", name)
	}
	loc, err := loadZone(op, timezone)
	if err != nil {
		return err
	}
	r.calendars[name] = &Calendar{name: name, loc: loc, events: store.New()}
	slog.Debug("calendar created", "name", name, "timezone", timezone)
	return nil
}

// UseCalendar selects the calendar that subsequent event operations target.
func (r *Registry) UseCalendar(name string) error {
	const op = "use calendar"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.lookup(op, name)
	if err != nil {
		return err
	}
	r.active = cal
	return nil
}

// CurrentCalendar returns the in-use calendar's name and timezone, or
// ok=false when nothing is in use.
func (r *Registry) CurrentCalendar() (name string, loc *time.Location, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return "", nil, false
	}
	return r.active.name, r.active.loc, true
}

// RenameCalendar reattaches a calendar's event store under a new name.
// Stored events are untouched; the old name stops resolving. Renaming to
// a taken name fails, including renaming a calendar to its own name.
func (r *Registry) RenameCalendar(oldName, newName string) error {
	const op = "rename calendar"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.lookup(op, oldName)
	if err != nil {
		return err
	}
	if strings.TrimSpace(newName) == "" {
		return validationError(op, "calendar name must not be blank")
	}
	if _, taken := r.calendars[newName]; taken {
		return duplicateError(op, "calendar %q already exists", newName)
	}

	replacement := &Calendar{name: newName, loc: cal.loc, events: cal.events}
	delete(r.calendars, oldName)
	r.calendars[newName] = replacement
	if r.active == cal {
		r.active = replacement
	}
	slog.Debug("calendar renamed", "from", oldName, "to", newName)
	return nil
}

// SetCalendarTimezone moves a calendar to a new timezone. Every stored
// event keeps the instant it denotes and has its wall-clock rendering
// rewritten: 10:00 in America/New_York reads 15:00 after a summer switch
// to Europe/London.
func (r *Registry) SetCalendarTimezone(name, timezone string) error {
	const op = "edit calendar"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.lookup(op, name)
	if err != nil {
		return err
	}
	loc, err := loadZone(op, timezone)
	if err != nil {
		return err
	}

	rebuilt := store.New()
	for _, e := range cal.events.All() {
		// Unconditional reinsert: instants are unchanged, so the rebuilt
		// store holds exactly the old intervals.
		_ = rebuilt.Add(e.In(loc), false)
	}
	replacement := &Calendar{name: cal.name, loc: loc, events: rebuilt}
	r.calendars[name] = replacement
	if r.active == cal {
		r.active = replacement
	}
	slog.Debug("calendar timezone changed", "name", name, "timezone", timezone)
	return nil
}

// TransferEvents bulk-merges the events of src into the calendar in use,
// converting each instant-preservingly into the calendar's timezone.
// Inserts are unconditional, matching the permissive import path. Returns
// the number of events merged.
func (r *Registry) TransferEvents(src *store.EventStore) (int, error) {
	const op = "transfer events"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return 0, err
	}
	events := src.All()
	for _, e := range events {
		_ = cal.events.Add(e.In(cal.loc), false)
	}
	slog.Debug("events transferred", "calendar", cal.name, "count", len(events))
	return len(events), nil
}

// CreateEvent adds a timed event to the calendar in use. Start and end
// are wall-clock times interpreted in the calendar's timezone. With
// autoDecline set, an insert that would overlap a stored event is
// rejected instead.
func (r *Registry) CreateEvent(subject string, start, end time.Time, autoDecline bool) error {
	const op = "create event"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return err
	}
	e, err := event.New(r.ids.Generate(), subject, atZone(start, cal.loc), atZone(end, cal.loc))
	if err != nil {
		return validationError(op, "%s", err)
	}
	return addDeclined(op, cal, e, autoDecline)
}

// CreateAllDayEvent adds an event spanning midnight through 23:59 of
// day's date in the calendar in use.
func (r *Registry) CreateAllDayEvent(subject string, day time.Time, autoDecline bool) error {
	const op = "create event"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return err
	}
	e, err := event.NewAllDay(r.ids.Generate(), subject, atZone(day, cal.loc))
	if err != nil {
		return validationError(op, "%s", err)
	}
	return addDeclined(op, cal, e, autoDecline)
}

// addDeclined inserts e, translating a declined insert into a conflict
// error naming the slot.
func addDeclined(op string, cal *Calendar, e event.Event, autoDecline bool) error {
	if err := cal.events.Add(e, autoDecline); err != nil {
		return conflictError(op, "event %q at %s overlaps an existing event",
			e.Subject(), e.Start().Format(wallLayout))
	}
	return nil
}

// FindEvent looks up an event in the calendar in use by subject
// (case-insensitive) and exact start wall time.
func (r *Registry) FindEvent(subject string, start time.Time) (event.Event, error) {
	const op = "find event"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return event.Event{}, err
	}
	e, ok := cal.events.Find(subject, atZone(start, cal.loc))
	if !ok {
		return event.Event{}, notFoundError(op, "no event %q starting at %s",
			subject, start.Format(wallLayout))
	}
	return e, nil
}

// RemoveEvent deletes the event identified by subject and exact start
// wall time from the calendar in use.
func (r *Registry) RemoveEvent(subject string, start time.Time) error {
	const op = "remove event"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return err
	}
	e, ok := cal.events.Find(subject, atZone(start, cal.loc))
	if !ok {
		return notFoundError(op, "no event %q starting at %s", subject, start.Format(wallLayout))
	}
	cal.events.Remove(e)
	return nil
}

// EventsOnDate lists the events of the calendar in use whose start date
// equals day's calendar date, in chronological order.
func (r *Registry) EventsOnDate(day time.Time) ([]event.Event, error) {
	const op = "print events"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return nil, err
	}
	return cal.events.EventsOnDate(day), nil
}

// EventsInRange lists the events of the calendar in use fully contained
// in the wall-clock window [start, end), end-inclusive for event ends.
func (r *Registry) EventsInRange(start, end time.Time) ([]event.Event, error) {
	const op = "print events"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return nil, err
	}
	s, e := atZone(start, cal.loc), atZone(end, cal.loc)
	if e.Before(s) {
		return nil, validationError(op, "range end %s is before range start %s",
			end.Format(wallLayout), start.Format(wallLayout))
	}
	return cal.events.EventsInRange(s, e), nil
}

// AllEvents lists every event of the calendar in use in chronological
// order, for export.
func (r *Registry) AllEvents() ([]event.Event, error) {
	const op = "export calendar"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return nil, err
	}
	return cal.events.All(), nil
}

// OccupiedAt reports whether the calendar in use has an event covering
// the given wall-clock instant.
func (r *Registry) OccupiedAt(t time.Time) (bool, error) {
	const op = "show status"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return false, err
	}
	return cal.events.OccupiedAt(atZone(t, cal.loc)), nil
}
