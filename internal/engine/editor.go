package engine

import (
	"time"

	"github.com/atulty/calendar-app-sub000/internal/event"
)

// EditEvent changes one property of the event identified by subject and
// exact start wall time in the calendar in use. The change is applied to
// a candidate copy first; the candidate must validate and must not
// conflict with any stored event other than the one being replaced. A
// failed edit leaves the event untouched.
func (r *Registry) EditEvent(subject string, start time.Time, change event.Change) error {
	const op = "edit event"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return err
	}
	target, ok := cal.events.Find(subject, atZone(start, cal.loc))
	if !ok {
		return notFoundError(op, "no event %q starting at %s", subject, start.Format(wallLayout))
	}
	candidate, err := revised(cal, target, change)
	if err != nil {
		return validationError(op, "%s", err)
	}
	if cal.events.HasConflict(candidate) {
		return conflictError(op, "edited event %q would overlap an existing event", target.Subject())
	}
	cal.events.Replace(target, candidate)
	return nil
}

// EditEvents changes one property of every event in the calendar in use
// whose subject matches (case-insensitively) and whose start is at or
// after from. Start and end edits are all-or-nothing: the batch is
// pre-scanned and aborted with zero mutations if any candidate fails
// validation or would conflict. Other properties apply independently,
// skipping events whose candidate fails, and the count of events actually
// changed is returned.
func (r *Registry) EditEvents(subject string, from time.Time, change event.Change) (int, error) {
	const op = "edit events"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return 0, err
	}
	matched := matchEvents(cal, subject, func(e event.Event) bool {
		return !e.Start().Before(atZone(from, cal.loc))
	})
	if len(matched) == 0 {
		return 0, notFoundError(op, "no events %q starting at or after %s",
			subject, from.Format(wallLayout))
	}
	return r.editBatch(op, cal, matched, change)
}

// EditSeries changes one property of every series-generated event in the
// calendar in use whose subject matches, with the same batch semantics as
// EditEvents.
func (r *Registry) EditSeries(subject string, change event.Change) (int, error) {
	const op = "edit series"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return 0, err
	}
	matched := matchEvents(cal, subject, event.Event.Recurring)
	if len(matched) == 0 {
		return 0, notFoundError(op, "no recurring events %q", subject)
	}
	return r.editBatch(op, cal, matched, change)
}

// matchEvents collects the active store's events with a matching subject
// that satisfy keep, in chronological order.
func matchEvents(cal *Calendar, subject string, keep func(event.Event) bool) []event.Event {
	var out []event.Event
	for _, e := range cal.events.All() {
		if e.SameSubject(subject) && keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// editBatch applies one change across matched events.
//
// Time-valued changes are pre-scanned: every candidate is built and
// conflict-checked against the store as it stands before anything is
// replaced, and one failure aborts the whole batch. Candidates exclude
// their own stored value by ID, so moving an event within its own slot
// does not self-conflict.
func (r *Registry) editBatch(op string, cal *Calendar, matched []event.Event, change event.Change) (int, error) {
	if change.Property.TimeValued() {
		candidates := make([]event.Event, len(matched))
		for i, e := range matched {
			candidate, err := revised(cal, e, change)
			if err != nil {
				return 0, validationError(op, "%s", err)
			}
			if cal.events.HasConflict(candidate) {
				return 0, conflictError(op, "edited event %q at %s would overlap an existing event",
					e.Subject(), e.Start().Format(wallLayout))
			}
			candidates[i] = candidate
		}
		for i, e := range matched {
			cal.events.Replace(e, candidates[i])
		}
		return len(matched), nil
	}

	edited := 0
	for _, e := range matched {
		candidate, err := revised(cal, e, change)
		if err != nil || cal.events.HasConflict(candidate) {
			continue
		}
		cal.events.Replace(e, candidate)
		edited++
	}
	return edited, nil
}

// revised applies change to e, interpreting a time value as a wall clock
// in cal's timezone.
func revised(cal *Calendar, e event.Event, change event.Change) (event.Event, error) {
	if change.Property.TimeValued() {
		change.When = atZone(change.When, cal.loc)
	}
	return e.Apply(change)
}
