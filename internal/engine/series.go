package engine

import (
	"log/slog"
	"time"

	"github.com/atulty/calendar-app-sub000/internal/event"
)

// CreateSeriesCount adds a weekly recurring event to the calendar in use,
// stopping after count occurrences. Start and end are the template's
// wall-clock times and must fall on the same calendar day.
func (r *Registry) CreateSeriesCount(subject string, start, end time.Time, days event.WeekdaySet, count int, autoDecline bool) (int, error) {
	const op = "create event series"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return 0, err
	}
	template, err := event.New("series-template", subject, atZone(start, cal.loc), atZone(end, cal.loc))
	if err != nil {
		return 0, validationError(op, "%s", err)
	}
	series, err := event.NewCountSeries(template, days, count)
	if err != nil {
		return 0, validationError(op, "%s", err)
	}
	return r.commitSeries(op, cal, series, autoDecline)
}

// CreateSeriesUntil adds a weekly recurring event to the calendar in use,
// stopping at the exclusive boundary until. untilIsDate records whether
// the boundary was given as a bare date, which compares by calendar date
// instead of instant.
func (r *Registry) CreateSeriesUntil(subject string, start, end time.Time, days event.WeekdaySet, until time.Time, untilIsDate bool, autoDecline bool) (int, error) {
	const op = "create event series"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return 0, err
	}
	template, err := event.New("series-template", subject, atZone(start, cal.loc), atZone(end, cal.loc))
	if err != nil {
		return 0, validationError(op, "%s", err)
	}
	series, err := event.NewUntilSeries(template, days, atZone(until, cal.loc), untilIsDate)
	if err != nil {
		return 0, validationError(op, "%s", err)
	}
	return r.commitSeries(op, cal, series, autoDecline)
}

// commitSeries expands the series eagerly and inserts it under the
// all-or-nothing policy: with autoDecline, every occurrence is checked
// before anything is inserted, and a single conflict discards the whole
// series. Without autoDecline all occurrences are inserted as-is. An
// empty expansion is a no-op reporting zero occurrences.
//
// Occurrences of one series never conflict with each other: each lands on
// a distinct date, so pre-checking against the store alone is sound.
func (r *Registry) commitSeries(op string, cal *Calendar, series event.Series, autoDecline bool) (int, error) {
	occs, err := series.Expand(r.ids.Generate)
	if err != nil {
		return 0, validationError(op, "%s", err)
	}
	if autoDecline {
		for _, occ := range occs {
			if cal.events.HasConflict(occ) {
				return 0, conflictError(op, "occurrence %q at %s overlaps an existing event",
					occ.Subject(), occ.Start().Format(wallLayout))
			}
		}
	}
	for _, occ := range occs {
		_ = cal.events.Add(occ, false)
	}
	slog.Debug("series committed", "calendar", cal.name, "occurrences", len(occs))
	return len(occs), nil
}
