package engine

import (
	"log/slog"
	"time"

	"github.com/atulty/calendar-app-sub000/internal/event"
)

// CopyReport summarizes a bulk copy: how many events landed in the target
// calendar and how many were declined by conflicts there.
type CopyReport struct {
	Copied  int
	Skipped int
}

// CopyEvent copies one event from the calendar in use to targetName. The
// source is located by subject and exact start wall time; the copy begins
// at targetStart, taken literally as a wall time in the target calendar's
// timezone, and runs for the source's exact duration. It fails if the
// source is missing, the target calendar does not exist, an event with
// the same subject already sits at targetStart, or the copy would overlap
// an existing event in the target.
func (r *Registry) CopyEvent(subject string, start time.Time, targetName string, targetStart time.Time) error {
	const op = "copy event"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return err
	}
	src, ok := cal.events.Find(subject, atZone(start, cal.loc))
	if !ok {
		return notFoundError(op, "no event %q starting at %s", subject, start.Format(wallLayout))
	}
	target, err := r.lookup(op, targetName)
	if err != nil {
		return err
	}

	tStart := atZone(targetStart, target.loc)
	if _, exists := target.events.Find(subject, tStart); exists {
		return duplicateError(op, "event %q already exists at %s in calendar %q",
			subject, targetStart.Format(wallLayout), targetName)
	}
	dup, err := src.Rescheduled(r.ids.Generate(), tStart, tStart.Add(src.Duration()))
	if err != nil {
		return validationError(op, "%s", err)
	}
	if err := target.events.Add(dup, true); err != nil {
		return conflictError(op, "event %q at %s overlaps an existing event in calendar %q",
			subject, targetStart.Format(wallLayout), targetName)
	}
	return nil
}

// CopyEventsOnDate copies every event starting on day from the calendar
// in use to targetName, landing on targetDay. Each event's wall time is
// first converted instant-preservingly into the target calendar's
// timezone, then shifted by the day offset between day and targetDay.
// Inserts are auto-declined independently: one conflict does not block
// the rest. It fails only when no source events exist or a calendar is
// missing.
func (r *Registry) CopyEventsOnDate(day time.Time, targetName string, targetDay time.Time) (CopyReport, error) {
	const op = "copy events"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return CopyReport{}, err
	}
	target, err := r.lookup(op, targetName)
	if err != nil {
		return CopyReport{}, err
	}
	matches := cal.events.EventsOnDate(day)
	if len(matches) == 0 {
		return CopyReport{}, notFoundError(op, "no events on %s", day.Format(dateLayout))
	}
	report := r.copyShifted(target, matches, day, targetDay)
	slog.Debug("events copied", "from", cal.name, "to", target.name,
		"copied", report.Copied, "skipped", report.Skipped)
	return report, nil
}

// CopyEventsBetween copies the events of the calendar in use fully
// contained in the wall-clock window [start, end] to targetName. The day
// shift is anchored on the earliest matching event's date, so the first
// copied event lands on targetDay and the rest keep their relative
// spacing. Inserts are auto-declined independently.
func (r *Registry) CopyEventsBetween(start, end time.Time, targetName string, targetDay time.Time) (CopyReport, error) {
	const op = "copy events"
	r.mu.Lock()
	defer r.mu.Unlock()

	cal, err := r.requireActive(op)
	if err != nil {
		return CopyReport{}, err
	}
	target, err := r.lookup(op, targetName)
	if err != nil {
		return CopyReport{}, err
	}
	s, e := atZone(start, cal.loc), atZone(end, cal.loc)
	if e.Before(s) {
		return CopyReport{}, validationError(op, "range end %s is before range start %s",
			end.Format(wallLayout), start.Format(wallLayout))
	}
	matches := cal.events.EventsInRange(s, e)
	if len(matches) == 0 {
		return CopyReport{}, notFoundError(op, "no events between %s and %s",
			start.Format(wallLayout), end.Format(wallLayout))
	}
	report := r.copyShifted(target, matches, matches[0].Start(), targetDay)
	slog.Debug("events copied", "from", cal.name, "to", target.name,
		"copied", report.Copied, "skipped", report.Skipped)
	return report, nil
}

// copyShifted converts each source event into the target calendar's
// timezone, shifts it by the calendar-day offset between anchor and
// targetDay, and inserts it with auto-decline. The copy keeps the exact
// source duration, so a DST edge on the landing day cannot stretch it.
func (r *Registry) copyShifted(target *Calendar, events []event.Event, anchor, targetDay time.Time) CopyReport {
	offset := daysBetween(anchor, targetDay)
	var report CopyReport
	for _, src := range events {
		converted := src.In(target.loc)
		tStart := converted.Start().AddDate(0, 0, offset)
		dup, err := src.Rescheduled(r.ids.Generate(), tStart, tStart.Add(src.Duration()))
		if err != nil {
			report.Skipped++
			continue
		}
		if target.events.Add(dup, true) != nil {
			report.Skipped++
			continue
		}
		report.Copied++
	}
	return report
}

// daysBetween counts calendar days from one civil date to another,
// locations ignored.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
