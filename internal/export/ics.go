package export

import (
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/atulty/calendar-app-sub000/internal/event"
)

// WriteICS writes events as an RFC 5545 iCalendar stream, one VEVENT per
// event with the event ID as UID. Timed events serialize their instants in
// UTC; all-day events use date values with the customary exclusive DTEND.
// stamp becomes each component's DTSTAMP, so callers control whether the
// output is reproducible.
func WriteICS(w io.Writer, events []event.Event, stamp time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//calcli//calendar export//EN")

	for _, e := range events {
		ev := cal.AddEvent(e.ID())
		ev.SetDtStampTime(stamp.UTC())
		ev.SetSummary(e.Subject())
		if e.AllDay() {
			ev.SetAllDayStartAt(e.Start())
			ev.SetAllDayEndAt(e.Start().AddDate(0, 0, 1))
		} else {
			ev.SetStartAt(e.Start())
			ev.SetEndAt(e.End())
		}
		if d := e.Description(); d != "" {
			ev.SetDescription(d)
		}
		if l := e.Location(); l != "" {
			ev.SetLocation(l)
		}
		switch e.Visibility() {
		case event.VisibilityPrivate:
			ev.SetProperty(ics.ComponentPropertyClass, "PRIVATE")
		case event.VisibilityPublic:
			ev.SetProperty(ics.ComponentPropertyClass, "PUBLIC")
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}
