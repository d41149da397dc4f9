package command

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/atulty/calendar-app-sub000/internal/engine"
	"github.com/atulty/calendar-app-sub000/internal/event"
	"github.com/atulty/calendar-app-sub000/internal/export"
)

// wallLayout renders event times in transcript output.
const wallLayout = "2006-01-02 15:04"

// Executor runs parsed commands against a registry and renders the
// transcript text a session prints.
type Executor struct {
	reg *engine.Registry
}

func NewExecutor(reg *engine.Registry) *Executor {
	return &Executor{reg: reg}
}

// ExecuteLine parses and runs one input line. done reports that the line
// was the exit command and the session should end.
func (x *Executor) ExecuteLine(line string) (out string, done bool, err error) {
	c, err := Parse(line)
	if err != nil {
		return "", false, err
	}
	if _, ok := c.(Exit); ok {
		return "", true, nil
	}
	out, err = x.Execute(c)
	return out, false, err
}

// Execute runs one command and returns its transcript text, without a
// trailing newline. Event listings embed newlines between entries.
func (x *Executor) Execute(c Command) (string, error) {
	switch c := c.(type) {
	case CreateCalendar:
		if err := x.reg.CreateCalendar(c.Name, c.Timezone); err != nil {
			return "", err
		}
		return fmt.Sprintf("created calendar %q in %s", c.Name, c.Timezone), nil

	case EditCalendar:
		return x.editCalendar(c)

	case UseCalendar:
		if err := x.reg.UseCalendar(c.Name); err != nil {
			return "", err
		}
		return fmt.Sprintf("using calendar %q", c.Name), nil

	case CreateEvent:
		return x.createEvent(c)

	case EditEvent:
		return x.editEvent(c)

	case EditEvents:
		n, err := x.reg.EditEvents(c.Subject, c.From, c.Change)
		if err != nil {
			return "", err
		}
		return "edited " + plural(n, "event"), nil

	case EditSeries:
		n, err := x.reg.EditSeries(c.Subject, c.Change)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("edited %s in series %q", plural(n, "event"), c.Subject), nil

	case RemoveEvent:
		if err := x.reg.RemoveEvent(c.Subject, c.From); err != nil {
			return "", err
		}
		return fmt.Sprintf("removed event %q", c.Subject), nil

	case CopyEvent:
		if err := x.reg.CopyEvent(c.Subject, c.From, c.Target, c.To); err != nil {
			return "", err
		}
		return fmt.Sprintf("copied event %q to calendar %q", c.Subject, c.Target), nil

	case CopyEventsOn:
		rep, err := x.reg.CopyEventsOnDate(c.Day, c.Target, c.To)
		if err != nil {
			return "", err
		}
		return copyReportLine(rep, c.Target), nil

	case CopyEventsBetween:
		// The grammar takes bare dates; both bounds are inclusive, so the
		// window runs to the last minute of the end date.
		_, rangeEnd := event.AllDayBounds(c.End)
		rep, err := x.reg.CopyEventsBetween(c.Start, rangeEnd, c.Target, c.To)
		if err != nil {
			return "", err
		}
		return copyReportLine(rep, c.Target), nil

	case PrintEventsOn:
		events, err := x.reg.EventsOnDate(c.Day)
		if err != nil {
			return "", err
		}
		return listing("on "+c.Day.Format(dateLayout), events), nil

	case PrintEventsRange:
		events, err := x.reg.EventsInRange(c.From, c.To)
		if err != nil {
			return "", err
		}
		scope := fmt.Sprintf("from %s to %s", c.From.Format(wallLayout), c.To.Format(wallLayout))
		return listing(scope, events), nil

	case ShowStatus:
		busy, err := x.reg.OccupiedAt(c.At)
		if err != nil {
			return "", err
		}
		if busy {
			return "busy", nil
		}
		return "available", nil

	case ExportCSV:
		return x.exportCSV(c.Path)

	case ExportICS:
		return x.exportICS(c.Path)

	case ImportCSV:
		return x.importCSV(c.Path)

	case Exit:
		return "", nil
	}
	return "", fmt.Errorf("unsupported command %T", c)
}

func (x *Executor) editCalendar(c EditCalendar) (string, error) {
	switch c.Property {
	case "name":
		if err := x.reg.RenameCalendar(c.Name, c.Value); err != nil {
			return "", err
		}
		return fmt.Sprintf("renamed calendar %q to %q", c.Name, c.Value), nil
	case "timezone":
		if err := x.reg.SetCalendarTimezone(c.Name, c.Value); err != nil {
			return "", err
		}
		return fmt.Sprintf("set calendar %q timezone to %s", c.Name, c.Value), nil
	}
	return "", fmt.Errorf("unknown calendar property %q", c.Property)
}

func (x *Executor) createEvent(c CreateEvent) (string, error) {
	if c.Repeat != nil {
		return x.createSeries(c)
	}
	if c.AllDay {
		if err := x.reg.CreateAllDayEvent(c.Subject, c.Start, c.AutoDecline); err != nil {
			return "", err
		}
		return fmt.Sprintf("created all-day event %q on %s", c.Subject, c.Start.Format(dateLayout)), nil
	}
	if err := x.reg.CreateEvent(c.Subject, c.Start, c.End, c.AutoDecline); err != nil {
		return "", err
	}
	return fmt.Sprintf("created event %q from %s to %s",
		c.Subject, c.Start.Format(wallLayout), c.End.Format(wallLayout)), nil
}

func (x *Executor) createSeries(c CreateEvent) (string, error) {
	start, end := c.Start, c.End
	if c.AllDay {
		start, end = event.AllDayBounds(c.Start)
	}

	var (
		n   int
		err error
	)
	if c.Repeat.Count > 0 {
		n, err = x.reg.CreateSeriesCount(c.Subject, start, end, c.Repeat.Days, c.Repeat.Count, c.AutoDecline)
	} else {
		n, err = x.reg.CreateSeriesUntil(c.Subject, start, end, c.Repeat.Days,
			c.Repeat.Until, c.Repeat.UntilIsDate, c.AutoDecline)
	}
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "no occurrences", nil
	}
	return fmt.Sprintf("created %s of %q", plural(n, "occurrence"), c.Subject), nil
}

// editEvent verifies that the from/to pair names the stored event before
// applying the change: the grammar identifies an event by subject, start
// and end, while the store keys only subject and start.
func (x *Executor) editEvent(c EditEvent) (string, error) {
	e, err := x.reg.FindEvent(c.Subject, c.From)
	if err != nil {
		return "", err
	}
	if e.End().Format(wallLayout) != c.To.Format(wallLayout) {
		return "", fmt.Errorf("no event %q from %s to %s",
			c.Subject, c.From.Format(wallLayout), c.To.Format(wallLayout))
	}
	if err := x.reg.EditEvent(c.Subject, c.From, c.Change); err != nil {
		return "", err
	}
	return fmt.Sprintf("edited event %q", c.Subject), nil
}

func (x *Executor) exportCSV(path string) (string, error) {
	events, err := x.reg.AllEvents()
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export cal: %w", err)
	}
	if err := export.WriteCSV(f, events); err != nil {
		f.Close()
		return "", fmt.Errorf("export cal: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export cal: %w", err)
	}
	slog.Debug("exported csv", "path", path, "events", len(events))
	return fmt.Sprintf("exported %s to %s", plural(len(events), "event"), path), nil
}

func (x *Executor) exportICS(path string) (string, error) {
	events, err := x.reg.AllEvents()
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export ics: %w", err)
	}
	if err := export.WriteICS(f, events, time.Now()); err != nil {
		f.Close()
		return "", fmt.Errorf("export ics: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export ics: %w", err)
	}
	slog.Debug("exported ics", "path", path, "events", len(events))
	return fmt.Sprintf("exported %s to %s", plural(len(events), "event"), path), nil
}

func (x *Executor) importCSV(path string) (string, error) {
	_, loc, ok := x.reg.CurrentCalendar()
	if !ok {
		return "", fmt.Errorf("import cal: no calendar is in use")
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("import cal: %w", err)
	}
	defer f.Close()

	staged, err := export.ReadCSV(f, loc, x.reg.NewID)
	if err != nil {
		return "", fmt.Errorf("import cal: %w", err)
	}
	n, err := x.reg.TransferEvents(staged)
	if err != nil {
		return "", err
	}
	slog.Debug("imported csv", "path", path, "events", n)
	return fmt.Sprintf("imported %s from %s", plural(n, "event"), path), nil
}

func copyReportLine(rep engine.CopyReport, target string) string {
	line := fmt.Sprintf("copied %s to calendar %q", plural(rep.Copied, "event"), target)
	if rep.Skipped > 0 {
		line += fmt.Sprintf(" (%d skipped)", rep.Skipped)
	}
	return line
}

func listing(scope string, events []event.Event) string {
	if len(events) == 0 {
		return "no events " + scope
	}
	var b strings.Builder
	b.WriteString("events " + scope + ":")
	for _, e := range events {
		b.WriteString("\n")
		b.WriteString(eventLine(e))
	}
	return b.String()
}

func eventLine(e event.Event) string {
	line := fmt.Sprintf("- %s: %s to %s",
		e.Subject(), e.Start().Format(wallLayout), e.End().Format(wallLayout))
	if e.Location() != "" {
		line += " at " + e.Location()
	}
	return line
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
