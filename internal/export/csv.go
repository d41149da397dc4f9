// Package export reads and writes calendar data as CSV spreadsheets and
// RFC 5545 iCalendar files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atulty/calendar-app-sub000/internal/event"
	"github.com/atulty/calendar-app-sub000/internal/store"
)

// csvHeader is the spreadsheet schema, column for column. Import rejects
// files whose header differs, so a file we wrote always reads back.
var csvHeader = []string{
	"Subject", "Start Date", "Start Time", "End Date", "End Time",
	"All Day Event", "Description", "Location", "Private",
}

const (
	csvDateLayout = "01/02/2006"
	csvTimeLayout = "03:04 PM"
)

// WriteCSV writes events as spreadsheet rows in the order given. Dates are
// MM/DD/YYYY and times 12-hour wall clock, matching what desktop calendar
// applications accept for import.
func WriteCSV(w io.Writer, events []event.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, e := range events {
		if err := cw.Write(csvRow(e)); err != nil {
			return fmt.Errorf("writing csv row for %q: %w", e.Subject(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(e event.Event) []string {
	return []string{
		e.Subject(),
		e.Start().Format(csvDateLayout),
		e.Start().Format(csvTimeLayout),
		e.End().Format(csvDateLayout),
		e.End().Format(csvTimeLayout),
		formatBool(e.AllDay()),
		e.Description(),
		e.Location(),
		formatBool(e.Visibility() == event.VisibilityPrivate),
	}
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ReadCSV parses a spreadsheet back into a staging store. Row wall times
// are bound to loc; newID mints an identity per row. Any malformed row
// fails the whole read with its row number, leaving nothing half-imported.
func ReadCSV(r io.Reader, loc *time.Location, newID func() string) (*store.EventStore, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	if !headerMatches(header) {
		return nil, fmt.Errorf("unrecognized csv header %q", strings.Join(header, ","))
	}

	staged := store.New()
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", row, err)
		}
		e, err := parseRow(rec, loc, newID())
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", row, err)
		}
		// Imported rows may legitimately overlap, so the staging
		// insert is the permissive path.
		_ = staged.Add(e, false)
	}
	return staged, nil
}

func headerMatches(header []string) bool {
	if len(header) != len(csvHeader) {
		return false
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), csvHeader[i]) {
			return false
		}
	}
	return true
}

func parseRow(rec []string, loc *time.Location, id string) (event.Event, error) {
	allDay, err := parseBool(rec[5], "All Day Event")
	if err != nil {
		return event.Event{}, err
	}
	private, err := parseBool(rec[8], "Private")
	if err != nil {
		return event.Event{}, err
	}

	var e event.Event
	if allDay {
		day, err := time.ParseInLocation(csvDateLayout, rec[1], loc)
		if err != nil {
			return event.Event{}, fmt.Errorf("invalid start date %q", rec[1])
		}
		e, err = event.NewAllDay(id, rec[0], day)
		if err != nil {
			return event.Event{}, err
		}
	} else {
		start, err := parseStamp(rec[1], rec[2], loc)
		if err != nil {
			return event.Event{}, fmt.Errorf("invalid start: %w", err)
		}
		end, err := parseStamp(rec[3], rec[4], loc)
		if err != nil {
			return event.Event{}, fmt.Errorf("invalid end: %w", err)
		}
		e, err = event.New(id, rec[0], start, end)
		if err != nil {
			return event.Event{}, err
		}
	}

	// The boolean column cannot express an unset visibility, so imports
	// normalize to public or private.
	vis := event.VisibilityPublic
	if private {
		vis = event.VisibilityPrivate
	}
	return e.WithDescription(rec[6]).WithLocation(rec[7]).WithVisibility(vis), nil
}

func parseStamp(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(csvDateLayout+" "+csvTimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q %q", date, clock)
	}
	return t, nil
}

func parseBool(s, column string) (bool, error) {
	switch {
	case strings.EqualFold(s, "True"):
		return true, nil
	case strings.EqualFold(s, "False"):
		return false, nil
	}
	return false, fmt.Errorf("column %q must be True or False, got %q", column, s)
}
