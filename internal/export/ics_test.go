package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulty/calendar-app-sub000/internal/event"
)

func TestWriteICS_TimedEvent(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	e := timed(t, "ev-1", "Team Sync",
		time.Date(2025, time.June, 2, 9, 0, 0, 0, ny),
		time.Date(2025, time.June, 2, 10, 30, 0, 0, ny)).
		WithDescription("weekly planning").
		WithLocation("Room 5").
		WithVisibility(event.VisibilityPrivate)

	var buf bytes.Buffer
	stamp := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, WriteICS(&buf, []event.Event{e}, stamp))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "END:VCALENDAR")
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "UID:ev-1")
	assert.Contains(t, out, "SUMMARY:Team Sync")
	// 09:00 New York summer time is 13:00 UTC.
	assert.Contains(t, out, "DTSTART:20250602T130000Z")
	assert.Contains(t, out, "DTEND:20250602T143000Z")
	assert.Contains(t, out, "DTSTAMP:20250601T120000Z")
	assert.Contains(t, out, "DESCRIPTION:weekly planning")
	assert.Contains(t, out, "LOCATION:Room 5")
	assert.Contains(t, out, "CLASS:PRIVATE")
}

func TestWriteICS_AllDayEvent(t *testing.T) {
	holiday, err := event.NewAllDay("ev-2", "Holiday", time.Date(2025, time.July, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, []event.Event{holiday},
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))

	out := buf.String()
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250704")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250705", "date-valued DTEND is exclusive")
	assert.NotContains(t, out, "CLASS:", "unset visibility stays unset")
}

func TestWriteICS_OneComponentPerEvent(t *testing.T) {
	first := timed(t, "ev-1", "First",
		time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC))
	second := timed(t, "ev-2", "Second",
		time.Date(2025, time.June, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 3, 10, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, []event.Event{first, second}, time.Now()))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Equal(t, 2, strings.Count(out, "END:VEVENT"))
	assert.Contains(t, out, "UID:ev-1")
	assert.Contains(t, out, "UID:ev-2")
}
