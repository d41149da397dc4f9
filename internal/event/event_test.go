package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wall builds a wall-clock time in UTC, the neutral carrier used by tests
// that don't care about zones.
func wall(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestNew_Valid(t *testing.T) {
	e, err := New("ev-1", "Standup", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 9, 30))
	require.NoError(t, err)

	assert.Equal(t, "ev-1", e.ID())
	assert.Equal(t, "Standup", e.Subject())
	assert.Equal(t, wall(2025, time.June, 2, 9, 0), e.Start())
	assert.Equal(t, wall(2025, time.June, 2, 9, 30), e.End())
	assert.Equal(t, 30*time.Minute, e.Duration())
	assert.Empty(t, e.Description())
	assert.Empty(t, e.Location())
	assert.Equal(t, VisibilityDefault, e.Visibility())
	assert.False(t, e.Recurring())
}

func TestNew_Validation(t *testing.T) {
	start := wall(2025, time.June, 2, 9, 0)
	end := wall(2025, time.June, 2, 10, 0)

	tests := []struct {
		name    string
		subject string
		start   time.Time
		end     time.Time
	}{
		{"empty subject", "", start, end},
		{"blank subject", "   ", start, end},
		{"end before start", "Standup", end, start},
		{"zero start", "Standup", time.Time{}, end},
		{"zero end", "Standup", start, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("ev-1", tt.subject, tt.start, tt.end)
			assert.Error(t, err)
		})
	}
}

func TestNew_ZeroDurationAllowed(t *testing.T) {
	at := wall(2025, time.June, 2, 9, 0)
	e, err := New("ev-1", "Reminder", at, at)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), e.Duration())
}

func TestNewAllDay(t *testing.T) {
	e, err := NewAllDay("ev-1", "Offsite", wall(2025, time.June, 2, 14, 45))
	require.NoError(t, err)

	assert.Equal(t, wall(2025, time.June, 2, 0, 0), e.Start())
	assert.Equal(t, wall(2025, time.June, 2, 23, 59), e.End())
	assert.True(t, e.AllDay())
}

func TestEvent_AllDay_Negative(t *testing.T) {
	timed, err := New("ev-1", "Standup", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 9, 30))
	require.NoError(t, err)
	assert.False(t, timed.AllDay())

	// Midnight-to-23:59 across two different days is not all-day.
	spanning, err := New("ev-2", "Overnight", wall(2025, time.June, 2, 0, 0), wall(2025, time.June, 3, 23, 59))
	require.NoError(t, err)
	assert.False(t, spanning.AllDay())
}

func TestEvent_Overlaps(t *testing.T) {
	mk := func(t *testing.T, sh, sm, eh, em int) Event {
		t.Helper()
		e, err := New("ev", "X", wall(2025, time.June, 2, sh, sm), wall(2025, time.June, 2, eh, em))
		require.NoError(t, err)
		return e
	}

	tests := []struct {
		name string
		a, b Event
		want bool
	}{
		{"partial overlap", mk(t, 9, 0, 10, 0), mk(t, 9, 30, 10, 30), true},
		{"contained", mk(t, 9, 0, 12, 0), mk(t, 10, 0, 11, 0), true},
		{"identical", mk(t, 9, 0, 10, 0), mk(t, 9, 0, 10, 0), true},
		{"touching does not overlap", mk(t, 9, 0, 10, 0), mk(t, 10, 0, 11, 0), false},
		{"disjoint", mk(t, 9, 0, 10, 0), mk(t, 11, 0, 12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestEvent_Overlaps_ComparesInstants(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 10:00 New York and 15:00 London are the same instant in summer.
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	a, err := New("ev-1", "A",
		time.Date(2025, time.June, 2, 10, 0, 0, 0, ny),
		time.Date(2025, time.June, 2, 11, 0, 0, 0, ny))
	require.NoError(t, err)

	b, err := New("ev-2", "B",
		time.Date(2025, time.June, 2, 15, 30, 0, 0, london),
		time.Date(2025, time.June, 2, 16, 30, 0, 0, london))
	require.NoError(t, err)

	assert.True(t, a.Overlaps(b))
}

func TestEvent_StartsOn(t *testing.T) {
	e, err := New("ev-1", "Overnight", wall(2025, time.June, 2, 23, 0), wall(2025, time.June, 3, 2, 0))
	require.NoError(t, err)

	assert.True(t, e.StartsOn(wall(2025, time.June, 2, 0, 0)))
	assert.True(t, e.StartsOn(wall(2025, time.June, 2, 18, 30)), "time of day is ignored")
	assert.False(t, e.StartsOn(wall(2025, time.June, 3, 0, 0)), "spanning into a day is not starting on it")
}

func TestEvent_SameSubject(t *testing.T) {
	e, err := New("ev-1", "Team Sync", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 10, 0))
	require.NoError(t, err)

	assert.True(t, e.SameSubject("team sync"))
	assert.True(t, e.SameSubject("TEAM SYNC"))
	assert.False(t, e.SameSubject("team"))
}

func TestEvent_WithStart_Validation(t *testing.T) {
	e, err := New("ev-1", "Standup", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 10, 0))
	require.NoError(t, err)

	_, err = e.WithStart(wall(2025, time.June, 2, 10, 30))
	assert.Error(t, err, "start after current end must be rejected")

	moved, err := e.WithStart(wall(2025, time.June, 2, 8, 0))
	require.NoError(t, err)
	assert.Equal(t, wall(2025, time.June, 2, 8, 0), moved.Start())
	assert.Equal(t, wall(2025, time.June, 2, 9, 0), e.Start(), "original value is untouched")
}

func TestEvent_WithEnd_Validation(t *testing.T) {
	e, err := New("ev-1", "Standup", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 10, 0))
	require.NoError(t, err)

	_, err = e.WithEnd(wall(2025, time.June, 2, 8, 30))
	assert.Error(t, err, "end before current start must be rejected")
}

func TestEvent_With_CopySemantics(t *testing.T) {
	e, err := New("ev-1", "Standup", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 10, 0))
	require.NoError(t, err)

	annotated := e.WithDescription("daily").WithLocation("Room 1").WithVisibility(VisibilityPrivate)

	assert.Equal(t, "daily", annotated.Description())
	assert.Equal(t, "Room 1", annotated.Location())
	assert.Equal(t, VisibilityPrivate, annotated.Visibility())
	assert.Equal(t, "ev-1", annotated.ID(), "identity survives edits")

	assert.Empty(t, e.Description())
	assert.Empty(t, e.Location())
	assert.Equal(t, VisibilityDefault, e.Visibility())
}

func TestEvent_In_PreservesInstant(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	e, err := New("ev-1", "Call",
		time.Date(2025, time.June, 2, 10, 0, 0, 0, ny),
		time.Date(2025, time.June, 2, 12, 59, 0, 0, ny))
	require.NoError(t, err)

	moved := e.In(london)

	// Summer offset difference between New York and London is five hours.
	assert.Equal(t, 15, moved.Start().Hour())
	assert.Equal(t, 17, moved.End().Hour())
	assert.Equal(t, 59, moved.End().Minute())
	assert.True(t, moved.Start().Equal(e.Start()), "instant is preserved")
	assert.True(t, moved.End().Equal(e.End()), "instant is preserved")
	assert.Equal(t, e.Duration(), moved.Duration())
}

func TestEvent_Rescheduled(t *testing.T) {
	e, err := New("ev-1", "Standup", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 10, 0))
	require.NoError(t, err)
	e = e.WithDescription("daily").WithLocation("Room 1").WithVisibility(VisibilityPrivate)

	dup, err := e.Rescheduled("ev-2", wall(2025, time.June, 9, 9, 0), wall(2025, time.June, 9, 10, 0))
	require.NoError(t, err)

	assert.Equal(t, "ev-2", dup.ID())
	assert.Equal(t, "Standup", dup.Subject())
	assert.Equal(t, "daily", dup.Description())
	assert.Equal(t, "Room 1", dup.Location())
	assert.Equal(t, VisibilityPrivate, dup.Visibility())
	assert.Equal(t, wall(2025, time.June, 9, 9, 0), dup.Start())

	_, err = e.Rescheduled("ev-3", wall(2025, time.June, 9, 11, 0), wall(2025, time.June, 9, 10, 0))
	assert.Error(t, err, "rescheduling must re-validate ordering")
}

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		in      string
		want    Visibility
		wantErr bool
	}{
		{"public", VisibilityPublic, false},
		{"PRIVATE", VisibilityPrivate, false},
		{" private ", VisibilityPrivate, false},
		{"", VisibilityDefault, false},
		{"secret", VisibilityDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVisibility(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVisibility_String(t *testing.T) {
	assert.Equal(t, "default", VisibilityDefault.String())
	assert.Equal(t, "public", VisibilityPublic.String())
	assert.Equal(t, "private", VisibilityPrivate.String())
}
