package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulty/calendar-app-sub000/internal/event"
	"github.com/atulty/calendar-app-sub000/internal/store"
)

// wall builds a wall-clock time on the UTC carrier, the way command
// parsers hand times to the engine.
func wall(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

// newTestRegistry builds a registry with deterministic event identities.
func newTestRegistry() *Registry {
	return NewRegistry(WithIDGenerator(NewSequenceGenerator("ev")))
}

// useCalendar creates and selects a calendar in one step.
func useCalendar(t *testing.T, r *Registry, name, tz string) {
	t.Helper()
	require.NoError(t, r.CreateCalendar(name, tz))
	require.NoError(t, r.UseCalendar(name))
}

func TestRegistry_CreateCalendar(t *testing.T) {
	r := newTestRegistry()

	require.NoError(t, r.CreateCalendar("work", "America/New_York"))

	err := r.CreateCalendar("work", "Europe/London")
	assert.True(t, IsDuplicate(err), "second create of the same name: %v", err)

	err = r.CreateCalendar("  ", "America/New_York")
	assert.True(t, IsValidation(err), "blank name: %v", err)

	err = r.CreateCalendar("home", "Mars/Olympus")
	assert.True(t, IsValidation(err), "unknown timezone: %v", err)

	err = r.CreateCalendar("home", "")
	assert.True(t, IsValidation(err), "blank timezone: %v", err)
}

func TestRegistry_UseCalendar(t *testing.T) {
	r := newTestRegistry()

	_, _, ok := r.CurrentCalendar()
	assert.False(t, ok, "nothing is in use on a fresh registry")

	err := r.UseCalendar("work")
	assert.True(t, IsNotFound(err), "%v", err)

	require.NoError(t, r.CreateCalendar("work", "America/New_York"))
	require.NoError(t, r.UseCalendar("work"))

	name, loc, ok := r.CurrentCalendar()
	require.True(t, ok)
	assert.Equal(t, "work", name)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestRegistry_CreateEvent_RequiresCalendarInUse(t *testing.T) {
	r := newTestRegistry()
	err := r.CreateEvent("Standup", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 9, 30), true)
	assert.True(t, IsValidation(err), "%v", err)
}

func TestRegistry_CreateEvent_BindsWallClockToCalendarZone(t *testing.T) {
	r := newTestRegistry()
	useCalendar(t, r, "work", "America/New_York")

	require.NoError(t, r.CreateEvent("Standup", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 9, 30), true))

	got, err := r.FindEvent("Standup", wall(2025, time.June, 2, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, 9, got.Start().Hour())
	assert.Equal(t, "America/New_York", got.Start().Location().String())
	assert.Equal(t, "ev-1", got.ID())
}

func TestRegistry_CreateEvent_AutoDecline(t *testing.T) {
	r := newTestRegistry()
	useCalendar(t, r, "work", "UTC")

	require.NoError(t, r.CreateEvent("Base", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 10, 0), true))

	err := r.CreateEvent("Clash", wall(2025, time.June, 2, 9, 30), wall(2025, time.June, 2, 10, 30), true)
	assert.True(t, IsConflict(err), "%v", err)

	// The permissive path stores the overlap.
	require.NoError(t, r.CreateEvent("Clash", wall(2025, time.June, 2, 9, 30), wall(2025, time.June, 2, 10, 30), false))
	all, err := r.AllEvents()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRegistry_CreateEvent_Validation(t *testing.T) {
	r := newTestRegistry()
	useCalendar(t, r, "work", "UTC")

	err := r.CreateEvent("", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 10, 0), true)
	assert.True(t, IsValidation(err), "blank subject: %v", err)

	err = r.CreateEvent("Standup", wall(2025, time.June, 2, 10, 0), wall(2025, time.June, 2, 9, 0), true)
	assert.True(t, IsValidation(err), "end before start: %v", err)
}

func TestRegistry_CreateAllDayEvent(t *testing.T) {
	r := newTestRegistry()
	useCalendar(t, r, "work", "America/New_York")

	require.NoError(t, r.CreateAllDayEvent("Offsite", wall(2025, time.June, 2, 0, 0), true))

	got, err := r.FindEvent("Offsite", wall(2025, time.June, 2, 0, 0))
	require.NoError(t, err)
	assert.True(t, got.AllDay())
	assert.Equal(t, 23, got.End().Hour())
}

func TestRegistry_FindEvent(t *testing.T) {
	r := newTestRegistry()
	useCalendar(t, r, "work", "UTC")
	require.NoError(t, r.CreateEvent("Standup", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 9, 30), true))

	got, err := r.FindEvent("sTANDUP", wall(2025, time.June, 2, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Subject())

	_, err = r.FindEvent("Standup", wall(2025, time.June, 2, 9, 1))
	assert.True(t, IsNotFound(err), "%v", err)
}

func TestRegistry_RemoveEvent(t *testing.T) {
	r := newTestRegistry()
	useCalendar(t, r, "work", "UTC")
	require.NoError(t, r.CreateEvent("Standup", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 9, 30), true))

	require.NoError(t, r.RemoveEvent("standup", wall(2025, time.June, 2, 9, 0)))

	err := r.RemoveEvent("standup", wall(2025, time.June, 2, 9, 0))
	assert.True(t, IsNotFound(err), "%v", err)

	all, err := r.AllEvents()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRegistry_EventsOnDate(t *testing.T) {
	r := newTestRegistry()
	useCalendar(t, r, "work", "UTC")
	require.NoError(t, r.CreateEvent("Morning", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 10, 0), true))
	require.NoError(t, r.CreateEvent("NextDay", wall(2025, time.June, 3, 9, 0), wall(2025, time.June, 3, 10, 0), true))

	got, err := r.EventsOnDate(wall(2025, time.June, 2, 0, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Morning", got[0].Subject())
}

func TestRegistry_EventsInRange(t *testing.T) {
	r := newTestRegistry()
	useCalendar(t, r, "work", "UTC")
	require.NoError(t, r.CreateEvent("Inside", wall(2025, time.June, 2, 10, 0), wall(2025, time.June, 2, 11, 0), true))
	require.NoError(t, r.CreateEvent("RunsPast", wall(2025, time.June, 2, 16, 0), wall(2025, time.June, 2, 18, 0), true))

	got, err := r.EventsInRange(wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 17, 0))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Inside", got[0].Subject())

	_, err = r.EventsInRange(wall(2025, time.June, 2, 17, 0), wall(2025, time.June, 2, 9, 0))
	assert.True(t, IsValidation(err), "inverted range: %v", err)
}

func TestRegistry_OccupiedAt(t *testing.T) {
	r := newTestRegistry()
	useCalendar(t, r, "work", "UTC")
	require.NoError(t, r.CreateEvent("Standup", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 10, 0), true))

	busy, err := r.OccupiedAt(wall(2025, time.June, 2, 9, 30))
	require.NoError(t, err)
	assert.True(t, busy)

	busy, err = r.OccupiedAt(wall(2025, time.June, 2, 10, 0))
	require.NoError(t, err)
	assert.False(t, busy, "an event does not cover its end")
}

func TestRegistry_RenameCalendar(t *testing.T) {
	r := newTestRegistry()
	useCalendar(t, r, "work", "America/New_York")
	require.NoError(t, r.CreateEvent("Standup", wall(2025, time.June, 2, 9, 0), wall(2025, time.June, 2, 9, 30), true))

	require.NoError(t, r.RenameCalendar("work", "office"))

	err := r.UseCalendar("work")
	assert.True(t, IsNotFound(err), "old name no longer resolves: %v", err)

	// The active selection follows the rename.
	name, _, ok := r.CurrentCalendar()
	require.True(t, ok)
	assert.Equal(t, "office", name)

	got, err := r.FindEvent("Standup", wall(2025, time.June, 2, 9, 0))
	require.NoError(t, err, "events ride along unchanged")
	assert.Equal(t, "ev-1", got.ID())
	assert.Equal(t, 9, got.Start().Hour(), "no timestamp rewriting on rename")
}

func TestRegistry_RenameCalendar_TakenName(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.CreateCalendar("work", "UTC"))
	require.NoError(t, r.CreateCalendar("home", "UTC"))

	err := r.RenameCalendar("work", "home")
	assert.True(t, IsDuplicate(err), "%v", err)

	err = r.RenameCalendar("work", "work")
	assert.True(t, IsDuplicate(err), "renaming to the own name counts as taken: %v", err)

	err = r.RenameCalendar("gone", "anything")
	assert.True(t, IsNotFound(err), "%v", err)
}

func TestRegistry_SetCalendarTimezone_RewritesWallClock(t *testing.T) {
	r := newTestRegistry()
	useCalendar(t, r, "work", "America/New_York")
	require.NoError(t, r.CreateEvent("Call", wall(2025, time.June, 2, 10, 0), wall(2025, time.June, 2, 12, 59), true))

	before, err := r.FindEvent("Call", wall(2025, time.June, 2, 10, 0))
	require.NoError(t, err)

	require.NoError(t, r.SetCalendarTimezone("work", "Europe/London"))

	// Summer offset between New York and London is five hours.
	after, err := r.FindEvent("Call", wall(2025, time.June, 2, 15, 0))
	require.NoError(t, err)
	assert.Equal(t, 15, after.Start().Hour())
	assert.Equal(t, 17, after.End().Hour())
	assert.Equal(t, 59, after.End().Minute())
	assert.True(t, after.Start().Equal(before.Start()), "the instant is preserved")

	_, err = r.FindEvent("Call", wall(2025, time.June, 2, 10, 0))
	assert.True(t, IsNotFound(err), "the old wall time no longer matches: %v", err)

	_, loc, ok := r.CurrentCalendar()
	require.True(t, ok)
	assert.Equal(t, "Europe/London", loc.String())
}

func TestRegistry_SetCalendarTimezone_Validation(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.CreateCalendar("work", "UTC"))

	err := r.SetCalendarTimezone("gone", "UTC")
	assert.True(t, IsNotFound(err), "%v", err)

	err = r.SetCalendarTimezone("work", "Nowhere/Nothing")
	assert.True(t, IsValidation(err), "%v", err)
}

func TestRegistry_TransferEvents(t *testing.T) {
	r := newTestRegistry()
	useCalendar(t, r, "work", "America/New_York")

	staged := store.New()
	utc14, err := event.New("imp-1", "Imported", wall(2025, time.June, 2, 14, 0), wall(2025, time.June, 2, 15, 0))
	require.NoError(t, err)
	require.NoError(t, staged.Add(utc14, false))

	n, err := r.TransferEvents(staged)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// 14:00 UTC is 10:00 in New York during summer.
	got, err := r.FindEvent("Imported", wall(2025, time.June, 2, 10, 0))
	require.NoError(t, err)
	assert.True(t, got.Start().Equal(utc14.Start()), "transfer preserves the instant")
}

func TestRegistry_TransferEvents_RequiresCalendarInUse(t *testing.T) {
	r := newTestRegistry()
	_, err := r.TransferEvents(store.New())
	assert.True(t, IsValidation(err), "%v", err)
}
