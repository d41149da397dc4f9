// Package engine implements the calendar engine: a registry of named
// calendars, each bound to an event store, with conflict-checked event
// creation, recurrence-series commit, cross-calendar copying, and
// validated editing.
//
// # Thread-safety model
//
// A single mutex on the Registry serializes every exported operation, so
// conflict-check-then-insert is one atomic critical section: an event
// inserted under auto-decline can never end up overlapping a stored event,
// even under concurrent writers. Events are immutable values, so anything
// an operation returns is safe to hold without further locking.
//
// # Failure model
//
// Failed operations return *Error carrying one of four kinds: validation,
// conflict, not-found, duplicate. All four are expected, recoverable
// outcomes reported synchronously to the caller; the engine never reports
// failures through an output stream and never panics on bad input.
//
// # Time model
//
// Callers pass wall-clock times (the civil fields carry the meaning; the
// carrier location does not). The engine rebinds every incoming wall time
// to the owning calendar's timezone at the boundary. Stored events carry
// their calendar's location, so a calendar timezone change preserves each
// event's instant while rewriting its wall-clock rendering.
package engine
