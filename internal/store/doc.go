// Package store provides the in-memory event storage for a single calendar.
//
// Events are held in buckets keyed by their exact start instant, with
// insertion order preserved inside a bucket. Bucket keys are kept in a
// sorted index so every listing operation walks events in chronological
// order deterministically.
//
// # Invariants
//
// Conflict predicate: two events conflict iff their open intervals overlap,
// start < other.end AND end > other.start. Events that merely touch at a
// boundary do not conflict. HasConflict is the single source of truth for
// "overlap" throughout the engine; callers never reimplement the test.
//
// Auto-decline: an Add with autoDecline set either inserts a conflict-free
// event or leaves the store completely untouched. Without auto-decline,
// overlapping inserts are permitted (the permissive legacy path), so a
// store may legitimately contain overlapping events.
//
// Identity: events are tracked by their ID. Replace and Remove match by ID
// only, so an edited value (same ID, new fields) can displace its stored
// predecessor in one operation.
//
// The store itself performs no locking; the owning registry serializes
// access.
package store
