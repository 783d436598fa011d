// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// usecases to distinguish between different failure scenarios: a write
// that lost the race for a (room, date, slot) triple returns
// ErrSlotTaken, while a count query that finds more than one row for a
// triple that must hold at most one returns ErrIntegrity, which
// indicates corruption and is logged before being returned.
package repository

import "errors"

// ErrRoomNotFound is returned when a referenced room does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrRecordNotFound is returned when no slot record exists for an id.
var ErrRecordNotFound = errors.New("slot record not found")

// ErrSlotTaken is returned when an insert collides with an existing
// slot record for the same (room, date, slot) triple. The schema's
// unique key makes this the outcome of the check-then-act race: both
// writers may observe the triple as free, but only one commit wins.
var ErrSlotTaken = errors.New("slot already occupied")

// ErrWeeklyConflict is returned when a reservation insert finds, under
// the per-user lock, that the user already holds a reservation in the
// target week.
var ErrWeeklyConflict = errors.New("user already holds a reservation in this week")

// ErrNotReserved is returned when a delete targets a slot record that
// carries no reservation (a disabled marker).
var ErrNotReserved = errors.New("slot record is not a reservation")

// ErrIntegrity is returned when a count that must be exactly 0 or 1
// comes back larger. It is never coerced to a boolean answer.
var ErrIntegrity = errors.New("slot record count invariant violated")
