package model

import (
    "errors"
    "regexp"

    "github.com/google/uuid"
)

// ErrInvalidUUID is returned when a raw string does not match the
// version-7 UUID textual grammar.
var ErrInvalidUUID = errors.New("invalid uuid")

// uuidPattern matches the canonical textual form of a version-7 UUID:
// five hex groups (8-4-4-4-12) with the version nibble fixed to 7 and
// the variant nibble in 8..b.
var uuidPattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUID is a validated version-7 UUID in canonical textual form.  Rooms,
// reservations and slot records are all identified by UUIDs of this
// kind.  The zero value is not a valid UUID; construct one through
// NewUUID or GenerateUUID.
type UUID string

// NewUUID validates raw against the version-7 grammar and returns it as
// a UUID.  No other UUID versions are accepted.
func NewUUID(raw string) (UUID, error) {
    if !uuidPattern.MatchString(raw) {
        return "", ErrInvalidUUID
    }
    return UUID(raw), nil
}

// GenerateUUID returns a freshly generated version-7 UUID.  Version-7
// identifiers embed a millisecond timestamp, so ordering by id
// approximates insertion order.
func GenerateUUID() UUID {
    return UUID(uuid.Must(uuid.NewV7()).String())
}

// String returns the canonical textual form.
func (u UUID) String() string { return string(u) }
