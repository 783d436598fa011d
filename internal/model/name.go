package model

import (
    "errors"
    "unicode/utf8"
)

// Room name length bounds, in characters.
const (
    minNameLen = 3
    maxNameLen = 20
)

var (
    // ErrNameTooShort is returned for room names under 3 characters.
    ErrNameTooShort = errors.New("name must be at least 3 characters long")
    // ErrNameTooLong is returned for room names over 20 characters.
    ErrNameTooLong = errors.New("name must be at most 20 characters long")
)

// RoomName is a validated, human-readable room name.
type RoomName string

// NewRoomName validates raw and returns it as a RoomName.  Length is
// measured in characters, not bytes.
func NewRoomName(raw string) (RoomName, error) {
    n := utf8.RuneCountInString(raw)
    if n < minNameLen {
        return "", ErrNameTooShort
    }
    if n > maxNameLen {
        return "", ErrNameTooLong
    }
    return RoomName(raw), nil
}

// String returns the raw name.
func (n RoomName) String() string { return string(n) }
