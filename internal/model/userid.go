package model

import (
    "errors"
    "regexp"
)

// ErrInvalidUserID is returned when a raw string is not a well-formed
// external user identifier.
var ErrInvalidUserID = errors.New("invalid user id")

// userIDPattern matches identifiers issued by the external identity
// provider: the literal prefix "user_" followed by one or more
// alphanumeric characters.
var userIDPattern = regexp.MustCompile(`^user_[A-Za-z0-9]+$`)

// UserID identifies a user within the external identity provider.  The
// service never creates or mutates users; it only stores their ids as
// foreign references on reservations.
type UserID string

// NewUserID validates raw and returns it as a UserID.
func NewUserID(raw string) (UserID, error) {
    if !userIDPattern.MatchString(raw) {
        return "", ErrInvalidUserID
    }
    return UserID(raw), nil
}

// String returns the raw identifier.
func (u UserID) String() string { return string(u) }
