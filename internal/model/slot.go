package model

import "errors"

// ErrInvalidSlot is returned when a raw string is not one of the
// enumerated class periods.
var ErrInvalidSlot = errors.New("slot must be first, second, third, fourth or fifth")

// Slot is one of the five class periods of a weekday.  The set is
// closed; a Slot is only constructed through NewSlot, so internal code
// may assume it holds one of the constants below.
type Slot string

const (
    SlotFirst  Slot = "first"
    SlotSecond Slot = "second"
    SlotThird  Slot = "third"
    SlotFourth Slot = "fourth"
    SlotFifth  Slot = "fifth"
)

// Slots returns all class periods in timetable order.
func Slots() []Slot {
    return []Slot{SlotFirst, SlotSecond, SlotThird, SlotFourth, SlotFifth}
}

// NewSlot validates raw against the closed enumeration.
func NewSlot(raw string) (Slot, error) {
    switch Slot(raw) {
    case SlotFirst, SlotSecond, SlotThird, SlotFourth, SlotFifth:
        return Slot(raw), nil
    }
    return "", ErrInvalidSlot
}

// String returns the slot's literal name.
func (s Slot) String() string { return string(s) }
