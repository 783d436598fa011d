// Package usecase implements the booking, disabling and cancellation
// rules on top of a narrow storage interface. Each operation returns
// one of the sentinel errors below on a rule violation; unexpected
// storage faults are wrapped in ErrStorage. The usecases never retry:
// rule violations are final and storage faults are the caller's call.
package usecase

import (
    "errors"
    "fmt"
)

var (
    // ErrPastDate: the requested date lies before today. Same-day
    // bookings are allowed; the comparison is day-granular.
    ErrPastDate = errors.New("cannot book a date in the past")

    // ErrNotWeekday: slots exist Monday through Friday only.
    ErrNotWeekday = errors.New("date is not a weekday")

    // ErrSlotTaken: the (room, date, slot) triple is already reserved
    // or disabled.
    ErrSlotTaken = errors.New("slot is already taken")

    // ErrWeeklyQuotaExceeded: the user already holds a reservation in
    // the Monday-Friday window containing the requested date.
    ErrWeeklyQuotaExceeded = errors.New("user already has a reservation this week")

    // ErrRoomNotFound: the referenced room does not exist.
    ErrRoomNotFound = errors.New("room does not exist")

    // ErrNotFound: no slot record exists for the given id.
    ErrNotFound = errors.New("reservation not found")

    // ErrNotAReservation: the slot record is a disabled marker, which
    // is an administrative block and cannot be cancelled.
    ErrNotAReservation = errors.New("slot record is a disabled marker, not a reservation")

    // ErrForbidden: the requester does not own the reservation.
    ErrForbidden = errors.New("reservation belongs to another user")

    // ErrTooCloseToDate: the reservation's date is nearer than the
    // cancellation lead time.
    ErrTooCloseToDate = errors.New("reservation starts too soon to cancel")

    // ErrStorage wraps unexpected faults from the storage layer.
    ErrStorage = errors.New("storage failure")
)

// storageErr wraps err in ErrStorage so callers can match the class
// with errors.Is while the cause stays in the message.
func storageErr(err error) error {
    return fmt.Errorf("%w: %v", ErrStorage, err)
}
