package usecase

import (
    "context"
    "errors"
    "time"

    "github.com/iliyamo/room-reservation/internal/model"
    "github.com/iliyamo/room-reservation/internal/repository"
)

// DefaultCancelLeadDays is the minimum number of days between today
// and a reservation's date for cancellation to be allowed. The
// boundary is inclusive: with a lead of 3, a reservation dated exactly
// today+3 may still be cancelled. A lead of 0 only blocks cancelling
// reservations whose date has passed.
const DefaultCancelLeadDays = 3

// Cancellation checks the cancellation policy and removes
// reservations. Ownership and status are checked before the lead-time
// rule so a foreign or disabled record never leaks timing information.
type Cancellation struct {
    store    ReservationStore
    leadDays int
    now      func() time.Time
}

// NewCancellation constructs a Cancellation with the given lead time
// in days. Negative leads are clamped to zero; now defaults to
// time.Now.
func NewCancellation(store ReservationStore, leadDays int, now func() time.Time) *Cancellation {
    if store == nil {
        panic("nil store passed to NewCancellation")
    }
    if leadDays < 0 {
        leadDays = 0
    }
    if now == nil {
        now = time.Now
    }
    return &Cancellation{store: store, leadDays: leadDays, now: now}
}

// Cancel removes the reservation behind the slot record id on behalf
// of the requester. On success the (room, date, slot) triple is free
// again.
func (u *Cancellation) Cancel(ctx context.Context, id model.UUID, requester model.UserID) error {
    rec, err := u.store.FindForCancel(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrRecordNotFound) {
            return ErrNotFound
        }
        return storageErr(err)
    }
    if rec.Status != model.StatusReserved || rec.UserID == nil {
        return ErrNotAReservation
    }
    if *rec.UserID != requester {
        return ErrForbidden
    }

    earliest := model.DateOf(u.now()).AddDate(0, 0, u.leadDays)
    if rec.Date.Before(earliest) {
        return ErrTooCloseToDate
    }

    if err := u.store.DeleteReservation(ctx, id); err != nil {
        switch {
        case errors.Is(err, repository.ErrRecordNotFound):
            return ErrNotFound
        case errors.Is(err, repository.ErrNotReserved):
            return ErrNotAReservation
        }
        return storageErr(err)
    }
    return nil
}
