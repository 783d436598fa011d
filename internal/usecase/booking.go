package usecase

import (
    "context"
    "errors"
    "time"

    "github.com/iliyamo/room-reservation/internal/model"
    "github.com/iliyamo/room-reservation/internal/repository"
)

// Booking creates reservations. The preconditions run in a fixed
// order and short-circuit on the first violation: past date, weekday,
// slot availability, weekly quota. The storage layer rechecks the two
// racy conditions at commit time, so a booking that passes here can
// still come back as ErrSlotTaken or ErrWeeklyQuotaExceeded.
type Booking struct {
    store ReservationStore
    now   func() time.Time
}

// NewBooking constructs a Booking. now defaults to time.Now and exists
// so tests can pin the clock.
func NewBooking(store ReservationStore, now func() time.Time) *Booking {
    if store == nil {
        panic("nil store passed to NewBooking")
    }
    if now == nil {
        now = time.Now
    }
    return &Booking{store: store, now: now}
}

// Book reserves (room, date, slot) for the requester and returns the
// id of the new slot record. date must be day-granular.
func (u *Booking) Book(ctx context.Context, roomUUID model.UUID, date time.Time, slot model.Slot, requester model.UserID) (model.UUID, error) {
    today := model.DateOf(u.now())
    if date.Before(today) {
        return "", ErrPastDate
    }
    if !model.IsWeekday(date) {
        return "", ErrNotWeekday
    }

    occupied, err := u.store.Occupied(ctx, roomUUID, date, slot)
    if err != nil {
        return "", storageErr(err)
    }
    if occupied {
        return "", ErrSlotTaken
    }

    monday, friday := model.WeekWindow(date)
    booked, err := u.store.UserHasReservation(ctx, requester, monday, friday)
    if err != nil {
        return "", storageErr(err)
    }
    if booked {
        return "", ErrWeeklyQuotaExceeded
    }

    res := model.Reservation{ID: model.GenerateUUID(), UserID: requester}
    resID := res.ID
    rec := model.SlotRecord{
        ID:            model.GenerateUUID(),
        RoomUUID:      roomUUID,
        Date:          date,
        Slot:          slot,
        Status:        model.StatusReserved,
        ReservationID: &resID,
    }
    if err := u.store.CreateReservation(ctx, rec, res, monday, friday); err != nil {
        switch {
        case errors.Is(err, repository.ErrSlotTaken):
            return "", ErrSlotTaken
        case errors.Is(err, repository.ErrWeeklyConflict):
            return "", ErrWeeklyQuotaExceeded
        }
        return "", storageErr(err)
    }
    return rec.ID, nil
}
