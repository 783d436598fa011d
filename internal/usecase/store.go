package usecase

import (
    "context"
    "time"

    "github.com/iliyamo/room-reservation/internal/model"
)

// ReservationStore is the storage collaborator for slot records and
// their linked reservations. *repository.SlotRecordRepo implements it;
// tests substitute an in-memory fake. Writes that touch two records
// (CreateReservation, DeleteReservation) are atomic: either both rows
// change or neither does.
type ReservationStore interface {
    // Occupied reports whether a slot record (reserved or disabled)
    // exists for the triple.
    Occupied(ctx context.Context, roomUUID model.UUID, date time.Time, slot model.Slot) (bool, error)
    // UserHasReservation reports whether the user holds a reservation
    // dated within [start, end] inclusive.
    UserHasReservation(ctx context.Context, userID model.UserID, start, end time.Time) (bool, error)
    // CreateReservation atomically inserts the reservation and its
    // slot record. It returns repository.ErrSlotTaken when the triple
    // was taken concurrently and repository.ErrWeeklyConflict when the
    // user booked the same week concurrently.
    CreateReservation(ctx context.Context, rec model.SlotRecord, res model.Reservation, weekStart, weekEnd time.Time) error
    // CreateDisabled inserts a disabled slot record.
    CreateDisabled(ctx context.Context, rec model.SlotRecord) error
    // CreateDisabledDay atomically inserts disabled records for one
    // (room, date), skipping slots already disabled. Any reserved slot
    // in the day aborts the write with repository.ErrSlotTaken.
    CreateDisabledDay(ctx context.Context, recs []model.SlotRecord) error
    // FindForCancel loads the status, date and owner of a slot record.
    FindForCancel(ctx context.Context, id model.UUID) (*model.SlotRecordForCancel, error)
    // DeleteReservation atomically removes a reserved slot record and
    // its reservation.
    DeleteReservation(ctx context.Context, id model.UUID) error
    // ListByDateRange returns all slot records dated in [start, end].
    ListByDateRange(ctx context.Context, start, end time.Time) ([]model.SlotRecordWithRoom, error)
    // ListByDateRangeForUser returns the user's reservations plus
    // disabled markers dated in [start, end].
    ListByDateRangeForUser(ctx context.Context, userID model.UserID, start, end time.Time) ([]model.SlotRecordWithRoom, error)
}

// RoomStore is the read side for rooms. *repository.RoomRepo
// implements it.
type RoomStore interface {
    Exists(ctx context.Context, roomUUID model.UUID) (bool, error)
}

// Directory resolves external user ids to profiles. The identity
// client implements it; a request fails as a whole when any id cannot
// be resolved.
type Directory interface {
    Users(ctx context.Context, ids []model.UserID) ([]model.User, error)
}
