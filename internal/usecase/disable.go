package usecase

import (
    "context"
    "errors"
    "time"

    "github.com/iliyamo/room-reservation/internal/model"
    "github.com/iliyamo/room-reservation/internal/repository"
)

// Disable marks (room, date, slot) triples as administratively
// unusable. Disabled markers compete for the same per-triple
// uniqueness as bookings and block them the same way.
type Disable struct {
    rooms RoomStore
    store ReservationStore
}

// NewDisable constructs a Disable.
func NewDisable(rooms RoomStore, store ReservationStore) *Disable {
    if rooms == nil || store == nil {
        panic("nil store passed to NewDisable")
    }
    return &Disable{rooms: rooms, store: store}
}

// DisableSlot blocks a single (room, date, slot) triple.
func (u *Disable) DisableSlot(ctx context.Context, roomUUID model.UUID, date time.Time, slot model.Slot) error {
    exists, err := u.rooms.Exists(ctx, roomUUID)
    if err != nil {
        return storageErr(err)
    }
    if !exists {
        return ErrRoomNotFound
    }

    occupied, err := u.store.Occupied(ctx, roomUUID, date, slot)
    if err != nil {
        return storageErr(err)
    }
    if occupied {
        return ErrSlotTaken
    }

    rec := model.SlotRecord{
        ID:       model.GenerateUUID(),
        RoomUUID: roomUUID,
        Date:     date,
        Slot:     slot,
        Status:   model.StatusDisabled,
    }
    if err := u.store.CreateDisabled(ctx, rec); err != nil {
        if errors.Is(err, repository.ErrSlotTaken) {
            return ErrSlotTaken
        }
        return storageErr(err)
    }
    return nil
}

// DisableDate blocks every slot of the date for the room in one
// atomic write. Slots that are already disabled stay as they are, so
// the call can be retried after a failure; a reservation anywhere in
// the day aborts the whole operation and nothing is written.
func (u *Disable) DisableDate(ctx context.Context, roomUUID model.UUID, date time.Time) error {
    exists, err := u.rooms.Exists(ctx, roomUUID)
    if err != nil {
        return storageErr(err)
    }
    if !exists {
        return ErrRoomNotFound
    }

    recs := make([]model.SlotRecord, 0, len(model.Slots()))
    for _, slot := range model.Slots() {
        recs = append(recs, model.SlotRecord{
            ID:       model.GenerateUUID(),
            RoomUUID: roomUUID,
            Date:     date,
            Slot:     slot,
            Status:   model.StatusDisabled,
        })
    }
    if err := u.store.CreateDisabledDay(ctx, recs); err != nil {
        if errors.Is(err, repository.ErrSlotTaken) {
            return ErrSlotTaken
        }
        return storageErr(err)
    }
    return nil
}
