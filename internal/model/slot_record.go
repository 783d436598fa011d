package model

import "time"

// SlotStatus describes how a slot record occupies its (room, date,
// slot) triple: booked by a user, or administratively blocked.
type SlotStatus string

const (
    StatusReserved SlotStatus = "reserved"
    StatusDisabled SlotStatus = "disabled"
)

// SlotRecord occupies exactly one (room, date, slot) triple.  At most
// one record may exist per triple; that uniqueness is the central
// invariant of the whole system and is enforced by the storage schema.
//
// Fields:
//  ID            – primary identifier (version-7 UUID).
//  RoomUUID      – room being occupied.
//  Date          – calendar day (UTC midnight, day granularity).
//  Slot          – class period within the day.
//  Status        – reserved or disabled.
//  ReservationID – linked reservation; nil when status is disabled.
type SlotRecord struct {
    ID            UUID       // slot_records.rord_uuid
    RoomUUID      UUID       // slot_records.room_uuid
    Date          time.Time  // slot_records.date
    Slot          Slot       // slot_records.slot
    Status        SlotStatus // slot_records.status
    ReservationID *UUID      // slot_records.reservation_uuid (nullable)
}

// SlotRecordWithRoom is a slot record joined with its room's name and,
// for reserved records, the owning user's id.  It is what date-range
// listings return.
type SlotRecordWithRoom struct {
    ID       UUID
    RoomUUID UUID
    RoomName string
    Date     time.Time
    Slot     Slot
    Status   SlotStatus
    UserID   *UserID // nil for disabled records
}

// SlotRecordForCancel carries the fields the cancellation policy needs:
// the record's status, its date and, when reserved, its owner.
type SlotRecordForCancel struct {
    Status SlotStatus
    Date   time.Time
    UserID *UserID
}
