package model

// Reservation records which user owns a reserved slot.  A reservation
// exists only while a slot record with status "reserved" points at it;
// the two rows are created and deleted together as one unit.
//
// Fields:
//  ID     – primary identifier (version-7 UUID).
//  UserID – external id of the owning user.
type Reservation struct {
    ID     UUID   // reservations.reservation_uuid
    UserID UserID // reservations.user_id
}
