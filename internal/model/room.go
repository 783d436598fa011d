package model

// Room is a bookable room.  Rooms are created by administrators and
// only ever read by the reservation flow.
//
// Fields:
//  RoomUUID – primary identifier (version-7 UUID).
//  Name     – display name, 3 to 20 characters.
type Room struct {
    RoomUUID UUID   // rooms.room_uuid
    Name     string // rooms.name
}
