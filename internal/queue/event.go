// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a slot reservation is
// successfully created. It carries enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type ReservationConfirmedEvent struct {
    RecordID    string `json:"rord_uuid"`
    UserID      string `json:"user_id"`
    RoomUUID    string `json:"room_uuid"`
    Date        string `json:"date"`
    Slot        string `json:"slot"`
    ConfirmedAt string `json:"confirmed_at"`
}

// ReservationCancelledEvent is published when an owner cancels their
// reservation and the slot becomes free again.
type ReservationCancelledEvent struct {
    RecordID    string `json:"rord_uuid"`
    UserID      string `json:"user_id"`
    CancelledAt string `json:"cancelled_at"`
}
