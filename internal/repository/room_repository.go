package repository

import (
    "context"
    "database/sql"
    "errors"
    "log"
    "time"

    "github.com/iliyamo/room-reservation/internal/model"
)

// RoomRepo provides read access to rooms and the single admin write
// that creates one. Rooms are referenced by the reservation flow but
// never mutated by it.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// Create inserts a new room. The caller supplies a freshly generated
// id and an already validated name.
func (r *RoomRepo) Create(ctx context.Context, room model.Room) error {
    const q = `INSERT INTO rooms (room_uuid, name) VALUES (?, ?)`
    _, err := r.db.ExecContext(ctx, q, string(room.RoomUUID), room.Name)
    return err
}

// List returns all rooms ordered by id. Version-7 ids are
// time-ordered, so this is creation order.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
    const q = `SELECT room_uuid, name FROM rooms ORDER BY room_uuid`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    rooms := make([]model.Room, 0)
    for rows.Next() {
        var rm model.Room
        var id string
        if err := rows.Scan(&id, &rm.Name); err != nil {
            return nil, err
        }
        rm.RoomUUID = model.UUID(id)
        rooms = append(rooms, rm)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return rooms, nil
}

// Exists reports whether a room with the given id exists. A count
// above one means the primary key is corrupted and surfaces as
// ErrIntegrity rather than being coerced to true.
func (r *RoomRepo) Exists(ctx context.Context, roomUUID model.UUID) (bool, error) {
    const q = `SELECT COUNT(*) FROM rooms WHERE room_uuid = ?`
    var count int
    if err := r.db.QueryRowContext(ctx, q, string(roomUUID)).Scan(&count); err != nil {
        return false, err
    }
    exists, err := onePresent(count)
    if errors.Is(err, ErrIntegrity) {
        log.Printf("room-repo: %d rows for room %s, want at most 1", count, roomUUID)
    }
    return exists, err
}

// ListAvailable returns the rooms that have no slot record for the
// given (date, slot), i.e. the rooms still bookable then.
func (r *RoomRepo) ListAvailable(ctx context.Context, date time.Time, slot model.Slot) ([]model.Room, error) {
    const q = `SELECT room_uuid, name FROM rooms WHERE room_uuid NOT IN (
                   SELECT room_uuid FROM slot_records WHERE date = ? AND slot = ?
               ) ORDER BY room_uuid`
    rows, err := r.db.QueryContext(ctx, q, model.FormatDate(date), string(slot))
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    rooms := make([]model.Room, 0)
    for rows.Next() {
        var rm model.Room
        var id string
        if err := rows.Scan(&id, &rm.Name); err != nil {
            return nil, err
        }
        rm.RoomUUID = model.UUID(id)
        rooms = append(rooms, rm)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return rooms, nil
}
