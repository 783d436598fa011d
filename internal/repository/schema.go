package repository

import (
    "context"
    "database/sql"
)

// schema is applied at startup with CREATE TABLE IF NOT EXISTS, so
// repeated boots are harmless. The unique key on (room_uuid, date,
// slot) is the commit-time guard for the occupancy invariant; the
// application-level availability check alone cannot close the
// check-then-act window between two concurrent bookings.
var schema = []string{
    `CREATE TABLE IF NOT EXISTS rooms (
        room_uuid CHAR(36) NOT NULL,
        name      VARCHAR(20) NOT NULL,
        PRIMARY KEY (room_uuid)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS reservations (
        reservation_uuid CHAR(36) NOT NULL,
        user_id          VARCHAR(64) NOT NULL,
        PRIMARY KEY (reservation_uuid),
        KEY idx_reservations_user (user_id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS slot_records (
        rord_uuid        CHAR(36) NOT NULL,
        room_uuid        CHAR(36) NOT NULL,
        date             DATE NOT NULL,
        slot             ENUM('first','second','third','fourth','fifth') NOT NULL,
        status           ENUM('reserved','disabled') NOT NULL,
        reservation_uuid CHAR(36) NULL,
        PRIMARY KEY (rord_uuid),
        UNIQUE KEY uniq_room_date_slot (room_uuid, date, slot),
        KEY idx_slot_records_date (date),
        CONSTRAINT fk_slot_records_room
            FOREIGN KEY (room_uuid) REFERENCES rooms (room_uuid),
        CONSTRAINT fk_slot_records_reservation
            FOREIGN KEY (reservation_uuid) REFERENCES reservations (reservation_uuid)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
    for _, stmt := range schema {
        if _, err := db.ExecContext(ctx, stmt); err != nil {
            return err
        }
    }
    return nil
}
