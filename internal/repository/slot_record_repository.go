package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "log"
    "time"

    "github.com/go-sql-driver/mysql"

    "github.com/iliyamo/room-reservation/internal/model"
)

// mysqlDupEntry is the MySQL error number for a unique-key violation.
const mysqlDupEntry = 1062

// bookingLockTimeout bounds how long a booking waits for another
// booking by the same user to finish.
const bookingLockTimeout = 5 * time.Second

// SlotRecordRepo is the storage collaborator for slot records and
// their linked reservations. The two-row writes (create a reservation
// with its slot record, delete them together) are each exposed as one
// call that runs inside a single transaction; callers never see a
// half-written pair.
type SlotRecordRepo struct {
    db *sql.DB
}

// NewSlotRecordRepo returns a new SlotRecordRepo bound to the given database.
func NewSlotRecordRepo(db *sql.DB) *SlotRecordRepo { return &SlotRecordRepo{db: db} }

// Occupied reports whether a slot record (reserved or disabled, both
// block reuse) exists for the (room, date, slot) triple. More than one
// row for the triple means the unique key has been bypassed and
// surfaces as ErrIntegrity.
func (r *SlotRecordRepo) Occupied(ctx context.Context, roomUUID model.UUID, date time.Time, slot model.Slot) (bool, error) {
    const q = `SELECT COUNT(*) FROM slot_records WHERE room_uuid = ? AND date = ? AND slot = ?`
    var count int
    err := r.db.QueryRowContext(ctx, q, string(roomUUID), model.FormatDate(date), string(slot)).Scan(&count)
    if err != nil {
        return false, err
    }
    occupied, err := onePresent(count)
    if errors.Is(err, ErrIntegrity) {
        log.Printf("slot-record-repo: %d records for (%s, %s, %s), want at most 1",
            count, roomUUID, model.FormatDate(date), slot)
    }
    return occupied, err
}

// UserHasReservation reports whether the user holds a reservation
// whose slot record falls within [start, end] inclusive. Disabled
// records carry no reservation and are excluded by the join. The same
// exactly-0-or-1 discipline applies as for Occupied.
func (r *SlotRecordRepo) UserHasReservation(ctx context.Context, userID model.UserID, start, end time.Time) (bool, error) {
    count, err := r.countUserReservations(ctx, r.db, userID, start, end)
    if err != nil {
        return false, err
    }
    booked, err := onePresent(count)
    if errors.Is(err, ErrIntegrity) {
        log.Printf("slot-record-repo: user %s holds %d reservations in [%s, %s], want at most 1",
            userID, count, model.FormatDate(start), model.FormatDate(end))
    }
    return booked, err
}

// queryRower is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type queryRower interface {
    QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *SlotRecordRepo) countUserReservations(ctx context.Context, q queryRower, userID model.UserID, start, end time.Time) (int, error) {
    const query = `SELECT COUNT(*) FROM slot_records sr
                   JOIN reservations res ON res.reservation_uuid = sr.reservation_uuid
                   WHERE res.user_id = ? AND sr.date >= ? AND sr.date <= ?`
    var count int
    err := q.QueryRowContext(ctx, query, string(userID), model.FormatDate(start), model.FormatDate(end)).Scan(&count)
    if err != nil {
        return 0, err
    }
    return count, nil
}

// CreateReservation inserts a reservation and its slot record as one
// atomic unit. Two guards close the races left open by the caller's
// check-then-act sequence:
//
//   - the unique key on (room_uuid, date, slot) rejects the slower of
//     two concurrent bookings for the same triple; the duplicate-entry
//     error is translated to ErrSlotTaken.
//   - a MySQL named lock keyed by the user id serializes a single
//     user's booking attempts, and the weekly-quota count is rerun
//     under that lock before inserting; a second booking in the same
//     week returns ErrWeeklyConflict.
//
// The lock is taken on a dedicated connection so it can be released on
// the same session after commit.
func (r *SlotRecordRepo) CreateReservation(ctx context.Context, rec model.SlotRecord, res model.Reservation, weekStart, weekEnd time.Time) error {
    conn, err := r.db.Conn(ctx)
    if err != nil {
        return err
    }
    defer conn.Close()

    lockName := "booking:" + string(res.UserID)
    var got sql.NullInt64
    if err := conn.QueryRowContext(ctx, `SELECT GET_LOCK(?, ?)`, lockName, int(bookingLockTimeout/time.Second)).Scan(&got); err != nil {
        return err
    }
    if !got.Valid || got.Int64 != 1 {
        return fmt.Errorf("acquire booking lock for %s: timed out", res.UserID)
    }
    defer func() {
        if _, err := conn.ExecContext(context.WithoutCancel(ctx), `DO RELEASE_LOCK(?)`, lockName); err != nil {
            log.Printf("slot-record-repo: release booking lock for %s: %v", res.UserID, err)
        }
    }()

    tx, err := conn.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Recheck the weekly quota now that no other booking by this user
    // can be in flight.
    count, err := r.countUserReservations(ctx, tx, res.UserID, weekStart, weekEnd)
    if err != nil {
        return err
    }
    if count > 0 {
        return ErrWeeklyConflict
    }

    const insRes = `INSERT INTO reservations (reservation_uuid, user_id) VALUES (?, ?)`
    if _, err := tx.ExecContext(ctx, insRes, string(res.ID), string(res.UserID)); err != nil {
        return err
    }

    const insRec = `INSERT INTO slot_records (rord_uuid, room_uuid, date, slot, status, reservation_uuid)
                    VALUES (?, ?, ?, ?, 'reserved', ?)`
    if _, err := tx.ExecContext(ctx, insRec,
        string(rec.ID), string(rec.RoomUUID), model.FormatDate(rec.Date), string(rec.Slot), string(res.ID)); err != nil {
        if isDupEntry(err) {
            return ErrSlotTaken
        }
        return err
    }

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// CreateDisabled inserts a disabled slot record. No reservation row is
// involved, so a single insert suffices; losing the race for the
// triple returns ErrSlotTaken exactly as for bookings.
func (r *SlotRecordRepo) CreateDisabled(ctx context.Context, rec model.SlotRecord) error {
    const q = `INSERT INTO slot_records (rord_uuid, room_uuid, date, slot, status, reservation_uuid)
               VALUES (?, ?, ?, ?, 'disabled', NULL)`
    _, err := r.db.ExecContext(ctx, q,
        string(rec.ID), string(rec.RoomUUID), model.FormatDate(rec.Date), string(rec.Slot))
    if isDupEntry(err) {
        return ErrSlotTaken
    }
    return err
}

// CreateDisabledDay inserts the given disabled slot records, which
// must all target the same (room, date), as one atomic unit. Slots
// already carrying a record are handled by status: a disabled marker
// is skipped so the operation can be retried, while a reservation
// anywhere in the day aborts the whole write with ErrSlotTaken and
// nothing is inserted. Existing rows are read under FOR UPDATE; an
// insert racing a concurrent booking loses on the unique key and also
// surfaces as ErrSlotTaken.
func (r *SlotRecordRepo) CreateDisabledDay(ctx context.Context, recs []model.SlotRecord) error {
    if len(recs) == 0 {
        return nil
    }
    roomUUID := recs[0].RoomUUID
    date := recs[0].Date

    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const sel = `SELECT slot, status FROM slot_records WHERE room_uuid = ? AND date = ? FOR UPDATE`
    rows, err := tx.QueryContext(ctx, sel, string(roomUUID), model.FormatDate(date))
    if err != nil {
        return err
    }
    existing := make(map[model.Slot]model.SlotStatus)
    for rows.Next() {
        var slot, status string
        if err := rows.Scan(&slot, &status); err != nil {
            rows.Close()
            return err
        }
        existing[model.Slot(slot)] = model.SlotStatus(status)
    }
    if err := rows.Err(); err != nil {
        rows.Close()
        return err
    }
    rows.Close()

    for _, status := range existing {
        if status == model.StatusReserved {
            return ErrSlotTaken
        }
    }

    const ins = `INSERT INTO slot_records (rord_uuid, room_uuid, date, slot, status, reservation_uuid)
                 VALUES (?, ?, ?, ?, 'disabled', NULL)`
    for _, rec := range recs {
        if _, ok := existing[rec.Slot]; ok {
            continue
        }
        if _, err := tx.ExecContext(ctx, ins,
            string(rec.ID), string(rec.RoomUUID), model.FormatDate(rec.Date), string(rec.Slot)); err != nil {
            if isDupEntry(err) {
                return ErrSlotTaken
            }
            return err
        }
    }

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// FindForCancel loads the fields the cancellation policy inspects:
// status, date and, for reserved records, the owner's user id.
func (r *SlotRecordRepo) FindForCancel(ctx context.Context, id model.UUID) (*model.SlotRecordForCancel, error) {
    const q = `SELECT sr.status, sr.date, res.user_id
               FROM slot_records sr
               LEFT JOIN reservations res ON res.reservation_uuid = sr.reservation_uuid
               WHERE sr.rord_uuid = ?`
    var rec model.SlotRecordForCancel
    var status string
    var userID sql.NullString
    err := r.db.QueryRowContext(ctx, q, string(id)).Scan(&status, &rec.Date, &userID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRecordNotFound
        }
        return nil, err
    }
    rec.Status = model.SlotStatus(status)
    if userID.Valid {
        uid := model.UserID(userID.String)
        rec.UserID = &uid
    }
    return &rec, nil
}

// DeleteReservation removes a reserved slot record and its linked
// reservation in one transaction. The row is re-read under FOR UPDATE
// so a concurrent cancel observes ErrRecordNotFound instead of
// deleting twice, and a disabled marker is never deleted.
func (r *SlotRecordRepo) DeleteReservation(ctx context.Context, id model.UUID) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const sel = `SELECT reservation_uuid FROM slot_records WHERE rord_uuid = ? FOR UPDATE`
    var resUUID sql.NullString
    if err := tx.QueryRowContext(ctx, sel, string(id)).Scan(&resUUID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrRecordNotFound
        }
        return err
    }
    if !resUUID.Valid {
        return ErrNotReserved
    }

    // The slot record references the reservation, so it goes first.
    if _, err := tx.ExecContext(ctx, `DELETE FROM slot_records WHERE rord_uuid = ?`, string(id)); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE reservation_uuid = ?`, resUUID.String); err != nil {
        return err
    }

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// ListByDateRange returns all slot records with date in [start, end]
// joined with their room's name and, for reserved records, the owning
// user id. Ordered by date then slot (timetable order).
func (r *SlotRecordRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]model.SlotRecordWithRoom, error) {
    const q = `SELECT sr.rord_uuid, sr.room_uuid, rm.name, sr.date, sr.slot, sr.status, res.user_id
               FROM slot_records sr
               JOIN rooms rm ON rm.room_uuid = sr.room_uuid
               LEFT JOIN reservations res ON res.reservation_uuid = sr.reservation_uuid
               WHERE sr.date >= ? AND sr.date <= ?
               ORDER BY sr.date, sr.slot`
    return r.queryRecords(ctx, q, model.FormatDate(start), model.FormatDate(end))
}

// ListByDateRangeForUser is ListByDateRange restricted to records
// relevant to one user: their own reservations plus disabled markers
// (which everyone sees).
func (r *SlotRecordRepo) ListByDateRangeForUser(ctx context.Context, userID model.UserID, start, end time.Time) ([]model.SlotRecordWithRoom, error) {
    const q = `SELECT sr.rord_uuid, sr.room_uuid, rm.name, sr.date, sr.slot, sr.status, res.user_id
               FROM slot_records sr
               JOIN rooms rm ON rm.room_uuid = sr.room_uuid
               LEFT JOIN reservations res ON res.reservation_uuid = sr.reservation_uuid
               WHERE (sr.status = 'disabled' OR res.user_id = ?) AND sr.date >= ? AND sr.date <= ?
               ORDER BY sr.date, sr.slot`
    return r.queryRecords(ctx, q, string(userID), model.FormatDate(start), model.FormatDate(end))
}

func (r *SlotRecordRepo) queryRecords(ctx context.Context, query string, args ...any) ([]model.SlotRecordWithRoom, error) {
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    records := make([]model.SlotRecordWithRoom, 0)
    for rows.Next() {
        var rec model.SlotRecordWithRoom
        var id, roomUUID, slot, status string
        var userID sql.NullString
        if err := rows.Scan(&id, &roomUUID, &rec.RoomName, &rec.Date, &slot, &status, &userID); err != nil {
            return nil, err
        }
        rec.ID = model.UUID(id)
        rec.RoomUUID = model.UUID(roomUUID)
        rec.Slot = model.Slot(slot)
        rec.Status = model.SlotStatus(status)
        if userID.Valid {
            uid := model.UserID(userID.String)
            rec.UserID = &uid
        }
        records = append(records, rec)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return records, nil
}

// isDupEntry reports whether err is a MySQL duplicate-entry error for
// a unique key.
func isDupEntry(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == mysqlDupEntry
}
