package usecase

import (
    "context"
    "sort"
    "sync"
    "time"

    "github.com/iliyamo/room-reservation/internal/model"
    "github.com/iliyamo/room-reservation/internal/repository"
)

// fakeStore is an in-memory stand-in for the MySQL repositories. Its
// write methods hold one mutex across the recheck-and-insert sequence,
// mirroring how the real store closes the check-then-act window with a
// unique key and a per-user lock.
type fakeStore struct {
    mu           sync.Mutex
    rooms        map[model.UUID]model.Room
    records      map[model.UUID]model.SlotRecord
    reservations map[model.UUID]model.Reservation
    roomNames    map[model.UUID]string
    failWith     error // when set, every call fails with it
}

func newFakeStore() *fakeStore {
    return &fakeStore{
        rooms:        make(map[model.UUID]model.Room),
        records:      make(map[model.UUID]model.SlotRecord),
        reservations: make(map[model.UUID]model.Reservation),
        roomNames:    make(map[model.UUID]string),
    }
}

func (s *fakeStore) addRoom(name string) model.UUID {
    s.mu.Lock()
    defer s.mu.Unlock()
    id := model.GenerateUUID()
    s.rooms[id] = model.Room{RoomUUID: id, Name: name}
    s.roomNames[id] = name
    return id
}

// seed inserts a slot record (and, for reserved ones, its reservation)
// directly, bypassing the booking rules.
func (s *fakeStore) seed(rec model.SlotRecord, owner model.UserID) model.UUID {
    s.mu.Lock()
    defer s.mu.Unlock()
    if rec.ID == "" {
        rec.ID = model.GenerateUUID()
    }
    if rec.Status == model.StatusReserved {
        res := model.Reservation{ID: model.GenerateUUID(), UserID: owner}
        s.reservations[res.ID] = res
        resID := res.ID
        rec.ReservationID = &resID
    }
    s.records[rec.ID] = rec
    return rec.ID
}

func (s *fakeStore) Exists(ctx context.Context, roomUUID model.UUID) (bool, error) {
    if s.failWith != nil {
        return false, s.failWith
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    _, ok := s.rooms[roomUUID]
    return ok, nil
}

func (s *fakeStore) Occupied(ctx context.Context, roomUUID model.UUID, date time.Time, slot model.Slot) (bool, error) {
    if s.failWith != nil {
        return false, s.failWith
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    switch s.countTripleLocked(roomUUID, date, slot) {
    case 0:
        return false, nil
    case 1:
        return true, nil
    }
    return false, repository.ErrIntegrity
}

// countTripleLocked counts the slot records occupying a triple. More
// than one is possible here because seed bypasses the uniqueness the
// real schema enforces, which is exactly what the integrity tests need.
func (s *fakeStore) countTripleLocked(roomUUID model.UUID, date time.Time, slot model.Slot) int {
    n := 0
    for _, rec := range s.records {
        if rec.RoomUUID == roomUUID && rec.Date.Equal(date) && rec.Slot == slot {
            n++
        }
    }
    return n
}

func (s *fakeStore) UserHasReservation(ctx context.Context, userID model.UserID, start, end time.Time) (bool, error) {
    if s.failWith != nil {
        return false, s.failWith
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    switch s.countUserWeekLocked(userID, start, end) {
    case 0:
        return false, nil
    case 1:
        return true, nil
    }
    return false, repository.ErrIntegrity
}

func (s *fakeStore) countUserWeekLocked(userID model.UserID, start, end time.Time) int {
    n := 0
    for _, rec := range s.records {
        if rec.Status != model.StatusReserved || rec.ReservationID == nil {
            continue
        }
        res, ok := s.reservations[*rec.ReservationID]
        if !ok || res.UserID != userID {
            continue
        }
        if !rec.Date.Before(start) && !rec.Date.After(end) {
            n++
        }
    }
    return n
}

func (s *fakeStore) CreateReservation(ctx context.Context, rec model.SlotRecord, res model.Reservation, weekStart, weekEnd time.Time) error {
    if s.failWith != nil {
        return s.failWith
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.countTripleLocked(rec.RoomUUID, rec.Date, rec.Slot) > 0 {
        return repository.ErrSlotTaken
    }
    if s.countUserWeekLocked(res.UserID, weekStart, weekEnd) > 0 {
        return repository.ErrWeeklyConflict
    }
    s.reservations[res.ID] = res
    s.records[rec.ID] = rec
    return nil
}

func (s *fakeStore) CreateDisabled(ctx context.Context, rec model.SlotRecord) error {
    if s.failWith != nil {
        return s.failWith
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.countTripleLocked(rec.RoomUUID, rec.Date, rec.Slot) > 0 {
        return repository.ErrSlotTaken
    }
    s.records[rec.ID] = rec
    return nil
}

func (s *fakeStore) CreateDisabledDay(ctx context.Context, recs []model.SlotRecord) error {
    if s.failWith != nil {
        return s.failWith
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    existing := make(map[model.Slot]model.SlotStatus)
    for _, rec := range s.records {
        if len(recs) > 0 && rec.RoomUUID == recs[0].RoomUUID && rec.Date.Equal(recs[0].Date) {
            existing[rec.Slot] = rec.Status
        }
    }
    for _, status := range existing {
        if status == model.StatusReserved {
            return repository.ErrSlotTaken
        }
    }
    for _, rec := range recs {
        if _, ok := existing[rec.Slot]; ok {
            continue
        }
        s.records[rec.ID] = rec
    }
    return nil
}

func (s *fakeStore) FindForCancel(ctx context.Context, id model.UUID) (*model.SlotRecordForCancel, error) {
    if s.failWith != nil {
        return nil, s.failWith
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    rec, ok := s.records[id]
    if !ok {
        return nil, repository.ErrRecordNotFound
    }
    out := &model.SlotRecordForCancel{Status: rec.Status, Date: rec.Date}
    if rec.ReservationID != nil {
        if res, ok := s.reservations[*rec.ReservationID]; ok {
            uid := res.UserID
            out.UserID = &uid
        }
    }
    return out, nil
}

func (s *fakeStore) DeleteReservation(ctx context.Context, id model.UUID) error {
    if s.failWith != nil {
        return s.failWith
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    rec, ok := s.records[id]
    if !ok {
        return repository.ErrRecordNotFound
    }
    if rec.Status != model.StatusReserved || rec.ReservationID == nil {
        return repository.ErrNotReserved
    }
    delete(s.records, id)
    delete(s.reservations, *rec.ReservationID)
    return nil
}

func (s *fakeStore) ListByDateRange(ctx context.Context, start, end time.Time) ([]model.SlotRecordWithRoom, error) {
    if s.failWith != nil {
        return nil, s.failWith
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.collectLocked(start, end, func(rec model.SlotRecord, owner *model.UserID) bool {
        return true
    }), nil
}

func (s *fakeStore) ListByDateRangeForUser(ctx context.Context, userID model.UserID, start, end time.Time) ([]model.SlotRecordWithRoom, error) {
    if s.failWith != nil {
        return nil, s.failWith
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.collectLocked(start, end, func(rec model.SlotRecord, owner *model.UserID) bool {
        if rec.Status == model.StatusDisabled {
            return true
        }
        return owner != nil && *owner == userID
    }), nil
}

func (s *fakeStore) collectLocked(start, end time.Time, keep func(model.SlotRecord, *model.UserID) bool) []model.SlotRecordWithRoom {
    slotIndex := make(map[model.Slot]int)
    for i, slot := range model.Slots() {
        slotIndex[slot] = i
    }
    out := make([]model.SlotRecordWithRoom, 0)
    for _, rec := range s.records {
        if rec.Date.Before(start) || rec.Date.After(end) {
            continue
        }
        var owner *model.UserID
        if rec.ReservationID != nil {
            if res, ok := s.reservations[*rec.ReservationID]; ok {
                uid := res.UserID
                owner = &uid
            }
        }
        if !keep(rec, owner) {
            continue
        }
        out = append(out, model.SlotRecordWithRoom{
            ID:       rec.ID,
            RoomUUID: rec.RoomUUID,
            RoomName: s.roomNames[rec.RoomUUID],
            Date:     rec.Date,
            Slot:     rec.Slot,
            Status:   rec.Status,
            UserID:   owner,
        })
    }
    sort.Slice(out, func(i, j int) bool {
        if !out[i].Date.Equal(out[j].Date) {
            return out[i].Date.Before(out[j].Date)
        }
        return slotIndex[out[i].Slot] < slotIndex[out[j].Slot]
    })
    return out
}
