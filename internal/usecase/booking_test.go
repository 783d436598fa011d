package usecase

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/iliyamo/room-reservation/internal/model"
)

// fixedNow pins the clock to Wednesday 2026-03-04, 10:00 UTC. The
// surrounding week runs Monday 2026-03-02 through Friday 2026-03-06.
func fixedNow() time.Time {
    return time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
}

func day(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const (
    alice = model.UserID("user_alice1")
    bob   = model.UserID("user_bob1")
)

func TestBookRejectsPastDates(t *testing.T) {
    store := newFakeStore()
    room := store.addRoom("Room 101")
    booking := NewBooking(store, fixedNow)

    for _, d := range []time.Time{
        day(2026, time.March, 3), // yesterday
        day(2026, time.March, 2), // Monday of this week
        day(2026, time.February, 27),
    } {
        if _, err := booking.Book(context.Background(), room, d, model.SlotFirst, alice); !errors.Is(err, ErrPastDate) {
            t.Errorf("Book(%s) = %v, want ErrPastDate", model.FormatDate(d), err)
        }
    }
}

func TestBookAllowsSameDay(t *testing.T) {
    store := newFakeStore()
    room := store.addRoom("Room 101")
    booking := NewBooking(store, fixedNow)

    if _, err := booking.Book(context.Background(), room, day(2026, time.March, 4), model.SlotFirst, alice); err != nil {
        t.Fatalf("Book(today) = %v, want nil", err)
    }
}

func TestBookRejectsWeekends(t *testing.T) {
    store := newFakeStore()
    room := store.addRoom("Room 101")
    booking := NewBooking(store, fixedNow)

    for _, d := range []time.Time{
        day(2026, time.March, 7), // Saturday
        day(2026, time.March, 8), // Sunday
    } {
        if _, err := booking.Book(context.Background(), room, d, model.SlotFirst, alice); !errors.Is(err, ErrNotWeekday) {
            t.Errorf("Book(%s) = %v, want ErrNotWeekday", model.FormatDate(d), err)
        }
    }
}

func TestBookRejectsOccupiedSlot(t *testing.T) {
    store := newFakeStore()
    room := store.addRoom("Room 101")
    booking := NewBooking(store, fixedNow)
    target := day(2026, time.March, 5)

    if _, err := booking.Book(context.Background(), room, target, model.SlotSecond, alice); err != nil {
        t.Fatalf("first Book = %v, want nil", err)
    }
    if _, err := booking.Book(context.Background(), room, target, model.SlotSecond, bob); !errors.Is(err, ErrSlotTaken) {
        t.Errorf("second Book = %v, want ErrSlotTaken", err)
    }
    if len(store.records) != 1 {
        t.Errorf("store holds %d slot records, want exactly 1", len(store.records))
    }
}

func TestBookRejectsDisabledSlot(t *testing.T) {
    store := newFakeStore()
    room := store.addRoom("Room 101")
    target := day(2026, time.March, 5)
    store.seed(model.SlotRecord{RoomUUID: room, Date: target, Slot: model.SlotThird, Status: model.StatusDisabled}, "")
    booking := NewBooking(store, fixedNow)

    if _, err := booking.Book(context.Background(), room, target, model.SlotThird, alice); !errors.Is(err, ErrSlotTaken) {
        t.Errorf("Book(disabled slot) = %v, want ErrSlotTaken", err)
    }
}

func TestBookEnforcesWeeklyQuota(t *testing.T) {
    store := newFakeStore()
    roomA := store.addRoom("Room 101")
    roomB := store.addRoom("Room 102")
    booking := NewBooking(store, fixedNow)
    ctx := context.Background()

    if _, err := booking.Book(ctx, roomA, day(2026, time.March, 4), model.SlotFirst, alice); err != nil {
        t.Fatalf("first Book = %v, want nil", err)
    }
    // Any other slot in the same Monday-Friday window is out, even in
    // another room.
    for _, d := range []time.Time{
        day(2026, time.March, 4),
        day(2026, time.March, 5),
        day(2026, time.March, 6),
    } {
        if _, err := booking.Book(ctx, roomB, d, model.SlotFourth, alice); !errors.Is(err, ErrWeeklyQuotaExceeded) {
            t.Errorf("Book(%s) = %v, want ErrWeeklyQuotaExceeded", model.FormatDate(d), err)
        }
    }
    // Next week is a fresh window.
    if _, err := booking.Book(ctx, roomB, day(2026, time.March, 9), model.SlotFirst, alice); err != nil {
        t.Errorf("Book(next Monday) = %v, want nil", err)
    }
    // A disabled record never counts toward anyone's quota.
    store.seed(model.SlotRecord{RoomUUID: roomA, Date: day(2026, time.March, 5), Slot: model.SlotFifth, Status: model.StatusDisabled}, "")
    if _, err := booking.Book(ctx, roomA, day(2026, time.March, 6), model.SlotFifth, bob); err != nil {
        t.Errorf("Book by other user = %v, want nil", err)
    }
}

func TestBookCreatesLinkedPair(t *testing.T) {
    store := newFakeStore()
    room := store.addRoom("Room 101")
    booking := NewBooking(store, fixedNow)

    id, err := booking.Book(context.Background(), room, day(2026, time.March, 5), model.SlotFirst, alice)
    if err != nil {
        t.Fatalf("Book = %v, want nil", err)
    }
    rec, ok := store.records[id]
    if !ok {
        t.Fatalf("no slot record stored under returned id %s", id)
    }
    if rec.Status != model.StatusReserved {
        t.Errorf("record status = %q, want reserved", rec.Status)
    }
    if rec.ReservationID == nil {
        t.Fatal("record has no linked reservation")
    }
    res, ok := store.reservations[*rec.ReservationID]
    if !ok {
        t.Fatal("linked reservation missing from store")
    }
    if res.UserID != alice {
        t.Errorf("reservation owner = %s, want %s", res.UserID, alice)
    }
}

func TestBookStorageFailure(t *testing.T) {
    store := newFakeStore()
    room := store.addRoom("Room 101")
    store.failWith = errors.New("connection reset")
    booking := NewBooking(store, fixedNow)

    if _, err := booking.Book(context.Background(), room, day(2026, time.March, 5), model.SlotFirst, alice); !errors.Is(err, ErrStorage) {
        t.Errorf("Book = %v, want ErrStorage", err)
    }
}

func TestBookFailsOnDuplicateSlotRecords(t *testing.T) {
    store := newFakeStore()
    room := store.addRoom("Room 101")
    target := day(2026, time.March, 5)
    // Two records on one triple cannot happen through the booking
    // rules; seeding them simulates a corrupted store.
    store.seed(model.SlotRecord{RoomUUID: room, Date: target, Slot: model.SlotFirst, Status: model.StatusDisabled}, "")
    store.seed(model.SlotRecord{RoomUUID: room, Date: target, Slot: model.SlotFirst, Status: model.StatusDisabled}, "")
    booking := NewBooking(store, fixedNow)

    _, err := booking.Book(context.Background(), room, target, model.SlotFirst, alice)
    if !errors.Is(err, ErrStorage) {
        t.Errorf("Book against corrupt triple = %v, want ErrStorage", err)
    }
    if errors.Is(err, ErrSlotTaken) {
        t.Error("corrupt count was coerced into an ordinary slot conflict")
    }
}

func TestBookFailsOnDuplicateWeeklyReservations(t *testing.T) {
    store := newFakeStore()
    room := store.addRoom("Room 101")
    // Two reservations by one user inside one Monday-Friday window
    // violate the quota invariant; the checker must refuse to answer.
    store.seed(model.SlotRecord{RoomUUID: room, Date: day(2026, time.March, 4), Slot: model.SlotFirst, Status: model.StatusReserved}, alice)
    store.seed(model.SlotRecord{RoomUUID: room, Date: day(2026, time.March, 5), Slot: model.SlotSecond, Status: model.StatusReserved}, alice)
    booking := NewBooking(store, fixedNow)

    _, err := booking.Book(context.Background(), room, day(2026, time.March, 6), model.SlotThird, alice)
    if !errors.Is(err, ErrStorage) {
        t.Errorf("Book with corrupt weekly count = %v, want ErrStorage", err)
    }
    if errors.Is(err, ErrWeeklyQuotaExceeded) {
        t.Error("corrupt count was coerced into an ordinary quota conflict")
    }
}

func TestConcurrentBookingsOneWinner(t *testing.T) {
    store := newFakeStore()
    room := store.addRoom("Room 101")
    booking := NewBooking(store, fixedNow)
    target := day(2026, time.March, 5)

    users := []model.UserID{alice, bob}
    errs := make([]error, len(users))
    var wg sync.WaitGroup
    for i, u := range users {
        wg.Add(1)
        go func() {
            defer wg.Done()
            _, errs[i] = booking.Book(context.Background(), room, target, model.SlotFirst, u)
        }()
    }
    wg.Wait()

    wins, taken := 0, 0
    for _, err := range errs {
        switch {
        case err == nil:
            wins++
        case errors.Is(err, ErrSlotTaken):
            taken++
        default:
            t.Errorf("unexpected error: %v", err)
        }
    }
    if wins != 1 || taken != 1 {
        t.Errorf("got %d successes and %d ErrSlotTaken, want exactly 1 of each", wins, taken)
    }
    if len(store.records) != 1 {
        t.Errorf("store holds %d slot records, want exactly 1", len(store.records))
    }
}

func TestConcurrentBookingsSameUserSameWeek(t *testing.T) {
    store := newFakeStore()
    roomA := store.addRoom("Room 101")
    roomB := store.addRoom("Room 102")
    booking := NewBooking(store, fixedNow)

    rooms := []model.UUID{roomA, roomB}
    errs := make([]error, len(rooms))
    var wg sync.WaitGroup
    for i, rm := range rooms {
        wg.Add(1)
        go func() {
            defer wg.Done()
            _, errs[i] = booking.Book(context.Background(), rm, day(2026, time.March, 5), model.SlotFirst, alice)
        }()
    }
    wg.Wait()

    wins, quota := 0, 0
    for _, err := range errs {
        switch {
        case err == nil:
            wins++
        case errors.Is(err, ErrWeeklyQuotaExceeded):
            quota++
        default:
            t.Errorf("unexpected error: %v", err)
        }
    }
    if wins != 1 || quota != 1 {
        t.Errorf("got %d successes and %d quota failures, want exactly 1 of each", wins, quota)
    }
}
