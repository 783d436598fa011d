package usecase

import (
    "context"
    "time"

    "github.com/iliyamo/room-reservation/internal/model"
)

// Listing reads slot records over a date range and resolves the owners
// of reserved records through the identity directory. The directory
// lookup is all-or-nothing: when any owner cannot be resolved the
// whole request fails rather than returning a partial listing.
type Listing struct {
    store ReservationStore
    users Directory
}

// NewListing constructs a Listing.
func NewListing(store ReservationStore, users Directory) *Listing {
    if store == nil || users == nil {
        panic("nil dependency passed to NewListing")
    }
    return &Listing{store: store, users: users}
}

// ByDateRange returns all slot records dated in [start, end] together
// with the resolved profiles of their owners, keyed by user id.
func (u *Listing) ByDateRange(ctx context.Context, start, end time.Time) ([]model.SlotRecordWithRoom, map[model.UserID]model.User, error) {
    records, err := u.store.ListByDateRange(ctx, start, end)
    if err != nil {
        return nil, nil, storageErr(err)
    }
    users, err := u.resolveOwners(ctx, records)
    if err != nil {
        return nil, nil, err
    }
    return records, users, nil
}

// ByDateRangeForUser returns the user's own reservations plus disabled
// markers dated in [start, end], with owner profiles resolved.
func (u *Listing) ByDateRangeForUser(ctx context.Context, userID model.UserID, start, end time.Time) ([]model.SlotRecordWithRoom, map[model.UserID]model.User, error) {
    records, err := u.store.ListByDateRangeForUser(ctx, userID, start, end)
    if err != nil {
        return nil, nil, storageErr(err)
    }
    users, err := u.resolveOwners(ctx, records)
    if err != nil {
        return nil, nil, err
    }
    return records, users, nil
}

func (u *Listing) resolveOwners(ctx context.Context, records []model.SlotRecordWithRoom) (map[model.UserID]model.User, error) {
    seen := make(map[model.UserID]struct{})
    ids := make([]model.UserID, 0)
    for _, rec := range records {
        if rec.UserID == nil {
            continue
        }
        if _, ok := seen[*rec.UserID]; ok {
            continue
        }
        seen[*rec.UserID] = struct{}{}
        ids = append(ids, *rec.UserID)
    }
    users := make(map[model.UserID]model.User, len(ids))
    if len(ids) == 0 {
        return users, nil
    }
    resolved, err := u.users.Users(ctx, ids)
    if err != nil {
        return nil, err
    }
    for _, usr := range resolved {
        users[usr.UserID] = usr
    }
    return users, nil
}
