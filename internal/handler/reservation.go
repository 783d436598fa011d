package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/room-reservation/internal/model"
    "github.com/iliyamo/room-reservation/internal/queue"
    queue_publisher "github.com/iliyamo/room-reservation/internal/service"
    "github.com/iliyamo/room-reservation/internal/usecase"
)

// ReservationHandler serves the booking endpoints: creating a
// reservation, cancelling one, and listing what is booked.  All methods
// assume JWT authentication has already run so the requester's id can
// be read from the context.
type ReservationHandler struct {
    Booking *usecase.Booking
    Cancel  *usecase.Cancellation
    Listing *usecase.Listing
}

// NewReservationHandler constructs a ReservationHandler.  All
// dependencies must be non-nil.
func NewReservationHandler(booking *usecase.Booking, cancel *usecase.Cancellation, listing *usecase.Listing) *ReservationHandler {
    if booking == nil || cancel == nil || listing == nil {
        panic("nil dependency passed to NewReservationHandler")
    }
    return &ReservationHandler{Booking: booking, Cancel: cancel, Listing: listing}
}

// Create handles POST /v1/reservations.  The body names a room, a date
// and a class period; the authenticated user becomes the owner.  On
// success it returns 201 with the new record id and publishes a
// confirmation event for downstream consumers.  Conflicts with the
// booking rules (slot taken, weekly quota, past or weekend date)
// return 409 so clients can distinguish them from validation errors.
func (h *ReservationHandler) Create(c echo.Context) error {
    userID, err := requesterID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        RoomUUID string `json:"room_uuid"`
        Date     string `json:"date"`
        Slot     string `json:"slot"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    roomUUID, err := model.NewUUID(body.RoomUUID)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    date, err := model.ParseDate(body.Date)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
    }
    slot, err := model.NewSlot(body.Slot)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    recordID, err := h.Booking.Book(c.Request().Context(), roomUUID, date, slot, userID)
    switch {
    case err == nil:
        // Publish outside the request path; a lost event never fails
        // a committed booking.
        ev := queue.ReservationConfirmedEvent{
            RecordID:    string(recordID),
            UserID:      string(userID),
            RoomUUID:    string(roomUUID),
            Date:        model.FormatDate(date),
            Slot:        string(slot),
            ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
        }
        go func() { _ = queue_publisher.PublishReservationConfirmed(context.Background(), ev) }()
        return c.JSON(http.StatusCreated, echo.Map{
            "rord_uuid": recordID,
            "room_uuid": roomUUID,
            "date":      model.FormatDate(date),
            "slot":      slot,
        })
    case errors.Is(err, usecase.ErrPastDate):
        return c.JSON(http.StatusConflict, echo.Map{"error": "date is in the past"})
    case errors.Is(err, usecase.ErrNotWeekday):
        return c.JSON(http.StatusConflict, echo.Map{"error": "reservations are limited to weekdays"})
    case errors.Is(err, usecase.ErrSlotTaken):
        return c.JSON(http.StatusConflict, echo.Map{"error": "slot already reserved or disabled"})
    case errors.Is(err, usecase.ErrWeeklyQuotaExceeded):
        return c.JSON(http.StatusConflict, echo.Map{"error": "you already have a reservation this week"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
}

// Delete handles DELETE /v1/reservations/:rord_uuid.  Only the owner
// may cancel, only real reservations can be cancelled (not disabled
// markers), and cancellation must respect the configured lead time.
func (h *ReservationHandler) Delete(c echo.Context) error {
    userID, err := requesterID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    recordID, err := model.NewUUID(c.Param("rord_uuid"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }

    err = h.Cancel.Cancel(c.Request().Context(), recordID, userID)
    switch {
    case err == nil:
        ev := queue.ReservationCancelledEvent{
            RecordID:    string(recordID),
            UserID:      string(userID),
            CancelledAt: time.Now().UTC().Format(time.RFC3339),
        }
        go func() { _ = queue_publisher.PublishReservationCancelled(context.Background(), ev) }()
        return c.NoContent(http.StatusNoContent)
    case errors.Is(err, usecase.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    case errors.Is(err, usecase.ErrNotAReservation):
        return c.JSON(http.StatusConflict, echo.Map{"error": "record is not a cancellable reservation"})
    case errors.Is(err, usecase.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
    case errors.Is(err, usecase.ErrTooCloseToDate):
        return c.JSON(http.StatusConflict, echo.Map{"error": "too close to the reserved date to cancel"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
}

// List handles GET /v1/reservations?start_date=...&end_date=...  It
// returns every reservation and disabled marker in the range with the
// owners' display names resolved.
func (h *ReservationHandler) List(c echo.Context) error {
    start, end, err := dateRange(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    records, users, err := h.Listing.ByDateRange(c.Request().Context(), start, end)
    if err != nil {
        return listingError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"records": renderRecords(records, users)})
}

// ListMine handles GET /v1/reservations/mine?start_date=...&end_date=...
// It returns the requester's own reservations plus any disabled markers
// in the range, so a personal calendar still shows blocked slots.
func (h *ReservationHandler) ListMine(c echo.Context) error {
    userID, err := requesterID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    start, end, err := dateRange(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    records, users, err := h.Listing.ByDateRangeForUser(c.Request().Context(), userID, start, end)
    if err != nil {
        return listingError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"records": renderRecords(records, users)})
}

// dateRange parses and validates the start_date/end_date query pair.
func dateRange(c echo.Context) (time.Time, time.Time, error) {
    start, err := model.ParseDate(c.QueryParam("start_date"))
    if err != nil {
        return time.Time{}, time.Time{}, errors.New("invalid start_date, expected YYYY-MM-DD")
    }
    end, err := model.ParseDate(c.QueryParam("end_date"))
    if err != nil {
        return time.Time{}, time.Time{}, errors.New("invalid end_date, expected YYYY-MM-DD")
    }
    if end.Before(start) {
        return time.Time{}, time.Time{}, errors.New("end_date is before start_date")
    }
    return start, end, nil
}

func listingError(c echo.Context, err error) error {
    if errors.Is(err, usecase.ErrStorage) {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    // The identity service could not resolve an owner; without every
    // name the listing would be misleading, so fail the whole request.
    return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to resolve user names"})
}

// renderRecords shapes slot records for JSON responses.  Disabled
// markers carry no owner and render "user": null.
func renderRecords(records []model.SlotRecordWithRoom, users map[model.UserID]model.User) []echo.Map {
    out := make([]echo.Map, 0, len(records))
    for _, rec := range records {
        var owner any
        if rec.UserID != nil {
            usr := users[*rec.UserID]
            owner = echo.Map{"user_id": *rec.UserID, "name": usr.DisplayName()}
        }
        out = append(out, echo.Map{
            "rord_uuid": rec.ID,
            "date":      model.FormatDate(rec.Date),
            "slot":      rec.Slot,
            "status":    rec.Status,
            "room":      echo.Map{"room_uuid": rec.RoomUUID, "name": rec.RoomName},
            "user":      owner,
        })
    }
    return out
}
