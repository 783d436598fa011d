package handler

import (
    "errors"   // for errors.Is comparisons
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/room-reservation/internal/model"
    "github.com/iliyamo/room-reservation/internal/repository"
)

// RoomHandler serves the read-only room endpoints.  Both endpoints are
// available to every authenticated user; room management lives on the
// admin handler.
type RoomHandler struct {
    Rooms *repository.RoomRepo
}

// NewRoomHandler constructs a RoomHandler.  The repository must be non-nil.
func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
    if rooms == nil {
        panic("nil repository passed to NewRoomHandler")
    }
    return &RoomHandler{Rooms: rooms}
}

// List handles GET /v1/rooms.  It returns every registered room ordered
// by id so clients render a stable list.
func (h *RoomHandler) List(c echo.Context) error {
    rooms, err := h.Rooms.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]echo.Map, 0, len(rooms))
    for _, r := range rooms {
        out = append(out, echo.Map{"room_uuid": r.RoomUUID, "name": r.Name})
    }
    return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

// Available handles GET /v1/rooms/available?date=YYYY-MM-DD&slot=first.
// It returns the rooms that have neither a reservation nor a disabled
// marker for the given date and class period.  The date itself is not
// restricted here; asking about a weekend simply returns every room.
func (h *RoomHandler) Available(c echo.Context) error {
    date, err := model.ParseDate(c.QueryParam("date"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
    }
    slot, err := model.NewSlot(c.QueryParam("slot"))
    if err != nil {
        if errors.Is(err, model.ErrInvalidSlot) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot"})
    }
    rooms, err := h.Rooms.ListAvailable(c.Request().Context(), date, slot)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]echo.Map, 0, len(rooms))
    for _, r := range rooms {
        out = append(out, echo.Map{"room_uuid": r.RoomUUID, "name": r.Name})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":  model.FormatDate(date),
        "slot":  slot,
        "rooms": out,
    })
}
