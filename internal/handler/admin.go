package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/room-reservation/internal/model"
    "github.com/iliyamo/room-reservation/internal/repository"
    "github.com/iliyamo/room-reservation/internal/usecase"
)

// AdminHandler groups the operations reserved for administrators:
// registering rooms and taking slots out of service.  Routes using this
// handler must sit behind RequireRole("ADMIN").
type AdminHandler struct {
    Rooms   *repository.RoomRepo
    Disable *usecase.Disable
}

// NewAdminHandler constructs an AdminHandler.  All dependencies must be
// non-nil.
func NewAdminHandler(rooms *repository.RoomRepo, disable *usecase.Disable) *AdminHandler {
    if rooms == nil || disable == nil {
        panic("nil dependency passed to NewAdminHandler")
    }
    return &AdminHandler{Rooms: rooms, Disable: disable}
}

// CreateRoom handles POST /v1/admin/rooms.  The body carries the room
// name; the server assigns the id.  A 201 response returns the new
// room so the client can link to it immediately.
func (h *AdminHandler) CreateRoom(c echo.Context) error {
    var body struct {
        Name string `json:"name"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    name, err := model.NewRoomName(body.Name)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    room := model.Room{RoomUUID: model.GenerateUUID(), Name: name.String()}
    if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"room_uuid": room.RoomUUID, "name": room.Name})
}

// DisableSlot handles POST /v1/admin/rooms/disable.  The body names a
// room, a date and a slot; passing "all" as the slot takes the whole
// day out of service.  Disabling fails with 409 when any targeted slot
// already holds a reservation, so administrators must resolve existing
// bookings first.
func (h *AdminHandler) DisableSlot(c echo.Context) error {
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

    ctx := c.Request().Context()
    if body.Slot == "all" {
        err = h.Disable.DisableDate(ctx, roomUUID, date)
    } else {
        var slot model.Slot
        slot, err = model.NewSlot(body.Slot)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        err = h.Disable.DisableSlot(ctx, roomUUID, date, slot)
    }
    switch {
    case err == nil:
        return c.JSON(http.StatusCreated, echo.Map{
            "room_uuid": roomUUID,
            "date":      model.FormatDate(date),
            "slot":      body.Slot,
        })
    case errors.Is(err, usecase.ErrRoomNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
    case errors.Is(err, usecase.ErrSlotTaken):
        return c.JSON(http.StatusConflict, echo.Map{"error": "slot already reserved or disabled"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
}
