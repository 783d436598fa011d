package handler // handler defines http handlers

import (
    "errors" // errors provides the sentinel returned when no user is in context

    "github.com/labstack/echo/v4" // echo defines request context types

    "github.com/iliyamo/room-reservation/internal/model"
)

// requesterID extracts the authenticated user's external id from the
// echo context. JWTAuth stores the validated subject under "user_id";
// a missing or malformed value means the middleware did not run and
// the request must be treated as unauthenticated.
func requesterID(c echo.Context) (model.UserID, error) {
    v, ok := c.Get("user_id").(string)
    if !ok || v == "" {
        return "", errors.New("no user in context")
    }
    userID, err := model.NewUserID(v)
    if err != nil {
        return "", err
    }
    return userID, nil
}
