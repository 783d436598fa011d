package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/room-reservation/internal/config"
    "github.com/iliyamo/room-reservation/internal/handler"
    "github.com/iliyamo/room-reservation/internal/middleware"
)

// Handlers bundles every handler the API mounts.  Keeping them in one
// struct keeps Register's signature stable as endpoints are added.
type Handlers struct {
    Rooms        *handler.RoomHandler
    Reservations *handler.ReservationHandler
    Admin        *handler.AdminHandler
}

// Register mounts all routes on the provided Echo instance.  The layout is:
//
//	GET  /healthz                       unauthenticated liveness check
//	GET  /v1/rooms                      list rooms
//	GET  /v1/rooms/available            rooms free for a date and slot
//	GET  /v1/reservations               all records in a date range
//	GET  /v1/reservations/mine          the requester's records in a range
//	POST /v1/reservations               book a slot
//	DELETE /v1/reservations/:rord_uuid  cancel an owned reservation
//	POST /v1/admin/rooms                register a room (admin)
//	POST /v1/admin/rooms/disable        take slots out of service (admin)
//
// Everything under /v1 requires a valid access token.  Read endpoints
// additionally pass through the Redis response cache and write
// endpoints invalidate it; the whole group sits behind the token
// bucket rate limiter.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
    // The health check stays outside every middleware so monitoring
    // keeps working when Redis or the identity service misbehave.
    e.GET("/healthz", handler.Health)

    v1 := e.Group("/v1")
    v1.Use(middleware.JWTAuth(jwtSecret))
    v1.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    cacheCfg := config.LoadCacheConfig()
    cached := middleware.NewRedisCache(cacheCfg, rdb)
    v1.GET("/rooms", h.Rooms.List, cached)
    v1.GET("/rooms/available", h.Rooms.Available, cached)
    v1.GET("/reservations", h.Reservations.List, cached)
    v1.GET("/reservations/mine", h.Reservations.ListMine, cached)

    // Writes bump the cache generation so readers never see a listing
    // recorded before a booking, cancellation or room change.
    invalidate := middleware.NewCacheInvalidator(cacheCfg, rdb)
    v1.POST("/reservations", h.Reservations.Create, invalidate)
    v1.DELETE("/reservations/:rord_uuid", h.Reservations.Delete, invalidate)

    admin := v1.Group("/admin")
    admin.Use(middleware.RequireRole("ADMIN"))
    admin.POST("/rooms", h.Admin.CreateRoom, invalidate)
    admin.POST("/rooms/disable", h.Admin.DisableSlot, invalidate)
}
