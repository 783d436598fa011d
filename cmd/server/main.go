package main // Entry point package

import (
    "context"
    "log"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/room-reservation/internal/config"
    "github.com/iliyamo/room-reservation/internal/database"
    "github.com/iliyamo/room-reservation/internal/handler"
    "github.com/iliyamo/room-reservation/internal/identity"
    "github.com/iliyamo/room-reservation/internal/queue"
    "github.com/iliyamo/room-reservation/internal/repository"
    "github.com/iliyamo/room-reservation/internal/router"
    "github.com/iliyamo/room-reservation/internal/usecase"
)

func main() {
    // Load .env when present; real deployments set the environment
    // directly and the file is simply absent.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    if err := repository.EnsureSchema(ctx, db); err != nil {
        cancel()
        log.Fatalf("schema: %v", err)
    }
    cancel()

    // Redis is optional: without it the API runs with rate limiting,
    // response caching and the identity cache disabled.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; continuing without cache and rate limiting")
    }

    rooms := repository.NewRoomRepo(db)
    records := repository.NewSlotRecordRepo(db)
    directory := identity.New(cfg.IdentityAPIURL, cfg.IdentityAPIKey, rdb)

    booking := usecase.NewBooking(records, nil)
    cancelUC := usecase.NewCancellation(records, cfg.CancelLeadDays, nil)
    disable := usecase.NewDisable(rooms, records)
    listing := usecase.NewListing(records, directory)

    e := echo.New()
    e.HideBanner = true
    router.Register(e, router.Handlers{
        Rooms:        handler.NewRoomHandler(rooms),
        Reservations: handler.NewReservationHandler(booking, cancelUC, listing),
        Admin:        handler.NewAdminHandler(rooms, disable),
    }, cfg.JWTSecret, rdb)

    // Consume confirmation and cancellation events in the background.
    // The consumer reconnects on its own; an error here never takes
    // the API down.
    go func() {
        if err := queue.StartReservationConsumer(); err != nil {
            log.Printf("reservation consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
