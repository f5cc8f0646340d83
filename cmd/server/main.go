package main // Entry point package

import (
    "context"
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/azamatk/fitness-class-reservation/internal/booking"
    "github.com/azamatk/fitness-class-reservation/internal/config"
    "github.com/azamatk/fitness-class-reservation/internal/database"
    "github.com/azamatk/fitness-class-reservation/internal/handler"
    "github.com/azamatk/fitness-class-reservation/internal/middleware"
    "github.com/azamatk/fitness-class-reservation/internal/payment"
    "github.com/azamatk/fitness-class-reservation/internal/queue"
    "github.com/azamatk/fitness-class-reservation/internal/repository"
    "github.com/azamatk/fitness-class-reservation/internal/router"
    queue_publisher "github.com/azamatk/fitness-class-reservation/internal/service"
)

func main() {
    _ = godotenv.Load() // load .env when present; real env vars win

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database connection failed: %v", err)
    }
    defer func() { _ = db.Close() }()

    // Redis backs the rate limiter and the response cache.  Both degrade
    // to pass-through when the client is nil, so a missing Redis only
    // costs the caching layers, not the service.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable, rate limiting and response caching disabled")
    }

    scheduleRepo := repository.NewScheduleRepo(db)
    reservationRepo := repository.NewReservationRepo(db)
    cancellationRepo := repository.NewCancellationRepo(db)
    membershipRepo := repository.NewMembershipRepo(db)

    // Refunds go through Midtrans when a server key is configured.
    // Without one the gateway stays nil and refunds remain PENDING for
    // manual settlement.
    var gateway booking.PaymentGateway
    if cfg.MidtransServerKey != "" {
        gateway = payment.NewMidtransGateway(cfg.MidtransServerKey, cfg.MidtransProduction)
    } else {
        log.Println("MIDTRANS_SERVER_KEY not set, automatic refunds disabled")
    }

    cacheTTL := cfg.AvailabilityTTL
    if cacheTTL <= 0 {
        cacheTTL = booking.DefaultCacheTTL
    }

    svc := booking.NewService(booking.Deps{
        Schedules:     scheduleRepo,
        Reservations:  reservationRepo,
        Cancellations: cancellationRepo,
        Memberships:   membershipRepo,
        Payments:      gateway,
        Notifier:      queue_publisher.Notifier{},
        Cache:         booking.NewAvailabilityCache(cacheTTL),
    })

    // Background workers: the hold sweeper reclaims seats from overdue
    // PENDING reservations, the consumer turns cancellation events into
    // member notifications.
    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()
    svc.StartExpirySweeper(ctx, cfg.SweepInterval)
    go func() {
        if err := queue.StartCancellationConsumer(); err != nil {
            log.Printf("cancellation consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    router.RegisterRoutes(e)
    router.RegisterAvailability(e, handler.NewAvailabilityHandler(svc), config.LoadCacheConfig(), rdb)
    router.RegisterBooking(e, handler.NewReservationHandler(svc), cfg.JWTSecret)
    router.RegisterAdmin(e, handler.NewAdminHandler(svc), cfg.JWTSecret)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
