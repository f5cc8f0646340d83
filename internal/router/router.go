package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // Echo web framework used for routing
    "github.com/redis/go-redis/v9"

    "github.com/azamatk/fitness-class-reservation/internal/config"
    "github.com/azamatk/fitness-class-reservation/internal/handler"
    "github.com/azamatk/fitness-class-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not depend on any handler
// state.  Currently it exposes only a health check used by load
// balancers to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAvailability registers the unauthenticated availability reads.
// These routes sit behind the Redis response cache so bursts of
// identical listings never hit MySQL; the cache TTL bounds how stale a
// guest can see availability, and the admin cache endpoints drop entries
// early when needed.
func RegisterAvailability(e *echo.Echo, a *handler.AvailabilityHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
    g := e.Group("/v1/schedules")
    g.Use(middleware.NewRedisCache(cacheCfg, rdb))
    // The literal route must be registered alongside the :id route; Echo
    // resolves the static segment first.
    g.GET("/availability", a.ListSchedulesAvailability)
    g.GET("/:id/availability", a.GetScheduleAvailability)
}

// RegisterBooking registers the reservation flow.  The admission
// pre-check accepts guests, so it uses the optional JWT variant; the
// hold and cancellation routes require an authenticated MEMBER or ADMIN.
func RegisterBooking(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string) {
    // Pre-check: guests get the anonymous admission branch.
    check := e.Group("/v1/schedules")
    check.Use(middleware.JWTOptional(jwtSecret))
    check.POST("/:id/reservations/check", r.CheckAvailability)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole("MEMBER", "ADMIN"))
    auth.POST("/schedules/:id/reservations", r.CreateReservation)
    auth.GET("/reservations/:id/cancellation-quote", r.CancellationQuote)
    auth.POST("/reservations/:id/cancel", r.CancelReservation)
}

// RegisterAdmin registers the admin-only operations: forced
// cancellations, class-wide cancellation and availability cache
// management.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
    g := e.Group("/v1/admin")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole("ADMIN"))
    g.POST("/reservations/:id/cancel", a.CancelReservation)
    g.POST("/schedules/:id/cancel", a.CancelSchedule)
    g.DELETE("/cache/schedules/:id", a.InvalidateScheduleCache)
    g.DELETE("/cache", a.ClearCache)
}
