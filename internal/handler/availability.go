// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines the public availability API: schedule
// listings with their availability classification.  These reads are
// cache-assisted and may be stale up to the availability cache TTL; the
// reservation endpoints always re-check against the source of truth.
package handler

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/azamatk/fitness-class-reservation/internal/booking"
    "github.com/azamatk/fitness-class-reservation/internal/repository"
)

// AvailabilityHandler serves unauthenticated availability reads backed by
// the booking engine.
type AvailabilityHandler struct {
    Booking *booking.Service // booking engine facade
}

// NewAvailabilityHandler constructs an AvailabilityHandler.  The booking
// service must be non-nil.
func NewAvailabilityHandler(svc *booking.Service) *AvailabilityHandler {
    if svc == nil {
        panic("nil booking service passed to NewAvailabilityHandler")
    }
    return &AvailabilityHandler{Booking: svc}
}

// GetScheduleAvailability handles GET /v1/schedules/:id/availability.  It
// returns the schedule with its availability status.  404 when the
// schedule does not exist.
func (h *AvailabilityHandler) GetScheduleAvailability(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
    }
    out, err := h.Booking.CheckScheduleAvailability(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrScheduleNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
        }
        c.Logger().Errorf("availability read failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": out})
}

// ListSchedulesAvailability handles GET /v1/schedules/availability.  Query
// parameters: from and to (RFC3339 or YYYY-MM-DD, required), class_id
// (optional).  Returns all schedules in the range with their statuses.
func (h *AvailabilityHandler) ListSchedulesAvailability(c echo.Context) error {
    from, err := parseTimeParam(c.QueryParam("from"), false)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or missing from parameter"})
    }
    to, err := parseTimeParam(c.QueryParam("to"), true)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or missing to parameter"})
    }
    if to.Before(from) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must not precede from"})
    }
    var classID uint64
    if raw := c.QueryParam("class_id"); raw != "" {
        classID, err = strconv.ParseUint(raw, 10, 64)
        if err != nil || classID == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid class_id"})
        }
    }
    items, err := h.Booking.GetSchedulesAvailability(c.Request().Context(), from, to, classID)
    if err != nil {
        c.Logger().Errorf("availability listing failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items": items,
        "count": len(items),
    })
}

// parseTimeParam accepts RFC3339 timestamps or bare dates.  Bare dates
// are interpreted as the start of the day, or the end of the day when
// endOfDay is set, so a from/to date pair covers whole days.
func parseTimeParam(raw string, endOfDay bool) (time.Time, error) {
    if raw == "" {
        return time.Time{}, errors.New("missing")
    }
    if t, err := time.Parse(time.RFC3339, raw); err == nil {
        return t.UTC(), nil
    }
    t, err := time.Parse("2006-01-02", raw)
    if err != nil {
        return time.Time{}, err
    }
    if endOfDay {
        t = t.Add(24*time.Hour - time.Second)
    }
    return t.UTC(), nil
}
