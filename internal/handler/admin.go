package handler

// This file defines HTTP handlers for studio administrators.  Admins can
// force-cancel any reservation with a full refund, cancel an entire class
// schedule (fanning out refunds to every confirmed reservation), and
// manage the availability cache.  The ADMIN role is enforced by
// middleware on these routes.

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/azamatk/fitness-class-reservation/internal/booking"
)

// AdminHandler groups the booking engine operations reserved for admins.
type AdminHandler struct {
    Booking *booking.Service // booking engine facade
}

// NewAdminHandler constructs an AdminHandler.  The booking service must
// be non-nil.
func NewAdminHandler(svc *booking.Service) *AdminHandler {
    if svc == nil {
        panic("nil booking service passed to NewAdminHandler")
    }
    return &AdminHandler{Booking: svc}
}

// CancelReservation handles POST /v1/admin/reservations/:id/cancel.  The
// body carries {"reason": "...", "notify_user": bool}.  The refund is
// unconditionally the full amount; the cancellation policy gate does not
// apply to admins.
func (h *AdminHandler) CancelReservation(c echo.Context) error {
    adminID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    reservationID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var body struct {
        Reason     string `json:"reason"`
        NotifyUser bool   `json:"notify_user"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    out, err := h.Booking.AdminCancelReservation(
        c.Request().Context(), reservationID, adminID, body.Reason, body.NotifyUser)
    if err != nil {
        return reservationReadError(c, err)
    }
    if !out.Success {
        return c.JSON(http.StatusConflict, out)
    }
    return c.JSON(http.StatusOK, out)
}

// CancelSchedule handles POST /v1/admin/schedules/:id/cancel.  It marks
// the schedule cancelled and fans out admin cancellations for every
// confirmed reservation.  The response always reports how many of the
// fanned-out cancellations succeeded; callers must not assume that count
// equals the number of reservations.
func (h *AdminHandler) CancelSchedule(c echo.Context) error {
    adminID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    scheduleID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
    }
    var body struct {
        Reason string `json:"reason"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    out, err := h.Booking.CancelClassSchedule(c.Request().Context(), scheduleID, adminID, body.Reason)
    if err != nil {
        return reservationReadError(c, err)
    }
    if !out.Success {
        return c.JSON(http.StatusConflict, out)
    }
    return c.JSON(http.StatusOK, out)
}

// InvalidateScheduleCache handles DELETE /v1/admin/cache/schedules/:id.
// It drops the availability payloads affected by the schedule so the next
// listing re-reads the source of truth.
func (h *AdminHandler) InvalidateScheduleCache(c echo.Context) error {
    scheduleID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
    }
    h.Booking.InvalidateScheduleCache(scheduleID)
    return c.NoContent(http.StatusNoContent)
}

// ClearCache handles DELETE /v1/admin/cache.  It empties the
// availability cache entirely.
func (h *AdminHandler) ClearCache(c echo.Context) error {
    h.Booking.ClearAvailabilityCache()
    return c.NoContent(http.StatusNoContent)
}
