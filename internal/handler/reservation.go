package handler

import (
    "database/sql" // for sentinel errors returned from repository
    "errors"       // for errors.Is comparisons
    "net/http"     // HTTP status codes

    "github.com/labstack/echo/v4"

    "github.com/azamatk/fitness-class-reservation/internal/booking"
    "github.com/azamatk/fitness-class-reservation/internal/repository"
)

// ReservationHandler serves the member-facing reservation flow: the
// admission pre-check, the temporary hold, the cancellation quote and the
// user-initiated cancellation.  JWT authentication is applied by
// middleware on the protected routes; the admission pre-check also
// accepts unauthenticated guests.
type ReservationHandler struct {
    Booking *booking.Service // booking engine facade
}

// NewReservationHandler constructs a ReservationHandler.  The booking
// service must be non-nil.
func NewReservationHandler(svc *booking.Service) *ReservationHandler {
    if svc == nil {
        panic("nil booking service passed to NewReservationHandler")
    }
    return &ReservationHandler{Booking: svc}
}

// CheckAvailability handles POST /v1/schedules/:id/reservations/check.
// The body carries {"student_count": n, "sessions_required": m}.  When
// the request carries a valid token the duplicate-reservation and
// membership rules apply; anonymous callers get the guest branch.
// Rejections are returned as 200 with a structured result, because a
// failed admission is an expected outcome the client branches on.
func (h *ReservationHandler) CheckAvailability(c echo.Context) error {
    scheduleID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
    }
    var body struct {
        StudentCount     uint32 `json:"student_count"`
        SessionsRequired uint32 `json:"sessions_required"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    // Guests run the admission check with userID 0.
    userID, _ := getUserID(c)

    out, err := h.Booking.CheckReservationAvailability(
        c.Request().Context(), scheduleID, body.StudentCount, userID, body.SessionsRequired)
    if err != nil {
        if errors.Is(err, repository.ErrScheduleNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
        }
        c.Logger().Errorf("admission check failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, out)
}

// CreateReservation handles POST /v1/schedules/:id/reservations.  It
// places a five-minute PENDING hold for the authenticated member.  The
// body carries {"student_count": n, "payment_method": "..."}.  Business
// rejections return 409 with the admission result; success returns 201
// with the reservation id and expiry.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    scheduleID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid schedule id"})
    }
    var body struct {
        StudentCount  uint32 `json:"student_count"`
        PaymentMethod string `json:"payment_method"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.StudentCount == 0 {
        body.StudentCount = 1
    }

    out, err := h.Booking.CreateTempReservation(
        c.Request().Context(), scheduleID, userID, body.StudentCount, body.PaymentMethod)
    if err != nil {
        if errors.Is(err, repository.ErrScheduleNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
        }
        c.Logger().Errorf("hold creation failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !out.Success {
        return c.JSON(http.StatusConflict, out)
    }
    return c.JSON(http.StatusCreated, out)
}

// CancellationQuote handles GET /v1/reservations/:id/cancellation-quote.
// Read-only: it computes what the member would get back if they
// cancelled right now.  Safe to call repeatedly.
func (h *ReservationHandler) CancellationQuote(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    reservationID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    quote, err := h.Booking.QuoteCancellation(c.Request().Context(), reservationID, userID)
    if err != nil {
        return reservationReadError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"quote": quote})
}

// CancelReservation handles POST /v1/reservations/:id/cancel.  The body
// carries {"reason": "..."}.  Ownership is enforced by the scoped read;
// business rejections (already cancelled, policy denied) return 409 with
// the structured result.
func (h *ReservationHandler) CancelReservation(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    reservationID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var body struct {
        Reason string `json:"reason"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    out, err := h.Booking.CancelReservation(c.Request().Context(), reservationID, userID, body.Reason)
    if err != nil {
        return reservationReadError(c, err)
    }
    if !out.Success {
        return c.JSON(http.StatusConflict, out)
    }
    return c.JSON(http.StatusOK, out)
}

// reservationReadError maps reservation load failures onto HTTP
// responses: missing rows become 404, foreign ownership 403, anything
// else a logged 500.
func reservationReadError(c echo.Context, err error) error {
    if errors.Is(err, sql.ErrNoRows) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    }
    if errors.Is(err, repository.ErrForbidden) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    if errors.Is(err, repository.ErrScheduleNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
    }
    c.Logger().Errorf("reservation operation failed: %v", err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong, please try again"})
}
