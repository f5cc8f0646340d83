package booking

import (
    "time"

    "github.com/azamatk/fitness-class-reservation/internal/model"
)

// Reason identifies why a business operation was rejected.  Rejections are
// expected outcomes returned as structured results; only infrastructure
// faults travel as Go errors.
type Reason string

const (
    ReasonCancelled            Reason = "CANCELLED"             // schedule was cancelled
    ReasonPastClass            Reason = "PAST_CLASS"            // schedule already started
    ReasonNotEnoughSeats       Reason = "NOT_ENOUGH_SEATS"      // fewer seats than students requested
    ReasonAlreadyReserved      Reason = "ALREADY_RESERVED"      // user already holds a confirmed reservation
    ReasonNoValidSession       Reason = "NO_VALID_SESSION"      // no unexpired session credit
    ReasonInsufficientSessions Reason = "INSUFFICIENT_SESSIONS" // credit balance below sessions required
    ReasonAlreadyCancelled     Reason = "ALREADY_CANCELLED"     // reservation already cancelled or expired
    ReasonPolicyDenied         Reason = "POLICY_DENIED"         // cancellation policy refused (class started)
)

// AdmissionResult is the outcome of the ordered admission check.  When OK
// is false, Reason and Message describe the first rule that failed.  On
// success Status carries the availability classification and Credit the
// membership-credit snapshot loaded during the check (nil for guests).
type AdmissionResult struct {
    OK      bool                 `json:"ok"`
    Reason  Reason               `json:"reason,omitempty"`
    Message string               `json:"message"`
    Status  AvailabilityStatus   `json:"status,omitempty"`
    Credit  *model.SessionCredit `json:"credit,omitempty"`
}

// HoldResult is the outcome of a temporary-reservation attempt.
type HoldResult struct {
    Success       bool      `json:"success"`
    Reason        Reason    `json:"reason,omitempty"`
    Message       string    `json:"message"`
    ReservationID uint64    `json:"reservation_id,omitempty"`
    ExpiresAt     time.Time `json:"expires_at,omitempty"`
}

// CancelResult is the outcome of a single-reservation cancellation.
type CancelResult struct {
    Success           bool               `json:"success"`
    Reason            Reason             `json:"reason,omitempty"`
    Message           string             `json:"message"`
    RefundRate        float64            `json:"refund_rate"`
    RefundAmountCents uint32             `json:"refund_amount_cents"`
    RefundStatus      model.RefundStatus `json:"refund_status,omitempty"`
}

// ClassCancelResult summarizes a class-wide cancellation.  Success means
// the schedule itself was marked cancelled; CancelledCount reports how
// many of the fanned-out reservation cancellations actually succeeded and
// may be lower than the number of confirmed reservations.
type ClassCancelResult struct {
    Success        bool   `json:"success"`
    Reason         Reason `json:"reason,omitempty"`
    Message        string `json:"message"`
    CancelledCount int    `json:"cancelled_count"`
    FailedCount    int    `json:"failed_count"`
}
