// Package booking implements the seat-availability and cancellation-policy
// engine: availability classification with a time-bounded cache, the ordered
// admission check that gates reservation attempts, temporary holds pending
// payment, refund policy calculation, and the user/admin cancellation
// executors including the class-wide fan-out.
//
// The package is storage-agnostic.  It consumes the narrow store interfaces
// below, implemented by internal/repository over MySQL, and reports refund
// and notification side effects to external collaborators.
package booking

import (
    "context"
    "time"

    "github.com/azamatk/fitness-class-reservation/internal/model"
    "github.com/azamatk/fitness-class-reservation/internal/queue"
)

// ScheduleStore provides authoritative reads and the guarded mutations of
// class schedules.  RestoreSeats and MarkCancelled must be single-statement
// conditional updates so concurrent callers can never corrupt the seat count.
type ScheduleStore interface {
    // Get loads one schedule with its class name, type and price joined in.
    // Returns repository.ErrScheduleNotFound when the id does not exist.
    Get(ctx context.Context, id uint64) (*model.ClassSchedule, error)
    // ListRange loads all schedules starting within [from, to].  classID 0
    // means no class filter.
    ListRange(ctx context.Context, from, to time.Time, classID uint64) ([]model.ClassSchedule, error)
    // RestoreSeats increments remaining_seats by count, capped at capacity.
    RestoreSeats(ctx context.Context, id uint64, count uint32) error
    // MarkCancelled flips is_cancelled exactly once and stores the reason.
    // Returns repository.ErrScheduleCancelled when the flag was already set.
    MarkCancelled(ctx context.Context, id uint64, reason string) error
}

// ReservationStore persists reservations.  CreatePending must combine the
// conditional seat decrement and the insert in one transaction; zero rows
// affected by the decrement is reported as repository.ErrNotEnoughSeats.
type ReservationStore interface {
    CreatePending(ctx context.Context, res *model.Reservation) error
    // Get loads a reservation without ownership scoping (admin paths).
    Get(ctx context.Context, id uint64) (*model.Reservation, error)
    // GetForUser loads a reservation only when it belongs to userID.
    // Returns repository.ErrForbidden for someone else's reservation.
    GetForUser(ctx context.Context, id, userID uint64) (*model.Reservation, error)
    // FindConfirmed returns the user's confirmed reservation on a schedule,
    // or (nil, nil) when none exists.
    FindConfirmed(ctx context.Context, userID, scheduleID uint64) (*model.Reservation, error)
    SetStatus(ctx context.Context, id uint64, status model.ReservationStatus) error
    ListBySchedule(ctx context.Context, scheduleID uint64, status model.ReservationStatus) ([]model.Reservation, error)
    // ExpireOverdue transitions pending reservations past their expiry to
    // EXPIRED and restores their seats.  Returns how many were expired.
    ExpireOverdue(ctx context.Context) (int, error)
}

// CancellationStore persists the cancellation audit trail.
type CancellationStore interface {
    Create(ctx context.Context, c *model.Cancellation) error
    SetRefundStatus(ctx context.Context, id uint64, status model.RefundStatus) error
    MarkNotified(ctx context.Context, id uint64) error
}

// MembershipStore reads the user classification used by the policy
// calculator.  Get returns (nil, nil) for users without a membership row;
// callers treat them as REGULAR with no credit.
type MembershipStore interface {
    Get(ctx context.Context, userID uint64) (*model.UserMembership, error)
}

// PaymentGateway executes refunds against the external payment provider.
// A non-nil error marks the cancellation's refund FAILED.
type PaymentGateway interface {
    Refund(ctx context.Context, paymentRef string, amountCents uint32, reason string) error
}

// Notifier delivers cancellation notices to the user-facing notification
// pipeline.  Failures are logged, never fatal to the cancellation itself.
type Notifier interface {
    NotifyCancellation(ctx context.Context, ev queue.CancellationEvent) error
}
