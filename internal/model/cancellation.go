package model

import "time"

// RefundStatus tracks the state of the refund attached to a
// cancellation.  A refund starts PENDING when an amount is owed and
// transitions to COMPLETED or FAILED after the payment collaborator
// reports the outcome.  Zero-amount cancellations are written as
// COMPLETED immediately.
type RefundStatus string

const (
    RefundPending   RefundStatus = "PENDING"
    RefundCompleted RefundStatus = "COMPLETED"
    RefundFailed    RefundStatus = "FAILED"
)

// Cancellation is the audit record of an executed cancellation.  It
// captures the refund rate and amount that were applied so the policy
// can be reconstructed after the fact without re-deriving it.  Apart
// from refund_status and notification_sent the record is immutable.
//
// Fields:
//  ID                  – primary key identifier.
//  ReservationID       – reservation that was cancelled.
//  CancelledBy         – user or admin who requested the cancellation.
//  Reason              – free-form reason supplied by the caller.
//  RefundRate          – effective refund rate that was applied.
//  RefundAmountCents   – refund amount in cents.
//  RefundStatus        – PENDING, COMPLETED or FAILED.
//  IsAdminCancellation – true when an admin forced the cancellation.
//  NotificationSent    – true once the user has been notified.
//  CreatedAt           – creation timestamp.
type Cancellation struct {
    ID                  uint64       // cancellations.id
    ReservationID       uint64       // cancellations.reservation_id
    CancelledBy         uint64       // cancellations.cancelled_by
    Reason              string       // cancellations.reason
    RefundRate          float64      // cancellations.refund_rate
    RefundAmountCents   uint32       // cancellations.refund_amount_cents
    RefundStatus        RefundStatus // cancellations.refund_status
    IsAdminCancellation bool         // cancellations.is_admin_cancellation
    NotificationSent    bool         // cancellations.notification_sent
    CreatedAt           time.Time    // cancellations.created_at
}
