package queue

// CancellationEvent is published when a reservation is cancelled with
// user notification requested.  It carries enough information for
// downstream consumers to notify the member and feed analytics without
// querying the primary database.
type CancellationEvent struct {
    CancellationID    uint64  `json:"cancellation_id"`
    ReservationID     uint64  `json:"reservation_id"`
    UserID            uint64  `json:"user_id"`
    ScheduleID        uint64  `json:"schedule_id"`
    ClassName         string  `json:"class_name"`
    StartsAt          string  `json:"starts_at"`
    Reason            string  `json:"reason"`
    RefundRate        float64 `json:"refund_rate"`
    RefundAmountCents uint32  `json:"refund_amount_cents"`
    IsAdmin           bool    `json:"is_admin_cancellation"`
    CancelledAt       string  `json:"cancelled_at"`
}
