package repository

import (
    "context"
    "database/sql"

    "github.com/azamatk/fitness-class-reservation/internal/model"
)

// CancellationRepo persists the cancellation audit trail.  A cancellation
// row is written once per cancelled reservation and is immutable apart
// from refund_status and notification_sent, which the booking engine
// updates after the payment and notification collaborators report back.
type CancellationRepo struct {
    db *sql.DB
}

// NewCancellationRepo returns a CancellationRepo bound to the given database.
func NewCancellationRepo(db *sql.DB) *CancellationRepo { return &CancellationRepo{db: db} }

// Create inserts the audit record and populates the generated ID and
// creation timestamp on c.
func (r *CancellationRepo) Create(ctx context.Context, c *model.Cancellation) error {
    const q = `INSERT INTO cancellations
               (reservation_id, cancelled_by, reason, refund_rate, refund_amount_cents,
                refund_status, is_admin_cancellation, notification_sent)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := r.db.ExecContext(ctx, q,
        c.ReservationID, c.CancelledBy, c.Reason, c.RefundRate, c.RefundAmountCents,
        string(c.RefundStatus), c.IsAdminCancellation, c.NotificationSent,
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT created_at FROM cancellations WHERE id = ?`, c.ID,
    ).Scan(&c.CreatedAt)
}

// SetRefundStatus records the outcome reported by the payment
// collaborator: PENDING -> COMPLETED or PENDING -> FAILED.
func (r *CancellationRepo) SetRefundStatus(ctx context.Context, id uint64, status model.RefundStatus) error {
    const q = `UPDATE cancellations SET refund_status = ? WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, string(status), id)
    return err
}

// MarkNotified flags that the user notification was delivered.
func (r *CancellationRepo) MarkNotified(ctx context.Context, id uint64) error {
    const q = `UPDATE cancellations SET notification_sent = 1 WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, id)
    return err
}
