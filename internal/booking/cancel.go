package booking

import (
    "context"
    "fmt"
    "log"
    "time"

    "github.com/azamatk/fitness-class-reservation/internal/model"
    "github.com/azamatk/fitness-class-reservation/internal/queue"
)

// CancelReservation executes a user-initiated cancellation.  The
// reservation is loaded scoped to the requesting user, so a reservation
// belonging to someone else surfaces as repository.ErrForbidden before
// anything happens.  Cancelling an already-cancelled or expired
// reservation is a no-op rejection and never double-restores seats.
//
// Once the policy gate passes, the write sequence is: cancellation audit
// record, reservation status flip, seat restoration, cache invalidation,
// refund trigger.  Any write failure is surfaced as a hard error; the
// operation is safe to retry as long as the status flip has not committed,
// because the retry hits the ALREADY_CANCELLED guard afterwards.
func (s *Service) CancelReservation(ctx context.Context, reservationID, userID uint64, reason string) (*CancelResult, error) {
    res, err := s.reservations.GetForUser(ctx, reservationID, userID)
    if err != nil {
        return nil, err
    }
    if rejected := cancelledGuard(res); rejected != nil {
        return rejected, nil
    }

    sched, err := s.schedules.Get(ctx, res.ScheduleID)
    if err != nil {
        return nil, err
    }
    membership, err := s.memberships.Get(ctx, userID)
    if err != nil {
        return nil, err
    }

    pol := EvaluatePolicy(res, sched, membership, s.now())
    if !pol.CanCancel {
        return &CancelResult{
            Reason:  ReasonPolicyDenied,
            Message: pol.Message,
        }, nil
    }

    return s.executeCancellation(ctx, res, sched, cancelParams{
        cancelledBy: userID,
        reason:      reason,
        rate:        pol.RefundRate,
        amountCents: pol.RefundAmountCents,
    })
}

// AdminCancelReservation cancels any reservation on behalf of an admin.
// The policy gate is skipped: the refund is unconditionally the full
// amount.  When notify is true a cancellation notice is published for the
// user and recorded on the audit row.
func (s *Service) AdminCancelReservation(ctx context.Context, reservationID, adminID uint64, reason string, notify bool) (*CancelResult, error) {
    res, err := s.reservations.Get(ctx, reservationID)
    if err != nil {
        return nil, err
    }
    if rejected := cancelledGuard(res); rejected != nil {
        return rejected, nil
    }
    sched, err := s.schedules.Get(ctx, res.ScheduleID)
    if err != nil {
        return nil, err
    }
    return s.executeCancellation(ctx, res, sched, cancelParams{
        cancelledBy: adminID,
        reason:      reason,
        rate:        1.0,
        amountCents: res.TotalAmountCents,
        admin:       true,
        notify:      notify,
    })
}

// cancelledGuard returns the idempotent rejection for reservations that
// are no longer cancellable, or nil when cancellation may proceed.
func cancelledGuard(res *model.Reservation) *CancelResult {
    switch res.Status {
    case model.ReservationCancelled:
        return &CancelResult{
            Reason:  ReasonAlreadyCancelled,
            Message: "this reservation has already been cancelled",
        }
    case model.ReservationExpired:
        return &CancelResult{
            Reason:  ReasonAlreadyCancelled,
            Message: "this reservation expired and holds no seats",
        }
    }
    return nil
}

type cancelParams struct {
    cancelledBy uint64
    reason      string
    rate        float64
    amountCents uint32
    admin       bool
    notify      bool
}

// executeCancellation is the core write sequence shared by the user and
// admin entry points.  Failures in the durable writes return hard errors;
// refund and notification outcomes are recorded on the audit row but do
// not fail the cancellation itself.
func (s *Service) executeCancellation(ctx context.Context, res *model.Reservation, sched *model.ClassSchedule, p cancelParams) (*CancelResult, error) {
    refundStatus := model.RefundCompleted
    if p.amountCents > 0 {
        refundStatus = model.RefundPending
    }
    cn := &model.Cancellation{
        ReservationID:       res.ID,
        CancelledBy:         p.cancelledBy,
        Reason:              p.reason,
        RefundRate:          p.rate,
        RefundAmountCents:   p.amountCents,
        RefundStatus:        refundStatus,
        IsAdminCancellation: p.admin,
    }
    if err := s.cancellations.Create(ctx, cn); err != nil {
        return nil, fmt.Errorf("write cancellation record: %w", err)
    }
    if err := s.reservations.SetStatus(ctx, res.ID, model.ReservationCancelled); err != nil {
        return nil, fmt.Errorf("update reservation status: %w", err)
    }
    if err := s.schedules.RestoreSeats(ctx, res.ScheduleID, res.StudentCount); err != nil {
        return nil, fmt.Errorf("restore seats: %w", err)
    }
    s.cache.Invalidate(res.ScheduleID)

    if p.amountCents > 0 {
        refundStatus = s.triggerRefund(ctx, cn, res, p.reason)
    }

    if p.notify {
        s.notifyCancellation(ctx, cn, res, sched)
    }

    msg := "reservation cancelled"
    if p.amountCents > 0 {
        switch refundStatus {
        case model.RefundCompleted:
            msg = fmt.Sprintf("reservation cancelled, %d cents refunded", p.amountCents)
        case model.RefundFailed:
            msg = fmt.Sprintf("reservation cancelled, refund of %d cents could not be processed and will be retried", p.amountCents)
        }
    }
    return &CancelResult{
        Success:           true,
        Message:           msg,
        RefundRate:        p.rate,
        RefundAmountCents: p.amountCents,
        RefundStatus:      refundStatus,
    }, nil
}

// triggerRefund invokes the payment collaborator and records the outcome.
// The refund is fallible: COMPLETED only on confirmed success, FAILED
// otherwise.  Errors updating the audit row are logged, not returned: the
// cancellation has already committed.
func (s *Service) triggerRefund(ctx context.Context, cn *model.Cancellation, res *model.Reservation, reason string) model.RefundStatus {
    status := model.RefundFailed
    if s.payments == nil {
        log.Printf("cancel: no payment gateway configured, refund for cancellation %d left pending", cn.ID)
        return model.RefundPending
    }
    ref := ""
    if res.PaymentRef != nil {
        ref = *res.PaymentRef
    }
    if err := s.payments.Refund(ctx, ref, cn.RefundAmountCents, reason); err != nil {
        log.Printf("cancel: refund failed for cancellation %d: %v", cn.ID, err)
    } else {
        status = model.RefundCompleted
    }
    if err := s.cancellations.SetRefundStatus(ctx, cn.ID, status); err != nil {
        log.Printf("cancel: failed to record refund status for cancellation %d: %v", cn.ID, err)
    }
    return status
}

// notifyCancellation publishes the cancellation notice and marks the audit
// row.  Notification failures never fail the cancellation.
func (s *Service) notifyCancellation(ctx context.Context, cn *model.Cancellation, res *model.Reservation, sched *model.ClassSchedule) {
    if s.notifier == nil {
        log.Printf("cancel: no notifier configured, skipping notice for cancellation %d", cn.ID)
        return
    }
    ev := queue.CancellationEvent{
        CancellationID:    cn.ID,
        ReservationID:     res.ID,
        UserID:            res.UserID,
        ScheduleID:        res.ScheduleID,
        ClassName:         sched.ClassName,
        StartsAt:          sched.StartsAt.UTC().Format(time.RFC3339),
        Reason:            cn.Reason,
        RefundRate:        cn.RefundRate,
        RefundAmountCents: cn.RefundAmountCents,
        IsAdmin:           cn.IsAdminCancellation,
        CancelledAt:       s.now().UTC().Format(time.RFC3339),
    }
    if err := s.notifier.NotifyCancellation(ctx, ev); err != nil {
        log.Printf("cancel: notification publish failed for cancellation %d: %v", cn.ID, err)
        return
    }
    if err := s.cancellations.MarkNotified(ctx, cn.ID); err != nil {
        log.Printf("cancel: failed to record notification flag for cancellation %d: %v", cn.ID, err)
    }
}
