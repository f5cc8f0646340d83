package booking

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/azamatk/fitness-class-reservation/internal/model"
    "github.com/azamatk/fitness-class-reservation/internal/repository"
)

func cancelFixture() (*testEnv, time.Time) {
    now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    ref := "pay-123"
    sched := &model.ClassSchedule{
        ID: 1, ClassName: "Pottery Workshop", ClassType: model.ClassTypeWorkshop,
        StartsAt: now.Add(30 * time.Hour), Capacity: 10, RemainingSeats: 3,
    }
    member := &model.UserMembership{UserID: 10, Tier: model.TierGold}
    res := &model.Reservation{
        ID: 1, UserID: 10, ScheduleID: 1, StudentCount: 2,
        TotalAmountCents: 100000, PaymentRef: &ref,
        Status: model.ReservationConfirmed,
    }
    return newTestEnv(now, []*model.ClassSchedule{sched}, []*model.UserMembership{member}, res), now
}

func TestCancelReservation(t *testing.T) {
    env, _ := cancelFixture()
    ctx := context.Background()

    out, err := env.svc.CancelReservation(ctx, 1, 10, "schedule conflict")
    require.NoError(t, err)
    require.True(t, out.Success)

    // GOLD workshop at 30h: STANDARD band 0.8 x 0.7 modifier.
    assert.InDelta(t, 0.56, out.RefundRate, 1e-9)
    assert.Equal(t, uint32(56000), out.RefundAmountCents)
    assert.Equal(t, model.RefundCompleted, out.RefundStatus)

    stored, err := env.reservations.Get(ctx, 1)
    require.NoError(t, err)
    assert.Equal(t, model.ReservationCancelled, stored.Status)

    // Both seats return to the pool.
    assert.Equal(t, uint32(5), env.schedules.schedules[1].RemainingSeats)

    // The audit row carries the applied policy and the refund went
    // through the gateway with the stored payment reference.
    require.Len(t, env.cancellations.created, 1)
    cn := env.cancellations.created[0]
    assert.Equal(t, uint64(1), cn.ReservationID)
    assert.Equal(t, uint64(10), cn.CancelledBy)
    assert.False(t, cn.IsAdminCancellation)
    require.Len(t, env.gateway.calls, 1)
    assert.Equal(t, "pay-123", env.gateway.calls[0].paymentRef)
    assert.Equal(t, uint32(56000), env.gateway.calls[0].amountCents)
}

func TestCancelReservationIdempotentRejection(t *testing.T) {
    env, _ := cancelFixture()
    ctx := context.Background()

    first, err := env.svc.CancelReservation(ctx, 1, 10, "conflict")
    require.NoError(t, err)
    require.True(t, first.Success)
    seats := env.schedules.schedules[1].RemainingSeats

    second, err := env.svc.CancelReservation(ctx, 1, 10, "conflict again")
    require.NoError(t, err)
    assert.False(t, second.Success)
    assert.Equal(t, ReasonAlreadyCancelled, second.Reason)

    // The retry must not double-restore seats or refund twice.
    assert.Equal(t, seats, env.schedules.schedules[1].RemainingSeats)
    assert.Len(t, env.gateway.calls, 1)
    assert.Len(t, env.cancellations.created, 1)
}

func TestCancelReservationExpiredHoldsNoSeats(t *testing.T) {
    env, _ := cancelFixture()
    env.reservations.reservations[1].Status = model.ReservationExpired

    out, err := env.svc.CancelReservation(context.Background(), 1, 10, "late")
    require.NoError(t, err)
    assert.False(t, out.Success)
    assert.Equal(t, ReasonAlreadyCancelled, out.Reason)
    assert.Equal(t, uint32(3), env.schedules.schedules[1].RemainingSeats)
}

func TestCancelReservationPolicyDenied(t *testing.T) {
    env, now := cancelFixture()
    env.schedules.schedules[1].StartsAt = now.Add(-time.Hour)

    out, err := env.svc.CancelReservation(context.Background(), 1, 10, "too late")
    require.NoError(t, err)
    assert.False(t, out.Success)
    assert.Equal(t, ReasonPolicyDenied, out.Reason)
    assert.Empty(t, env.cancellations.created)
    assert.Equal(t, uint32(3), env.schedules.schedules[1].RemainingSeats)
}

func TestCancelReservationOwnership(t *testing.T) {
    env, _ := cancelFixture()
    _, err := env.svc.CancelReservation(context.Background(), 1, 99, "not mine")
    assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestCancelReservationRefundFailure(t *testing.T) {
    env, _ := cancelFixture()
    env.gateway.err = errors.New("gateway timeout")

    out, err := env.svc.CancelReservation(context.Background(), 1, 10, "conflict")
    require.NoError(t, err, "a failed refund does not fail the cancellation")
    require.True(t, out.Success)
    assert.Equal(t, model.RefundFailed, out.RefundStatus)
    assert.Contains(t, out.Message, "could not be processed")

    // The cancellation itself committed: status flipped, seats restored,
    // audit row marked FAILED for the retry queue.
    stored, err := env.reservations.Get(context.Background(), 1)
    require.NoError(t, err)
    assert.Equal(t, model.ReservationCancelled, stored.Status)
    cn := env.cancellations.created[0]
    assert.Equal(t, model.RefundFailed, env.cancellations.refundStatus[cn.ID])
}

func TestCancelReservationNoGatewayLeavesRefundPending(t *testing.T) {
    env, now := cancelFixture()
    svc := NewService(Deps{
        Schedules:     env.schedules,
        Reservations:  env.reservations,
        Cancellations: env.cancellations,
        Memberships:   env.memberships,
        Clock:         func() time.Time { return now },
    })

    out, err := svc.CancelReservation(context.Background(), 1, 10, "conflict")
    require.NoError(t, err)
    require.True(t, out.Success)
    assert.Equal(t, model.RefundPending, out.RefundStatus)
}

func TestAdminCancelReservation(t *testing.T) {
    env, _ := cancelFixture()
    ctx := context.Background()

    out, err := env.svc.AdminCancelReservation(ctx, 1, 77, "instructor sick", true)
    require.NoError(t, err)
    require.True(t, out.Success)

    // Admins bypass the policy: full refund regardless of band or type.
    assert.Equal(t, 1.0, out.RefundRate)
    assert.Equal(t, uint32(100000), out.RefundAmountCents)

    cn := env.cancellations.created[0]
    assert.True(t, cn.IsAdminCancellation)
    assert.Equal(t, uint64(77), cn.CancelledBy)

    // notify=true publishes the event and flags the audit row.
    require.Len(t, env.notifier.events, 1)
    ev := env.notifier.events[0]
    assert.Equal(t, uint64(1), ev.ReservationID)
    assert.Equal(t, "Pottery Workshop", ev.ClassName)
    assert.True(t, ev.IsAdmin)
    assert.True(t, env.cancellations.notified[cn.ID])
}

func TestAdminCancelReservationWithoutNotify(t *testing.T) {
    env, _ := cancelFixture()

    out, err := env.svc.AdminCancelReservation(context.Background(), 1, 77, "cleanup", false)
    require.NoError(t, err)
    require.True(t, out.Success)
    assert.Empty(t, env.notifier.events)
}

func TestAdminCancelReservationNotScopedToOwner(t *testing.T) {
    env, _ := cancelFixture()

    // The admin read is unscoped; any admin id works.
    out, err := env.svc.AdminCancelReservation(context.Background(), 1, 12345, "fraud", false)
    require.NoError(t, err)
    assert.True(t, out.Success)
}
