package booking

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/azamatk/fitness-class-reservation/internal/model"
)

func classwideFixture() *testEnv {
    now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    sched := &model.ClassSchedule{
        ID: 1, ClassName: "Bootcamp", ClassType: model.ClassTypeRegular,
        StartsAt: now.Add(24 * time.Hour), Capacity: 10, RemainingSeats: 4,
    }
    reservations := []*model.Reservation{
        {ID: 1, UserID: 10, ScheduleID: 1, StudentCount: 2, TotalAmountCents: 50000, Status: model.ReservationConfirmed},
        {ID: 2, UserID: 11, ScheduleID: 1, StudentCount: 1, TotalAmountCents: 25000, Status: model.ReservationConfirmed},
        {ID: 3, UserID: 12, ScheduleID: 1, StudentCount: 3, TotalAmountCents: 75000, Status: model.ReservationConfirmed},
        // Pending and cancelled reservations are not part of the fan-out.
        {ID: 4, UserID: 13, ScheduleID: 1, StudentCount: 1, TotalAmountCents: 25000, Status: model.ReservationPending},
        {ID: 5, UserID: 14, ScheduleID: 1, StudentCount: 1, TotalAmountCents: 25000, Status: model.ReservationCancelled},
    }
    return newTestEnv(now, []*model.ClassSchedule{sched}, nil, reservations...)
}

func TestCancelClassSchedule(t *testing.T) {
    env := classwideFixture()
    ctx := context.Background()

    out, err := env.svc.CancelClassSchedule(ctx, 1, 77, "studio flooded")
    require.NoError(t, err)
    require.True(t, out.Success)
    assert.Equal(t, 3, out.CancelledCount)
    assert.Equal(t, 0, out.FailedCount)

    assert.True(t, env.schedules.schedules[1].IsCancelled)
    require.NotNil(t, env.schedules.schedules[1].CancellationReason)
    assert.Equal(t, "studio flooded", *env.schedules.schedules[1].CancellationReason)

    // Every confirmed reservation is cancelled with a full refund and a
    // notification; pending and cancelled ones are untouched.
    for _, id := range []uint64{1, 2, 3} {
        r, err := env.reservations.Get(ctx, id)
        require.NoError(t, err)
        assert.Equal(t, model.ReservationCancelled, r.Status)
    }
    pending, err := env.reservations.Get(ctx, 4)
    require.NoError(t, err)
    assert.Equal(t, model.ReservationPending, pending.Status)

    assert.Len(t, env.cancellations.created, 3)
    for _, cn := range env.cancellations.created {
        assert.True(t, cn.IsAdminCancellation)
        assert.Equal(t, 1.0, cn.RefundRate)
    }
    assert.Len(t, env.notifier.events, 3)
}

func TestCancelClassScheduleAllSettle(t *testing.T) {
    env := classwideFixture()

    // Reservation 2's audit write fails; the other two must still settle.
    env.cancellations.createErrFor[2] = errors.New("deadlock")

    out, err := env.svc.CancelClassSchedule(context.Background(), 1, 77, "studio flooded")
    require.NoError(t, err)
    require.True(t, out.Success, "schedule cancellation succeeds despite per-reservation failures")
    assert.Equal(t, 2, out.CancelledCount)
    assert.Equal(t, 1, out.FailedCount)

    r1, _ := env.reservations.Get(context.Background(), 1)
    r2, _ := env.reservations.Get(context.Background(), 2)
    r3, _ := env.reservations.Get(context.Background(), 3)
    assert.Equal(t, model.ReservationCancelled, r1.Status)
    assert.Equal(t, model.ReservationConfirmed, r2.Status, "failed reservation stays for retry")
    assert.Equal(t, model.ReservationCancelled, r3.Status)
}

func TestCancelClassScheduleAlreadyCancelled(t *testing.T) {
    env := classwideFixture()
    env.schedules.schedules[1].IsCancelled = true

    out, err := env.svc.CancelClassSchedule(context.Background(), 1, 77, "again")
    require.NoError(t, err)
    assert.False(t, out.Success)
    assert.Equal(t, ReasonAlreadyCancelled, out.Reason)
    assert.Empty(t, env.cancellations.created)
}

func TestCancelClassScheduleNoConfirmedReservations(t *testing.T) {
    now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    sched := &model.ClassSchedule{
        ID: 1, StartsAt: now.Add(24 * time.Hour), Capacity: 10, RemainingSeats: 10,
    }
    env := newTestEnv(now, []*model.ClassSchedule{sched}, nil)

    out, err := env.svc.CancelClassSchedule(context.Background(), 1, 77, "no takers")
    require.NoError(t, err)
    require.True(t, out.Success)
    assert.Zero(t, out.CancelledCount)
    assert.Zero(t, out.FailedCount)
    assert.True(t, env.schedules.schedules[1].IsCancelled)
}
