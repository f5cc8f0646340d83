package booking

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/azamatk/fitness-class-reservation/internal/model"
    "github.com/azamatk/fitness-class-reservation/internal/repository"
)

func TestClassify(t *testing.T) {
    cases := []struct {
        name      string
        capacity  uint32
        remaining uint32
        cancelled bool
        want      AvailabilityStatus
    }{
        {"plenty of seats", 10, 8, false, StatusAvailable},
        {"two of ten is limited", 10, 2, false, StatusLimited},
        {"exactly at the threshold", 10, 2, false, StatusLimited},
        {"one above the threshold", 10, 3, false, StatusAvailable},
        {"no seats left", 10, 0, false, StatusFull},
        {"cancelled beats full", 10, 0, true, StatusCancelled},
        {"cancelled beats available", 10, 8, true, StatusCancelled},
        // ceil(7 * 0.2) = 2, so 2 remaining of 7 is limited
        {"threshold rounds up", 7, 2, false, StatusLimited},
        {"threshold rounds up boundary", 7, 3, false, StatusAvailable},
        {"capacity one empty", 1, 0, false, StatusFull},
        {"capacity one free", 1, 1, false, StatusLimited},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            s := &model.ClassSchedule{
                Capacity:       tc.capacity,
                RemainingSeats: tc.remaining,
                IsCancelled:    tc.cancelled,
            }
            assert.Equal(t, tc.want, Classify(s))
        })
    }
}

func TestCheckScheduleAvailability(t *testing.T) {
    now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    sched := &model.ClassSchedule{
        ID:             1,
        ClassName:      "Morning Yoga",
        ClassType:      model.ClassTypeRegular,
        StartsAt:       now.Add(24 * time.Hour),
        Capacity:       10,
        RemainingSeats: 2,
    }
    env := newTestEnv(now, []*model.ClassSchedule{sched}, nil)

    out, err := env.svc.CheckScheduleAvailability(context.Background(), 1)
    require.NoError(t, err)
    assert.Equal(t, StatusLimited, out.Status)
    assert.Equal(t, uint32(2), out.Schedule.RemainingSeats)

    _, err = env.svc.CheckScheduleAvailability(context.Background(), 99)
    assert.ErrorIs(t, err, repository.ErrScheduleNotFound)
}

func TestCheckScheduleAvailabilityServesCachedPayload(t *testing.T) {
    now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    sched := &model.ClassSchedule{
        ID:             1,
        StartsAt:       now.Add(24 * time.Hour),
        Capacity:       10,
        RemainingSeats: 8,
    }
    env := newTestEnv(now, []*model.ClassSchedule{sched}, nil)

    first, err := env.svc.CheckScheduleAvailability(context.Background(), 1)
    require.NoError(t, err)
    assert.Equal(t, StatusAvailable, first.Status)
    reads := env.schedules.getCalls

    // Change the source of truth; the cached payload must win until the
    // window elapses or the schedule is invalidated.
    env.schedules.schedules[1].RemainingSeats = 0

    second, err := env.svc.CheckScheduleAvailability(context.Background(), 1)
    require.NoError(t, err)
    assert.Equal(t, StatusAvailable, second.Status)
    assert.Equal(t, reads, env.schedules.getCalls, "cached read must not hit the store")

    env.svc.InvalidateScheduleCache(1)

    third, err := env.svc.CheckScheduleAvailability(context.Background(), 1)
    require.NoError(t, err)
    assert.Equal(t, StatusFull, third.Status)
}

func TestGetSchedulesAvailability(t *testing.T) {
    now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    scheds := []*model.ClassSchedule{
        {ID: 1, ClassID: 7, StartsAt: now.Add(2 * time.Hour), Capacity: 10, RemainingSeats: 10},
        {ID: 2, ClassID: 7, StartsAt: now.Add(26 * time.Hour), Capacity: 10, RemainingSeats: 0},
        {ID: 3, ClassID: 8, StartsAt: now.Add(3 * time.Hour), Capacity: 5, RemainingSeats: 1},
        {ID: 4, ClassID: 8, StartsAt: now.Add(80 * time.Hour), Capacity: 5, RemainingSeats: 5},
    }
    env := newTestEnv(now, scheds, nil)

    from, to := now, now.Add(48*time.Hour)

    items, err := env.svc.GetSchedulesAvailability(context.Background(), from, to, 0)
    require.NoError(t, err)
    assert.Len(t, items, 3, "schedule outside the range must be excluded")

    byID := make(map[uint64]AvailabilityStatus, len(items))
    for _, it := range items {
        byID[it.Schedule.ID] = it.Status
    }
    assert.Equal(t, StatusAvailable, byID[1])
    assert.Equal(t, StatusFull, byID[2])
    assert.Equal(t, StatusLimited, byID[3])

    filtered, err := env.svc.GetSchedulesAvailability(context.Background(), from, to, 8)
    require.NoError(t, err)
    require.Len(t, filtered, 1)
    assert.Equal(t, uint64(3), filtered[0].Schedule.ID)
}

func TestGetSchedulesAvailabilityRangeInvalidation(t *testing.T) {
    now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    scheds := []*model.ClassSchedule{
        {ID: 1, StartsAt: now.Add(2 * time.Hour), Capacity: 10, RemainingSeats: 10},
    }
    env := newTestEnv(now, scheds, nil)
    from, to := now, now.Add(48*time.Hour)

    _, err := env.svc.GetSchedulesAvailability(context.Background(), from, to, 0)
    require.NoError(t, err)
    reads := env.schedules.getCalls

    _, err = env.svc.GetSchedulesAvailability(context.Background(), from, to, 0)
    require.NoError(t, err)
    assert.Equal(t, reads, env.schedules.getCalls)

    // A change to any schedule conservatively drops all range listings.
    env.svc.InvalidateScheduleCache(1)

    _, err = env.svc.GetSchedulesAvailability(context.Background(), from, to, 0)
    require.NoError(t, err)
    assert.Greater(t, env.schedules.getCalls, reads)
}
