package booking

import (
    "time"
)

// HoldTTL is how long a pending reservation provisionally keeps its seats
// before the expiry sweep reclaims them.
const HoldTTL = 5 * time.Minute

// Deps bundles the collaborators a Service needs.  Payments and Notifier
// may be nil in tests; the corresponding side effects are then skipped
// with a logged warning.
type Deps struct {
    Schedules     ScheduleStore
    Reservations  ReservationStore
    Cancellations CancellationStore
    Memberships   MembershipStore
    Payments      PaymentGateway
    Notifier      Notifier
    Cache         *AvailabilityCache

    // Clock overrides time.Now, for tests.  Leave nil in production.
    Clock func() time.Time
}

// Service is the booking engine facade.  One instance is constructed per
// process and shared across handlers; all methods are safe for concurrent
// use because every mutation is delegated to guarded store operations.
type Service struct {
    schedules     ScheduleStore
    reservations  ReservationStore
    cancellations CancellationStore
    memberships   MembershipStore
    payments      PaymentGateway
    notifier      Notifier
    cache         *AvailabilityCache
    now           func() time.Time
}

// NewService constructs the booking engine.  The schedule, reservation,
// cancellation and membership stores are mandatory.
func NewService(d Deps) *Service {
    if d.Schedules == nil || d.Reservations == nil || d.Cancellations == nil || d.Memberships == nil {
        panic("nil store passed to booking.NewService")
    }
    cache := d.Cache
    if cache == nil {
        cache = NewAvailabilityCache(DefaultCacheTTL)
    }
    now := d.Clock
    if now == nil {
        now = time.Now
    }
    return &Service{
        schedules:     d.Schedules,
        reservations:  d.Reservations,
        cancellations: d.Cancellations,
        memberships:   d.Memberships,
        payments:      d.Payments,
        notifier:      d.Notifier,
        cache:         cache,
        now:           now,
    }
}
