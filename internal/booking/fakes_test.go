package booking

// In-memory fakes for the store interfaces.  They reproduce the guard
// semantics the MySQL repositories promise (conditional decrement,
// ownership scoping, capped restore) so the engine tests exercise the
// same contract the production wiring does.

import (
    "context"
    "database/sql"
    "sync"
    "time"

    "github.com/azamatk/fitness-class-reservation/internal/model"
    "github.com/azamatk/fitness-class-reservation/internal/queue"
    "github.com/azamatk/fitness-class-reservation/internal/repository"
)

type fakeScheduleStore struct {
    mu        sync.Mutex
    schedules map[uint64]*model.ClassSchedule
    getCalls  int
}

func newFakeScheduleStore(scheds ...*model.ClassSchedule) *fakeScheduleStore {
    s := &fakeScheduleStore{schedules: make(map[uint64]*model.ClassSchedule)}
    for _, sc := range scheds {
        s.schedules[sc.ID] = sc
    }
    return s
}

func (s *fakeScheduleStore) Get(_ context.Context, id uint64) (*model.ClassSchedule, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.getCalls++
    sc, ok := s.schedules[id]
    if !ok {
        return nil, repository.ErrScheduleNotFound
    }
    cp := *sc
    return &cp, nil
}

func (s *fakeScheduleStore) ListRange(_ context.Context, from, to time.Time, classID uint64) ([]model.ClassSchedule, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.getCalls++
    var out []model.ClassSchedule
    for _, sc := range s.schedules {
        if sc.StartsAt.Before(from) || sc.StartsAt.After(to) {
            continue
        }
        if classID != 0 && sc.ClassID != classID {
            continue
        }
        out = append(out, *sc)
    }
    return out, nil
}

func (s *fakeScheduleStore) RestoreSeats(_ context.Context, id uint64, count uint32) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    sc, ok := s.schedules[id]
    if !ok {
        return repository.ErrScheduleNotFound
    }
    sc.RemainingSeats += count
    if sc.RemainingSeats > sc.Capacity {
        sc.RemainingSeats = sc.Capacity
    }
    return nil
}

func (s *fakeScheduleStore) MarkCancelled(_ context.Context, id uint64, reason string) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    sc, ok := s.schedules[id]
    if !ok {
        return repository.ErrScheduleNotFound
    }
    if sc.IsCancelled {
        return repository.ErrScheduleCancelled
    }
    sc.IsCancelled = true
    sc.CancellationReason = &reason
    return nil
}

type fakeReservationStore struct {
    mu           sync.Mutex
    reservations map[uint64]*model.Reservation
    schedules    *fakeScheduleStore
    nextID       uint64
    createErr    error
    setStatusErr map[uint64]error
    expired      chan int
}

func newFakeReservationStore(schedules *fakeScheduleStore, existing ...*model.Reservation) *fakeReservationStore {
    s := &fakeReservationStore{
        reservations: make(map[uint64]*model.Reservation),
        schedules:    schedules,
        nextID:       1,
        setStatusErr: make(map[uint64]error),
    }
    for _, r := range existing {
        s.reservations[r.ID] = r
        if r.ID >= s.nextID {
            s.nextID = r.ID + 1
        }
    }
    return s
}

func (s *fakeReservationStore) CreatePending(_ context.Context, res *model.Reservation) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.createErr != nil {
        return s.createErr
    }
    s.schedules.mu.Lock()
    sc, ok := s.schedules.schedules[res.ScheduleID]
    if !ok {
        s.schedules.mu.Unlock()
        return repository.ErrScheduleNotFound
    }
    if sc.IsCancelled || sc.RemainingSeats < res.StudentCount {
        s.schedules.mu.Unlock()
        return repository.ErrNotEnoughSeats
    }
    sc.RemainingSeats -= res.StudentCount
    s.schedules.mu.Unlock()

    res.ID = s.nextID
    s.nextID++
    res.CreatedAt = time.Now().UTC()
    cp := *res
    s.reservations[res.ID] = &cp
    return nil
}

func (s *fakeReservationStore) Get(_ context.Context, id uint64) (*model.Reservation, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    r, ok := s.reservations[id]
    if !ok {
        return nil, sql.ErrNoRows
    }
    cp := *r
    return &cp, nil
}

func (s *fakeReservationStore) GetForUser(ctx context.Context, id, userID uint64) (*model.Reservation, error) {
    r, err := s.Get(ctx, id)
    if err != nil {
        return nil, err
    }
    if r.UserID != userID {
        return nil, repository.ErrForbidden
    }
    return r, nil
}

func (s *fakeReservationStore) FindConfirmed(_ context.Context, userID, scheduleID uint64) (*model.Reservation, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    for _, r := range s.reservations {
        if r.UserID == userID && r.ScheduleID == scheduleID && r.Status == model.ReservationConfirmed {
            cp := *r
            return &cp, nil
        }
    }
    return nil, nil
}

func (s *fakeReservationStore) SetStatus(_ context.Context, id uint64, status model.ReservationStatus) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if err := s.setStatusErr[id]; err != nil {
        return err
    }
    r, ok := s.reservations[id]
    if !ok {
        return sql.ErrNoRows
    }
    r.Status = status
    return nil
}

func (s *fakeReservationStore) ListBySchedule(_ context.Context, scheduleID uint64, status model.ReservationStatus) ([]model.Reservation, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    var out []model.Reservation
    for _, r := range s.reservations {
        if r.ScheduleID == scheduleID && r.Status == status {
            out = append(out, *r)
        }
    }
    return out, nil
}

func (s *fakeReservationStore) ExpireOverdue(_ context.Context) (int, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    n := 0
    now := time.Now().UTC()
    for _, r := range s.reservations {
        if r.Status == model.ReservationPending && r.ExpiresAt != nil && r.ExpiresAt.Before(now) {
            r.Status = model.ReservationExpired
            n++
        }
    }
    if s.expired != nil {
        select {
        case s.expired <- n:
        default:
        }
    }
    return n, nil
}

type fakeCancellationStore struct {
    mu            sync.Mutex
    created       []*model.Cancellation
    nextID        uint64
    createErrFor  map[uint64]error // keyed by reservation id
    refundStatus  map[uint64]model.RefundStatus
    notified      map[uint64]bool
}

func newFakeCancellationStore() *fakeCancellationStore {
    return &fakeCancellationStore{
        nextID:       1,
        createErrFor: make(map[uint64]error),
        refundStatus: make(map[uint64]model.RefundStatus),
        notified:     make(map[uint64]bool),
    }
}

func (s *fakeCancellationStore) Create(_ context.Context, c *model.Cancellation) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if err := s.createErrFor[c.ReservationID]; err != nil {
        return err
    }
    c.ID = s.nextID
    s.nextID++
    c.CreatedAt = time.Now().UTC()
    cp := *c
    s.created = append(s.created, &cp)
    s.refundStatus[c.ID] = c.RefundStatus
    return nil
}

func (s *fakeCancellationStore) SetRefundStatus(_ context.Context, id uint64, status model.RefundStatus) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.refundStatus[id] = status
    return nil
}

func (s *fakeCancellationStore) MarkNotified(_ context.Context, id uint64) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.notified[id] = true
    return nil
}

type fakeMembershipStore struct {
    mu          sync.Mutex
    memberships map[uint64]*model.UserMembership
}

func newFakeMembershipStore(ms ...*model.UserMembership) *fakeMembershipStore {
    s := &fakeMembershipStore{memberships: make(map[uint64]*model.UserMembership)}
    for _, m := range ms {
        s.memberships[m.UserID] = m
    }
    return s
}

func (s *fakeMembershipStore) Get(_ context.Context, userID uint64) (*model.UserMembership, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    m, ok := s.memberships[userID]
    if !ok {
        return nil, nil
    }
    cp := *m
    return &cp, nil
}

type refundCall struct {
    paymentRef  string
    amountCents uint32
    reason      string
}

type fakeGateway struct {
    mu    sync.Mutex
    calls []refundCall
    err   error
}

func (g *fakeGateway) Refund(_ context.Context, paymentRef string, amountCents uint32, reason string) error {
    g.mu.Lock()
    defer g.mu.Unlock()
    g.calls = append(g.calls, refundCall{paymentRef, amountCents, reason})
    return g.err
}

type fakeNotifier struct {
    mu     sync.Mutex
    events []queue.CancellationEvent
    err    error
}

func (n *fakeNotifier) NotifyCancellation(_ context.Context, ev queue.CancellationEvent) error {
    n.mu.Lock()
    defer n.mu.Unlock()
    n.events = append(n.events, ev)
    return n.err
}

// testEnv bundles a Service wired to fakes with a controllable clock.
type testEnv struct {
    svc           *Service
    schedules     *fakeScheduleStore
    reservations  *fakeReservationStore
    cancellations *fakeCancellationStore
    memberships   *fakeMembershipStore
    gateway       *fakeGateway
    notifier      *fakeNotifier
    now           time.Time
}

func newTestEnv(now time.Time, scheds []*model.ClassSchedule, members []*model.UserMembership, existing ...*model.Reservation) *testEnv {
    env := &testEnv{
        schedules:     newFakeScheduleStore(scheds...),
        cancellations: newFakeCancellationStore(),
        memberships:   newFakeMembershipStore(members...),
        gateway:       &fakeGateway{},
        notifier:      &fakeNotifier{},
        now:           now,
    }
    env.reservations = newFakeReservationStore(env.schedules, existing...)
    env.svc = NewService(Deps{
        Schedules:     env.schedules,
        Reservations:  env.reservations,
        Cancellations: env.cancellations,
        Memberships:   env.memberships,
        Payments:      env.gateway,
        Notifier:      env.notifier,
        Clock:         func() time.Time { return env.now },
    })
    return env
}
