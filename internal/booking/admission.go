package booking

import (
    "context"
    "fmt"

    "github.com/azamatk/fitness-class-reservation/internal/model"
)

// CheckReservationAvailability validates whether a reservation attempt for
// a schedule may proceed.  Rules run in a strict order and the first
// failing rule short-circuits; there is no partial success.  The schedule
// is read directly from the source of truth, never from the availability
// cache, because admission must see the freshest seat count.
//
// userID 0 marks an anonymous (guest) attempt: the duplicate-reservation
// and membership-credit rules deliberately do not apply to guests, who
// settle per attendance at the front desk.  sessionsRequired defaults to 1
// when 0 is passed.
//
// Read-only: errors from the underlying reads are propagated, rejections
// are returned as a structured result.
func (s *Service) CheckReservationAvailability(ctx context.Context, scheduleID uint64, studentCount uint32, userID uint64, sessionsRequired uint32) (*AdmissionResult, error) {
    if studentCount == 0 {
        studentCount = 1
    }
    if sessionsRequired == 0 {
        sessionsRequired = 1
    }

    sched, err := s.schedules.Get(ctx, scheduleID)
    if err != nil {
        return nil, err
    }
    if sched.IsCancelled {
        return &AdmissionResult{
            Reason:  ReasonCancelled,
            Message: "this class has been cancelled",
        }, nil
    }
    if sched.StartsAt.Before(s.now()) {
        return &AdmissionResult{
            Reason:  ReasonPastClass,
            Message: "this class has already started",
        }, nil
    }
    if sched.RemainingSeats < studentCount {
        return &AdmissionResult{
            Reason: ReasonNotEnoughSeats,
            Message: fmt.Sprintf("only %d seat(s) remaining, %d requested",
                sched.RemainingSeats, studentCount),
        }, nil
    }

    if userID == 0 {
        // Guest admission: no account to check duplicates or credits
        // against.  This is an explicit policy branch, not a fallthrough.
        return &AdmissionResult{
            OK:      true,
            Message: "seats available",
            Status:  Classify(sched),
        }, nil
    }

    existing, err := s.reservations.FindConfirmed(ctx, userID, scheduleID)
    if err != nil {
        return nil, err
    }
    if existing != nil {
        return &AdmissionResult{
            Reason:  ReasonAlreadyReserved,
            Message: "you already have a confirmed reservation for this class",
        }, nil
    }

    membership, err := s.memberships.Get(ctx, userID)
    if err != nil {
        return nil, err
    }
    var credit *model.SessionCredit
    if membership != nil && membership.Credit != nil && membership.Credit.ExpiresAt.After(s.now()) {
        credit = membership.Credit
    }
    if credit == nil {
        return &AdmissionResult{
            Reason:  ReasonNoValidSession,
            Message: "no valid session credit on your membership",
        }, nil
    }
    if credit.RemainingSessions < sessionsRequired {
        return &AdmissionResult{
            Reason: ReasonInsufficientSessions,
            Message: fmt.Sprintf("%d session(s) required but only %d remaining",
                sessionsRequired, credit.RemainingSessions),
        }, nil
    }

    return &AdmissionResult{
        OK:      true,
        Message: "seats available",
        Status:  Classify(sched),
        Credit:  credit,
    }, nil
}
