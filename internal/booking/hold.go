package booking

import (
    "context"
    "errors"
    "fmt"

    "github.com/azamatk/fitness-class-reservation/internal/model"
    "github.com/azamatk/fitness-class-reservation/internal/repository"
)

// CreateTempReservation places a short-lived PENDING hold on seats for the
// given user.  The admission rules are re-run immediately before writing
// to shrink the window between a UI-level availability display and the
// actual hold; the write itself is the authoritative guard.  The store's
// CreatePending combines the conditional seat decrement and the insert in
// one transaction, so two racing holds can never oversell a class: the
// loser's decrement affects zero rows and surfaces here as
// NOT_ENOUGH_SEATS.
//
// On success the availability cache for the schedule is invalidated so
// the next listing re-reads the source of truth.
func (s *Service) CreateTempReservation(ctx context.Context, scheduleID, userID uint64, studentCount uint32, paymentMethod string) (*HoldResult, error) {
    if studentCount == 0 {
        studentCount = 1
    }

    admission, err := s.CheckReservationAvailability(ctx, scheduleID, studentCount, userID, 1)
    if err != nil {
        return nil, err
    }
    if !admission.OK {
        return &HoldResult{
            Reason:  admission.Reason,
            Message: admission.Message,
        }, nil
    }

    sched, err := s.schedules.Get(ctx, scheduleID)
    if err != nil {
        return nil, err
    }

    expiresAt := s.now().Add(HoldTTL).UTC()
    res := &model.Reservation{
        UserID:           userID,
        ScheduleID:       scheduleID,
        StudentCount:     studentCount,
        TotalAmountCents: sched.PriceCents * studentCount,
        PaymentMethod:    paymentMethod,
        Status:           model.ReservationPending,
        ExpiresAt:        &expiresAt,
    }
    if err := s.reservations.CreatePending(ctx, res); err != nil {
        if errors.Is(err, repository.ErrNotEnoughSeats) {
            // Lost the race between admission and write.
            return &HoldResult{
                Reason:  ReasonNotEnoughSeats,
                Message: "seats were taken while completing your reservation",
            }, nil
        }
        return nil, err
    }

    s.cache.Invalidate(scheduleID)

    return &HoldResult{
        Success:       true,
        Message:       fmt.Sprintf("seats held for %d minute(s), complete payment to confirm", int(HoldTTL.Minutes())),
        ReservationID: res.ID,
        ExpiresAt:     expiresAt,
    }, nil
}
