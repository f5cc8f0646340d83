package booking

import (
    "context"
    "fmt"
    "log"
    "sync"

    "github.com/azamatk/fitness-class-reservation/internal/model"
)

// CancelClassSchedule cancels an entire schedule and fans out admin
// cancellations for every confirmed reservation on it.  The fan-out runs
// concurrently with all-settle semantics: one reservation's failure never
// aborts the others.  Success of the overall result means the schedule was
// marked cancelled; callers must inspect CancelledCount to detect partial
// completion of the per-reservation work.
func (s *Service) CancelClassSchedule(ctx context.Context, scheduleID, adminID uint64, reason string) (*ClassCancelResult, error) {
    sched, err := s.schedules.Get(ctx, scheduleID)
    if err != nil {
        return nil, err
    }
    if sched.IsCancelled {
        return &ClassCancelResult{
            Reason:  ReasonAlreadyCancelled,
            Message: "this schedule has already been cancelled",
        }, nil
    }

    if err := s.schedules.MarkCancelled(ctx, scheduleID, reason); err != nil {
        return nil, fmt.Errorf("mark schedule cancelled: %w", err)
    }

    confirmed, err := s.reservations.ListBySchedule(ctx, scheduleID, model.ReservationConfirmed)
    if err != nil {
        return nil, fmt.Errorf("list confirmed reservations: %w", err)
    }

    var (
        wg        sync.WaitGroup
        mu        sync.Mutex
        cancelled int
        failed    int
    )
    for _, r := range confirmed {
        wg.Add(1)
        go func(reservationID uint64) {
            defer wg.Done()
            out, err := s.AdminCancelReservation(ctx, reservationID, adminID, reason, true)
            mu.Lock()
            defer mu.Unlock()
            if err != nil || !out.Success {
                failed++
                if err != nil {
                    log.Printf("class-cancel: reservation %d on schedule %d failed: %v", reservationID, scheduleID, err)
                }
                return
            }
            cancelled++
        }(r.ID)
    }
    wg.Wait()

    s.cache.Invalidate(scheduleID)

    return &ClassCancelResult{
        Success:        true,
        Message:        fmt.Sprintf("schedule cancelled, %d of %d reservation(s) refunded", cancelled, len(confirmed)),
        CancelledCount: cancelled,
        FailedCount:    failed,
    }, nil
}
