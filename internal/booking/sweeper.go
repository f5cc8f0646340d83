package booking

import (
    "context"
    "log"
    "time"
)

// DefaultSweepInterval is how often the background sweep looks for
// overdue pending holds.
const DefaultSweepInterval = time.Minute

// StartExpirySweeper runs a background loop that transitions PENDING
// reservations past their expiry to EXPIRED and restores their seats.
// Expiry is also enforced lazily inside the hold transaction, so the
// sweeper only bounds how long an abandoned hold can linger on schedules
// nobody is booking.  The loop stops when ctx is cancelled.
func (s *Service) StartExpirySweeper(ctx context.Context, interval time.Duration) {
    if interval <= 0 {
        interval = DefaultSweepInterval
    }
    go func() {
        ticker := time.NewTicker(interval)
        defer ticker.Stop()
        for {
            select {
            case <-ctx.Done():
                return
            case <-ticker.C:
                n, err := s.reservations.ExpireOverdue(ctx)
                if err != nil {
                    log.Printf("sweeper: expiry sweep failed: %v", err)
                    continue
                }
                if n > 0 {
                    log.Printf("sweeper: expired %d overdue hold(s)", n)
                }
            }
        }
    }()
}
