package booking

import (
    "context"
    "time"

    "github.com/azamatk/fitness-class-reservation/internal/model"
)

// AvailabilityStatus is the classification of a schedule's bookability.
type AvailabilityStatus string

const (
    StatusAvailable AvailabilityStatus = "AVAILABLE" // plenty of seats
    StatusLimited   AvailabilityStatus = "LIMITED"   // 20% of capacity or fewer remaining
    StatusFull      AvailabilityStatus = "FULL"      // no seats left
    StatusCancelled AvailabilityStatus = "CANCELLED" // schedule was cancelled
)

// Classify maps a schedule's seat counts and cancellation flag to an
// availability status.  CANCELLED dominates FULL dominates LIMITED
// dominates AVAILABLE.  Pure function of the schedule; called by both the
// cache-population path and calendar collaborators.
func Classify(s *model.ClassSchedule) AvailabilityStatus {
    if s.IsCancelled {
        return StatusCancelled
    }
    if s.RemainingSeats == 0 {
        return StatusFull
    }
    // ceil(capacity * 0.2) without floating point
    limited := (s.Capacity + 4) / 5
    if s.RemainingSeats <= limited {
        return StatusLimited
    }
    return StatusAvailable
}

// ScheduleWithStatus pairs a schedule with its availability
// classification for UI listings.
type ScheduleWithStatus struct {
    Schedule *model.ClassSchedule `json:"schedule"`
    Status   AvailabilityStatus   `json:"status"`
}

// CheckScheduleAvailability returns one schedule with its classification.
// The result may be served from the availability cache and therefore be
// stale up to the cache TTL; admission decisions never use this path.
func (s *Service) CheckScheduleAvailability(ctx context.Context, scheduleID uint64) (*ScheduleWithStatus, error) {
    key := ScheduleKey(scheduleID)
    if v, ok := s.cache.Get(key); ok {
        if cached, ok := v.(*ScheduleWithStatus); ok {
            return cached, nil
        }
    }
    sched, err := s.schedules.Get(ctx, scheduleID)
    if err != nil {
        return nil, err
    }
    out := &ScheduleWithStatus{Schedule: sched, Status: Classify(sched)}
    s.cache.Put(key, out)
    return out, nil
}

// GetSchedulesAvailability returns all schedules starting within
// [from, to] with their classifications, optionally filtered by class.
// Cache-assisted like CheckScheduleAvailability.
func (s *Service) GetSchedulesAvailability(ctx context.Context, from, to time.Time, classID uint64) ([]ScheduleWithStatus, error) {
    key := RangeKey(from, to, classID)
    if v, ok := s.cache.Get(key); ok {
        if cached, ok := v.([]ScheduleWithStatus); ok {
            return cached, nil
        }
    }
    scheds, err := s.schedules.ListRange(ctx, from, to, classID)
    if err != nil {
        return nil, err
    }
    out := make([]ScheduleWithStatus, 0, len(scheds))
    for i := range scheds {
        sched := scheds[i]
        out = append(out, ScheduleWithStatus{Schedule: &sched, Status: Classify(&sched)})
    }
    s.cache.Put(key, out)
    return out, nil
}

// InvalidateScheduleCache drops the cached payloads affected by a change
// to the given schedule.
func (s *Service) InvalidateScheduleCache(scheduleID uint64) {
    s.cache.Invalidate(scheduleID)
}

// ClearAvailabilityCache empties the availability cache entirely.
func (s *Service) ClearAvailabilityCache() {
    s.cache.Clear()
}
