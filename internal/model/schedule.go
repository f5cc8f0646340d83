package model

import "time"

// ClassSchedule is one concrete time slot of a class.  Seat accounting
// happens on this record: remaining_seats is decremented atomically when
// a hold is written and incremented when a reservation is cancelled or
// expires.  Once is_cancelled is set the schedule is terminal and no
// further reservations are admitted.
//
// The ClassName, ClassType and PriceCents fields are denormalized from
// the owning class row when a schedule is loaded; they are never written
// through this model.
//
// Fields:
//  ID                 – primary key identifier.
//  ClassID            – class this slot belongs to.
//  ClassName          – joined from classes.name.
//  ClassType          – joined from classes.class_type.
//  PriceCents         – joined from classes.price_cents (per student).
//  StartsAt           – start timestamp (UTC).
//  DurationMin        – duration in minutes.
//  Capacity           – total seats, always > 0.
//  RemainingSeats     – seats still available, 0..Capacity.
//  IsCancelled        – set true exactly once, terminal.
//  CancellationReason – reason recorded when the schedule was cancelled.
type ClassSchedule struct {
    ID                 uint64    // class_schedules.id
    ClassID            uint64    // class_schedules.class_id
    ClassName          string    // classes.name (joined)
    ClassType          ClassType // classes.class_type (joined)
    PriceCents         uint32    // classes.price_cents (joined)
    StartsAt           time.Time // class_schedules.starts_at
    DurationMin        uint32    // class_schedules.duration_min
    Capacity           uint32    // class_schedules.capacity
    RemainingSeats     uint32    // class_schedules.remaining_seats
    IsCancelled        bool      // class_schedules.is_cancelled
    CancellationReason *string   // class_schedules.cancellation_reason (nullable)
    CreatedAt          time.Time // class_schedules.created_at
    UpdatedAt          time.Time // class_schedules.updated_at
}

// EndsAt returns the end of the slot derived from start and duration.
func (s *ClassSchedule) EndsAt() time.Time {
    return s.StartsAt.Add(time.Duration(s.DurationMin) * time.Minute)
}
