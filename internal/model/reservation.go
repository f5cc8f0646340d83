package model

import "time"

// ReservationStatus enumerates the lifecycle states of a reservation.
// Transitions are monotonic: PENDING may become CONFIRMED, CANCELLED or
// EXPIRED; CONFIRMED may become CANCELLED; nothing ever re-opens.
type ReservationStatus string

const (
    ReservationPending   ReservationStatus = "PENDING"   // seat held, awaiting payment
    ReservationConfirmed ReservationStatus = "CONFIRMED" // payment completed
    ReservationCancelled ReservationStatus = "CANCELLED" // cancelled by user or admin
    ReservationExpired   ReservationStatus = "EXPIRED"   // pending hold ran past its expiry
)

// Reservation records a user's claim on a class schedule for one or
// more students.  A reservation starts as a PENDING hold that expires
// five minutes after creation unless the payment collaborator confirms
// it.  The reservation is owned exclusively by the user who created it;
// repository reads enforce ownership at query time.
//
// Fields:
//  ID               – primary key identifier.
//  UserID           – user who made the reservation.
//  ScheduleID       – class schedule being reserved.
//  StudentCount     – number of seats claimed, always >= 1.
//  TotalAmountCents – total price in cents for all students.
//  PaymentMethod    – payment method chosen at hold time.
//  PaymentRef       – external payment reference, set on confirmation.
//  Status           – current lifecycle state.
//  ExpiresAt        – hold expiry; only meaningful while PENDING.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Reservation struct {
    ID               uint64            // reservations.id
    UserID           uint64            // reservations.user_id
    ScheduleID       uint64            // reservations.schedule_id
    StudentCount     uint32            // reservations.student_count
    TotalAmountCents uint32            // reservations.total_amount_cents
    PaymentMethod    string            // reservations.payment_method
    PaymentRef       *string           // reservations.payment_ref (nullable)
    Status           ReservationStatus // reservations.status
    ExpiresAt        *time.Time        // reservations.expires_at (nullable)
    CreatedAt        time.Time         // reservations.created_at
    UpdatedAt        time.Time         // reservations.updated_at
}
