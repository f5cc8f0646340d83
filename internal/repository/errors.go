// Package repository implements the persistence collaborator over MySQL.
// This file defines the sentinel errors shared across repositories.  They
// let the booking engine and handlers branch on failure scenarios with
// errors.Is instead of string matching: ErrForbidden marks ownership
// violations, ErrNotEnoughSeats is the canonical signal of a guarded seat
// decrement affecting zero rows, and the not-found/cancelled sentinels
// distinguish missing records from terminal ones.
package repository

import "errors"

// ErrForbidden is returned when the caller reads or mutates a reservation
// owned by someone else.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrNotEnoughSeats is returned when the conditional seat decrement
// affects zero rows, meaning the schedule no longer has enough remaining
// seats (or was cancelled concurrently).  The booking engine maps it to a
// NOT_ENOUGH_SEATS rejection.
var ErrNotEnoughSeats = errors.New("not enough seats")

// ErrScheduleNotFound is returned when a class schedule id does not
// exist.  Handlers translate this into HTTP 404.
var ErrScheduleNotFound = errors.New("schedule not found")

// ErrScheduleCancelled is returned when MarkCancelled targets a schedule
// whose is_cancelled flag is already set.  The flag is set exactly once.
var ErrScheduleCancelled = errors.New("schedule already cancelled")
