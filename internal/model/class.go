package model

import "time"

// ClassType categorizes a fitness class.  The type influences the
// cancellation refund modifier: special classes, workshops and events
// refund progressively less than regular classes because their
// instructors and venues are booked further in advance.
type ClassType string

const (
    ClassTypeRegular  ClassType = "REGULAR"  // standard recurring class
    ClassTypeSpecial  ClassType = "SPECIAL"  // guest-instructor or themed class
    ClassTypeWorkshop ClassType = "WORKSHOP" // multi-hour intensive
    ClassTypeEvent    ClassType = "EVENT"    // one-off studio event
)

// Class describes a bookable fitness class.  Concrete time slots of a
// class are represented by ClassSchedule rows referencing this record.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – display name of the class.
//  Type       – class type used by the cancellation policy.
//  PriceCents – price per student in cents.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Class struct {
    ID         uint64    // classes.id
    Name       string    // classes.name
    Type       ClassType // classes.class_type
    PriceCents uint32    // classes.price_cents
    CreatedAt  time.Time // classes.created_at
    UpdatedAt  time.Time // classes.updated_at
}
