package model

import "time"

// MembershipTier classifies a user for cancellation-policy purposes.
// Higher tiers receive a better late refund rate and a longer grace
// window before a cancellation drops into a less generous time band.
type MembershipTier string

const (
    TierRegular MembershipTier = "REGULAR"
    TierSilver  MembershipTier = "SILVER"
    TierGold    MembershipTier = "GOLD"
    TierVIP     MembershipTier = "VIP"
)

// SessionCredit is a user's active session balance.  A credit is valid
// only until its expiry; expired credits are treated as absent.
type SessionCredit struct {
    RemainingSessions uint32    // member_credits.remaining_sessions
    ExpiresAt         time.Time // member_credits.expires_at
}

// UserMembership is the read-only classification of a user used to
// parameterize policy calculations.  Credit is nil when the user has no
// session credit on record.
type UserMembership struct {
    UserID uint64         // memberships.user_id
    Tier   MembershipTier // memberships.tier
    Credit *SessionCredit // joined from member_credits (optional)
}
