package booking

import (
    "context"
    "fmt"
    "log"
    "math"
    "time"

    "github.com/azamatk/fitness-class-reservation/internal/model"
)

// TimeBand is the coarse time-to-class bucket a cancellation falls into.
// Bands are evaluated on membership-adjusted time, so higher tiers
// effectively enjoy more generous bands.
type TimeBand string

const (
    BandEarly    TimeBand = "EARLY"    // 48h or more before start
    BandStandard TimeBand = "STANDARD" // 24h to 48h before start
    BandLate     TimeBand = "LATE"     // under 24h before start
)

// tierPolicy is the per-tier parameterization of the calculator.
type tierPolicy struct {
    lateRefundRate float64
    graceMinutes   int
}

// tierPolicyFor resolves the policy for a membership tier.  Unknown tiers
// fall back to REGULAR deliberately, with a log line so silent data drift
// is visible.
func tierPolicyFor(tier model.MembershipTier) tierPolicy {
    switch tier {
    case model.TierRegular:
        return tierPolicy{lateRefundRate: 0.5, graceMinutes: 0}
    case model.TierSilver:
        return tierPolicy{lateRefundRate: 0.6, graceMinutes: 30}
    case model.TierGold:
        return tierPolicy{lateRefundRate: 0.7, graceMinutes: 60}
    case model.TierVIP:
        return tierPolicy{lateRefundRate: 0.8, graceMinutes: 120}
    default:
        log.Printf("policy: unknown membership tier %q, using REGULAR", tier)
        return tierPolicy{lateRefundRate: 0.5, graceMinutes: 0}
    }
}

// classTypeModifier resolves the refund modifier for a class type.
// Unknown types fall back to the REGULAR modifier, logged.
func classTypeModifier(ct model.ClassType) float64 {
    switch ct {
    case model.ClassTypeRegular:
        return 1.0
    case model.ClassTypeSpecial:
        return 0.8
    case model.ClassTypeWorkshop:
        return 0.7
    case model.ClassTypeEvent:
        return 0.5
    default:
        log.Printf("policy: unknown class type %q, using REGULAR modifier", ct)
        return 1.0
    }
}

// PolicyResult is the full cancellation quote.  It is computed fresh on
// every call and never cached: correctness depends on the current time.
type PolicyResult struct {
    CanCancel         bool                 `json:"can_cancel"`
    Band              TimeBand             `json:"time_band,omitempty"`
    MembershipTier    model.MembershipTier `json:"membership_tier"`
    ClassType         model.ClassType      `json:"class_type"`
    GraceMinutes      int                  `json:"grace_minutes"`
    BaseRate          float64              `json:"base_rate"`
    ClassTypeModifier float64              `json:"class_type_modifier"`
    RefundRate        float64              `json:"refund_rate"`
    RefundAmountCents uint32               `json:"refund_amount_cents"`
    TimeToClassHours  float64              `json:"time_to_class_hours"`
    Message           string               `json:"message"`
}

// EvaluatePolicy computes the refund rate and amount for cancelling the
// given reservation at the given moment.  Pure function: safe to call
// repeatedly for quoting.
//
// The refund rate is baseRate(band) × classTypeModifier, where the band is
// chosen on time-to-class plus the tier's grace minutes:
//
//	EARLY    adjusted ≥ 48h  base 1.0
//	STANDARD adjusted ≥ 24h  base 0.8
//	LATE     otherwise       base = tier's late refund rate
//
// membership may be nil, which means REGULAR with no grace.
func EvaluatePolicy(res *model.Reservation, sched *model.ClassSchedule, membership *model.UserMembership, now time.Time) *PolicyResult {
    tier := model.TierRegular
    if membership != nil && membership.Tier != "" {
        tier = membership.Tier
    }
    tp := tierPolicyFor(tier)
    modifier := classTypeModifier(sched.ClassType)

    timeToClass := sched.StartsAt.Sub(now)
    if timeToClass <= 0 {
        return &PolicyResult{
            CanCancel:         false,
            MembershipTier:    tier,
            ClassType:         sched.ClassType,
            GraceMinutes:      tp.graceMinutes,
            ClassTypeModifier: modifier,
            TimeToClassHours:  timeToClass.Hours(),
            Message:           "this class has already started and can no longer be cancelled",
        }
    }

    adjusted := timeToClass + time.Duration(tp.graceMinutes)*time.Minute

    var band TimeBand
    var baseRate float64
    switch {
    case adjusted >= 48*time.Hour:
        band, baseRate = BandEarly, 1.0
    case adjusted >= 24*time.Hour:
        band, baseRate = BandStandard, 0.8
    default:
        band, baseRate = BandLate, tp.lateRefundRate
    }

    rate := baseRate * modifier
    amount := uint32(math.Round(float64(res.TotalAmountCents) * rate))

    return &PolicyResult{
        CanCancel:         true,
        Band:              band,
        MembershipTier:    tier,
        ClassType:         sched.ClassType,
        GraceMinutes:      tp.graceMinutes,
        BaseRate:          baseRate,
        ClassTypeModifier: modifier,
        RefundRate:        rate,
        RefundAmountCents: amount,
        TimeToClassHours:  timeToClass.Hours(),
        Message: fmt.Sprintf("cancelling now refunds %.0f%% (%d cents)",
            rate*100, amount),
    }
}

// CheckCancellationPolicy is the read-only quote entry point operating on
// already-loaded records.
func (s *Service) CheckCancellationPolicy(res *model.Reservation, sched *model.ClassSchedule, membership *model.UserMembership) *PolicyResult {
    return EvaluatePolicy(res, sched, membership, s.now())
}

// QuoteCancellation loads the user's reservation with its schedule and
// membership, then evaluates the policy.  Ownership is enforced by the
// scoped reservation read.
func (s *Service) QuoteCancellation(ctx context.Context, reservationID, userID uint64) (*PolicyResult, error) {
    res, err := s.reservations.GetForUser(ctx, reservationID, userID)
    if err != nil {
        return nil, err
    }
    sched, err := s.schedules.Get(ctx, res.ScheduleID)
    if err != nil {
        return nil, err
    }
    membership, err := s.memberships.Get(ctx, userID)
    if err != nil {
        return nil, err
    }
    return EvaluatePolicy(res, sched, membership, s.now()), nil
}
