package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/azamatk/fitness-class-reservation/internal/model"
)

// MembershipRepo reads the user classification consumed by the policy
// calculator.  Memberships are owned by an external membership system;
// this repository never writes them.
type MembershipRepo struct {
    db *sql.DB
}

// NewMembershipRepo returns a MembershipRepo bound to the given database.
func NewMembershipRepo(db *sql.DB) *MembershipRepo { return &MembershipRepo{db: db} }

// Get loads a user's tier and, when present, the active session credit.
// Returns (nil, nil) for users without a membership row; the booking
// engine treats them as REGULAR with no credit.
func (r *MembershipRepo) Get(ctx context.Context, userID uint64) (*model.UserMembership, error) {
    const q = `SELECT m.user_id, m.tier, c.remaining_sessions, c.expires_at
               FROM memberships m
               LEFT JOIN member_credits c ON c.user_id = m.user_id
               WHERE m.user_id = ?`
    var (
        m        model.UserMembership
        tier     string
        sessions sql.NullInt64
        expires  sql.NullTime
    )
    err := r.db.QueryRowContext(ctx, q, userID).Scan(&m.UserID, &tier, &sessions, &expires)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, nil
        }
        return nil, err
    }
    m.Tier = model.MembershipTier(tier)
    if sessions.Valid && expires.Valid {
        m.Credit = &model.SessionCredit{
            RemainingSessions: uint32(sessions.Int64),
            ExpiresAt:         expires.Time,
        }
    }
    return &m, nil
}
