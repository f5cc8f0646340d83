package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/azamatk/fitness-class-reservation/internal/model"
)

// ScheduleRepo provides reads and guarded mutations of class schedules.
// Every load joins the owning class row so callers get the class name,
// type and per-student price alongside the seat counts.  All timestamps
// are stored and compared in UTC.
type ScheduleRepo struct {
    db *sql.DB
}

// NewScheduleRepo returns a ScheduleRepo bound to the given database.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

// DB exposes the underlying handle so collaborating repositories can
// start transactions spanning schedules and reservations.
func (r *ScheduleRepo) DB() *sql.DB { return r.db }

const scheduleColumns = `s.id, s.class_id, c.name, c.class_type, c.price_cents,
       s.starts_at, s.duration_min, s.capacity, s.remaining_seats,
       s.is_cancelled, s.cancellation_reason, s.created_at, s.updated_at`

// Get loads one schedule with its class details.  Returns
// ErrScheduleNotFound when the id does not exist.
func (r *ScheduleRepo) Get(ctx context.Context, id uint64) (*model.ClassSchedule, error) {
    const q = `SELECT ` + scheduleColumns + `
               FROM class_schedules s
               JOIN classes c ON c.id = s.class_id
               WHERE s.id = ?`
    row := r.db.QueryRowContext(ctx, q, id)
    sched, err := scanSchedule(row)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrScheduleNotFound
        }
        return nil, err
    }
    return sched, nil
}

// ListRange loads all schedules starting within [from, to], ordered by
// start time.  classID 0 disables the class filter.
func (r *ScheduleRepo) ListRange(ctx context.Context, from, to time.Time, classID uint64) ([]model.ClassSchedule, error) {
    q := `SELECT ` + scheduleColumns + `
          FROM class_schedules s
          JOIN classes c ON c.id = s.class_id
          WHERE s.starts_at >= ? AND s.starts_at <= ?`
    args := []interface{}{from.UTC(), to.UTC()}
    if classID != 0 {
        q += ` AND s.class_id = ?`
        args = append(args, classID)
    }
    q += ` ORDER BY s.starts_at`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.ClassSchedule, 0)
    for rows.Next() {
        sched, err := scanSchedule(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *sched)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// RestoreSeats increments remaining_seats by count as the inverse of a
// hold.  The single-statement update caps the counter at capacity so a
// double restore can never push remaining_seats past the room size.
func (r *ScheduleRepo) RestoreSeats(ctx context.Context, id uint64, count uint32) error {
    const q = `UPDATE class_schedules
               SET remaining_seats = LEAST(capacity, remaining_seats + ?)
               WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, count, id)
    return err
}

// MarkCancelled sets is_cancelled exactly once and stores the reason.
// Returns ErrScheduleCancelled when the flag was already set and
// ErrScheduleNotFound when the schedule does not exist.
func (r *ScheduleRepo) MarkCancelled(ctx context.Context, id uint64, reason string) error {
    const q = `UPDATE class_schedules
               SET is_cancelled = 1, cancellation_reason = ?
               WHERE id = ? AND is_cancelled = 0`
    result, err := r.db.ExecContext(ctx, q, reason, id)
    if err != nil {
        return err
    }
    affected, err := result.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        // Distinguish "already cancelled" from "no such schedule".
        var exists bool
        if err := r.db.QueryRowContext(ctx,
            `SELECT EXISTS(SELECT 1 FROM class_schedules WHERE id = ?)`, id,
        ).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ErrScheduleNotFound
        }
        return ErrScheduleCancelled
    }
    return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
    Scan(dest ...interface{}) error
}

// scanSchedule reads one schedule row in scheduleColumns order.
func scanSchedule(row rowScanner) (*model.ClassSchedule, error) {
    var s model.ClassSchedule
    var classType string
    var reason sql.NullString
    if err := row.Scan(
        &s.ID, &s.ClassID, &s.ClassName, &classType, &s.PriceCents,
        &s.StartsAt, &s.DurationMin, &s.Capacity, &s.RemainingSeats,
        &s.IsCancelled, &reason, &s.CreatedAt, &s.UpdatedAt,
    ); err != nil {
        return nil, err
    }
    s.ClassType = model.ClassType(classType)
    if reason.Valid {
        v := reason.String
        s.CancellationReason = &v
    }
    return &s, nil
}
