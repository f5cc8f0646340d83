package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/azamatk/fitness-class-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  The
// availability-critical path is CreatePending, which combines the guarded
// seat decrement with the reservation insert in one transaction so that
// concurrent holds can never oversell a schedule.  All timestamps are
// stored in UTC.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, user_id, schedule_id, student_count, total_amount_cents,
       payment_method, payment_ref, status, expires_at, created_at, updated_at`

// CreatePending writes a PENDING hold.  Within a single transaction it
// first lazily expires overdue pending holds on the schedule (restoring
// their seats), then performs the conditional decrement
//
//	UPDATE class_schedules SET remaining_seats = remaining_seats - n
//	WHERE id = ? AND is_cancelled = 0 AND remaining_seats >= n
//
// and treats zero rows affected as ErrNotEnoughSeats, then inserts the
// reservation row.  On success the generated ID and timestamps are
// populated on res.
func (r *ReservationRepo) CreatePending(ctx context.Context, res *model.Reservation) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if _, err := expireOverdueTx(ctx, tx, res.ScheduleID); err != nil {
        return err
    }

    const dec = `UPDATE class_schedules
                 SET remaining_seats = remaining_seats - ?
                 WHERE id = ? AND is_cancelled = 0 AND remaining_seats >= ?`
    result, err := tx.ExecContext(ctx, dec, res.StudentCount, res.ScheduleID, res.StudentCount)
    if err != nil {
        return err
    }
    affected, err := result.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return ErrNotEnoughSeats
    }

    const ins = `INSERT INTO reservations
                 (user_id, schedule_id, student_count, total_amount_cents, payment_method, status, expires_at)
                 VALUES (?, ?, ?, ?, ?, ?, ?)`
    var expires interface{}
    if res.ExpiresAt != nil {
        expires = res.ExpiresAt.UTC()
    }
    insResult, err := tx.ExecContext(ctx, ins,
        res.UserID, res.ScheduleID, res.StudentCount, res.TotalAmountCents,
        res.PaymentMethod, string(res.Status), expires,
    )
    if err != nil {
        return err
    }
    id, err := insResult.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)

    // Query back the full row to populate timestamps and defaults.
    const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
    loaded, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
    if err != nil {
        return err
    }
    *res = *loaded

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// Get loads a reservation without ownership scoping.  Admin paths only.
func (r *ReservationRepo) Get(ctx context.Context, id uint64) (*model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
    return scanReservation(r.db.QueryRowContext(ctx, q, id))
}

// GetForUser loads a reservation only when it belongs to userID.  The
// row is fetched unscoped first so a reservation owned by someone else
// surfaces as ErrForbidden rather than a 404, matching how handlers
// distinguish the two.
func (r *ReservationRepo) GetForUser(ctx context.Context, id, userID uint64) (*model.Reservation, error) {
    res, err := r.Get(ctx, id)
    if err != nil {
        return nil, err
    }
    if res.UserID != userID {
        return nil, ErrForbidden
    }
    return res, nil
}

// FindConfirmed returns the user's confirmed reservation on a schedule,
// or (nil, nil) when none exists.
func (r *ReservationRepo) FindConfirmed(ctx context.Context, userID, scheduleID uint64) (*model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + `
               FROM reservations
               WHERE user_id = ? AND schedule_id = ? AND status = 'CONFIRMED'
               LIMIT 1`
    res, err := scanReservation(r.db.QueryRowContext(ctx, q, userID, scheduleID))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, nil
        }
        return nil, err
    }
    return res, nil
}

// SetStatus updates a reservation's lifecycle state.
func (r *ReservationRepo) SetStatus(ctx context.Context, id uint64, status model.ReservationStatus) error {
    const q = `UPDATE reservations SET status = ? WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, string(status), id)
    return err
}

// ListBySchedule returns all reservations on a schedule with the given
// status, newest first.
func (r *ReservationRepo) ListBySchedule(ctx context.Context, scheduleID uint64, status model.ReservationStatus) ([]model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + `
               FROM reservations
               WHERE schedule_id = ? AND status = ?
               ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, scheduleID, string(status))
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Reservation, 0)
    for rows.Next() {
        res, err := scanReservation(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *res)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ExpireOverdue transitions every PENDING reservation past its expiry to
// EXPIRED and restores its seats, in one transaction.  Returns how many
// reservations were expired.
func (r *ReservationRepo) ExpireOverdue(ctx context.Context) (int, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    n, err := expireOverdueTx(ctx, tx, 0)
    if err != nil {
        return 0, err
    }
    if err := tx.Commit(); err != nil {
        return 0, err
    }
    committed = true
    return n, nil
}

// expireOverdueTx performs the expiry sweep within an existing
// transaction.  scheduleID 0 sweeps all schedules; a non-zero id limits
// the sweep to that schedule, which is how CreatePending reclaims seats
// lazily before its own decrement.
func expireOverdueTx(ctx context.Context, tx *sql.Tx, scheduleID uint64) (int, error) {
    q := `SELECT id, schedule_id, student_count
          FROM reservations
          WHERE status = 'PENDING' AND expires_at IS NOT NULL AND expires_at <= UTC_TIMESTAMP()`
    args := []interface{}{}
    if scheduleID != 0 {
        q += ` AND schedule_id = ?`
        args = append(args, scheduleID)
    }
    q += ` FOR UPDATE`
    rows, err := tx.QueryContext(ctx, q, args...)
    if err != nil {
        return 0, err
    }
    type overdue struct {
        id           uint64
        scheduleID   uint64
        studentCount uint32
    }
    var expired []overdue
    for rows.Next() {
        var o overdue
        if scanErr := rows.Scan(&o.id, &o.scheduleID, &o.studentCount); scanErr != nil {
            rows.Close()
            return 0, scanErr
        }
        expired = append(expired, o)
    }
    if err := rows.Close(); err != nil {
        return 0, err
    }
    if len(expired) == 0 {
        return 0, nil
    }

    // Restore seats per schedule before flipping statuses.
    restore := make(map[uint64]uint32)
    for _, o := range expired {
        restore[o.scheduleID] += o.studentCount
    }
    for sid, count := range restore {
        if _, err := tx.ExecContext(ctx,
            `UPDATE class_schedules SET remaining_seats = LEAST(capacity, remaining_seats + ?) WHERE id = ?`,
            count, sid,
        ); err != nil {
            return 0, err
        }
    }

    placeholders := make([]string, 0, len(expired))
    ids := make([]interface{}, 0, len(expired))
    for _, o := range expired {
        placeholders = append(placeholders, "?")
        ids = append(ids, o.id)
    }
    if _, err := tx.ExecContext(ctx,
        `UPDATE reservations SET status = 'EXPIRED' WHERE id IN (`+strings.Join(placeholders, ",")+`)`,
        ids...,
    ); err != nil {
        return 0, err
    }
    return len(expired), nil
}

// scanReservation reads one reservation row in reservationColumns order.
func scanReservation(row rowScanner) (*model.Reservation, error) {
    var res model.Reservation
    var status string
    var paymentRef sql.NullString
    var expiresAt sql.NullTime
    if err := row.Scan(
        &res.ID, &res.UserID, &res.ScheduleID, &res.StudentCount, &res.TotalAmountCents,
        &res.PaymentMethod, &paymentRef, &status, &expiresAt, &res.CreatedAt, &res.UpdatedAt,
    ); err != nil {
        return nil, err
    }
    res.Status = model.ReservationStatus(status)
    if paymentRef.Valid {
        v := paymentRef.String
        res.PaymentRef = &v
    }
    if expiresAt.Valid {
        t := expiresAt.Time
        res.ExpiresAt = &t
    }
    return &res, nil
}
