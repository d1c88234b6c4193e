package repository

import (
	"context"
	"time"

	"rentalhub/internal/domain/booking"
	"rentalhub/internal/infra"
	"rentalhub/internal/usecase"
	"rentalhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingDetailQuery = `
SELECT b.id, b.product_id, p.name, b.user_id, u.email,
       b.start_date, b.end_date, b.status, b.total_price::text,
       COALESCE(SUM(pay.amount), 0)::text AS paid_amount,
       b.created_at, b.updated_at
FROM bookings b
JOIN products p ON p.id = b.product_id
JOIN users u ON u.id = b.user_id
LEFT JOIN payments pay ON pay.booking_id = b.id
WHERE b.id = $1
GROUP BY b.id, p.name, u.email
`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking, entry usecase.ActivityEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the product row so concurrent creations for the same product
	// serialize; the overlap check below then sees every committed booking.
	// The exclusion constraint on bookings backstops this at the DB level.
	var productID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, b.ProductID()).Scan(&productID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock product", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT id FROM bookings
		WHERE product_id = $1
		  AND status <> 'cancelled'
		  AND start_date < $3
		  AND end_date > $2`,
		b.ProductID(), b.Period().Start(), b.Period().End(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to check booking overlap", err)
	}
	overlapping := rows.Next()
	rows.Close()
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to check booking overlap", err)
	}
	if overlapping {
		return infra.WrapRepoErr("period overlaps an existing booking", nil, infra.KindConflict)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, product_id, user_id, start_date, end_date, status, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID(), b.ProductID(), b.UserID(),
		b.Period().Start(), b.Period().End(),
		b.Status().String(), b.TotalPrice(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}

	if err := insertActivity(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit booking creation", err)
	}
	return nil
}

func (r *BookingRepository) FindEntityByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, product_id, user_id, start_date, end_date, status, total_price::text, created_at, updated_at
		FROM bookings WHERE id = $1`, id)

	var (
		bookingID, productID, userID             uuid.UUID
		statusRaw, totalPriceRaw                 string
		startDate, endDate, createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&bookingID, &productID, &userID,
		&startDate, &endDate, &statusRaw, &totalPriceRaw,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	return rehydrateBooking(bookingID, productID, userID, startDate, endDate, statusRaw, totalPriceRaw, createdAt, updatedAt)
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.BookingRM, error) {
	row := r.pool.QueryRow(ctx, bookingDetailQuery, id)

	rm, err := scanBookingRM(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return rm, nil
}

func (r *BookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*readmodel.BookingListRM, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.product_id, p.name, b.start_date, b.end_date, b.status, b.total_price::text, b.created_at
		FROM bookings b
		JOIN products p ON p.id = b.product_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	return scanBookingList(rows)
}

func (r *BookingRepository) FindAll(ctx context.Context, status *booking.Status) ([]*readmodel.BookingListRM, error) {
	query := `
		SELECT b.id, b.product_id, p.name, b.start_date, b.end_date, b.status, b.total_price::text, b.created_at
		FROM bookings b
		JOIN products p ON p.id = b.product_id`
	args := []any{}
	if status != nil {
		query += ` WHERE b.status = $1`
		args = append(args, status.String())
	}
	query += ` ORDER BY b.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	return scanBookingList(rows)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status, entry usecase.ActivityEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Guarded update: a zero row count means the row moved out of the
	// expected status between read and write.
	tag, err := tx.Exec(ctx, `
		UPDATE bookings SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3`,
		to.String(), id, from.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
			return infra.WrapRepoErr("failed to check booking existence", err)
		}
		if !exists {
			return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
		}
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}

	if err := insertActivity(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit status update", err)
	}
	return nil
}

func (r *BookingRepository) FindActivity(ctx context.Context, bookingID uuid.UUID) ([]*readmodel.ActivityEntryRM, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, booking_id, action, COALESCE(from_status, ''), to_status, actor_id, created_at
		FROM booking_activity
		WHERE booking_id = $1
		ORDER BY created_at ASC`, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking activity", err)
	}
	defer rows.Close()

	var out []*readmodel.ActivityEntryRM
	for rows.Next() {
		var rm readmodel.ActivityEntryRM
		if err := rows.Scan(&rm.ID, &rm.BookingID, &rm.Action, &rm.FromStatus, &rm.ToStatus, &rm.ActorID, &rm.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan activity row", err)
		}
		out = append(out, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate activity rows", err)
	}
	return out, nil
}

func insertActivity(ctx context.Context, tx pgx.Tx, entry usecase.ActivityEntry) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO booking_activity (id, booking_id, action, from_status, to_status, actor_id)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
		uuid.New(), entry.BookingID, entry.Action, entry.FromStatus, entry.ToStatus, entry.ActorID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert activity entry", err)
	}
	return nil
}
