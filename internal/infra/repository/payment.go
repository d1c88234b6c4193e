package repository

import (
	"context"

	"rentalhub/internal/infra"
	"rentalhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) Insert(ctx context.Context, bookingID uuid.UUID, amount decimal.Decimal, method string) (decimal.Decimal, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return decimal.Decimal{}, infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO payments (id, booking_id, amount, method)
		VALUES ($1, $2, $3, $4)`,
		uuid.New(), bookingID, amount, method,
	)
	if err != nil {
		return decimal.Decimal{}, infra.WrapRepoErr("failed to insert payment", err)
	}

	var totalRaw string
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)::text FROM payments WHERE booking_id = $1`, bookingID,
	).Scan(&totalRaw)
	if err != nil {
		return decimal.Decimal{}, infra.WrapRepoErr("failed to sum payments", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Decimal{}, infra.WrapRepoErr("failed to commit payment", err)
	}

	return parseDecimal(totalRaw)
}

func (r *PaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*readmodel.PaymentRM, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, booking_id, amount::text, method, created_at
		FROM payments WHERE booking_id = $1 ORDER BY created_at ASC`, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments", err)
	}
	defer rows.Close()

	var out []*readmodel.PaymentRM
	for rows.Next() {
		var (
			rm        readmodel.PaymentRM
			amountRaw string
		)
		if err := rows.Scan(&rm.ID, &rm.BookingID, &amountRaw, &rm.Method, &rm.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment row", err)
		}
		if rm.Amount, err = parseDecimal(amountRaw); err != nil {
			return nil, err
		}
		out = append(out, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment rows", err)
	}
	return out, nil
}
