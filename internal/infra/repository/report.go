package repository

import (
	"context"
	"time"

	"rentalhub/internal/infra"
	"rentalhub/internal/usecase/readmodel"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Summary aggregates bookings created in [from, to). Revenue excludes
// cancelled bookings; paid revenue counts actual payments.
func (r *ReportRepository) Summary(ctx context.Context, from, to time.Time) (*readmodel.ReportSummaryRM, error) {
	summary := &readmodel.ReportSummaryRM{}

	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM bookings
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY status
		ORDER BY status`, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count bookings by status", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc readmodel.StatusCountRM
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, infra.WrapRepoErr("failed to scan status count", err)
		}
		summary.StatusCounts = append(summary.StatusCounts, sc)
		summary.TotalBookings += sc.Count
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate status counts", err)
	}

	var bookedRaw, paidRaw string
	err = r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(b.total_price) FILTER (WHERE b.status <> 'cancelled'), 0)::text,
			COALESCE((
				SELECT SUM(p.amount)
				FROM payments p
				JOIN bookings pb ON pb.id = p.booking_id
				WHERE pb.created_at >= $1 AND pb.created_at < $2
			), 0)::text
		FROM bookings b
		WHERE b.created_at >= $1 AND b.created_at < $2`, from, to,
	).Scan(&bookedRaw, &paidRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate revenue", err)
	}
	if summary.BookedRevenue, err = parseDecimal(bookedRaw); err != nil {
		return nil, err
	}
	if summary.PaidRevenue, err = parseDecimal(paidRaw); err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_active`).Scan(&summary.ActiveProducts)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count active products", err)
	}

	return summary, nil
}
