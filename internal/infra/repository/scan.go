package repository

import (
	"time"

	"rentalhub/internal/domain/booking"
	"rentalhub/internal/infra"
	"rentalhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func parseDecimal(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, infra.WrapRepoErr("failed to parse numeric column", err)
	}
	return d, nil
}

func scanBookingRM(row pgx.Row) (*readmodel.BookingRM, error) {
	var (
		rm                     readmodel.BookingRM
		totalPriceRaw, paidRaw string
	)
	err := row.Scan(
		&rm.ID, &rm.ProductID, &rm.ProductName, &rm.UserID, &rm.UserEmail,
		&rm.StartDate, &rm.EndDate, &rm.Status, &totalPriceRaw, &paidRaw,
		&rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rm.TotalPrice, err = parseDecimal(totalPriceRaw); err != nil {
		return nil, err
	}
	if rm.PaidAmount, err = parseDecimal(paidRaw); err != nil {
		return nil, err
	}
	rm.IsPaid = rm.TotalPrice.IsPositive() && rm.PaidAmount.GreaterThanOrEqual(rm.TotalPrice)
	return &rm, nil
}

func scanBookingList(rows pgx.Rows) ([]*readmodel.BookingListRM, error) {
	var out []*readmodel.BookingListRM
	for rows.Next() {
		var (
			rm            readmodel.BookingListRM
			totalPriceRaw string
		)
		err := rows.Scan(
			&rm.ID, &rm.ProductID, &rm.ProductName,
			&rm.StartDate, &rm.EndDate, &rm.Status, &totalPriceRaw, &rm.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		if rm.TotalPrice, err = parseDecimal(totalPriceRaw); err != nil {
			return nil, err
		}
		out = append(out, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return out, nil
}

func rehydrateBooking(
	id, productID, userID uuid.UUID,
	startDate, endDate time.Time,
	statusRaw, totalPriceRaw string,
	createdAt, updatedAt time.Time,
) (*booking.Booking, error) {
	status, err := booking.NewStatus(statusRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking status is invalid", err)
	}
	totalPrice, err := parseDecimal(totalPriceRaw)
	if err != nil {
		return nil, err
	}
	period, err := booking.ReconstructDateRange(startDate, endDate)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking period is invalid", err)
	}
	return booking.ReconstructBooking(id, productID, userID, period, status, totalPrice, createdAt, updatedAt), nil
}
