package readmodel

import (
	"github.com/shopspring/decimal"
)

type StatusCountRM struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// ReportSummaryRM is computed from live booking data at query time.
type ReportSummaryRM struct {
	TotalBookings  int64           `json:"total_bookings"`
	StatusCounts   []StatusCountRM `json:"status_counts"`
	BookedRevenue  decimal.Decimal `json:"booked_revenue"`
	PaidRevenue    decimal.Decimal `json:"paid_revenue"`
	ActiveProducts int64           `json:"active_products"`
}
