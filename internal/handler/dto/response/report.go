package response

import (
	"rentalhub/internal/usecase/readmodel"

	"github.com/shopspring/decimal"
)

type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ReportSummaryResponse struct {
	TotalBookings  int64                 `json:"totalBookings"`
	StatusCounts   []StatusCountResponse `json:"statusCounts"`
	BookedRevenue  decimal.Decimal       `json:"bookedRevenue"`
	PaidRevenue    decimal.Decimal       `json:"paidRevenue"`
	ActiveProducts int64                 `json:"activeProducts"`
}

func FromReportSummaryRM(rm *readmodel.ReportSummaryRM) *ReportSummaryResponse {
	resp := &ReportSummaryResponse{
		TotalBookings:  rm.TotalBookings,
		BookedRevenue:  rm.BookedRevenue,
		PaidRevenue:    rm.PaidRevenue,
		ActiveProducts: rm.ActiveProducts,
	}
	for _, sc := range rm.StatusCounts {
		resp.StatusCounts = append(resp.StatusCounts, StatusCountResponse(sc))
	}
	return resp
}
