package api

import (
	"net/http"
	"time"

	"rentalhub/internal/domain/booking"
	resdto "rentalhub/internal/handler/dto/response"
	"rentalhub/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the back-office surface: lifecycle management over any
// booking plus aggregate reporting.
type AdminHandler struct {
	bookingHandler *BookingHandler
	bookingUseCase usecase.BookingUseCase
	reportUseCase  usecase.ReportUseCase
}

func NewAdminHandler(bookingHandler *BookingHandler, bookingUseCase usecase.BookingUseCase, reportUseCase usecase.ReportUseCase) *AdminHandler {
	return &AdminHandler{
		bookingHandler: bookingHandler,
		bookingUseCase: bookingUseCase,
		reportUseCase:  reportUseCase,
	}
}

// @Summary List all bookings
// @Description List every booking, optionally filtered by status (admin only)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 400 {object} map[string]string
// @Router /admin/bookings [get]
func (h *AdminHandler) ListBookings(c *gin.Context) {
	var status *booking.Status
	if raw := c.Query("status"); raw != "" {
		s, err := booking.NewStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking status",
			})
			return
		}
		status = &s
	}

	bookings, err := h.bookingUseCase.ListAllBookings(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingListRMs(bookings))
}

// @Summary Confirm booking
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 422 {object} map[string]string
// @Router /admin/bookings/{id}/confirm [post]
func (h *AdminHandler) Confirm(c *gin.Context) {
	h.bookingHandler.applyAction(c, booking.ActionConfirm)
}

// @Summary Activate booking
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 422 {object} map[string]string
// @Router /admin/bookings/{id}/activate [post]
func (h *AdminHandler) Activate(c *gin.Context) {
	h.bookingHandler.applyAction(c, booking.ActionActivate)
}

// @Summary Complete booking
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 422 {object} map[string]string
// @Router /admin/bookings/{id}/complete [post]
func (h *AdminHandler) Complete(c *gin.Context) {
	h.bookingHandler.applyAction(c, booking.ActionComplete)
}

// @Summary Cancel any booking
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 422 {object} map[string]string
// @Router /admin/bookings/{id}/cancel [post]
func (h *AdminHandler) Cancel(c *gin.Context) {
	h.bookingHandler.applyAction(c, booking.ActionCancel)
}

// @Summary Booking summary report
// @Description Aggregate booking counts and revenue over a creation-date window
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param from query string false "Window start (RFC3339, default 30 days ago)"
// @Param to query string false "Window end (RFC3339, default now)"
// @Success 200 {object} resdto.ReportSummaryResponse
// @Failure 400 {object} map[string]string
// @Router /admin/reports/summary [get]
func (h *AdminHandler) ReportSummary(c *gin.Context) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid from date, expected RFC3339",
			})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid to date, expected RFC3339",
			})
			return
		}
		to = parsed
	}
	if !from.Before(to) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Window start must be before window end",
		})
		return
	}

	summary, err := h.reportUseCase.Summary(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReportSummaryRM(summary))
}
