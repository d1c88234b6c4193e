package api

import (
	"errors"
	"net/http"

	"rentalhub/internal/domain/booking"
	"rentalhub/internal/domain/product"
	"rentalhub/internal/domain/user"
	reqdto "rentalhub/internal/handler/dto/request"
	resdto "rentalhub/internal/handler/dto/response"
	"rentalhub/internal/handler/middleware"
	"rentalhub/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
	paymentUseCase usecase.PaymentUseCase
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase, paymentUseCase usecase.PaymentUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
		paymentUseCase: paymentUseCase,
	}
}

// @Summary Create booking
// @Description Book a product for a rental period. The booking starts pending.
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	a, ok := h.requireActor(c)
	if !ok {
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	rm, err := h.bookingUseCase.CreateBooking(c.Request.Context(), usecase.CreateBookingParams{
		ProductID: req.ProductID,
		UserID:    a.id,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.respondCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingRMForActor(rm, a.role))
}

// @Summary List own bookings
// @Description List bookings of the authenticated user, newest first
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.BookingListResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	bookings, err := h.bookingUseCase.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingListRMs(bookings))
}

// @Summary Get booking
// @Description Get booking details. Customers can only see their own bookings.
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	rm, err := h.bookingUseCase.GetBooking(c.Request.Context(), id, actor.id, actor.role)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingRMForActor(rm, actor.role))
}

// @Summary Get booking activity
// @Description List the booking's lifecycle audit trail
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {array} resdto.ActivityEntryResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/activity [get]
func (h *BookingHandler) Activity(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	entries, err := h.bookingUseCase.GetBookingActivity(c.Request.Context(), id, actor.id, actor.role)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromActivityRMs(entries))
}

// @Summary Cancel booking
// @Description Cancel an own booking. Confirmed bookings can only be cancelled before the rental starts.
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.applyAction(c, booking.ActionCancel)
}

// @Summary Record payment
// @Description Record a payment against an own booking
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.RecordPaymentRequest true "Payment"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/payments [post]
func (h *BookingHandler) RecordPayment(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req reqdto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	rm, err := h.paymentUseCase.RecordPayment(c.Request.Context(), usecase.RecordPaymentParams{
		BookingID: id,
		Amount:    req.Amount,
		Method:    req.Method,
	}, actor.id, actor.role == user.RoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidPaymentAmount), errors.Is(err, usecase.ErrBookingNotPayable):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			h.respondLookupError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingRMForActor(rm, actor.role))
}

// @Summary List payments
// @Description List payments recorded against a booking
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {array} resdto.PaymentResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/payments [get]
func (h *BookingHandler) ListPayments(c *gin.Context) {
	actor, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	payments, err := h.paymentUseCase.ListPayments(c.Request.Context(), id, actor.id, actor.role == user.RoleAdmin)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentRMs(payments))
}

type actor struct {
	id   uuid.UUID
	role user.Role
}

func (h *BookingHandler) applyAction(c *gin.Context, action booking.Action) {
	a, ok := h.requireActor(c)
	if !ok {
		return
	}
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	rm, err := h.bookingUseCase.ApplyAction(c.Request.Context(), id, action, a.id, a.role)
	if err != nil {
		h.respondActionError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingRMForActor(rm, a.role))
}

func (h *BookingHandler) requireActor(c *gin.Context) (actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return actor{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return actor{}, false
	}
	return actor{id: userID, role: role}, true
}

func (h *BookingHandler) bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID",
		})
		return uuid.Nil, false
	}
	return id, true
}

func (h *BookingHandler) respondCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, usecase.ErrBookingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking dates conflict with an existing booking",
		})
	case errors.Is(err, product.ErrProductInactive),
		errors.Is(err, booking.ErrInvalidDateRange),
		errors.Is(err, booking.ErrRangeTooLong),
		errors.Is(err, booking.ErrStartInPast):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func (h *BookingHandler) respondLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not allowed to access this booking",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func (h *BookingHandler) respondActionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, usecase.ErrForbidden), errors.Is(err, booking.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not allowed to perform this action",
		})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Action not allowed from the current status",
		})
	case errors.Is(err, booking.ErrTemporalGuard):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Rental period has already started",
		})
	case errors.Is(err, usecase.ErrBookingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking status changed concurrently, please retry",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
