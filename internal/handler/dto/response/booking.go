package response

import (
	"time"

	"rentalhub/internal/domain/booking"
	"rentalhub/internal/domain/user"
	"rentalhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type BookingResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	UserID      uuid.UUID       `json:"userId"`
	UserEmail   string          `json:"userEmail"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	IsPaid      bool            `json:"isPaid"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	// Actions the requesting actor may take next, for client action menus.
	AllowedActions []string `json:"allowedActions,omitempty"`
}

type BookingListResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type ActivityEntryResponse struct {
	ID         uuid.UUID `json:"id"`
	Action     string    `json:"action"`
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus"`
	ActorID    uuid.UUID `json:"actorId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	BookingID uuid.UUID       `json:"bookingId"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	CreatedAt time.Time       `json:"createdAt"`
}

func FromBookingRM(rm *readmodel.BookingRM) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

// FromBookingRMForActor adds the lifecycle actions the actor may take next.
func FromBookingRMForActor(rm *readmodel.BookingRM, role user.Role) *BookingResponse {
	resp := FromBookingRM(rm)
	if status, err := booking.NewStatus(rm.Status); err == nil {
		for _, a := range booking.AllowedActions(status, role) {
			resp.AllowedActions = append(resp.AllowedActions, a.String())
		}
	}
	return resp
}

func FromBookingListRMs(rms []*readmodel.BookingListRM) []*BookingListResponse {
	out := make([]*BookingListResponse, len(rms))
	for i, rm := range rms {
		var resp BookingListResponse
		_ = copier.Copy(&resp, rm)
		out[i] = &resp
	}
	return out
}

func FromActivityRMs(rms []*readmodel.ActivityEntryRM) []*ActivityEntryResponse {
	out := make([]*ActivityEntryResponse, len(rms))
	for i, rm := range rms {
		var resp ActivityEntryResponse
		_ = copier.Copy(&resp, rm)
		out[i] = &resp
	}
	return out
}

func FromPaymentRMs(rms []*readmodel.PaymentRM) []*PaymentResponse {
	out := make([]*PaymentResponse, len(rms))
	for i, rm := range rms {
		var resp PaymentResponse
		_ = copier.Copy(&resp, rm)
		out[i] = &resp
	}
	return out
}
