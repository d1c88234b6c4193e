package usecase

import (
	"context"
	"errors"

	"rentalhub/internal/domain/booking"
	"rentalhub/internal/infra"
	"rentalhub/internal/pkg/errs"
	"rentalhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPaymentAmount = errors.New("payment amount must be positive")
	ErrBookingNotPayable    = errors.New("cancelled bookings cannot accept payments")
)

type PaymentRepository interface {
	// Insert records the payment and returns the total paid so far,
	// computed in the same transaction.
	Insert(ctx context.Context, bookingID uuid.UUID, amount decimal.Decimal, method string) (decimal.Decimal, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*readmodel.PaymentRM, error)
}

type RecordPaymentParams struct {
	BookingID uuid.UUID
	Amount    decimal.Decimal
	Method    string
}

type PaymentUseCase interface {
	RecordPayment(ctx context.Context, params RecordPaymentParams, actorID uuid.UUID, isAdmin bool) (*readmodel.BookingRM, error)
	ListPayments(ctx context.Context, bookingID, actorID uuid.UUID, isAdmin bool) ([]*readmodel.PaymentRM, error)
}

type paymentUseCaseImpl struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
}

func NewPaymentUseCase(paymentRepo PaymentRepository, bookingRepo BookingRepository) PaymentUseCase {
	return &paymentUseCaseImpl{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
	}
}

// RecordPayment appends a payment to a booking, for the owner or an admin.
// Payment state moves independently of the booking status; the only
// restriction is that a cancelled booking takes no money.
func (u *paymentUseCaseImpl) RecordPayment(ctx context.Context, params RecordPaymentParams, actorID uuid.UUID, isAdmin bool) (*readmodel.BookingRM, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidPaymentAmount
	}

	bookingEntity, err := u.bookingRepo.FindEntityByID(ctx, params.BookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !isAdmin && !bookingEntity.IsOwnedBy(actorID) {
		return nil, ErrForbidden
	}

	if bookingEntity.Status() == booking.StatusCancelled {
		return nil, ErrBookingNotPayable
	}

	if _, err := u.paymentRepo.Insert(ctx, params.BookingID, params.Amount, params.Method); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return u.bookingRepo.FindByID(ctx, params.BookingID)
}

func (u *paymentUseCaseImpl) ListPayments(ctx context.Context, bookingID, actorID uuid.UUID, isAdmin bool) ([]*readmodel.PaymentRM, error) {
	bookingEntity, err := u.bookingRepo.FindEntityByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !isAdmin && !bookingEntity.IsOwnedBy(actorID) {
		return nil, ErrForbidden
	}

	return u.paymentRepo.FindByBookingID(ctx, bookingID)
}
