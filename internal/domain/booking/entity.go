package booking

import (
	"time"

	"rentalhub/internal/domain/product"
	"rentalhub/internal/domain/user"
	"rentalhub/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking is a time-boxed rental of a product. The total price is fixed at
// creation; only the status moves afterwards, and only through Transition.
type Booking struct {
	id         uuid.UUID
	productID  uuid.UUID
	userID     uuid.UUID
	period     DateRange
	status     Status
	totalPrice decimal.Decimal
	createdAt  time.Time
	updatedAt  time.Time
}

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clk clock.Clock) *Factory {
	return &Factory{Clock: clk}
}

// CreateBooking quotes the product for the period and returns a new pending
// booking. The quote may legitimately be zero when the product carries no
// pricing data; callers decide whether to treat that as misconfiguration.
func (f *Factory) CreateBooking(p *product.Product, userID uuid.UUID, period DateRange) (*Booking, error) {
	if !p.IsActive() {
		return nil, product.ErrProductInactive
	}
	if !period.StartsAfter(f.Clock.Now()) {
		return nil, ErrStartInPast
	}

	total := product.Quote(p, period.Start(), period.End())

	return &Booking{
		id:         uuid.New(),
		productID:  p.ID(),
		userID:     userID,
		period:     period,
		status:     StatusPending,
		totalPrice: total,
	}, nil
}

func ReconstructBooking(
	id, productID, userID uuid.UUID,
	period DateRange,
	status Status,
	totalPrice decimal.Decimal,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		productID:  productID,
		userID:     userID,
		period:     period,
		status:     status,
		totalPrice: totalPrice,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Apply runs the transition policy against this booking and mutates the
// status on success.
func (b *Booking) Apply(action Action, role user.Role, now time.Time) error {
	next, err := Transition(b.status, action, role, b.period.Start(), now)
	if err != nil {
		return err
	}
	b.status = next
	return nil
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) ProductID() uuid.UUID        { return b.productID }
func (b *Booking) UserID() uuid.UUID           { return b.userID }
func (b *Booking) Period() DateRange           { return b.period }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) TotalPrice() decimal.Decimal { return b.totalPrice }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }
