//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rentalhub/internal/domain/booking"
	"rentalhub/internal/domain/product"
	"rentalhub/internal/domain/user"
	"rentalhub/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyProduct(t *testing.T, pricePerDay string) *product.Product {
	t.Helper()
	price, err := decimal.NewFromString(pricePerDay)
	require.NoError(t, err)
	p, err := product.NewProduct(uuid.New(), "Pressure washer", "", nil,
		[]product.PricingRule{{Unit: product.UnitDay, Price: price, MinimumDuration: 1}}, nil, nil)
	require.NoError(t, err)
	return p
}

func mustRange(t *testing.T, start, end time.Time) booking.DateRange {
	t.Helper()
	r, err := booking.NewDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestFactory_CreateBooking(t *testing.T) {
	clk := clock.NewFakeClock(now)
	factory := booking.NewFactory(clk)
	p := dailyProduct(t, "100")
	userID := uuid.New()

	t.Run("new booking is pending with the quoted price", func(t *testing.T) {
		period := mustRange(t, now.Add(24*time.Hour), now.Add(4*24*time.Hour))

		b, err := factory.CreateBooking(p, userID, period)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, p.ID(), b.ProductID())
		assert.True(t, b.IsOwnedBy(userID))
		assert.True(t, decimal.NewFromInt(300).Equal(b.TotalPrice()))
	})

	t.Run("start in the past is rejected", func(t *testing.T) {
		period := mustRange(t, now.Add(-24*time.Hour), now.Add(24*time.Hour))

		_, err := factory.CreateBooking(p, userID, period)
		assert.ErrorIs(t, err, booking.ErrStartInPast)
	})

	t.Run("inactive product is rejected", func(t *testing.T) {
		inactive := product.ReconstructProduct(uuid.New(), uuid.New(), "Retired", "", nil, nil, nil, nil,
			false, now, now)
		period := mustRange(t, now.Add(24*time.Hour), now.Add(48*time.Hour))

		_, err := factory.CreateBooking(inactive, userID, period)
		assert.ErrorIs(t, err, product.ErrProductInactive)
	})

	t.Run("quote is zero when the product has no pricing data", func(t *testing.T) {
		bare, err := product.NewProduct(uuid.New(), "Unpriced", "", nil, nil, nil, nil)
		require.NoError(t, err)
		period := mustRange(t, now.Add(24*time.Hour), now.Add(48*time.Hour))

		b, err := factory.CreateBooking(bare, userID, period)
		require.NoError(t, err)
		assert.True(t, b.TotalPrice().IsZero())
	})
}

func TestBooking_Apply(t *testing.T) {
	period := mustRange(t, now.Add(24*time.Hour), now.Add(48*time.Hour))
	b := booking.ReconstructBooking(uuid.New(), uuid.New(), uuid.New(), period,
		booking.StatusPending, decimal.NewFromInt(200), now, now)

	require.NoError(t, b.Apply(booking.ActionConfirm, user.RoleAdmin, now))
	assert.Equal(t, booking.StatusConfirmed, b.Status())

	err := b.Apply(booking.ActionConfirm, user.RoleAdmin, now)
	assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	assert.Equal(t, booking.StatusConfirmed, b.Status(), "failed apply must not change status")

	require.NoError(t, b.Apply(booking.ActionCancel, user.RoleCustomer, now))
	assert.Equal(t, booking.StatusCancelled, b.Status())
}

func TestNewDateRange(t *testing.T) {
	testCases := []struct {
		name  string
		start time.Time
		end   time.Time
		errIs error
	}{
		{"valid range", now, now.Add(3 * 24 * time.Hour), nil},
		{"zero-length range", now, now, booking.ErrInvalidDateRange},
		{"inverted range", now.Add(time.Hour), now, booking.ErrInvalidDateRange},
		{"maximum length allowed", now, now.Add(90 * 24 * time.Hour), nil},
		{"over maximum length", now, now.Add(91 * 24 * time.Hour), booking.ErrRangeTooLong},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := booking.NewDateRange(tc.start, tc.end)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.start, r.Start())
			assert.Equal(t, tc.end, r.End())
		})
	}
}

func TestDateRange_Overlaps(t *testing.T) {
	a := mustRange(t, now, now.Add(5*24*time.Hour))

	b := mustRange(t, now.Add(4*24*time.Hour), now.Add(8*24*time.Hour))
	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))

	// Back-to-back ranges do not overlap: checkout day is checkin day.
	c := mustRange(t, now.Add(5*24*time.Hour), now.Add(8*24*time.Hour))
	assert.False(t, a.Overlaps(c))
}
