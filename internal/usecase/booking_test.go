//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentalhub/internal/domain/booking"
	"rentalhub/internal/domain/product"
	"rentalhub/internal/domain/user"
	"rentalhub/internal/infra"
	"rentalhub/internal/pkg/clock"
	"rentalhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestProduct(t *testing.T, active bool) *product.Product {
	t.Helper()
	base := decimal.NewFromInt(100)
	return product.ReconstructProduct(
		uuid.New(), uuid.New(),
		"Mountain Bike", "Hardtail, size M",
		&base,
		nil, nil, nil,
		active,
		baseTime, baseTime,
	)
}

func newBookingDeps(t *testing.T) (*fakeBookingRepo, *fakeProductRepo, *fakePublisher, *clock.FakeClock, usecase.BookingUseCase) {
	t.Helper()
	bookingRepo := newFakeBookingRepo()
	productRepo := newFakeProductRepo()
	publisher := &fakePublisher{}
	clk := clock.NewFakeClock(baseTime)
	uc := usecase.NewBookingUseCase(bookingRepo, productRepo, booking.NewFactory(clk), publisher, clk)
	return bookingRepo, productRepo, publisher, clk, uc
}

func seedBooking(t *testing.T, repo *fakeBookingRepo, userID uuid.UUID, status booking.Status, start time.Time) *booking.Booking {
	t.Helper()
	period, err := booking.NewDateRange(start, start.Add(72*time.Hour))
	require.NoError(t, err)
	b := booking.ReconstructBooking(
		uuid.New(), uuid.New(), userID,
		period, status, decimal.NewFromInt(300),
		baseTime, baseTime,
	)
	repo.put(b)
	return b
}

func TestBookingUseCase_CreateBooking(t *testing.T) {
	userID := uuid.New()
	start := baseTime.Add(24 * time.Hour)
	end := start.Add(72 * time.Hour)

	t.Run("creates pending booking with quoted price", func(t *testing.T) {
		bookingRepo, productRepo, _, _, uc := newBookingDeps(t)
		p := newTestProduct(t, true)
		require.NoError(t, productRepo.Create(context.Background(), p))

		rm, err := uc.CreateBooking(context.Background(), usecase.CreateBookingParams{
			ProductID: p.ID(),
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
		})
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending.String(), rm.Status)
		assert.True(t, rm.TotalPrice.Equal(decimal.NewFromInt(300)))

		entries := bookingRepo.activity[rm.ID]
		require.Len(t, entries, 1)
		assert.Equal(t, "create", entries[0].Action)
		assert.Equal(t, userID, entries[0].ActorID)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, _, _, _, uc := newBookingDeps(t)
		_, err := uc.CreateBooking(context.Background(), usecase.CreateBookingParams{
			ProductID: uuid.New(),
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
		})
		assert.ErrorIs(t, err, usecase.ErrProductNotFound)
	})

	t.Run("inactive product", func(t *testing.T) {
		_, productRepo, _, _, uc := newBookingDeps(t)
		p := newTestProduct(t, false)
		require.NoError(t, productRepo.Create(context.Background(), p))

		_, err := uc.CreateBooking(context.Background(), usecase.CreateBookingParams{
			ProductID: p.ID(),
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
		})
		assert.ErrorIs(t, err, product.ErrProductInactive)
	})

	t.Run("overlap surfaces as conflict", func(t *testing.T) {
		bookingRepo, productRepo, _, _, uc := newBookingDeps(t)
		p := newTestProduct(t, true)
		require.NoError(t, productRepo.Create(context.Background(), p))
		bookingRepo.createErr = infra.WrapRepoErr("overlapping booking", nil, infra.KindConflict)

		_, err := uc.CreateBooking(context.Background(), usecase.CreateBookingParams{
			ProductID: p.ID(),
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
		})
		assert.ErrorIs(t, err, usecase.ErrBookingConflict)
	})

	t.Run("start date in the past", func(t *testing.T) {
		_, productRepo, _, _, uc := newBookingDeps(t)
		p := newTestProduct(t, true)
		require.NoError(t, productRepo.Create(context.Background(), p))

		_, err := uc.CreateBooking(context.Background(), usecase.CreateBookingParams{
			ProductID: p.ID(),
			UserID:    userID,
			StartDate: baseTime.Add(-24 * time.Hour),
			EndDate:   end,
		})
		assert.ErrorIs(t, err, booking.ErrStartInPast)
	})
}

func TestBookingUseCase_GetBooking(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	bookingRepo, _, _, _, uc := newBookingDeps(t)
	b := seedBooking(t, bookingRepo, ownerID, booking.StatusPending, baseTime.Add(24*time.Hour))

	t.Run("owner can read", func(t *testing.T) {
		rm, err := uc.GetBooking(context.Background(), b.ID(), ownerID, user.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, b.ID(), rm.ID)
	})

	t.Run("admin can read any booking", func(t *testing.T) {
		_, err := uc.GetBooking(context.Background(), b.ID(), otherID, user.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := uc.GetBooking(context.Background(), b.ID(), otherID, user.RoleCustomer)
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := uc.GetBooking(context.Background(), uuid.New(), ownerID, user.RoleCustomer)
		assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
	})
}

func TestBookingUseCase_ApplyAction(t *testing.T) {
	ownerID := uuid.New()
	adminID := uuid.New()
	futureStart := baseTime.Add(48 * time.Hour)

	t.Run("admin confirms pending booking and event is published", func(t *testing.T) {
		bookingRepo, _, publisher, _, uc := newBookingDeps(t)
		b := seedBooking(t, bookingRepo, ownerID, booking.StatusPending, futureStart)

		rm, err := uc.ApplyAction(context.Background(), b.ID(), booking.ActionConfirm, adminID, user.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed.String(), rm.Status)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, "confirm", publisher.events[0].Action)
		assert.Equal(t, booking.StatusPending.String(), publisher.events[0].FromStatus)
		assert.Equal(t, booking.StatusConfirmed.String(), publisher.events[0].ToStatus)
	})

	t.Run("customer cannot confirm", func(t *testing.T) {
		bookingRepo, _, _, _, uc := newBookingDeps(t)
		b := seedBooking(t, bookingRepo, ownerID, booking.StatusPending, futureStart)

		_, err := uc.ApplyAction(context.Background(), b.ID(), booking.ActionConfirm, ownerID, user.RoleCustomer)
		assert.ErrorIs(t, err, booking.ErrUnauthorized)
	})

	t.Run("customer cancels own pending booking", func(t *testing.T) {
		bookingRepo, _, _, _, uc := newBookingDeps(t)
		b := seedBooking(t, bookingRepo, ownerID, booking.StatusPending, futureStart)

		rm, err := uc.ApplyAction(context.Background(), b.ID(), booking.ActionCancel, ownerID, user.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled.String(), rm.Status)
	})

	t.Run("customer cancel of confirmed booking blocked once started", func(t *testing.T) {
		bookingRepo, _, _, clk, uc := newBookingDeps(t)
		b := seedBooking(t, bookingRepo, ownerID, booking.StatusConfirmed, futureStart)
		clk.Set(futureStart.Add(time.Hour))

		_, err := uc.ApplyAction(context.Background(), b.ID(), booking.ActionCancel, ownerID, user.RoleCustomer)
		assert.ErrorIs(t, err, booking.ErrTemporalGuard)
	})

	t.Run("stranger cannot act on another user's booking", func(t *testing.T) {
		bookingRepo, _, _, _, uc := newBookingDeps(t)
		b := seedBooking(t, bookingRepo, ownerID, booking.StatusPending, futureStart)

		_, err := uc.ApplyAction(context.Background(), b.ID(), booking.ActionCancel, uuid.New(), user.RoleCustomer)
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("lost guarded update surfaces as conflict", func(t *testing.T) {
		bookingRepo, _, _, _, uc := newBookingDeps(t)
		b := seedBooking(t, bookingRepo, ownerID, booking.StatusPending, futureStart)
		bookingRepo.views[b.ID()].Status = booking.StatusCancelled.String()

		_, err := uc.ApplyAction(context.Background(), b.ID(), booking.ActionConfirm, adminID, user.RoleAdmin)
		assert.ErrorIs(t, err, usecase.ErrBookingConflict)
	})

	t.Run("publish failure does not fail the action", func(t *testing.T) {
		bookingRepo, _, publisher, _, uc := newBookingDeps(t)
		publisher.err = errors.New("broker down")
		b := seedBooking(t, bookingRepo, ownerID, booking.StatusPending, futureStart)

		rm, err := uc.ApplyAction(context.Background(), b.ID(), booking.ActionConfirm, adminID, user.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed.String(), rm.Status)
	})
}

func TestBookingUseCase_GetBookingActivity(t *testing.T) {
	ownerID := uuid.New()
	bookingRepo, _, _, _, uc := newBookingDeps(t)
	b := seedBooking(t, bookingRepo, ownerID, booking.StatusPending, baseTime.Add(48*time.Hour))

	_, err := uc.ApplyAction(context.Background(), b.ID(), booking.ActionCancel, ownerID, user.RoleCustomer)
	require.NoError(t, err)

	entries, err := uc.GetBookingActivity(context.Background(), b.ID(), ownerID, user.RoleCustomer)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cancel", entries[0].Action)
	assert.Equal(t, booking.StatusCancelled.String(), entries[0].ToStatus)

	_, err = uc.GetBookingActivity(context.Background(), b.ID(), uuid.New(), user.RoleCustomer)
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}
