//go:build unit

package response_test

import (
	"testing"
	"time"

	"rentalhub/internal/domain/user"
	"rentalhub/internal/handler/dto/response"
	"rentalhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingRM(status string) *readmodel.BookingRM {
	now := time.Now().UTC()
	return &readmodel.BookingRM{
		ID:          uuid.New(),
		ProductID:   uuid.New(),
		ProductName: "Canoe",
		UserID:      uuid.New(),
		UserEmail:   "alice@example.com",
		StartDate:   now.Add(24 * time.Hour),
		EndDate:     now.Add(96 * time.Hour),
		Status:      status,
		TotalPrice:  decimal.NewFromInt(300),
		PaidAmount:  decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestFromBookingRMForActor(t *testing.T) {
	t.Run("admin sees confirm and cancel on a pending booking", func(t *testing.T) {
		rm := newBookingRM("pending")
		resp := response.FromBookingRMForActor(rm, user.RoleAdmin)

		require.NotNil(t, resp)
		assert.Equal(t, rm.ID, resp.ID)
		assert.Equal(t, rm.TotalPrice, resp.TotalPrice)
		assert.ElementsMatch(t, []string{"confirm", "cancel"}, resp.AllowedActions)
	})

	t.Run("customer can only cancel a pending booking", func(t *testing.T) {
		resp := response.FromBookingRMForActor(newBookingRM("pending"), user.RoleCustomer)
		assert.Equal(t, []string{"cancel"}, resp.AllowedActions)
	})

	t.Run("terminal statuses offer no actions", func(t *testing.T) {
		resp := response.FromBookingRMForActor(newBookingRM("completed"), user.RoleAdmin)
		assert.Empty(t, resp.AllowedActions)

		resp = response.FromBookingRMForActor(newBookingRM("cancelled"), user.RoleAdmin)
		assert.Empty(t, resp.AllowedActions)
	})
}
