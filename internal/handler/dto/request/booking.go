package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}
