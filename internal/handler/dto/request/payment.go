package request

import (
	"github.com/shopspring/decimal"
)

type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Method string          `json:"method" binding:"required,oneof=card cash transfer"`
}
