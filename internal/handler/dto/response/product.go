package response

import (
	"time"

	"rentalhub/internal/usecase"
	"rentalhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID          uuid.UUID              `json:"id"`
	OwnerID     uuid.UUID              `json:"ownerId"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	BasePrice   *decimal.Decimal       `json:"basePrice,omitempty"`
	Rules       []PricingRuleResponse  `json:"pricingRules"`
	Seasons     []SeasonalRateResponse `json:"seasonalRates"`
	Discounts   []DiscountResponse     `json:"discounts"`
	IsActive    bool                   `json:"isActive"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

type ProductListResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	BasePrice *decimal.Decimal `json:"basePrice,omitempty"`
	IsActive  bool             `json:"isActive"`
	CreatedAt time.Time        `json:"createdAt"`
}

type PricingRuleResponse struct {
	Unit            string          `json:"unit"`
	Price           decimal.Decimal `json:"price"`
	MinimumDuration int             `json:"minimumDuration"`
}

type SeasonalRateResponse struct {
	Name        string          `json:"name"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	PricePerDay decimal.Decimal `json:"pricePerDay"`
}

type DiscountResponse struct {
	Type      string          `json:"type"`
	Value     decimal.Decimal `json:"value"`
	ValidFrom *time.Time      `json:"validFrom,omitempty"`
	ValidTo   *time.Time      `json:"validTo,omitempty"`
	MinDays   int             `json:"minDays"`
}

type QuoteResponse struct {
	Days  int             `json:"days"`
	Total decimal.Decimal `json:"total"`
}

func FromProductRM(rm *readmodel.ProductRM) *ProductResponse {
	var resp ProductResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromProductListRMs(rms []*readmodel.ProductListRM) []*ProductListResponse {
	out := make([]*ProductListResponse, len(rms))
	for i, rm := range rms {
		var resp ProductListResponse
		_ = copier.Copy(&resp, rm)
		out[i] = &resp
	}
	return out
}

func FromQuote(quote *usecase.PriceQuote) *QuoteResponse {
	return &QuoteResponse{Days: quote.Days, Total: quote.Total}
}
