package readmodel

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductRM struct {
	ID          uuid.UUID        `json:"id"`
	OwnerID     uuid.UUID        `json:"owner_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	BasePrice   *decimal.Decimal `json:"base_price,omitempty"`
	Rules       []PricingRuleRM  `json:"pricing_rules"`
	Seasons     []SeasonalRateRM `json:"seasonal_rates"`
	Discounts   []DiscountRM     `json:"discounts"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type ProductListRM struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	BasePrice *decimal.Decimal `json:"base_price,omitempty"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
}

type PricingRuleRM struct {
	Unit            string          `json:"unit"`
	Price           decimal.Decimal `json:"price"`
	MinimumDuration int             `json:"minimum_duration"`
}

type SeasonalRateRM struct {
	Name        string          `json:"name"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	PricePerDay decimal.Decimal `json:"price_per_day"`
}

type DiscountRM struct {
	Type      string          `json:"type"`
	Value     decimal.Decimal `json:"value"`
	ValidFrom *time.Time      `json:"valid_from,omitempty"`
	ValidTo   *time.Time      `json:"valid_to,omitempty"`
	MinDays   int             `json:"min_days"`
}
