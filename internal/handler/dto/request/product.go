package request

import (
	"time"

	"rentalhub/internal/domain/product"

	"github.com/shopspring/decimal"
)

type PricingRuleRequest struct {
	Unit            string          `json:"unit" binding:"required,oneof=day week month"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	MinimumDuration int             `json:"minimum_duration"`
}

type SeasonalRateRequest struct {
	Name        string          `json:"name" binding:"required"`
	Start       time.Time       `json:"start" binding:"required"`
	End         time.Time       `json:"end" binding:"required"`
	PricePerDay decimal.Decimal `json:"price_per_day" binding:"required"`
}

type DiscountRequest struct {
	Type      string          `json:"type" binding:"required,oneof=percentage flat"`
	Value     decimal.Decimal `json:"value" binding:"required"`
	ValidFrom *time.Time      `json:"valid_from,omitempty"`
	ValidTo   *time.Time      `json:"valid_to,omitempty"`
	MinDays   int             `json:"min_days"`
}

type CreateProductRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	BasePrice   *decimal.Decimal      `json:"base_price,omitempty"`
	Rules       []PricingRuleRequest  `json:"pricing_rules,omitempty"`
	Seasons     []SeasonalRateRequest `json:"seasonal_rates,omitempty"`
	Discounts   []DiscountRequest     `json:"discounts,omitempty"`
}

func (r CreateProductRequest) DomainRules() []product.PricingRule {
	out := make([]product.PricingRule, len(r.Rules))
	for i, rule := range r.Rules {
		out[i] = product.PricingRule{
			Unit:            product.DurationUnit(rule.Unit),
			Price:           rule.Price,
			MinimumDuration: rule.MinimumDuration,
		}
	}
	return out
}

func (r CreateProductRequest) DomainSeasons() []product.SeasonalRate {
	out := make([]product.SeasonalRate, len(r.Seasons))
	for i, season := range r.Seasons {
		out[i] = product.SeasonalRate{
			Name:        season.Name,
			Start:       season.Start,
			End:         season.End,
			PricePerDay: season.PricePerDay,
		}
	}
	return out
}

func (r CreateProductRequest) DomainDiscounts() []product.Discount {
	out := make([]product.Discount, len(r.Discounts))
	for i, discount := range r.Discounts {
		out[i] = product.Discount{
			Type:      product.DiscountType(discount.Type),
			Value:     discount.Value,
			ValidFrom: discount.ValidFrom,
			ValidTo:   discount.ValidTo,
			MinDays:   discount.MinDays,
		}
	}
	return out
}
