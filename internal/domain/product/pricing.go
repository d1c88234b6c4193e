package product

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RentalDays returns the billable number of days for a range, counting any
// started day as a full one. Zero or inverted ranges yield 0.
func RentalDays(start, end time.Time) int {
	if !start.Before(end) {
		return 0
	}
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// Quote computes the total rental price for the range, applying duration-tier
// rules, then seasonal overrides, then discounts, in that precedence order.
// A product without any pricing data quotes as zero rather than failing;
// callers that consider that a configuration error must check for it.
func Quote(p *Product, start, end time.Time) decimal.Decimal {
	days := RentalDays(start, end)
	if days <= 0 {
		return decimal.Zero
	}

	price, ok := basePrice(p, days)
	if !ok {
		return decimal.Zero
	}

	if rule, units, matched := matchTier(p, days); matched {
		price = rule.Price.Mul(decimal.NewFromInt(int64(units)))
	}

	for _, s := range p.seasons {
		if s.Covers(start, end) {
			price = s.PricePerDay.Mul(decimal.NewFromInt(int64(days)))
			break
		}
	}

	for _, d := range p.discounts {
		if d.AppliesTo(start, end, days) {
			price = applyDiscount(price, d)
			break
		}
	}

	if price.IsNegative() {
		return decimal.Zero
	}
	return price.Round(2)
}

func basePrice(p *Product, days int) (decimal.Decimal, bool) {
	switch {
	case p.basePrice != nil:
		return p.basePrice.Mul(decimal.NewFromInt(int64(days))), true
	case len(p.rules) > 0:
		return p.rules[0].Price.Mul(decimal.NewFromInt(int64(days))), true
	default:
		return decimal.Zero, false
	}
}

// matchTier picks the largest duration tier the range qualifies for: month
// from 30 days, week from 7, day otherwise. A rule's own minimum duration
// must also be met.
func matchTier(p *Product, days int) (PricingRule, int, bool) {
	if r, ok := ruleFor(p, UnitMonth); ok && days >= 30 && days >= r.MinimumDuration {
		return r, ceilDiv(days, 30), true
	}
	if r, ok := ruleFor(p, UnitWeek); ok && days >= 7 && days >= r.MinimumDuration {
		return r, ceilDiv(days, 7), true
	}
	if r, ok := ruleFor(p, UnitDay); ok && days >= r.MinimumDuration {
		return r, days, true
	}
	return PricingRule{}, 0, false
}

func ruleFor(p *Product, unit DurationUnit) (PricingRule, bool) {
	for _, r := range p.rules {
		if r.Unit == unit {
			return r, true
		}
	}
	return PricingRule{}, false
}

func applyDiscount(price decimal.Decimal, d Discount) decimal.Decimal {
	switch d.Type {
	case DiscountPercentage:
		return price.Mul(hundred.Sub(d.Value)).Div(hundred)
	case DiscountFlat:
		return price.Sub(d.Value)
	default:
		return price
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
