package product

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName           = errors.New("product name cannot be empty")
	ErrNegativePrice       = errors.New("price cannot be negative")
	ErrInvalidRule         = errors.New("invalid pricing rule")
	ErrInvalidSeason       = errors.New("seasonal rate window is invalid")
	ErrInvalidDiscount     = errors.New("invalid discount")
	ErrProductInactive     = errors.New("product is not available for booking")
	ErrInvalidDiscountType = errors.New("discount type must be percentage or flat")
)

type DurationUnit string

const (
	UnitDay   DurationUnit = "day"
	UnitWeek  DurationUnit = "week"
	UnitMonth DurationUnit = "month"
)

func (u DurationUnit) IsValid() bool {
	switch u {
	case UnitDay, UnitWeek, UnitMonth:
		return true
	default:
		return false
	}
}

// PricingRule prices a rental by duration tier. A week rule only kicks in
// from 7 days, a month rule from 30.
type PricingRule struct {
	Unit            DurationUnit
	Price           decimal.Decimal
	MinimumDuration int
}

// SeasonalRate replaces tiered pricing entirely when its window fully
// contains the booked range.
type SeasonalRate struct {
	Name        string
	Start       time.Time
	End         time.Time
	PricePerDay decimal.Decimal
}

func (s SeasonalRate) Covers(start, end time.Time) bool {
	return !start.Before(s.Start) && !end.After(s.End)
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

type Discount struct {
	Type      DiscountType
	Value     decimal.Decimal
	ValidFrom *time.Time
	ValidTo   *time.Time
	MinDays   int
}

// AppliesTo reports whether the discount covers the booked range and its
// minimum-duration condition.
func (d Discount) AppliesTo(start, end time.Time, days int) bool {
	if d.ValidFrom != nil && start.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidTo != nil && end.After(*d.ValidTo) {
		return false
	}
	return days >= d.MinDays
}

type Product struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	basePrice   *decimal.Decimal
	rules       []PricingRule
	seasons     []SeasonalRate
	discounts   []Discount
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewProduct(
	ownerID uuid.UUID,
	name, description string,
	basePrice *decimal.Decimal,
	rules []PricingRule,
	seasons []SeasonalRate,
	discounts []Discount,
) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if basePrice != nil && basePrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	for _, r := range rules {
		if !r.Unit.IsValid() || r.Price.IsNegative() || r.MinimumDuration < 0 {
			return nil, ErrInvalidRule
		}
	}
	for _, s := range seasons {
		if !s.Start.Before(s.End) || s.PricePerDay.IsNegative() {
			return nil, ErrInvalidSeason
		}
	}
	for _, d := range discounts {
		if d.Type != DiscountPercentage && d.Type != DiscountFlat {
			return nil, ErrInvalidDiscountType
		}
		if d.Value.IsNegative() || d.MinDays < 0 {
			return nil, ErrInvalidDiscount
		}
	}

	return &Product{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: strings.TrimSpace(description),
		basePrice:   basePrice,
		rules:       rules,
		seasons:     seasons,
		discounts:   discounts,
		isActive:    true,
	}, nil
}

func ReconstructProduct(
	id, ownerID uuid.UUID,
	name, description string,
	basePrice *decimal.Decimal,
	rules []PricingRule,
	seasons []SeasonalRate,
	discounts []Discount,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		basePrice:   basePrice,
		rules:       rules,
		seasons:     seasons,
		discounts:   discounts,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (p *Product) ID() uuid.UUID               { return p.id }
func (p *Product) OwnerID() uuid.UUID          { return p.ownerID }
func (p *Product) Name() string                { return p.name }
func (p *Product) Description() string         { return p.description }
func (p *Product) BasePrice() *decimal.Decimal { return p.basePrice }
func (p *Product) Rules() []PricingRule        { return p.rules }
func (p *Product) Seasons() []SeasonalRate     { return p.seasons }
func (p *Product) Discounts() []Discount       { return p.discounts }
func (p *Product) IsActive() bool              { return p.isActive }
func (p *Product) CreatedAt() time.Time        { return p.createdAt }
func (p *Product) UpdatedAt() time.Time        { return p.updatedAt }
