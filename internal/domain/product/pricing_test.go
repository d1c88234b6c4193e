//go:build unit

package product_test

import (
	"testing"
	"time"

	"rentalhub/internal/domain/product"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseDate = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func buildProduct(t *testing.T, basePrice *decimal.Decimal, rules []product.PricingRule, seasons []product.SeasonalRate, discounts []product.Discount) *product.Product {
	t.Helper()
	p, err := product.NewProduct(uuid.New(), "Cargo trailer", "6x12 enclosed trailer", basePrice, rules, seasons, discounts)
	require.NoError(t, err)
	return p
}

func days(n int) (time.Time, time.Time) {
	return baseDate, baseDate.Add(time.Duration(n) * 24 * time.Hour)
}

func TestRentalDays(t *testing.T) {
	testCases := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{"zero-length range", baseDate, baseDate, 0},
		{"inverted range", baseDate.Add(24 * time.Hour), baseDate, 0},
		{"exactly one day", baseDate, baseDate.Add(24 * time.Hour), 1},
		{"partial day rounds up", baseDate, baseDate.Add(25 * time.Hour), 2},
		{"one week", baseDate, baseDate.Add(7 * 24 * time.Hour), 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, product.RentalDays(tc.start, tc.end))
		})
	}
}

func TestQuote_TieredPricing(t *testing.T) {
	dayRule := product.PricingRule{Unit: product.UnitDay, Price: dec("100"), MinimumDuration: 1}
	weekRule := product.PricingRule{Unit: product.UnitWeek, Price: dec("600")}
	monthRule := product.PricingRule{Unit: product.UnitMonth, Price: dec("2000")}

	testCases := []struct {
		name     string
		rules    []product.PricingRule
		days     int
		expected string
	}{
		{"day rule, 3 days", []product.PricingRule{dayRule}, 3, "300"},
		{"week rule overrides day rate at 7 days", []product.PricingRule{dayRule, weekRule}, 7, "600"},
		{"week rule bills started weeks", []product.PricingRule{dayRule, weekRule}, 10, "1200"},
		{"month rule from 30 days", []product.PricingRule{dayRule, weekRule, monthRule}, 30, "2000"},
		{"month rule bills started months", []product.PricingRule{dayRule, weekRule, monthRule}, 45, "4000"},
		{"day rate below week threshold", []product.PricingRule{dayRule, weekRule}, 6, "600"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := buildProduct(t, nil, tc.rules, nil, nil)
			start, end := days(tc.days)
			assert.True(t, dec(tc.expected).Equal(product.Quote(p, start, end)),
				"expected %s, got %s", tc.expected, product.Quote(p, start, end))
		})
	}
}

func TestQuote_DegenerateInput(t *testing.T) {
	t.Run("zero-length range quotes zero", func(t *testing.T) {
		p := buildProduct(t, nil, []product.PricingRule{{Unit: product.UnitDay, Price: dec("100"), MinimumDuration: 1}}, nil, nil)
		assert.True(t, product.Quote(p, baseDate, baseDate).IsZero())
	})

	t.Run("no pricing data quotes zero", func(t *testing.T) {
		// Preserved source behavior: silence, not an error.
		p := buildProduct(t, nil, nil, nil, nil)
		start, end := days(3)
		assert.True(t, product.Quote(p, start, end).IsZero())
	})

	t.Run("base price without rules", func(t *testing.T) {
		base := dec("50")
		p := buildProduct(t, &base, nil, nil, nil)
		start, end := days(4)
		assert.True(t, dec("200").Equal(product.Quote(p, start, end)))
	})
}

func TestQuote_SeasonalOverride(t *testing.T) {
	dayRule := product.PricingRule{Unit: product.UnitDay, Price: dec("100"), MinimumDuration: 1}
	summer := product.SeasonalRate{
		Name:        "summer peak",
		Start:       time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		PricePerDay: dec("150"),
	}

	t.Run("window containing the range replaces tier price", func(t *testing.T) {
		p := buildProduct(t, nil, []product.PricingRule{dayRule}, []product.SeasonalRate{summer}, nil)
		start, end := days(3)
		assert.True(t, dec("450").Equal(product.Quote(p, start, end)))
	})

	t.Run("range extending past the window keeps tier price", func(t *testing.T) {
		p := buildProduct(t, nil, []product.PricingRule{dayRule}, []product.SeasonalRate{summer}, nil)
		start := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
		end := start.Add(5 * 24 * time.Hour)
		assert.True(t, dec("500").Equal(product.Quote(p, start, end)))
	})
}

func TestQuote_Discounts(t *testing.T) {
	dayRule := product.PricingRule{Unit: product.UnitDay, Price: dec("100"), MinimumDuration: 1}

	t.Run("percentage discount applied last", func(t *testing.T) {
		p := buildProduct(t, nil, []product.PricingRule{dayRule}, nil,
			[]product.Discount{{Type: product.DiscountPercentage, Value: dec("10")}})
		start, end := days(3)
		assert.True(t, dec("270").Equal(product.Quote(p, start, end)))
	})

	t.Run("flat discount subtracts", func(t *testing.T) {
		p := buildProduct(t, nil, []product.PricingRule{dayRule}, nil,
			[]product.Discount{{Type: product.DiscountFlat, Value: dec("50")}})
		start, end := days(2)
		assert.True(t, dec("150").Equal(product.Quote(p, start, end)))
	})

	t.Run("flat discount never yields a negative total", func(t *testing.T) {
		p := buildProduct(t, nil, []product.PricingRule{dayRule}, nil,
			[]product.Discount{{Type: product.DiscountFlat, Value: dec("5000")}})
		start, end := days(1)
		assert.True(t, product.Quote(p, start, end).IsZero())
	})

	t.Run("minimum duration gates the discount", func(t *testing.T) {
		p := buildProduct(t, nil, []product.PricingRule{dayRule}, nil,
			[]product.Discount{{Type: product.DiscountPercentage, Value: dec("10"), MinDays: 5}})
		start, end := days(3)
		assert.True(t, dec("300").Equal(product.Quote(p, start, end)))
	})

	t.Run("date window gates the discount", func(t *testing.T) {
		from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		p := buildProduct(t, nil, []product.PricingRule{dayRule}, nil,
			[]product.Discount{{Type: product.DiscountPercentage, Value: dec("10"), ValidFrom: &from}})
		start, end := days(3)
		assert.True(t, dec("300").Equal(product.Quote(p, start, end)))
	})
}

// Absent discounts, a longer rental never costs less than a shorter one for
// a fixed pricing rule.
func TestQuote_MonotonicInDays(t *testing.T) {
	p := buildProduct(t, nil, []product.PricingRule{
		{Unit: product.UnitDay, Price: dec("100"), MinimumDuration: 1},
	}, nil, nil)

	prev := decimal.Zero
	for n := 1; n <= 90; n++ {
		start, end := days(n)
		q := product.Quote(p, start, end)
		assert.False(t, q.LessThan(prev), "quote for %d days (%s) below quote for %d days (%s)", n, q, n-1, prev)
		prev = q
	}
}

func TestNewProduct_Validation(t *testing.T) {
	testCases := []struct {
		name  string
		build func() (*product.Product, error)
		errIs error
	}{
		{
			name: "empty name",
			build: func() (*product.Product, error) {
				return product.NewProduct(uuid.New(), "  ", "", nil, nil, nil, nil)
			},
			errIs: product.ErrEmptyName,
		},
		{
			name: "negative base price",
			build: func() (*product.Product, error) {
				neg := dec("-1")
				return product.NewProduct(uuid.New(), "Trailer", "", &neg, nil, nil, nil)
			},
			errIs: product.ErrNegativePrice,
		},
		{
			name: "unknown duration unit",
			build: func() (*product.Product, error) {
				return product.NewProduct(uuid.New(), "Trailer", "", nil,
					[]product.PricingRule{{Unit: "fortnight", Price: dec("10")}}, nil, nil)
			},
			errIs: product.ErrInvalidRule,
		},
		{
			name: "inverted seasonal window",
			build: func() (*product.Product, error) {
				return product.NewProduct(uuid.New(), "Trailer", "", nil, nil,
					[]product.SeasonalRate{{Start: baseDate, End: baseDate, PricePerDay: dec("10")}}, nil)
			},
			errIs: product.ErrInvalidSeason,
		},
		{
			name: "unknown discount type",
			build: func() (*product.Product, error) {
				return product.NewProduct(uuid.New(), "Trailer", "", nil, nil, nil,
					[]product.Discount{{Type: "bogo", Value: dec("10")}})
			},
			errIs: product.ErrInvalidDiscountType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.build()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestNewProduct_PreservesPricingData(t *testing.T) {
	rules := []product.PricingRule{
		{Unit: product.UnitDay, Price: dec("100")},
		{Unit: product.UnitWeek, Price: dec("600"), MinimumDuration: 7},
	}
	seasons := []product.SeasonalRate{
		{Name: "Summer", Start: baseDate, End: baseDate.AddDate(0, 3, 0), PricePerDay: dec("150")},
	}

	p := buildProduct(t, nil, rules, seasons, nil)

	decimalEq := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	if diff := cmp.Diff(rules, p.Rules(), decimalEq); diff != "" {
		t.Errorf("pricing rules mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(seasons, p.Seasons(), decimalEq); diff != "" {
		t.Errorf("seasonal rates mismatch (-want +got):\n%s", diff)
	}
}
