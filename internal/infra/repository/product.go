package repository

import (
	"context"
	"time"

	"rentalhub/internal/domain/product"
	"rentalhub/internal/infra"
	"rentalhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO products (id, owner_id, name, description, base_price, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID(), p.OwnerID(), p.Name(), p.Description(), decimalPtrToString(p.BasePrice()), p.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert product", err)
	}

	for i, rule := range p.Rules() {
		_, err = tx.Exec(ctx, `
			INSERT INTO pricing_rules (id, product_id, unit, price, minimum_duration, position)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), p.ID(), string(rule.Unit), rule.Price, rule.MinimumDuration, i,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert pricing rule", err)
		}
	}

	for i, season := range p.Seasons() {
		_, err = tx.Exec(ctx, `
			INSERT INTO seasonal_rates (id, product_id, name, start_date, end_date, price_per_day, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), p.ID(), season.Name, season.Start, season.End, season.PricePerDay, i,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert seasonal rate", err)
		}
	}

	for i, discount := range p.Discounts() {
		_, err = tx.Exec(ctx, `
			INSERT INTO discounts (id, product_id, type, value, valid_from, valid_to, min_days, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New(), p.ID(), string(discount.Type), discount.Value, discount.ValidFrom, discount.ValidTo, discount.MinDays, i,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert discount", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit product creation", err)
	}
	return nil
}

func (r *ProductRepository) FindEntityByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	var (
		ownerID              uuid.UUID
		name, description    string
		basePriceRaw         *string
		isActive             bool
		createdAt, updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, `
		SELECT owner_id, name, description, base_price::text, is_active, created_at, updated_at
		FROM products WHERE id = $1`, id,
	).Scan(&ownerID, &name, &description, &basePriceRaw, &isActive, &createdAt, &updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}

	basePrice, err := parseDecimalPtr(basePriceRaw)
	if err != nil {
		return nil, err
	}

	rules, err := r.loadRules(ctx, id)
	if err != nil {
		return nil, err
	}
	seasons, err := r.loadSeasons(ctx, id)
	if err != nil {
		return nil, err
	}
	discounts, err := r.loadDiscounts(ctx, id)
	if err != nil {
		return nil, err
	}

	return product.ReconstructProduct(
		id, ownerID, name, description,
		basePrice, rules, seasons, discounts,
		isActive, createdAt, updatedAt,
	), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.ProductRM, error) {
	entity, err := r.FindEntityByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductRM(entity), nil
}

func (r *ProductRepository) FindAll(ctx context.Context, onlyActive bool) ([]*readmodel.ProductListRM, error) {
	query := `SELECT id, name, base_price::text, is_active, created_at FROM products`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	var out []*readmodel.ProductListRM
	for rows.Next() {
		var (
			rm           readmodel.ProductListRM
			basePriceRaw *string
		)
		if err := rows.Scan(&rm.ID, &rm.Name, &basePriceRaw, &rm.IsActive, &rm.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}
		if rm.BasePrice, err = parseDecimalPtr(basePriceRaw); err != nil {
			return nil, err
		}
		out = append(out, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate product rows", err)
	}
	return out, nil
}

func (r *ProductRepository) loadRules(ctx context.Context, productID uuid.UUID) ([]product.PricingRule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT unit, price::text, minimum_duration
		FROM pricing_rules WHERE product_id = $1 ORDER BY position`, productID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load pricing rules", err)
	}
	defer rows.Close()

	var out []product.PricingRule
	for rows.Next() {
		var (
			unit, priceRaw string
			minDuration    int
		)
		if err := rows.Scan(&unit, &priceRaw, &minDuration); err != nil {
			return nil, infra.WrapRepoErr("failed to scan pricing rule", err)
		}
		price, err := parseDecimal(priceRaw)
		if err != nil {
			return nil, err
		}
		out = append(out, product.PricingRule{
			Unit:            product.DurationUnit(unit),
			Price:           price,
			MinimumDuration: minDuration,
		})
	}
	return out, rows.Err()
}

func (r *ProductRepository) loadSeasons(ctx context.Context, productID uuid.UUID) ([]product.SeasonalRate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, start_date, end_date, price_per_day::text
		FROM seasonal_rates WHERE product_id = $1 ORDER BY position`, productID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load seasonal rates", err)
	}
	defer rows.Close()

	var out []product.SeasonalRate
	for rows.Next() {
		var (
			season   product.SeasonalRate
			priceRaw string
		)
		if err := rows.Scan(&season.Name, &season.Start, &season.End, &priceRaw); err != nil {
			return nil, infra.WrapRepoErr("failed to scan seasonal rate", err)
		}
		if season.PricePerDay, err = parseDecimal(priceRaw); err != nil {
			return nil, err
		}
		out = append(out, season)
	}
	return out, rows.Err()
}

func (r *ProductRepository) loadDiscounts(ctx context.Context, productID uuid.UUID) ([]product.Discount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT type, value::text, valid_from, valid_to, min_days
		FROM discounts WHERE product_id = $1 ORDER BY position`, productID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load discounts", err)
	}
	defer rows.Close()

	var out []product.Discount
	for rows.Next() {
		var (
			discount product.Discount
			kind     string
			valueRaw string
		)
		if err := rows.Scan(&kind, &valueRaw, &discount.ValidFrom, &discount.ValidTo, &discount.MinDays); err != nil {
			return nil, infra.WrapRepoErr("failed to scan discount", err)
		}
		discount.Type = product.DiscountType(kind)
		if discount.Value, err = parseDecimal(valueRaw); err != nil {
			return nil, err
		}
		out = append(out, discount)
	}
	return out, rows.Err()
}

func toProductRM(p *product.Product) *readmodel.ProductRM {
	rm := &readmodel.ProductRM{
		ID:          p.ID(),
		OwnerID:     p.OwnerID(),
		Name:        p.Name(),
		Description: p.Description(),
		BasePrice:   p.BasePrice(),
		IsActive:    p.IsActive(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
	for _, rule := range p.Rules() {
		rm.Rules = append(rm.Rules, readmodel.PricingRuleRM{
			Unit:            string(rule.Unit),
			Price:           rule.Price,
			MinimumDuration: rule.MinimumDuration,
		})
	}
	for _, season := range p.Seasons() {
		rm.Seasons = append(rm.Seasons, readmodel.SeasonalRateRM{
			Name:        season.Name,
			Start:       season.Start,
			End:         season.End,
			PricePerDay: season.PricePerDay,
		})
	}
	for _, discount := range p.Discounts() {
		rm.Discounts = append(rm.Discounts, readmodel.DiscountRM{
			Type:      string(discount.Type),
			Value:     discount.Value,
			ValidFrom: discount.ValidFrom,
			ValidTo:   discount.ValidTo,
			MinDays:   discount.MinDays,
		})
	}
	return rm
}

func decimalPtrToString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseDecimalPtr(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := parseDecimal(*raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
