package usecase

import (
	"context"
	"time"

	"rentalhub/internal/domain/product"
	"rentalhub/internal/infra"
	"rentalhub/internal/pkg/errs"
	"rentalhub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductRepository interface {
	Create(ctx context.Context, p *product.Product) error
	FindEntityByID(ctx context.Context, id uuid.UUID) (*product.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.ProductRM, error)
	FindAll(ctx context.Context, onlyActive bool) ([]*readmodel.ProductListRM, error)
}

type CreateProductParams struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
	BasePrice   *decimal.Decimal
	Rules       []product.PricingRule
	Seasons     []product.SeasonalRate
	Discounts   []product.Discount
}

type PriceQuote struct {
	Days  int
	Total decimal.Decimal
}

type ProductUseCase interface {
	ListProducts(ctx context.Context, onlyActive bool) ([]*readmodel.ProductListRM, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*readmodel.ProductRM, error)
	QuotePrice(ctx context.Context, id uuid.UUID, start, end time.Time) (*PriceQuote, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (*readmodel.ProductRM, error)
}

type productUseCaseImpl struct {
	productRepo ProductRepository
}

func NewProductUseCase(productRepo ProductRepository) ProductUseCase {
	return &productUseCaseImpl{productRepo: productRepo}
}

func (u *productUseCaseImpl) ListProducts(ctx context.Context, onlyActive bool) ([]*readmodel.ProductListRM, error) {
	return u.productRepo.FindAll(ctx, onlyActive)
}

func (u *productUseCaseImpl) GetProduct(ctx context.Context, id uuid.UUID) (*readmodel.ProductRM, error) {
	rm, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rm, nil
}

// QuotePrice is the read-only price preview backing the booking form. It runs
// the same pure pricing the booking factory uses at creation.
func (u *productUseCaseImpl) QuotePrice(ctx context.Context, id uuid.UUID, start, end time.Time) (*PriceQuote, error) {
	productEntity, err := u.productRepo.FindEntityByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &PriceQuote{
		Days:  product.RentalDays(start, end),
		Total: product.Quote(productEntity, start, end),
	}, nil
}

func (u *productUseCaseImpl) CreateProduct(ctx context.Context, params CreateProductParams) (*readmodel.ProductRM, error) {
	productEntity, err := product.NewProduct(
		params.OwnerID,
		params.Name,
		params.Description,
		params.BasePrice,
		params.Rules,
		params.Seasons,
		params.Discounts,
	)
	if err != nil {
		return nil, err
	}

	if err := u.productRepo.Create(ctx, productEntity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return u.productRepo.FindByID(ctx, productEntity.ID())
}
