package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
)

const cacheFillTimeout = 500 * time.Millisecond

// CatalogUseCase отдаёт категории и товары витрины.
type CatalogUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	cacheRepo    ProductCacheRepository
	logger       logger.Logger
}

func NewCatalogUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	cacheRepo ProductCacheRepository,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
	}
}

// ListCategories возвращает категории, отсортированные по имени.
func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "CatalogUseCase.ListCategories"

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

// ListProducts возвращает доступные товары по фильтру.
func (c *CatalogUseCase) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListProducts"

	switch filter.Sort {
	case "":
		filter.Sort = domain.SortNewest
	case domain.SortNewest, domain.SortPriceLow, domain.SortPriceHigh, domain.SortName:
	default:
		return nil, e.Wrap(op, e.ErrInvalidRequest)
	}

	products, err := c.productRepo.List(ctx, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetProduct возвращает товар с размерами. Сначала смотрит в кэш, при промахе идёт в БД
// и кладёт результат в кэш до ответа, с коротким таймаутом. Ошибка записи в кэш не мешает ответу.
func (c *CatalogUseCase) GetProduct(ctx context.Context, id uuid.UUID) (*domain.ProductDetails, error) {
	const op = "CatalogUseCase.GetProduct"

	cached, err := c.cacheRepo.GetProduct(ctx, id)
	if err == nil {
		return cached, nil
	}
	if !e.IsCacheMiss(err) {
		c.logger.Warnf("Product cache read failed, falling back to DB: %v", e.Wrap(op, err))
	}

	details, err := c.productRepo.GetDetails(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	fillCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheFillTimeout)
	defer cancel()

	if err := c.cacheRepo.SetProduct(fillCtx, details); err != nil {
		c.logger.Warnf("Failed to cache product: %v", e.Wrap(op, err))
	}

	return details, nil
}
