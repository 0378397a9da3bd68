package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogUseCase_GetProductFillsCache(t *testing.T) {
	p := newProduct("Coat", "199.90")
	repo := NewMockProductRepository(domain.ProductDetails{Product: p})
	cache := NewMockProductCache()
	uc := NewCatalogUC(repo, &MockCategoryRepository{}, cache, logger.Nop())
	ctx := context.Background()

	got, err := uc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.Product.ID)

	require.Len(t, cache.setCh, 1, "cache must be filled before GetProduct returns")
	assert.Equal(t, p.ID, <-cache.setCh)

	_, err = uc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.GetCalls)
}

func TestCatalogUseCase_GetProductCacheErrorFallsBack(t *testing.T) {
	p := newProduct("Coat", "10")
	repo := NewMockProductRepository(domain.ProductDetails{Product: p})
	cache := NewMockProductCache()
	cache.GetErr = errors.New("redis down")
	uc := NewCatalogUC(repo, &MockCategoryRepository{}, cache, logger.Nop())

	got, err := uc.GetProduct(context.Background(), p.ID)

	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Product.Name)
}

func TestCatalogUseCase_GetProductFillsCacheAfterRequestCancelled(t *testing.T) {
	p := newProduct("Coat", "10")
	repo := NewMockProductRepository(domain.ProductDetails{Product: p})
	cache := NewMockProductCache()
	uc := NewCatalogUC(repo, &MockCategoryRepository{}, cache, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := uc.GetProduct(ctx, p.ID)

	require.NoError(t, err)
	assert.Equal(t, p.ID, got.Product.ID)
	assert.Len(t, cache.setCh, 1)
}

func TestCatalogUseCase_GetProductCacheWriteErrorIgnored(t *testing.T) {
	p := newProduct("Coat", "10")
	repo := NewMockProductRepository(domain.ProductDetails{Product: p})
	cache := NewMockProductCache()
	cache.SetErr = errors.New("redis closed")
	uc := NewCatalogUC(repo, &MockCategoryRepository{}, cache, logger.Nop())

	got, err := uc.GetProduct(context.Background(), p.ID)

	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Product.Name)
	assert.Empty(t, cache.setCh)
}

func TestCatalogUseCase_GetProductNotFound(t *testing.T) {
	uc := NewCatalogUC(NewMockProductRepository(), &MockCategoryRepository{}, NewMockProductCache(), logger.Nop())

	_, err := uc.GetProduct(context.Background(), newProduct("x", "1").ID)

	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestCatalogUseCase_ListProductsSort(t *testing.T) {
	repo := NewMockProductRepository()
	uc := NewCatalogUC(repo, &MockCategoryRepository{}, NewMockProductCache(), logger.Nop())
	ctx := context.Background()

	_, err := uc.ListProducts(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	_, err = uc.ListProducts(ctx, domain.ProductFilter{Sort: domain.SortPriceHigh, Search: "shirt"})
	require.NoError(t, err)

	require.Len(t, repo.Listed, 2)
	assert.Equal(t, domain.SortNewest, repo.Listed[0].Sort)
	assert.Equal(t, domain.SortPriceHigh, repo.Listed[1].Sort)

	_, err = uc.ListProducts(ctx, domain.ProductFilter{Sort: "random"})
	assert.ErrorIs(t, err, e.ErrInvalidRequest)
}

func TestCatalogUseCase_ListCategories(t *testing.T) {
	cats := []domain.Category{{Name: "Dresses"}, {Name: "Shoes"}}
	uc := NewCatalogUC(NewMockProductRepository(), &MockCategoryRepository{Categories: cats}, NewMockProductCache(), logger.Nop())

	got, err := uc.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, cats, got)
}
