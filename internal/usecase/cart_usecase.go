package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// CartUseCase — операции с корзиной для HTTP-слоя: подтягивает товар из каталога
// и открывает CartStore сессии на время запроса.
type CartUseCase struct {
	catalog CatalogUC
	storage CartStorage
	logger  logger.Logger
}

func NewCartUC(catalog CatalogUC, storage CartStorage, logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		catalog: catalog,
		storage: storage,
		logger:  logger,
	}
}

func (c *CartUseCase) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	const op = "CartUseCase.GetCart"

	store, err := c.open(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartView(store.Lines()), nil
}

// AddItem проверяет товар и размер по каталогу и добавляет их в корзину.
func (c *CartUseCase) AddItem(ctx context.Context, req *AddCartItemReq) (*CartView, error) {
	const op = "CartUseCase.AddItem"

	if req.Quantity < 1 {
		return nil, e.Wrap(op, e.ErrInvalidQuantity)
	}

	details, err := c.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if !details.Product.Available {
		return nil, e.Wrap(op, e.ErrProductUnavailable)
	}

	var size *domain.ProductSize
	switch {
	case req.SizeID != nil:
		s, ok := details.FindSize(*req.SizeID)
		if !ok {
			return nil, e.Wrap(op, e.ErrSizeMismatch)
		}
		size = s
	case details.HasSizes():
		return nil, e.Wrap(op, e.ErrSizeRequired)
	}

	store, err := c.open(ctx, req.SessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := store.AddItem(ctx, details.Product, size, req.Quantity); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartView(store.Lines()), nil
}

func (c *CartUseCase) UpdateQuantity(ctx context.Context, req *UpdateCartItemReq) (*CartView, error) {
	const op = "CartUseCase.UpdateQuantity"

	store, err := c.open(ctx, req.SessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := store.UpdateQuantity(ctx, req.ProductID, req.Quantity, req.SizeID); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartView(store.Lines()), nil
}

func (c *CartUseCase) RemoveItem(ctx context.Context, req *RemoveCartItemReq) (*CartView, error) {
	const op = "CartUseCase.RemoveItem"

	store, err := c.open(ctx, req.SessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := store.RemoveItem(ctx, req.ProductID, req.SizeID); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartView(store.Lines()), nil
}

func (c *CartUseCase) ClearCart(ctx context.Context, sessionID string) (*CartView, error) {
	const op = "CartUseCase.ClearCart"

	store, err := c.open(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := store.Clear(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartView(nil), nil
}

// OpenStore открывает корзину сессии для сборщика заказа.
func (c *CartUseCase) OpenStore(ctx context.Context, sessionID string) (*CartStore, error) {
	return c.open(ctx, sessionID)
}

func (c *CartUseCase) open(ctx context.Context, sessionID string) (*CartStore, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, e.ErrUnauthorized
	}

	return OpenCartStore(ctx, sessionID, c.storage, c.logger)
}
