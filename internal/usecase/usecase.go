package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/google/uuid"
)

type CatalogUC interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.ProductDetails, error)
}

type CartUC interface {
	GetCart(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, req *AddCartItemReq) (*CartView, error)
	UpdateQuantity(ctx context.Context, req *UpdateCartItemReq) (*CartView, error)
	RemoveItem(ctx context.Context, req *RemoveCartItemReq) (*CartView, error)
	ClearCart(ctx context.Context, sessionID string) (*CartView, error)
}

type OrderUC interface {
	Checkout(ctx context.Context, req *CheckoutReq) (*OrderView, error)
	ListOrders(ctx context.Context, customerID uuid.UUID) ([]OrderView, error)
	GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*OrderView, error)
	UpdateStatus(ctx context.Context, req *UpdateStatusReq) (*domain.OrderHeader, error)
}

type ProfileUC interface {
	GetProfile(ctx context.Context, customerID uuid.UUID) (*domain.CustomerProfile, error)
	UpdateProfile(ctx context.Context, customerID uuid.UUID, upd domain.ProfileUpdate) (*domain.CustomerProfile, error)
}

type NotificationUC interface {
	HandleOrderEvent(ctx context.Context, event *OrderEvent) error
}

type ReconcileUC interface {
	SweepOrphans(ctx context.Context) (int, error)
}
