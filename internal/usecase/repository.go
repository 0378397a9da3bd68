package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/google/uuid"
)

type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetDetails(ctx context.Context, id uuid.UUID) (*domain.ProductDetails, error)
	GetDetailsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.ProductDetails, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type ProfileRepository interface {
	Get(ctx context.Context, customerID uuid.UUID) (*domain.CustomerProfile, error)
	Update(ctx context.Context, customerID uuid.UUID, upd domain.ProfileUpdate) (*domain.CustomerProfile, error)
}

type OrderRepository interface {
	CreateHeader(ctx context.Context, header *domain.OrderHeader) (*domain.OrderHeader, error)
	CreateItems(ctx context.Context, items []domain.OrderLineItem) error
	GetHeader(ctx context.Context, id uuid.UUID) (*domain.OrderHeader, error)
	LockHeader(ctx context.Context, id uuid.UUID) (*domain.OrderHeader, error)
	ListItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderLineItem, error)
	ListItemsByOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderLineItem, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.OrderHeader, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.OrderHeader, error)
	FindOrphans(ctx context.Context, createdBefore time.Time, limit int) ([]domain.OrderHeader, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReleaseStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

// CartStorage хранит сериализованную корзину сессии целиком под одним ключом.
// LoadCart возвращает nil, nil, если корзина ещё не сохранялась.
type CartStorage interface {
	LoadCart(ctx context.Context, sessionID string) ([]byte, error)
	SaveCart(ctx context.Context, sessionID string, data []byte) error
	DeleteCart(ctx context.Context, sessionID string) error
}

type ProductCacheRepository interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.ProductDetails, error)
	SetProduct(ctx context.Context, product *domain.ProductDetails) error
	DeleteProducts(ctx context.Context, ids []uuid.UUID) error
}

type NotificationArchive interface {
	Store(ctx context.Context, n *Notification) (string, error)
}
