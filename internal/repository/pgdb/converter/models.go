package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID          uuid.UUID       `db:"id"`
	CategoryID  *uuid.UUID      `db:"category_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	BasePrice   decimal.Decimal `db:"base_price"`
	ImageURL    string          `db:"image_url"`
	Stock       *int32          `db:"stock"`
	Available   bool            `db:"available"`
	CreatedAt   time.Time       `db:"created_at"`
}

// ProductSizeModel представляет запись таблицы product_sizes в PostgreSQL.
type ProductSizeModel struct {
	ID            uuid.UUID       `db:"id"`
	ProductID     uuid.UUID       `db:"product_id"`
	SizeName      string          `db:"size_name"`
	PriceModifier decimal.Decimal `db:"price_modifier"`
	Stock         int32           `db:"stock"`
}

// ProfileModel представляет запись таблицы customer_profiles в PostgreSQL.
type ProfileModel struct {
	ID         uuid.UUID `db:"id"`
	Email      string    `db:"email"`
	FullName   string    `db:"full_name"`
	Phone      string    `db:"phone"`
	Address    string    `db:"address"`
	City       string    `db:"city"`
	PostalCode string    `db:"postal_code"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// OrderModel представляет запись таблицы online_orders в PostgreSQL.
type OrderModel struct {
	ID              uuid.UUID       `db:"id"`
	CustomerID      uuid.UUID       `db:"customer_id"`
	Total           decimal.Decimal `db:"total"`
	Status          string          `db:"status"`
	ShippingAddress string          `db:"shipping_address"`
	Phone           string          `db:"phone"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// OrderItemModel представляет запись таблицы order_items_online в PostgreSQL.
type OrderItemModel struct {
	ID          uuid.UUID       `db:"id"`
	OrderID     uuid.UUID       `db:"order_id"`
	ProductID   *uuid.UUID      `db:"product_id"`
	ProductName string          `db:"product_name"`
	SizeLabel   string          `db:"size_label"`
	Quantity    int32           `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	CreatedAt   time.Time       `db:"created_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     uuid.UUID  `db:"event_id"`
	EventType   string     `db:"event_type"`
	AggregateID uuid.UUID  `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
