package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderHeader — заголовок заказа. После создания внешним процессом меняется только статус.
type OrderHeader struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	Total           decimal.Decimal
	Status          OrderStatus
	ShippingAddress string
	Phone           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderLineItem — денормализованный снимок купленной позиции.
// ProductID может быть nil, если товар позже удалён.
type OrderLineItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   *uuid.UUID
	ProductName string
	SizeLabel   string
	Quantity    int
	UnitPrice   decimal.Decimal
	CreatedAt   time.Time
}

// Order — заголовок заказа вместе с позициями.
type Order struct {
	Header OrderHeader
	Items  []OrderLineItem
}

// NewPendingOrder создаёт заголовок нового заказа в статусе pending.
func NewPendingOrder(customerID uuid.UUID, total decimal.Decimal, shipping ShippingDetails) *OrderHeader {
	return &OrderHeader{
		ID:              uuid.New(),
		CustomerID:      customerID,
		Total:           total,
		Status:          OrderStatusPending,
		ShippingAddress: shipping.FlattenAddress(),
		Phone:           shipping.Phone,
	}
}

// NewLineItem фиксирует строку корзины как позицию заказа.
func NewLineItem(orderID uuid.UUID, line CartLine) OrderLineItem {
	productID := line.Product.ID
	return OrderLineItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   &productID,
		ProductName: line.Product.Name,
		SizeLabel:   line.SizeLabel(),
		Quantity:    line.Quantity,
		UnitPrice:   line.UnitPrice(),
	}
}

// ShortID — первые 8 символов идентификатора, так номер заказа показывается покупателю.
func (h OrderHeader) ShortID() string {
	return h.ID.String()[:8]
}
