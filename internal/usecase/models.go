package usecase

import (
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CART USECASE

// CartView — представление корзины для клиента.
type CartView struct {
	Lines     []CartLineView
	Subtotal  decimal.Decimal
	ItemCount int
}

// CartLineView — строка корзины с рассчитанными ценами.
type CartLineView struct {
	ProductID   uuid.UUID
	ProductName string
	ImageURL    string
	SizeID      *uuid.UUID
	SizeLabel   string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

type AddCartItemReq struct {
	SessionID string
	ProductID uuid.UUID
	SizeID    *uuid.UUID
	Quantity  int
}

type UpdateCartItemReq struct {
	SessionID string
	ProductID uuid.UUID
	SizeID    *uuid.UUID
	Quantity  int
}

type RemoveCartItemReq struct {
	SessionID string
	ProductID uuid.UUID
	SizeID    *uuid.UUID
}

// ORDER USECASE

// CheckoutReq — оформление корзины сессии. Пустые поля доставки берутся из профиля.
type CheckoutReq struct {
	SessionID  string
	CustomerID uuid.UUID
	Shipping   domain.ShippingDetails
}

// PlaceOrderReq — вход сборщика заказа.
type PlaceOrderReq struct {
	CustomerID uuid.UUID
	Cart       *CartStore
	Shipping   domain.ShippingDetails
}

// OrderView — заказ с позициями и проекцией статуса.
type OrderView struct {
	Header   domain.OrderHeader
	Items    []domain.OrderLineItem
	Label    string
	Progress int
}

type UpdateStatusReq struct {
	OrderID uuid.UUID
	Status  string
}

// EVENTS

// OutboxEventType — тип события заказа.
type OutboxEventType string

const (
	EventOrderCreated       OutboxEventType = "order.created"
	EventOrderStatusChanged OutboxEventType = "order.status_changed"
)

// OutboxStatus — состояние строки outbox.
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxProcessing OutboxStatus = "processing"
	OutboxProcessed  OutboxStatus = "processed"
)

// OrderEvent — событие жизненного цикла заказа, публикуется через outbox.
type OrderEvent struct {
	EventID         uuid.UUID
	Type            OutboxEventType
	OrderID         uuid.UUID
	CustomerID      uuid.UUID
	Total           decimal.Decimal
	Status          domain.OrderStatus
	PreviousStatus  domain.OrderStatus
	ShippingAddress string
	Phone           string
	OrderCreatedAt  time.Time
	OccurredAt      time.Time
}

// OutboxEvent — строка таблицы outbox_events.
type OutboxEvent struct {
	ID          int64
	EventID     uuid.UUID
	EventType   OutboxEventType
	AggregateID uuid.UUID
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// INFRASTRUCTURE

// WriteRawMessageReq — сообщение для Kafka с уже сериализованным телом.
type WriteRawMessageReq struct {
	Key     []byte
	Payload []byte
	Headers map[string]string
}

// Notification — письмо покупателю.
type Notification struct {
	EventID uuid.UUID
	OrderID uuid.UUID
	To      string
	Subject string
	Body    string
}

// MAPPERS

func NewOrderEvent(eventType OutboxEventType, header *domain.OrderHeader, previous domain.OrderStatus) *OrderEvent {
	return &OrderEvent{
		EventID:         uuid.New(),
		Type:            eventType,
		OrderID:         header.ID,
		CustomerID:      header.CustomerID,
		Total:           header.Total,
		Status:          header.Status,
		PreviousStatus:  previous,
		ShippingAddress: header.ShippingAddress,
		Phone:           header.Phone,
		OrderCreatedAt:  header.CreatedAt,
		OccurredAt:      time.Now().UTC(),
	}
}

func NewOutboxEvent(event *OrderEvent, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:     event.EventID,
		EventType:   event.Type,
		AggregateID: event.OrderID,
		Payload:     payload,
		Status:      OutboxPending,
	}
}

func NewOrderView(header domain.OrderHeader, items []domain.OrderLineItem) OrderView {
	return OrderView{
		Header:   header,
		Items:    items,
		Label:    header.Status.Label(),
		Progress: header.Status.Progress(),
	}
}

func NewCartView(lines []domain.CartLine) *CartView {
	view := &CartView{
		Lines:    make([]CartLineView, 0, len(lines)),
		Subtotal: decimal.Zero,
	}
	for _, l := range lines {
		lv := CartLineView{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			ImageURL:    l.Product.ImageURL,
			SizeLabel:   l.SizeLabel(),
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice(),
			LineTotal:   l.LineTotal(),
		}
		if l.Size != nil {
			id := l.Size.ID
			lv.SizeID = &id
		}
		view.Lines = append(view.Lines, lv)
		view.Subtotal = view.Subtotal.Add(lv.LineTotal)
		view.ItemCount += l.Quantity
	}

	return view
}
