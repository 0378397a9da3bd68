package converter

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
)

// CategoryConverter преобразует Category между domain и моделью PostgreSQL.
type CategoryConverter interface {
	ToEntity(model *CategoryModel) *domain.Category
}

// ProductConverter преобразует товары и размеры между domain и моделями PostgreSQL.
type ProductConverter interface {
	ToEntity(model *ProductModel) *domain.Product
	SizeToEntity(model *ProductSizeModel) domain.ProductSize
}

// ProfileConverter преобразует CustomerProfile между domain и моделью PostgreSQL.
type ProfileConverter interface {
	ToEntity(model *ProfileModel) *domain.CustomerProfile
}

// OrderConverter преобразует заказы и позиции между domain и моделями PostgreSQL.
type OrderConverter interface {
	ToModel(entity *domain.OrderHeader) *OrderModel
	ToEntity(model *OrderModel) *domain.OrderHeader
	ItemToModel(entity *domain.OrderLineItem) *OrderItemModel
	ItemToEntity(model *OrderItemModel) domain.OrderLineItem
}

// OutboxEventConverter преобразует OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type CategoryConv struct{}

func (CategoryConv) ToEntity(m *CategoryModel) *domain.Category {
	return &domain.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

type ProductConv struct{}

func (ProductConv) ToEntity(m *ProductModel) *domain.Product {
	return &domain.Product{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		BasePrice:   m.BasePrice,
		ImageURL:    m.ImageURL,
		Stock:       m.Stock,
		Available:   m.Available,
		CreatedAt:   m.CreatedAt,
	}
}

func (ProductConv) SizeToEntity(m *ProductSizeModel) domain.ProductSize {
	return domain.ProductSize{
		ID:            m.ID,
		ProductID:     m.ProductID,
		SizeName:      m.SizeName,
		PriceModifier: m.PriceModifier,
		Stock:         m.Stock,
	}
}

type ProfileConv struct{}

func (ProfileConv) ToEntity(m *ProfileModel) *domain.CustomerProfile {
	return &domain.CustomerProfile{
		ID:         m.ID,
		Email:      m.Email,
		FullName:   m.FullName,
		Phone:      m.Phone,
		Address:    m.Address,
		City:       m.City,
		PostalCode: m.PostalCode,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

type OrderConv struct{}

func (OrderConv) ToModel(h *domain.OrderHeader) *OrderModel {
	return &OrderModel{
		ID:              h.ID,
		CustomerID:      h.CustomerID,
		Total:           h.Total,
		Status:          h.Status.String(),
		ShippingAddress: h.ShippingAddress,
		Phone:           h.Phone,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

// ToEntity сохраняет неизвестный код статуса как есть.
func (OrderConv) ToEntity(m *OrderModel) *domain.OrderHeader {
	return &domain.OrderHeader{
		ID:              m.ID,
		CustomerID:      m.CustomerID,
		Total:           m.Total,
		Status:          domain.OrderStatus(m.Status),
		ShippingAddress: m.ShippingAddress,
		Phone:           m.Phone,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (OrderConv) ItemToModel(it *domain.OrderLineItem) *OrderItemModel {
	return &OrderItemModel{
		ID:          it.ID,
		OrderID:     it.OrderID,
		ProductID:   it.ProductID,
		ProductName: it.ProductName,
		SizeLabel:   it.SizeLabel,
		Quantity:    int32(it.Quantity),
		UnitPrice:   it.UnitPrice,
		CreatedAt:   it.CreatedAt,
	}
}

func (OrderConv) ItemToEntity(m *OrderItemModel) domain.OrderLineItem {
	return domain.OrderLineItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		SizeLabel:   m.SizeLabel,
		Quantity:    int(m.Quantity),
		UnitPrice:   m.UnitPrice,
		CreatedAt:   m.CreatedAt,
	}
}

type OutboxEventConv struct{}

func (OutboxEventConv) ToModel(ev *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          ev.ID,
		EventID:     ev.EventID,
		EventType:   string(ev.EventType),
		AggregateID: ev.AggregateID,
		Payload:     ev.Payload,
		Status:      string(ev.Status),
		CreatedAt:   ev.CreatedAt,
		ProcessedAt: ev.ProcessedAt,
	}
}

func (OutboxEventConv) ToEntity(m *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          m.ID,
		EventID:     m.EventID,
		EventType:   usecase.OutboxEventType(m.EventType),
		AggregateID: m.AggregateID,
		Payload:     m.Payload,
		Status:      usecase.OutboxStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		ProcessedAt: m.ProcessedAt,
	}
}

func (c OutboxEventConv) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	res := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		res = append(res, c.ToEntity(m))
	}

	return res
}
