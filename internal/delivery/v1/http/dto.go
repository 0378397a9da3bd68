package http

import (
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// REQUESTS

type AddCartItemRequest struct {
	ProductID uuid.UUID  `json:"product_id"`
	SizeID    *uuid.UUID `json:"size_id,omitempty"`
	Quantity  int        `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest — данные доставки. Пустые поля берутся из профиля.
type CheckoutRequest struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type UpdateProfileRequest struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// RESPONSES

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

type ProductResponse struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	BasePrice   string     `json:"base_price"`
	ImageURL    string     `json:"image_url,omitempty"`
	Stock       *int32     `json:"stock,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type SizeResponse struct {
	ID             uuid.UUID `json:"id"`
	SizeName       string    `json:"size_name"`
	PriceModifier  string    `json:"price_modifier"`
	EffectivePrice string    `json:"effective_price"`
	Stock          int32     `json:"stock"`
}

type ProductDetailsResponse struct {
	ProductResponse
	Sizes []SizeResponse `json:"sizes"`
}

type CartLineResponse struct {
	ProductID   uuid.UUID  `json:"product_id"`
	ProductName string     `json:"product_name"`
	ImageURL    string     `json:"image_url,omitempty"`
	SizeID      *uuid.UUID `json:"size_id,omitempty"`
	SizeLabel   string     `json:"size_label,omitempty"`
	Quantity    int        `json:"quantity"`
	UnitPrice   string     `json:"unit_price"`
	LineTotal   string     `json:"line_total"`
}

type CartResponse struct {
	Lines     []CartLineResponse `json:"lines"`
	Subtotal  string             `json:"subtotal"`
	ItemCount int                `json:"item_count"`
}

type OrderItemResponse struct {
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	ProductName string     `json:"product_name"`
	SizeLabel   string     `json:"size_label,omitempty"`
	Quantity    int        `json:"quantity"`
	UnitPrice   string     `json:"unit_price"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	Number          string              `json:"number"`
	Total           string              `json:"total"`
	Status          string              `json:"status"`
	StatusLabel     string              `json:"status_label"`
	Progress        int                 `json:"progress"`
	ShippingAddress string              `json:"shipping_address"`
	Phone           string              `json:"phone"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []OrderItemResponse `json:"items,omitempty"`
}

type ProfileResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
}

// MAPPERS

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toCategoryResponses(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return res
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   money(p.BasePrice),
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}

func toProductResponses(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}
	return res
}

func toProductDetailsResponse(d *domain.ProductDetails) ProductDetailsResponse {
	res := ProductDetailsResponse{
		ProductResponse: toProductResponse(d.Product),
		Sizes:           make([]SizeResponse, 0, len(d.Sizes)),
	}
	for i := range d.Sizes {
		s := &d.Sizes[i]
		res.Sizes = append(res.Sizes, SizeResponse{
			ID:             s.ID,
			SizeName:       s.SizeName,
			PriceModifier:  money(s.PriceModifier),
			EffectivePrice: money(domain.EffectivePrice(d.Product, s)),
			Stock:          s.Stock,
		})
	}
	return res
}

func toCartResponse(v *usecase.CartView) CartResponse {
	res := CartResponse{
		Lines:     make([]CartLineResponse, 0, len(v.Lines)),
		Subtotal:  money(v.Subtotal),
		ItemCount: v.ItemCount,
	}
	for _, l := range v.Lines {
		res.Lines = append(res.Lines, CartLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			ImageURL:    l.ImageURL,
			SizeID:      l.SizeID,
			SizeLabel:   l.SizeLabel,
			Quantity:    l.Quantity,
			UnitPrice:   money(l.UnitPrice),
			LineTotal:   money(l.LineTotal),
		})
	}
	return res
}

func toOrderResponse(h domain.OrderHeader, items []domain.OrderLineItem) OrderResponse {
	res := OrderResponse{
		ID:              h.ID,
		Number:          h.ShortID(),
		Total:           money(h.Total),
		Status:          h.Status.String(),
		StatusLabel:     h.Status.Label(),
		Progress:        h.Status.Progress(),
		ShippingAddress: h.ShippingAddress,
		Phone:           h.Phone,
		CreatedAt:       h.CreatedAt,
	}
	for _, it := range items {
		res.Items = append(res.Items, OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SizeLabel:   it.SizeLabel,
			Quantity:    it.Quantity,
			UnitPrice:   money(it.UnitPrice),
		})
	}
	return res
}

func toOrderResponses(views []usecase.OrderView) []OrderResponse {
	res := make([]OrderResponse, 0, len(views))
	for _, v := range views {
		res = append(res, toOrderResponse(v.Header, v.Items))
	}
	return res
}

func toProfileResponse(p *domain.CustomerProfile) ProfileResponse {
	return ProfileResponse{
		ID:         p.ID,
		Email:      p.Email,
		FullName:   p.FullName,
		Phone:      p.Phone,
		Address:    p.Address,
		City:       p.City,
		PostalCode: p.PostalCode,
	}
}

func (r CheckoutRequest) toShipping() domain.ShippingDetails {
	return domain.ShippingDetails{
		FullName:   r.FullName,
		Phone:      r.Phone,
		Address:    r.Address,
		City:       r.City,
		PostalCode: r.PostalCode,
	}
}

func (r UpdateProfileRequest) toUpdate() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FullName:   r.FullName,
		Phone:      r.Phone,
		Address:    r.Address,
		City:       r.City,
		PostalCode: r.PostalCode,
	}
}
