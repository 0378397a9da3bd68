package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product описывает товар каталога. В рамках сессии корзины товар неизменяем.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"base_price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Stock       *int32          `json:"stock,omitempty"`
	Available   bool            `json:"available"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductSize — вариант товара по размеру. Модификатор цены может быть отрицательным.
type ProductSize struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	SizeName      string          `json:"size_name"`
	PriceModifier decimal.Decimal `json:"price_modifier"`
	Stock         int32           `json:"stock"`
}

// ProductDetails — товар вместе с его размерами.
type ProductDetails struct {
	Product Product       `json:"product"`
	Sizes   []ProductSize `json:"sizes"`
}

// FindSize ищет размер товара по идентификатору.
func (d *ProductDetails) FindSize(id uuid.UUID) (*ProductSize, bool) {
	for i := range d.Sizes {
		if d.Sizes[i].ID == id {
			return &d.Sizes[i], true
		}
	}

	return nil, false
}

// HasSizes сообщает, продаётся ли товар только с выбором размера.
func (d *ProductDetails) HasSizes() bool {
	return len(d.Sizes) > 0
}

// ProductSort — порядок сортировки каталога.
type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceLow  ProductSort = "price_low"
	SortPriceHigh ProductSort = "price_high"
	SortName      ProductSort = "name"
)

// ProductFilter — параметры выборки каталога. Всегда возвращаются только доступные товары.
type ProductFilter struct {
	CategoryID *uuid.UUID
	Search     string
	Sort       ProductSort
}
