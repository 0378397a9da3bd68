package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// noSizeKey — часть ключа строки корзины для товара без размера
const noSizeKey = "none"

// CartLine — строка корзины: товар, необязательный размер и количество (≥ 1).
// Хранится целиком, так как корзина сохраняется вместе со снимком товара.
type CartLine struct {
	Product  Product      `json:"product"`
	Size     *ProductSize `json:"size,omitempty"`
	Quantity int          `json:"quantity"`
}

// LineKey — ключ уникальности строки корзины.
type LineKey struct {
	ProductID uuid.UUID
	SizeID    string
}

// NewLineKey строит ключ по товару и необязательному размеру.
func NewLineKey(productID uuid.UUID, sizeID *uuid.UUID) LineKey {
	if sizeID == nil {
		return LineKey{ProductID: productID, SizeID: noSizeKey}
	}

	return LineKey{ProductID: productID, SizeID: sizeID.String()}
}

// Key возвращает ключ уникальности строки.
func (l CartLine) Key() LineKey {
	if l.Size == nil {
		return NewLineKey(l.Product.ID, nil)
	}

	return NewLineKey(l.Product.ID, &l.Size.ID)
}

// UnitPrice — эффективная цена единицы.
func (l CartLine) UnitPrice() decimal.Decimal {
	return EffectivePrice(l.Product, l.Size)
}

// LineTotal — стоимость строки.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SizeLabel возвращает название размера или пустую строку.
func (l CartLine) SizeLabel() string {
	if l.Size == nil {
		return ""
	}

	return l.Size.SizeName
}
