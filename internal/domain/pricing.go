package domain

import "github.com/shopspring/decimal"

// EffectivePrice возвращает цену единицы товара с учётом размера.
// Принадлежность size к product здесь не проверяется, это делает корзина при добавлении.
// Результат не округляется и не ограничивается снизу.
func EffectivePrice(product Product, size *ProductSize) decimal.Decimal {
	if size == nil {
		return product.BasePrice
	}

	return product.BasePrice.Add(size.PriceModifier)
}
