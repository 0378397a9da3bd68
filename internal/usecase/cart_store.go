package usecase

import (
	"context"
	"encoding/json"
	"math"
	"slices"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxLineQuantity — предел количества в одной строке; совпадает с INTEGER в order_items.
const MaxLineQuantity = math.MaxInt32

// CartStore — корзина одной сессии покупателя.
// Открывается на время запроса через OpenCartStore; каждая мутация
// сохраняет коллекцию целиком. Одновременные записи из разных вкладок
// не объединяются: побеждает последняя.
type CartStore struct {
	sessionID string
	storage   CartStorage
	logger    logger.Logger
	lines     []domain.CartLine
}

// OpenCartStore загружает сохранённую корзину сессии.
// Повреждённые данные логируются и дают пустую корзину; ошибка чтения хранилища возвращается.
func OpenCartStore(ctx context.Context, sessionID string, storage CartStorage, logger logger.Logger) (*CartStore, error) {
	const op = "OpenCartStore"

	s := &CartStore{
		sessionID: sessionID,
		storage:   storage,
		logger:    logger,
	}

	data, err := storage.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, e.Persistence(err))
	}
	if len(data) == 0 {
		return s, nil
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Warnf("Failed to parse persisted cart, starting empty. session: %s, error: %v", sessionID, e.Wrap(op, err))
		return s, nil
	}

	s.lines = slices.DeleteFunc(lines, func(l domain.CartLine) bool { return l.Quantity < 1 || l.Quantity > MaxLineQuantity })

	return s, nil
}

// AddItem добавляет товар или увеличивает количество существующей строки.
func (s *CartStore) AddItem(ctx context.Context, product domain.Product, size *domain.ProductSize, qty int) error {
	const op = "CartStore.AddItem"

	if qty < 1 || qty > MaxLineQuantity {
		return e.Wrap(op, e.ErrInvalidQuantity)
	}
	if size != nil && size.ProductID != product.ID {
		return e.Wrap(op, e.ErrSizeMismatch)
	}

	line := domain.CartLine{Product: product, Size: size, Quantity: qty}
	if i := s.indexOf(line.Key()); i >= 0 && s.lines[i].Quantity > MaxLineQuantity-qty {
		return e.Wrap(op, e.ErrInvalidQuantity)
	}

	return s.mutate(ctx, op, func() bool {
		if i := s.indexOf(line.Key()); i >= 0 {
			s.lines[i].Quantity += qty
			return true
		}
		s.lines = append(s.lines, line)
		return true
	})
}

// RemoveItem удаляет строку; отсутствие строки не ошибка.
func (s *CartStore) RemoveItem(ctx context.Context, productID uuid.UUID, sizeID *uuid.UUID) error {
	const op = "CartStore.RemoveItem"

	return s.mutate(ctx, op, func() bool {
		i := s.indexOf(domain.NewLineKey(productID, sizeID))
		if i < 0 {
			return false
		}
		s.lines = slices.Delete(s.lines, i, i+1)
		return true
	})
}

// UpdateQuantity заменяет количество строки; qty ≤ 0 удаляет строку.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID uuid.UUID, qty int, sizeID *uuid.UUID) error {
	if qty <= 0 {
		return s.RemoveItem(ctx, productID, sizeID)
	}

	const op = "CartStore.UpdateQuantity"

	if qty > MaxLineQuantity {
		return e.Wrap(op, e.ErrInvalidQuantity)
	}

	return s.mutate(ctx, op, func() bool {
		i := s.indexOf(domain.NewLineKey(productID, sizeID))
		if i < 0 {
			return false
		}
		s.lines[i].Quantity = qty
		return true
	})
}

// Clear очищает корзину и удаляет сохранённое состояние.
func (s *CartStore) Clear(ctx context.Context) error {
	const op = "CartStore.Clear"

	if err := s.storage.DeleteCart(ctx, s.sessionID); err != nil {
		return e.Wrap(op, e.Persistence(err))
	}
	s.lines = nil

	return nil
}

// Lines возвращает копию строк в порядке добавления.
func (s *CartStore) Lines() []domain.CartLine {
	return slices.Clone(s.lines)
}

func (s *CartStore) Len() int {
	return len(s.lines)
}

// Subtotal — сумма стоимостей строк, без округления.
func (s *CartStore) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.LineTotal())
	}

	return total
}

// ItemCount — общее количество единиц товара.
func (s *CartStore) ItemCount() int {
	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}

	return count
}

func (s *CartStore) indexOf(key domain.LineKey) int {
	return slices.IndexFunc(s.lines, func(l domain.CartLine) bool { return l.Key() == key })
}

// mutate применяет изменение и сохраняет корзину; при ошибке записи состояние откатывается.
func (s *CartStore) mutate(ctx context.Context, op string, apply func() bool) error {
	snapshot := slices.Clone(s.lines)
	if !apply() {
		return nil
	}

	if err := s.persist(ctx); err != nil {
		s.lines = snapshot
		return e.Wrap(op, e.Persistence(err))
	}

	return nil
}

func (s *CartStore) persist(ctx context.Context) error {
	if len(s.lines) == 0 {
		return s.storage.DeleteCart(ctx, s.sessionID)
	}

	data, err := json.Marshal(s.lines)
	if err != nil {
		return err
	}

	return s.storage.SaveCart(ctx, s.sessionID, data)
}
