package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Фазы оформления заказа, пишутся в лог.
const (
	phaseValidating = "validating"
	phaseSubmitting = "submitting"
	phaseSucceeded  = "succeeded"
	phaseFailed     = "failed"
)

const (
	DefaultOrphanAge   = 15 * time.Minute
	DefaultOrphanBatch = 100
)

// CartOpener открывает корзину сессии.
type CartOpener interface {
	OpenStore(ctx context.Context, sessionID string) (*CartStore, error)
}

// ShippingPrefiller дополняет данные доставки из профиля покупателя.
type ShippingPrefiller interface {
	ShippingFromProfile(ctx context.Context, customerID uuid.UUID, shipping domain.ShippingDetails) (domain.ShippingDetails, error)
}

// OrderUseCase собирает заказы из корзины, отдаёт историю заказов и
// принимает смену статуса от процесса исполнения.
type OrderUseCase struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	outboxRepo  OutboxRepository
	txManager   TxManager
	codec       OrderEventCodec
	carts       CartOpener
	prefiller   ShippingPrefiller
	logger      logger.Logger

	orphanAge   time.Duration
	orphanBatch int
	now         func() time.Time
}

type OrderUCOption func(*OrderUseCase)

// WithOrphanPolicy задаёт возраст, после которого заказ без позиций считается осиротевшим, и размер пачки.
func WithOrphanPolicy(age time.Duration, batch int) OrderUCOption {
	return func(o *OrderUseCase) {
		if age > 0 {
			o.orphanAge = age
		}
		if batch > 0 {
			o.orphanBatch = batch
		}
	}
}

func NewOrderUC(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	txManager TxManager,
	codec OrderEventCodec,
	carts CartOpener,
	prefiller ShippingPrefiller,
	logger logger.Logger,
	opts ...OrderUCOption,
) *OrderUseCase {
	o := &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		codec:       codec,
		carts:       carts,
		prefiller:   prefiller,
		logger:      logger,
		orphanAge:   DefaultOrphanAge,
		orphanBatch: DefaultOrphanBatch,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Checkout оформляет корзину сессии: дополняет доставку из профиля и вызывает PlaceOrder.
// Возвращает заказ вместе с записанными позициями.
func (o *OrderUseCase) Checkout(ctx context.Context, req *CheckoutReq) (*OrderView, error) {
	const op = "OrderUseCase.Checkout"

	store, err := o.carts.OpenStore(ctx, req.SessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	shipping, err := o.prefiller.ShippingFromProfile(ctx, req.CustomerID, req.Shipping)
	if err != nil {
		o.logger.Warnf("Failed to prefill shipping from profile: %v", e.Wrap(op, err))
		shipping = req.Shipping
	}

	header, items, err := o.placeOrder(ctx, &PlaceOrderReq{
		CustomerID: req.CustomerID,
		Cart:       store,
		Shipping:   shipping,
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	view := NewOrderView(*header, items)
	return &view, nil
}

// PlaceOrder превращает корзину в заказ: заголовок, позиции и событие outbox пишутся
// одной транзакцией. Цены строк перечитываются из каталога, итог равен их сумме.
// Корзина очищается только после успешной фиксации.
func (o *OrderUseCase) PlaceOrder(ctx context.Context, req *PlaceOrderReq) (*domain.OrderHeader, error) {
	header, _, err := o.placeOrder(ctx, req)
	return header, err
}

func (o *OrderUseCase) placeOrder(ctx context.Context, req *PlaceOrderReq) (*domain.OrderHeader, []domain.OrderLineItem, error) {
	const op = "OrderUseCase.PlaceOrder"

	o.logPhase(phaseValidating, req.CustomerID, nil)
	if err := validatePlaceOrder(req); err != nil {
		o.logPhase(phaseFailed, req.CustomerID, err)
		return nil, nil, e.Wrap(op, err)
	}

	o.logPhase(phaseSubmitting, req.CustomerID, nil)

	var (
		header *domain.OrderHeader
		placed []domain.OrderLineItem
	)
	err := o.txManager.Do(ctx, func(ctx context.Context) error {
		lines, err := o.refreshLines(ctx, req.Cart.Lines())
		if err != nil {
			return err
		}

		total := decimal.Zero
		for _, l := range lines {
			total = total.Add(l.LineTotal())
		}

		created, err := o.orderRepo.CreateHeader(ctx, domain.NewPendingOrder(req.CustomerID, total, req.Shipping))
		if err != nil {
			return err
		}

		items := make([]domain.OrderLineItem, 0, len(lines))
		for _, l := range lines {
			items = append(items, domain.NewLineItem(created.ID, l))
		}
		if err := o.orderRepo.CreateItems(ctx, items); err != nil {
			return err
		}

		if err := o.writeEvent(ctx, EventOrderCreated, created, ""); err != nil {
			return err
		}

		header, placed = created, items
		return nil
	})
	if err != nil {
		if !errors.Is(err, e.ErrCheckoutBlocked) {
			err = e.Persistence(err)
		}
		o.logPhase(phaseFailed, req.CustomerID, err)
		return nil, nil, e.Wrap(op, err)
	}

	// Заказ уже зафиксирован: ошибка очистки корзины не отменяет его
	if err := req.Cart.Clear(ctx); err != nil {
		o.logger.Warnf("Order %s placed but cart was not cleared: %v", header.ID, e.Wrap(op, err))
	}

	o.logPhase(phaseSucceeded, req.CustomerID, nil)
	o.logger.Infof("Order placed. order_id: %s, customer_id: %s, total: %s", header.ID, header.CustomerID, header.Total)

	return header, placed, nil
}

// ListOrders возвращает заказы покупателя, новые первыми.
func (o *OrderUseCase) ListOrders(ctx context.Context, customerID uuid.UUID) ([]OrderView, error) {
	const op = "OrderUseCase.ListOrders"

	if customerID == uuid.Nil {
		return nil, e.Wrap(op, e.ErrUnauthorized)
	}

	headers, err := o.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(headers) == 0 {
		return []OrderView{}, nil
	}

	ids := make([]uuid.UUID, 0, len(headers))
	for _, h := range headers {
		ids = append(ids, h.ID)
	}

	items, err := o.orderRepo.ListItemsByOrders(ctx, ids)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	views := make([]OrderView, 0, len(headers))
	for _, h := range headers {
		views = append(views, NewOrderView(h, items[h.ID]))
	}

	return views, nil
}

// GetOrder возвращает заказ покупателя; чужой заказ неотличим от несуществующего.
func (o *OrderUseCase) GetOrder(ctx context.Context, customerID, orderID uuid.UUID) (*OrderView, error) {
	const op = "OrderUseCase.GetOrder"

	if customerID == uuid.Nil {
		return nil, e.Wrap(op, e.ErrUnauthorized)
	}

	header, err := o.orderRepo.GetHeader(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if header.CustomerID != customerID {
		return nil, e.Wrap(op, e.ErrOrderNotFound)
	}

	items, err := o.orderRepo.ListItems(ctx, orderID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	view := NewOrderView(*header, items)
	return &view, nil
}

// UpdateStatus переводит заказ в новый статус по жизненному циклу.
// Повторная установка текущего статуса ничего не меняет и событий не порождает.
func (o *OrderUseCase) UpdateStatus(ctx context.Context, req *UpdateStatusReq) (*domain.OrderHeader, error) {
	const op = "OrderUseCase.UpdateStatus"

	status, ok := domain.ParseOrderStatus(strings.TrimSpace(strings.ToLower(req.Status)))
	if !ok {
		return nil, e.Wrap(op, e.ErrUnknownOrderStatus)
	}

	var updated *domain.OrderHeader
	err := o.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := o.orderRepo.LockHeader(ctx, req.OrderID)
		if err != nil {
			return err
		}

		if current.Status == status {
			updated = current
			return nil
		}
		if !current.Status.CanTransitionTo(status) {
			return e.ErrIllegalStatusTransition
		}

		updated, err = o.orderRepo.UpdateStatus(ctx, req.OrderID, status)
		if err != nil {
			return err
		}

		return o.writeEvent(ctx, EventOrderStatusChanged, updated, current.Status)
	})
	if err != nil {
		if !errors.Is(err, e.ErrIllegalStatusTransition) && !errors.Is(err, e.ErrOrderNotFound) {
			err = e.Persistence(err)
		}
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// SweepOrphans отменяет заголовки заказов без позиций, созданные раньше порога.
func (o *OrderUseCase) SweepOrphans(ctx context.Context) (int, error) {
	const op = "OrderUseCase.SweepOrphans"

	orphans, err := o.orderRepo.FindOrphans(ctx, o.now().Add(-o.orphanAge), o.orphanBatch)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	cancelled := 0
	for _, h := range orphans {
		if !h.Status.CanTransitionTo(domain.OrderStatusCancelled) {
			continue
		}

		o.logger.Warnf("Cancelling orphan order without items. order_id: %s, created_at: %s", h.ID, h.CreatedAt)

		_, err := o.UpdateStatus(ctx, &UpdateStatusReq{OrderID: h.ID, Status: domain.OrderStatusCancelled.String()})
		if err != nil {
			o.logger.Errorf(err, "Failed to cancel orphan order %s", h.ID)
			continue
		}
		cancelled++
	}

	return cancelled, nil
}

// refreshLines перечитывает товары и размеры строк из каталога.
func (o *OrderUseCase) refreshLines(ctx context.Context, lines []domain.CartLine) ([]domain.CartLine, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.Product.ID]; ok {
			continue
		}
		seen[l.Product.ID] = struct{}{}
		ids = append(ids, l.Product.ID)
	}

	catalog, err := o.productRepo.GetDetailsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	refreshed := make([]domain.CartLine, 0, len(lines))
	for _, l := range lines {
		details, ok := catalog[l.Product.ID]
		if !ok || !details.Product.Available {
			return nil, e.LineUnavailable(l.Product.Name, "is no longer available")
		}

		var size *domain.ProductSize
		switch {
		case l.Size != nil:
			s, ok := details.FindSize(l.Size.ID)
			if !ok {
				return nil, e.LineUnavailable(l.Product.Name, "size "+l.Size.SizeName+" is no longer offered")
			}
			size = s
		case details.HasSizes():
			return nil, e.LineUnavailable(l.Product.Name, "requires a size")
		}

		refreshed = append(refreshed, domain.CartLine{
			Product:  details.Product,
			Size:     size,
			Quantity: l.Quantity,
		})
	}

	return refreshed, nil
}

func (o *OrderUseCase) writeEvent(ctx context.Context, eventType OutboxEventType, header *domain.OrderHeader, previous domain.OrderStatus) error {
	event := NewOrderEvent(eventType, header, previous)

	payload, err := o.codec.Encode(event)
	if err != nil {
		return err
	}

	_, err = o.outboxRepo.Create(ctx, NewOutboxEvent(event, payload))
	return err
}

func (o *OrderUseCase) logPhase(phase string, customerID uuid.UUID, err error) {
	if err != nil {
		o.logger.Warnf("Checkout phase: %s, customer_id: %s, error: %v", phase, customerID, err)
		return
	}

	o.logger.Debugf("Checkout phase: %s, customer_id: %s", phase, customerID)
}

// validatePlaceOrder проверяет предусловия в фиксированном порядке: покупатель, корзина, телефон, адрес, город.
func validatePlaceOrder(req *PlaceOrderReq) error {
	if req.CustomerID == uuid.Nil {
		return e.CheckoutBlocked("customer")
	}
	if req.Cart == nil || req.Cart.Len() == 0 {
		return e.CheckoutBlocked("cart")
	}
	if strings.TrimSpace(req.Shipping.Phone) == "" {
		return e.CheckoutBlocked("phone")
	}
	if strings.TrimSpace(req.Shipping.Address) == "" {
		return e.CheckoutBlocked("address")
	}
	if strings.TrimSpace(req.Shipping.City) == "" {
		return e.CheckoutBlocked("city")
	}

	return nil
}
