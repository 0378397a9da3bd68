package domain

// OrderStatus — код статуса заказа. Известные значения перечислены ниже;
// любой другой код считается неизвестным (IsKnown == false) и сохраняется как есть,
// чтобы новые статусы внешнего процесса не ломали отображение.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type statusInfo struct {
	label    string
	progress int
	next     OrderStatus
}

var statuses = map[OrderStatus]statusInfo{
	OrderStatusPending:    {label: "Pending", progress: 25, next: OrderStatusProcessing},
	OrderStatusProcessing: {label: "Processing", progress: 50, next: OrderStatusShipped},
	OrderStatusShipped:    {label: "Shipped", progress: 75, next: OrderStatusDelivered},
	OrderStatusDelivered:  {label: "Delivered", progress: 100},
	OrderStatusCancelled:  {label: "Cancelled", progress: 0},
}

// ParseOrderStatus приводит строку к OrderStatus. ok == false для неизвестных кодов.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(raw)
	return s, s.IsKnown()
}

// IsKnown сообщает, входит ли статус в известное перечисление.
func (s OrderStatus) IsKnown() bool {
	_, ok := statuses[s]
	return ok
}

// IsTerminal — из delivered и cancelled переходов нет.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo проверяет переход по линейному жизненному циклу:
// pending → processing → shipped → delivered, cancelled из любого нетерминального.
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	if !s.IsKnown() || !to.IsKnown() || s.IsTerminal() {
		return false
	}

	if to == OrderStatusCancelled {
		return true
	}

	return statuses[s].next == to
}

// Label возвращает отображаемое название статуса; для неизвестного кода — сам код.
func (s OrderStatus) Label() string {
	if info, ok := statuses[s]; ok {
		return info.label
	}

	return string(s)
}

// Progress возвращает процент выполнения для прогресс-бара; 0 для cancelled и неизвестных.
func (s OrderStatus) Progress() int {
	return statuses[s].progress
}

func (s OrderStatus) String() string {
	return string(s)
}
