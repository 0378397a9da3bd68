package usecase

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/google/uuid"
)

// MockCartStorage хранит корзины в памяти и считает записи.
type MockCartStorage struct {
	mu      sync.Mutex
	data    map[string][]byte
	Writes  int
	LoadErr error
	SaveErr error
}

func NewMockCartStorage() *MockCartStorage {
	return &MockCartStorage{data: map[string][]byte{}}
}

func (m *MockCartStorage) LoadCart(_ context.Context, sessionID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.data[sessionID], nil
}

func (m *MockCartStorage) SaveCart(_ context.Context, sessionID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Writes++
	m.data[sessionID] = slices.Clone(data)
	return nil
}

func (m *MockCartStorage) DeleteCart(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Writes++
	delete(m.data, sessionID)
	return nil
}

func (m *MockCartStorage) Raw(sessionID string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[sessionID]
}

func (m *MockCartStorage) Put(sessionID string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sessionID] = data
}

// MockProductRepository — каталог в памяти.
type MockProductRepository struct {
	Products map[uuid.UUID]domain.ProductDetails
	Listed   []domain.ProductFilter
	Err      error
	GetCalls int
}

func NewMockProductRepository(products ...domain.ProductDetails) *MockProductRepository {
	m := &MockProductRepository{Products: map[uuid.UUID]domain.ProductDetails{}}
	for _, p := range products {
		m.Products[p.Product.ID] = p
	}
	return m
}

func (m *MockProductRepository) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	m.Listed = append(m.Listed, filter)
	if m.Err != nil {
		return nil, m.Err
	}

	res := make([]domain.Product, 0, len(m.Products))
	for _, p := range m.Products {
		if p.Product.Available {
			res = append(res, p.Product)
		}
	}
	return res, nil
}

func (m *MockProductRepository) GetDetails(_ context.Context, id uuid.UUID) (*domain.ProductDetails, error) {
	m.GetCalls++
	if m.Err != nil {
		return nil, m.Err
	}

	p, ok := m.Products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}
	return &p, nil
}

func (m *MockProductRepository) GetDetailsByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.ProductDetails, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	res := make(map[uuid.UUID]domain.ProductDetails, len(ids))
	for _, id := range ids {
		if p, ok := m.Products[id]; ok {
			res[id] = p
		}
	}
	return res, nil
}

// MockProductCache — кэш товаров в памяти.
type MockProductCache struct {
	mu       sync.Mutex
	products map[uuid.UUID]domain.ProductDetails
	GetErr   error
	SetErr   error
	setCh    chan uuid.UUID
}

func NewMockProductCache() *MockProductCache {
	return &MockProductCache{
		products: map[uuid.UUID]domain.ProductDetails{},
		setCh:    make(chan uuid.UUID, 16),
	}
}

func (m *MockProductCache) GetProduct(_ context.Context, id uuid.UUID) (*domain.ProductDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	p, ok := m.products[id]
	if !ok {
		return nil, e.ErrCacheMiss
	}
	return &p, nil
}

func (m *MockProductCache) SetProduct(ctx context.Context, product *domain.ProductDetails) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	m.products[product.Product.ID] = *product
	m.mu.Unlock()

	m.setCh <- product.Product.ID
	return nil
}

func (m *MockProductCache) DeleteProducts(_ context.Context, ids []uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		delete(m.products, id)
	}
	return nil
}

// MockCategoryRepository возвращает заданный список.
type MockCategoryRepository struct {
	Categories []domain.Category
	Err        error
}

func (m *MockCategoryRepository) List(_ context.Context) ([]domain.Category, error) {
	return m.Categories, m.Err
}

// MockProfileRepository — профили в памяти.
type MockProfileRepository struct {
	Profiles map[uuid.UUID]domain.CustomerProfile
	Err      error
}

func NewMockProfileRepository(profiles ...domain.CustomerProfile) *MockProfileRepository {
	m := &MockProfileRepository{Profiles: map[uuid.UUID]domain.CustomerProfile{}}
	for _, p := range profiles {
		m.Profiles[p.ID] = p
	}
	return m
}

func (m *MockProfileRepository) Get(_ context.Context, customerID uuid.UUID) (*domain.CustomerProfile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Profiles[customerID]
	if !ok {
		return nil, e.ErrProfileNotFound
	}
	return &p, nil
}

func (m *MockProfileRepository) Update(_ context.Context, customerID uuid.UUID, upd domain.ProfileUpdate) (*domain.CustomerProfile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Profiles[customerID]
	if !ok {
		return nil, e.ErrProfileNotFound
	}
	p.FullName, p.Phone, p.Address, p.City, p.PostalCode = upd.FullName, upd.Phone, upd.Address, upd.City, upd.PostalCode
	m.Profiles[customerID] = p
	return &p, nil
}

// MockOrderRepository хранит заказы в памяти; снимок состояния откатывается MockTxManager.
type MockOrderRepository struct {
	Headers map[uuid.UUID]domain.OrderHeader
	Items   map[uuid.UUID][]domain.OrderLineItem
	Orphans []domain.OrderHeader
	Writes  int

	HeaderErr    error
	ItemsErr     error
	StatusErr    error
	OrphanCutoff time.Time
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		Headers: map[uuid.UUID]domain.OrderHeader{},
		Items:   map[uuid.UUID][]domain.OrderLineItem{},
	}
}

func (m *MockOrderRepository) CreateHeader(_ context.Context, header *domain.OrderHeader) (*domain.OrderHeader, error) {
	if m.HeaderErr != nil {
		return nil, m.HeaderErr
	}
	m.Writes++
	h := *header
	h.CreatedAt = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	h.UpdatedAt = h.CreatedAt
	m.Headers[h.ID] = h
	return &h, nil
}

func (m *MockOrderRepository) CreateItems(_ context.Context, items []domain.OrderLineItem) error {
	if m.ItemsErr != nil {
		return m.ItemsErr
	}
	for _, it := range items {
		m.Writes++
		m.Items[it.OrderID] = append(m.Items[it.OrderID], it)
	}
	return nil
}

func (m *MockOrderRepository) GetHeader(_ context.Context, id uuid.UUID) (*domain.OrderHeader, error) {
	h, ok := m.Headers[id]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	return &h, nil
}

func (m *MockOrderRepository) LockHeader(ctx context.Context, id uuid.UUID) (*domain.OrderHeader, error) {
	return m.GetHeader(ctx, id)
}

func (m *MockOrderRepository) ListItems(_ context.Context, orderID uuid.UUID) ([]domain.OrderLineItem, error) {
	return m.Items[orderID], nil
}

func (m *MockOrderRepository) ListItemsByOrders(_ context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderLineItem, error) {
	res := make(map[uuid.UUID][]domain.OrderLineItem, len(orderIDs))
	for _, id := range orderIDs {
		res[id] = m.Items[id]
	}
	return res, nil
}

func (m *MockOrderRepository) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]domain.OrderHeader, error) {
	var res []domain.OrderHeader
	for _, h := range m.Headers {
		if h.CustomerID == customerID {
			res = append(res, h)
		}
	}
	slices.SortFunc(res, func(a, b domain.OrderHeader) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return res, nil
}

func (m *MockOrderRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.OrderHeader, error) {
	if m.StatusErr != nil {
		return nil, m.StatusErr
	}
	h, ok := m.Headers[id]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	m.Writes++
	h.Status = status
	m.Headers[id] = h
	return &h, nil
}

func (m *MockOrderRepository) FindOrphans(_ context.Context, createdBefore time.Time, limit int) ([]domain.OrderHeader, error) {
	m.OrphanCutoff = createdBefore
	if len(m.Orphans) > limit {
		return m.Orphans[:limit], nil
	}
	return m.Orphans, nil
}

func (m *MockOrderRepository) snapshot() func() {
	headers := maps.Clone(m.Headers)
	items := maps.Clone(m.Items)
	writes := m.Writes
	return func() {
		m.Headers, m.Items, m.Writes = headers, items, writes
	}
}

// MockOutboxRepository собирает записанные события.
type MockOutboxRepository struct {
	Events []*OutboxEvent
	Err    error
}

func (m *MockOutboxRepository) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	ev := *event
	ev.ID = int64(len(m.Events) + 1)
	m.Events = append(m.Events, &ev)
	return &ev, nil
}

func (m *MockOutboxRepository) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (m *MockOutboxRepository) MarkAsProcessed(context.Context, int64) error { return nil }

func (m *MockOutboxRepository) ReleaseStale(context.Context, time.Duration) (int64, error) {
	return 0, nil
}

func (m *MockOutboxRepository) snapshot() func() {
	events := slices.Clone(m.Events)
	return func() { m.Events = events }
}

// MockTxManager выполняет fn и при ошибке откатывает состояние зарегистрированных хранилищ.
type MockTxManager struct {
	Participants []interface{ snapshot() func() }
	Calls        int
	CommitErr    error
}

func (m *MockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++

	restores := make([]func(), 0, len(m.Participants))
	for _, p := range m.Participants {
		restores = append(restores, p.snapshot())
	}

	err := fn(ctx)
	if err == nil {
		err = m.CommitErr
	}
	if err != nil {
		for _, restore := range restores {
			restore()
		}
	}
	return err
}

// jsonCodec — простой кодек событий для тестов.
type jsonCodec struct{}

func (jsonCodec) Encode(event *OrderEvent) ([]byte, error) { return json.Marshal(event) }

func (jsonCodec) Decode(data []byte) (*OrderEvent, error) {
	var ev OrderEvent
	err := json.Unmarshal(data, &ev)
	return &ev, err
}

// MockMailer запоминает отправленные письма.
type MockMailer struct {
	Sent []*Notification
	Err  error
}

func (m *MockMailer) Send(_ context.Context, n *Notification) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, n)
	return nil
}

// MockArchive запоминает архивированные письма.
type MockArchive struct {
	Stored []*Notification
	Err    error
}

func (m *MockArchive) Store(_ context.Context, n *Notification) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Stored = append(m.Stored, n)
	return "orders/" + n.OrderID.String() + "/" + n.EventID.String() + ".html", nil
}
