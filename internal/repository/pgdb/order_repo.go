package pgdb

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const (
	orderColumns     = `id, customer_id, total, status, shipping_address, phone, created_at, updated_at`
	orderItemColumns = `id, order_id, product_id, product_name, size_label, quantity, unit_price, created_at`
)

// OrderRepo реализует репозиторий заказов и их позиций поверх PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
	conv converter.OrderConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter) *OrderRepo {
	return &OrderRepo{pool: pool, conv: conv}
}

// CreateHeader вставляет заголовок заказа и возвращает его с временем создания из БД.
func (o *OrderRepo) CreateHeader(ctx context.Context, header *domain.OrderHeader) (*domain.OrderHeader, error) {
	model := o.conv.ToModel(header)
	query := `
		INSERT INTO online_orders (id, customer_id, total, status, shipping_address, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + orderColumns + `;
	`

	row := tr.Conn(ctx, o.pool).QueryRow(ctx, query,
		model.ID, model.CustomerID, model.Total, model.Status, model.ShippingAddress, model.Phone,
	)

	created, err := scanOrder(row)
	if err != nil {
		if postgresDuplicate(err) {
			return nil, fmt.Errorf("%s: order with id %s already exists", whereami.WhereAmI(), header.ID)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return o.conv.ToEntity(created), nil
}

// CreateItems вставляет позиции заказа одним пакетом; line_no сохраняет порядок строк корзины.
func (o *OrderRepo) CreateItems(ctx context.Context, items []domain.OrderLineItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items_online (id, order_id, product_id, product_name, size_label, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	batch := &pgx.Batch{}
	for i := range items {
		m := o.conv.ItemToModel(&items[i])
		batch.Queue(query, m.ID, m.OrderID, m.ProductID, m.ProductName, m.SizeLabel, m.Quantity, m.UnitPrice)
	}

	results := tr.Conn(ctx, o.pool).SendBatch(ctx, batch)
	for range items {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	if err := results.Close(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (o *OrderRepo) GetHeader(ctx context.Context, id uuid.UUID) (*domain.OrderHeader, error) {
	query := `SELECT ` + orderColumns + ` FROM online_orders WHERE id = $1;`

	model, err := scanOrder(tr.Conn(ctx, o.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), notFound(err, e.ErrOrderNotFound))
	}

	return o.conv.ToEntity(model), nil
}

// LockHeader читает заголовок с блокировкой строки до конца транзакции.
func (o *OrderRepo) LockHeader(ctx context.Context, id uuid.UUID) (*domain.OrderHeader, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `SELECT ` + orderColumns + ` FROM online_orders WHERE id = $1 FOR UPDATE;`

	model, err := scanOrder(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), notFound(err, e.ErrOrderNotFound))
	}

	return o.conv.ToEntity(model), nil
}

func (o *OrderRepo) ListItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderLineItem, error) {
	items, err := o.ListItemsByOrders(ctx, []uuid.UUID{orderID})
	if err != nil {
		return nil, err
	}

	return items[orderID], nil
}

// ListItemsByOrders возвращает позиции нескольких заказов, сгруппированные по заказу.
func (o *OrderRepo) ListItemsByOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderLineItem, error) {
	query := `
		SELECT ` + orderItemColumns + `
		FROM order_items_online
		WHERE order_id = ANY($1)
		ORDER BY order_id, line_no;
	`

	rows, err := tr.Conn(ctx, o.pool).Query(ctx, query, orderIDs)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]domain.OrderLineItem, len(orderIDs))
	for rows.Next() {
		var m converter.OrderItemModel
		if err := rows.Scan(
			&m.ID, &m.OrderID, &m.ProductID, &m.ProductName,
			&m.SizeLabel, &m.Quantity, &m.UnitPrice, &m.CreatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result[m.OrderID] = append(result[m.OrderID], o.conv.ItemToEntity(&m))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// ListByCustomer возвращает заказы покупателя, новые первыми.
func (o *OrderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.OrderHeader, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM online_orders
		WHERE customer_id = $1
		ORDER BY created_at DESC;
	`

	return o.queryHeaders(ctx, query, customerID)
}

func (o *OrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.OrderHeader, error) {
	query := `
		UPDATE online_orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + orderColumns + `;
	`

	model, err := scanOrder(tr.Conn(ctx, o.pool).QueryRow(ctx, query, id, status.String()))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), notFound(err, e.ErrOrderNotFound))
	}

	return o.conv.ToEntity(model), nil
}

// FindOrphans ищет заголовки без единой позиции, созданные до createdBefore.
func (o *OrderRepo) FindOrphans(ctx context.Context, createdBefore time.Time, limit int) ([]domain.OrderHeader, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM online_orders o
		WHERE o.created_at < $1
		  AND NOT EXISTS (SELECT 1 FROM order_items_online i WHERE i.order_id = o.id)
		ORDER BY o.created_at
		LIMIT $2;
	`

	return o.queryHeaders(ctx, query, createdBefore, limit)
}

func (o *OrderRepo) queryHeaders(ctx context.Context, query string, args ...any) ([]domain.OrderHeader, error) {
	rows, err := tr.Conn(ctx, o.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.OrderHeader, 0)
	for rows.Next() {
		model, err := scanOrder(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *o.conv.ToEntity(model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func scanOrder(row pgx.Row) (*converter.OrderModel, error) {
	var m converter.OrderModel
	if err := row.Scan(
		&m.ID, &m.CustomerID, &m.Total, &m.Status,
		&m.ShippingAddress, &m.Phone, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &m, nil
}
