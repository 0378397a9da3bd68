package pgdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	pg "github.com/DRSN-tech/storefront/pkg/postgres"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type testDB struct {
	db       *pg.PgDatabase
	products *ProductRepo
	cats     *CategoryRepo
	profiles *ProfileRepo
	orders   *OrderRepo
	outbox   *OutboxEventRepo
	trm      *manager.Manager
}

func setupTestDB(t *testing.T) *testDB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test requires docker")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := pg.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	migrations, err := filepath.Abs("../../../db/migrations")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(logger.Nop(), "file://"+migrations))

	return &testDB{
		db:       db,
		products: NewProductRepo(db.Pool, converter.ProductConv{}),
		cats:     NewCategoryRepo(db.Pool, converter.CategoryConv{}),
		profiles: NewProfileRepo(db.Pool, converter.ProfileConv{}),
		orders:   NewOrderRepo(db.Pool, converter.OrderConv{}),
		outbox:   NewOutboxEventRepo(db.Pool, converter.OutboxEventConv{}),
		trm:      manager.Must(trmpgx.NewDefaultFactory(db.Pool)),
	}
}

func (tdb *testDB) seedProduct(t *testing.T, name, price string, available bool, sizes ...string) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	var id uuid.UUID
	err := tdb.db.Pool.QueryRow(ctx,
		`INSERT INTO products (name, base_price, available) VALUES ($1, $2, $3) RETURNING id`,
		name, decimal.RequireFromString(price), available,
	).Scan(&id)
	require.NoError(t, err)

	for i := 0; i+1 < len(sizes); i += 2 {
		_, err := tdb.db.Pool.Exec(ctx,
			`INSERT INTO product_sizes (product_id, size_name, price_modifier) VALUES ($1, $2, $3)`,
			id, sizes[i], decimal.RequireFromString(sizes[i+1]),
		)
		require.NoError(t, err)
	}

	return id
}

func TestProductRepo_ListAndDetails(t *testing.T) {
	tdb := setupTestDB(t)
	ctx := context.Background()

	shirt := tdb.seedProduct(t, "Linen Shirt", "49.99", true, "M", "0", "XL", "5.50")
	tdb.seedProduct(t, "Wool Coat", "199.00", true)
	tdb.seedProduct(t, "Old Shirt", "5.00", false)

	list, err := tdb.products.List(ctx, domain.ProductFilter{Search: "shirt", Sort: domain.SortPriceLow})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, shirt, list[0].ID)

	all, err := tdb.products.List(ctx, domain.ProductFilter{Sort: domain.SortPriceHigh})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Wool Coat", all[0].Name)

	details, err := tdb.products.GetDetails(ctx, shirt)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("49.99").Equal(details.Product.BasePrice))
	require.Len(t, details.Sizes, 2)
	assert.Equal(t, "M", details.Sizes[0].SizeName)
	assert.True(t, decimal.RequireFromString("5.5").Equal(details.Sizes[1].PriceModifier))

	_, err = tdb.products.GetDetails(ctx, uuid.New())
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestCategoryRepo_ListOrderedByName(t *testing.T) {
	tdb := setupTestDB(t)
	ctx := context.Background()

	_, err := tdb.db.Pool.Exec(ctx, `INSERT INTO categories (name) VALUES ('Shoes'), ('Dresses')`)
	require.NoError(t, err)

	cats, err := tdb.cats.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Dresses", cats[0].Name)
}

func TestProfileRepo_GetUpdate(t *testing.T) {
	tdb := setupTestDB(t)
	ctx := context.Background()
	id := uuid.New()

	_, err := tdb.profiles.Get(ctx, id)
	assert.ErrorIs(t, err, e.ErrProfileNotFound)

	_, err = tdb.db.Pool.Exec(ctx, `INSERT INTO customer_profiles (id, email) VALUES ($1, 'ann@example.com')`, id)
	require.NoError(t, err)

	updated, err := tdb.profiles.Update(ctx, id, domain.ProfileUpdate{Phone: "555", City: "Rome"})
	require.NoError(t, err)
	assert.Equal(t, "Rome", updated.City)
	assert.Equal(t, "ann@example.com", updated.Email)
}

func TestOrderRepo_AtomicCheckoutWrites(t *testing.T) {
	tdb := setupTestDB(t)
	ctx := context.Background()
	productID := tdb.seedProduct(t, "Jeans", "80", true)
	customer := uuid.New()

	var header *domain.OrderHeader
	err := tdb.trm.Do(ctx, func(ctx context.Context) error {
		var err error
		header, err = tdb.orders.CreateHeader(ctx, domain.NewPendingOrder(customer, decimal.NewFromInt(180), domain.ShippingDetails{
			Phone: "555", Address: "1 Main St", City: "Springfield", PostalCode: "1",
		}))
		if err != nil {
			return err
		}

		line := domain.CartLine{Product: domain.Product{ID: productID, Name: "Jeans", BasePrice: decimal.NewFromInt(90)}, Quantity: 2}
		if err := tdb.orders.CreateItems(ctx, []domain.OrderLineItem{domain.NewLineItem(header.ID, line)}); err != nil {
			return err
		}

		_, err = tdb.outbox.Create(ctx, &usecase.OutboxEvent{
			EventID:     uuid.New(),
			EventType:   usecase.EventOrderCreated,
			AggregateID: header.ID,
			Payload:     []byte("payload"),
		})
		return err
	})
	require.NoError(t, err)
	assert.False(t, header.CreatedAt.IsZero())

	items, err := tdb.orders.ListItems(ctx, header.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, decimal.NewFromInt(90).Equal(items[0].UnitPrice))
	assert.Equal(t, 2, items[0].Quantity)

	list, err := tdb.orders.ListByCustomer(ctx, customer)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1 Main St, Springfield, 1", list[0].ShippingAddress)

	events, err := tdb.outbox.GetAndMarkAsProcessing(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, header.ID, events[0].AggregateID)
	assert.Equal(t, usecase.OutboxProcessing, events[0].Status)
	require.NoError(t, tdb.outbox.MarkAsProcessed(ctx, events[0].ID))

	again, err := tdb.outbox.GetAndMarkAsProcessing(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestOrderRepo_ItemsKeepCartOrder(t *testing.T) {
	tdb := setupTestDB(t)
	ctx := context.Background()

	names := []string{"Zip Hoodie", "Beanie", "Mittens"}
	var header *domain.OrderHeader
	err := tdb.trm.Do(ctx, func(ctx context.Context) error {
		var err error
		header, err = tdb.orders.CreateHeader(ctx, domain.NewPendingOrder(uuid.New(), decimal.NewFromInt(30), domain.ShippingDetails{
			Phone: "1", Address: "a", City: "c",
		}))
		if err != nil {
			return err
		}

		items := make([]domain.OrderLineItem, 0, len(names))
		for _, name := range names {
			line := domain.CartLine{Product: domain.Product{ID: uuid.New(), Name: name, BasePrice: decimal.NewFromInt(10)}, Quantity: 1}
			item := domain.NewLineItem(header.ID, line)
			item.ProductID = nil
			items = append(items, item)
		}
		return tdb.orders.CreateItems(ctx, items)
	})
	require.NoError(t, err)

	items, err := tdb.orders.ListItems(ctx, header.ID)
	require.NoError(t, err)
	require.Len(t, items, len(names))
	for i, name := range names {
		assert.Equal(t, name, items[i].ProductName)
	}
}

func TestOrderRepo_RollbackLeavesNoHeader(t *testing.T) {
	tdb := setupTestDB(t)
	ctx := context.Background()
	customer := uuid.New()

	err := tdb.trm.Do(ctx, func(ctx context.Context) error {
		header, err := tdb.orders.CreateHeader(ctx, domain.NewPendingOrder(customer, decimal.NewFromInt(1), domain.ShippingDetails{
			Phone: "1", Address: "a", City: "c",
		}))
		if err != nil {
			return err
		}

		bad := domain.OrderLineItem{ID: uuid.New(), OrderID: header.ID, ProductName: "x", Quantity: 0, UnitPrice: decimal.Zero}
		return tdb.orders.CreateItems(ctx, []domain.OrderLineItem{bad})
	})
	require.Error(t, err)

	list, err := tdb.orders.ListByCustomer(ctx, customer)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrderRepo_StatusAndOrphans(t *testing.T) {
	tdb := setupTestDB(t)
	ctx := context.Background()

	header, err := tdb.orders.CreateHeader(ctx, domain.NewPendingOrder(uuid.New(), decimal.NewFromInt(10), domain.ShippingDetails{
		Phone: "1", Address: "a", City: "c",
	}))
	require.NoError(t, err)

	orphans, err := tdb.orders.FindOrphans(ctx, time.Now().Add(time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, header.ID, orphans[0].ID)

	err = tdb.trm.Do(ctx, func(ctx context.Context) error {
		locked, err := tdb.orders.LockHeader(ctx, header.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, domain.OrderStatusPending, locked.Status)

		_, err = tdb.orders.UpdateStatus(ctx, header.ID, domain.OrderStatusCancelled)
		return err
	})
	require.NoError(t, err)

	got, err := tdb.orders.GetHeader(ctx, header.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, got.Status)

	_, err = tdb.orders.LockHeader(ctx, header.ID)
	assert.ErrorIs(t, err, e.ErrTransactionNotFound)

	_, err = tdb.orders.GetHeader(ctx, uuid.New())
	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}
