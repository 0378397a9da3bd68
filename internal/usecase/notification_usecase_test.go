package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderEvent(eventType OutboxEventType, customer uuid.UUID, status, previous domain.OrderStatus) *OrderEvent {
	return &OrderEvent{
		EventID:         uuid.New(),
		Type:            eventType,
		OrderID:         uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000000"),
		CustomerID:      customer,
		Total:           decimal.RequireFromString("300"),
		Status:          status,
		PreviousStatus:  previous,
		ShippingAddress: "1 Main St, Springfield, 12345",
		OrderCreatedAt:  time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func newNotificationFixture(profiles ...domain.CustomerProfile) (*NotificationUseCase, *MockMailer, *MockArchive) {
	mailer := &MockMailer{}
	archive := &MockArchive{}
	uc := NewNotificationUC(NewMockProfileRepository(profiles...), mailer, archive, logger.Nop(), "Clothing Store", "https://shop.example/profile")
	return uc, mailer, archive
}

func TestNotification_OrderCreated(t *testing.T) {
	customer := uuid.New()
	uc, mailer, archive := newNotificationFixture(domain.CustomerProfile{ID: customer, Email: "ann@example.com", FullName: "Ann"})

	err := uc.HandleOrderEvent(context.Background(), newOrderEvent(EventOrderCreated, customer, domain.OrderStatusPending, ""))
	require.NoError(t, err)

	require.Len(t, mailer.Sent, 1)
	n := mailer.Sent[0]
	assert.Equal(t, "ann@example.com", n.To)
	assert.Equal(t, "Order confirmation #3f2a9c1e - Clothing Store", n.Subject)
	assert.Contains(t, n.Body, "300.00")
	assert.Contains(t, n.Body, "2025-03-14")
	assert.Contains(t, n.Body, "1 Main St, Springfield, 12345")
	assert.Contains(t, n.Body, "Ann")
	assert.Len(t, archive.Stored, 1)
}

func TestNotification_StatusChanged(t *testing.T) {
	customer := uuid.New()
	uc, mailer, _ := newNotificationFixture(domain.CustomerProfile{ID: customer, Email: "ann@example.com"})

	err := uc.HandleOrderEvent(context.Background(), newOrderEvent(EventOrderStatusChanged, customer, domain.OrderStatusShipped, domain.OrderStatusProcessing))
	require.NoError(t, err)

	require.Len(t, mailer.Sent, 1)
	assert.Equal(t, "Order update #3f2a9c1e - Clothing Store", mailer.Sent[0].Subject)
	assert.Contains(t, mailer.Sent[0].Body, "Your order has been shipped!")
	assert.Contains(t, mailer.Sent[0].Body, defaultCustomerName)
}

func TestNotification_Skips(t *testing.T) {
	withEmail := uuid.New()
	noEmail := uuid.New()
	uc, mailer, _ := newNotificationFixture(
		domain.CustomerProfile{ID: withEmail, Email: "ann@example.com"},
		domain.CustomerProfile{ID: noEmail},
	)
	ctx := context.Background()

	require.NoError(t, uc.HandleOrderEvent(ctx, newOrderEvent(EventOrderStatusChanged, withEmail, domain.OrderStatusShipped, domain.OrderStatusShipped)))
	require.NoError(t, uc.HandleOrderEvent(ctx, newOrderEvent(EventOrderCreated, noEmail, domain.OrderStatusPending, "")))
	require.NoError(t, uc.HandleOrderEvent(ctx, newOrderEvent(EventOrderCreated, uuid.New(), domain.OrderStatusPending, "")))

	assert.Empty(t, mailer.Sent)
}

func TestNotification_ArchiveFailureIsNotFatal(t *testing.T) {
	customer := uuid.New()
	uc, mailer, archive := newNotificationFixture(domain.CustomerProfile{ID: customer, Email: "ann@example.com"})
	archive.Err = errors.New("bucket missing")

	err := uc.HandleOrderEvent(context.Background(), newOrderEvent(EventOrderCreated, customer, domain.OrderStatusPending, ""))

	require.NoError(t, err)
	assert.Len(t, mailer.Sent, 1)
}

func TestNotification_MailerFailureIsReturned(t *testing.T) {
	customer := uuid.New()
	uc, mailer, _ := newNotificationFixture(domain.CustomerProfile{ID: customer, Email: "ann@example.com"})
	mailer.Err = errors.New("503")

	err := uc.HandleOrderEvent(context.Background(), newOrderEvent(EventOrderCreated, customer, domain.OrderStatusPending, ""))

	assert.Error(t, err)
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "Your order has been cancelled.", StatusMessage(domain.OrderStatusCancelled))
	assert.Equal(t, "New status: ready", StatusMessage(domain.OrderStatus("ready")))
}
