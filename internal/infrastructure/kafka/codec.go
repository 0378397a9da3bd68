package kafka

import (
	"fmt"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ProtoCodec кодирует OrderEvent в protobuf Struct. Деньги передаются строкой, время в RFC3339Nano.
type ProtoCodec struct{}

func NewProtoCodec() ProtoCodec {
	return ProtoCodec{}
}

func (ProtoCodec) Encode(event *usecase.OrderEvent) ([]byte, error) {
	msg, err := structpb.NewStruct(map[string]any{
		"event_id":         event.EventID.String(),
		"type":             string(event.Type),
		"order_id":         event.OrderID.String(),
		"customer_id":      event.CustomerID.String(),
		"total":            event.Total.String(),
		"status":           event.Status.String(),
		"previous_status":  event.PreviousStatus.String(),
		"shipping_address": event.ShippingAddress,
		"phone":            event.Phone,
		"order_created_at": event.OrderCreatedAt.UTC().Format(time.RFC3339Nano),
		"occurred_at":      event.OccurredAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := proto.Marshal(msg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return data, nil
}

func (ProtoCodec) Decode(data []byte) (*usecase.OrderEvent, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(data, &msg); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	f := fields(msg.GetFields())

	eventID, err := f.uuid("event_id")
	if err != nil {
		return nil, err
	}

	orderID, err := f.uuid("order_id")
	if err != nil {
		return nil, err
	}

	customerID, err := f.uuid("customer_id")
	if err != nil {
		return nil, err
	}

	total, err := decimal.NewFromString(f.str("total"))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("total: %w", err))
	}

	createdAt, err := f.time("order_created_at")
	if err != nil {
		return nil, err
	}

	occurredAt, err := f.time("occurred_at")
	if err != nil {
		return nil, err
	}

	eventType := usecase.OutboxEventType(f.str("type"))
	if eventType == "" {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("missing event type"))
	}

	return &usecase.OrderEvent{
		EventID:         eventID,
		Type:            eventType,
		OrderID:         orderID,
		CustomerID:      customerID,
		Total:           total,
		Status:          domain.OrderStatus(f.str("status")),
		PreviousStatus:  domain.OrderStatus(f.str("previous_status")),
		ShippingAddress: f.str("shipping_address"),
		Phone:           f.str("phone"),
		OrderCreatedAt:  createdAt,
		OccurredAt:      occurredAt,
	}, nil
}

type fields map[string]*structpb.Value

func (f fields) str(key string) string {
	return f[key].GetStringValue()
}

func (f fields) uuid(key string) (uuid.UUID, error) {
	id, err := uuid.Parse(f.str(key))
	if err != nil {
		return uuid.Nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%s: %w", key, err))
	}

	return id, nil
}

func (f fields) time(key string) (time.Time, error) {
	raw := f.str(key)
	if raw == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%s: %w", key, err))
	}

	return t, nil
}
