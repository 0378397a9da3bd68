package usecase

import "context"

// TxManager выполняет fn в одной транзакции БД.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// OrderEventCodec сериализует события заказа для outbox и Kafka.
type OrderEventCodec interface {
	Encode(event *OrderEvent) ([]byte, error)
	Decode(data []byte) (*OrderEvent, error)
}

type Mailer interface {
	Send(ctx context.Context, n *Notification) error
}
