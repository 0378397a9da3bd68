package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

const (
	handleAttempts = 3
	handleBackoff  = time.Second
)

// MessageReader — часть kafka.Reader, которой пользуется Consumer.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer читает события заказов и передаёт их в сервис уведомлений.
// Сообщение коммитится после обработки; ошибка уведомления не блокирует партицию бесконечно.
type Consumer struct {
	reader  MessageReader
	codec   usecase.OrderEventCodec
	handler usecase.NotificationUC
	logger  logger.Logger
	backoff time.Duration
}

func NewConsumer(cfg *cfg.KafkaCfg, codec usecase.OrderEventCodec, handler usecase.NotificationUC, logger logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.ConsumerGroup,
		MaxBytes: 10e6, // 10MB
	})

	return NewConsumerWithReader(reader, codec, handler, logger)
}

func NewConsumerWithReader(reader MessageReader, codec usecase.OrderEventCodec, handler usecase.NotificationUC, logger logger.Logger) *Consumer {
	return &Consumer{
		reader:  reader,
		codec:   codec,
		handler: handler,
		logger:  logger,
		backoff: handleBackoff,
	}
}

// Run читает сообщения до отмены ctx.
func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		if err := c.processMessage(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			c.logger.Warnf("Kafka consumer: %v", err)
		}
	}
}

func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *Consumer) processMessage(ctx context.Context) error {
	msg, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return err
	}

	event, err := c.codec.Decode(msg.Value)
	if err != nil {
		c.logger.Errorf(err, "Skipping undecodable message at offset %d", msg.Offset)
		return c.commit(ctx, msg)
	}

	c.handle(ctx, event)

	return c.commit(ctx, msg)
}

func (c *Consumer) handle(ctx context.Context, event *usecase.OrderEvent) {
	for attempt := 1; attempt <= handleAttempts; attempt++ {
		err := c.handler.HandleOrderEvent(ctx, event)
		if err == nil {
			return
		}

		if attempt == handleAttempts {
			c.logger.Errorf(err, "Notification for order %s dropped after %d attempts", event.OrderID, attempt)
			return
		}

		c.logger.Warnf("Notification for order %s failed (attempt %d): %v", event.OrderID, attempt, err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.backoff * time.Duration(attempt)):
		}
	}
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message) error {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
