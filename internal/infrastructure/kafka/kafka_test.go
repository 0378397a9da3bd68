package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() *usecase.OrderEvent {
	return &usecase.OrderEvent{
		EventID:         uuid.New(),
		Type:            usecase.EventOrderStatusChanged,
		OrderID:         uuid.New(),
		CustomerID:      uuid.New(),
		Total:           decimal.RequireFromString("300.00"),
		Status:          domain.OrderStatusShipped,
		PreviousStatus:  domain.OrderStatusProcessing,
		ShippingAddress: "1 Main St, Springfield, 12345",
		Phone:           "+100000",
		OrderCreatedAt:  time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC),
		OccurredAt:      time.Date(2026, 5, 5, 8, 0, 0, 123, time.UTC),
	}
}

func TestProtoCodec_RoundTrip(t *testing.T) {
	codec := NewProtoCodec()
	event := testEvent()

	data, err := codec.Encode(event)
	require.NoError(t, err)

	got, err := codec.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, event.EventID, got.EventID)
	assert.Equal(t, event.Type, got.Type)
	assert.Equal(t, event.OrderID, got.OrderID)
	assert.Equal(t, event.CustomerID, got.CustomerID)
	assert.True(t, event.Total.Equal(got.Total))
	assert.Equal(t, event.Status, got.Status)
	assert.Equal(t, event.PreviousStatus, got.PreviousStatus)
	assert.Equal(t, event.ShippingAddress, got.ShippingAddress)
	assert.True(t, event.OrderCreatedAt.Equal(got.OrderCreatedAt))
	assert.True(t, event.OccurredAt.Equal(got.OccurredAt))
}

func TestProtoCodec_DecodeRejectsGarbage(t *testing.T) {
	_, err := NewProtoCodec().Decode([]byte("definitely not protobuf"))
	assert.Error(t, err)
}

func TestProtoCodec_DecodeEmptyPayload(t *testing.T) {
	_, err := NewProtoCodec().Decode(nil)
	assert.Error(t, err)
}

func TestToKafkaMessage(t *testing.T) {
	msg := toKafkaMessage(&usecase.WriteRawMessageReq{
		Key:     []byte("k"),
		Payload: []byte("v"),
		Headers: map[string]string{HeaderEventType: "order.created", HeaderEventID: "e1"},
	})

	assert.Equal(t, []byte("k"), msg.Key)
	assert.Equal(t, []byte("v"), msg.Value)
	assert.ElementsMatch(t, []kafka.Header{
		{Key: HeaderEventType, Value: []byte("order.created")},
		{Key: HeaderEventID, Value: []byte("e1")},
	}, msg.Headers)
}

// OUTBOX WORKER

type fakeOutboxRepo struct {
	mu        sync.Mutex
	pending   []*usecase.OutboxEvent
	processed []int64
	released  int
	claimErr  error
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(_ context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	n := min(limit, len(f.pending))
	batch := f.pending[:n]
	f.pending = f.pending[n:]
	return batch, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processed = append(f.processed, id)
	return nil
}

func (f *fakeOutboxRepo) ReleaseStale(context.Context, time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released++
	return 0, nil
}

func (f *fakeOutboxRepo) processedIDs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.processed...)
}

type fakeProducer struct {
	mu     sync.Mutex
	sent   []*usecase.WriteRawMessageReq
	failOn map[string]error
}

func (f *fakeProducer) WriteRawMessage(_ context.Context, req *usecase.WriteRawMessageReq) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failOn[req.Headers[HeaderEventID]]; ok {
		return err
	}
	f.sent = append(f.sent, req)
	return nil
}

func outboxRow(id int64) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          id,
		EventID:     uuid.New(),
		EventType:   usecase.EventOrderCreated,
		AggregateID: uuid.New(),
		Payload:     []byte{byte(id)},
		Status:      usecase.OutboxProcessing,
	}
}

func workersCfg() *cfg.WorkersCfg {
	return &cfg.WorkersCfg{
		OutboxBatchSize:    2,
		OutboxPollInterval: 10 * time.Millisecond,
		OutboxStaleAfter:   time.Minute,
	}
}

func TestOutboxWorker_ProcessBatchPublishesAndMarks(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []*usecase.OutboxEvent{outboxRow(1), outboxRow(2), outboxRow(3)}}
	producer := &fakeProducer{}
	w := NewOutboxWorker(repo, logger.Nop(), producer, workersCfg(), "")

	hasMore, err := w.processBatch(context.Background())
	require.NoError(t, err)
	assert.True(t, hasMore)
	assert.Equal(t, []int64{1, 2}, repo.processedIDs())

	first := producer.sent[0]
	assert.Equal(t, []byte{1}, first.Payload)
	assert.Equal(t, "order.created", first.Headers[HeaderEventType])

	w.drain(context.Background())
	assert.Equal(t, []int64{1, 2, 3}, repo.processedIDs())

	hasMore, err = w.processBatch(context.Background())
	require.NoError(t, err)
	assert.False(t, hasMore)
}

func TestOutboxWorker_FailedPublishStaysUnprocessed(t *testing.T) {
	failing := outboxRow(1)
	repo := &fakeOutboxRepo{pending: []*usecase.OutboxEvent{failing, outboxRow(2)}}
	producer := &fakeProducer{failOn: map[string]error{
		failing.EventID.String(): errors.New("dial tcp: connection refused"),
	}}
	w := NewOutboxWorker(repo, logger.Nop(), producer, workersCfg(), "")

	_, err := w.processBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, repo.processedIDs())
}

func TestOutboxWorker_MessageKeyIsOrderID(t *testing.T) {
	row := outboxRow(7)
	req := toRawMessageReq(row)

	assert.Equal(t, []byte(row.AggregateID.String()), req.Key)
	assert.Equal(t, row.EventID.String(), req.Headers[HeaderEventID])
}

func TestOutboxWorker_StartDrainsAndStops(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []*usecase.OutboxEvent{outboxRow(1)}}
	w := NewOutboxWorker(repo, logger.Nop(), &fakeProducer{}, workersCfg(), "")

	w.Start(context.Background())
	require.Eventually(t, func() bool { return len(repo.processedIDs()) == 1 }, time.Second, 5*time.Millisecond)

	_, _ = repo.Create(context.Background(), outboxRow(2))
	w.notify()
	require.Eventually(t, func() bool { return len(repo.processedIDs()) == 2 }, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return repo.released > 0
	}, time.Second, 5*time.Millisecond)

	w.Stop()
	w.Stop()
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(errors.New("read: Connection Reset by peer")))
	assert.False(t, isRetryableError(errors.New("message too large")))
	assert.False(t, isRetryableError(nil))
}

// CONSUMER

type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	committed []int64
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		return kafka.Message{}, context.Canceled
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return msg, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeReader) Close() error { return nil }

type fakeNotifier struct {
	calls  int
	events []*usecase.OrderEvent
	err    error
}

func (f *fakeNotifier) HandleOrderEvent(_ context.Context, event *usecase.OrderEvent) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func TestConsumer_DispatchesAndCommits(t *testing.T) {
	event := testEvent()
	data, err := NewProtoCodec().Encode(event)
	require.NoError(t, err)

	reader := &fakeReader{messages: []kafka.Message{
		{Offset: 1, Value: []byte("garbage")},
		{Offset: 2, Value: data},
	}}
	notifier := &fakeNotifier{}
	c := NewConsumerWithReader(reader, NewProtoCodec(), notifier, logger.Nop())

	c.Run(context.Background())

	assert.Equal(t, []int64{1, 2}, reader.committed)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, event.OrderID, notifier.events[0].OrderID)
}

func TestConsumer_HandlerFailureRetriesThenCommits(t *testing.T) {
	data, err := NewProtoCodec().Encode(testEvent())
	require.NoError(t, err)

	reader := &fakeReader{messages: []kafka.Message{{Offset: 5, Value: data}}}
	notifier := &fakeNotifier{err: errors.New("mail api down")}
	c := NewConsumerWithReader(reader, NewProtoCodec(), notifier, logger.Nop())
	c.backoff = 0

	c.Run(context.Background())

	assert.Equal(t, handleAttempts, notifier.calls)
	assert.Equal(t, []int64{5}, reader.committed)
}
