package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	outboxmodel "github.com/stxcorp/orders-ms/internal/service/models/outbox"
)

type fakeOutboxRepo struct {
	mu       sync.Mutex
	pending  []outboxmodel.OutboxMessage
	deleted  []int64
	retried  map[int64]int
	lastErrs map[int64]string
}

func newFakeOutboxRepo(pending ...outboxmodel.OutboxMessage) *fakeOutboxRepo {
	return &fakeOutboxRepo{
		pending:  pending,
		retried:  map[int64]int{},
		lastErrs: map[int64]string{},
	}
}

func (f *fakeOutboxRepo) Insert(_ context.Context, msg outboxmodel.OutboxMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, msg)

	return nil
}

func (f *fakeOutboxRepo) GetPendingMessages(_ context.Context, _ int) ([]outboxmodel.OutboxMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.pending, nil
}

func (f *fakeOutboxRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)

	return nil
}

func (f *fakeOutboxRepo) UpdateRetry(_ context.Context, id int64, retryCount int, lastError string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retried[id] = retryCount
	f.lastErrs[id] = lastError

	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	err       error
	published []amqp.Publishing
	keys      []string
}

func (f *fakePublisher) Publish(_, key string, _, _ bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	f.keys = append(f.keys, key)

	return nil
}

func TestProcessMessages_PublishesAndDeletes(t *testing.T) {
	repo := newFakeOutboxRepo(outboxmodel.OutboxMessage{
		ID:          1,
		QueueName:   outboxmodel.QueueOrderCreated,
		RoutingKey:  outboxmodel.QueueOrderCreated,
		Payload:     []byte(`{"eventType":"order.created"}`),
		ContentType: "application/json",
	})
	pub := &fakePublisher{}

	w := NewWorker(repo, pub)
	w.processMessages(context.Background())

	require.Len(t, pub.published, 1)
	assert.Equal(t, outboxmodel.QueueOrderCreated, pub.keys[0])
	assert.Equal(t, []int64{1}, repo.deleted)
	assert.Empty(t, repo.retried)
}

func TestProcessMessages_FailureSchedulesRetry(t *testing.T) {
	repo := newFakeOutboxRepo(outboxmodel.OutboxMessage{
		ID:         2,
		RetryCount: 1,
		RoutingKey: outboxmodel.QueueOrderStatusChanged,
	})
	pub := &fakePublisher{err: errors.New("broker unavailable")}

	w := NewWorker(repo, pub)
	w.processMessages(context.Background())

	assert.Empty(t, repo.deleted)
	assert.Equal(t, 2, repo.retried[2])
	assert.Equal(t, "broker unavailable", repo.lastErrs[2])
}

func TestProcessMessages_NoPendingMessages(t *testing.T) {
	repo := newFakeOutboxRepo()
	pub := &fakePublisher{}

	w := NewWorker(repo, pub)
	w.processMessages(context.Background())

	assert.Empty(t, pub.published)
	assert.Empty(t, repo.deleted)
}
