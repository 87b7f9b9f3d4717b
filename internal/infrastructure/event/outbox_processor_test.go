package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/infrastructure/config"
)

// trackingOutboxRepo keeps entries in memory and honors the status
// transitions the processor relies on.
type trackingOutboxRepo struct {
	entries map[uuid.UUID]*shared.OutboxEntry
}

func newTrackingOutboxRepo() *trackingOutboxRepo {
	return &trackingOutboxRepo{entries: make(map[uuid.UUID]*shared.OutboxEntry)}
}

func (r *trackingOutboxRepo) Save(_ context.Context, entries ...*shared.OutboxEntry) error {
	for _, e := range entries {
		r.entries[e.ID] = e
	}
	return nil
}

func (r *trackingOutboxRepo) FindPending(_ context.Context, limit int) ([]*shared.OutboxEntry, error) {
	var out []*shared.OutboxEntry
	for _, e := range r.entries {
		if e.Status == shared.OutboxStatusPending && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *trackingOutboxRepo) FindRetryable(_ context.Context, before time.Time, limit int) ([]*shared.OutboxEntry, error) {
	var out []*shared.OutboxEntry
	for _, e := range r.entries {
		if e.Status == shared.OutboxStatusFailed && e.NextRetryAt != nil &&
			e.NextRetryAt.Before(before) && len(out) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *trackingOutboxRepo) MarkProcessing(_ context.Context, ids []uuid.UUID) ([]*shared.OutboxEntry, error) {
	var out []*shared.OutboxEntry
	for _, id := range ids {
		e, ok := r.entries[id]
		if !ok {
			continue
		}
		if err := e.MarkProcessing(); err == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *trackingOutboxRepo) Update(_ context.Context, entry *shared.OutboxEntry) error {
	r.entries[entry.ID] = entry
	return nil
}

func (r *trackingOutboxRepo) DeleteOlderThan(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for id, e := range r.entries {
		if e.Status == shared.OutboxStatusSent && e.ProcessedAt != nil && e.ProcessedAt.Before(before) {
			delete(r.entries, id)
			n++
		}
	}
	return n, nil
}

func newProcessorFixture(t *testing.T) (*OutboxProcessor, *trackingOutboxRepo, *InMemoryEventBus) {
	t.Helper()

	repo := newTrackingOutboxRepo()
	bus := newStartedBus(t)
	processor := NewOutboxProcessor(repo, bus, NewSerializer(), config.EventConfig{
		BatchSize:    10,
		PollInterval: time.Hour,
	}, zap.NewNop())
	return processor, repo, bus
}

func storePending(t *testing.T, repo *trackingOutboxRepo) *shared.OutboxEntry {
	t.Helper()

	serializer := NewSerializer()
	store := NewOutboxStore(repo, serializer)
	evt := newCreatedEvent(t)
	require.NoError(t, store.SaveEvents(context.Background(), evt))

	for _, e := range repo.entries {
		return e
	}
	t.Fatal("no entry stored")
	return nil
}

func TestOutboxProcessorDeliversPendingEntries(t *testing.T) {
	processor, repo, bus := newProcessorFixture(t)

	handler := &recordingHandler{}
	bus.Subscribe(handler)
	entry := storePending(t, repo)

	processor.processBatch(context.Background())

	require.Len(t, handler.received, 1)
	assert.Equal(t, entry.EventID, handler.received[0].EventID())
	assert.Equal(t, shared.OutboxStatusSent, repo.entries[entry.ID].Status)
	assert.NotNil(t, repo.entries[entry.ID].ProcessedAt)
}

func TestOutboxProcessorMarksFailuresForRetry(t *testing.T) {
	processor, repo, bus := newProcessorFixture(t)

	// No handler is needed to fail delivery; a stopped bus rejects publishes
	require.NoError(t, bus.Stop(context.Background()))
	entry := storePending(t, repo)

	processor.processBatch(context.Background())

	stored := repo.entries[entry.ID]
	assert.Equal(t, shared.OutboxStatusFailed, stored.Status)
	assert.Equal(t, 1, stored.RetryCount)
	assert.NotNil(t, stored.NextRetryAt)
}

func TestOutboxProcessorRetriesFailedEntries(t *testing.T) {
	processor, repo, bus := newProcessorFixture(t)

	handler := &recordingHandler{}
	bus.Subscribe(handler)
	entry := storePending(t, repo)

	// Simulate an earlier failed delivery whose backoff has elapsed
	require.NoError(t, entry.MarkProcessing())
	entry.MarkFailed("transient failure")
	past := time.Now().Add(-time.Minute)
	entry.NextRetryAt = &past

	processor.processBatch(context.Background())

	require.Len(t, handler.received, 1)
	assert.Equal(t, shared.OutboxStatusSent, repo.entries[entry.ID].Status)
}

func TestOutboxProcessorStartStop(t *testing.T) {
	processor, repo, bus := newProcessorFixture(t)

	handler := &recordingHandler{}
	bus.Subscribe(handler)
	storePending(t, repo)

	processor.Start(context.Background())
	processor.Stop()
}
