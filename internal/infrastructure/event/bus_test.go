package event

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/commerce/backend/internal/domain/channel"
	"github.com/commerce/backend/internal/domain/shared"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

type panickingHandler struct{}

func (h *panickingHandler) Handle(_ context.Context, _ shared.DomainEvent) error {
	panic("projection store corrupted")
}

func (h *panickingHandler) EventTypes() []string { return nil }

func newCreatedEvent(t *testing.T) shared.DomainEvent {
	t.Helper()
	sc, err := channel.NewSalesChannel("Webshop", "", false)
	require.NoError(t, err)
	return channel.NewSalesChannelCreatedEvent(sc)
}

func newStartedBus(t *testing.T) *InMemoryEventBus {
	t.Helper()
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	return bus
}

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to matching handlers only", func(t *testing.T) {
		bus := newStartedBus(t)
		created := &recordingHandler{types: []string{channel.EventTypeSalesChannelCreated}}
		deleted := &recordingHandler{types: []string{channel.EventTypeSalesChannelDeleted}}
		bus.Subscribe(created)
		bus.Subscribe(deleted)

		require.NoError(t, bus.Publish(ctx, newCreatedEvent(t)))

		assert.Len(t, created.received, 1)
		assert.Empty(t, deleted.received)
	})

	t.Run("a handler without types receives everything", func(t *testing.T) {
		bus := newStartedBus(t)
		all := &recordingHandler{}
		bus.Subscribe(all)

		require.NoError(t, bus.Publish(ctx, newCreatedEvent(t)))

		assert.Len(t, all.received, 1)
	})

	t.Run("a failing handler does not block the others", func(t *testing.T) {
		bus := newStartedBus(t)
		failing := &recordingHandler{
			types: []string{channel.EventTypeSalesChannelCreated},
			err:   fmt.Errorf("projection out of date"),
		}
		healthy := &recordingHandler{types: []string{channel.EventTypeSalesChannelCreated}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		err := bus.Publish(ctx, newCreatedEvent(t))

		assert.ErrorContains(t, err, "projection out of date")
		assert.Len(t, healthy.received, 1)
	})

	t.Run("a panicking handler is contained", func(t *testing.T) {
		bus := newStartedBus(t)
		healthy := &recordingHandler{types: []string{channel.EventTypeSalesChannelCreated}}
		bus.Subscribe(&panickingHandler{}, channel.EventTypeSalesChannelCreated)
		bus.Subscribe(healthy)

		var err error
		require.NotPanics(t, func() {
			err = bus.Publish(ctx, newCreatedEvent(t))
		})

		assert.ErrorContains(t, err, "panicked")
		assert.Len(t, healthy.received, 1)
	})

	t.Run("publishing on a stopped bus fails", func(t *testing.T) {
		bus := newStartedBus(t)
		require.NoError(t, bus.Stop(ctx))

		err := bus.Publish(ctx, newCreatedEvent(t))

		assert.Error(t, err)
	})

	t.Run("unsubscribed handlers stop receiving", func(t *testing.T) {
		bus := newStartedBus(t)
		h := &recordingHandler{types: []string{channel.EventTypeSalesChannelCreated}}
		bus.Subscribe(h)
		bus.Unsubscribe(h)

		require.NoError(t, bus.Publish(ctx, newCreatedEvent(t)))

		assert.Empty(t, h.received)
	})
}

type memoryOutboxRepo struct {
	entries []*shared.OutboxEntry
}

func (r *memoryOutboxRepo) Save(_ context.Context, entries ...*shared.OutboxEntry) error {
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *memoryOutboxRepo) FindPending(context.Context, int) ([]*shared.OutboxEntry, error) {
	return nil, nil
}

func (r *memoryOutboxRepo) FindRetryable(context.Context, time.Time, int) ([]*shared.OutboxEntry, error) {
	return nil, nil
}

func (r *memoryOutboxRepo) MarkProcessing(context.Context, []uuid.UUID) ([]*shared.OutboxEntry, error) {
	return nil, nil
}

func (r *memoryOutboxRepo) Update(context.Context, *shared.OutboxEntry) error {
	return nil
}

func (r *memoryOutboxRepo) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func TestOutboxStoreSaveEvents(t *testing.T) {
	repo := &memoryOutboxRepo{}
	store := NewOutboxStore(repo, NewSerializer())

	evt := newCreatedEvent(t)
	require.NoError(t, store.SaveEvents(context.Background(), evt))

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, evt.EventID(), entry.EventID)
	assert.Equal(t, channel.EventTypeSalesChannelCreated, entry.EventType)
	assert.Equal(t, shared.OutboxStatusPending, entry.Status)
	assert.NotEmpty(t, entry.Payload)
}

func TestOutboxStoreNoEvents(t *testing.T) {
	repo := &memoryOutboxRepo{}
	store := NewOutboxStore(repo, NewSerializer())

	require.NoError(t, store.SaveEvents(context.Background()))
	assert.Empty(t, repo.entries)
}
