package event

import (
	"context"

	"github.com/commerce/backend/internal/domain/shared"
)

// OutboxStore persists domain events as outbox entries through an
// outbox repository. When the repository is transaction-scoped the
// entries commit or roll back with the surrounding unit of work.
type OutboxStore struct {
	repo       shared.OutboxRepository
	serializer *Serializer
}

// NewOutboxStore creates an outbox-backed event store
func NewOutboxStore(repo shared.OutboxRepository, serializer *Serializer) *OutboxStore {
	return &OutboxStore{repo: repo, serializer: serializer}
}

// SaveEvents serializes the events and writes them to the outbox
func (s *OutboxStore) SaveEvents(ctx context.Context, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	entries := make([]*shared.OutboxEntry, 0, len(events))
	for _, evt := range events {
		payload, err := s.serializer.Serialize(evt)
		if err != nil {
			return err
		}
		entries = append(entries, shared.NewOutboxEntry(evt, payload))
	}
	return s.repo.Save(ctx, entries...)
}
