package shared

import "context"

// EventHandler consumes published domain events. EventTypes narrows
// the subscription; an empty slice subscribes the handler to all
// event types.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher delivers domain events to their subscribed handlers.
// The outbox processor publishes through this after claiming entries.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// OutboxEventStore saves domain events to the outbox table.
// Implementations obtained from a transaction scope persist events
// within the surrounding transaction, so event durability is coupled
// to the success of the unit of work that emitted them.
type OutboxEventStore interface {
	SaveEvents(ctx context.Context, events ...DomainEvent) error
}
