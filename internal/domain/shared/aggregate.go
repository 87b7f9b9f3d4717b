package shared

// BaseAggregateRoot is a BaseEntity that also tracks the domain
// events recorded during one unit of work. Events stay pending until
// the application layer hands them to the outbox and clears them.
type BaseAggregateRoot struct {
	BaseEntity
	pendingEvents []DomainEvent
}

// NewBaseAggregateRoot creates an aggregate root with no pending events
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

// RecordEvent appends a domain event to the pending set
func (a *BaseAggregateRoot) RecordEvent(event DomainEvent) {
	a.pendingEvents = append(a.pendingEvents, event)
}

// PendingEvents returns the events recorded since the last clear
func (a *BaseAggregateRoot) PendingEvents() []DomainEvent {
	return a.pendingEvents
}

// ClearEvents drops the pending events once they have been persisted
func (a *BaseAggregateRoot) ClearEvents() {
	a.pendingEvents = nil
}
