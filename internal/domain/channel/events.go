package channel

import (
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant for SalesChannel
const AggregateTypeSalesChannel = "SalesChannel"

// Event type constants for SalesChannel. The string identifiers are
// part of the public event contract and must not change.
const (
	EventTypeSalesChannelCreated = "sales_channel.created"
	EventTypeSalesChannelUpdated = "sales_channel.updated"
	EventTypeSalesChannelDeleted = "sales_channel.deleted"
)

// SalesChannelCreatedEvent is published when a new sales channel is created
type SalesChannelCreatedEvent struct {
	shared.BaseDomainEvent
	ChannelID uuid.UUID `json:"channel_id"`
}

// NewSalesChannelCreatedEvent creates a new SalesChannelCreatedEvent
func NewSalesChannelCreatedEvent(sc *SalesChannel) *SalesChannelCreatedEvent {
	return &SalesChannelCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeSalesChannelCreated,
			AggregateTypeSalesChannel,
			sc.ID,
		),
		ChannelID: sc.ID,
	}
}

// SalesChannelUpdatedEvent is published when a sales channel is updated
type SalesChannelUpdatedEvent struct {
	shared.BaseDomainEvent
	ChannelID uuid.UUID `json:"channel_id"`
}

// NewSalesChannelUpdatedEvent creates a new SalesChannelUpdatedEvent
func NewSalesChannelUpdatedEvent(sc *SalesChannel) *SalesChannelUpdatedEvent {
	return &SalesChannelUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeSalesChannelUpdated,
			AggregateTypeSalesChannel,
			sc.ID,
		),
		ChannelID: sc.ID,
	}
}

// SalesChannelDeletedEvent is published when a sales channel is soft-removed
type SalesChannelDeletedEvent struct {
	shared.BaseDomainEvent
	ChannelID uuid.UUID `json:"channel_id"`
}

// NewSalesChannelDeletedEvent creates a new SalesChannelDeletedEvent
func NewSalesChannelDeletedEvent(sc *SalesChannel) *SalesChannelDeletedEvent {
	return &SalesChannelDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeSalesChannelDeleted,
			AggregateTypeSalesChannel,
			sc.ID,
		),
		ChannelID: sc.ID,
	}
}
