package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/commerce/backend/internal/domain/channel"
	"github.com/commerce/backend/internal/domain/shared"
)

// Serializer converts domain events to and from their JSON wire form.
// Deserialization requires the concrete event type to be registered.
type Serializer struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

// NewSerializer creates a serializer with all known event types registered
func NewSerializer() *Serializer {
	s := &Serializer{types: make(map[string]reflect.Type)}
	s.Register(channel.EventTypeSalesChannelCreated, &channel.SalesChannelCreatedEvent{})
	s.Register(channel.EventTypeSalesChannelUpdated, &channel.SalesChannelUpdatedEvent{})
	s.Register(channel.EventTypeSalesChannelDeleted, &channel.SalesChannelDeletedEvent{})
	return s
}

// Register associates an event type identifier with its concrete Go type
func (s *Serializer) Register(eventType string, prototype shared.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := reflect.TypeOf(prototype)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	s.types[eventType] = t
}

// Serialize encodes a domain event as JSON
func (s *Serializer) Serialize(event shared.DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize event %s: %w", event.EventType(), err)
	}
	return payload, nil
}

// Deserialize decodes a JSON payload into the registered concrete event type
func (s *Serializer) Deserialize(eventType string, payload []byte) (shared.DomainEvent, error) {
	s.mu.RLock()
	t, ok := s.types[eventType]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	instance := reflect.New(t).Interface()
	if err := json.Unmarshal(payload, instance); err != nil {
		return nil, fmt.Errorf("failed to deserialize event %s: %w", eventType, err)
	}

	event, ok := instance.(shared.DomainEvent)
	if !ok {
		return nil, fmt.Errorf("registered type for %s does not implement DomainEvent", eventType)
	}
	return event, nil
}
