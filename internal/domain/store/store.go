package store

import (
	"context"
	"time"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Store holds store-wide settings. A deployment has exactly one store
// row, seeded by migration. The default sales channel pointer is the
// only mutable field this module touches.
type Store struct {
	shared.BaseEntity
	Name                  string
	DefaultSalesChannelID *uuid.UUID
}

// HasDefaultSalesChannel returns true when a default channel is assigned
func (s *Store) HasDefaultSalesChannel() bool {
	return s.DefaultSalesChannelID != nil
}

// AssignDefaultSalesChannel points the store at the given channel.
// Deleting the channel later does not clear the pointer; callers
// guard against a dangling default themselves.
func (s *Store) AssignDefaultSalesChannel(channelID uuid.UUID) {
	s.DefaultSalesChannelID = &channelID
	s.UpdatedAt = time.Now()
}

// StoreRepository accesses the single store settings row
type StoreRepository interface {
	// Get returns the store row, or ErrNotFound when it was never seeded
	Get(ctx context.Context) (*Store, error)

	// Save persists the store
	Save(ctx context.Context, s *Store) error
}
