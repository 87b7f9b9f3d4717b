package channel

import (
	"context"

	"github.com/google/uuid"
)

// SalesChannelRepository is the narrow persistence interface the
// service layer needs. It deliberately does not expose a general
// query-builder capability.
type SalesChannelRepository interface {
	// FindByID finds a channel by ID, excluding soft-removed rows
	FindByID(ctx context.Context, id uuid.UUID) (*SalesChannel, error)

	// Save creates or updates a channel
	Save(ctx context.Context, sc *SalesChannel) error

	// SoftRemove persists the soft-delete marker of the channel
	SoftRemove(ctx context.Context, sc *SalesChannel) error

	// AddProducts bulk-inserts (channel, product) association rows.
	// Pairs that already exist are silently skipped; repeated calls
	// with overlapping product sets are safe. Referential failures
	// propagate as a foreign-key-violation error, untranslated.
	AddProducts(ctx context.Context, channelID uuid.UUID, productIDs []uuid.UUID) error
}
