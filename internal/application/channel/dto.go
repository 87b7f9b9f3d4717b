package channel

import (
	"time"

	"github.com/commerce/backend/internal/domain/channel"
	"github.com/google/uuid"
)

// CreateSalesChannelRequest carries the fields for creating a channel
type CreateSalesChannelRequest struct {
	Name        string
	Description string
	IsDisabled  bool
}

// UpdateSalesChannelRequest is a patch: nil pointers leave the field
// untouched, non-nil pointers overwrite (including with zero values)
type UpdateSalesChannelRequest struct {
	Name        *string
	Description *string
	IsDisabled  *bool
}

// SalesChannelResponse is the external representation of a channel
type SalesChannelResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsDisabled  bool       `json:"is_disabled"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToSalesChannelResponse converts a domain channel to its response shape
func ToSalesChannelResponse(sc *channel.SalesChannel) *SalesChannelResponse {
	return &SalesChannelResponse{
		ID:          sc.ID,
		Name:        sc.Name,
		Description: sc.Description,
		IsDisabled:  sc.IsDisabled,
		DeletedAt:   sc.DeletedAt,
		CreatedAt:   sc.CreatedAt,
		UpdatedAt:   sc.UpdatedAt,
	}
}
