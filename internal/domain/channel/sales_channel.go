package channel

import (
	"strings"
	"time"

	"github.com/commerce/backend/internal/domain/shared"
)

// Fixed attributes of the channel created by the store bootstrap.
const (
	DefaultChannelName        = "Default Sales Channel"
	DefaultChannelDescription = "Created by store bootstrap"
)

// SalesChannel represents a distribution context (e.g. a storefront)
// to which products can be attached. Channels are soft-deleted: a
// removed channel keeps its row but is excluded from normal lookups.
type SalesChannel struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	IsDisabled  bool
	DeletedAt   *time.Time
}

// NewSalesChannel creates a new sales channel and records a created event
func NewSalesChannel(name, description string, isDisabled bool) (*SalesChannel, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	sc := &SalesChannel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		IsDisabled:        isDisabled,
	}

	sc.RecordEvent(NewSalesChannelCreatedEvent(sc))

	return sc, nil
}

// NewDefaultSalesChannel creates the channel used as a store's default
func NewDefaultSalesChannel() (*SalesChannel, error) {
	return NewSalesChannel(DefaultChannelName, DefaultChannelDescription, false)
}

// UpdatePatch carries an optional value per mutable field. A nil
// pointer means the field is left untouched; a non-nil pointer
// overwrites, including with the zero value.
type UpdatePatch struct {
	Name        *string
	Description *string
	IsDisabled  *bool
}

// IsEmpty returns true when the patch carries no field
func (p UpdatePatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.IsDisabled == nil
}

// Apply overwrites the fields present in the patch and records an
// updated event when anything was applied.
func (sc *SalesChannel) Apply(patch UpdatePatch) error {
	if sc.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a deleted sales channel")
	}
	if patch.IsEmpty() {
		return nil
	}
	if patch.Name != nil {
		if err := validateName(*patch.Name); err != nil {
			return err
		}
		sc.Name = *patch.Name
	}
	if patch.Description != nil {
		sc.Description = *patch.Description
	}
	if patch.IsDisabled != nil {
		sc.IsDisabled = *patch.IsDisabled
	}

	sc.UpdatedAt = time.Now()
	sc.RecordEvent(NewSalesChannelUpdatedEvent(sc))

	return nil
}

// SoftRemove marks the channel as deleted and records a deleted event
func (sc *SalesChannel) SoftRemove() error {
	if sc.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Sales channel is already deleted")
	}

	now := time.Now()
	sc.DeletedAt = &now
	sc.UpdatedAt = now

	sc.RecordEvent(NewSalesChannelDeletedEvent(sc))

	return nil
}

// IsDeleted returns true if the channel has been soft-removed
func (sc *SalesChannel) IsDeleted() bool {
	return sc.DeletedAt != nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Sales channel name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Sales channel name cannot exceed 255 characters")
	}
	return nil
}
