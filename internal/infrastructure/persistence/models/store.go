package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/store"
)

// StoreModel is the gorm mapping for the store record
type StoreModel struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name                  string     `gorm:"type:varchar(255);not null"`
	DefaultSalesChannelID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt             time.Time  `gorm:"not null"`
	UpdatedAt             time.Time  `gorm:"not null"`
}

func (StoreModel) TableName() string {
	return "stores"
}

func (m *StoreModel) ToDomain() *store.Store {
	return &store.Store{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Name:                  m.Name,
		DefaultSalesChannelID: m.DefaultSalesChannelID,
	}
}

func (m *StoreModel) FromDomain(s *store.Store) {
	m.ID = s.ID
	m.Name = s.Name
	m.DefaultSalesChannelID = s.DefaultSalesChannelID
	m.CreatedAt = s.CreatedAt
	m.UpdatedAt = s.UpdatedAt
}
