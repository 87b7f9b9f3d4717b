package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/commerce/backend/internal/domain/channel"
	"github.com/commerce/backend/internal/domain/shared"
)

// SalesChannelModel is the gorm mapping for sales channels
type SalesChannelModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	IsDisabled  bool       `gorm:"not null;default:false"`
	DeletedAt   *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (SalesChannelModel) TableName() string {
	return "sales_channels"
}

// ToDomain converts the model to a domain aggregate
func (m *SalesChannelModel) ToDomain() *channel.SalesChannel {
	return &channel.SalesChannel{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
		},
		Name:        m.Name,
		Description: m.Description,
		IsDisabled:  m.IsDisabled,
		DeletedAt:   m.DeletedAt,
	}
}

// FromDomain populates the model from a domain aggregate
func (m *SalesChannelModel) FromDomain(sc *channel.SalesChannel) {
	m.ID = sc.ID
	m.Name = sc.Name
	m.Description = sc.Description
	m.IsDisabled = sc.IsDisabled
	m.DeletedAt = sc.DeletedAt
	m.CreatedAt = sc.CreatedAt
	m.UpdatedAt = sc.UpdatedAt
}

// SalesChannelProductModel links channels to products with a composite key
type SalesChannelProductModel struct {
	SalesChannelID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (SalesChannelProductModel) TableName() string {
	return "sales_channel_products"
}
