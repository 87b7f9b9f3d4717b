package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/commerce/backend/internal/domain/catalog"
	"github.com/commerce/backend/internal/domain/shared"
)

// ProductModel is the gorm mapping for products
type ProductModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ProductModel) TableName() string {
	return "products"
}

func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Title: m.Title,
	}
}

func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.ID = p.ID
	m.Title = p.Title
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}
