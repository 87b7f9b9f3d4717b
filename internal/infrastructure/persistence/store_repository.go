package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/domain/store"
	"github.com/commerce/backend/internal/infrastructure/persistence/models"
)

// GormStoreRepository implements store.StoreRepository using gorm
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new store repository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// Get returns the store record. The system runs with a single store,
// seeded by migration, so the oldest row wins if more than one exists.
func (r *GormStoreRepository) Get(ctx context.Context) (*store.Store, error) {
	var model models.StoreModel
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find store: %w", err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates the store record
func (r *GormStoreRepository) Save(ctx context.Context, s *store.Store) error {
	var model models.StoreModel
	model.FromDomain(s)

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save store: %w", err)
	}
	return nil
}
