package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/commerce/backend/internal/domain/channel"
	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/infrastructure/persistence/models"
)

// GormSalesChannelRepository implements channel.SalesChannelRepository using gorm
type GormSalesChannelRepository struct {
	db *gorm.DB
}

// NewGormSalesChannelRepository creates a new sales channel repository
func NewGormSalesChannelRepository(db *gorm.DB) *GormSalesChannelRepository {
	return &GormSalesChannelRepository{db: db}
}

// FindByID finds a channel by ID, treating soft-removed rows as absent
func (r *GormSalesChannelRepository) FindByID(ctx context.Context, id uuid.UUID) (*channel.SalesChannel, error) {
	var model models.SalesChannelModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sales channel: %w", err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates a channel
func (r *GormSalesChannelRepository) Save(ctx context.Context, sc *channel.SalesChannel) error {
	var model models.SalesChannelModel
	model.FromDomain(sc)

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save sales channel: %w", err)
	}
	return nil
}

// SoftRemove persists the soft-delete marker of the channel
func (r *GormSalesChannelRepository) SoftRemove(ctx context.Context, sc *channel.SalesChannel) error {
	result := r.db.WithContext(ctx).
		Model(&models.SalesChannelModel{}).
		Where("id = ? AND deleted_at IS NULL", sc.ID).
		Updates(map[string]interface{}{
			"deleted_at": sc.DeletedAt,
			"updated_at": sc.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to soft remove sales channel: %w", result.Error)
	}
	return nil
}

// AddProducts bulk-inserts association rows, skipping pairs that already
// exist. A referential failure on product_id or sales_channel_id surfaces
// as shared.ErrForeignKeyViolation for the caller to diagnose.
func (r *GormSalesChannelRepository) AddProducts(ctx context.Context, channelID uuid.UUID, productIDs []uuid.UUID) error {
	rows := make([]models.SalesChannelProductModel, 0, len(productIDs))
	seen := make(map[uuid.UUID]struct{}, len(productIDs))
	now := time.Now()
	for _, pid := range productIDs {
		if _, ok := seen[pid]; ok {
			continue
		}
		seen[pid] = struct{}{}
		rows = append(rows, models.SalesChannelProductModel{
			SalesChannelID: channelID,
			ProductID:      pid,
			CreatedAt:      now,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sales_channel_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("%w: %v", shared.ErrForeignKeyViolation, err)
		}
		return fmt.Errorf("failed to add products to sales channel: %w", err)
	}
	return nil
}
