package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/utilityboard/backend/internal/domain/consumer"
	"github.com/utilityboard/backend/internal/domain/shared"
	"github.com/utilityboard/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormConsumerRepository implements consumer.Repository using GORM
type GormConsumerRepository struct {
	db *gorm.DB
}

// NewGormConsumerRepository creates a new GormConsumerRepository
func NewGormConsumerRepository(db *gorm.DB) *GormConsumerRepository {
	return &GormConsumerRepository{db: db}
}

// FindByID finds a consumer by its ID
func (r *GormConsumerRepository) FindByID(ctx context.Context, id uuid.UUID) (*consumer.Consumer, error) {
	var model models.ConsumerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMeterNumber resolves a meter identifier to its consumer
func (r *GormConsumerRepository) FindByMeterNumber(ctx context.Context, meterNumber string) (*consumer.Consumer, error) {
	var model models.ConsumerModel
	if err := r.db.WithContext(ctx).
		Where("meter_number = ?", meterNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns consumers matching the filter with the total count
func (r *GormConsumerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]consumer.Consumer, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ConsumerModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var consumerModels []models.ConsumerModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&consumerModels).Error; err != nil {
		return nil, 0, err
	}

	consumers := make([]consumer.Consumer, len(consumerModels))
	for i, model := range consumerModels {
		consumers[i] = *model.ToDomain()
	}
	return consumers, total, nil
}

// ExistsByMeterNumber checks if a consumer with the meter number exists
func (r *GormConsumerRepository) ExistsByMeterNumber(ctx context.Context, meterNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ConsumerModel{}).
		Where("meter_number = ?", meterNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a consumer. A duplicate meter number surfaces as
// shared.ErrConflict driven by the unique index.
func (r *GormConsumerRepository) Save(ctx context.Context, c *consumer.Consumer) error {
	var model models.ConsumerModel
	model.FromDomain(c)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrConflict
		}
		return err
	}
	return nil
}

// Delete deletes a consumer. A consumer still referenced by readings or
// bills surfaces as shared.ErrConflict driven by the foreign keys.
func (r *GormConsumerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ConsumerModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return shared.ErrConflict
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormConsumerRepository implements consumer.Repository
var _ consumer.Repository = (*GormConsumerRepository)(nil)
