package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/utilityboard/backend/internal/domain/metering"
	"github.com/utilityboard/backend/internal/domain/shared"
	"github.com/utilityboard/backend/internal/domain/shared/valueobject"
	"github.com/utilityboard/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReadingRepository implements metering.ReadingRepository using GORM
type GormReadingRepository struct {
	db *gorm.DB
}

// NewGormReadingRepository creates a new GormReadingRepository
func NewGormReadingRepository(db *gorm.DB) *GormReadingRepository {
	return &GormReadingRepository{db: db}
}

// FindByID finds a reading by its ID
func (r *GormReadingRepository) FindByID(ctx context.Context, id uuid.UUID) (*metering.Reading, error) {
	var model models.ReadingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatestByConsumer returns the consumer's most recent reading,
// recorded_at descending with created_at as the tie-break.
func (r *GormReadingRepository) FindLatestByConsumer(ctx context.Context, consumerID uuid.UUID) (*metering.Reading, error) {
	var model models.ReadingModel
	if err := r.db.WithContext(ctx).
		Where("consumer_id = ?", consumerID).
		Order("recorded_at DESC, created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByConsumerAndPeriod finds the reading for a (consumer, period) pair
func (r *GormReadingRepository) FindByConsumerAndPeriod(ctx context.Context, consumerID uuid.UUID, period valueobject.Period) (*metering.Reading, error) {
	var model models.ReadingModel
	if err := r.db.WithContext(ctx).
		Where("consumer_id = ? AND period_month = ? AND period_year = ?", consumerID, period.Month, period.Year).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns readings ordered by recorded_at descending with the total count
func (r *GormReadingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]metering.Reading, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ReadingModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var readingModels []models.ReadingModel
	if err := r.db.WithContext(ctx).
		Order("recorded_at DESC, created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&readingModels).Error; err != nil {
		return nil, 0, err
	}

	readings := make([]metering.Reading, len(readingModels))
	for i, model := range readingModels {
		readings[i] = *model.ToDomain()
	}
	return readings, total, nil
}

// Save persists a reading. A duplicate (consumer, period) surfaces as
// shared.ErrConflict driven by the composite unique index.
func (r *GormReadingRepository) Save(ctx context.Context, reading *metering.Reading) error {
	var model models.ReadingModel
	model.FromDomain(reading)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrConflict
		}
		return err
	}
	return nil
}

// Delete deletes a reading
func (r *GormReadingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReadingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormReadingRepository implements metering.ReadingRepository
var _ metering.ReadingRepository = (*GormReadingRepository)(nil)
