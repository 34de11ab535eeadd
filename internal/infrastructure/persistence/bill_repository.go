package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/utilityboard/backend/internal/domain/billing"
	"github.com/utilityboard/backend/internal/domain/shared"
	"github.com/utilityboard/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBillRepository implements billing.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill by its ID
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReadingID finds the bill owning a reading
func (r *GormBillRepository) FindByReadingID(ctx context.Context, readingID uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		Where("reading_id = ?", readingID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns bills matching the filter, newest first, with the total count
func (r *GormBillRepository) FindAll(ctx context.Context, filter billing.ListFilter) ([]billing.Bill, int64, error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.BillModel{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BillModel{}), filter).
		Order("created_at DESC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var billModels []models.BillModel
	if err := query.Find(&billModels).Error; err != nil {
		return nil, 0, err
	}

	bills := make([]billing.Bill, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills, total, nil
}

// FindByConsumer returns a consumer's bill history ordered by period year
// descending then creation time descending.
func (r *GormBillRepository) FindByConsumer(ctx context.Context, consumerID uuid.UUID) ([]billing.Bill, error) {
	var billModels []models.BillModel
	if err := r.db.WithContext(ctx).
		Where("consumer_id = ?", consumerID).
		Order("period_year DESC, created_at DESC").
		Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]billing.Bill, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills, nil
}

// Save persists a bill. A duplicate reading link surfaces as
// shared.ErrConflict driven by the unique index on reading_id.
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	var model models.BillModel
	model.FromDomain(bill)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrConflict
		}
		return err
	}
	return nil
}

// Delete deletes a bill
func (r *GormBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BillModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeletePending deletes a bill only while it is still pending. The status
// gate lives in the DELETE predicate itself, so a concurrent transition to
// paid or overdue cannot race past an earlier read.
func (r *GormBillRepository) DeletePending(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, string(billing.StatusPending)).
		Delete(&models.BillModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing matched: either the bill is gone or it left pending. Re-read
	// to report which.
	var model models.BillModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}
	return model.ToDomain().Deletable()
}

// applyFilter applies filter conditions to query
func (r *GormBillRepository) applyFilter(query *gorm.DB, filter billing.ListFilter) *gorm.DB {
	if filter.Period != nil {
		query = query.Where("period_month = ? AND period_year = ?", filter.Period.Month, filter.Period.Year)
	}
	if filter.Month != nil {
		query = query.Where("period_month = ?", *filter.Month)
	}
	if filter.Year != nil {
		query = query.Where("period_year = ?", *filter.Year)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ConsumerID != nil {
		query = query.Where("consumer_id = ?", *filter.ConsumerID)
	}
	if filter.GeneratedBy != nil {
		query = query.Where("generated_by = ?", *filter.GeneratedBy)
	}
	return query
}

// Ensure GormBillRepository implements billing.BillRepository
var _ billing.BillRepository = (*GormBillRepository)(nil)
