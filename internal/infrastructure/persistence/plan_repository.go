package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/utilityboard/backend/internal/domain/shared"
	"github.com/utilityboard/backend/internal/domain/tariff"
	"github.com/utilityboard/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPlanRepository implements tariff.PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by its ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*tariff.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive returns the single active plan. The created_at tie-break only
// matters if the exclusivity invariant was ever violated out of band.
func (r *GormPlanRepository) FindActive(ctx context.Context) (*tariff.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNoActiveTariff
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns plans ordered active-first then newest-first, with the total count
func (r *GormPlanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tariff.Plan, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PlanModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var planModels []models.PlanModel
	if err := r.db.WithContext(ctx).
		Order("is_active DESC, created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&planModels).Error; err != nil {
		return nil, 0, err
	}

	plans := make([]tariff.Plan, len(planModels))
	for i, model := range planModels {
		plans[i] = *model.ToDomain()
	}
	return plans, total, nil
}

// Save creates or updates a plan
func (r *GormPlanRepository) Save(ctx context.Context, plan *tariff.Plan) error {
	var model models.PlanModel
	model.FromDomain(plan)
	return r.db.WithContext(ctx).Save(&model).Error
}

// ActivateExclusive deactivates every other plan and activates the target
// in one transaction, so exactly one plan is active afterwards.
func (r *GormPlanRepository) ActivateExclusive(ctx context.Context, id uuid.UUID) (*tariff.Plan, error) {
	var activated *tariff.Plan

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.PlanModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.PlanModel{}).
			Where("is_active = ? AND id <> ?", true, id).
			Updates(map[string]any{"is_active": false, "version": gorm.Expr("version + 1")}).Error; err != nil {
			return err
		}

		plan := model.ToDomain()
		plan.Activate()

		var updated models.PlanModel
		updated.FromDomain(plan)
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}

		activated = plan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return activated, nil
}

// Ensure GormPlanRepository implements tariff.PlanRepository
var _ tariff.PlanRepository = (*GormPlanRepository)(nil)
