package models

import (
	"github.com/shopspring/decimal"
	"github.com/utilityboard/backend/internal/domain/tariff"
)

// PlanModel is the persistence model for tariff plans
type PlanModel struct {
	AggregateModel
	RatePerUnit decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	FixedCharge decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsActive    bool            `gorm:"not null;default:false;index"`
}

// TableName specifies the table name for PlanModel
func (PlanModel) TableName() string {
	return "tariff_plans"
}

// ToDomain converts PlanModel to a domain Plan
func (m *PlanModel) ToDomain() *tariff.Plan {
	return &tariff.Plan{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		RatePerUnit:       m.RatePerUnit,
		FixedCharge:       m.FixedCharge,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates PlanModel from a domain Plan
func (m *PlanModel) FromDomain(p *tariff.Plan) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.RatePerUnit = p.RatePerUnit
	m.FixedCharge = p.FixedCharge
	m.IsActive = p.IsActive
}
