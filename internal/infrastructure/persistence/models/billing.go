package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/utilityboard/backend/internal/domain/billing"
	"github.com/utilityboard/backend/internal/domain/shared/valueobject"
)

// BillModel is the persistence model for bills. The unique index on
// reading_id enforces the one-bill-per-reading invariant.
type BillModel struct {
	AggregateModel
	ConsumerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReadingID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_bills_reading_id"`
	TariffPlanID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	PeriodMonth   int             `gorm:"not null;index:idx_bills_period"`
	PeriodYear    int             `gorm:"not null;index:idx_bills_period"`
	UnitsConsumed decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EnergyCharge  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	FixedCharge   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DueDate       time.Time       `gorm:"not null"`
	Status        string          `gorm:"type:varchar(16);not null;default:'pending';index"`
	PaidAt        *time.Time
	GeneratedBy   uuid.UUID `gorm:"type:uuid;not null;index"`
	GeneratedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for BillModel
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts BillModel to a domain Bill
func (m *BillModel) ToDomain() *billing.Bill {
	return &billing.Bill{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ConsumerID:        m.ConsumerID,
		ReadingID:         m.ReadingID,
		TariffPlanID:      m.TariffPlanID,
		Period:            valueobject.Period{Month: m.PeriodMonth, Year: m.PeriodYear},
		UnitsConsumed:     m.UnitsConsumed,
		EnergyCharge:      m.EnergyCharge,
		FixedCharge:       m.FixedCharge,
		TotalAmount:       m.TotalAmount,
		DueDate:           m.DueDate,
		Status:            billing.Status(m.Status),
		PaidAt:            m.PaidAt,
		GeneratedBy:       m.GeneratedBy,
		GeneratedAt:       m.GeneratedAt,
	}
}

// FromDomain populates BillModel from a domain Bill
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.ConsumerID = b.ConsumerID
	m.ReadingID = b.ReadingID
	m.TariffPlanID = b.TariffPlanID
	m.PeriodMonth = b.Period.Month
	m.PeriodYear = b.Period.Year
	m.UnitsConsumed = b.UnitsConsumed
	m.EnergyCharge = b.EnergyCharge
	m.FixedCharge = b.FixedCharge
	m.TotalAmount = b.TotalAmount
	m.DueDate = b.DueDate
	m.Status = string(b.Status)
	m.PaidAt = b.PaidAt
	m.GeneratedBy = b.GeneratedBy
	m.GeneratedAt = b.GeneratedAt
}
