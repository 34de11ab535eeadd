package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/utilityboard/backend/internal/domain/metering"
	"github.com/utilityboard/backend/internal/domain/shared/valueobject"
)

// ReadingModel is the persistence model for meter readings.
// The composite unique index on (consumer_id, period_month, period_year)
// is the authority for the one-reading-per-period invariant.
type ReadingModel struct {
	AggregateModel
	ConsumerID      uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uq_readings_consumer_period"`
	PeriodMonth     int             `gorm:"not null;uniqueIndex:uq_readings_consumer_period"`
	PeriodYear      int             `gorm:"not null;uniqueIndex:uq_readings_consumer_period"`
	PreviousReading decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CurrentReading  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitsConsumed   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RecordedBy      uuid.UUID       `gorm:"type:uuid;not null"`
	RecordedAt      time.Time       `gorm:"not null;index"`
}

// TableName specifies the table name for ReadingModel
func (ReadingModel) TableName() string {
	return "meter_readings"
}

// ToDomain converts ReadingModel to a domain Reading
func (m *ReadingModel) ToDomain() *metering.Reading {
	return &metering.Reading{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ConsumerID:        m.ConsumerID,
		Period:            valueobject.Period{Month: m.PeriodMonth, Year: m.PeriodYear},
		PreviousReading:   m.PreviousReading,
		CurrentReading:    m.CurrentReading,
		UnitsConsumed:     m.UnitsConsumed,
		RecordedBy:        m.RecordedBy,
		RecordedAt:        m.RecordedAt,
	}
}

// FromDomain populates ReadingModel from a domain Reading
func (m *ReadingModel) FromDomain(r *metering.Reading) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.ConsumerID = r.ConsumerID
	m.PeriodMonth = r.Period.Month
	m.PeriodYear = r.Period.Year
	m.PreviousReading = r.PreviousReading
	m.CurrentReading = r.CurrentReading
	m.UnitsConsumed = r.UnitsConsumed
	m.RecordedBy = r.RecordedBy
	m.RecordedAt = r.RecordedAt
}
