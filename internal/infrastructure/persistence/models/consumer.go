package models

import (
	"github.com/utilityboard/backend/internal/domain/consumer"
)

// ConsumerModel is the persistence model for consumers
type ConsumerModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(255);not null"`
	Phone       string `gorm:"type:varchar(32);not null"`
	HouseNumber string `gorm:"type:varchar(64)"`
	Area        string `gorm:"type:varchar(255)"`
	City        string `gorm:"type:varchar(128)"`
	State       string `gorm:"type:varchar(128)"`
	Pincode     string `gorm:"type:varchar(16)"`
	MeterNumber string `gorm:"type:varchar(64);not null;uniqueIndex:uq_consumers_meter_number"`
}

// TableName specifies the table name for ConsumerModel
func (ConsumerModel) TableName() string {
	return "consumers"
}

// ToDomain converts ConsumerModel to a domain Consumer
func (m *ConsumerModel) ToDomain() *consumer.Consumer {
	return &consumer.Consumer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Phone:             m.Phone,
		HouseNumber:       m.HouseNumber,
		Area:              m.Area,
		City:              m.City,
		State:             m.State,
		Pincode:           m.Pincode,
		MeterNumber:       m.MeterNumber,
	}
}

// FromDomain populates ConsumerModel from a domain Consumer
func (m *ConsumerModel) FromDomain(c *consumer.Consumer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Phone = c.Phone
	m.HouseNumber = c.HouseNumber
	m.Area = c.Area
	m.City = c.City
	m.State = c.State
	m.Pincode = c.Pincode
	m.MeterNumber = c.MeterNumber
}
