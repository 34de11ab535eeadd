package consumer

import (
	"strings"
	"time"

	"github.com/utilityboard/backend/internal/domain/shared"
)

// Consumer represents a metered connection holder: the party readings are
// recorded against and bills are issued to.
type Consumer struct {
	shared.BaseAggregateRoot
	Name        string
	Phone       string
	HouseNumber string
	Area        string
	City        string
	State       string
	Pincode     string
	MeterNumber string
}

// NewConsumer creates a new consumer with a unique meter number
func NewConsumer(name, phone, houseNumber, area, city, state, pincode, meterNumber string) (*Consumer, error) {
	name = strings.TrimSpace(name)
	meterNumber = strings.TrimSpace(meterNumber)
	if name == "" {
		return nil, shared.NewValidationError("consumer name is required")
	}
	if meterNumber == "" {
		return nil, shared.NewValidationError("meter number is required")
	}
	if phone = strings.TrimSpace(phone); phone == "" {
		return nil, shared.NewValidationError("phone is required")
	}

	return &Consumer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		HouseNumber:       strings.TrimSpace(houseNumber),
		Area:              strings.TrimSpace(area),
		City:              strings.TrimSpace(city),
		State:             strings.TrimSpace(state),
		Pincode:           strings.TrimSpace(pincode),
		MeterNumber:       meterNumber,
	}, nil
}

// Update applies non-empty fields to the consumer. The meter number is
// immutable once assigned; readings and bills reference it.
func (c *Consumer) Update(name, phone, houseNumber, area, city, state, pincode string) error {
	if name != "" {
		c.Name = strings.TrimSpace(name)
	}
	if phone != "" {
		c.Phone = strings.TrimSpace(phone)
	}
	if houseNumber != "" {
		c.HouseNumber = strings.TrimSpace(houseNumber)
	}
	if area != "" {
		c.Area = strings.TrimSpace(area)
	}
	if city != "" {
		c.City = strings.TrimSpace(city)
	}
	if state != "" {
		c.State = strings.TrimSpace(state)
	}
	if pincode != "" {
		c.Pincode = strings.TrimSpace(pincode)
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
