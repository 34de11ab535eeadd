package consumer

import (
	"time"

	"github.com/google/uuid"
	"github.com/utilityboard/backend/internal/domain/consumer"
)

// CreateConsumerRequest represents a request to register a consumer
type CreateConsumerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Phone       string `json:"phone" binding:"required,min=1,max=50"`
	HouseNumber string `json:"house_number" binding:"required,max=50"`
	Area        string `json:"area" binding:"required,max=200"`
	City        string `json:"city" binding:"required,max=100"`
	State       string `json:"state" binding:"required,max=100"`
	Pincode     string `json:"pincode" binding:"required,max=20"`
	MeterNumber string `json:"meter_number" binding:"required,min=1,max=50"`
}

// UpdateConsumerRequest represents a partial update; the meter number is
// immutable and not accepted here.
type UpdateConsumerRequest struct {
	Name        string `json:"name" binding:"omitempty,max=200"`
	Phone       string `json:"phone" binding:"omitempty,max=50"`
	HouseNumber string `json:"house_number" binding:"omitempty,max=50"`
	Area        string `json:"area" binding:"omitempty,max=200"`
	City        string `json:"city" binding:"omitempty,max=100"`
	State       string `json:"state" binding:"omitempty,max=100"`
	Pincode     string `json:"pincode" binding:"omitempty,max=20"`
}

// ConsumerResponse represents a consumer in API responses
type ConsumerResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	HouseNumber string    `json:"house_number"`
	Area        string    `json:"area"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Pincode     string    `json:"pincode"`
	MeterNumber string    `json:"meter_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToConsumerResponse maps a domain consumer to its API shape
func ToConsumerResponse(c *consumer.Consumer) ConsumerResponse {
	return ConsumerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		HouseNumber: c.HouseNumber,
		Area:        c.Area,
		City:        c.City,
		State:       c.State,
		Pincode:     c.Pincode,
		MeterNumber: c.MeterNumber,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
