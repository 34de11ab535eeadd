package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/utilityboard/backend/internal/domain/billing"
	"github.com/utilityboard/backend/internal/domain/consumer"
	"github.com/utilityboard/backend/internal/domain/metering"
	"github.com/utilityboard/backend/internal/domain/tariff"
)

// GenerateBillRequest represents a request to record a reading and derive
// its bill. Month accepts a number ("1".."12") or an English month name.
type GenerateBillRequest struct {
	MeterNumber    string          `json:"meter_number" binding:"required"`
	Month          string          `json:"month" binding:"required"`
	Year           int             `json:"year" binding:"required"`
	CurrentReading decimal.Decimal `json:"current_reading"`
}

// UpdateBillStatusRequest represents a request to change a bill's status
type UpdateBillStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BillListFilter narrows bill list queries at the API boundary
type BillListFilter struct {
	Month       string
	Year        *int
	Status      string
	GeneratedBy *uuid.UUID
	Page        int
	PageSize    int
}

// ReadingResponse represents a reading in API responses
type ReadingResponse struct {
	ID              uuid.UUID       `json:"id"`
	ConsumerID      uuid.UUID       `json:"consumer_id"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	PreviousReading decimal.Decimal `json:"previous_reading"`
	CurrentReading  decimal.Decimal `json:"current_reading"`
	UnitsConsumed   decimal.Decimal `json:"units_consumed"`
	RecordedBy      uuid.UUID       `json:"recorded_by"`
	RecordedAt      time.Time       `json:"recorded_at"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID            uuid.UUID       `json:"id"`
	ConsumerID    uuid.UUID       `json:"consumer_id"`
	ReadingID     uuid.UUID       `json:"reading_id"`
	TariffPlanID  uuid.UUID       `json:"tariff_plan_id"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	UnitsConsumed decimal.Decimal `json:"units_consumed"`
	EnergyCharge  decimal.Decimal `json:"energy_charge"`
	FixedCharge   decimal.Decimal `json:"fixed_charge"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	GeneratedBy   uuid.UUID       `json:"generated_by"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// GenerateBillResponse bundles the two records created by one generation
type GenerateBillResponse struct {
	Reading ReadingResponse `json:"reading"`
	Bill    BillResponse    `json:"bill"`
}

// ConsumerSummary is the consumer context embedded in detail responses
type ConsumerSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	MeterNumber string    `json:"meter_number"`
	Area        string    `json:"area"`
}

// TariffSummary is the tariff context embedded in detail responses
type TariffSummary struct {
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`
	FixedCharge decimal.Decimal `json:"fixed_charge"`
}

// BillDetailResponse is one bill with its reading, consumer, and tariff
// context. Tariff is the plan the bill was generated under, not
// necessarily the currently active one.
type BillDetailResponse struct {
	Bill     BillResponse     `json:"bill"`
	Reading  *ReadingResponse `json:"reading,omitempty"`
	Consumer *ConsumerSummary `json:"consumer,omitempty"`
	Tariff   *TariffSummary   `json:"tariff,omitempty"`
}

// ConsumerReadingResponse pairs a consumer with their most recent reading
type ConsumerReadingResponse struct {
	Consumer    ConsumerSummary  `json:"consumer"`
	LastReading *ReadingResponse `json:"last_reading"`
}

// ToReadingResponse maps a domain reading to its API shape
func ToReadingResponse(r *metering.Reading) ReadingResponse {
	return ReadingResponse{
		ID:              r.ID,
		ConsumerID:      r.ConsumerID,
		Month:           r.Period.Month,
		Year:            r.Period.Year,
		PreviousReading: r.PreviousReading,
		CurrentReading:  r.CurrentReading,
		UnitsConsumed:   r.UnitsConsumed,
		RecordedBy:      r.RecordedBy,
		RecordedAt:      r.RecordedAt,
	}
}

// ToBillResponse maps a domain bill to its API shape
func ToBillResponse(b *billing.Bill) BillResponse {
	return BillResponse{
		ID:            b.ID,
		ConsumerID:    b.ConsumerID,
		ReadingID:     b.ReadingID,
		TariffPlanID:  b.TariffPlanID,
		Month:         b.Period.Month,
		Year:          b.Period.Year,
		UnitsConsumed: b.UnitsConsumed,
		EnergyCharge:  b.EnergyCharge,
		FixedCharge:   b.FixedCharge,
		TotalAmount:   b.TotalAmount,
		DueDate:       b.DueDate,
		Status:        string(b.Status),
		PaidAt:        b.PaidAt,
		GeneratedBy:   b.GeneratedBy,
		GeneratedAt:   b.GeneratedAt,
	}
}

// ToConsumerSummary maps a domain consumer to its embedded API shape
func ToConsumerSummary(c *consumer.Consumer) ConsumerSummary {
	return ConsumerSummary{
		ID:          c.ID,
		Name:        c.Name,
		MeterNumber: c.MeterNumber,
		Area:        c.Area,
	}
}

// ToTariffSummary maps a tariff plan to its embedded API shape
func ToTariffSummary(p *tariff.Plan) TariffSummary {
	return TariffSummary{
		RatePerUnit: p.RatePerUnit,
		FixedCharge: p.FixedCharge,
	}
}
