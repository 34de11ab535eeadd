package consumer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/utilityboard/backend/internal/domain/consumer"
	"github.com/utilityboard/backend/internal/domain/shared"
)

// Service handles consumer record management
type Service struct {
	consumerRepo consumer.Repository
}

// NewService creates a new consumer Service
func NewService(consumerRepo consumer.Repository) *Service {
	return &Service{consumerRepo: consumerRepo}
}

// Create registers a new consumer with a unique meter number
func (s *Service) Create(ctx context.Context, req CreateConsumerRequest) (*ConsumerResponse, error) {
	exists, err := s.consumerRepo.ExistsByMeterNumber(ctx, req.MeterNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("Consumer with meter number %s already exists", req.MeterNumber)
	}

	cons, err := consumer.NewConsumer(req.Name, req.Phone, req.HouseNumber, req.Area, req.City, req.State, req.Pincode, req.MeterNumber)
	if err != nil {
		return nil, err
	}
	if err := s.consumerRepo.Save(ctx, cons); err != nil {
		return nil, err
	}

	resp := ToConsumerResponse(cons)
	return &resp, nil
}

// GetByID retrieves a consumer by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*ConsumerResponse, error) {
	cons, err := s.consumerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Consumer")
		}
		return nil, err
	}
	resp := ToConsumerResponse(cons)
	return &resp, nil
}

// List retrieves consumers with pagination
func (s *Service) List(ctx context.Context, page, pageSize int) ([]ConsumerResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	consumers, total, err := s.consumerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ConsumerResponse, len(consumers))
	for i := range consumers {
		out[i] = ToConsumerResponse(&consumers[i])
	}
	return out, total, nil
}

// Update applies a partial update to a consumer
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateConsumerRequest) (*ConsumerResponse, error) {
	cons, err := s.consumerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Consumer")
		}
		return nil, err
	}

	if err := cons.Update(req.Name, req.Phone, req.HouseNumber, req.Area, req.City, req.State, req.Pincode); err != nil {
		return nil, err
	}
	if err := s.consumerRepo.Save(ctx, cons); err != nil {
		return nil, err
	}

	resp := ToConsumerResponse(cons)
	return &resp, nil
}

// Delete removes a consumer record
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.consumerRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewNotFoundError("Consumer")
		}
		return err
	}
	if err := s.consumerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return shared.NewConflictError("Cannot delete consumer with recorded readings or bills")
		}
		return err
	}
	return nil
}
