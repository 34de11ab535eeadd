package consumer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/utilityboard/backend/internal/domain/consumer"
	"github.com/utilityboard/backend/internal/domain/shared"
)

// MockConsumerRepository is a mock implementation of consumer.Repository
type MockConsumerRepository struct {
	mock.Mock
}

func (m *MockConsumerRepository) FindByID(ctx context.Context, id uuid.UUID) (*consumer.Consumer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consumer.Consumer), args.Error(1)
}

func (m *MockConsumerRepository) FindByMeterNumber(ctx context.Context, meterNumber string) (*consumer.Consumer, error) {
	args := m.Called(ctx, meterNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consumer.Consumer), args.Error(1)
}

func (m *MockConsumerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]consumer.Consumer, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]consumer.Consumer), args.Get(1).(int64), args.Error(2)
}

func (m *MockConsumerRepository) ExistsByMeterNumber(ctx context.Context, meterNumber string) (bool, error) {
	args := m.Called(ctx, meterNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockConsumerRepository) Save(ctx context.Context, c *consumer.Consumer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConsumerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testCreateRequest() CreateConsumerRequest {
	return CreateConsumerRequest{
		Name:        "Asha Rao",
		Phone:       "9876543210",
		HouseNumber: "12-B",
		Area:        "Lakeview",
		City:        "Pune",
		State:       "MH",
		Pincode:     "411001",
		MeterNumber: "MTR-0042",
	}
}

func TestConsumerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates consumer successfully", func(t *testing.T) {
		repo := new(MockConsumerRepository)
		service := NewService(repo)

		repo.On("ExistsByMeterNumber", ctx, "MTR-0042").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*consumer.Consumer")).Return(nil)

		resp, err := service.Create(ctx, testCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, "Asha Rao", resp.Name)
		assert.Equal(t, "MTR-0042", resp.MeterNumber)
		repo.AssertExpectations(t)
	})

	t.Run("fails on duplicate meter number", func(t *testing.T) {
		repo := new(MockConsumerRepository)
		service := NewService(repo)

		repo.On("ExistsByMeterNumber", ctx, "MTR-0042").Return(true, nil)

		resp, err := service.Create(ctx, testCreateRequest())

		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Consumer with meter number MTR-0042 already exists")
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails on invalid fields", func(t *testing.T) {
		repo := new(MockConsumerRepository)
		service := NewService(repo)
		req := testCreateRequest()
		req.Name = "   "

		repo.On("ExistsByMeterNumber", ctx, "MTR-0042").Return(false, nil)

		resp, err := service.Create(ctx, req)

		assert.Nil(t, resp)
		assert.Error(t, err)
	})
}

func TestConsumerService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns consumer", func(t *testing.T) {
		repo := new(MockConsumerRepository)
		service := NewService(repo)
		cons, err := consumer.NewConsumer("Asha Rao", "9876543210", "12-B", "Lakeview", "Pune", "MH", "411001", "MTR-0042")
		require.NoError(t, err)

		repo.On("FindByID", ctx, cons.ID).Return(cons, nil)

		resp, err := service.GetByID(ctx, cons.ID)

		require.NoError(t, err)
		assert.Equal(t, cons.ID, resp.ID)
	})

	t.Run("fails for missing consumer", func(t *testing.T) {
		repo := new(MockConsumerRepository)
		service := NewService(repo)
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		resp, err := service.GetByID(ctx, id)

		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Consumer not found")
	})
}

func TestConsumerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies partial update", func(t *testing.T) {
		repo := new(MockConsumerRepository)
		service := NewService(repo)
		cons, err := consumer.NewConsumer("Asha Rao", "9876543210", "12-B", "Lakeview", "Pune", "MH", "411001", "MTR-0042")
		require.NoError(t, err)

		repo.On("FindByID", ctx, cons.ID).Return(cons, nil)
		repo.On("Save", ctx, cons).Return(nil)

		resp, err := service.Update(ctx, cons.ID, UpdateConsumerRequest{City: "Mumbai"})

		require.NoError(t, err)
		assert.Equal(t, "Mumbai", resp.City)
		assert.Equal(t, "Asha Rao", resp.Name)
		assert.Equal(t, "MTR-0042", resp.MeterNumber)
	})
}

func TestConsumerService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing consumer", func(t *testing.T) {
		repo := new(MockConsumerRepository)
		service := NewService(repo)
		cons, err := consumer.NewConsumer("Asha Rao", "9876543210", "12-B", "Lakeview", "Pune", "MH", "411001", "MTR-0042")
		require.NoError(t, err)

		repo.On("FindByID", ctx, cons.ID).Return(cons, nil)
		repo.On("Delete", ctx, cons.ID).Return(nil)

		err = service.Delete(ctx, cons.ID)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("fails for missing consumer", func(t *testing.T) {
		repo := new(MockConsumerRepository)
		service := NewService(repo)
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := service.Delete(ctx, id)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Consumer not found")
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("refuses a consumer that still owns ledger records", func(t *testing.T) {
		repo := new(MockConsumerRepository)
		service := NewService(repo)
		cons, err := consumer.NewConsumer("Asha Rao", "9876543210", "12-B", "Lakeview", "Pune", "MH", "411001", "MTR-0042")
		require.NoError(t, err)

		repo.On("FindByID", ctx, cons.ID).Return(cons, nil)
		repo.On("Delete", ctx, cons.ID).Return(shared.ErrConflict)

		err = service.Delete(ctx, cons.ID)

		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeConflict, domainErr.Code)
		assert.Contains(t, err.Error(), "Cannot delete consumer with recorded readings or bills")
	})
}
