package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gezilink/GL-BookingService/internal/domain"
	activityRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/activity"
	capacityRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/capacity"
	"github.com/gezilink/GL-BookingService/pkg/types"
)

// MockCapacityRepository мок репозитория вместимости
type MockCapacityRepository struct {
	mock.Mock
}

var _ CapacityRepository = (*MockCapacityRepository)(nil)

func (m *MockCapacityRepository) Get(ctx context.Context, key domain.CapacitySlotKey) (*domain.CapacitySlot, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CapacitySlot), args.Error(1)
}

func (m *MockCapacityRepository) ListByActivityDate(ctx context.Context, tenantID, activityID int64, date time.Time) ([]*domain.CapacitySlot, error) {
	args := m.Called(ctx, tenantID, activityID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CapacitySlot), args.Error(1)
}

// MockActivityRepository мок репозитория активностей
type MockActivityRepository struct {
	mock.Mock
}

var _ ActivityRepository = (*MockActivityRepository)(nil)

func (m *MockActivityRepository) GetByID(ctx context.Context, tenantID, activityID int64) (*domain.Activity, error) {
	args := m.Called(ctx, tenantID, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestUseCase_Execute_AllSlotsForDate(t *testing.T) {
	// Arrange
	mockCapacity := new(MockCapacityRepository)
	mockActivity := new(MockActivityRepository)
	useCase := NewUseCase(mockCapacity, mockActivity, nopLogger{})

	tourDate := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	mockActivity.On("GetByID", mock.Anything, int64(1), int64(42)).
		Return(&domain.Activity{ID: 42, IsActive: true}, nil)
	mockCapacity.On("ListByActivityDate", mock.Anything, int64(1), int64(42), tourDate).
		Return([]*domain.CapacitySlot{
			{StartTime: types.TimeString("10:00"), TotalSlots: 10, BookedSlots: 4},
			{StartTime: types.TimeString("14:00"), TotalSlots: 10, BookedSlots: 10},
		}, nil)

	// Act
	resp, err := useCase.Execute(context.Background(), &Request{
		TenantID:   1,
		ActivityID: 42,
		Date:       tourDate,
	})

	// Assert
	assert.NoError(t, err)
	assert.True(t, resp.Constrained)
	assert.Len(t, resp.Slots, 2)
	assert.Equal(t, 6, resp.Slots[0].Available)
	assert.Equal(t, 0, resp.Slots[1].Available)
}

func TestUseCase_Execute_UnconstrainedDate(t *testing.T) {
	// Нет слотов - вместимость на дату не ограничена
	mockCapacity := new(MockCapacityRepository)
	mockActivity := new(MockActivityRepository)
	useCase := NewUseCase(mockCapacity, mockActivity, nopLogger{})

	tourDate := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	mockActivity.On("GetByID", mock.Anything, int64(1), int64(42)).
		Return(&domain.Activity{ID: 42, IsActive: true}, nil)
	mockCapacity.On("ListByActivityDate", mock.Anything, int64(1), int64(42), tourDate).
		Return([]*domain.CapacitySlot{}, nil)

	resp, err := useCase.Execute(context.Background(), &Request{
		TenantID:   1,
		ActivityID: 42,
		Date:       tourDate,
	})

	assert.NoError(t, err)
	assert.False(t, resp.Constrained)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_SpecificTime(t *testing.T) {
	mockCapacity := new(MockCapacityRepository)
	mockActivity := new(MockActivityRepository)
	useCase := NewUseCase(mockCapacity, mockActivity, nopLogger{})

	tourDate := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	startTime := types.TimeString("10:00")

	mockActivity.On("GetByID", mock.Anything, int64(1), int64(42)).
		Return(&domain.Activity{ID: 42, IsActive: true}, nil)
	mockCapacity.On("Get", mock.Anything, domain.CapacitySlotKey{
		TenantID:   1,
		ActivityID: 42,
		Date:       tourDate,
		StartTime:  startTime,
	}).Return(&domain.CapacitySlot{StartTime: startTime, TotalSlots: 8, BookedSlots: 5}, nil)

	resp, err := useCase.Execute(context.Background(), &Request{
		TenantID:   1,
		ActivityID: 42,
		Date:       tourDate,
		StartTime:  &startTime,
	})

	assert.NoError(t, err)
	assert.True(t, resp.Constrained)
	assert.Len(t, resp.Slots, 1)
	assert.Equal(t, 3, resp.Slots[0].Available)
	mockCapacity.AssertNotCalled(t, "ListByActivityDate")
}

func TestUseCase_Execute_SpecificTimeNoSlot(t *testing.T) {
	mockCapacity := new(MockCapacityRepository)
	mockActivity := new(MockActivityRepository)
	useCase := NewUseCase(mockCapacity, mockActivity, nopLogger{})

	tourDate := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	startTime := types.TimeString("10:00")

	mockActivity.On("GetByID", mock.Anything, int64(1), int64(42)).
		Return(&domain.Activity{ID: 42, IsActive: true}, nil)
	mockCapacity.On("Get", mock.Anything, mock.AnythingOfType("domain.CapacitySlotKey")).
		Return(nil, capacityRepo.ErrSlotNotFound)

	resp, err := useCase.Execute(context.Background(), &Request{
		TenantID:   1,
		ActivityID: 42,
		Date:       tourDate,
		StartTime:  &startTime,
	})

	assert.NoError(t, err)
	assert.False(t, resp.Constrained)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_ActivityNotFound(t *testing.T) {
	mockCapacity := new(MockCapacityRepository)
	mockActivity := new(MockActivityRepository)
	useCase := NewUseCase(mockCapacity, mockActivity, nopLogger{})

	mockActivity.On("GetByID", mock.Anything, int64(1), int64(99)).
		Return(nil, activityRepo.ErrActivityNotFound)

	resp, err := useCase.Execute(context.Background(), &Request{
		TenantID:   1,
		ActivityID: 99,
		Date:       time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrActivityNotFound))
	assert.Nil(t, resp)
}

func TestUseCase_Execute_InactiveActivity(t *testing.T) {
	mockCapacity := new(MockCapacityRepository)
	mockActivity := new(MockActivityRepository)
	useCase := NewUseCase(mockCapacity, mockActivity, nopLogger{})

	mockActivity.On("GetByID", mock.Anything, int64(1), int64(42)).
		Return(&domain.Activity{ID: 42, IsActive: false}, nil)

	resp, err := useCase.Execute(context.Background(), &Request{
		TenantID:   1,
		ActivityID: 42,
		Date:       time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrActivityNotFound))
	assert.Nil(t, resp)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	useCase := NewUseCase(new(MockCapacityRepository), new(MockActivityRepository), nopLogger{})

	resp, err := useCase.Execute(context.Background(), &Request{TenantID: 0, ActivityID: 42})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Nil(t, resp)
}
