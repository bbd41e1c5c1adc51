package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gezilink/GL-BookingService/internal/domain"
	capacityRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/capacity"
	reservationRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/reservation"
	"github.com/gezilink/GL-BookingService/internal/service/reservations/models"
	"github.com/gezilink/GL-BookingService/pkg/types"
)

// MockReservationRepository мок репозитория бронирований
type MockReservationRepository struct {
	mock.Mock
}

var _ ReservationRepository = (*MockReservationRepository)(nil)

func (m *MockReservationRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByTrackingToken(ctx context.Context, token string) (*domain.Reservation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListForTenant(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Cancel(ctx context.Context, tenantID, id int64, reason string) error {
	args := m.Called(ctx, tenantID, id, reason)
	return args.Error(0)
}

// MockCapacityRepository мок репозитория вместимости
type MockCapacityRepository struct {
	mock.Mock
}

var _ CapacityRepository = (*MockCapacityRepository)(nil)

func (m *MockCapacityRepository) Release(ctx context.Context, key domain.CapacitySlotKey, quantity int) error {
	args := m.Called(ctx, key, quantity)
	return args.Error(0)
}

// fakeTxManager выполняет функции транзакций напрямую
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestService_GetByID_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockReservationRepository)
	service := NewService(mockRepo, new(MockCapacityRepository), fakeTxManager{}, nopLogger{}, false)

	mockRepo.On("GetByID", mock.Anything, int64(1), int64(100)).
		Return(&domain.Reservation{ID: 100, TenantID: 1, Status: domain.ReservationStatusPending}, nil)

	// Act
	resp, err := service.GetByID(context.Background(), 1, 100)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	mockRepo.AssertExpectations(t)
}

func TestService_GetByID_NotFound(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	service := NewService(mockRepo, new(MockCapacityRepository), fakeTxManager{}, nopLogger{}, false)

	mockRepo.On("GetByID", mock.Anything, int64(1), int64(999)).
		Return(nil, reservationRepo.ErrReservationNotFound)

	resp, err := service.GetByID(context.Background(), 1, 999)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrReservationNotFound))
	assert.Nil(t, resp)
}

func TestService_GetByTrackingToken_Success(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	service := NewService(mockRepo, new(MockCapacityRepository), fakeTxManager{}, nopLogger{}, false)

	mockRepo.On("GetByTrackingToken", mock.Anything, "token-abc").
		Return(&domain.Reservation{
			ID:             100,
			TrackingToken:  "token-abc",
			TokenExpiresAt: time.Now().Add(24 * time.Hour),
		}, nil)

	resp, err := service.GetByTrackingToken(context.Background(), "token-abc")

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", resp.TrackingToken)
}

func TestService_GetByTrackingToken_Expired(t *testing.T) {
	// Истёкший токен даёт отдельную ошибку для точного HTTP-статуса
	mockRepo := new(MockReservationRepository)
	service := NewService(mockRepo, new(MockCapacityRepository), fakeTxManager{}, nopLogger{}, false)

	mockRepo.On("GetByTrackingToken", mock.Anything, "token-old").
		Return(&domain.Reservation{
			ID:             100,
			TrackingToken:  "token-old",
			TokenExpiresAt: time.Now().Add(-time.Hour),
		}, nil)

	resp, err := service.GetByTrackingToken(context.Background(), "token-old")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrTrackingTokenExpired))
	assert.Nil(t, resp)
}

func TestService_GetByTrackingToken_EmptyToken(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	service := NewService(mockRepo, new(MockCapacityRepository), fakeTxManager{}, nopLogger{}, false)

	resp, err := service.GetByTrackingToken(context.Background(), "")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Nil(t, resp)
	mockRepo.AssertNotCalled(t, "GetByTrackingToken")
}

func TestService_List_WithStatusFilter(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	service := NewService(mockRepo, new(MockCapacityRepository), fakeTxManager{}, nopLogger{}, false)

	status := domain.ReservationStatusConfirmed
	mockRepo.On("ListForTenant", mock.Anything, mock.MatchedBy(func(filter domain.ReservationFilter) bool {
		return filter.TenantID == 1 && filter.Status != nil && *filter.Status == status
	})).Return([]*domain.Reservation{{ID: 100}, {ID: 101}}, nil)

	statusStr := "confirmed"
	resp, err := service.List(context.Background(), &models.ListReservationsRequest{
		TenantID: 1,
		Status:   &statusStr,
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)
	mockRepo.AssertExpectations(t)
}

func TestService_List_InvalidStatus(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	service := NewService(mockRepo, new(MockCapacityRepository), fakeTxManager{}, nopLogger{}, false)

	statusStr := "archived"
	resp, err := service.List(context.Background(), &models.ListReservationsRequest{
		TenantID: 1,
		Status:   &statusStr,
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Nil(t, resp)
	mockRepo.AssertNotCalled(t, "ListForTenant")
}

func TestService_Cancel_Success_NoCapacityRelease(t *testing.T) {
	// Политика по умолчанию: отмена НЕ возвращает места в слот
	mockRepo := new(MockReservationRepository)
	mockCapacity := new(MockCapacityRepository)
	service := NewService(mockRepo, mockCapacity, fakeTxManager{}, nopLogger{}, false)

	mockRepo.On("GetByID", mock.Anything, int64(1), int64(100)).
		Return(&domain.Reservation{
			ID:       100,
			TenantID: 1,
			Status:   domain.ReservationStatusPending,
		}, nil)
	mockRepo.On("Cancel", mock.Anything, int64(1), int64(100), "клиент передумал").Return(nil)

	err := service.Cancel(context.Background(), 1, 100,
		&models.CancelReservationRequest{CancellationReason: "клиент передумал"})

	assert.NoError(t, err)
	mockCapacity.AssertNotCalled(t, "Release")
	mockRepo.AssertExpectations(t)
}

func TestService_Cancel_ReleasesCapacityWhenEnabled(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	mockCapacity := new(MockCapacityRepository)
	service := NewService(mockRepo, mockCapacity, fakeTxManager{}, nopLogger{}, true)

	tourDate := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	mockRepo.On("GetByID", mock.Anything, int64(1), int64(100)).
		Return(&domain.Reservation{
			ID:         100,
			TenantID:   1,
			ActivityID: 42,
			Date:       tourDate,
			StartTime:  types.TimeString("10:00"),
			GuestCount: 3,
			Status:     domain.ReservationStatusConfirmed,
		}, nil)
	mockRepo.On("Cancel", mock.Anything, int64(1), int64(100), "").Return(nil)

	expectedKey := domain.CapacitySlotKey{
		TenantID:   1,
		ActivityID: 42,
		Date:       tourDate,
		StartTime:  types.TimeString("10:00"),
	}
	mockCapacity.On("Release", mock.Anything, expectedKey, 3).Return(nil)

	err := service.Cancel(context.Background(), 1, 100, &models.CancelReservationRequest{})

	assert.NoError(t, err)
	mockCapacity.AssertExpectations(t)
}

func TestService_Cancel_UnconstrainedReservationWithReleaseEnabled(t *testing.T) {
	// Бронь без строки слота (вместимость не ограничивалась):
	// отсутствие слота при возврате мест не должно откатывать отмену
	mockRepo := new(MockReservationRepository)
	mockCapacity := new(MockCapacityRepository)
	service := NewService(mockRepo, mockCapacity, fakeTxManager{}, nopLogger{}, true)

	mockRepo.On("GetByID", mock.Anything, int64(1), int64(100)).
		Return(&domain.Reservation{
			ID:         100,
			TenantID:   1,
			ActivityID: 42,
			Date:       time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
			StartTime:  types.TimeString("10:00"),
			GuestCount: 2,
			Status:     domain.ReservationStatusPending,
		}, nil)
	mockRepo.On("Cancel", mock.Anything, int64(1), int64(100), "").Return(nil)
	mockCapacity.On("Release", mock.Anything, mock.AnythingOfType("domain.CapacitySlotKey"), 2).
		Return(capacityRepo.ErrSlotNotFound)

	err := service.Cancel(context.Background(), 1, 100, &models.CancelReservationRequest{})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCapacity.AssertExpectations(t)
}

func TestService_Cancel_TerminalStatusRejected(t *testing.T) {
	tests := []struct {
		name   string
		status domain.ReservationStatus
	}{
		{name: "already cancelled", status: domain.ReservationStatusCancelled},
		{name: "completed", status: domain.ReservationStatusCompleted},
		{name: "no show", status: domain.ReservationStatusNoShow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockReservationRepository)
			service := NewService(mockRepo, new(MockCapacityRepository), fakeTxManager{}, nopLogger{}, false)

			mockRepo.On("GetByID", mock.Anything, int64(1), int64(100)).
				Return(&domain.Reservation{ID: 100, Status: tt.status}, nil)

			err := service.Cancel(context.Background(), 1, 100, &models.CancelReservationRequest{})

			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrCannotCancel))
			mockRepo.AssertNotCalled(t, "Cancel")
		})
	}
}

func TestService_Cancel_NotFound(t *testing.T) {
	mockRepo := new(MockReservationRepository)
	service := NewService(mockRepo, new(MockCapacityRepository), fakeTxManager{}, nopLogger{}, false)

	mockRepo.On("GetByID", mock.Anything, int64(1), int64(999)).
		Return(nil, reservationRepo.ErrReservationNotFound)

	err := service.Cancel(context.Background(), 1, 999, &models.CancelReservationRequest{})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrReservationNotFound))
}
