package rates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gezilink/GL-BookingService/internal/domain"
	rateRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/rate"
	"github.com/gezilink/GL-BookingService/pkg/ptr"
)

// MockRateRepository мок репозитория тарифов
type MockRateRepository struct {
	mock.Mock
}

var _ RateRepository = (*MockRateRepository)(nil)

func (m *MockRateRepository) Create(ctx context.Context, rate *domain.AgencyActivityRate) (*domain.AgencyActivityRate, error) {
	args := m.Called(ctx, rate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgencyActivityRate), args.Error(1)
}

func (m *MockRateRepository) ListActiveByAgency(ctx context.Context, tenantID, agencyID int64) ([]*domain.AgencyActivityRate, error) {
	args := m.Called(ctx, tenantID, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AgencyActivityRate), args.Error(1)
}

func (m *MockRateRepository) Update(ctx context.Context, tenantID, rateID int64, cmd domain.UpdateRateCommand) error {
	args := m.Called(ctx, tenantID, rateID, cmd)
	return args.Error(0)
}

func (m *MockRateRepository) Deactivate(ctx context.Context, tenantID, rateID int64) error {
	args := m.Called(ctx, tenantID, rateID)
	return args.Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	return ptr.Ptr(date(s))
}

func int64Ptr(v int64) *int64 {
	return ptr.Ptr(v)
}

func TestPickEffectiveRate_SpecificBeatsGeneral(t *testing.T) {
	// Arrange: специфичный тариф старше общего, но всё равно приоритетнее
	specific := &domain.AgencyActivityRate{
		ID:               1,
		ActivityID:       int64Ptr(42),
		PayoutPerGuestTl: 15000,
		ValidFrom:        date("2024-01-01"),
		IsActive:         true,
	}
	general := &domain.AgencyActivityRate{
		ID:               2,
		ActivityID:       nil,
		PayoutPerGuestTl: 10000,
		ValidFrom:        date("2024-06-01"),
		IsActive:         true,
	}

	// Act
	got := pickEffectiveRate([]*domain.AgencyActivityRate{general, specific}, int64Ptr(42), date("2024-07-01"))

	// Assert
	assert.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, int64(15000), got.PayoutPerGuestTl)
}

func TestPickEffectiveRate_LaterValidFromWins(t *testing.T) {
	older := &domain.AgencyActivityRate{
		ID:        1,
		ValidFrom: date("2024-01-01"),
		IsActive:  true,
	}
	newer := &domain.AgencyActivityRate{
		ID:        2,
		ValidFrom: date("2024-03-01"),
		IsActive:  true,
	}

	got := pickEffectiveRate([]*domain.AgencyActivityRate{older, newer}, nil, date("2024-07-01"))

	assert.NotNil(t, got)
	assert.Equal(t, int64(2), got.ID)
}

func TestPickEffectiveRate_EqualValidFromHigherIDWins(t *testing.T) {
	first := &domain.AgencyActivityRate{
		ID:        10,
		ValidFrom: date("2024-01-01"),
		IsActive:  true,
	}
	second := &domain.AgencyActivityRate{
		ID:        11,
		ValidFrom: date("2024-01-01"),
		IsActive:  true,
	}

	got := pickEffectiveRate([]*domain.AgencyActivityRate{first, second}, nil, date("2024-02-01"))

	assert.NotNil(t, got)
	assert.Equal(t, int64(11), got.ID)
}

func TestPickEffectiveRate_OrderIndependent(t *testing.T) {
	a := &domain.AgencyActivityRate{ID: 1, ValidFrom: date("2024-01-01"), IsActive: true}
	b := &domain.AgencyActivityRate{ID: 2, ValidFrom: date("2024-03-01"), IsActive: true}
	c := &domain.AgencyActivityRate{ID: 3, ValidFrom: date("2024-02-01"), IsActive: true}

	orders := [][]*domain.AgencyActivityRate{
		{a, b, c},
		{c, b, a},
		{b, a, c},
	}

	for _, rates := range orders {
		got := pickEffectiveRate(rates, nil, date("2024-07-01"))
		assert.NotNil(t, got)
		assert.Equal(t, int64(2), got.ID)
	}
}

func TestPickEffectiveRate_SkipsInactiveAndOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		rate *domain.AgencyActivityRate
	}{
		{
			name: "inactive rate",
			rate: &domain.AgencyActivityRate{ID: 1, ValidFrom: date("2024-01-01"), IsActive: false},
		},
		{
			name: "not yet effective",
			rate: &domain.AgencyActivityRate{ID: 2, ValidFrom: date("2024-09-01"), IsActive: true},
		},
		{
			name: "already expired",
			rate: &domain.AgencyActivityRate{
				ID:        3,
				ValidFrom: date("2024-01-01"),
				ValidTo:   datePtr("2024-05-01"),
				IsActive:  true,
			},
		},
		{
			name: "other activity",
			rate: &domain.AgencyActivityRate{
				ID:         4,
				ActivityID: int64Ptr(99),
				ValidFrom:  date("2024-01-01"),
				IsActive:   true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pickEffectiveRate([]*domain.AgencyActivityRate{tt.rate}, int64Ptr(42), date("2024-07-01"))
			assert.Nil(t, got)
		})
	}
}

func TestPickEffectiveRate_ValidToInclusive(t *testing.T) {
	rate := &domain.AgencyActivityRate{
		ID:        1,
		ValidFrom: date("2024-01-01"),
		ValidTo:   datePtr("2024-07-01"),
		IsActive:  true,
	}

	// Последний день действия ещё включён
	got := pickEffectiveRate([]*domain.AgencyActivityRate{rate}, nil, date("2024-07-01"))
	assert.NotNil(t, got)

	got = pickEffectiveRate([]*domain.AgencyActivityRate{rate}, nil, date("2024-07-02"))
	assert.Nil(t, got)
}

func TestService_Resolve_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockRateRepository)
	service := NewService(mockRepo, nopLogger{})

	rate := &domain.AgencyActivityRate{
		ID:               7,
		TenantID:         1,
		AgencyID:         5,
		ActivityID:       int64Ptr(42),
		PayoutPerGuestTl: 20000,
		ValidFrom:        date("2024-01-01"),
		IsActive:         true,
	}
	mockRepo.On("ListActiveByAgency", mock.Anything, int64(1), int64(5)).
		Return([]*domain.AgencyActivityRate{rate}, nil)

	// Act
	got, err := service.Resolve(context.Background(), 1, 5, int64Ptr(42), date("2024-07-01"))

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, int64(7), got.ID)
	mockRepo.AssertExpectations(t)
}

func TestService_Resolve_NoEffectiveRate(t *testing.T) {
	// Arrange: репозиторий отвечает пустым списком, сервис отдаёт nil без
	// ошибки, чтобы вызывающий код упал на дефолт агентства
	mockRepo := new(MockRateRepository)
	service := NewService(mockRepo, nopLogger{})

	mockRepo.On("ListActiveByAgency", mock.Anything, int64(1), int64(5)).
		Return([]*domain.AgencyActivityRate{}, nil)

	// Act
	got, err := service.Resolve(context.Background(), 1, 5, nil, date("2024-07-01"))

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, got)
	mockRepo.AssertExpectations(t)
}

func TestService_Resolve_RepositoryError(t *testing.T) {
	mockRepo := new(MockRateRepository)
	service := NewService(mockRepo, nopLogger{})

	mockRepo.On("ListActiveByAgency", mock.Anything, int64(1), int64(5)).
		Return(nil, errors.New("connection refused"))

	got, err := service.Resolve(context.Background(), 1, 5, nil, date("2024-07-01"))

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
	assert.Nil(t, got)
	mockRepo.AssertExpectations(t)
}

func TestService_CreateRate_Success(t *testing.T) {
	mockRepo := new(MockRateRepository)
	service := NewService(mockRepo, nopLogger{})

	rate := &domain.AgencyActivityRate{
		TenantID:         1,
		AgencyID:         5,
		PayoutPerGuestTl: 12000,
		ValidFrom:        date("2024-01-01"),
		IsActive:         true,
	}
	created := &domain.AgencyActivityRate{ID: 3}
	mockRepo.On("Create", mock.Anything, rate).Return(created, nil)

	got, err := service.CreateRate(context.Background(), rate)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	mockRepo.AssertExpectations(t)
}

func TestService_CreateRate_NegativePayout(t *testing.T) {
	mockRepo := new(MockRateRepository)
	service := NewService(mockRepo, nopLogger{})

	rate := &domain.AgencyActivityRate{
		PayoutPerGuestTl: -100,
		ValidFrom:        date("2024-01-01"),
	}

	got, err := service.CreateRate(context.Background(), rate)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Nil(t, got)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_CreateRate_ValidToBeforeValidFrom(t *testing.T) {
	mockRepo := new(MockRateRepository)
	service := NewService(mockRepo, nopLogger{})

	rate := &domain.AgencyActivityRate{
		PayoutPerGuestTl: 100,
		ValidFrom:        date("2024-06-01"),
		ValidTo:          datePtr("2024-01-01"),
	}

	got, err := service.CreateRate(context.Background(), rate)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Nil(t, got)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_UpdateRate_NotFound(t *testing.T) {
	mockRepo := new(MockRateRepository)
	service := NewService(mockRepo, nopLogger{})

	cmd := domain.UpdateRateCommand{PayoutPerGuestTl: int64Ptr(500)}
	mockRepo.On("Update", mock.Anything, int64(1), int64(77), cmd).
		Return(rateRepo.ErrRateNotFound)

	err := service.UpdateRate(context.Background(), 1, 77, cmd)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateNotFound))
	mockRepo.AssertExpectations(t)
}

func TestService_UpdateRate_EmptyCommand(t *testing.T) {
	mockRepo := new(MockRateRepository)
	service := NewService(mockRepo, nopLogger{})

	cmd := domain.UpdateRateCommand{}
	mockRepo.On("Update", mock.Anything, int64(1), int64(77), cmd).
		Return(rateRepo.ErrEmptyUpdate)

	err := service.UpdateRate(context.Background(), 1, 77, cmd)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	mockRepo.AssertExpectations(t)
}

func TestService_UpdateRate_NegativePayout(t *testing.T) {
	mockRepo := new(MockRateRepository)
	service := NewService(mockRepo, nopLogger{})

	cmd := domain.UpdateRateCommand{PayoutPerGuestTl: int64Ptr(-1)}

	err := service.UpdateRate(context.Background(), 1, 77, cmd)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	mockRepo.AssertNotCalled(t, "Update")
}

func TestService_DeactivateRate_Success(t *testing.T) {
	mockRepo := new(MockRateRepository)
	service := NewService(mockRepo, nopLogger{})

	mockRepo.On("Deactivate", mock.Anything, int64(1), int64(9)).Return(nil)

	err := service.DeactivateRate(context.Background(), 1, 9)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_DeactivateRate_NotFound(t *testing.T) {
	mockRepo := new(MockRateRepository)
	service := NewService(mockRepo, nopLogger{})

	mockRepo.On("Deactivate", mock.Anything, int64(1), int64(9)).
		Return(rateRepo.ErrRateNotFound)

	err := service.DeactivateRate(context.Background(), 1, 9)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateNotFound))
	mockRepo.AssertExpectations(t)
}
