package settlements

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gezilink/GL-BookingService/internal/domain"
	agencyRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/agency"
	reservationRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/reservation"
	settlementRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/settlement"
	"github.com/gezilink/GL-BookingService/internal/service/settlements/models"
)

// MockSettlementRepository мок репозитория взаиморасчётов
type MockSettlementRepository struct {
	mock.Mock
}

var _ SettlementRepository = (*MockSettlementRepository)(nil)

func (m *MockSettlementRepository) Create(ctx context.Context, s *domain.Settlement) (*domain.Settlement, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) GetByID(ctx context.Context, tenantID, settlementID int64) (*domain.Settlement, error) {
	args := m.Called(ctx, tenantID, settlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) GetByIDForUpdate(ctx context.Context, tenantID, settlementID int64) (*domain.Settlement, error) {
	args := m.Called(ctx, tenantID, settlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) AddPayment(ctx context.Context, p *domain.SettlementPayment) (*domain.SettlementPayment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementPayment), args.Error(1)
}

func (m *MockSettlementRepository) UpdateTotals(ctx context.Context, tenantID, settlementID int64, paidAmountTl, remainingTl int64, status domain.SettlementStatus) error {
	args := m.Called(ctx, tenantID, settlementID, paidAmountTl, remainingTl, status)
	return args.Error(0)
}

func (m *MockSettlementRepository) ListByAgency(ctx context.Context, tenantID, agencyID int64) ([]*domain.Settlement, error) {
	args := m.Called(ctx, tenantID, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListForTenant(ctx context.Context, tenantID int64) ([]*domain.Settlement, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Settlement), args.Error(1)
}

// MockReservationRepository мок репозитория бронирований
type MockReservationRepository struct {
	mock.Mock
}

var _ ReservationRepository = (*MockReservationRepository)(nil)

func (m *MockReservationRepository) ListUnsettledByAgency(ctx context.Context, tenantID, agencyID int64) ([]*domain.Reservation, error) {
	args := m.Called(ctx, tenantID, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) MarkSettled(ctx context.Context, ids []int64, settlementID int64) error {
	args := m.Called(ctx, ids, settlementID)
	return args.Error(0)
}

// MockAgencyRepository мок репозитория агентств
type MockAgencyRepository struct {
	mock.Mock
}

var _ AgencyRepository = (*MockAgencyRepository)(nil)

func (m *MockAgencyRepository) GetByID(ctx context.Context, tenantID, agencyID int64) (*domain.Agency, error) {
	args := m.Called(ctx, tenantID, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agency), args.Error(1)
}

// MockRateResolver мок резолвера тарифов
type MockRateResolver struct {
	mock.Mock
}

var _ RateResolver = (*MockRateResolver)(nil)

func (m *MockRateResolver) Resolve(ctx context.Context, tenantID, agencyID int64, activityID *int64, date time.Time) (*domain.AgencyActivityRate, error) {
	args := m.Called(ctx, tenantID, agencyID, activityID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgencyActivityRate), args.Error(1)
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

// paymentRecorder записывает статусы платежей для метрик
type paymentRecorder struct {
	statuses []string
}

func (r *paymentRecorder) IncSettlementPayment(status string) {
	r.statuses = append(r.statuses, status)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type testEnv struct {
	settlementRepo  *MockSettlementRepository
	reservationRepo *MockReservationRepository
	agencyRepo      *MockAgencyRepository
	rateResolver    *MockRateResolver
	metrics         *paymentRecorder
	service         *Service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		settlementRepo:  new(MockSettlementRepository),
		reservationRepo: new(MockReservationRepository),
		agencyRepo:      new(MockAgencyRepository),
		rateResolver:    new(MockRateResolver),
		metrics:         &paymentRecorder{},
	}
	env.service = NewService(
		env.settlementRepo,
		env.reservationRepo,
		env.agencyRepo,
		env.rateResolver,
		fakeTxManager{},
		env.metrics,
		nopLogger{},
	)
	return env
}

func TestService_CreateSettlement_Success(t *testing.T) {
	// Arrange: две брони, первая с контрактным тарифом, вторая падает
	// на дефолт агентства
	env := newTestEnv()

	agency := &domain.Agency{ID: 5, TenantID: 1, DefaultPayoutPerGuestTl: 10000}
	env.agencyRepo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(agency, nil)

	tourDate := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	reservations := []*domain.Reservation{
		{ID: 100, ActivityID: 42, GuestCount: 3, Date: tourDate},
		{ID: 101, ActivityID: 43, GuestCount: 2, Date: tourDate},
	}
	env.reservationRepo.On("ListUnsettledByAgency", mock.Anything, int64(1), int64(5)).
		Return(reservations, nil)

	activity42 := int64(42)
	env.rateResolver.On("Resolve", mock.Anything, int64(1), int64(5), &activity42, tourDate).
		Return(&domain.AgencyActivityRate{ID: 7, PayoutPerGuestTl: 15000}, nil)
	activity43 := int64(43)
	env.rateResolver.On("Resolve", mock.Anything, int64(1), int64(5), &activity43, tourDate).
		Return(nil, nil)

	env.settlementRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Settlement")).
		Run(func(args mock.Arguments) {
			settlement := args.Get(1).(*domain.Settlement)
			// 3 * 15000 по тарифу + 2 * 10000 по дефолту агентства
			assert.Equal(t, int64(65000), settlement.PayoutTl)
			assert.Equal(t, int64(65000), settlement.RemainingTl)
			assert.Equal(t, domain.SettlementStatusOpen, settlement.Status)
			assert.Len(t, settlement.Entries, 2)
			assert.Equal(t, int64(15000), settlement.Entries[0].PayoutPerGuestTl)
			assert.Equal(t, int64(45000), settlement.Entries[0].AmountTl)
			assert.Equal(t, int64(10000), settlement.Entries[1].PayoutPerGuestTl)
			assert.Equal(t, int64(20000), settlement.Entries[1].AmountTl)
		}).
		Return(&domain.Settlement{
			ID:          200,
			TenantID:    1,
			AgencyID:    5,
			PayoutTl:    65000,
			RemainingTl: 65000,
			Status:      domain.SettlementStatusOpen,
			Entries: []domain.SettlementEntry{
				{ReservationID: 100, AmountTl: 45000},
				{ReservationID: 101, AmountTl: 20000},
			},
		}, nil)

	env.reservationRepo.On("MarkSettled", mock.Anything, []int64{100, 101}, int64(200)).
		Return(nil)

	// Act
	resp, err := env.service.CreateSettlement(context.Background(), 1, 5)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int64(200), resp.ID)
	assert.Equal(t, int64(65000), resp.PayoutTl)
	env.settlementRepo.AssertExpectations(t)
	env.reservationRepo.AssertExpectations(t)
	env.rateResolver.AssertExpectations(t)
}

func TestService_CreateSettlement_NothingToSettle(t *testing.T) {
	env := newTestEnv()

	env.agencyRepo.On("GetByID", mock.Anything, int64(1), int64(5)).
		Return(&domain.Agency{ID: 5}, nil)
	env.reservationRepo.On("ListUnsettledByAgency", mock.Anything, int64(1), int64(5)).
		Return([]*domain.Reservation{}, nil)

	resp, err := env.service.CreateSettlement(context.Background(), 1, 5)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrNothingToSettle))
	assert.Nil(t, resp)
	env.settlementRepo.AssertNotCalled(t, "Create")
}

func TestService_CreateSettlement_AgencyNotFound(t *testing.T) {
	env := newTestEnv()

	env.agencyRepo.On("GetByID", mock.Anything, int64(1), int64(5)).
		Return(nil, agencyRepo.ErrAgencyNotFound)

	resp, err := env.service.CreateSettlement(context.Background(), 1, 5)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrAgencyNotFound))
	assert.Nil(t, resp)
	env.reservationRepo.AssertNotCalled(t, "ListUnsettledByAgency")
}

func TestService_CreateSettlement_ConcurrentSweep(t *testing.T) {
	// Пометка броней защищена условием settlement_id IS NULL:
	// конкурентный свод проявляется как ErrAlreadySettled
	env := newTestEnv()

	env.agencyRepo.On("GetByID", mock.Anything, int64(1), int64(5)).
		Return(&domain.Agency{ID: 5, DefaultPayoutPerGuestTl: 10000}, nil)

	tourDate := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	env.reservationRepo.On("ListUnsettledByAgency", mock.Anything, int64(1), int64(5)).
		Return([]*domain.Reservation{{ID: 100, ActivityID: 42, GuestCount: 1, Date: tourDate}}, nil)
	env.rateResolver.On("Resolve", mock.Anything, int64(1), int64(5), mock.Anything, tourDate).
		Return(nil, nil)
	env.settlementRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Settlement")).
		Return(&domain.Settlement{ID: 200}, nil)
	env.reservationRepo.On("MarkSettled", mock.Anything, []int64{100}, int64(200)).
		Return(reservationRepo.ErrAlreadySettled)

	resp, err := env.service.CreateSettlement(context.Background(), 1, 5)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadySettled))
	assert.Nil(t, resp)
}

func TestService_RecordPayment_PartialPayment(t *testing.T) {
	// Arrange
	env := newTestEnv()

	open := &domain.Settlement{
		ID:           200,
		TenantID:     1,
		PayoutTl:     100000,
		PaidAmountTl: 0,
		RemainingTl:  100000,
		Status:       domain.SettlementStatusOpen,
	}
	env.settlementRepo.On("GetByIDForUpdate", mock.Anything, int64(1), int64(200)).Return(open, nil)
	env.settlementRepo.On("AddPayment", mock.Anything, mock.AnythingOfType("*domain.SettlementPayment")).
		Return(&domain.SettlementPayment{ID: 1, AmountTl: 40000}, nil)
	env.settlementRepo.On("UpdateTotals", mock.Anything, int64(1), int64(200),
		int64(40000), int64(60000), domain.SettlementStatusOpen).Return(nil)
	env.settlementRepo.On("GetByID", mock.Anything, int64(1), int64(200)).
		Return(&domain.Settlement{
			ID:           200,
			PaidAmountTl: 40000,
			RemainingTl:  60000,
			Status:       domain.SettlementStatusOpen,
		}, nil)

	// Act
	resp, err := env.service.RecordPayment(context.Background(), 1, 200,
		&models.RecordPaymentRequest{AmountTl: 40000})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(60000), resp.RemainingTl)
	assert.Equal(t, string(domain.SettlementStatusOpen), resp.Status)
	assert.Equal(t, []string{"recorded"}, env.metrics.statuses)
	env.settlementRepo.AssertExpectations(t)
}

func TestService_RecordPayment_OverpaymentClampsRemaining(t *testing.T) {
	// Переплата срезается до нуля, взаиморасчёт закрывается
	env := newTestEnv()

	open := &domain.Settlement{
		ID:           200,
		TenantID:     1,
		PayoutTl:     100000,
		PaidAmountTl: 0,
		RemainingTl:  100000,
		Status:       domain.SettlementStatusOpen,
	}
	env.settlementRepo.On("GetByIDForUpdate", mock.Anything, int64(1), int64(200)).Return(open, nil)
	env.settlementRepo.On("AddPayment", mock.Anything, mock.AnythingOfType("*domain.SettlementPayment")).
		Return(&domain.SettlementPayment{ID: 1, AmountTl: 120000}, nil)
	env.settlementRepo.On("UpdateTotals", mock.Anything, int64(1), int64(200),
		int64(120000), int64(0), domain.SettlementStatusPaid).Return(nil)
	env.settlementRepo.On("GetByID", mock.Anything, int64(1), int64(200)).
		Return(&domain.Settlement{
			ID:           200,
			PaidAmountTl: 120000,
			RemainingTl:  0,
			Status:       domain.SettlementStatusPaid,
		}, nil)

	resp, err := env.service.RecordPayment(context.Background(), 1, 200,
		&models.RecordPaymentRequest{AmountTl: 120000})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), resp.RemainingTl)
	assert.Equal(t, string(domain.SettlementStatusPaid), resp.Status)
	env.settlementRepo.AssertExpectations(t)
}

func TestService_RecordPayment_AlreadyPaid(t *testing.T) {
	// Переход open -> paid терминален: платёж в закрытый взаиморасчёт
	// отклоняется без записи
	env := newTestEnv()

	paid := &domain.Settlement{
		ID:       200,
		TenantID: 1,
		Status:   domain.SettlementStatusPaid,
	}
	env.settlementRepo.On("GetByIDForUpdate", mock.Anything, int64(1), int64(200)).Return(paid, nil)

	resp, err := env.service.RecordPayment(context.Background(), 1, 200,
		&models.RecordPaymentRequest{AmountTl: 100})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrSettlementAlreadyPaid))
	assert.Nil(t, resp)
	assert.Equal(t, []string{"rejected_already_paid"}, env.metrics.statuses)
	env.settlementRepo.AssertNotCalled(t, "AddPayment")
}

func TestService_RecordPayment_NonPositiveAmount(t *testing.T) {
	env := newTestEnv()

	resp, err := env.service.RecordPayment(context.Background(), 1, 200,
		&models.RecordPaymentRequest{AmountTl: 0})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Nil(t, resp)
	env.settlementRepo.AssertNotCalled(t, "GetByIDForUpdate")
}

func TestService_RecordPayment_NotFound(t *testing.T) {
	env := newTestEnv()

	env.settlementRepo.On("GetByIDForUpdate", mock.Anything, int64(1), int64(999)).
		Return(nil, settlementRepo.ErrSettlementNotFound)

	resp, err := env.service.RecordPayment(context.Background(), 1, 999,
		&models.RecordPaymentRequest{AmountTl: 100})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrSettlementNotFound))
	assert.Nil(t, resp)
}

func TestService_GetByID_NotFound(t *testing.T) {
	env := newTestEnv()

	env.settlementRepo.On("GetByID", mock.Anything, int64(1), int64(999)).
		Return(nil, settlementRepo.ErrSettlementNotFound)

	resp, err := env.service.GetByID(context.Background(), 1, 999)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrSettlementNotFound))
	assert.Nil(t, resp)
}

func TestService_List_ByAgency(t *testing.T) {
	env := newTestEnv()

	agencyID := int64(5)
	env.settlementRepo.On("ListByAgency", mock.Anything, int64(1), int64(5)).
		Return([]*domain.Settlement{{ID: 200, AgencyID: 5}}, nil)

	resp, err := env.service.List(context.Background(), 1, &agencyID)

	assert.NoError(t, err)
	assert.Len(t, resp.Settlements, 1)
	env.settlementRepo.AssertNotCalled(t, "ListForTenant")
}

func TestService_List_ForTenant(t *testing.T) {
	env := newTestEnv()

	env.settlementRepo.On("ListForTenant", mock.Anything, int64(1)).
		Return([]*domain.Settlement{{ID: 200}, {ID: 201}}, nil)

	resp, err := env.service.List(context.Background(), 1, nil)

	assert.NoError(t, err)
	assert.Len(t, resp.Settlements, 2)
	env.settlementRepo.AssertNotCalled(t, "ListByAgency")
}
