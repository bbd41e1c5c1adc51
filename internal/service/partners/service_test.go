package partners

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gezilink/GL-BookingService/internal/domain"
	partnerRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/partner"
	"github.com/gezilink/GL-BookingService/internal/integrations/partnerregistry"
	"github.com/gezilink/GL-BookingService/internal/service/partners/models"
)

// MockPartnerRepository мок репозитория партнёрских транзакций
type MockPartnerRepository struct {
	mock.Mock
}

var _ PartnerRepository = (*MockPartnerRepository)(nil)

func (m *MockPartnerRepository) Create(ctx context.Context, t *domain.PartnerTransaction) (*domain.PartnerTransaction, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartnerTransaction), args.Error(1)
}

func (m *MockPartnerRepository) GetByID(ctx context.Context, transactionID int64) (*domain.PartnerTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartnerTransaction), args.Error(1)
}

func (m *MockPartnerRepository) ListForTenant(ctx context.Context, tenantID int64, role domain.PartnerRole) ([]*domain.PartnerTransaction, error) {
	args := m.Called(ctx, tenantID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PartnerTransaction), args.Error(1)
}

func (m *MockPartnerRepository) RequestDeletion(ctx context.Context, transactionID, requesterTenantID int64) error {
	args := m.Called(ctx, transactionID, requesterTenantID)
	return args.Error(0)
}

func (m *MockPartnerRepository) ResolveDeletion(ctx context.Context, transactionID, approverTenantID int64, approve bool) error {
	args := m.Called(ctx, transactionID, approverTenantID, approve)
	return args.Error(0)
}

// MockRegistryClient мок клиента реестра партнёрств
type MockRegistryClient struct {
	mock.Mock
}

var _ PartnerRegistryClient = (*MockRegistryClient)(nil)

func (m *MockRegistryClient) CheckPartnership(ctx context.Context, senderTenantID, receiverTenantID int64) (*partnerregistry.Partnership, error) {
	args := m.Called(ctx, senderTenantID, receiverTenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerregistry.Partnership), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func validCreateRequest() *models.CreateTransactionRequest {
	return &models.CreateTransactionRequest{
		ReceiverTenantID: 2,
		CustomerName:     "Иван Петров",
		ActivityName:     "Рафтинг",
		Date:             "2026-07-15",
		GuestCount:       4,
		AmountTl:         80000,
	}
}

func TestService_Create_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockPartnerRepository)
	mockRegistry := new(MockRegistryClient)
	service := NewService(mockRepo, mockRegistry, nopLogger{})

	mockRegistry.On("CheckPartnership", mock.Anything, int64(1), int64(2)).
		Return(&partnerregistry.Partnership{}, nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PartnerTransaction")).
		Run(func(args mock.Arguments) {
			transaction := args.Get(1).(*domain.PartnerTransaction)
			assert.Equal(t, int64(1), transaction.SenderTenantID)
			assert.Equal(t, int64(2), transaction.ReceiverTenantID)
			assert.Equal(t, 4, transaction.GuestCount)
			assert.Equal(t, int64(80000), transaction.AmountTl)
		}).
		Return(&domain.PartnerTransaction{
			ID:               10,
			SenderTenantID:   1,
			ReceiverTenantID: 2,
			DeletionStatus:   domain.DeletionStatusNone,
		}, nil)

	// Act
	resp, err := service.Create(context.Background(), 1, validCreateRequest())

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int64(10), resp.ID)
	mockRepo.AssertExpectations(t)
	mockRegistry.AssertExpectations(t)
}

func TestService_Create_NoPartnership(t *testing.T) {
	mockRepo := new(MockPartnerRepository)
	mockRegistry := new(MockRegistryClient)
	service := NewService(mockRepo, mockRegistry, nopLogger{})

	mockRegistry.On("CheckPartnership", mock.Anything, int64(1), int64(2)).
		Return(nil, partnerregistry.ErrPartnershipNotFound)

	resp, err := service.Create(context.Background(), 1, validCreateRequest())

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrPartnershipNotFound))
	assert.Nil(t, resp)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_Create_ValidationErrors(t *testing.T) {
	mockRepo := new(MockPartnerRepository)
	mockRegistry := new(MockRegistryClient)
	service := NewService(mockRepo, mockRegistry, nopLogger{})

	tests := []struct {
		name   string
		mutate func(r *models.CreateTransactionRequest)
	}{
		{
			name:   "sender equals receiver",
			mutate: func(r *models.CreateTransactionRequest) { r.ReceiverTenantID = 1 },
		},
		{
			name:   "empty customer name",
			mutate: func(r *models.CreateTransactionRequest) { r.CustomerName = "" },
		},
		{
			name:   "empty activity name",
			mutate: func(r *models.CreateTransactionRequest) { r.ActivityName = "" },
		},
		{
			name:   "zero guest count",
			mutate: func(r *models.CreateTransactionRequest) { r.GuestCount = 0 },
		},
		{
			name:   "negative amount",
			mutate: func(r *models.CreateTransactionRequest) { r.AmountTl = -1 },
		},
		{
			name:   "bad date format",
			mutate: func(r *models.CreateTransactionRequest) { r.Date = "15.07.2026" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			resp, err := service.Create(context.Background(), 1, req)

			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.Nil(t, resp)
		})
	}

	mockRegistry.AssertNotCalled(t, "CheckPartnership")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_List_DefaultsToAllRoles(t *testing.T) {
	mockRepo := new(MockPartnerRepository)
	service := NewService(mockRepo, new(MockRegistryClient), nopLogger{})

	mockRepo.On("ListForTenant", mock.Anything, int64(1), domain.PartnerRoleAll).
		Return([]*domain.PartnerTransaction{{ID: 10}, {ID: 11}}, nil)

	resp, err := service.List(context.Background(), &models.ListTransactionsRequest{TenantID: 1})

	assert.NoError(t, err)
	assert.Len(t, resp.Transactions, 2)
	mockRepo.AssertExpectations(t)
}

func TestService_List_InvalidRole(t *testing.T) {
	mockRepo := new(MockPartnerRepository)
	service := NewService(mockRepo, new(MockRegistryClient), nopLogger{})

	badRole := "owner"
	resp, err := service.List(context.Background(), &models.ListTransactionsRequest{TenantID: 1, Role: &badRole})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Nil(t, resp)
	mockRepo.AssertNotCalled(t, "ListForTenant")
}

func TestService_RequestDeletion_Success(t *testing.T) {
	mockRepo := new(MockPartnerRepository)
	service := NewService(mockRepo, new(MockRegistryClient), nopLogger{})

	mockRepo.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.PartnerTransaction{ID: 10, SenderTenantID: 1, ReceiverTenantID: 2}, nil)
	mockRepo.On("RequestDeletion", mock.Anything, int64(10), int64(1)).Return(nil)

	err := service.RequestDeletion(context.Background(), 1, 10)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_RequestDeletion_NotAParty(t *testing.T) {
	mockRepo := new(MockPartnerRepository)
	service := NewService(mockRepo, new(MockRegistryClient), nopLogger{})

	mockRepo.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.PartnerTransaction{ID: 10, SenderTenantID: 1, ReceiverTenantID: 2}, nil)

	err := service.RequestDeletion(context.Background(), 3, 10)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccessDenied))
	mockRepo.AssertNotCalled(t, "RequestDeletion")
}

func TestService_RequestDeletion_AlreadyRequested(t *testing.T) {
	mockRepo := new(MockPartnerRepository)
	service := NewService(mockRepo, new(MockRegistryClient), nopLogger{})

	mockRepo.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.PartnerTransaction{ID: 10, SenderTenantID: 1, ReceiverTenantID: 2}, nil)
	mockRepo.On("RequestDeletion", mock.Anything, int64(10), int64(1)).
		Return(partnerRepo.ErrDeletionAlreadyRequested)

	err := service.RequestDeletion(context.Background(), 1, 10)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeletionAlreadyRequested))
}

func TestService_ApproveDeletion_ByOtherParty(t *testing.T) {
	// Подтвердить удаление может только сторона, НЕ запрашивавшая его
	mockRepo := new(MockPartnerRepository)
	service := NewService(mockRepo, new(MockRegistryClient), nopLogger{})

	requester := int64(1)
	mockRepo.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.PartnerTransaction{
			ID:                          10,
			SenderTenantID:              1,
			ReceiverTenantID:            2,
			DeletionStatus:              domain.DeletionStatusPending,
			DeletionRequestedByTenantID: &requester,
		}, nil)
	mockRepo.On("ResolveDeletion", mock.Anything, int64(10), int64(2), true).Return(nil)

	err := service.ApproveDeletion(context.Background(), 2, 10)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_ApproveDeletion_OwnRequestRejected(t *testing.T) {
	// Ключевой инвариант авторизации: автор запроса не может сам
	// его подтвердить
	mockRepo := new(MockPartnerRepository)
	service := NewService(mockRepo, new(MockRegistryClient), nopLogger{})

	requester := int64(1)
	mockRepo.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.PartnerTransaction{
			ID:                          10,
			SenderTenantID:              1,
			ReceiverTenantID:            2,
			DeletionStatus:              domain.DeletionStatusPending,
			DeletionRequestedByTenantID: &requester,
		}, nil)
	mockRepo.On("ResolveDeletion", mock.Anything, int64(10), int64(1), true).
		Return(partnerRepo.ErrUnauthorizedDeletionApproval)

	err := service.ApproveDeletion(context.Background(), 1, 10)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrCannotResolveOwnRequest))
}

func TestService_RejectDeletion_Success(t *testing.T) {
	mockRepo := new(MockPartnerRepository)
	service := NewService(mockRepo, new(MockRegistryClient), nopLogger{})

	requester := int64(1)
	mockRepo.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.PartnerTransaction{
			ID:                          10,
			SenderTenantID:              1,
			ReceiverTenantID:            2,
			DeletionStatus:              domain.DeletionStatusPending,
			DeletionRequestedByTenantID: &requester,
		}, nil)
	mockRepo.On("ResolveDeletion", mock.Anything, int64(10), int64(2), false).Return(nil)

	err := service.RejectDeletion(context.Background(), 2, 10)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_ResolveDeletion_NotPending(t *testing.T) {
	mockRepo := new(MockPartnerRepository)
	service := NewService(mockRepo, new(MockRegistryClient), nopLogger{})

	mockRepo.On("GetByID", mock.Anything, int64(10)).
		Return(&domain.PartnerTransaction{
			ID:               10,
			SenderTenantID:   1,
			ReceiverTenantID: 2,
			DeletionStatus:   domain.DeletionStatusNone,
		}, nil)
	mockRepo.On("ResolveDeletion", mock.Anything, int64(10), int64(2), true).
		Return(partnerRepo.ErrDeletionNotPending)

	err := service.ApproveDeletion(context.Background(), 2, 10)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeletionNotPending))
}

func TestService_ResolveDeletion_TransactionNotFound(t *testing.T) {
	mockRepo := new(MockPartnerRepository)
	service := NewService(mockRepo, new(MockRegistryClient), nopLogger{})

	mockRepo.On("GetByID", mock.Anything, int64(99)).
		Return(nil, partnerRepo.ErrTransactionNotFound)

	err := service.ApproveDeletion(context.Background(), 2, 99)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransactionNotFound))
	mockRepo.AssertNotCalled(t, "ResolveDeletion")
}
