package partners

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
	partnerRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/partner"
	registryClient "github.com/gezilink/GL-BookingService/internal/integrations/partnerregistry"
	"github.com/gezilink/GL-BookingService/internal/service/partners/models"
)

// Service сервис партнёрских транзакций между тенантами
type Service struct {
	partnerRepo    PartnerRepository
	registryClient PartnerRegistryClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса партнёрских транзакций
func NewService(
	partnerRepo PartnerRepository,
	registryClient PartnerRegistryClient,
	logger Logger,
) *Service {
	return &Service{
		partnerRepo:    partnerRepo,
		registryClient: registryClient,
		logger:         logger,
	}
}

// Create создает партнёрскую транзакцию от имени тенанта-отправителя.
// Партнёрство между тенантами проверяется через PartnerRegistry до записи.
func (s *Service) Create(ctx context.Context, senderTenantID int64, req *models.CreateTransactionRequest) (*models.TransactionResponse, error) {
	s.logger.Info("Create: creating partner transaction %d -> %d", senderTenantID, req.ReceiverTenantID)

	if senderTenantID == req.ReceiverTenantID {
		return nil, fmt.Errorf("%w: sender and receiver must be different tenants", ErrInvalidInput)
	}
	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if req.ActivityName == "" {
		return nil, fmt.Errorf("%w: activity name is required", ErrInvalidInput)
	}
	if req.GuestCount <= 0 {
		return nil, fmt.Errorf("%w: guest count must be positive", ErrInvalidInput)
	}
	if req.AmountTl < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	if _, err := s.registryClient.CheckPartnership(ctx, senderTenantID, req.ReceiverTenantID); err != nil {
		if errors.Is(err, registryClient.ErrPartnershipNotFound) {
			s.logger.Warn("Create: no active partnership %d -> %d", senderTenantID, req.ReceiverTenantID)
			return nil, ErrPartnershipNotFound
		}
		s.logger.Error("Create: partner registry error: %v", err)
		return nil, fmt.Errorf("%w: Create - partner registry error: %v", ErrInternal, err)
	}

	transaction := &domain.PartnerTransaction{
		SenderTenantID:   senderTenantID,
		ReceiverTenantID: req.ReceiverTenantID,
		CustomerName:     req.CustomerName,
		ActivityName:     req.ActivityName,
		Date:             date,
		GuestCount:       req.GuestCount,
		AmountTl:         req.AmountTl,
		Notes:            req.Notes,
	}

	created, err := s.partnerRepo.Create(ctx, transaction)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created partner transaction id=%d", created.ID)
	return models.FromDomainTransaction(created), nil
}

// List получает партнёрские транзакции тенанта в заданной роли
func (s *Service) List(ctx context.Context, req *models.ListTransactionsRequest) (*models.TransactionListResponse, error) {
	role, err := req.ToDomainRole()
	if err != nil {
		s.logger.Warn("List: invalid role for tenant=%d", req.TenantID)
		return nil, fmt.Errorf("%w: invalid role", ErrInvalidInput)
	}

	transactions, err := s.partnerRepo.ListForTenant(ctx, req.TenantID, role)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d partner transactions for tenant=%d role=%s", len(transactions), req.TenantID, role)
	return models.FromDomainTransactionList(transactions), nil
}

// RequestDeletion запрашивает удаление транзакции от имени тенанта.
// Запросить может только сторона транзакции; повторный запрос
// поверх ожидающего отклоняется.
func (s *Service) RequestDeletion(ctx context.Context, tenantID, transactionID int64) error {
	s.logger.Info("RequestDeletion: tenant=%d requesting deletion of transaction id=%d", tenantID, transactionID)

	transaction, err := s.getTransaction(ctx, transactionID)
	if err != nil {
		return err
	}

	if !transaction.InvolvesTenant(tenantID) {
		s.logger.Warn("RequestDeletion: tenant=%d is not a party of transaction id=%d", tenantID, transactionID)
		return ErrAccessDenied
	}

	err = s.partnerRepo.RequestDeletion(ctx, transactionID, tenantID)
	if err != nil {
		switch {
		case errors.Is(err, partnerRepo.ErrTransactionNotFound):
			return ErrTransactionNotFound
		case errors.Is(err, partnerRepo.ErrDeletionAlreadyRequested):
			s.logger.Warn("RequestDeletion: transaction id=%d already has a pending request", transactionID)
			return ErrDeletionAlreadyRequested
		default:
			s.logger.Error("RequestDeletion: repository error for transaction id=%d: %v", transactionID, err)
			return fmt.Errorf("%w: RequestDeletion - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("RequestDeletion: deletion requested for transaction id=%d by tenant=%d", transactionID, tenantID)
	return nil
}

// ApproveDeletion подтверждает удаление транзакции.
// Подтвердить может только сторона, НЕ запрашивавшая удаление.
func (s *Service) ApproveDeletion(ctx context.Context, tenantID, transactionID int64) error {
	return s.resolveDeletion(ctx, tenantID, transactionID, true)
}

// RejectDeletion отклоняет запрос на удаление.
// Транзакция возвращается в исходное состояние, и удаление
// можно запросить заново.
func (s *Service) RejectDeletion(ctx context.Context, tenantID, transactionID int64) error {
	return s.resolveDeletion(ctx, tenantID, transactionID, false)
}

func (s *Service) resolveDeletion(ctx context.Context, tenantID, transactionID int64, approve bool) error {
	action := "reject"
	if approve {
		action = "approve"
	}
	s.logger.Info("resolveDeletion: tenant=%d attempting to %s deletion of transaction id=%d", tenantID, action, transactionID)

	transaction, err := s.getTransaction(ctx, transactionID)
	if err != nil {
		return err
	}

	if !transaction.InvolvesTenant(tenantID) {
		s.logger.Warn("resolveDeletion: tenant=%d is not a party of transaction id=%d", tenantID, transactionID)
		return ErrAccessDenied
	}

	err = s.partnerRepo.ResolveDeletion(ctx, transactionID, tenantID, approve)
	if err != nil {
		switch {
		case errors.Is(err, partnerRepo.ErrTransactionNotFound):
			return ErrTransactionNotFound
		case errors.Is(err, partnerRepo.ErrDeletionNotPending):
			s.logger.Warn("resolveDeletion: transaction id=%d has no pending request", transactionID)
			return ErrDeletionNotPending
		case errors.Is(err, partnerRepo.ErrUnauthorizedDeletionApproval):
			s.logger.Warn("resolveDeletion: tenant=%d cannot resolve own request for transaction id=%d", tenantID, transactionID)
			return ErrCannotResolveOwnRequest
		default:
			s.logger.Error("resolveDeletion: repository error for transaction id=%d: %v", transactionID, err)
			return fmt.Errorf("%w: resolveDeletion - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("resolveDeletion: transaction id=%d deletion %sd by tenant=%d", transactionID, action, tenantID)
	return nil
}

func (s *Service) getTransaction(ctx context.Context, transactionID int64) (*domain.PartnerTransaction, error) {
	transaction, err := s.partnerRepo.GetByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, partnerRepo.ErrTransactionNotFound) {
			s.logger.Warn("getTransaction: transaction id=%d not found", transactionID)
			return nil, ErrTransactionNotFound
		}
		s.logger.Error("getTransaction: repository error for transaction id=%d: %v", transactionID, err)
		return nil, fmt.Errorf("%w: getTransaction - repository error: %v", ErrInternal, err)
	}
	return transaction, nil
}
