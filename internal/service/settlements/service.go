package settlements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
	agencyRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/agency"
	reservationRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/reservation"
	settlementRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/settlement"
	"github.com/gezilink/GL-BookingService/internal/service/settlements/models"
)

// Service сервис взаиморасчётов с агентствами
type Service struct {
	settlementRepo  SettlementRepository
	reservationRepo ReservationRepository
	agencyRepo      AgencyRepository
	rateResolver    RateResolver
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewService создает новый экземпляр сервиса взаиморасчётов
func NewService(
	settlementRepo SettlementRepository,
	reservationRepo ReservationRepository,
	agencyRepo AgencyRepository,
	rateResolver RateResolver,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		settlementRepo:  settlementRepo,
		reservationRepo: reservationRepo,
		agencyRepo:      agencyRepo,
		rateResolver:    rateResolver,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// CreateSettlement сводит все неоплаченные брони агентства в один
// взаиморасчёт. Весь свод выполняется в одной транзакции: выборка
// броней под FOR UPDATE, создание взаиморасчёта со строками и пометка
// броней. Тариф фиксируется в строке на момент свода; при отсутствии
// действующего тарифа применяется дефолт агентства.
func (s *Service) CreateSettlement(ctx context.Context, tenantID, agencyID int64) (*models.SettlementResponse, error) {
	s.logger.Info("CreateSettlement: sweeping unsettled reservations for tenant=%d agency=%d", tenantID, agencyID)

	agency, err := s.agencyRepo.GetByID(ctx, tenantID, agencyID)
	if err != nil {
		if errors.Is(err, agencyRepo.ErrAgencyNotFound) {
			s.logger.Warn("CreateSettlement: agency id=%d not found", agencyID)
			return nil, ErrAgencyNotFound
		}
		s.logger.Error("CreateSettlement: agency repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSettlement - agency repository error: %v", ErrInternal, err)
	}

	var created *domain.Settlement

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		reservations, err := s.reservationRepo.ListUnsettledByAgency(ctx, tenantID, agencyID)
		if err != nil {
			return err
		}
		if len(reservations) == 0 {
			return ErrNothingToSettle
		}

		entries := make([]domain.SettlementEntry, 0, len(reservations))
		ids := make([]int64, 0, len(reservations))
		var totalPayout int64

		for _, reservation := range reservations {
			rate, err := s.rateResolver.Resolve(ctx, tenantID, agencyID, &reservation.ActivityID, reservation.Date)
			if err != nil {
				return err
			}

			payoutPerGuest := agency.DefaultPayoutPerGuestTl
			if rate != nil {
				payoutPerGuest = rate.PayoutPerGuestTl
			}

			amount := int64(reservation.GuestCount) * payoutPerGuest
			totalPayout += amount

			entries = append(entries, domain.SettlementEntry{
				ReservationID:    reservation.ID,
				GuestCount:       reservation.GuestCount,
				PayoutPerGuestTl: payoutPerGuest,
				AmountTl:         amount,
			})
			ids = append(ids, reservation.ID)
		}

		settlement := &domain.Settlement{
			TenantID:     tenantID,
			AgencyID:     agencyID,
			PayoutTl:     totalPayout,
			PaidAmountTl: 0,
			RemainingTl:  totalPayout,
			Status:       domain.SettlementStatusOpen,
			Entries:      entries,
		}

		created, err = s.settlementRepo.Create(ctx, settlement)
		if err != nil {
			return err
		}

		// Пометка броней защищена условием settlement_id IS NULL:
		// конкурентный свод тех же броней откатит всю транзакцию
		return s.reservationRepo.MarkSettled(ctx, ids, created.ID)
	})
	if err != nil {
		if errors.Is(err, ErrNothingToSettle) {
			s.logger.Info("CreateSettlement: nothing to settle for agency=%d", agencyID)
			return nil, ErrNothingToSettle
		}
		if errors.Is(err, reservationRepo.ErrAlreadySettled) {
			s.logger.Warn("CreateSettlement: concurrent sweep detected for agency=%d", agencyID)
			return nil, ErrAlreadySettled
		}
		s.logger.Error("CreateSettlement: transaction error for agency=%d: %v", agencyID, err)
		return nil, fmt.Errorf("%w: CreateSettlement - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSettlement: created settlement id=%d for agency=%d, payout=%d, entries=%d",
		created.ID, agencyID, created.PayoutTl, len(created.Entries))
	return models.FromDomainSettlement(created), nil
}

// RecordPayment проводит платёж по открытому взаиморасчёту.
// Строка взаиморасчёта блокируется на время платежа; переход
// open -> paid терминален, переплата срезается до нуля в remaining.
func (s *Service) RecordPayment(ctx context.Context, tenantID, settlementID int64, req *models.RecordPaymentRequest) (*models.SettlementResponse, error) {
	if req.AmountTl <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}

	s.logger.Info("RecordPayment: recording payment of %d for settlement id=%d", req.AmountTl, settlementID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		settlement, err := s.settlementRepo.GetByIDForUpdate(ctx, tenantID, settlementID)
		if err != nil {
			return err
		}

		if settlement.IsPaid() {
			return ErrSettlementAlreadyPaid
		}

		payment := &domain.SettlementPayment{
			SettlementID: settlementID,
			AmountTl:     req.AmountTl,
			Method:       req.Method,
			Notes:        req.Notes,
			PaidAt:       time.Now(),
		}
		if _, err := s.settlementRepo.AddPayment(ctx, payment); err != nil {
			return err
		}

		newPaid := settlement.PaidAmountTl + req.AmountTl
		remaining := settlement.PayoutTl - newPaid
		if remaining < 0 {
			remaining = 0
		}

		status := domain.SettlementStatusOpen
		if remaining == 0 {
			status = domain.SettlementStatusPaid
		}

		return s.settlementRepo.UpdateTotals(ctx, tenantID, settlementID, newPaid, remaining, status)
	})
	if err != nil {
		if errors.Is(err, settlementRepo.ErrSettlementNotFound) {
			s.logger.Warn("RecordPayment: settlement id=%d not found", settlementID)
			return nil, ErrSettlementNotFound
		}
		if errors.Is(err, ErrSettlementAlreadyPaid) {
			s.logger.Warn("RecordPayment: settlement id=%d already paid", settlementID)
			s.metrics.IncSettlementPayment("rejected_already_paid")
			return nil, ErrSettlementAlreadyPaid
		}
		s.logger.Error("RecordPayment: transaction error for settlement id=%d: %v", settlementID, err)
		s.metrics.IncSettlementPayment("error")
		return nil, fmt.Errorf("%w: RecordPayment - transaction error: %v", ErrInternal, err)
	}

	s.metrics.IncSettlementPayment("recorded")

	settlement, err := s.settlementRepo.GetByID(ctx, tenantID, settlementID)
	if err != nil {
		s.logger.Error("RecordPayment: failed to reload settlement id=%d: %v", settlementID, err)
		return nil, fmt.Errorf("%w: RecordPayment - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("RecordPayment: settlement id=%d paid=%d remaining=%d status=%s",
		settlement.ID, settlement.PaidAmountTl, settlement.RemainingTl, settlement.Status)
	return models.FromDomainSettlement(settlement), nil
}

// GetByID получает взаиморасчёт тенанта со строками и платежами
func (s *Service) GetByID(ctx context.Context, tenantID, settlementID int64) (*models.SettlementResponse, error) {
	settlement, err := s.settlementRepo.GetByID(ctx, tenantID, settlementID)
	if err != nil {
		if errors.Is(err, settlementRepo.ErrSettlementNotFound) {
			s.logger.Warn("GetByID: settlement id=%d not found", settlementID)
			return nil, ErrSettlementNotFound
		}
		s.logger.Error("GetByID: repository error for settlement id=%d: %v", settlementID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettlement(settlement), nil
}

// List получает взаиморасчёты тенанта, опционально по одному агентству
func (s *Service) List(ctx context.Context, tenantID int64, agencyID *int64) (*models.SettlementListResponse, error) {
	var settlements []*domain.Settlement
	var err error

	if agencyID != nil {
		settlements, err = s.settlementRepo.ListByAgency(ctx, tenantID, *agencyID)
	} else {
		settlements, err = s.settlementRepo.ListForTenant(ctx, tenantID)
	}
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettlementList(settlements), nil
}
