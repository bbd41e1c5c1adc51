package dispatches

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
	agencyRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/agency"
	dispatchRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/dispatch"
	"github.com/gezilink/GL-BookingService/internal/service/dispatches/models"
)

// Service сервис отгрузок гостей агентствам и выплат агентствам
type Service struct {
	dispatchRepo DispatchRepository
	agencyRepo   AgencyRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса отгрузок
func NewService(
	dispatchRepo DispatchRepository,
	agencyRepo AgencyRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		dispatchRepo: dispatchRepo,
		agencyRepo:   agencyRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// RecordDispatch записывает отгрузку гостей агентству.
// Отгрузка и её строки создаются в одной транзакции.
func (s *Service) RecordDispatch(ctx context.Context, tenantID int64, req *models.RecordDispatchRequest) (*models.DispatchResponse, error) {
	s.logger.Info("RecordDispatch: recording dispatch for tenant=%d agency=%d", tenantID, req.AgencyID)

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	currency := domain.Currency(req.Currency)
	if !currency.IsValid() {
		return nil, fmt.Errorf("%w: unsupported currency %q", ErrInvalidInput, req.Currency)
	}

	if req.GuestCount <= 0 {
		return nil, fmt.Errorf("%w: guest count must be positive", ErrInvalidInput)
	}
	if req.TotalPayoutTl < 0 {
		return nil, fmt.Errorf("%w: total payout must not be negative", ErrInvalidInput)
	}

	if _, err := s.agencyRepo.GetByID(ctx, tenantID, req.AgencyID); err != nil {
		if errors.Is(err, agencyRepo.ErrAgencyNotFound) {
			s.logger.Warn("RecordDispatch: agency id=%d not found", req.AgencyID)
			return nil, ErrAgencyNotFound
		}
		s.logger.Error("RecordDispatch: agency repository error: %v", err)
		return nil, fmt.Errorf("%w: RecordDispatch - agency repository error: %v", ErrInternal, err)
	}

	dispatch := &domain.SupplierDispatch{
		TenantID:      tenantID,
		AgencyID:      req.AgencyID,
		Date:          date,
		GuestCount:    req.GuestCount,
		Currency:      currency,
		TotalPayoutTl: req.TotalPayoutTl,
		Notes:         req.Notes,
		Items:         make([]domain.SupplierDispatchItem, len(req.Items)),
	}
	for i, item := range req.Items {
		if item.Description == "" {
			return nil, fmt.Errorf("%w: dispatch item description is required", ErrInvalidInput)
		}
		dispatch.Items[i] = domain.SupplierDispatchItem{
			Description: item.Description,
			GuestCount:  item.GuestCount,
			AmountTl:    item.AmountTl,
		}
	}

	var created *domain.SupplierDispatch
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		created, err = s.dispatchRepo.CreateDispatch(ctx, dispatch)
		return err
	})
	if err != nil {
		s.logger.Error("RecordDispatch: transaction error for agency=%d: %v", req.AgencyID, err)
		return nil, fmt.Errorf("%w: RecordDispatch - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("RecordDispatch: created dispatch id=%d for agency=%d", created.ID, created.AgencyID)
	return models.FromDomainDispatch(created), nil
}

// DeleteDispatch удаляет отгрузку вместе со строками
func (s *Service) DeleteDispatch(ctx context.Context, tenantID, dispatchID int64) error {
	s.logger.Info("DeleteDispatch: deleting dispatch id=%d for tenant=%d", dispatchID, tenantID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.dispatchRepo.DeleteDispatch(ctx, tenantID, dispatchID)
	})
	if err != nil {
		if errors.Is(err, dispatchRepo.ErrDispatchNotFound) {
			s.logger.Warn("DeleteDispatch: dispatch id=%d not found", dispatchID)
			return ErrDispatchNotFound
		}
		s.logger.Error("DeleteDispatch: transaction error for dispatch id=%d: %v", dispatchID, err)
		return fmt.Errorf("%w: DeleteDispatch - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteDispatch: deleted dispatch id=%d", dispatchID)
	return nil
}

// RecordPayout записывает выплату агентству за период
func (s *Service) RecordPayout(ctx context.Context, tenantID int64, req *models.RecordPayoutRequest) (*models.PayoutResponse, error) {
	s.logger.Info("RecordPayout: recording payout for tenant=%d agency=%d", tenantID, req.AgencyID)

	periodStart, err := time.Parse(domain.DateFormat, req.PeriodStart)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid periodStart format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	periodEnd, err := time.Parse(domain.DateFormat, req.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid periodEnd format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	if periodEnd.Before(periodStart) {
		return nil, fmt.Errorf("%w: periodEnd before periodStart", ErrInvalidInput)
	}
	if req.TotalAmountTl <= 0 {
		return nil, fmt.Errorf("%w: payout amount must be positive", ErrInvalidInput)
	}

	if _, err := s.agencyRepo.GetByID(ctx, tenantID, req.AgencyID); err != nil {
		if errors.Is(err, agencyRepo.ErrAgencyNotFound) {
			s.logger.Warn("RecordPayout: agency id=%d not found", req.AgencyID)
			return nil, ErrAgencyNotFound
		}
		s.logger.Error("RecordPayout: agency repository error: %v", err)
		return nil, fmt.Errorf("%w: RecordPayout - agency repository error: %v", ErrInternal, err)
	}

	payout := &domain.AgencyPayout{
		TenantID:      tenantID,
		AgencyID:      req.AgencyID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		TotalAmountTl: req.TotalAmountTl,
		Notes:         req.Notes,
	}

	created, err := s.dispatchRepo.CreatePayout(ctx, payout)
	if err != nil {
		s.logger.Error("RecordPayout: repository error for agency=%d: %v", req.AgencyID, err)
		return nil, fmt.Errorf("%w: RecordPayout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RecordPayout: created payout id=%d for agency=%d", created.ID, created.AgencyID)
	return models.FromDomainPayout(created), nil
}

// Summarize строит сводку взаиморасчётов по агентствам.
// Обе агрегации выполняются в одной read-only транзакции уровня
// repeatable read: суммы отгрузок и выплат видят один снимок данных.
// Агентства без гостей и выплат в сводку не попадают.
func (s *Service) Summarize(ctx context.Context, req *models.SummaryRequest) (*models.SummaryResponse, error) {
	s.logger.Info("Summarize: building agency balance summary for tenant=%d", req.TenantID)

	rng := domain.DateRange{Start: req.StartDate, End: req.EndDate}

	var dispatchSums []dispatchRepo.DispatchSum
	var payoutSums []dispatchRepo.PayoutSum

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		dispatchSums, err = s.dispatchRepo.SumDispatchesByAgency(ctx, req.TenantID, req.AgencyID, rng)
		if err != nil {
			return err
		}
		payoutSums, err = s.dispatchRepo.SumPayoutsByAgency(ctx, req.TenantID, req.AgencyID, rng)
		return err
	})
	if err != nil {
		s.logger.Error("Summarize: transaction error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: Summarize - transaction error: %v", ErrInternal, err)
	}

	summaries := mergeSummaries(dispatchSums, payoutSums)

	s.logger.Info("Summarize: built summary for tenant=%d, agencies=%d", req.TenantID, len(summaries))
	return models.FromDomainSummaries(summaries), nil
}

// mergeSummaries сводит агрегаты отгрузок (в разрезе валют) и выплат
// в одну запись на агентство. Порядок следования агентств сохраняется.
func mergeSummaries(dispatchSums []dispatchRepo.DispatchSum, payoutSums []dispatchRepo.PayoutSum) []*domain.AgencyBalanceSummary {
	byAgency := make(map[int64]*domain.AgencyBalanceSummary)
	order := make([]int64, 0, len(dispatchSums))

	for _, ds := range dispatchSums {
		summary, ok := byAgency[ds.AgencyID]
		if !ok {
			summary = &domain.AgencyBalanceSummary{
				AgencyID:   ds.AgencyID,
				AgencyName: ds.AgencyName,
			}
			byAgency[ds.AgencyID] = summary
			order = append(order, ds.AgencyID)
		}

		summary.TotalGuests += ds.GuestCount
		summary.DispatchCount += ds.DispatchCount
		switch ds.Currency {
		case domain.CurrencyUSD:
			summary.TotalOwedUsd += ds.TotalPayoutTl
		default:
			summary.TotalOwedTl += ds.TotalPayoutTl
		}
	}

	for _, ps := range payoutSums {
		summary, ok := byAgency[ps.AgencyID]
		if !ok {
			// Выплаты без отгрузок в периоде: агентство всё равно
			// попадает в сводку с отрицательным остатком
			summary = &domain.AgencyBalanceSummary{AgencyID: ps.AgencyID}
			byAgency[ps.AgencyID] = summary
			order = append(order, ps.AgencyID)
		}

		summary.TotalPaidTl += ps.TotalAmountTl
		summary.PayoutCount += ps.PayoutCount
	}

	summaries := make([]*domain.AgencyBalanceSummary, 0, len(order))
	for _, agencyID := range order {
		summary := byAgency[agencyID]
		summary.RemainingTl = summary.TotalOwedTl - summary.TotalPaidTl
		if !summary.HasActivity() {
			continue
		}
		summaries = append(summaries, summary)
	}

	return summaries
}
