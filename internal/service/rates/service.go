package rates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
	rateRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/rate"
)

// Service сервис разрешения контрактных тарифов агентств
type Service struct {
	rateRepo RateRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса тарифов
func NewService(rateRepo RateRepository, logger Logger) *Service {
	return &Service{
		rateRepo: rateRepo,
		logger:   logger,
	}
}

// Resolve выбирает действующий тариф агентства на дату.
//
// Правила приоритета:
//  1. активный тариф, специфичный для активности, действующий на дату
//  2. при нескольких кандидатах - с самым поздним valid_from
//  3. иначе общий тариф (activity_id IS NULL) по тем же правилам
//  4. иначе nil - вызывающий код падает на дефолт агентства
//
// Результат НИКОГДА не кэшируется: тарифы участвуют в денежных
// расчётах, и устаревший тариф означает неверную выплату.
func (s *Service) Resolve(ctx context.Context, tenantID, agencyID int64, activityID *int64, date time.Time) (*domain.AgencyActivityRate, error) {
	allRates, err := s.rateRepo.ListActiveByAgency(ctx, tenantID, agencyID)
	if err != nil {
		s.logger.Error("Resolve: repository error for agency=%d: %v", agencyID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	rate := pickEffectiveRate(allRates, activityID, date)
	if rate == nil {
		s.logger.Info("Resolve: no effective rate for agency=%d on %s, falling back to agency default",
			agencyID, date.Format(domain.DateFormat))
		return nil, nil
	}

	return rate, nil
}

// CreateRate создает новый контрактный тариф
func (s *Service) CreateRate(ctx context.Context, rate *domain.AgencyActivityRate) (*domain.AgencyActivityRate, error) {
	if rate.PayoutPerGuestTl < 0 {
		return nil, fmt.Errorf("%w: payout per guest must not be negative", ErrInvalidInput)
	}
	if rate.ValidTo != nil && rate.ValidTo.Before(rate.ValidFrom) {
		return nil, fmt.Errorf("%w: valid_to before valid_from", ErrInvalidInput)
	}

	created, err := s.rateRepo.Create(ctx, rate)
	if err != nil {
		s.logger.Error("CreateRate: repository error for agency=%d: %v", rate.AgencyID, err)
		return nil, fmt.Errorf("%w: CreateRate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRate: created rate id=%d for agency=%d", created.ID, created.AgencyID)
	return created, nil
}

// UpdateRate применяет команду обновления тарифа
func (s *Service) UpdateRate(ctx context.Context, tenantID, rateID int64, cmd domain.UpdateRateCommand) error {
	if cmd.PayoutPerGuestTl != nil && *cmd.PayoutPerGuestTl < 0 {
		return fmt.Errorf("%w: payout per guest must not be negative", ErrInvalidInput)
	}

	err := s.rateRepo.Update(ctx, tenantID, rateID, cmd)
	if err != nil {
		if errors.Is(err, rateRepo.ErrRateNotFound) {
			s.logger.Warn("UpdateRate: rate id=%d not found", rateID)
			return ErrRateNotFound
		}
		if errors.Is(err, rateRepo.ErrEmptyUpdate) {
			return fmt.Errorf("%w: empty update command", ErrInvalidInput)
		}
		s.logger.Error("UpdateRate: repository error for rate id=%d: %v", rateID, err)
		return fmt.Errorf("%w: UpdateRate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRate: updated rate id=%d", rateID)
	return nil
}

// DeactivateRate выключает тариф
func (s *Service) DeactivateRate(ctx context.Context, tenantID, rateID int64) error {
	err := s.rateRepo.Deactivate(ctx, tenantID, rateID)
	if err != nil {
		if errors.Is(err, rateRepo.ErrRateNotFound) {
			s.logger.Warn("DeactivateRate: rate id=%d not found", rateID)
			return ErrRateNotFound
		}
		s.logger.Error("DeactivateRate: repository error for rate id=%d: %v", rateID, err)
		return fmt.Errorf("%w: DeactivateRate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeactivateRate: deactivated rate id=%d", rateID)
	return nil
}

// pickEffectiveRate чистая функция выбора тарифа.
// Детерминирована и не зависит от порядка входного среза:
// при равных valid_from побеждает больший id.
func pickEffectiveRate(rates []*domain.AgencyActivityRate, activityID *int64, date time.Time) *domain.AgencyActivityRate {
	var bestSpecific, bestGeneral *domain.AgencyActivityRate

	for _, rate := range rates {
		if !rate.IsActive || !rate.IsEffectiveOn(date) || !rate.AppliesToActivity(activityID) {
			continue
		}

		if rate.IsGeneral() {
			bestGeneral = newerRate(bestGeneral, rate)
		} else {
			bestSpecific = newerRate(bestSpecific, rate)
		}
	}

	if bestSpecific != nil {
		return bestSpecific
	}
	return bestGeneral
}

func newerRate(current, candidate *domain.AgencyActivityRate) *domain.AgencyActivityRate {
	if current == nil {
		return candidate
	}
	if candidate.ValidFrom.After(current.ValidFrom) {
		return candidate
	}
	if candidate.ValidFrom.Equal(current.ValidFrom) && candidate.ID > current.ID {
		return candidate
	}
	return current
}
