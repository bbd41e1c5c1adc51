package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
	capacityRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/capacity"
	reservationRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/reservation"
	"github.com/gezilink/GL-BookingService/internal/service/reservations/models"
)

// Service сервис чтения и отмены бронирований
type Service struct {
	reservationRepo ReservationRepository
	capacityRepo    CapacityRepository
	txManager       TransactionManager
	logger          Logger

	// Политика отмены: освобождать ли вместимость при отмене брони.
	// По умолчанию выключена - отменённые гости часто заменяются
	// вручную, и автоматический возврат мест приводил к овербукингу.
	releaseCapacityOnCancel bool
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	capacityRepo CapacityRepository,
	txManager TransactionManager,
	logger Logger,
	releaseCapacityOnCancel bool,
) *Service {
	return &Service{
		reservationRepo:         reservationRepo,
		capacityRepo:            capacityRepo,
		txManager:               txManager,
		logger:                  logger,
		releaseCapacityOnCancel: releaseCapacityOnCancel,
	}
}

// GetByID получает бронирование тенанта по ID
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.ReservationResponse, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found for tenant=%d", id, tenantID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// GetByTrackingToken получает бронирование по публичному токену отслеживания.
// Истёкший токен неотличим для клиента от несуществующего:
// отдельная ошибка нужна хендлеру для точного HTTP-статуса.
func (s *Service) GetByTrackingToken(ctx context.Context, token string) (*models.ReservationResponse, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty tracking token", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByTrackingToken(ctx, token)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByTrackingToken: token not found")
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByTrackingToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByTrackingToken - repository error: %v", ErrInternal, err)
	}

	if reservation.IsTrackingTokenExpired(time.Now()) {
		s.logger.Info("GetByTrackingToken: token expired for reservation id=%d", reservation.ID)
		return nil, ErrTrackingTokenExpired
	}

	return models.FromDomainReservation(reservation), nil
}

// List получает бронирования тенанта с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations for tenant=%d", req.TenantID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.ListForTenant(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations for tenant=%d", len(reservations), req.TenantID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование тенанта.
// Освобождение вместимости происходит в той же транзакции, что и
// отмена, и только при включённой политике release_capacity_on_cancel.
func (s *Service) Cancel(ctx context.Context, tenantID, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d for tenant=%d", reservationID, tenantID)

	reservation, err := s.reservationRepo.GetByID(ctx, tenantID, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.reservationRepo.Cancel(ctx, tenantID, reservationID, req.CancellationReason); err != nil {
			return err
		}

		if s.releaseCapacityOnCancel {
			key := domain.CapacitySlotKey{
				TenantID:   tenantID,
				ActivityID: reservation.ActivityID,
				Date:       reservation.Date,
				StartTime:  reservation.StartTime,
			}
			// Бронь могла быть создана без строки слота (вместимость
			// на это время не ограничена) - тогда возвращать нечего
			if err := s.capacityRepo.Release(ctx, key, reservation.GuestCount); err != nil &&
				!errors.Is(err, capacityRepo.ErrSlotNotFound) {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: transaction error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}
