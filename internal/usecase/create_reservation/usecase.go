package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gezilink/GL-BookingService/internal/domain"
	activityRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/activity"
	capacityRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/capacity"
	"github.com/gezilink/GL-BookingService/pkg/txmanager"
)

// Метки исходов бронирования для метрик
const (
	outcomeCreated            = "created"
	outcomeCapacityRejected   = "capacity_rejected"
	outcomeValidationRejected = "validation_rejected"
	outcomeError              = "error"
)

// UseCase use case создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	capacityRepo    CapacityRepository
	activityRepo    ActivityRepository
	activityCache   ActivityCache
	txManager       TransactionManager
	tokenGenerator  TokenGenerator
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	capacityRepo CapacityRepository,
	activityRepo ActivityRepository,
	activityCache ActivityCache,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		capacityRepo:    capacityRepo,
		activityRepo:    activityRepo,
		activityCache:   activityCache,
		txManager:       txManager,
		tokenGenerator:  &UUIDTokenGenerator{},
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Вставка брони и захват вместимости выполняются в одной сериализуемой
// транзакции: при нехватке мест бронь не коммитится вовсе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: tenant=%d, activity=%d, date=%s, time=%s, quantity=%d",
		req.TenantID, req.ActivityID, req.Date.Format(domain.DateFormat), req.StartTime, req.Quantity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		uc.metrics.IncBookingOutcome(outcomeValidationRejected)
		return nil, err
	}

	// 2. Получаем активность через кэш (до транзакции)
	activity, err := uc.getActivity(ctx, req.TenantID, req.ActivityID)
	if err != nil {
		uc.metrics.IncBookingOutcome(outcomeValidationRejected)
		return nil, err
	}

	// 3. Проверяем доступность активности для бронирования
	if !activity.IsActive {
		uc.logger.Warn("CreateReservation: activity id=%d is inactive", req.ActivityID)
		uc.metrics.IncBookingOutcome(outcomeValidationRejected)
		return nil, ErrActivityNotFound
	}
	if activity.AvailabilityClosed {
		uc.logger.Warn("CreateReservation: activity id=%d availability is closed", req.ActivityID)
		uc.metrics.IncBookingOutcome(outcomeValidationRejected)
		return nil, ErrAvailabilityClosed
	}

	// 4. Валидируем доп. услуги по серверным определениям
	extras, err := validateExtras(activity, req.SelectedExtras, req.Quantity)
	if err != nil {
		uc.logger.Warn("CreateReservation: extras validation failed: %v", err)
		uc.metrics.IncBookingOutcome(outcomeValidationRejected)
		return nil, err
	}

	// 5. Считаем цену строго на сервере
	price := computePricing(activity, req.Quantity, extras)

	// 6. Генерируем токен отслеживания: действует до следующего дня
	// после даты тура
	trackingToken := uc.tokenGenerator.NewToken()
	tokenExpiresAt := req.Date.Add(domain.TrackingTokenExtraTTL)

	source := req.Source
	if source == "" {
		source = domain.DefaultReservationSource
	}

	slotKey := domain.CapacitySlotKey{
		TenantID:   req.TenantID,
		ActivityID: req.ActivityID,
		Date:       req.Date,
		StartTime:  req.StartTime,
	}

	var result *domain.Reservation

	// 7. Вставка брони и захват вместимости в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation := &domain.Reservation{
			TenantID:   req.TenantID,
			ActivityID: req.ActivityID,
			AgencyID:   req.AgencyID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			GuestCount: req.Quantity,

			ActivityName: activity.Name,

			PriceTl:            price.PriceTl,
			PriceUsd:           price.PriceUsd,
			ExtrasTotalTl:      price.ExtrasTotalTl,
			DepositRequiredTl:  price.DepositRequiredTl,
			RemainingPaymentTl: price.RemainingPaymentTl,

			Status:        domain.ReservationStatusPending,
			PaymentStatus: domain.PaymentStatusUnpaid,
			Source:        source,

			HotelName:   req.HotelName,
			HasTransfer: req.HasTransfer,
			Notes:       req.Notes,

			Participants: req.Participants,
			Extras:       extras,

			TrackingToken:  trackingToken,
			TokenExpiresAt: tokenExpiresAt,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// Атомарный условный захват мест. Ноль затронутых строк
		// откатывает и вставку брони.
		_, err = uc.capacityRepo.TryReserve(txCtx, slotKey, req.Quantity)
		if err != nil {
			// Отсутствие слота означает отсутствие ограничения вместимости
			if errors.Is(err, capacityRepo.ErrSlotNotFound) {
				uc.logger.Info("CreateReservation: no capacity slot for activity=%d on %s %s, unconstrained",
					req.ActivityID, req.Date.Format(domain.DateFormat), req.StartTime)
				result = created
				return nil
			}
			if errors.Is(err, capacityRepo.ErrInsufficientCapacity) {
				return uc.insufficientCapacityError(txCtx, slotKey)
			}
			uc.logger.Error("CreateReservation: failed to reserve capacity: %v", err)
			return fmt.Errorf("%w: failed to reserve capacity: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientCapacity) {
			uc.metrics.IncBookingOutcome(outcomeCapacityRejected)
			return nil, err
		}
		// Конфликт сериализации уже повторён менеджером транзакций;
		// устойчивый конфликт означает борьбу за те же места
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateReservation: serialization conflict persisted for activity=%d", req.ActivityID)
			uc.metrics.IncBookingOutcome(outcomeCapacityRejected)
			return nil, ErrInsufficientCapacity
		}
		uc.metrics.IncBookingOutcome(outcomeError)
		return nil, err
	}

	uc.metrics.IncBookingOutcome(outcomeCreated)
	uc.logger.Info("CreateReservation: successfully created reservation id=%d, total=%d", result.ID, result.PriceTl)

	return &Response{
		ID:            result.ID,
		TrackingToken: result.TrackingToken,
		Status:        string(result.Status),

		ActivityID:   result.ActivityID,
		ActivityName: result.ActivityName,
		Date:         result.Date,
		StartTime:    result.StartTime,
		Quantity:     result.GuestCount,

		PriceTl:            result.PriceTl,
		PriceUsd:           result.PriceUsd,
		ExtrasTotalTl:      result.ExtrasTotalTl,
		DepositRequiredTl:  result.DepositRequiredTl,
		RemainingPaymentTl: result.RemainingPaymentTl,

		PaymentType: price.PaymentType,

		TokenExpiresAt: result.TokenExpiresAt,
		CreatedAt:      result.CreatedAt,
	}, nil
}

// getActivity получает активность через кэш с фолбэком в репозиторий
func (uc *UseCase) getActivity(ctx context.Context, tenantID, activityID int64) (*domain.Activity, error) {
	cacheKey := ActivityCacheKey{TenantID: tenantID, ActivityID: activityID}

	if activity, ok := uc.activityCache.Get(cacheKey); ok {
		return activity, nil
	}

	activity, err := uc.activityRepo.GetByID(ctx, tenantID, activityID)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			uc.logger.Warn("CreateReservation: activity id=%d not found for tenant=%d", activityID, tenantID)
			return nil, ErrActivityNotFound
		}
		uc.logger.Error("CreateReservation: failed to get activity id=%d: %v", activityID, err)
		return nil, fmt.Errorf("%w: failed to get activity: %v", ErrInternal, err)
	}

	uc.activityCache.Set(cacheKey, activity)
	return activity, nil
}

// insufficientCapacityError перечитывает слот, чтобы вернуть клиенту
// актуальное количество свободных мест
func (uc *UseCase) insufficientCapacityError(ctx context.Context, key domain.CapacitySlotKey) error {
	slot, err := uc.capacityRepo.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("CreateReservation: failed to re-read slot for capacity error: %v", err)
		return &InsufficientCapacityError{Available: 0}
	}

	available := slot.Available()
	if available < 0 {
		available = 0
	}

	uc.logger.Warn("CreateReservation: insufficient capacity, %d seats available", available)
	return &InsufficientCapacityError{Available: available}
}

// UUIDTokenGenerator генератор токенов отслеживания на основе UUID v4
type UUIDTokenGenerator struct{}

// NewToken возвращает новый случайный токен
func (g *UUIDTokenGenerator) NewToken() string {
	return uuid.NewString()
}
