package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/gezilink/GL-BookingService/internal/domain"
	activityRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/activity"
	capacityRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/capacity"
)

// UseCase use case получения доступности активности на дату
type UseCase struct {
	capacityRepo CapacityRepository
	activityRepo ActivityRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	capacityRepo CapacityRepository,
	activityRepo ActivityRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		capacityRepo: capacityRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Execute возвращает доступность активности на дату.
// Ответ - моментальный снимок: к моменту бронирования места могут
// закончиться, гарантию даёт только атомарный захват при создании брони.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.TenantID <= 0 || req.ActivityID <= 0 {
		return nil, fmt.Errorf("%w: tenantID and activityID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что активность существует и активна
	activity, err := uc.activityRepo.GetByID(ctx, req.TenantID, req.ActivityID)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			uc.logger.Warn("GetAvailability: activity id=%d not found for tenant=%d", req.ActivityID, req.TenantID)
			return nil, ErrActivityNotFound
		}
		uc.logger.Error("GetAvailability: failed to get activity id=%d: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: failed to get activity: %v", ErrInternal, err)
	}
	if !activity.IsActive {
		uc.logger.Warn("GetAvailability: activity id=%d is inactive", req.ActivityID)
		return nil, ErrActivityNotFound
	}

	resp := &Response{
		ActivityID: req.ActivityID,
		Date:       req.Date,
		Slots:      []SlotAvailability{},
	}

	// Запрос по конкретному времени: один слот или его отсутствие
	if req.StartTime != nil {
		key := domain.CapacitySlotKey{
			TenantID:   req.TenantID,
			ActivityID: req.ActivityID,
			Date:       req.Date,
			StartTime:  *req.StartTime,
		}

		slot, err := uc.capacityRepo.Get(ctx, key)
		if err != nil {
			if errors.Is(err, capacityRepo.ErrSlotNotFound) {
				// Нет слота - нет ограничения вместимости
				return resp, nil
			}
			uc.logger.Error("GetAvailability: failed to get slot: %v", err)
			return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		resp.Constrained = true
		resp.Slots = append(resp.Slots, toSlotAvailability(slot))
		return resp, nil
	}

	slots, err := uc.capacityRepo.ListByActivityDate(ctx, req.TenantID, req.ActivityID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	resp.Constrained = len(slots) > 0
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, toSlotAvailability(slot))
	}

	return resp, nil
}

func toSlotAvailability(slot *domain.CapacitySlot) SlotAvailability {
	available := slot.Available()
	if available < 0 {
		available = 0
	}

	return SlotAvailability{
		StartTime:   slot.StartTime,
		TotalSlots:  slot.TotalSlots,
		BookedSlots: slot.BookedSlots,
		Available:   available,
	}
}
