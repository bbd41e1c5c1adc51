package create_reservation

import (
	"fmt"
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.ActivityID <= 0 {
		return fmt.Errorf("%w: activityID must be positive", ErrInvalidInput)
	}

	if req.AgencyID != nil && *req.AgencyID <= 0 {
		return fmt.Errorf("%w: agencyID must be positive", ErrInvalidInput)
	}

	if req.Quantity < domain.MinGuestCount || req.Quantity > domain.MaxGuestCount {
		return fmt.Errorf("%w: quantity must be between %d and %d",
			ErrInvalidInput, domain.MinGuestCount, domain.MaxGuestCount)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	// Валидируем даты рождения участников
	for _, participant := range req.Participants {
		if participant.FirstName == "" || participant.LastName == "" {
			return fmt.Errorf("%w: participant name is required", ErrInvalidInput)
		}
		if participant.BirthDate != "" {
			if _, err := time.Parse(domain.DateFormat, participant.BirthDate); err != nil {
				return fmt.Errorf("%w: invalid participant birthDate format", ErrInvalidInput)
			}
		}
	}

	return nil
}

// validateExtras сверяет запрошенные доп. услуги с определениями активности.
// Цена каждой услуги берётся из активности - клиентским ценам доверия нет.
func validateExtras(activity *domain.Activity, requested []ExtraRequest, quantity int) ([]domain.ReservationExtra, error) {
	if len(requested) == 0 {
		return []domain.ReservationExtra{}, nil
	}

	extras := make([]domain.ReservationExtra, 0, len(requested))

	for _, req := range requested {
		definition := activity.FindExtra(req.Name)
		if definition == nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidExtra, req.Name)
		}

		// Количество услуги не может превышать количество гостей
		if req.Quantity < 1 || req.Quantity > quantity {
			return nil, fmt.Errorf("%w: %q", ErrInvalidExtraQuantity, req.Name)
		}

		extras = append(extras, domain.ReservationExtra{
			Name:     definition.Name,
			PriceTl:  definition.PriceTl,
			PriceUsd: definition.PriceUsd,
			Quantity: req.Quantity,
		})
	}

	return extras, nil
}
