package create_rate

import (
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

// CreateRateRequest HTTP request model
type CreateRateRequest struct {
	ActivityID       *int64 `json:"activityId,omitempty"` // nil = общий тариф
	PayoutPerGuestTl int64  `json:"payoutPerGuestTl"`
	ValidFrom        string `json:"validFrom"`         // "2026-01-01"
	ValidTo          *string `json:"validTo,omitempty"` // nil = бессрочный
}

// RateResponse HTTP response model
type RateResponse struct {
	ID               int64   `json:"id"`
	TenantID         int64   `json:"tenantId"`
	AgencyID         int64   `json:"agencyId"`
	ActivityID       *int64  `json:"activityId,omitempty"`
	PayoutPerGuestTl int64   `json:"payoutPerGuestTl"`
	ValidFrom        string  `json:"validFrom"`
	ValidTo          *string `json:"validTo,omitempty"`
	IsActive         bool    `json:"isActive"`
	CreatedAt        string  `json:"createdAt"`
}

// ToDomainRate конвертирует HTTP запрос в domain модель
func (r *CreateRateRequest) ToDomainRate(tenantID, agencyID int64) (*domain.AgencyActivityRate, error) {
	validFrom, err := time.Parse(domain.DateFormat, r.ValidFrom)
	if err != nil {
		return nil, err
	}

	rate := &domain.AgencyActivityRate{
		TenantID:         tenantID,
		AgencyID:         agencyID,
		ActivityID:       r.ActivityID,
		PayoutPerGuestTl: r.PayoutPerGuestTl,
		ValidFrom:        validFrom,
		IsActive:         true,
	}

	if r.ValidTo != nil {
		validTo, err := time.Parse(domain.DateFormat, *r.ValidTo)
		if err != nil {
			return nil, err
		}
		rate.ValidTo = &validTo
	}

	return rate, nil
}

// FromDomainRate конвертирует domain модель в HTTP response
func FromDomainRate(rate *domain.AgencyActivityRate) *RateResponse {
	resp := &RateResponse{
		ID:               rate.ID,
		TenantID:         rate.TenantID,
		AgencyID:         rate.AgencyID,
		ActivityID:       rate.ActivityID,
		PayoutPerGuestTl: rate.PayoutPerGuestTl,
		ValidFrom:        rate.ValidFrom.Format(domain.DateFormat),
		IsActive:         rate.IsActive,
		CreatedAt:        rate.CreatedAt.Format(time.RFC3339),
	}

	if rate.ValidTo != nil {
		validTo := rate.ValidTo.Format(domain.DateFormat)
		resp.ValidTo = &validTo
	}

	return resp
}
