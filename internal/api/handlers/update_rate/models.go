package update_rate

import (
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

// UpdateRateRequest HTTP request model.
// Присланные поля меняются, отсутствующие остаются как есть.
// clearValidTo=true делает тариф бессрочным.
type UpdateRateRequest struct {
	PayoutPerGuestTl *int64  `json:"payoutPerGuestTl,omitempty"`
	ValidTo          *string `json:"validTo,omitempty"` // "2026-12-31"
	ClearValidTo     bool    `json:"clearValidTo,omitempty"`
	IsActive         *bool   `json:"isActive,omitempty"`
}

// ToUpdateCommand конвертирует HTTP запрос в команду обновления
func (r *UpdateRateRequest) ToUpdateCommand() (domain.UpdateRateCommand, error) {
	cmd := domain.UpdateRateCommand{
		PayoutPerGuestTl: r.PayoutPerGuestTl,
		ClearValidTo:     r.ClearValidTo,
		IsActive:         r.IsActive,
	}

	if r.ValidTo != nil {
		validTo, err := time.Parse(domain.DateFormat, *r.ValidTo)
		if err != nil {
			return cmd, err
		}
		cmd.ValidTo = &validTo
	}

	return cmd, nil
}
