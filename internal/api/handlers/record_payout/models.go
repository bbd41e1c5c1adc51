package record_payout

import (
	"github.com/gezilink/GL-BookingService/internal/service/dispatches/models"
)

// RecordPayoutRequest HTTP request model
type RecordPayoutRequest struct {
	AgencyID      int64   `json:"agencyId"`
	PeriodStart   string  `json:"periodStart"` // "2026-07-01"
	PeriodEnd     string  `json:"periodEnd"`   // "2026-07-31"
	TotalAmountTl int64   `json:"totalAmountTl"`
	Notes         *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RecordPayoutRequest) ToServiceRequest() *models.RecordPayoutRequest {
	return &models.RecordPayoutRequest{
		AgencyID:      r.AgencyID,
		PeriodStart:   r.PeriodStart,
		PeriodEnd:     r.PeriodEnd,
		TotalAmountTl: r.TotalAmountTl,
		Notes:         r.Notes,
	}
}
