package record_dispatch

import (
	"github.com/gezilink/GL-BookingService/internal/service/dispatches/models"
)

// DispatchItemRequest строка-подначисление отгрузки
type DispatchItemRequest struct {
	Description string `json:"description"`
	GuestCount  int    `json:"guestCount"`
	AmountTl    int64  `json:"amountTl"`
}

// RecordDispatchRequest HTTP request model
type RecordDispatchRequest struct {
	AgencyID      int64                 `json:"agencyId"`
	Date          string                `json:"date"` // "2026-07-15"
	GuestCount    int                   `json:"guestCount"`
	Currency      string                `json:"currency"` // "TRY" | "USD"
	TotalPayoutTl int64                 `json:"totalPayoutTl"`
	Notes         *string               `json:"notes,omitempty"`
	Items         []DispatchItemRequest `json:"items,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RecordDispatchRequest) ToServiceRequest() *models.RecordDispatchRequest {
	items := make([]models.DispatchItemRequest, len(r.Items))
	for i, item := range r.Items {
		items[i] = models.DispatchItemRequest{
			Description: item.Description,
			GuestCount:  item.GuestCount,
			AmountTl:    item.AmountTl,
		}
	}

	return &models.RecordDispatchRequest{
		AgencyID:      r.AgencyID,
		Date:          r.Date,
		GuestCount:    r.GuestCount,
		Currency:      r.Currency,
		TotalPayoutTl: r.TotalPayoutTl,
		Notes:         r.Notes,
		Items:         items,
	}
}
