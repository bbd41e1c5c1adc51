package record_payment

import (
	"github.com/gezilink/GL-BookingService/internal/service/settlements/models"
)

// RecordPaymentRequest HTTP request model
type RecordPaymentRequest struct {
	AmountTl int64   `json:"amountTl"`
	Method   *string `json:"method,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RecordPaymentRequest) ToServiceRequest() *models.RecordPaymentRequest {
	return &models.RecordPaymentRequest{
		AmountTl: r.AmountTl,
		Method:   r.Method,
		Notes:    r.Notes,
	}
}
