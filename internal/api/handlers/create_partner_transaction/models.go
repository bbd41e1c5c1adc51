package create_partner_transaction

import (
	"github.com/gezilink/GL-BookingService/internal/service/partners/models"
)

// CreateTransactionRequest HTTP request model
type CreateTransactionRequest struct {
	ReceiverTenantID int64   `json:"receiverTenantId"`
	CustomerName     string  `json:"customerName"`
	ActivityName     string  `json:"activityName"`
	Date             string  `json:"date"` // "2026-07-15"
	GuestCount       int     `json:"guestCount"`
	AmountTl         int64   `json:"amountTl"`
	Notes            *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateTransactionRequest) ToServiceRequest() *models.CreateTransactionRequest {
	return &models.CreateTransactionRequest{
		ReceiverTenantID: r.ReceiverTenantID,
		CustomerName:     r.CustomerName,
		ActivityName:     r.ActivityName,
		Date:             r.Date,
		GuestCount:       r.GuestCount,
		AmountTl:         r.AmountTl,
		Notes:            r.Notes,
	}
}
