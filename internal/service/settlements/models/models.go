package models

import (
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

// Request модели

// RecordPaymentRequest запрос на проведение платежа по взаиморасчёту
type RecordPaymentRequest struct {
	AmountTl int64   `json:"amountTl"`
	Method   *string `json:"method,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// Response модели

// SettlementEntryResponse строка взаиморасчёта
type SettlementEntryResponse struct {
	ID               int64 `json:"id"`
	ReservationID    int64 `json:"reservationId"`
	GuestCount       int   `json:"guestCount"`
	PayoutPerGuestTl int64 `json:"payoutPerGuestTl"`
	AmountTl         int64 `json:"amountTl"`
}

// SettlementPaymentResponse платёж по взаиморасчёту
type SettlementPaymentResponse struct {
	ID       int64   `json:"id"`
	AmountTl int64   `json:"amountTl"`
	Method   *string `json:"method,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	PaidAt   string  `json:"paidAt"` // ISO 8601 format
}

// SettlementResponse ответ с данными взаиморасчёта
type SettlementResponse struct {
	ID       int64 `json:"id"`
	TenantID int64 `json:"tenantId"`
	AgencyID int64 `json:"agencyId"`

	PayoutTl     int64 `json:"payoutTl"`
	PaidAmountTl int64 `json:"paidAmountTl"`
	RemainingTl  int64 `json:"remainingTl"`

	Status string `json:"status"`

	Entries  []SettlementEntryResponse   `json:"entries"`
	Payments []SettlementPaymentResponse `json:"payments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SettlementListResponse ответ со списком взаиморасчётов
type SettlementListResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
}

// Методы конвертации

// FromDomainSettlement конвертирует domain модель в DTO
func FromDomainSettlement(s *domain.Settlement) *SettlementResponse {
	if s == nil {
		return nil
	}

	resp := &SettlementResponse{
		ID:           s.ID,
		TenantID:     s.TenantID,
		AgencyID:     s.AgencyID,
		PayoutTl:     s.PayoutTl,
		PaidAmountTl: s.PaidAmountTl,
		RemainingTl:  s.RemainingTl,
		Status:       string(s.Status),
		Entries:      make([]SettlementEntryResponse, len(s.Entries)),
		Payments:     make([]SettlementPaymentResponse, len(s.Payments)),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}

	for i, entry := range s.Entries {
		resp.Entries[i] = SettlementEntryResponse{
			ID:               entry.ID,
			ReservationID:    entry.ReservationID,
			GuestCount:       entry.GuestCount,
			PayoutPerGuestTl: entry.PayoutPerGuestTl,
			AmountTl:         entry.AmountTl,
		}
	}

	for i, payment := range s.Payments {
		resp.Payments[i] = SettlementPaymentResponse{
			ID:       payment.ID,
			AmountTl: payment.AmountTl,
			Method:   payment.Method,
			Notes:    payment.Notes,
			PaidAt:   payment.PaidAt.Format(time.RFC3339),
		}
	}

	return resp
}

// FromDomainSettlementList конвертирует список domain моделей в DTO
func FromDomainSettlementList(settlements []*domain.Settlement) *SettlementListResponse {
	if settlements == nil {
		return &SettlementListResponse{
			Settlements: []SettlementResponse{},
		}
	}

	resp := &SettlementListResponse{
		Settlements: make([]SettlementResponse, len(settlements)),
	}

	for i, settlement := range settlements {
		if settlementResp := FromDomainSettlement(settlement); settlementResp != nil {
			resp.Settlements[i] = *settlementResp
		}
	}

	return resp
}
