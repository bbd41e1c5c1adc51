package models

import (
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

// Request модели

// DispatchItemRequest строка-подначисление отгрузки
type DispatchItemRequest struct {
	Description string `json:"description"`
	GuestCount  int    `json:"guestCount"`
	AmountTl    int64  `json:"amountTl"`
}

// RecordDispatchRequest запрос на запись отгрузки гостей агентству
type RecordDispatchRequest struct {
	AgencyID      int64                 `json:"agencyId"`
	Date          string                `json:"date"` // "2026-07-15"
	GuestCount    int                   `json:"guestCount"`
	Currency      string                `json:"currency"` // "TRY" | "USD"
	TotalPayoutTl int64                 `json:"totalPayoutTl"`
	Notes         *string               `json:"notes,omitempty"`
	Items         []DispatchItemRequest `json:"items,omitempty"`
}

// RecordPayoutRequest запрос на запись выплаты агентству
type RecordPayoutRequest struct {
	AgencyID      int64   `json:"agencyId"`
	PeriodStart   string  `json:"periodStart"` // "2026-07-01"
	PeriodEnd     string  `json:"periodEnd"`   // "2026-07-31"
	TotalAmountTl int64   `json:"totalAmountTl"`
	Notes         *string `json:"notes,omitempty"`
}

// SummaryRequest запрос сводки взаиморасчётов по агентствам
type SummaryRequest struct {
	TenantID  int64      `json:"tenantId"`
	AgencyID  *int64     `json:"agencyId,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// Response модели

// DispatchItemResponse строка отгрузки
type DispatchItemResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	GuestCount  int    `json:"guestCount"`
	AmountTl    int64  `json:"amountTl"`
}

// DispatchResponse ответ с данными отгрузки
type DispatchResponse struct {
	ID            int64                  `json:"id"`
	TenantID      int64                  `json:"tenantId"`
	AgencyID      int64                  `json:"agencyId"`
	Date          string                 `json:"date"`
	GuestCount    int                    `json:"guestCount"`
	Currency      string                 `json:"currency"`
	TotalPayoutTl int64                  `json:"totalPayoutTl"`
	Notes         *string                `json:"notes,omitempty"`
	Items         []DispatchItemResponse `json:"items"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// PayoutResponse ответ с данными выплаты
type PayoutResponse struct {
	ID            int64     `json:"id"`
	TenantID      int64     `json:"tenantId"`
	AgencyID      int64     `json:"agencyId"`
	PeriodStart   string    `json:"periodStart"`
	PeriodEnd     string    `json:"periodEnd"`
	TotalAmountTl int64     `json:"totalAmountTl"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AgencyBalanceResponse сводка по одному агентству
type AgencyBalanceResponse struct {
	AgencyID   int64  `json:"agencyId"`
	AgencyName string `json:"agencyName"`

	TotalGuests  int   `json:"totalGuests"`
	TotalOwedTl  int64 `json:"totalOwedTl"`
	TotalOwedUsd int64 `json:"totalOwedUsd"`
	TotalPaidTl  int64 `json:"totalPaidTl"`

	// Отрицательное значение означает переплату агентству
	RemainingTl int64 `json:"remainingTl"`

	DispatchCount int `json:"dispatchCount"`
	PayoutCount   int `json:"payoutCount"`
}

// SummaryResponse сводка взаиморасчётов по агентствам
type SummaryResponse struct {
	Agencies []AgencyBalanceResponse `json:"agencies"`
}

// Методы конвертации

// FromDomainDispatch конвертирует domain модель в DTO
func FromDomainDispatch(d *domain.SupplierDispatch) *DispatchResponse {
	if d == nil {
		return nil
	}

	resp := &DispatchResponse{
		ID:            d.ID,
		TenantID:      d.TenantID,
		AgencyID:      d.AgencyID,
		Date:          d.Date.Format(domain.DateFormat),
		GuestCount:    d.GuestCount,
		Currency:      string(d.Currency),
		TotalPayoutTl: d.TotalPayoutTl,
		Notes:         d.Notes,
		Items:         make([]DispatchItemResponse, len(d.Items)),
		CreatedAt:     d.CreatedAt,
	}

	for i, item := range d.Items {
		resp.Items[i] = DispatchItemResponse{
			ID:          item.ID,
			Description: item.Description,
			GuestCount:  item.GuestCount,
			AmountTl:    item.AmountTl,
		}
	}

	return resp
}

// FromDomainPayout конвертирует domain модель в DTO
func FromDomainPayout(p *domain.AgencyPayout) *PayoutResponse {
	if p == nil {
		return nil
	}

	return &PayoutResponse{
		ID:            p.ID,
		TenantID:      p.TenantID,
		AgencyID:      p.AgencyID,
		PeriodStart:   p.PeriodStart.Format(domain.DateFormat),
		PeriodEnd:     p.PeriodEnd.Format(domain.DateFormat),
		TotalAmountTl: p.TotalAmountTl,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}

// FromDomainSummaries конвертирует сводки по агентствам в DTO
func FromDomainSummaries(summaries []*domain.AgencyBalanceSummary) *SummaryResponse {
	resp := &SummaryResponse{
		Agencies: make([]AgencyBalanceResponse, 0, len(summaries)),
	}

	for _, summary := range summaries {
		resp.Agencies = append(resp.Agencies, AgencyBalanceResponse{
			AgencyID:      summary.AgencyID,
			AgencyName:    summary.AgencyName,
			TotalGuests:   summary.TotalGuests,
			TotalOwedTl:   summary.TotalOwedTl,
			TotalOwedUsd:  summary.TotalOwedUsd,
			TotalPaidTl:   summary.TotalPaidTl,
			RemainingTl:   summary.RemainingTl,
			DispatchCount: summary.DispatchCount,
			PayoutCount:   summary.PayoutCount,
		})
	}

	return resp
}
