package models

import (
	"errors"
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ListReservationsRequest запрос на получение бронирований тенанта
type ListReservationsRequest struct {
	TenantID        int64      `json:"tenantId"`
	AgencyID        *int64     `json:"agencyId,omitempty"`        // Фильтр по агентству (опционально)
	ActivityID      *int64     `json:"activityId,omitempty"`      // Фильтр по активности (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		TenantID:        r.TenantID,
		AgencyID:        r.AgencyID,
		ActivityID:      r.ActivityID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID         int64  `json:"id"`
	TenantID   int64  `json:"tenantId"`
	ActivityID int64  `json:"activityId"`
	AgencyID   *int64 `json:"agencyId,omitempty"`

	Date       string `json:"date"`      // "2026-07-15"
	StartTime  string `json:"startTime"` // "10:00"
	GuestCount int    `json:"guestCount"`

	ActivityName string `json:"activityName"`

	// Серверная разбивка цены, минорные единицы
	PriceTl            int64 `json:"priceTl"`
	PriceUsd           int64 `json:"priceUsd"`
	ExtrasTotalTl      int64 `json:"extrasTotalTl"`
	DepositRequiredTl  int64 `json:"depositRequiredTl"`
	RemainingPaymentTl int64 `json:"remainingPaymentTl"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	Source        string `json:"source"`

	HotelName   *string `json:"hotelName,omitempty"`
	HasTransfer bool    `json:"hasTransfer"`
	Notes       *string `json:"notes,omitempty"`

	Participants []domain.Participant      `json:"participants"`
	Extras       []domain.ReservationExtra `json:"extras"`

	TrackingToken  string    `json:"trackingToken"`
	TokenExpiresAt time.Time `json:"tokenExpiresAt"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		TenantID:           r.TenantID,
		ActivityID:         r.ActivityID,
		AgencyID:           r.AgencyID,
		Date:               r.Date.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		GuestCount:         r.GuestCount,
		ActivityName:       r.ActivityName,
		PriceTl:            r.PriceTl,
		PriceUsd:           r.PriceUsd,
		ExtrasTotalTl:      r.ExtrasTotalTl,
		DepositRequiredTl:  r.DepositRequiredTl,
		RemainingPaymentTl: r.RemainingPaymentTl,
		Status:             string(r.Status),
		PaymentStatus:      string(r.PaymentStatus),
		Source:             r.Source,
		HotelName:          r.HotelName,
		HasTransfer:        r.HasTransfer,
		Notes:              r.Notes,
		Participants:       r.Participants,
		Extras:             r.Extras,
		TrackingToken:      r.TrackingToken,
		TokenExpiresAt:     r.TokenExpiresAt,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if resp.Participants == nil {
		resp.Participants = []domain.Participant{}
	}
	if resp.Extras == nil {
		resp.Extras = []domain.ReservationExtra{}
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	if reservations == nil {
		return &ReservationListResponse{
			Reservations: []ReservationResponse{},
		}
	}

	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, len(reservations)),
	}

	for i, reservation := range reservations {
		if reservationResp := FromDomainReservation(reservation); reservationResp != nil {
			resp.Reservations[i] = *reservationResp
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)

	validStatuses := []domain.ReservationStatus{
		domain.ReservationStatusPending,
		domain.ReservationStatusConfirmed,
		domain.ReservationStatusCompleted,
		domain.ReservationStatusCancelled,
		domain.ReservationStatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
