package domain

import (
	"time"

	"github.com/gezilink/GL-BookingService/pkg/types"
)

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusNoShow    ReservationStatus = "no_show"
)

// PaymentStatus статус оплаты бронирования
type PaymentStatus string

const (
	PaymentStatusUnpaid      PaymentStatus = "unpaid"
	PaymentStatusDepositPaid PaymentStatus = "deposit_paid"
	PaymentStatusPaid        PaymentStatus = "paid"
)

// Participant участник тура (сериализуется в JSON-колонку брони)
type Participant struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD
}

// ReservationExtra выбранная и провалидированная дополнительная услуга.
// Цена всегда серверная (из определения активности).
type ReservationExtra struct {
	Name     string `json:"name"`
	PriceTl  int64  `json:"priceTl"`
	PriceUsd int64  `json:"priceUsd"`
	Quantity int    `json:"quantity"`
}

// Reservation бронирование тура.
//
// SettlementID проставляется ровно один раз при включении брони во
// взаиморасчёт и после этого неизменяем (защита от двойного биллинга).
// Отмена брони по умолчанию НЕ освобождает вместимость - поведение
// управляется политикой release_capacity_on_cancel.
type Reservation struct {
	ID         int64
	TenantID   int64
	ActivityID int64

	// Агентство-поставщик, если бронь исполняется через агентство
	AgencyID *int64

	// Взаиморасчёт, в который включена бронь (nil = ещё не включена)
	SettlementID *int64

	Date       time.Time
	StartTime  types.TimeString
	GuestCount int

	// Денормализованное имя активности для истории
	ActivityName string

	// Рассчитанная сервером разбивка цены, минорные единицы
	PriceTl            int64
	PriceUsd           int64
	ExtrasTotalTl      int64
	DepositRequiredTl  int64
	RemainingPaymentTl int64

	Status        ReservationStatus
	PaymentStatus PaymentStatus
	Source        string

	HotelName   *string
	HasTransfer bool
	Notes       *string

	// Сериализованные метаданные бронирования
	Participants []Participant
	Extras       []ReservationExtra

	TrackingToken  string
	TokenExpiresAt time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронь занимает вместимость
func (r *Reservation) IsActive() bool {
	return r.Status != ReservationStatusCancelled && r.Status != ReservationStatusNoShow
}

// CanBeCancelled возвращает true, если бронь можно отменить
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == ReservationStatusPending || r.Status == ReservationStatusConfirmed
}

// IsSettled возвращает true, если бронь уже включена во взаиморасчёт
func (r *Reservation) IsSettled() bool {
	return r.SettlementID != nil
}

// IsTrackingTokenExpired возвращает true, если токен отслеживания истёк
func (r *Reservation) IsTrackingTokenExpired(now time.Time) bool {
	return now.After(r.TokenExpiresAt)
}

// ReservationFilter фильтр для tenant-scoped выборки бронирований
type ReservationFilter struct {
	TenantID        int64 // Обязательный параметр
	AgencyID        *int64
	ActivityID      *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *ReservationStatus
	IncludeInactive bool
}
