package domain

import "time"

// Business validation constants
const (
	MinGuestCount = 1
	MaxGuestCount = 50

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500

	// Токен отслеживания действует до конца следующего дня после даты тура
	TrackingTokenExtraTTL = 24 * time.Hour
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Источник бронирования по умолчанию (публичный сайт тенанта)
const DefaultReservationSource = "website"

// InactiveReservationStatuses статусы, не занимающие вместимость
// и не участвующие во взаиморасчётах
var InactiveReservationStatuses = []ReservationStatus{
	ReservationStatusCancelled,
	ReservationStatusNoShow,
}

// ActiveReservationStatuses статусы активных бронирований
var ActiveReservationStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
	ReservationStatusCompleted,
}
