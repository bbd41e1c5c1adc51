package cancel_reservation

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/service/reservations/models"
)

// ReservationService интерфейс сервиса бронирований
type ReservationService interface {
	Cancel(ctx context.Context, tenantID, reservationID int64, req *models.CancelReservationRequest) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
