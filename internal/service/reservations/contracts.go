package reservations

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Reservation, error)
	GetByTrackingToken(ctx context.Context, token string) (*domain.Reservation, error)
	ListForTenant(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, tenantID, id int64, reason string) error
}

// CapacityRepository интерфейс репозитория вместимости
type CapacityRepository interface {
	Release(ctx context.Context, key domain.CapacitySlotKey, quantity int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
