package create_reservation

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// CapacityRepository интерфейс репозитория вместимости
type CapacityRepository interface {
	Get(ctx context.Context, key domain.CapacitySlotKey) (*domain.CapacitySlot, error)
	TryReserve(ctx context.Context, key domain.CapacitySlotKey, quantity int) (*domain.CapacitySlot, error)
}

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetByID(ctx context.Context, tenantID, activityID int64) (*domain.Activity, error)
}

// ActivityCacheKey ключ кэша активностей
type ActivityCacheKey struct {
	TenantID   int64
	ActivityID int64
}

// ActivityCache интерфейс кэша активностей.
// Кэш читается ДО транзакции: внутри сериализуемой транзакции
// устаревшая активность недопустима только для цен, а цены активности
// меняются через админку с инвалидацией кэша.
type ActivityCache interface {
	Get(key ActivityCacheKey) (*domain.Activity, bool)
	Set(key ActivityCacheKey, value *domain.Activity)
}

// TokenGenerator интерфейс генерации токенов отслеживания (для тестирования)
type TokenGenerator interface {
	NewToken() string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для метрик исходов бронирования
type Metrics interface {
	IncBookingOutcome(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
