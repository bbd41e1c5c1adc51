package get_availability

import (
	"context"
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

// CapacityRepository интерфейс репозитория вместимости
type CapacityRepository interface {
	Get(ctx context.Context, key domain.CapacitySlotKey) (*domain.CapacitySlot, error)
	ListByActivityDate(ctx context.Context, tenantID, activityID int64, date time.Time) ([]*domain.CapacitySlot, error)
}

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetByID(ctx context.Context, tenantID, activityID int64) (*domain.Activity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
