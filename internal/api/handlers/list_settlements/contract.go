package list_settlements

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/service/settlements/models"
)

// SettlementService интерфейс сервиса взаиморасчётов
type SettlementService interface {
	List(ctx context.Context, tenantID int64, agencyID *int64) (*models.SettlementListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
