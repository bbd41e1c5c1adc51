package get_settlement

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/service/settlements/models"
)

// SettlementService интерфейс сервиса взаиморасчётов
type SettlementService interface {
	GetByID(ctx context.Context, tenantID, settlementID int64) (*models.SettlementResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
