package record_dispatch

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/service/dispatches/models"
)

// DispatchService интерфейс сервиса отгрузок
type DispatchService interface {
	RecordDispatch(ctx context.Context, tenantID int64, req *models.RecordDispatchRequest) (*models.DispatchResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
