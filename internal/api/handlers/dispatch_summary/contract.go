package dispatch_summary

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/service/dispatches/models"
)

// DispatchService интерфейс сервиса отгрузок
type DispatchService interface {
	Summarize(ctx context.Context, req *models.SummaryRequest) (*models.SummaryResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
