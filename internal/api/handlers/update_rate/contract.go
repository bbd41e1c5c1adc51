package update_rate

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

// RateService интерфейс сервиса тарифов
type RateService interface {
	UpdateRate(ctx context.Context, tenantID, rateID int64, cmd domain.UpdateRateCommand) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
