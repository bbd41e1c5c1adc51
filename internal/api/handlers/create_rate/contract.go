package create_rate

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

// RateService интерфейс сервиса тарифов
type RateService interface {
	CreateRate(ctx context.Context, rate *domain.AgencyActivityRate) (*domain.AgencyActivityRate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
