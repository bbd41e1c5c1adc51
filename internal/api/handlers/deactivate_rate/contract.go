package deactivate_rate

import (
	"context"
)

// RateService интерфейс сервиса тарифов
type RateService interface {
	DeactivateRate(ctx context.Context, tenantID, rateID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
