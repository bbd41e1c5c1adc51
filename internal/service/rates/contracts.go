package rates

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

// RateRepository интерфейс репозитория тарифов агентств
type RateRepository interface {
	Create(ctx context.Context, rate *domain.AgencyActivityRate) (*domain.AgencyActivityRate, error)
	ListActiveByAgency(ctx context.Context, tenantID, agencyID int64) ([]*domain.AgencyActivityRate, error)
	Update(ctx context.Context, tenantID, rateID int64, cmd domain.UpdateRateCommand) error
	Deactivate(ctx context.Context, tenantID, rateID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
