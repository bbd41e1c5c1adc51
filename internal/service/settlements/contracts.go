package settlements

import (
	"context"
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
)

// SettlementRepository интерфейс репозитория взаиморасчётов
type SettlementRepository interface {
	Create(ctx context.Context, s *domain.Settlement) (*domain.Settlement, error)
	GetByID(ctx context.Context, tenantID, settlementID int64) (*domain.Settlement, error)
	GetByIDForUpdate(ctx context.Context, tenantID, settlementID int64) (*domain.Settlement, error)
	AddPayment(ctx context.Context, p *domain.SettlementPayment) (*domain.SettlementPayment, error)
	UpdateTotals(ctx context.Context, tenantID, settlementID int64, paidAmountTl, remainingTl int64, status domain.SettlementStatus) error
	ListByAgency(ctx context.Context, tenantID, agencyID int64) ([]*domain.Settlement, error)
	ListForTenant(ctx context.Context, tenantID int64) ([]*domain.Settlement, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListUnsettledByAgency(ctx context.Context, tenantID, agencyID int64) ([]*domain.Reservation, error)
	MarkSettled(ctx context.Context, ids []int64, settlementID int64) error
}

// AgencyRepository интерфейс репозитория агентств
type AgencyRepository interface {
	GetByID(ctx context.Context, tenantID, agencyID int64) (*domain.Agency, error)
}

// RateResolver интерфейс резолвера контрактных тарифов
type RateResolver interface {
	Resolve(ctx context.Context, tenantID, agencyID int64, activityID *int64, date time.Time) (*domain.AgencyActivityRate, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для метрик платежей
type Metrics interface {
	IncSettlementPayment(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
