package dispatches

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/domain"
	dispatchRepo "github.com/gezilink/GL-BookingService/internal/infra/storage/dispatch"
)

// DispatchRepository интерфейс репозитория отгрузок и выплат
type DispatchRepository interface {
	CreateDispatch(ctx context.Context, d *domain.SupplierDispatch) (*domain.SupplierDispatch, error)
	GetDispatch(ctx context.Context, tenantID, dispatchID int64) (*domain.SupplierDispatch, error)
	DeleteDispatch(ctx context.Context, tenantID, dispatchID int64) error
	CreatePayout(ctx context.Context, p *domain.AgencyPayout) (*domain.AgencyPayout, error)
	SumDispatchesByAgency(ctx context.Context, tenantID int64, agencyID *int64, rng domain.DateRange) ([]dispatchRepo.DispatchSum, error)
	SumPayoutsByAgency(ctx context.Context, tenantID int64, agencyID *int64, rng domain.DateRange) ([]dispatchRepo.PayoutSum, error)
}

// AgencyRepository интерфейс репозитория агентств
type AgencyRepository interface {
	GetByID(ctx context.Context, tenantID, agencyID int64) (*domain.Agency, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoRepeatableRead(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
