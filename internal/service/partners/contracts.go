package partners

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/domain"
	"github.com/gezilink/GL-BookingService/internal/integrations/partnerregistry"
)

// PartnerRepository интерфейс репозитория партнёрских транзакций
type PartnerRepository interface {
	Create(ctx context.Context, t *domain.PartnerTransaction) (*domain.PartnerTransaction, error)
	GetByID(ctx context.Context, transactionID int64) (*domain.PartnerTransaction, error)
	ListForTenant(ctx context.Context, tenantID int64, role domain.PartnerRole) ([]*domain.PartnerTransaction, error)
	RequestDeletion(ctx context.Context, transactionID, requesterTenantID int64) error
	ResolveDeletion(ctx context.Context, transactionID, approverTenantID int64, approve bool) error
}

// PartnerRegistryClient интерфейс клиента реестра партнёрств
type PartnerRegistryClient interface {
	CheckPartnership(ctx context.Context, senderTenantID, receiverTenantID int64) (*partnerregistry.Partnership, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
