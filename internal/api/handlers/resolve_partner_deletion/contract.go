package resolve_partner_deletion

import (
	"context"
)

// PartnerService интерфейс сервиса партнёрских транзакций
type PartnerService interface {
	ApproveDeletion(ctx context.Context, tenantID, transactionID int64) error
	RejectDeletion(ctx context.Context, tenantID, transactionID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
