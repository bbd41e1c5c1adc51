package request_partner_deletion

import (
	"context"
)

// PartnerService интерфейс сервиса партнёрских транзакций
type PartnerService interface {
	RequestDeletion(ctx context.Context, tenantID, transactionID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
