package create_partner_transaction

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/service/partners/models"
)

// PartnerService интерфейс сервиса партнёрских транзакций
type PartnerService interface {
	Create(ctx context.Context, senderTenantID int64, req *models.CreateTransactionRequest) (*models.TransactionResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
