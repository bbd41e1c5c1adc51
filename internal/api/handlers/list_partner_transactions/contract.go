package list_partner_transactions

import (
	"context"

	"github.com/gezilink/GL-BookingService/internal/service/partners/models"
)

// PartnerService интерфейс сервиса партнёрских транзакций
type PartnerService interface {
	List(ctx context.Context, req *models.ListTransactionsRequest) (*models.TransactionListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
