package delete_dispatch

import (
	"context"
)

// DispatchService интерфейс сервиса отгрузок
type DispatchService interface {
	DeleteDispatch(ctx context.Context, tenantID, dispatchID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
