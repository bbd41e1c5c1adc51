package settlement

import "errors"

var (
	// ErrSettlementNotFound возвращается, когда расчет не найден
	ErrSettlementNotFound = errors.New("settlement.repository: settlement not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settlement.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settlement.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settlement.repository: failed to scan row")
)
