package dispatch

import "errors"

var (
	// ErrDispatchNotFound возвращается, когда dispatch не найден
	ErrDispatchNotFound = errors.New("dispatch.repository: dispatch not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("dispatch.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("dispatch.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("dispatch.repository: failed to scan row")
)
