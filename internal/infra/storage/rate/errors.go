package rate

import "errors"

var (
	// ErrRateNotFound возвращается, когда тариф не найден
	ErrRateNotFound = errors.New("rate.repository: rate not found")

	// ErrEmptyUpdate возвращается для команды обновления без единого поля
	ErrEmptyUpdate = errors.New("rate.repository: update command has no fields to change")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("rate.repository: failed to scan row")
)
