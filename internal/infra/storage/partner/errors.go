package partner

import "errors"

var (
	// ErrTransactionNotFound возвращается, когда транзакция не найдена
	ErrTransactionNotFound = errors.New("partner.repository: transaction not found")

	// ErrDeletionAlreadyRequested возвращается при повторном запросе удаления
	ErrDeletionAlreadyRequested = errors.New("partner.repository: deletion already requested")

	// ErrDeletionNotPending возвращается, когда нет ожидающего запроса на удаление
	ErrDeletionNotPending = errors.New("partner.repository: no pending deletion request")

	// ErrUnauthorizedDeletionApproval возвращается, когда запросивший
	// удаление тенант пытается сам его подтвердить
	ErrUnauthorizedDeletionApproval = errors.New("partner.repository: requester cannot resolve own deletion request")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("partner.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("partner.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("partner.repository: failed to scan row")
)
