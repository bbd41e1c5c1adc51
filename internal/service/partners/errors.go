package partners

import "errors"

var (
	// ErrTransactionNotFound возвращается, когда транзакция не найдена
	ErrTransactionNotFound = errors.New("partner transaction not found")

	// ErrPartnershipNotFound возвращается, когда между тенантами
	// нет активного партнёрства
	ErrPartnershipNotFound = errors.New("partnership not found")

	// ErrAccessDenied возвращается, когда тенант не является
	// стороной транзакции
	ErrAccessDenied = errors.New("access denied")

	// ErrDeletionAlreadyRequested возвращается при повторном запросе удаления
	ErrDeletionAlreadyRequested = errors.New("deletion already requested")

	// ErrDeletionNotPending возвращается, когда нет ожидающего запроса
	ErrDeletionNotPending = errors.New("no pending deletion request")

	// ErrCannotResolveOwnRequest возвращается, когда запросивший
	// удаление тенант пытается сам его подтвердить или отклонить
	ErrCannotResolveOwnRequest = errors.New("requester cannot resolve own deletion request")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
