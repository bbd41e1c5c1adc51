package settlements

import "errors"

var (
	// ErrAgencyNotFound возвращается, когда агентство не найдено
	ErrAgencyNotFound = errors.New("agency not found")

	// ErrSettlementNotFound возвращается, когда взаиморасчёт не найден
	ErrSettlementNotFound = errors.New("settlement not found")

	// ErrNothingToSettle возвращается, когда у агентства нет
	// неоплаченных броней для свода
	ErrNothingToSettle = errors.New("no unsettled reservations for agency")

	// ErrAlreadySettled возвращается при попытке повторно включить
	// бронь во взаиморасчёт
	ErrAlreadySettled = errors.New("reservation already settled")

	// ErrSettlementAlreadyPaid возвращается при платеже в закрытый взаиморасчёт
	ErrSettlementAlreadyPaid = errors.New("settlement already paid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
