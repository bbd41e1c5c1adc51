package dispatches

import "errors"

var (
	// ErrAgencyNotFound возвращается, когда агентство не найдено
	ErrAgencyNotFound = errors.New("agency not found")

	// ErrDispatchNotFound возвращается, когда отгрузка не найдена
	ErrDispatchNotFound = errors.New("dispatch not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
