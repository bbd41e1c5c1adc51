package rates

import "errors"

var (
	// ErrRateNotFound возвращается, когда тариф не найден
	ErrRateNotFound = errors.New("rate not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
