package partnerregistry

import "errors"

var (
	// ErrPartnershipNotFound возвращается, когда между тенантами нет партнёрства
	ErrPartnershipNotFound = errors.New("partnership not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("partnerregistry client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("partnerregistry client: invalid response")
)
