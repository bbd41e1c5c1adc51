package create_reservation

import (
	"errors"
	"fmt"
)

var (
	// ErrActivityNotFound возвращается, когда активность не найдена или неактивна
	ErrActivityNotFound = errors.New("create_reservation: activity not found")

	// ErrAvailabilityClosed возвращается, когда активность закрыта для бронирования
	ErrAvailabilityClosed = errors.New("create_reservation: activity availability is closed")

	// ErrInsufficientCapacity возвращается, когда свободных мест меньше запрошенного
	ErrInsufficientCapacity = errors.New("create_reservation: insufficient capacity")

	// ErrInvalidExtra возвращается, когда запрошенная доп. услуга
	// не определена у активности
	ErrInvalidExtra = errors.New("create_reservation: unknown extra")

	// ErrInvalidExtraQuantity возвращается при некорректном количестве доп. услуги
	ErrInvalidExtraQuantity = errors.New("create_reservation: invalid extra quantity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// InsufficientCapacityError несёт количество оставшихся мест,
// чтобы клиент мог показать его пользователю.
// Сопоставляется и через errors.Is(err, ErrInsufficientCapacity),
// и через errors.As для доступа к Available.
type InsufficientCapacityError struct {
	Available int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("create_reservation: insufficient capacity, %d seats available", e.Available)
}

// Unwrap позволяет errors.Is находить сентинел
func (e *InsufficientCapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}
