package capacity

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот вместимости не найден.
	// Отсутствие слота означает отсутствие ограничения вместимости -
	// вызывающая сторона обязана учитывать это явно.
	ErrSlotNotFound = errors.New("capacity.repository: capacity slot not found")

	// ErrInsufficientCapacity возвращается, когда условное обновление
	// не затронуло ни одной строки: свободных мест меньше запрошенного
	ErrInsufficientCapacity = errors.New("capacity.repository: insufficient capacity")

	// ErrDuplicateSlot возвращается при попытке создать дубликат слота
	ErrDuplicateSlot = errors.New("capacity.repository: slot already exists for activity/date/time")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("capacity.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("capacity.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("capacity.repository: failed to scan row")
)
