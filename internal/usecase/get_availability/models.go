package get_availability

import (
	"time"

	"github.com/gezilink/GL-BookingService/pkg/types"
)

// Request модель запроса доступности активности на дату
type Request struct {
	TenantID   int64             // ID тенанта
	ActivityID int64             // ID активности
	Date       time.Time         // Дата тура
	StartTime  *types.TimeString // Конкретное время (опционально, nil = все слоты дня)
}

// SlotAvailability доступность одного слота
type SlotAvailability struct {
	StartTime   types.TimeString // Время начала
	TotalSlots  int              // Всего мест
	BookedSlots int              // Занято мест
	Available   int              // Свободно мест
}

// Response модель ответа с доступностью.
// Пустой список слотов при Constrained=false означает, что вместимость
// активности на эту дату не ограничена.
type Response struct {
	ActivityID  int64              // ID активности
	Date        time.Time          // Дата тура
	Constrained bool               // Есть ли ограничение вместимости
	Slots       []SlotAvailability // Слоты с доступностью
}
