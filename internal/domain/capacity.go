package domain

import (
	"time"

	"github.com/gezilink/GL-BookingService/pkg/types"
)

// CapacitySlot единица бронируемой вместимости: одна активность,
// одна дата, одно время начала.
//
// Инвариант: 0 <= BookedSlots <= TotalSlots после любого успешного
// бронирования. Мутируется только атомарными условными UPDATE в
// репозитории capacity; отсутствие строки слота означает отсутствие
// ограничения вместимости.
type CapacitySlot struct {
	ID         int64
	TenantID   int64
	ActivityID int64
	Date       time.Time
	StartTime  types.TimeString

	TotalSlots  int
	BookedSlots int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available возвращает количество свободных мест
func (s *CapacitySlot) Available() int {
	return s.TotalSlots - s.BookedSlots
}

// IsFull возвращает true, если свободных мест нет
func (s *CapacitySlot) IsFull() bool {
	return s.Available() <= 0
}

// CanFit возвращает true, если слот вмещает quantity гостей
func (s *CapacitySlot) CanFit(quantity int) bool {
	return s.Available() >= quantity
}

// CapacitySlotKey ключ слота для условных обновлений
type CapacitySlotKey struct {
	TenantID   int64
	ActivityID int64
	Date       time.Time
	StartTime  types.TimeString
}
