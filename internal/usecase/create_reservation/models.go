package create_reservation

import (
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
	"github.com/gezilink/GL-BookingService/pkg/types"
)

// ExtraRequest запрошенная дополнительная услуга.
// Клиентские цены игнорируются: цена всегда берется из активности.
type ExtraRequest struct {
	Name     string
	Quantity int
}

// Request модель запроса на создание бронирования
type Request struct {
	TenantID   int64            // ID тенанта (из URL публичного endpoint)
	ActivityID int64            // ID активности
	AgencyID   *int64           // ID агентства-поставщика (опционально)
	Date       time.Time        // Дата тура (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")
	Quantity   int              // Количество гостей (1-50)

	SelectedExtras []ExtraRequest       // Запрошенные доп. услуги (опционально)
	Participants   []domain.Participant // Список участников (опционально)

	HotelName   *string // Отель для трансфера (опционально)
	HasTransfer bool    // Требуется трансфер
	Notes       *string // Заметки (опционально)
	Source      string  // Источник бронирования (по умолчанию website)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64  // ID созданного бронирования
	TrackingToken string // Публичный токен отслеживания
	Status        string // Статус бронирования

	ActivityID   int64            // ID активности
	ActivityName string           // Название активности
	Date         time.Time        // Дата тура
	StartTime    types.TimeString // Время начала
	Quantity     int              // Количество гостей

	// Серверная разбивка цены, минорные единицы
	PriceTl            int64 // Итоговая цена в TRY
	PriceUsd           int64 // Итоговая цена в USD
	ExtrasTotalTl      int64 // Сумма доп. услуг в TRY
	DepositRequiredTl  int64 // Требуемая предоплата
	RemainingPaymentTl int64 // Остаток к оплате

	PaymentType string // none | deposit | full

	TokenExpiresAt time.Time // Срок действия токена
	CreatedAt      time.Time // Время создания
}
