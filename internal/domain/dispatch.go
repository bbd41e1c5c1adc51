package domain

import "time"

// Currency валюта денежной записи.
// Суммы хранятся параллельно в TRY и USD без FX-пересчёта.
type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
)

// IsValid возвращает true для поддерживаемой валюты
func (c Currency) IsValid() bool {
	return c == CurrencyTRY || c == CurrencyUSD
}

// SupplierDispatch запись о передаче гостей агентству-поставщику
// на конкретную дату. Управляет суммой, которую тенант должен агентству.
type SupplierDispatch struct {
	ID       int64
	TenantID int64
	AgencyID int64

	Date       time.Time
	GuestCount int

	Currency      Currency
	TotalPayoutTl int64

	Notes *string

	Items []SupplierDispatchItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SupplierDispatchItem строка-подначисление внутри dispatch
// (доплата за трансфер, детский тариф и т.п.)
type SupplierDispatchItem struct {
	ID         int64
	DispatchID int64

	Description string
	GuestCount  int
	AmountTl    int64
}

// AgencyPayout выплата агентству за период.
// Независима от dispatches: сверка идёт на уровне сумм.
type AgencyPayout struct {
	ID       int64
	TenantID int64
	AgencyID int64

	PeriodStart time.Time
	PeriodEnd   time.Time

	TotalAmountTl int64

	Notes *string

	CreatedAt time.Time
}

// AgencyBalanceSummary сводка взаиморасчётов по одному агентству.
// RemainingTl намеренно не ограничивается нулём: отрицательный
// остаток означает переплату и должен быть виден админу.
type AgencyBalanceSummary struct {
	AgencyID   int64
	AgencyName string

	TotalGuests   int
	TotalOwedTl   int64
	TotalOwedUsd  int64
	TotalPaidTl   int64
	RemainingTl   int64
	DispatchCount int
	PayoutCount   int
}

// HasActivity возвращает true, если по агентству были гости или выплаты.
// Агентства без активности исключаются из сводки.
func (s *AgencyBalanceSummary) HasActivity() bool {
	return s.TotalGuests > 0 || s.TotalPaidTl != 0
}

// DateRange опциональный период для сводок
type DateRange struct {
	Start *time.Time
	End   *time.Time
}
