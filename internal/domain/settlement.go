package domain

import "time"

// SettlementStatus статус взаиморасчёта.
// Переход open -> paid терминален: оплаченный взаиморасчёт
// никогда не открывается заново.
type SettlementStatus string

const (
	SettlementStatusOpen SettlementStatus = "open"
	SettlementStatusPaid SettlementStatus = "paid"
)

// Settlement взаиморасчёт с агентством: группа неоплаченных броней,
// сведённая в единую сумму к выплате.
//
// Инварианты:
//   - PaidAmountTl == sum(Payments.AmountTl)
//   - RemainingTl == max(0, PayoutTl - PaidAmountTl)
type Settlement struct {
	ID       int64
	TenantID int64
	AgencyID int64

	PayoutTl     int64
	PaidAmountTl int64
	RemainingTl  int64

	Status SettlementStatus

	Entries  []SettlementEntry
	Payments []SettlementPayment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPaid возвращает true для закрытого взаиморасчёта
func (s *Settlement) IsPaid() bool {
	return s.Status == SettlementStatusPaid
}

// SettlementEntry строка взаиморасчёта: конкретная бронь с
// зафиксированным на момент свода тарифом
type SettlementEntry struct {
	ID            int64
	SettlementID  int64
	ReservationID int64

	GuestCount       int
	PayoutPerGuestTl int64
	AmountTl         int64
}

// SettlementPayment платёж, проведённый против взаиморасчёта
type SettlementPayment struct {
	ID           int64
	SettlementID int64

	AmountTl int64
	Method   *string
	Notes    *string

	PaidAt    time.Time
	CreatedAt time.Time
}
