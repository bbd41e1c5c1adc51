package create_reservation

import "github.com/gezilink/GL-BookingService/internal/domain"

// Типы оплаты в ответе бронирования
const (
	paymentTypeNone    = "none"
	paymentTypeDeposit = "deposit"
	paymentTypeFull    = "full"
)

// pricing серверная разбивка цены бронирования, минорные единицы
type pricing struct {
	PriceTl            int64
	PriceUsd           int64
	ExtrasTotalTl      int64
	DepositRequiredTl  int64
	RemainingPaymentTl int64
	PaymentType        string
}

// computePricing считает цену бронирования строго по серверным данным
// активности. Скидочная цена имеет приоритет; доп. услуги суммируются
// по количеству; предоплата определяется политикой активности.
func computePricing(activity *domain.Activity, quantity int, extras []domain.ReservationExtra) pricing {
	var extrasTotalTl, extrasTotalUsd int64
	for _, extra := range extras {
		extrasTotalTl += extra.PriceTl * int64(extra.Quantity)
		extrasTotalUsd += extra.PriceUsd * int64(extra.Quantity)
	}

	totalTl := activity.UnitPriceTl()*int64(quantity) + extrasTotalTl
	totalUsd := activity.PriceUsd*int64(quantity) + extrasTotalUsd

	p := pricing{
		PriceTl:       totalTl,
		PriceUsd:      totalUsd,
		ExtrasTotalTl: extrasTotalTl,
		PaymentType:   paymentTypeNone,
	}

	switch {
	case activity.FullPaymentRequired:
		p.DepositRequiredTl = totalTl
		p.RemainingPaymentTl = 0
		p.PaymentType = paymentTypeFull
	case activity.RequiresDeposit:
		p.DepositRequiredTl = depositAmount(activity, totalTl)
		p.RemainingPaymentTl = totalTl - p.DepositRequiredTl
		p.PaymentType = paymentTypeDeposit
	default:
		p.DepositRequiredTl = 0
		p.RemainingPaymentTl = totalTl
	}

	return p
}

// depositAmount считает предоплату по типу депозита активности.
// Процентная предоплата округляется до ближайшей минорной единицы.
func depositAmount(activity *domain.Activity, totalTl int64) int64 {
	if activity.DepositType == domain.DepositTypePercentage {
		return (totalTl*int64(activity.DepositPercent) + 50) / 100
	}
	return activity.DepositAmountTl
}
