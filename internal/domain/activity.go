package domain

import "time"

// DepositType тип предоплаты активности
type DepositType string

const (
	DepositTypePercentage DepositType = "percentage"
	DepositTypeFixed      DepositType = "fixed"
)

// ActivityExtra дополнительная услуга активности (обед, трансфер, фото и т.д.)
// Цены хранятся в минорных единицах (куруши / центы) и являются
// единственным источником правды: клиентские цены никогда не используются.
type ActivityExtra struct {
	Name     string `json:"name"`
	PriceTl  int64  `json:"priceTl"`
	PriceUsd int64  `json:"priceUsd"`
}

// Activity экскурсия/тур тенанта.
// CRUD активностей - внешняя админка; ядро читает их как есть.
type Activity struct {
	ID       int64
	TenantID int64
	Name     string

	// Цены в минорных единицах, параллельно в TRY и USD (без FX-пересчёта)
	PriceTl         int64
	PriceUsd        int64
	DiscountPriceTl *int64

	Extras []ActivityExtra

	// Политика предоплаты: none | percentage | fixed | full
	RequiresDeposit     bool
	FullPaymentRequired bool
	DepositType         DepositType
	DepositPercent      int
	DepositAmountTl     int64

	AvailabilityClosed bool
	IsActive           bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UnitPriceTl возвращает действующую цену за гостя:
// скидочная цена имеет приоритет над базовой
func (a *Activity) UnitPriceTl() int64 {
	if a.DiscountPriceTl != nil && *a.DiscountPriceTl > 0 {
		return *a.DiscountPriceTl
	}
	return a.PriceTl
}

// FindExtra ищет дополнительную услугу по имени.
// Возвращает nil, если услуга не определена у активности.
func (a *Activity) FindExtra(name string) *ActivityExtra {
	for i := range a.Extras {
		if a.Extras[i].Name == name {
			return &a.Extras[i]
		}
	}
	return nil
}

// IsBookable возвращает true, если активность принимает бронирования
func (a *Activity) IsBookable() bool {
	return a.IsActive && !a.AvailabilityClosed
}
