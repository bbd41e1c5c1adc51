package domain

import "time"

// Agency агентство-поставщик (или партнёр со стороны спроса),
// привязанное к тенанту
type Agency struct {
	ID       int64
	TenantID int64
	Name     string

	// Дефолтная выплата за гостя, применяется когда для агентства
	// не найден действующий контрактный тариф
	DefaultPayoutPerGuestTl int64

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgencyActivityRate контрактный тариф агентства, ограниченный во времени.
// ActivityID == nil означает "общий" тариф, действующий для всех
// активностей агентства.
type AgencyActivityRate struct {
	ID       int64
	TenantID int64
	AgencyID int64

	// nil = общий тариф для всех активностей
	ActivityID *int64

	PayoutPerGuestTl int64

	ValidFrom time.Time
	ValidTo   *time.Time
	IsActive  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGeneral возвращает true для общего тарифа (без привязки к активности)
func (r *AgencyActivityRate) IsGeneral() bool {
	return r.ActivityID == nil
}

// IsEffectiveOn возвращает true, если тариф действует на указанную дату
func (r *AgencyActivityRate) IsEffectiveOn(date time.Time) bool {
	if date.Before(r.ValidFrom) {
		return false
	}
	if r.ValidTo != nil && date.After(*r.ValidTo) {
		return false
	}
	return true
}

// AppliesToActivity возвращает true, если тариф применим к активности:
// общий тариф применим всегда, специфичный - только к своей активности
func (r *AgencyActivityRate) AppliesToActivity(activityID *int64) bool {
	if r.ActivityID == nil {
		return true
	}
	return activityID != nil && *r.ActivityID == *activityID
}

// UpdateRateCommand явная команда обновления тарифа.
// Перечисляет ровно те поля, которые разрешено менять; nil = не менять.
type UpdateRateCommand struct {
	PayoutPerGuestTl *int64
	ValidTo          *time.Time
	ClearValidTo     bool // true = сделать тариф бессрочным (valid_to = NULL)
	IsActive         *bool
}

// IsEmpty возвращает true, если команда не меняет ни одного поля
func (c *UpdateRateCommand) IsEmpty() bool {
	return c.PayoutPerGuestTl == nil && c.ValidTo == nil && !c.ClearValidTo && c.IsActive == nil
}
