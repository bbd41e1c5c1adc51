package domain

import "time"

// DeletionStatus статус жизненного цикла удаления партнёрской транзакции
type DeletionStatus string

const (
	DeletionStatusNone     DeletionStatus = "none"
	DeletionStatusPending  DeletionStatus = "pending"
	DeletionStatusApproved DeletionStatus = "approved"
	DeletionStatusRejected DeletionStatus = "rejected"
)

// PartnerRole роль тенанта при выборке партнёрских транзакций
type PartnerRole string

const (
	PartnerRoleSender   PartnerRole = "sender"
	PartnerRoleReceiver PartnerRole = "receiver"
	PartnerRoleAll      PartnerRole = "all"
)

// IsValid возвращает true для поддерживаемой роли
func (r PartnerRole) IsValid() bool {
	return r == PartnerRoleSender || r == PartnerRoleReceiver || r == PartnerRoleAll
}

// PartnerTransaction кросс-тенантная запись о разделении выручки:
// один тенант исполняет заявку клиента другого тенанта.
//
// Транзакция никогда не удаляется в одностороннем порядке: одна
// сторона запрашивает удаление, ДРУГАЯ сторона подтверждает или
// отклоняет. Запросивший тенант не может подтвердить собственный
// запрос - это ключевой инвариант авторизации.
type PartnerTransaction struct {
	ID int64

	SenderTenantID   int64
	ReceiverTenantID int64

	CustomerName string
	ActivityName string
	Date         time.Time
	GuestCount   int
	AmountTl     int64

	Notes *string

	DeletionStatus              DeletionStatus
	DeletionRequestedByTenantID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvolvesTenant возвращает true, если тенант является стороной транзакции
func (t *PartnerTransaction) InvolvesTenant(tenantID int64) bool {
	return t.SenderTenantID == tenantID || t.ReceiverTenantID == tenantID
}

// HasPendingDeletion возвращает true при ожидающем запросе на удаление
func (t *PartnerTransaction) HasPendingDeletion() bool {
	return t.DeletionStatus == DeletionStatusPending
}

// CanApproveDeletion возвращает true, если тенант вправе подтвердить
// удаление: запрос в статусе pending и тенант не является его автором
func (t *PartnerTransaction) CanApproveDeletion(tenantID int64) bool {
	if !t.HasPendingDeletion() || !t.InvolvesTenant(tenantID) {
		return false
	}
	return t.DeletionRequestedByTenantID == nil || *t.DeletionRequestedByTenantID != tenantID
}
