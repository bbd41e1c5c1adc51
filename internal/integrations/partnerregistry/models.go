package partnerregistry

// Partnership модель партнёрства между тенантами из PartnerRegistry
type Partnership struct {
	ID               int64  `json:"id"`
	SenderTenantID   int64  `json:"sender_tenant_id"`
	ReceiverTenantID int64  `json:"receiver_tenant_id"`
	ReceiverName     string `json:"receiver_name"`
	IsActive         bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от PartnerRegistry
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
