package resolve_partner_deletion

// Действия над запросом на удаление
const (
	actionApprove = "approve"
	actionReject  = "reject"
)

// ResolveDeletionRequest HTTP request model
type ResolveDeletionRequest struct {
	Action string `json:"action"` // "approve" | "reject"
}

// IsValid проверяет, что действие поддерживается
func (r *ResolveDeletionRequest) IsValid() bool {
	return r.Action == actionApprove || r.Action == actionReject
}
