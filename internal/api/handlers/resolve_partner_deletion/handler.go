package resolve_partner_deletion

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gezilink/GL-BookingService/internal/api/handlers"
	"github.com/gezilink/GL-BookingService/internal/api/middleware"
	"github.com/gezilink/GL-BookingService/internal/service/partners"
)

const (
	msgInvalidTransactionID = "некорректный ID транзакции"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAction        = "некорректное действие, ожидается approve или reject"
	msgMissingTenantID      = "отсутствует ID тенанта"
	msgNotFound             = "транзакция не найдена"
	msgForbidden            = "доступ запрещен"
	msgNotPending           = "по транзакции нет ожидающего запроса на удаление"
	msgOwnRequest           = "нельзя подтвердить или отклонить собственный запрос на удаление"
)

type Handler struct {
	service PartnerService
	logger  Logger
}

func NewHandler(service PartnerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/partner-transactions/{transactionId}/deletion-resolution
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	transactionIDStr := vars["transactionId"]

	transactionID, err := strconv.ParseInt(transactionIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /partner-transactions/{id}/deletion-resolution - Invalid transaction ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTransactionID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /partner-transactions/{id}/deletion-resolution - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req ResolveDeletionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /partner-transactions/{id}/deletion-resolution - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if !req.IsValid() {
		h.logger.Warn("POST /partner-transactions/{id}/deletion-resolution - Invalid action: %q", req.Action)
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}

	if req.Action == actionApprove {
		err = h.service.ApproveDeletion(r.Context(), tenantID, transactionID)
	} else {
		err = h.service.RejectDeletion(r.Context(), tenantID, transactionID)
	}
	if err != nil {
		switch {
		case errors.Is(err, partners.ErrTransactionNotFound):
			h.logger.Warn("POST /partner-transactions/{id}/deletion-resolution - Transaction not found: transaction_id=%d",
				transactionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, partners.ErrAccessDenied):
			h.logger.Warn("POST /partner-transactions/{id}/deletion-resolution - Access denied: transaction_id=%d, tenant_id=%d",
				transactionID, tenantID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, partners.ErrDeletionNotPending):
			h.logger.Warn("POST /partner-transactions/{id}/deletion-resolution - No pending request: transaction_id=%d",
				transactionID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, partners.ErrCannotResolveOwnRequest):
			h.logger.Warn("POST /partner-transactions/{id}/deletion-resolution - Own request: transaction_id=%d, tenant_id=%d",
				transactionID, tenantID)
			handlers.RespondForbidden(w, msgOwnRequest)

		default:
			h.logger.Error("POST /partner-transactions/{id}/deletion-resolution - Failed to resolve deletion: transaction_id=%d, error=%v",
				transactionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /partner-transactions/{id}/deletion-resolution - Deletion %s by tenant=%d: transaction_id=%d",
		req.Action, tenantID, transactionID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
