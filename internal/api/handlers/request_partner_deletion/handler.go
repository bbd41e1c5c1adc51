package request_partner_deletion

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
	msgMissingTenantID      = "отсутствует ID тенанта"
	msgNotFound             = "транзакция не найдена"
	msgForbidden            = "доступ запрещен"
	msgAlreadyRequested     = "запрос на удаление уже ожидает подтверждения"
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

// Handle POST /api/v1/partner-transactions/{transactionId}/deletion-request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	transactionIDStr := vars["transactionId"]

	transactionID, err := strconv.ParseInt(transactionIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /partner-transactions/{id}/deletion-request - Invalid transaction ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTransactionID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /partner-transactions/{id}/deletion-request - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	err = h.service.RequestDeletion(r.Context(), tenantID, transactionID)
	if err != nil {
		switch {
		case errors.Is(err, partners.ErrTransactionNotFound):
			h.logger.Warn("POST /partner-transactions/{id}/deletion-request - Transaction not found: transaction_id=%d",
				transactionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, partners.ErrAccessDenied):
			h.logger.Warn("POST /partner-transactions/{id}/deletion-request - Access denied: transaction_id=%d, tenant_id=%d",
				transactionID, tenantID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, partners.ErrDeletionAlreadyRequested):
			h.logger.Warn("POST /partner-transactions/{id}/deletion-request - Already requested: transaction_id=%d",
				transactionID)
			handlers.RespondConflict(w, msgAlreadyRequested)

		default:
			h.logger.Error("POST /partner-transactions/{id}/deletion-request - Failed to request deletion: transaction_id=%d, error=%v",
				transactionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /partner-transactions/{id}/deletion-request - Deletion requested successfully: transaction_id=%d, tenant_id=%d",
		transactionID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
