package create_partner_transaction

import (
	"errors"
	"net/http"

	"github.com/gezilink/GL-BookingService/internal/api/handlers"
	"github.com/gezilink/GL-BookingService/internal/api/middleware"
	"github.com/gezilink/GL-BookingService/internal/service/partners"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingTenantID     = "отсутствует ID тенанта"
	msgPartnershipNotFound = "активное партнёрство с тенантом-получателем не найдено"
	msgInvalidData         = "некорректные данные транзакции"
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

// Handle POST /api/v1/partner-transactions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /partner-transactions - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req CreateTransactionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /partner-transactions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), tenantID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, partners.ErrPartnershipNotFound):
			h.logger.Warn("POST /partner-transactions - Partnership not found: sender=%d, receiver=%d",
				tenantID, req.ReceiverTenantID)
			handlers.RespondNotFound(w, msgPartnershipNotFound)

		case errors.Is(err, partners.ErrInvalidInput):
			h.logger.Warn("POST /partner-transactions - Invalid data: sender=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /partner-transactions - Failed to create transaction: sender=%d, receiver=%d, error=%v",
				tenantID, req.ReceiverTenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /partner-transactions - Transaction created successfully: transaction_id=%d, sender=%d, receiver=%d",
		result.ID, tenantID, req.ReceiverTenantID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
