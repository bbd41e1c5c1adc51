package record_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gezilink/GL-BookingService/internal/api/handlers"
	"github.com/gezilink/GL-BookingService/internal/api/middleware"
	"github.com/gezilink/GL-BookingService/internal/service/settlements"
)

const (
	msgInvalidSettlementID = "некорректный ID взаиморасчёта"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingTenantID     = "отсутствует ID тенанта"
	msgNotFound            = "взаиморасчёт не найден"
	msgAlreadyPaid         = "взаиморасчёт уже полностью оплачен"
	msgInvalidAmount       = "сумма платежа должна быть положительной"
)

type Handler struct {
	service SettlementService
	logger  Logger
}

func NewHandler(service SettlementService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/settlements/{settlementId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	settlementIDStr := vars["settlementId"]

	settlementID, err := strconv.ParseInt(settlementIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /settlements/{id}/payments - Invalid settlement ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSettlementID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /settlements/{id}/payments - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /settlements/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RecordPayment(r.Context(), tenantID, settlementID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, settlements.ErrSettlementNotFound):
			h.logger.Warn("POST /settlements/{id}/payments - Settlement not found: settlement_id=%d, tenant_id=%d",
				settlementID, tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, settlements.ErrSettlementAlreadyPaid):
			h.logger.Warn("POST /settlements/{id}/payments - Settlement already paid: settlement_id=%d", settlementID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, settlements.ErrInvalidInput):
			h.logger.Warn("POST /settlements/{id}/payments - Invalid amount: settlement_id=%d, amount=%d",
				settlementID, req.AmountTl)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		default:
			h.logger.Error("POST /settlements/{id}/payments - Failed to record payment: settlement_id=%d, error=%v",
				settlementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /settlements/{id}/payments - Payment recorded successfully: settlement_id=%d, amount=%d, status=%s",
		settlementID, req.AmountTl, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
