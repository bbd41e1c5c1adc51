package record_payout

import (
	"errors"
	"net/http"

	"github.com/gezilink/GL-BookingService/internal/api/handlers"
	"github.com/gezilink/GL-BookingService/internal/api/middleware"
	"github.com/gezilink/GL-BookingService/internal/service/dispatches"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgAgencyNotFound     = "агентство не найдено"
	msgInvalidData        = "некорректные данные выплаты"
)

type Handler struct {
	service DispatchService
	logger  Logger
}

func NewHandler(service DispatchService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /payouts - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req RecordPayoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RecordPayout(r.Context(), tenantID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, dispatches.ErrAgencyNotFound):
			h.logger.Warn("POST /payouts - Agency not found: agency_id=%d, tenant_id=%d", req.AgencyID, tenantID)
			handlers.RespondNotFound(w, msgAgencyNotFound)

		case errors.Is(err, dispatches.ErrInvalidInput):
			h.logger.Warn("POST /payouts - Invalid data: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /payouts - Failed to record payout: agency_id=%d, error=%v", req.AgencyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payouts - Payout recorded successfully: payout_id=%d, agency_id=%d, amount=%d",
		result.ID, result.AgencyID, result.TotalAmountTl)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
