package get_settlement

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
	msgMissingTenantID     = "отсутствует ID тенанта"
	msgNotFound            = "взаиморасчёт не найден"
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

// Handle GET /api/v1/settlements/{settlementId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	settlementIDStr := vars["settlementId"]

	settlementID, err := strconv.ParseInt(settlementIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /settlements/{id} - Invalid settlement ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSettlementID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /settlements/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	result, err := h.service.GetByID(r.Context(), tenantID, settlementID)
	if err != nil {
		switch {
		case errors.Is(err, settlements.ErrSettlementNotFound):
			h.logger.Warn("GET /settlements/{id} - Settlement not found: settlement_id=%d, tenant_id=%d",
				settlementID, tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /settlements/{id} - Failed to get settlement: settlement_id=%d, error=%v",
				settlementID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /settlements/{id} - Settlement retrieved successfully: settlement_id=%d", settlementID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
