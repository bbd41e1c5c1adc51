package create_settlement

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
	msgInvalidAgencyID = "некорректный ID агентства"
	msgMissingTenantID = "отсутствует ID тенанта"
	msgAgencyNotFound  = "агентство не найдено"
	msgNothingToSettle = "нет неоплаченных бронирований для свода"
	msgAlreadySettled  = "бронирования уже включены в другой взаиморасчёт"
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

// Handle POST /api/v1/agencies/{agencyId}/settlements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	agencyIDStr := vars["agencyId"]

	agencyID, err := strconv.ParseInt(agencyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /agencies/{id}/settlements - Invalid agency ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAgencyID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /agencies/{id}/settlements - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	result, err := h.service.CreateSettlement(r.Context(), tenantID, agencyID)
	if err != nil {
		switch {
		case errors.Is(err, settlements.ErrAgencyNotFound):
			h.logger.Warn("POST /agencies/{id}/settlements - Agency not found: agency_id=%d, tenant_id=%d",
				agencyID, tenantID)
			handlers.RespondNotFound(w, msgAgencyNotFound)

		case errors.Is(err, settlements.ErrNothingToSettle):
			h.logger.Info("POST /agencies/{id}/settlements - Nothing to settle: agency_id=%d", agencyID)
			handlers.RespondBadRequest(w, msgNothingToSettle)

		case errors.Is(err, settlements.ErrAlreadySettled):
			h.logger.Warn("POST /agencies/{id}/settlements - Concurrent sweep: agency_id=%d", agencyID)
			handlers.RespondConflict(w, msgAlreadySettled)

		default:
			h.logger.Error("POST /agencies/{id}/settlements - Failed to create settlement: agency_id=%d, error=%v",
				agencyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /agencies/{id}/settlements - Settlement created successfully: settlement_id=%d, agency_id=%d, payout=%d",
		result.ID, agencyID, result.PayoutTl)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
