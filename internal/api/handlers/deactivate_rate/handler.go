package deactivate_rate

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gezilink/GL-BookingService/internal/api/handlers"
	"github.com/gezilink/GL-BookingService/internal/api/middleware"
	"github.com/gezilink/GL-BookingService/internal/service/rates"
)

const (
	msgInvalidRateID   = "некорректный ID тарифа"
	msgMissingTenantID = "отсутствует ID тенанта"
	msgNotFound        = "тариф не найден"
)

type Handler struct {
	service RateService
	logger  Logger
}

func NewHandler(service RateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/rates/{rateId}/deactivate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rateIDStr := vars["rateId"]

	rateID, err := strconv.ParseInt(rateIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /rates/{id}/deactivate - Invalid rate ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRateID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /rates/{id}/deactivate - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	err = h.service.DeactivateRate(r.Context(), tenantID, rateID)
	if err != nil {
		switch {
		case errors.Is(err, rates.ErrRateNotFound):
			h.logger.Warn("PATCH /rates/{id}/deactivate - Rate not found: rate_id=%d, tenant_id=%d", rateID, tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /rates/{id}/deactivate - Failed to deactivate rate: rate_id=%d, error=%v", rateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /rates/{id}/deactivate - Rate deactivated successfully: rate_id=%d, tenant_id=%d", rateID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
