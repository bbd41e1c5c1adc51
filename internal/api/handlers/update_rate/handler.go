package update_rate

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
	msgInvalidRateID      = "некорректный ID тарифа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgNotFound           = "тариф не найден"
	msgInvalidData        = "некорректные данные тарифа"
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

// Handle PATCH /api/v1/rates/{rateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	rateIDStr := vars["rateId"]

	rateID, err := strconv.ParseInt(rateIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /rates/{id} - Invalid rate ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRateID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /rates/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req UpdateRateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /rates/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cmd, err := req.ToUpdateCommand()
	if err != nil {
		h.logger.Warn("PATCH /rates/{id} - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	err = h.service.UpdateRate(r.Context(), tenantID, rateID, cmd)
	if err != nil {
		switch {
		case errors.Is(err, rates.ErrRateNotFound):
			h.logger.Warn("PATCH /rates/{id} - Rate not found: rate_id=%d, tenant_id=%d", rateID, tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rates.ErrInvalidInput):
			h.logger.Warn("PATCH /rates/{id} - Invalid data: rate_id=%d, error=%v", rateID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /rates/{id} - Failed to update rate: rate_id=%d, error=%v", rateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /rates/{id} - Rate updated successfully: rate_id=%d, tenant_id=%d", rateID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
