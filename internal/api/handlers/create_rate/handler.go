package create_rate

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
	msgInvalidAgencyID    = "некорректный ID агентства"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingTenantID    = "отсутствует ID тенанта"
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

// Handle POST /api/v1/agencies/{agencyId}/rates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	agencyIDStr := vars["agencyId"]

	agencyID, err := strconv.ParseInt(agencyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /agencies/{id}/rates - Invalid agency ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAgencyID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /agencies/{id}/rates - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req CreateRateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /agencies/{id}/rates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rate, err := req.ToDomainRate(tenantID, agencyID)
	if err != nil {
		h.logger.Warn("POST /agencies/{id}/rates - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	created, err := h.service.CreateRate(r.Context(), rate)
	if err != nil {
		switch {
		case errors.Is(err, rates.ErrInvalidInput):
			h.logger.Warn("POST /agencies/{id}/rates - Invalid data: agency_id=%d, error=%v", agencyID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /agencies/{id}/rates - Failed to create rate: agency_id=%d, error=%v", agencyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /agencies/{id}/rates - Rate created successfully: rate_id=%d, agency_id=%d", created.ID, agencyID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainRate(created))
}
