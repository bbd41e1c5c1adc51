package record_dispatch

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
	msgInvalidData        = "некорректные данные отгрузки"
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

// Handle POST /api/v1/dispatches
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /dispatches - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req RecordDispatchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /dispatches - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RecordDispatch(r.Context(), tenantID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, dispatches.ErrAgencyNotFound):
			h.logger.Warn("POST /dispatches - Agency not found: agency_id=%d, tenant_id=%d", req.AgencyID, tenantID)
			handlers.RespondNotFound(w, msgAgencyNotFound)

		case errors.Is(err, dispatches.ErrInvalidInput):
			h.logger.Warn("POST /dispatches - Invalid data: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /dispatches - Failed to record dispatch: agency_id=%d, error=%v", req.AgencyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /dispatches - Dispatch recorded successfully: dispatch_id=%d, agency_id=%d, guests=%d",
		result.ID, result.AgencyID, result.GuestCount)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
