package dispatch_summary

import (
	"net/http"

	"github.com/gezilink/GL-BookingService/internal/api/handlers"
	"github.com/gezilink/GL-BookingService/internal/api/middleware"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidParams   = "некорректные параметры запроса"
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

// Handle GET /api/v1/dispatches/summary
// Query params: agencyId, startDate, endDate (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /dispatches/summary - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		tenantID,
		query.Get("agencyId"),
		query.Get("startDate"),
		query.Get("endDate"),
	)
	if err != nil {
		h.logger.Warn("GET /dispatches/summary - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.Summarize(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /dispatches/summary - Failed to build summary: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /dispatches/summary - Summary built successfully: tenant_id=%d, agencies=%d",
		tenantID, len(result.Agencies))
	handlers.RespondJSON(w, http.StatusOK, result)
}
