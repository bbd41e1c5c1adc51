package list_settlements

import (
	"net/http"
	"strconv"

	"github.com/gezilink/GL-BookingService/internal/api/handlers"
	"github.com/gezilink/GL-BookingService/internal/api/middleware"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidAgencyID = "некорректный ID агентства"
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

// Handle GET /api/v1/settlements
// Query params: agencyId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /settlements - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var agencyID *int64
	if agencyIDStr := r.URL.Query().Get("agencyId"); agencyIDStr != "" {
		parsed, err := strconv.ParseInt(agencyIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /settlements - Invalid agency ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAgencyID)
			return
		}
		agencyID = &parsed
	}

	result, err := h.service.List(r.Context(), tenantID, agencyID)
	if err != nil {
		h.logger.Error("GET /settlements - Failed to list settlements: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /settlements - Settlements retrieved successfully: tenant_id=%d, count=%d",
		tenantID, len(result.Settlements))
	handlers.RespondJSON(w, http.StatusOK, result)
}
