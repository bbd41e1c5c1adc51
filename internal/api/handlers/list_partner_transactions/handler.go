package list_partner_transactions

import (
	"errors"
	"net/http"

	"github.com/gezilink/GL-BookingService/internal/api/handlers"
	"github.com/gezilink/GL-BookingService/internal/api/middleware"
	"github.com/gezilink/GL-BookingService/internal/service/partners"
	"github.com/gezilink/GL-BookingService/internal/service/partners/models"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidRole     = "некорректная роль, ожидается sender, receiver или all"
)

type Handler struct {
	service PartnerService
	logger  Logger
}

func NewHandler(service PartnerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/partner-transactions
// Query params: role (sender | receiver | all, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /partner-transactions - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	serviceReq := &models.ListTransactionsRequest{
		TenantID: tenantID,
	}
	if roleStr := r.URL.Query().Get("role"); roleStr != "" {
		serviceReq.Role = &roleStr
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, partners.ErrInvalidInput):
			h.logger.Warn("GET /partner-transactions - Invalid role: tenant_id=%d", tenantID)
			handlers.RespondBadRequest(w, msgInvalidRole)

		default:
			h.logger.Error("GET /partner-transactions - Failed to list transactions: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /partner-transactions - Transactions retrieved successfully: tenant_id=%d, count=%d",
		tenantID, len(result.Transactions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
