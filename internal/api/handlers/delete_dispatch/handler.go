package delete_dispatch

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gezilink/GL-BookingService/internal/api/handlers"
	"github.com/gezilink/GL-BookingService/internal/api/middleware"
	"github.com/gezilink/GL-BookingService/internal/service/dispatches"
)

const (
	msgInvalidDispatchID = "некорректный ID отгрузки"
	msgMissingTenantID   = "отсутствует ID тенанта"
	msgNotFound          = "отгрузка не найдена"
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

// Handle DELETE /api/v1/dispatches/{dispatchId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dispatchIDStr := vars["dispatchId"]

	dispatchID, err := strconv.ParseInt(dispatchIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /dispatches/{id} - Invalid dispatch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDispatchID)
		return
	}

	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /dispatches/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	err = h.service.DeleteDispatch(r.Context(), tenantID, dispatchID)
	if err != nil {
		switch {
		case errors.Is(err, dispatches.ErrDispatchNotFound):
			h.logger.Warn("DELETE /dispatches/{id} - Dispatch not found: dispatch_id=%d, tenant_id=%d",
				dispatchID, tenantID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /dispatches/{id} - Failed to delete dispatch: dispatch_id=%d, error=%v",
				dispatchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /dispatches/{id} - Dispatch deleted successfully: dispatch_id=%d, tenant_id=%d",
		dispatchID, tenantID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
