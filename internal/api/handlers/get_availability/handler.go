package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gezilink/GL-BookingService/internal/api/handlers"
	getAvailability "github.com/gezilink/GL-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidTenantID   = "некорректный ID тенанта"
	msgInvalidActivityID = "некорректный ID активности"
	msgInvalidParams     = "некорректные параметры запроса, ожидается date=YYYY-MM-DD и time=HH:MM"
	msgActivityNotFound  = "активность не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/activities/{activityId}/availability
// Query params: date (обязательный), time (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantID, err := strconv.ParseInt(vars["tenantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/activities/{id}/availability - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	activityID, err := strconv.ParseInt(vars["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/activities/{id}/availability - Invalid activity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	timeStr := r.URL.Query().Get("time")

	useCaseReq, err := ToUseCaseRequest(tenantID, activityID, dateStr, timeStr)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/activities/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrActivityNotFound):
			h.logger.Warn("GET /tenants/{id}/activities/{id}/availability - Activity not found: tenant_id=%d, activity_id=%d",
				tenantID, activityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/activities/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /tenants/{id}/activities/{id}/availability - Failed to get availability: tenant_id=%d, activity_id=%d, error=%v",
				tenantID, activityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/activities/{id}/availability - Availability retrieved: tenant_id=%d, activity_id=%d, slots=%d",
		tenantID, activityID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
