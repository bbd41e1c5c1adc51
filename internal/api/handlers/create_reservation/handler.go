package create_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gezilink/GL-BookingService/internal/api/handlers"
	createReservation "github.com/gezilink/GL-BookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidTenantID         = "некорректный ID тенанта"
	msgInvalidRequestBody      = "некорректное тело запроса"
	msgInvalidDateOrTime       = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgActivityNotFound        = "активность не найдена"
	msgAvailabilityClosed      = "онлайн-бронирование этой активности закрыто"
	msgInsufficientCapacity    = "недостаточно свободных мест в выбранном слоте"
	msgInvalidExtra            = "неизвестная дополнительная услуга"
	msgInvalidExtraQuantity    = "некорректное количество дополнительной услуги"
	msgInvalidReservationInput = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantIDStr := vars["tenantId"]

	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/reservations - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var capacityErr *createReservation.InsufficientCapacityError

		switch {
		case errors.As(err, &capacityErr):
			h.logger.Warn("POST /tenants/{id}/reservations - Insufficient capacity: tenant_id=%d, activity_id=%d, available=%d",
				tenantID, req.ActivityID, capacityErr.Available)
			handlers.RespondJSON(w, http.StatusConflict, CapacityConflictResponse{
				Error:          msgInsufficientCapacity,
				AvailableSlots: capacityErr.Available,
			})

		case errors.Is(err, createReservation.ErrInsufficientCapacity):
			h.logger.Warn("POST /tenants/{id}/reservations - Insufficient capacity: tenant_id=%d, activity_id=%d",
				tenantID, req.ActivityID)
			handlers.RespondError(w, http.StatusConflict, msgInsufficientCapacity)

		case errors.Is(err, createReservation.ErrActivityNotFound):
			h.logger.Warn("POST /tenants/{id}/reservations - Activity not found: tenant_id=%d, activity_id=%d",
				tenantID, req.ActivityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, createReservation.ErrAvailabilityClosed):
			h.logger.Warn("POST /tenants/{id}/reservations - Availability closed: tenant_id=%d, activity_id=%d",
				tenantID, req.ActivityID)
			handlers.RespondError(w, http.StatusConflict, msgAvailabilityClosed)

		case errors.Is(err, createReservation.ErrInvalidExtra):
			h.logger.Warn("POST /tenants/{id}/reservations - Invalid extra: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidExtra)

		case errors.Is(err, createReservation.ErrInvalidExtraQuantity):
			h.logger.Warn("POST /tenants/{id}/reservations - Invalid extra quantity: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidExtraQuantity)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /tenants/{id}/reservations - Invalid input: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidReservationInput)

		default:
			h.logger.Error("POST /tenants/{id}/reservations - Failed to create reservation: tenant_id=%d, activity_id=%d, error=%v",
				tenantID, req.ActivityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /tenants/{id}/reservations - Reservation created successfully: reservation_id=%d, tenant_id=%d, activity_id=%d",
		result.ID, tenantID, req.ActivityID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
