package get_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gezilink/GL-BookingService/internal/api/handlers"
	"github.com/gezilink/GL-BookingService/internal/service/reservations"
)

const (
	msgMissingToken = "отсутствует токен отслеживания"
	msgNotFound     = "бронирование не найдено"
	msgTokenExpired = "срок действия токена отслеживания истёк"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/track/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	token := vars["token"]
	if token == "" {
		h.logger.Warn("GET /reservations/track/{token} - Missing tracking token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	result, err := h.service.GetByTrackingToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/track/{token} - Reservation not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrTrackingTokenExpired):
			h.logger.Info("GET /reservations/track/{token} - Tracking token expired")
			handlers.RespondError(w, http.StatusGone, msgTokenExpired)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations/track/{token} - Invalid token: %v", err)
			handlers.RespondBadRequest(w, msgMissingToken)

		default:
			h.logger.Error("GET /reservations/track/{token} - Failed to get reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations/track/{token} - Reservation retrieved successfully: reservation_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
