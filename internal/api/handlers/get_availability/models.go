package get_availability

import (
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
	getAvailability "github.com/gezilink/GL-BookingService/internal/usecase/get_availability"
	"github.com/gezilink/GL-BookingService/pkg/types"
)

// SlotAvailabilityResponse доступность одного слота
type SlotAvailabilityResponse struct {
	StartTime   string `json:"startTime"`
	TotalSlots  int    `json:"totalSlots"`
	BookedSlots int    `json:"bookedSlots"`
	Available   int    `json:"available"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ActivityID  int64                      `json:"activityId"`
	Date        string                     `json:"date"`
	Constrained bool                       `json:"constrained"`
	Slots       []SlotAvailabilityResponse `json:"slots"`
}

// ToUseCaseRequest собирает модель use case из параметров запроса
func ToUseCaseRequest(tenantID, activityID int64, dateStr, timeStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailability.Request{
		TenantID:   tenantID,
		ActivityID: activityID,
		Date:       date,
	}

	if timeStr != "" {
		startTime, err := types.NewTimeStringFromString(timeStr)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	response := &AvailabilityResponse{
		ActivityID:  resp.ActivityID,
		Date:        resp.Date.Format(domain.DateFormat),
		Constrained: resp.Constrained,
		Slots:       make([]SlotAvailabilityResponse, len(resp.Slots)),
	}

	for i, slot := range resp.Slots {
		response.Slots[i] = SlotAvailabilityResponse{
			StartTime:   slot.StartTime.String(),
			TotalSlots:  slot.TotalSlots,
			BookedSlots: slot.BookedSlots,
			Available:   slot.Available,
		}
	}

	return response
}
