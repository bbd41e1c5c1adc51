package list_reservations

import (
	"strconv"
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
	"github.com/gezilink/GL-BookingService/internal/service/reservations/models"
)

// ToServiceRequest собирает модель сервиса из query параметров
func ToServiceRequest(tenantID int64, agencyIDStr, activityIDStr, startDateStr, endDateStr, statusStr, includeInactiveStr string) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{
		TenantID: tenantID,
	}

	if agencyIDStr != "" {
		agencyID, err := strconv.ParseInt(agencyIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.AgencyID = &agencyID
	}

	if activityIDStr != "" {
		activityID, err := strconv.ParseInt(activityIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ActivityID = &activityID
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
