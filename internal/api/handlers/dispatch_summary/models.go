package dispatch_summary

import (
	"strconv"
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
	"github.com/gezilink/GL-BookingService/internal/service/dispatches/models"
)

// ToServiceRequest собирает модель сервиса из query параметров
func ToServiceRequest(tenantID int64, agencyIDStr, startDateStr, endDateStr string) (*models.SummaryRequest, error) {
	req := &models.SummaryRequest{
		TenantID: tenantID,
	}

	if agencyIDStr != "" {
		agencyID, err := strconv.ParseInt(agencyIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.AgencyID = &agencyID
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

	return req, nil
}
