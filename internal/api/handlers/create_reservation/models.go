package create_reservation

import (
	"time"

	"github.com/gezilink/GL-BookingService/internal/domain"
	createReservation "github.com/gezilink/GL-BookingService/internal/usecase/create_reservation"
	"github.com/gezilink/GL-BookingService/pkg/types"
)

// ExtraRequest запрошенная дополнительная услуга.
// Цены клиент не присылает: они всегда серверные.
type ExtraRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ActivityID int64  `json:"activityId"`
	AgencyID   *int64 `json:"agencyId,omitempty"`
	Date       string `json:"date"`      // "2026-07-15"
	StartTime  string `json:"startTime"` // "10:00"
	GuestCount int    `json:"guestCount"`

	Extras       []ExtraRequest       `json:"extras,omitempty"`
	Participants []domain.Participant `json:"participants,omitempty"`

	HotelName   *string `json:"hotelName,omitempty"`
	HasTransfer bool    `json:"hasTransfer"`
	Notes       *string `json:"notes,omitempty"`
	Source      string  `json:"source,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64  `json:"id"`
	TrackingToken string `json:"trackingToken"`
	Status        string `json:"status"`

	ActivityID   int64  `json:"activityId"`
	ActivityName string `json:"activityName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	GuestCount   int    `json:"guestCount"`

	PriceTl            int64 `json:"priceTl"`
	PriceUsd           int64 `json:"priceUsd"`
	ExtrasTotalTl      int64 `json:"extrasTotalTl"`
	DepositRequiredTl  int64 `json:"depositRequiredTl"`
	RemainingPaymentTl int64 `json:"remainingPaymentTl"`

	PaymentType string `json:"paymentType"`

	TokenExpiresAt string `json:"tokenExpiresAt"`
	CreatedAt      string `json:"createdAt"`
}

// CapacityConflictResponse тело ответа 409 при нехватке мест
type CapacityConflictResponse struct {
	Error          string `json:"error"`
	AvailableSlots int    `json:"availableSlots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(tenantID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	extras := make([]createReservation.ExtraRequest, len(r.Extras))
	for i, extra := range r.Extras {
		extras[i] = createReservation.ExtraRequest{
			Name:     extra.Name,
			Quantity: extra.Quantity,
		}
	}

	return &createReservation.Request{
		TenantID:       tenantID,
		ActivityID:     r.ActivityID,
		AgencyID:       r.AgencyID,
		Date:           date,
		StartTime:      startTime,
		Quantity:       r.GuestCount,
		SelectedExtras: extras,
		Participants:   r.Participants,
		HotelName:      r.HotelName,
		HasTransfer:    r.HasTransfer,
		Notes:          r.Notes,
		Source:         r.Source,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:                 resp.ID,
		TrackingToken:      resp.TrackingToken,
		Status:             resp.Status,
		ActivityID:         resp.ActivityID,
		ActivityName:       resp.ActivityName,
		Date:               resp.Date.Format(domain.DateFormat),
		StartTime:          resp.StartTime.String(),
		GuestCount:         resp.Quantity,
		PriceTl:            resp.PriceTl,
		PriceUsd:           resp.PriceUsd,
		ExtrasTotalTl:      resp.ExtrasTotalTl,
		DepositRequiredTl:  resp.DepositRequiredTl,
		RemainingPaymentTl: resp.RemainingPaymentTl,
		PaymentType:        resp.PaymentType,
		TokenExpiresAt:     resp.TokenExpiresAt.Format(time.RFC3339),
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
	}
}
