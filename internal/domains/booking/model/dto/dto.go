package dto

import (
	"time"

	"carshare/internal/domains/booking/model"
	"carshare/shared/daterange"
)

type StartSessionRequest struct {
	ResourceID string `json:"resource_id" validate:"required"`
}

type SelectDatesRequest struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end"   validate:"required,gtefield=Start"`
}

func (r *SelectDatesRequest) ToDateRange() (daterange.DateRange, error) {
	return daterange.New(r.Start, r.End) //nolint:wrapcheck
}

type SelectInsuranceRequest struct {
	Tier model.InsuranceTier `json:"tier" validate:"required,enum"`
}

type SelectPaymentRequest struct {
	Method model.PaymentMethod `json:"method" validate:"required,enum"`
}

type EventResponse struct {
	Kind          model.EventKind `json:"kind"`
	ReservationID string          `json:"reservation_id,omitempty"`
	Message       string          `json:"message"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

var eventMessages = map[model.EventKind]string{
	model.EventInvalidSelection:   "selected dates are not available",
	model.EventReservationCreated: "reservation created",
	model.EventReservationFailed:  "reservation could not be created",
	model.EventPaymentSucceeded:   "payment succeeded",
	model.EventPaymentFailed:      "payment failed",
}

// FromModel keeps collaborator errors out of the response.
func (r *EventResponse) FromModel(event model.Event) {
	r.Kind = event.Kind
	r.ReservationID = event.ReservationID
	r.Message = eventMessages[event.Kind]
	r.OccurredAt = event.OccurredAt
}

type SessionResponse struct {
	ID              string               `json:"id"`
	ResourceID      string               `json:"resource_id"`
	Phase           model.Phase          `json:"phase"`
	CandidateRange  *daterange.DateRange `json:"candidate_range,omitempty"`
	Insurance       model.InsuranceTier  `json:"insurance,omitempty"`
	Payment         model.PaymentMethod  `json:"payment,omitempty"`
	DerivedPrice    int64                `json:"derived_price"`
	ReservationID   string               `json:"reservation_id,omitempty"`
	AvailableWindow daterange.DateRange  `json:"available_window"`
	Events          []EventResponse      `json:"events"`
	ExpiresAt       time.Time            `json:"expires_at"`
}

func (r *SessionResponse) FromState(id string, state model.State, events []model.Event, expiresAt time.Time) {
	r.ID = id
	r.ResourceID = state.Resource.ID
	r.Phase = state.Phase
	r.CandidateRange = state.CandidateRange
	r.DerivedPrice = state.DerivedPrice
	r.ReservationID = state.ReservationID
	r.AvailableWindow = state.Resource.AvailableWindow
	r.ExpiresAt = expiresAt

	if state.Insurance != nil {
		r.Insurance = *state.Insurance
	}

	if state.Payment != nil {
		r.Payment = *state.Payment
	}

	r.Events = make([]EventResponse, len(events))
	for i, event := range events {
		r.Events[i].FromModel(event)
	}
}
