package model

import (
	"time"

	"carshare/shared/daterange"
)

type InsuranceTier string

const (
	InsuranceLow    InsuranceTier = "LOW"
	InsuranceMedium InsuranceTier = "MEDIUM"
	InsuranceHigh   InsuranceTier = "HIGH"
)

func (t InsuranceTier) IsValid() bool {
	switch t {
	case InsuranceLow, InsuranceMedium, InsuranceHigh:
		return true
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentCard    PaymentMethod = "CARD"
	PaymentCarrier PaymentMethod = "CARRIER"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentCard || m == PaymentCarrier
}

type Phase string

const (
	PhaseIdle            Phase = "IDLE"
	PhaseDateSelected    Phase = "DATE_SELECTED"
	PhaseOptionsSelected Phase = "OPTIONS_SELECTED"
	PhaseSubmitting      Phase = "SUBMITTING"
	PhaseAwaitingPayment Phase = "AWAITING_PAYMENT"
	PhaseCompleted       Phase = "COMPLETED"
	PhaseFailed          Phase = "FAILED"
)

// IsTerminal reports whether no further transition can happen for the attempt.
func (p Phase) IsTerminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}

// InFlight reports whether an external call owns the attempt.
func (p Phase) InFlight() bool {
	return p == PhaseSubmitting || p == PhaseAwaitingPayment
}

// Resource is the rent information a booking attempt is validated and priced against.
// CommittedRanges are ordered by start and never overlap.
type Resource struct {
	ID              string
	OwnerID         string
	DailyPrice      int64
	AvailableWindow daterange.DateRange
	CommittedRanges []daterange.DateRange
}

// State is a snapshot of one booking attempt. Optional selections are nil until chosen.
type State struct {
	Resource       Resource
	CandidateRange *daterange.DateRange
	Insurance      *InsuranceTier
	Payment        *PaymentMethod
	DerivedPrice   int64
	Phase          Phase
	ReservationID  string
}

type EventKind string

const (
	EventInvalidSelection   EventKind = "INVALID_SELECTION"
	EventReservationCreated EventKind = "RESERVATION_CREATED"
	EventReservationFailed  EventKind = "RESERVATION_FAILED"
	EventPaymentSucceeded   EventKind = "PAYMENT_SUCCEEDED"
	EventPaymentFailed      EventKind = "PAYMENT_FAILED"
)

type Event struct {
	Kind          EventKind
	ReservationID string
	// Err holds the collaborator error behind a failure event.
	Err        error
	OccurredAt time.Time
}
