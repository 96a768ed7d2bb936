package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"carshare/config"
	"carshare/infras/otel"
	"carshare/internal/domains/booking/model"
	paymentDto "carshare/internal/domains/payment/model/dto"
	reservationDto "carshare/internal/domains/reservation/model/dto"
	"carshare/shared/constant"
	"carshare/shared/daterange"
	"carshare/shared/failure"
	"carshare/shared/timezone"
)

const eventBufferSize = 32

var ErrWorkflowClosed = errors.New("booking workflow closed")

// Workflow drives one booking attempt. All state changes go through a single actor
// goroutine, so the derived price always matches the latest range and insurance.
type Workflow interface {
	SelectDates(ctx context.Context, candidate daterange.DateRange) (model.State, error)
	SelectInsurance(ctx context.Context, tier model.InsuranceTier) (model.State, error)
	SelectPayment(ctx context.Context, method model.PaymentMethod) (model.State, error)
	// Submit reports accepted=false without side effects when dates or insurance are
	// missing or an attempt already started.
	Submit(ctx context.Context) (state model.State, accepted bool, err error)
	State(ctx context.Context) (model.State, error)
	Events() <-chan model.Event
	Done() <-chan struct{}
	Close()
}

type workflowImpl struct {
	ctx    context.Context
	cancel context.CancelFunc

	requesterID  string
	reservations ReservationStore
	payments     PaymentGateway
	surcharges   Surcharges
	cfg          *config.Config
	otel         otel.Otel

	commands  chan func(*model.State)
	events    chan model.Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewWorkflow starts the actor for requesterID booking resource. The attempt ends when
// ctx is cancelled or Close is called; in-flight calls are cancelled with it.
func NewWorkflow(ctx context.Context, requesterID string, resource model.Resource, reservations ReservationStore, payments PaymentGateway, surcharges Surcharges, cfg *config.Config, otel otel.Otel) Workflow {
	ctx, cancel := context.WithCancel(ctx)

	w := &workflowImpl{
		ctx:          ctx,
		cancel:       cancel,
		requesterID:  requesterID,
		reservations: reservations,
		payments:     payments,
		surcharges:   surcharges,
		cfg:          cfg,
		otel:         otel,
		commands:     make(chan func(*model.State)),
		events:       make(chan model.Event, eventBufferSize),
		done:         make(chan struct{}),
	}

	go w.run(model.State{Resource: resource, Phase: model.PhaseIdle})

	return w
}

func (w *workflowImpl) run(state model.State) {
	defer close(w.done)
	defer close(w.events)

	for {
		select {
		case <-w.ctx.Done():
			return
		case cmd := <-w.commands:
			cmd(&state)
		}
	}
}

// do runs fn on the actor and waits for it to finish.
func (w *workflowImpl) do(ctx context.Context, fn func(state *model.State)) error {
	finished := make(chan struct{})

	cmd := func(state *model.State) {
		defer close(finished)

		if w.ctx.Err() != nil {
			return
		}

		fn(state)
	}

	select {
	case w.commands <- cmd:
	case <-w.done:
		return ErrWorkflowClosed
	case <-ctx.Done():
		return fmt.Errorf("booking workflow: %w", ctx.Err())
	}

	<-finished

	if w.ctx.Err() != nil {
		return ErrWorkflowClosed
	}

	return nil
}

// apply is do for results of background calls. It reports false once the attempt is over.
func (w *workflowImpl) apply(fn func(state *model.State)) bool {
	return w.do(context.Background(), fn) == nil
}

// emit never blocks the actor. A full buffer drops the event.
func (w *workflowImpl) emit(event model.Event) {
	event.OccurredAt = timezone.Now()

	select {
	case w.events <- event:
	default:
		log.Warn().Str("event", string(event.Kind)).Msg("booking event dropped, listener too slow")
	}
}

// derive recomputes the price and, outside an attempt, the phase.
func (w *workflowImpl) derive(state *model.State) {
	state.DerivedPrice = 0

	if state.CandidateRange != nil {
		var tier model.InsuranceTier
		if state.Insurance != nil {
			tier = *state.Insurance
		}

		base := ComputeBasePrice(*state.CandidateRange, state.Resource.DailyPrice)
		state.DerivedPrice = w.surcharges.ComputeTotalPrice(base, tier)
	}

	if state.Phase.InFlight() || state.Phase.IsTerminal() {
		return
	}

	switch {
	case state.CandidateRange == nil:
		state.Phase = model.PhaseIdle
	case state.Insurance != nil && state.Payment != nil:
		state.Phase = model.PhaseOptionsSelected
	default:
		state.Phase = model.PhaseDateSelected
	}
}

func locked(state *model.State) bool {
	return state.Phase.InFlight() || state.Phase.IsTerminal()
}

var errAttemptStarted = failure.Precondition("booking attempt already submitted")

func (w *workflowImpl) SelectDates(ctx context.Context, candidate daterange.DateRange) (res model.State, err error) {
	if candidate.Start.After(candidate.End) {
		return res, failure.BadRequestFromString("start date is after end date") //nolint:wrapcheck
	}

	var rejected, ignored bool

	err = w.do(ctx, func(state *model.State) {
		switch {
		case locked(state):
			ignored = true
		case !IsRangeSelectable(candidate, state.Resource):
			rejected = true
			w.emit(model.Event{Kind: model.EventInvalidSelection})
		default:
			state.CandidateRange = &candidate
			w.derive(state)
		}

		res = *state
	})

	switch {
	case err != nil:
		return res, err
	case ignored:
		return res, errAttemptStarted
	case rejected:
		return res, failure.BadRequestFromString("selected dates are not available") //nolint:wrapcheck
	}

	return res, nil
}

func (w *workflowImpl) SelectInsurance(ctx context.Context, tier model.InsuranceTier) (res model.State, err error) {
	if !tier.IsValid() {
		return res, failure.BadRequestFromString("unknown insurance tier") //nolint:wrapcheck
	}

	var ignored bool

	err = w.do(ctx, func(state *model.State) {
		if locked(state) {
			ignored = true
		} else {
			state.Insurance = &tier
			w.derive(state)
		}

		res = *state
	})
	if err == nil && ignored {
		err = errAttemptStarted
	}

	return res, err
}

func (w *workflowImpl) SelectPayment(ctx context.Context, method model.PaymentMethod) (res model.State, err error) {
	if !method.IsValid() {
		return res, failure.BadRequestFromString("unknown payment method") //nolint:wrapcheck
	}

	var ignored bool

	err = w.do(ctx, func(state *model.State) {
		if locked(state) {
			ignored = true
		} else {
			state.Payment = &method
			w.derive(state)
		}

		res = *state
	})
	if err == nil && ignored {
		err = errAttemptStarted
	}

	return res, err
}

func (w *workflowImpl) Submit(ctx context.Context) (res model.State, accepted bool, err error) {
	err = w.do(ctx, func(state *model.State) {
		defer func() { res = *state }()

		if state.CandidateRange == nil || state.Insurance == nil || locked(state) {
			return
		}

		key := uuid.NewString()

		state.Phase = model.PhaseSubmitting
		state.ReservationID = key

		req := reservationDto.CreateReservationRequest{
			IdempotencyKey: key,
			ResourceID:     state.Resource.ID,
			RequesterID:    w.requesterID,
			OwnerID:        state.Resource.OwnerID,
			Range:          state.CandidateRange.WidenToEndOfDay(),
			Price:          state.DerivedPrice,
			InsuranceTier:  string(*state.Insurance),
		}

		accepted = true

		go w.reserve(req)
	})

	return res, accepted, err
}

func (w *workflowImpl) State(ctx context.Context) (res model.State, err error) {
	err = w.do(ctx, func(state *model.State) {
		res = *state
	})

	return res, err
}

func (w *workflowImpl) Events() <-chan model.Event {
	return w.events
}

func (w *workflowImpl) Done() <-chan struct{} {
	return w.done
}

// Close cancels any in-flight call and waits for the actor to stop.
func (w *workflowImpl) Close() {
	w.closeOnce.Do(w.cancel)
	<-w.done
}

func withTimeout(ctx context.Context, timeout time.Duration, call func(context.Context) error) error {
	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return call(ctx)
}

// reserve creates the reservation and, once stored, charges it under the same key.
func (w *workflowImpl) reserve(req reservationDto.CreateReservationRequest) {
	ctx, scope := w.otel.NewScope(w.ctx, constant.OtelWorkflowScopeName, constant.OtelWorkflowScopeName+".booking.reserve")
	defer scope.End()

	scope.SetAttribute("reservation.id", req.IdempotencyKey)

	err := withTimeout(ctx, w.cfg.Booking.ReservationTimeout, func(c context.Context) error {
		return w.reservations.Create(c, req)
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reservation_id", req.IdempotencyKey).Msg("failed to create reservation")

		w.apply(func(state *model.State) {
			state.Phase = model.PhaseFailed
			w.emit(model.Event{Kind: model.EventReservationFailed, ReservationID: req.IdempotencyKey, Err: failure.Transport(err)})
		})

		return
	}

	charge := paymentDto.ChargeRequest{
		IdempotencyKey: req.IdempotencyKey,
		ReservationID:  req.IdempotencyKey,
		Amount:         req.Price,
	}

	proceed := w.apply(func(state *model.State) {
		state.Phase = model.PhaseAwaitingPayment
		if state.Payment != nil {
			charge.Method = string(*state.Payment)
		}

		w.emit(model.Event{Kind: model.EventReservationCreated, ReservationID: req.IdempotencyKey})
	})
	if !proceed {
		return
	}

	log.Info().Str("reservation_id", req.IdempotencyKey).Msg("reservation created, charging")

	err = withTimeout(ctx, w.cfg.Booking.PaymentTimeout, func(c context.Context) error {
		return w.payments.Charge(c, charge)
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reservation_id", req.IdempotencyKey).Msg("payment failed")
	}

	w.apply(func(state *model.State) {
		if err != nil {
			state.Phase = model.PhaseFailed
			w.emit(model.Event{Kind: model.EventPaymentFailed, ReservationID: req.IdempotencyKey, Err: failure.Transport(err)})

			return
		}

		state.Phase = model.PhaseCompleted
		w.emit(model.Event{Kind: model.EventPaymentSucceeded, ReservationID: req.IdempotencyKey})
	})
}
