package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

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
	"carshare/internal/domains/booking/model/dto"
	notificationModel "carshare/internal/domains/notification/model"
	notificationDto "carshare/internal/domains/notification/model/dto"
	resourceDto "carshare/internal/domains/resource/model/dto"
	"carshare/shared/constant"
	"carshare/shared/failure"
	"carshare/shared/timezone"
	"carshare/shared/validator"
)

const (
	defaultSessionTTL  = 30 * time.Minute
	maxSweepInterval   = 30 * time.Second
	finishedRetention  = time.Minute
	maxRecordedEvents  = 20
	notifyOwnerTimeout = 10 * time.Second
)

var (
	errSessionNotFound = failure.NotFound("booking session not found")
	errServiceClosed   = failure.Unavailable("booking sessions are shutting down")
)

// Booking keeps one workflow per booking session. Sessions belong to the user who
// started them and are disposed when cancelled, idle past the TTL, or shortly after
// the attempt finishes.
type Booking interface {
	Start(ctx context.Context, userID string, req dto.StartSessionRequest) (dto.SessionResponse, error)
	Get(ctx context.Context, userID, sessionID string) (dto.SessionResponse, error)
	SelectDates(ctx context.Context, userID, sessionID string, req dto.SelectDatesRequest) (dto.SessionResponse, error)
	SelectInsurance(ctx context.Context, userID, sessionID string, req dto.SelectInsuranceRequest) (dto.SessionResponse, error)
	SelectPayment(ctx context.Context, userID, sessionID string, req dto.SelectPaymentRequest) (dto.SessionResponse, error)
	Submit(ctx context.Context, userID, sessionID string) (dto.SessionResponse, error)
	Cancel(ctx context.Context, userID, sessionID string) error
	Close()
}

type session struct {
	id       string
	userID   string
	resource model.Resource
	workflow Workflow

	mu         sync.Mutex
	events     []model.Event
	lastActive time.Time
	finishedAt time.Time
}

func (s *session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = now
}

func (s *session) record(event model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	if len(s.events) > maxRecordedEvents {
		s.events = s.events[len(s.events)-maxRecordedEvents:]
	}

	switch event.Kind {
	case model.EventReservationFailed, model.EventPaymentSucceeded, model.EventPaymentFailed:
		s.finishedAt = event.OccurredAt
	}
}

func (s *session) snapshot() (events []model.Event, lastActive time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.Event(nil), s.events...), s.lastActive
}

func (s *session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finishedAt.IsZero() && now.Sub(s.finishedAt) > finishedRetention {
		return true
	}

	return now.Sub(s.lastActive) > ttl
}

type serviceImpl struct {
	ctx    context.Context
	cancel context.CancelFunc

	rentInfo     RentInfoProvider
	reservations ReservationStore
	payments     PaymentGateway
	notifier     Notifier
	surcharges   Surcharges
	cfg          *config.Config
	otel         otel.Otel
	ttl          time.Duration

	mu       sync.RWMutex
	sessions map[string]*session
	wg       sync.WaitGroup
}

func New(rentInfo RentInfoProvider, reservations ReservationStore, payments PaymentGateway, notifier Notifier, cfg *config.Config, otel otel.Otel) Booking {
	ctx, cancel := context.WithCancel(context.Background())

	ttl := cfg.Booking.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	s := &serviceImpl{
		ctx:          ctx,
		cancel:       cancel,
		rentInfo:     rentInfo,
		reservations: reservations,
		payments:     payments,
		notifier:     notifier,
		surcharges:   NewSurcharges(cfg),
		cfg:          cfg,
		otel:         otel,
		ttl:          ttl,
		sessions:     make(map[string]*session),
	}

	s.wg.Add(1)

	go s.janitor(min(max(ttl/2, time.Millisecond), maxSweepInterval))

	return s
}

func toResource(info resourceDto.RentInfo) model.Resource {
	return model.Resource{
		ID:              info.ID,
		OwnerID:         info.OwnerID,
		DailyPrice:      info.DailyPrice,
		AvailableWindow: info.AvailableWindow,
		CommittedRanges: info.CommittedRanges,
	}
}

func (s *serviceImpl) Start(ctx context.Context, userID string, req dto.StartSessionRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Start")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	info, err := s.rentInfo.GetRentInfo(ctx, req.ResourceID)
	if err != nil {
		if failure.IsNotFound(err) {
			return res, err //nolint:wrapcheck
		}

		log.Error().Err(err).Str("resource_id", req.ResourceID).Msg("failed to load rent info")

		return res, fmt.Errorf("failed to load rent info: %w", err)
	}

	resource := toResource(info)
	now := timezone.Now()

	sess := &session{
		id:         uuid.NewString(),
		userID:     userID,
		resource:   resource,
		workflow:   NewWorkflow(s.ctx, userID, resource, s.reservations, s.payments, s.surcharges, s.cfg, s.otel),
		lastActive: now,
	}

	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		sess.workflow.Close()

		return res, errServiceClosed
	}

	s.sessions[sess.id] = sess
	s.wg.Add(1)
	s.mu.Unlock()

	go s.listen(sess)

	log.Info().Str("session_id", sess.id).Str("resource_id", resource.ID).Msg("booking session started")

	state, err := sess.workflow.State(ctx)
	if err != nil {
		return res, s.mapWorkflowError(err)
	}

	res.FromState(sess.id, state, nil, now.Add(s.ttl))

	return res, nil
}

func (s *serviceImpl) lookup(userID, sessionID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, errSessionNotFound
	}

	if sess.userID != userID {
		return nil, failure.SessionRestrictedError
	}

	return sess, nil
}

func (s *serviceImpl) respond(sess *session, state model.State) (res dto.SessionResponse) {
	events, lastActive := sess.snapshot()
	res.FromState(sess.id, state, events, lastActive.Add(s.ttl))

	return res
}

func (s *serviceImpl) mapWorkflowError(err error) error {
	if errors.Is(err, ErrWorkflowClosed) {
		return errSessionNotFound
	}

	return err
}

// update runs one workflow operation on behalf of the session owner. Mutations keep the
// session alive; reads do not.
func (s *serviceImpl) update(ctx context.Context, userID, sessionID, operation string, mutates bool, op func(ctx context.Context, wf Workflow) (model.State, error)) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking."+operation)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return res, err
	}

	if mutates {
		sess.touch(timezone.Now())
	}

	state, err := op(ctx, sess.workflow)
	if err != nil {
		if failure.GetCode(err) < 500 {
			return s.respond(sess, state), err
		}

		return res, s.mapWorkflowError(err)
	}

	return s.respond(sess, state), nil
}

func (s *serviceImpl) Get(ctx context.Context, userID, sessionID string) (dto.SessionResponse, error) {
	return s.update(ctx, userID, sessionID, "Get", false, func(ctx context.Context, wf Workflow) (model.State, error) {
		return wf.State(ctx)
	})
}

func (s *serviceImpl) SelectDates(ctx context.Context, userID, sessionID string, req dto.SelectDatesRequest) (dto.SessionResponse, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return dto.SessionResponse{}, err //nolint:wrapcheck
	}

	candidate, err := req.ToDateRange()
	if err != nil {
		return dto.SessionResponse{}, err
	}

	return s.update(ctx, userID, sessionID, "SelectDates", true, func(ctx context.Context, wf Workflow) (model.State, error) {
		return wf.SelectDates(ctx, candidate)
	})
}

func (s *serviceImpl) SelectInsurance(ctx context.Context, userID, sessionID string, req dto.SelectInsuranceRequest) (dto.SessionResponse, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return dto.SessionResponse{}, err //nolint:wrapcheck
	}

	return s.update(ctx, userID, sessionID, "SelectInsurance", true, func(ctx context.Context, wf Workflow) (model.State, error) {
		return wf.SelectInsurance(ctx, req.Tier)
	})
}

func (s *serviceImpl) SelectPayment(ctx context.Context, userID, sessionID string, req dto.SelectPaymentRequest) (dto.SessionResponse, error) {
	if err := validator.ValidateStruct(&req); err != nil {
		return dto.SessionResponse{}, err //nolint:wrapcheck
	}

	return s.update(ctx, userID, sessionID, "SelectPayment", true, func(ctx context.Context, wf Workflow) (model.State, error) {
		return wf.SelectPayment(ctx, req.Method)
	})
}

func (s *serviceImpl) Submit(ctx context.Context, userID, sessionID string) (dto.SessionResponse, error) {
	return s.update(ctx, userID, sessionID, "Submit", true, func(ctx context.Context, wf Workflow) (model.State, error) {
		state, accepted, err := wf.Submit(ctx)
		if err != nil {
			return state, err
		}

		if !accepted {
			return state, failure.Precondition("select dates and insurance before submitting, once per session") //nolint:wrapcheck
		}

		return state, nil
	})
}

func (s *serviceImpl) Cancel(ctx context.Context, userID, sessionID string) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return err
	}

	s.dispose(sess)

	log.Info().Str("session_id", sessionID).Msg("booking session cancelled")

	return nil
}

// Close disposes every session and stops background work.
func (s *serviceImpl) Close() {
	s.cancel()

	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))

	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}

	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.workflow.Close()
	}

	s.wg.Wait()
}

func (s *serviceImpl) dispose(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()

	sess.workflow.Close()
}

// listen drains the workflow's events until the workflow stops.
func (s *serviceImpl) listen(sess *session) {
	defer s.wg.Done()

	for event := range sess.workflow.Events() {
		sess.record(event)

		log.Info().
			Str("session_id", sess.id).
			Str("event", string(event.Kind)).
			Str("reservation_id", event.ReservationID).
			Msg("booking event")

		if event.Kind == model.EventReservationCreated {
			s.notifyOwner(sess, event.ReservationID)
		}
	}
}

// notifyOwner tells the resource owner about a new reservation. Delivery is best effort.
func (s *serviceImpl) notifyOwner(sess *session, reservationID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), notifyOwnerTimeout)
	defer cancel()

	push, err := s.notifier.Save(ctx, notificationDto.SaveRequest{
		ReceiverID:    sess.resource.OwnerID,
		SourceUserID:  sess.userID,
		ResourceID:    sess.resource.ID,
		ReservationID: reservationID,
		Kind:          notificationModel.KindReservationRequested,
	})
	if err != nil {
		log.Warn().Err(err).Str("reservation_id", reservationID).Msg("failed to save owner notification")

		return
	}

	if !s.notifier.Send(ctx, push) {
		log.Warn().Str("notification_id", push.ID).Msg("owner notification not delivered")
	}
}

func (s *serviceImpl) janitor(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.sweep(timezone.Now())
		}
	}
}

func (s *serviceImpl) sweep(now time.Time) {
	var expired []*session

	s.mu.Lock()

	for id, sess := range s.sessions {
		if sess.expired(now, s.ttl) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}

	s.mu.Unlock()

	for _, sess := range expired {
		sess.workflow.Close()

		log.Info().Str("session_id", sess.id).Msg("booking session expired")
	}
}
