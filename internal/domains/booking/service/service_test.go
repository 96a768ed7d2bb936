package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"carshare/config"
	otelMocks "carshare/infras/otel/mocks"
	bookingMocks "carshare/internal/domains/booking/mocks"
	"carshare/internal/domains/booking/model"
	"carshare/internal/domains/booking/model/dto"
	"carshare/internal/domains/booking/service"
	notificationModel "carshare/internal/domains/notification/model"
	notificationDto "carshare/internal/domains/notification/model/dto"
	resourceDto "carshare/internal/domains/resource/model/dto"
	"carshare/shared/daterange"
	"carshare/shared/failure"
)

type bookingFixture struct {
	rentInfo     *bookingMocks.MockRentInfoProvider
	reservations *bookingMocks.MockReservationStore
	payments     *bookingMocks.MockPaymentGateway
	notifier     *bookingMocks.MockNotifier
	svc          service.Booking
}

func newBookingFixture(t *testing.T, ttl time.Duration) bookingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := bookingFixture{
		rentInfo:     bookingMocks.NewMockRentInfoProvider(ctrl),
		reservations: bookingMocks.NewMockReservationStore(ctrl),
		payments:     bookingMocks.NewMockPaymentGateway(ctrl),
		notifier:     bookingMocks.NewMockNotifier(ctrl),
	}

	cfg := &config.Config{}
	cfg.Booking.Insurance.MediumSurcharge = 10000
	cfg.Booking.SessionTTL = ttl

	f.svc = service.New(f.rentInfo, f.reservations, f.payments, f.notifier, cfg, otelMocks.NewOtel())
	t.Cleanup(f.svc.Close)

	return f
}

func rentInfo() resourceDto.RentInfo {
	return resourceDto.RentInfo{
		ID:              "car-1",
		OwnerID:         "owner-1",
		PlateNumber:     "B 1234 XYZ",
		DailyPrice:      50000,
		AvailableWindow: span(1, 31),
		CommittedRanges: []daterange.DateRange{{Start: day(10), End: day(12).Add(daterange.EndOfDay)}},
	}
}

func (f bookingFixture) startSession(t *testing.T) dto.SessionResponse {
	t.Helper()

	f.rentInfo.EXPECT().GetRentInfo(gomock.Any(), "car-1").Return(rentInfo(), nil)

	res, err := f.svc.Start(context.Background(), "user-1", dto.StartSessionRequest{ResourceID: "car-1"})
	require.NoError(t, err)
	require.NotEmpty(t, res.ID)

	return res
}

func TestBookingService_Start(t *testing.T) {
	t.Run("unknown resource", func(t *testing.T) {
		f := newBookingFixture(t, time.Minute)
		f.rentInfo.EXPECT().GetRentInfo(gomock.Any(), "missing").Return(resourceDto.RentInfo{}, failure.NotFound("resource not found"))

		_, err := f.svc.Start(context.Background(), "user-1", dto.StartSessionRequest{ResourceID: "missing"})
		assert.True(t, failure.IsNotFound(err))
	})

	t.Run("new session is idle", func(t *testing.T) {
		f := newBookingFixture(t, time.Minute)

		res := f.startSession(t)
		assert.Equal(t, model.PhaseIdle, res.Phase)
		assert.Equal(t, "car-1", res.ResourceID)
		assert.Equal(t, span(1, 31), res.AvailableWindow)
	})

	t.Run("rejected after close", func(t *testing.T) {
		f := newBookingFixture(t, time.Minute)
		existing := f.startSession(t)

		f.svc.Close()

		f.rentInfo.EXPECT().GetRentInfo(gomock.Any(), "car-1").Return(rentInfo(), nil)

		_, err := f.svc.Start(context.Background(), "user-1", dto.StartSessionRequest{ResourceID: "car-1"})
		require.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, failure.GetCode(err))

		_, err = f.svc.Get(context.Background(), "user-1", existing.ID)
		assert.True(t, failure.IsNotFound(err))
	})
}

func TestBookingService_CompleteAttempt(t *testing.T) {
	f := newBookingFixture(t, time.Minute)
	ctx := context.Background()

	notified := make(chan notificationDto.SaveRequest, 1)

	f.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.payments.EXPECT().Charge(gomock.Any(), gomock.Any()).Return(nil)
	f.notifier.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req notificationDto.SaveRequest) (notificationDto.PushNotification, error) {
			notified <- req

			return notificationDto.PushNotification{ID: "1-owner-1", ReceiverID: req.ReceiverID}, nil
		})
	f.notifier.EXPECT().Send(gomock.Any(), gomock.Any()).Return(true)

	session := f.startSession(t)

	res, err := f.svc.SelectDates(ctx, "user-1", session.ID, dto.SelectDatesRequest{Start: day(3), End: day(6)})
	require.NoError(t, err)
	assert.Equal(t, int64(150000), res.DerivedPrice)

	_, err = f.svc.SelectInsurance(ctx, "user-1", session.ID, dto.SelectInsuranceRequest{Tier: model.InsuranceMedium})
	require.NoError(t, err)

	res, err = f.svc.SelectPayment(ctx, "user-1", session.ID, dto.SelectPaymentRequest{Method: model.PaymentCard})
	require.NoError(t, err)
	assert.Equal(t, model.PhaseOptionsSelected, res.Phase)
	assert.Equal(t, int64(160000), res.DerivedPrice)

	res, err = f.svc.Submit(ctx, "user-1", session.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, res.ReservationID)

	select {
	case req := <-notified:
		assert.Equal(t, "owner-1", req.ReceiverID)
		assert.Equal(t, "user-1", req.SourceUserID)
		assert.Equal(t, res.ReservationID, req.ReservationID)
		assert.Equal(t, notificationModel.KindReservationRequested, req.Kind)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "owner was not notified")
	}

	assert.Eventually(t, func() bool {
		got, err := f.svc.Get(ctx, "user-1", session.ID)

		return err == nil && got.Phase == model.PhaseCompleted && len(got.Events) == 2
	}, 2*time.Second, 10*time.Millisecond)

	got, err := f.svc.Get(ctx, "user-1", session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EventReservationCreated, got.Events[0].Kind)
	assert.Equal(t, model.EventPaymentSucceeded, got.Events[1].Kind)
}

func TestBookingService_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func(t *testing.T, f bookingFixture, sessionID string) error
		wantCode int
	}{
		{
			name: "other user",
			call: func(_ *testing.T, f bookingFixture, sessionID string) error {
				_, err := f.svc.Get(ctx, "user-2", sessionID)

				return err
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "unknown session",
			call: func(_ *testing.T, f bookingFixture, _ string) error {
				_, err := f.svc.Get(ctx, "user-1", "nope")

				return err
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "submit before selecting",
			call: func(_ *testing.T, f bookingFixture, sessionID string) error {
				_, err := f.svc.Submit(ctx, "user-1", sessionID)

				return err
			},
			wantCode: http.StatusPreconditionFailed,
		},
		{
			name: "unavailable dates",
			call: func(_ *testing.T, f bookingFixture, sessionID string) error {
				_, err := f.svc.SelectDates(ctx, "user-1", sessionID, dto.SelectDatesRequest{Start: day(8), End: day(14)})

				return err
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "end before start",
			call: func(_ *testing.T, f bookingFixture, sessionID string) error {
				_, err := f.svc.SelectDates(ctx, "user-1", sessionID, dto.SelectDatesRequest{Start: day(8), End: day(4)})

				return err
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown tier",
			call: func(_ *testing.T, f bookingFixture, sessionID string) error {
				_, err := f.svc.SelectInsurance(ctx, "user-1", sessionID, dto.SelectInsuranceRequest{Tier: "GOLD"})

				return err
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "cancelled session",
			call: func(t *testing.T, f bookingFixture, sessionID string) error {
				require.NoError(t, f.svc.Cancel(ctx, "user-1", sessionID))

				_, err := f.svc.Get(ctx, "user-1", sessionID)

				return err
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t, time.Minute)
			session := f.startSession(t)

			err := tt.call(t, f, session.ID)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_IdleSessionExpires(t *testing.T) {
	f := newBookingFixture(t, 40*time.Millisecond)
	session := f.startSession(t)

	assert.Eventually(t, func() bool {
		_, err := f.svc.Get(context.Background(), "user-1", session.ID)

		return failure.IsNotFound(err)
	}, 2*time.Second, 20*time.Millisecond)
}
