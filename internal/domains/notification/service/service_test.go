package service_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"carshare/config"
	"carshare/infras/kafka"
	kafkaMocks "carshare/infras/kafka/mocks"
	otelMocks "carshare/infras/otel/mocks"
	notificationMocks "carshare/internal/domains/notification/mocks"
	"carshare/internal/domains/notification/model"
	"carshare/internal/domains/notification/model/dto"
	"carshare/internal/domains/notification/service"
	reservationDto "carshare/internal/domains/reservation/model/dto"
	resourceDto "carshare/internal/domains/resource/model/dto"
	gDto "carshare/shared/dto"
	"carshare/shared/failure"
	gModel "carshare/shared/model"
)

type serviceFixture struct {
	repo         *notificationMocks.MockNotification
	reservations *notificationMocks.MockReservationReader
	users        *notificationMocks.MockUserDirectory
	resources    *notificationMocks.MockResourceDirectory
	transport    *notificationMocks.MockTransport
	svc          service.Notification
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := serviceFixture{
		repo:         notificationMocks.NewMockNotification(ctrl),
		reservations: notificationMocks.NewMockReservationReader(ctrl),
		users:        notificationMocks.NewMockUserDirectory(ctrl),
		resources:    notificationMocks.NewMockResourceDirectory(ctrl),
		transport:    notificationMocks.NewMockTransport(ctrl),
	}

	cfg := &config.Config{}
	cfg.Enrichment.Concurrency = 2

	ot := otelMocks.NewOtel()
	enricher := service.NewEnricher(f.reservations, f.users, f.resources, ot)
	f.svc = service.New(f.repo, enricher, f.users, f.transport, cfg, ot)

	return f
}

func TestNotificationService_Save(t *testing.T) {
	req := dto.SaveRequest{
		ReceiverID:    "owner-1",
		SourceUserID:  "user-1",
		ResourceID:    "car-1",
		ReservationID: "res-1",
		Kind:          model.KindReservationRequested,
	}

	t.Run("id is creation millis and receiver", func(t *testing.T) {
		f := newServiceFixture(t)

		var stored model.Notification

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m model.Notification) error {
				stored = m

				return nil
			})

		res, err := f.svc.Save(context.Background(), req)
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^\d{13}-owner-1$`), res.ID)
		assert.Equal(t, stored.ID, res.ID)
		assert.Equal(t, "owner-1", stored.UserID)
		assert.Equal(t, "owner-1", res.ReceiverID)
	})

	t.Run("missing receiver", func(t *testing.T) {
		f := newServiceFixture(t)

		bad := req
		bad.ReceiverID = ""

		_, err := f.svc.Save(context.Background(), bad)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("insert fails", func(t *testing.T) {
		f := newServiceFixture(t)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.svc.Save(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestNotificationService_Send(t *testing.T) {
	push := dto.PushNotification{ID: "1-owner-1", ReceiverID: "owner-1", Kind: model.KindReservationRequested}

	tests := []struct {
		name      string
		setupMock func(f serviceFixture)
		want      bool
	}{
		{
			name: "delivered",
			setupMock: func(f serviceFixture) {
				f.users.EXPECT().GetMessageToken(gomock.Any(), "owner-1").Return("tok", nil)
				f.transport.EXPECT().Send(gomock.Any(), push, "tok").Return(true)
			},
			want: true,
		},
		{
			name: "receiver without token",
			setupMock: func(f serviceFixture) {
				f.users.EXPECT().GetMessageToken(gomock.Any(), "owner-1").Return("", nil)
			},
		},
		{
			name: "token lookup fails",
			setupMock: func(f serviceFixture) {
				f.users.EXPECT().GetMessageToken(gomock.Any(), "owner-1").Return("", errors.New("db down"))
			},
		},
		{
			name: "transport refuses",
			setupMock: func(f serviceFixture) {
				f.users.EXPECT().GetMessageToken(gomock.Any(), "owner-1").Return("tok", nil)
				f.transport.EXPECT().Send(gomock.Any(), push, "tok").Return(false)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			tt.setupMock(f)

			assert.Equal(t, tt.want, f.svc.Send(context.Background(), push))
		})
	}
}

func TestNotificationService_List(t *testing.T) {
	f := newServiceFixture(t)

	created := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	rows := []model.Notification{
		{ID: "a", UserID: "owner-1", SourceUserID: "user-1", ResourceID: "car-1", ReservationID: "res-1", Metadata: gModel.Metadata{CreatedAt: created}},
		{ID: "b", UserID: "owner-1", SourceUserID: "user-2", ResourceID: "car-1", ReservationID: "res-2", Metadata: gModel.Metadata{CreatedAt: created}},
		{ID: "c", UserID: "owner-1", SourceUserID: "user-3", ResourceID: "car-1", ReservationID: "res-3", Metadata: gModel.Metadata{CreatedAt: created}},
	}

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Notification, error) {
			assert.Equal(t, "created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return rows, nil
		})
	f.reservations.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(reservationDto.ReservationResponse{ResourceID: "car-1"}, nil).Times(3)
	f.users.EXPECT().GetNickname(gomock.Any(), "user-1").Return("rina", nil)
	f.users.EXPECT().GetNickname(gomock.Any(), "user-2").Return("", failure.NotFound("user"))
	f.users.EXPECT().GetNickname(gomock.Any(), "user-3").Return("budi", nil)
	f.resources.EXPECT().GetDetails(gomock.Any(), "car-1").
		Return(resourceDto.Details{PlateNumber: "B 1234 XYZ"}, nil).Times(3)

	res, err := f.svc.List(context.Background(), "owner-1", gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"})
	require.NoError(t, err)

	require.Len(t, res.Events, 3)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Equal(t, "a", res.Events[0].ID)
	assert.Equal(t, "rina", res.Events[0].Enrichment.SourceNickname)
	assert.Empty(t, res.Events[1].Enrichment.SourceNickname)
	assert.Equal(t, "budi", res.Events[2].Enrichment.SourceNickname)

	for _, event := range res.Events {
		assert.Equal(t, "B 1234 XYZ", event.Enrichment.ResourcePlate)
		assert.Equal(t, "24/03/10", event.DisplayDate)
	}
}

func TestKafkaTransport_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.Push = "notification.push"

	transport := service.NewKafkaTransport(client, cfg, otelMocks.NewOtel())
	push := dto.PushNotification{ID: "1-owner-1", ReceiverID: "owner-1"}

	client.EXPECT().SendMessages(gomock.Any(), "notification.push", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			require.Len(t, messages, 1)
			assert.Equal(t, "owner-1", messages[0].Key)

			return nil
		})
	assert.True(t, transport.Send(context.Background(), push, "tok"))

	client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	assert.False(t, transport.Send(context.Background(), push, "tok"))
}
