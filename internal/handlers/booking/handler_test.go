package booking_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"carshare/infras/otel/mocks"
	bookingMocks "carshare/internal/domains/booking/mocks"
	"carshare/internal/domains/booking/model"
	"carshare/internal/domains/booking/model/dto"
	"carshare/internal/handlers/booking"
	"carshare/shared/constant"
	"carshare/shared/failure"
)

func withUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), constant.ContextKeyUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newRouter(svc *bookingMocks.MockBooking, userID string) http.Handler {
	handler := booking.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	if userID != "" {
		router.Use(withUser(userID))
	}

	handler.Router(router)

	return router
}

func TestHandler(t *testing.T) {
	session := dto.SessionResponse{ID: "s-1", ResourceID: "car-1", Phase: model.PhaseIdle}

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		userID     string
		setup      func(svc *bookingMocks.MockBooking)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "start session",
			method: http.MethodPost,
			target: "/booking-sessions",
			body:   `{"resource_id":"car-1"}`,
			userID: "user-1",
			setup: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().Start(gomock.Any(), "user-1", dto.StartSessionRequest{ResourceID: "car-1"}).Return(session, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"id":"s-1"`,
		},
		{
			name:       "start session without resource",
			method:     http.MethodPost,
			target:     "/booking-sessions",
			body:       `{}`,
			userID:     "user-1",
			setup:      func(*bookingMocks.MockBooking) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing identity",
			method:     http.MethodGet,
			target:     "/booking-sessions/s-1",
			setup:      func(*bookingMocks.MockBooking) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "session of another user",
			method: http.MethodGet,
			target: "/booking-sessions/s-1",
			userID: "user-2",
			setup: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().Get(gomock.Any(), "user-2", "s-1").Return(dto.SessionResponse{}, failure.SessionRestrictedError)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "select insurance",
			method: http.MethodPut,
			target: "/booking-sessions/s-1/insurance",
			body:   `{"tier":"MEDIUM"}`,
			userID: "user-1",
			setup: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().SelectInsurance(gomock.Any(), "user-1", "s-1", dto.SelectInsuranceRequest{Tier: model.InsuranceMedium}).Return(session, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown insurance tier",
			method:     http.MethodPut,
			target:     "/booking-sessions/s-1/insurance",
			body:       `{"tier":"PLATINUM"}`,
			userID:     "user-1",
			setup:      func(*bookingMocks.MockBooking) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "submit before options",
			method: http.MethodPost,
			target: "/booking-sessions/s-1/submit",
			userID: "user-1",
			setup: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().Submit(gomock.Any(), "user-1", "s-1").Return(session, failure.Precondition("dates and insurance are required"))
			},
			wantStatus: http.StatusPreconditionFailed,
		},
		{
			name:   "submit",
			method: http.MethodPost,
			target: "/booking-sessions/s-1/submit",
			userID: "user-1",
			setup: func(svc *bookingMocks.MockBooking) {
				submitted := session
				submitted.Phase = model.PhaseSubmitting

				svc.EXPECT().Submit(gomock.Any(), "user-1", "s-1").Return(submitted, nil)
			},
			wantStatus: http.StatusAccepted,
			wantBody:   string(model.PhaseSubmitting),
		},
		{
			name:   "cancel",
			method: http.MethodDelete,
			target: "/booking-sessions/s-1",
			userID: "user-1",
			setup: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().Cancel(gomock.Any(), "user-1", "s-1").Return(nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := bookingMocks.NewMockBooking(ctrl)
			tt.setup(svc)

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

			rec := httptest.NewRecorder()
			newRouter(svc, tt.userID).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
