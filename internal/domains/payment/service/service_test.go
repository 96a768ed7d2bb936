package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carshare/config"
	"carshare/infras/otel/mocks"
	"carshare/internal/domains/payment/model/dto"
	"carshare/internal/domains/payment/service"
	"carshare/shared/failure"
)

func TestPaymentService_Charge(t *testing.T) {
	tests := []struct {
		name     string
		delay    time.Duration
		req      dto.ChargeRequest
		ctx      func() (context.Context, context.CancelFunc)
		wantErr  bool
		wantCode int
	}{
		{
			name: "charge succeeds",
			req:  dto.ChargeRequest{IdempotencyKey: "k1", ReservationID: "k1", Amount: 160000, Method: "CARD"},
			ctx:  func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) },
		},
		{
			name: "missing method is accepted",
			req:  dto.ChargeRequest{IdempotencyKey: "k2", ReservationID: "k2", Amount: 100},
			ctx:  func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) },
		},
		{
			name:     "negative amount",
			req:      dto.ChargeRequest{IdempotencyKey: "k3", ReservationID: "k3", Amount: -1},
			ctx:      func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) },
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "cancelled while processing",
			delay: time.Hour,
			req:   dto.ChargeRequest{IdempotencyKey: "k4", ReservationID: "k4", Amount: 1},
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 10*time.Millisecond)
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Booking.PaymentDelay = tt.delay

			svc := service.New(cfg, mocks.NewOtel())

			ctx, cancel := tt.ctx()
			defer cancel()

			err := svc.Charge(ctx, tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPaymentService_ChargeReplay(t *testing.T) {
	cfg := &config.Config{}
	cfg.Booking.PaymentDelay = 50 * time.Millisecond

	svc := service.New(cfg, mocks.NewOtel())
	req := dto.ChargeRequest{IdempotencyKey: "k", ReservationID: "k", Amount: 10, Method: "CARRIER"}

	require.NoError(t, svc.Charge(context.Background(), req))

	start := time.Now()
	require.NoError(t, svc.Charge(context.Background(), req))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
