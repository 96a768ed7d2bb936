package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"carshare/config"
	"carshare/infras/otel"
	"carshare/internal/domains/payment/model/dto"
	"carshare/shared/constant"
	"carshare/shared/validator"
)

type Payment interface {
	Charge(ctx context.Context, req dto.ChargeRequest) error
}

// serviceImpl simulates a card processor: every valid charge succeeds after a delay.
// Charges are remembered by idempotency key so a retried attempt is not billed twice.
type serviceImpl struct {
	cfg     *config.Config
	otel    otel.Otel
	charged sync.Map
}

func New(cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) Charge(ctx context.Context, req dto.ChargeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".payment.Charge")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"payment.reservation_id": req.ReservationID,
		"payment.amount":         req.Amount,
		"payment.method":         req.Method,
	})

	if err = validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	if _, ok := s.charged.Load(req.IdempotencyKey); ok {
		log.Info().Str("reservation_id", req.ReservationID).Msg("charge replayed")

		return nil
	}

	if delay := s.cfg.Booking.PaymentDelay; delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return fmt.Errorf("charge interrupted: %w", ctx.Err())
		case <-timer.C:
		}
	}

	s.charged.Store(req.IdempotencyKey, req.ReservationID)

	log.Info().
		Str("reservation_id", req.ReservationID).
		Int64("amount", req.Amount).
		Str("method", req.Method).
		Msg("charge succeeded")

	return nil
}
