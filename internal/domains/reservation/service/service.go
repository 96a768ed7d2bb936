package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"carshare/config"
	"carshare/infras/otel"
	"carshare/internal/domains/reservation/model"
	"carshare/internal/domains/reservation/model/dto"
	"carshare/internal/domains/reservation/repository"
	resourceModel "carshare/internal/domains/resource/model"
	"carshare/shared"
	"carshare/shared/cache"
	"carshare/shared/constant"
	"carshare/shared/daterange"
	gDto "carshare/shared/dto"
	"carshare/shared/failure"
	"carshare/shared/timezone"
	"carshare/shared/validator"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) error
	Get(ctx context.Context, reservationID, resourceID string) (dto.ReservationResponse, error)
	CommittedRanges(ctx context.Context, resourceID string) ([]daterange.DateRange, error)
}

type serviceImpl struct {
	repo  repository.Reservation
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Reservation, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Create stores the reservation under its idempotency key. Replaying the same request
// succeeds without a second row.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"reservation.id":          req.IdempotencyKey,
		"reservation.resource_id": req.ResourceID,
	})

	if err = validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	if req.Range.Start.After(req.Range.End) {
		return failure.BadRequestFromString("reservation start is after its end") //nolint:wrapcheck
	}

	err = s.repo.Insert(ctx, req.ToModel(timezone.Now()))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch string(pqErr.Code) {
			case constant.PqErrorCodeUniqueViolation:
				return s.resolveReplay(ctx, req)
			case constant.PqErrorCodeExclusionViolation:
				return failure.Conflict("resource is already reserved for the selected dates") //nolint:wrapcheck
			case constant.PqErrorCodeFkViolation:
				return failure.BadRequestFromString("resource or user does not exist") //nolint:wrapcheck
			}
		}

		log.Error().Err(err).Str("reservation_id", req.IdempotencyKey).Msg("failed to create reservation")

		return fmt.Errorf("failed to create reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(resourceModel.CacheRentInfo, req.ResourceID)); err != nil {
			log.Error().Err(err).Msg("failed to invalidate rent info cache")
		}
	}()

	return nil
}

func (s *serviceImpl) resolveReplay(ctx context.Context, req dto.CreateReservationRequest) error {
	stored, err := s.repo.Get(ctx, shared.FilterByID(req.IdempotencyKey, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("reservation_id", req.IdempotencyKey).Msg("failed to load replayed reservation")

		return fmt.Errorf("failed to load replayed reservation: %w", err)
	}

	if !req.Matches(stored) {
		return failure.Conflict("idempotency key already used by a different reservation") //nolint:wrapcheck
	}

	log.Info().Str("reservation_id", req.IdempotencyKey).Msg("reservation create replayed")

	return nil
}

// Get loads a reservation. An empty resourceID skips the resource match.
func (s *serviceImpl) Get(ctx context.Context, reservationID, resourceID string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(reservationID, model.FieldID, model.TableName)
	if resourceID != constant.Empty {
		filter.Operator = gDto.FilterGroupOperatorAnd
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldResourceID,
			Value:    resourceID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	reservation, err := s.repo.Get(ctx, filter)
	if err != nil {
		if failure.IsNotFound(err) {
			return res, failure.NotFound("reservation not found") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	res.FromModel(reservation)

	return res, nil
}

// CommittedRanges lists every stored range of a resource ordered by start.
func (s *serviceImpl) CommittedRanges(ctx context.Context, resourceID string) (res []daterange.DateRange, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.CommittedRanges")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{SortBy: model.FieldStartAt, SortDir: gDto.SortDirAsc}
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldResourceID,
				Value:    resourceID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	reservations, err := s.repo.GetAll(ctx, params, filter, model.FieldStartAt, model.FieldEndAt)
	if err != nil {
		log.Error().Err(err).Str("resource_id", resourceID).Msg("failed to list committed ranges")

		return nil, fmt.Errorf("failed to list committed ranges: %w", err)
	}

	res = make([]daterange.DateRange, len(reservations))
	for i, reservation := range reservations {
		res[i] = daterange.DateRange{Start: reservation.StartAt, End: reservation.EndAt}
	}

	return res, nil
}
