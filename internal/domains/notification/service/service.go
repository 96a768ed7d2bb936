package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"carshare/config"
	"carshare/infras/otel"
	"carshare/internal/domains/notification/model"
	"carshare/internal/domains/notification/model/dto"
	"carshare/internal/domains/notification/repository"
	"carshare/shared/constant"
	gDto "carshare/shared/dto"
	"carshare/shared/timezone"
	"carshare/shared/validator"
)

const defaultEnrichmentConcurrency = 4

type Notification interface {
	Save(ctx context.Context, req dto.SaveRequest) (dto.PushNotification, error)
	Send(ctx context.Context, notification dto.PushNotification) bool
	List(ctx context.Context, userID string, params gDto.QueryParams) (dto.FeedResponse, error)
}

type serviceImpl struct {
	repo      repository.Notification
	enricher  Enricher
	users     UserDirectory
	transport Transport
	cfg       *config.Config
	otel      otel.Otel
}

func New(repo repository.Notification, enricher Enricher, users UserDirectory, transport Transport, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		repo:      repo,
		enricher:  enricher,
		users:     users,
		transport: transport,
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *serviceImpl) Save(ctx context.Context, req dto.SaveRequest) (res dto.PushNotification, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	notification := req.ToModel(timezone.Now())

	if err = s.repo.Insert(ctx, notification); err != nil {
		log.Error().Err(err).Str("receiver_id", req.ReceiverID).Msg("failed to save notification")

		return res, fmt.Errorf("failed to save notification: %w", err)
	}

	res.FromModel(notification)

	return res, nil
}

// Send pushes a notification to the receiver's device. It reports false when the receiver
// has no token or the transport refuses it.
func (s *serviceImpl) Send(ctx context.Context, notification dto.PushNotification) bool {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.Send")
	defer scope.End()

	token, err := s.users.GetMessageToken(ctx, notification.ReceiverID)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("receiver_id", notification.ReceiverID).Msg("failed to resolve message token")

		return false
	}

	if token == constant.Empty {
		log.Warn().Str("receiver_id", notification.ReceiverID).Msg("receiver has no message token")

		return false
	}

	return s.transport.Send(ctx, notification, token)
}

func (s *serviceImpl) List(ctx context.Context, userID string, params gDto.QueryParams) (res dto.FeedResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.RestrictSort(constant.FieldCreatedAt)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    userID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count notifications")

		return res, fmt.Errorf("failed to count notifications: %w", err)
	}

	notifications, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	res.FromModels(notifications, total, params.Limit)

	concurrency := s.cfg.Enrichment.Concurrency
	if concurrency <= 0 {
		concurrency = defaultEnrichmentConcurrency
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	for i := range res.Events {
		g.Go(func() error {
			res.Events[i] = s.enricher.Enrich(ctx, res.Events[i])

			return nil
		})
	}

	_ = g.Wait()

	return res, nil
}
