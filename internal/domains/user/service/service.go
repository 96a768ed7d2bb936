package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"carshare/config"
	"carshare/infras/otel"
	"carshare/internal/domains/user/model"
	"carshare/internal/domains/user/model/dto"
	"carshare/internal/domains/user/repository"
	"carshare/shared"
	"carshare/shared/cache"
	"carshare/shared/constant"
	"carshare/shared/failure"
)

const cacheGetProfile = "user:profile"

type User interface {
	GetNickname(ctx context.Context, userID string) (string, error)
	GetMessageToken(ctx context.Context, userID string) (string, error)
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) get(ctx context.Context, userID string, columns ...string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(userID, model.FieldID, model.TableName), columns...)
	if err != nil {
		if failure.IsNotFound(err) {
			return user, failure.NotFound("user not found") //nolint:wrapcheck
		}

		log.Error().Err(err).Str("user_id", userID).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *serviceImpl) GetNickname(ctx context.Context, userID string) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetNickname")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var profile dto.ProfileResponse

	cacheKey := shared.BuildCacheKey(cacheGetProfile, userID)

	if err = s.cache.Get(ctx, cacheKey, &profile); err == nil {
		return profile.Nickname, nil
	}

	user, err := s.get(ctx, userID, model.FieldID, model.FieldNickname)
	if err != nil {
		return res, err
	}

	profile.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, profile, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user profile to cache")
		}
	}()

	return profile.Nickname, nil
}

// GetMessageToken returns the push token of a user. Tokens rotate, so they are never cached.
func (s *serviceImpl) GetMessageToken(ctx context.Context, userID string) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetMessageToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.get(ctx, userID, model.FieldID, model.FieldMessageToken)
	if err != nil {
		return res, err
	}

	return user.MessageToken, nil
}
