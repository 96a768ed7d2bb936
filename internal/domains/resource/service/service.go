package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"carshare/config"
	"carshare/infras/otel"
	"carshare/infras/s3"
	"carshare/internal/domains/resource/model"
	"carshare/internal/domains/resource/model/dto"
	"carshare/internal/domains/resource/repository"
	"carshare/shared"
	"carshare/shared/cache"
	"carshare/shared/constant"
	"carshare/shared/failure"
	"carshare/shared/timezone"
	"carshare/shared/validator"
)

const imageDirectory = "resources"

type Resource interface {
	GetRentInfo(ctx context.Context, id string) (dto.RentInfo, error)
	GetDetails(ctx context.Context, id string) (dto.Details, error)
	AddImage(ctx context.Context, req dto.AddImageRequest) (dto.AddImageResponse, error)
}

type serviceImpl struct {
	repo      repository.Resource
	committed CommittedRangeSource
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
}

func New(repo repository.Resource, committed CommittedRangeSource, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Resource {
	return &serviceImpl{
		repo:      repo,
		committed: committed,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		s3:        s3,
	}
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Resource, error) {
	resource, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		if failure.IsNotFound(err) {
			return resource, failure.NotFound("resource not found") //nolint:wrapcheck
		}

		log.Error().Err(err).Str("resource_id", id).Msg("failed to get resource")

		return resource, fmt.Errorf("failed to get resource: %w", err)
	}

	return resource, nil
}

func (s *serviceImpl) GetRentInfo(ctx context.Context, id string) (res dto.RentInfo, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.GetRentInfo")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheRentInfo, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for rent info")

		return res, nil
	}

	resource, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	committed, err := s.committed.CommittedRanges(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("resource_id", id).Msg("failed to get committed ranges")

		return res, fmt.Errorf("failed to get committed ranges: %w", err)
	}

	res.FromModel(resource, committed)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rent info to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetDetails(ctx context.Context, id string) (res dto.Details, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.GetDetails")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheDetails, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	resource, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(resource)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save resource details to cache")
		}
	}()

	return res, nil
}

// AddImage uploads the image and appends its URL to the resource. Only the owner may
// add images. The upload is removed again when the append fails.
func (s *serviceImpl) AddImage(ctx context.Context, req dto.AddImageRequest) (res dto.AddImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".resource.AddImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	resource, err := s.load(ctx, req.ResourceID)
	if err != nil {
		return res, err
	}

	if resource.OwnerID != req.UserID {
		return res, failure.Forbidden("only the owner can add images") //nolint:wrapcheck
	}

	url, err := s.s3.UploadFileBytes(ctx, imageDirectory+"/"+req.ResourceID, uuid.NewString(), req.ContentType, req.Data)
	if err != nil {
		log.Error().Err(err).Str("resource_id", req.ResourceID).Msg("failed to upload resource image")

		return res, fmt.Errorf("failed to upload resource image: %w", err)
	}

	if err = s.repo.AppendImage(ctx, req.ResourceID, url, timezone.Now()); err != nil {
		log.Error().Err(err).Str("resource_id", req.ResourceID).Msg("failed to append resource image")

		if delErr := s.s3.DeleteFile(context.WithoutCancel(ctx), s.s3.GetObjectNameFromURL(url)); delErr != nil {
			log.Warn().Err(delErr).Str("url", url).Msg("failed to remove orphaned image")
		}

		return res, fmt.Errorf("failed to append resource image: %w", err)
	}

	res.URL = url

	go func() {
		c := context.WithoutCancel(ctx)

		for _, prefix := range []string{model.CacheRentInfo, model.CacheDetails} {
			if err := s.cache.Delete(c, shared.BuildCacheKey(prefix, req.ResourceID)); err != nil {
				log.Error().Err(err).Msg("failed to invalidate resource cache")
			}
		}
	}()

	return res, nil
}
