package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"rentdesk/config"
	"rentdesk/infras/otel"
	"rentdesk/internal/domains/group/model"
	"rentdesk/internal/domains/group/model/dto"
	"rentdesk/internal/domains/group/repository"
	unitModel "rentdesk/internal/domains/unit/model"
	unitRepo "rentdesk/internal/domains/unit/repository"
	"rentdesk/shared"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetGroup    = "group:get"
	cacheGetAllGroup = "group:gets"
	cacheCountGroup  = "group:count"
)

type Group interface {
	Create(ctx context.Context, req dto.CreateGroupRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetGroupsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.GroupResponse, error)
	Update(ctx context.Context, req dto.UpdateGroupRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Group
	unitRepo unitRepo.Unit
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Group, unitRepo unitRepo.Unit, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Group {
	return &serviceImpl{
		repo:     repo,
		unitRepo: unitRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGroupRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	group := req.ToModel(user)

	if err = s.repo.Insert(ctx, group); err != nil {
		log.Error().Err(err).Msg("failed to create group")

		return "", fmt.Errorf("failed to create group: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllGroup)
		shared.InvalidateCaches(c, s.cache, cacheCountGroup)
	}()

	return group.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetGroupsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllGroup, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for groups")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get groups")

		return res, fmt.Errorf("failed to get groups: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save groups to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountGroup, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count groups")

		return res, fmt.Errorf("failed to count groups: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save group count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.GroupResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetGroup, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for group")

		return res, nil
	}

	group, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get group")

		return res, fmt.Errorf("failed to get group: %w", err)
	}

	if group.ID == constant.Empty {
		return res, failure.NotFound("group not found") // nolint:wrapcheck
	}

	res.FromModel(group)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save group to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateGroupRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateGroupRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if group exists")

		return fmt.Errorf("failed to check if group exists: %w", err)
	}

	if !exist {
		return failure.NotFound("group not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update group")

		return fmt.Errorf("failed to update group: %w", err)
	}

	go s.invalidate(ctx, id)

	return nil
}

// Delete refuses while units still belong to the group.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if group exists")

		return fmt.Errorf("failed to check if group exists: %w", err)
	}

	if !exist {
		return failure.NotFound("group not found") // nolint:wrapcheck
	}

	units, err := s.unitRepo.Count(ctx, shared.FilterByID(id, unitModel.FieldGroupID, unitModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to count units of group")

		return fmt.Errorf("failed to count units of group: %w", err)
	}

	if units > 0 {
		return failure.Conflict(fmt.Sprintf("group still has %d unit(s), move or delete them first", units)) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete group")

		return fmt.Errorf("failed to delete group: %w", err)
	}

	go s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	c := context.WithoutCancel(ctx)

	if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetGroup, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete group from cache")
	}

	shared.InvalidateCaches(c, s.cache, cacheGetAllGroup)
	shared.InvalidateCaches(c, s.cache, cacheCountGroup)
	shared.InvalidateCaches(c, s.cache, constant.CacheKeyDashboard)
}
