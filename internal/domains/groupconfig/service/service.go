package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"rentdesk/config"
	"rentdesk/infras/otel"
	groupModel "rentdesk/internal/domains/group/model"
	groupRepo "rentdesk/internal/domains/group/repository"
	"rentdesk/internal/domains/groupconfig/model"
	"rentdesk/internal/domains/groupconfig/model/dto"
	"rentdesk/internal/domains/groupconfig/repository"
	"rentdesk/shared"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"
	"rentdesk/shared/failure"
	"rentdesk/shared/scope"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAIConfig      = "group_config:ai"
	cacheGetWebsiteConfig = "group_config:website"
)

// GroupConfig keeps one AI agent config and one website config per group scope.
type GroupConfig interface {
	GetAI(ctx context.Context, key scope.GroupScope) (dto.AIConfigResponse, error)
	SaveAI(ctx context.Context, key scope.GroupScope, req dto.AIConfigRequest) (dto.SaveResponse, error)
	GetWebsite(ctx context.Context, key scope.GroupScope) (dto.WebsiteConfigResponse, error)
	SaveWebsite(ctx context.Context, key scope.GroupScope, req dto.WebsiteConfigRequest) (dto.SaveResponse, error)
}

type serviceImpl struct {
	aiRepo      repository.AIConfig
	websiteRepo repository.WebsiteConfig
	groupRepo   groupRepo.Group
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	aiRepo repository.AIConfig,
	websiteRepo repository.WebsiteConfig,
	groupRepo groupRepo.Group,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) GroupConfig {
	return &serviceImpl{
		aiRepo:      aiRepo,
		websiteRepo: websiteRepo,
		groupRepo:   groupRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) GetAI(ctx context.Context, key scope.GroupScope) (res dto.AIConfigResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAI")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAIConfig, key.String())

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for ai config")

		return res, nil
	}

	stored, err := s.aiRepo.Get(ctx, shared.FilterByID(key.String(), model.FieldScopeKey, model.AITableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get ai config")

		return res, fmt.Errorf("failed to get ai config: %w", err)
	}

	if stored.ScopeKey == constant.Empty {
		return res, failure.NotFound("ai config not found") // nolint:wrapcheck
	}

	res.FromModel(stored)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) SaveAI(ctx context.Context, key scope.GroupScope, req dto.AIConfigRequest) (res dto.SaveResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SaveAI")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.groupExists(ctx, key); err != nil {
		return res, err
	}

	if req.DiscountEnabled && req.DiscountAmount <= 0 {
		return res, failure.BadRequestFromString("discount_amount must be greater than 0 when the discount is enabled") // nolint:wrapcheck
	}

	res.GroupID = key.String()

	res.Created, err = s.aiRepo.Upsert(ctx, req.ToModel(key, user))
	if err != nil {
		log.Error().Err(err).Msg("failed to save ai config")

		return res, fmt.Errorf("failed to save ai config: %w", err)
	}

	s.forget(ctx, shared.BuildCacheKey(cacheGetAIConfig, key.String()))

	return res, nil
}

func (s *serviceImpl) GetWebsite(ctx context.Context, key scope.GroupScope) (res dto.WebsiteConfigResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetWebsite")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetWebsiteConfig, key.String())

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for website config")

		return res, nil
	}

	stored, err := s.websiteRepo.Get(ctx, shared.FilterByID(key.String(), model.FieldScopeKey, model.WebsiteTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get website config")

		return res, fmt.Errorf("failed to get website config: %w", err)
	}

	if stored.ScopeKey == constant.Empty {
		return res, failure.NotFound("website config not found") // nolint:wrapcheck
	}

	res.FromModel(stored)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) SaveWebsite(ctx context.Context, key scope.GroupScope, req dto.WebsiteConfigRequest) (res dto.SaveResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SaveWebsite")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.groupExists(ctx, key); err != nil {
		return res, err
	}

	res.GroupID = key.String()

	res.Created, err = s.websiteRepo.Upsert(ctx, req.ToModel(key, user))
	if err != nil {
		log.Error().Err(err).Msg("failed to save website config")

		return res, fmt.Errorf("failed to save website config: %w", err)
	}

	s.forget(ctx, shared.BuildCacheKey(cacheGetWebsiteConfig, key.String()))

	return res, nil
}

// groupExists lets the All scope through and requires a specific group to exist.
func (s *serviceImpl) groupExists(ctx context.Context, key scope.GroupScope) error {
	id, ok := key.GroupID()
	if !ok {
		return nil
	}

	exist, err := s.groupRepo.Exist(ctx, shared.FilterByID(id, groupModel.FieldID, groupModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if group exists")

		return fmt.Errorf("failed to check if group exists: %w", err)
	}

	if !exist {
		return failure.NotFound("group not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) save(ctx context.Context, cacheKey string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save group config to cache")
		}
	}()
}

func (s *serviceImpl) forget(ctx context.Context, cacheKey string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, cacheKey); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to delete group config from cache")
		}
	}()
}
