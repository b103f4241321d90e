package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"maps"

	"rentdesk/config"
	"rentdesk/infras/kafka"
	"rentdesk/infras/otel"
	"rentdesk/internal/domains/override/model"
	"rentdesk/internal/domains/override/model/dto"
	"rentdesk/internal/domains/override/repository"
	unitModel "rentdesk/internal/domains/unit/model"
	unitRepo "rentdesk/internal/domains/unit/repository"
	"rentdesk/internal/events"
	"rentdesk/shared"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetOverride    = "override:get"
	cacheGetAllOverride = "override:gets"
	cacheCountOverride  = "override:count"
)

type Override interface {
	Create(ctx context.Context, req dto.CreateOverrideRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOverridesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.OverrideResponse, error)
	Update(ctx context.Context, req dto.UpdateOverrideRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Override
	unitRepo unitRepo.Unit
	kafka    kafka.Client
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Override, unitRepo unitRepo.Unit, kafka kafka.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Override {
	return &serviceImpl{
		repo:     repo,
		unitRepo: unitRepo,
		kafka:    kafka,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// checkUnits fails unless every id names an existing unit. ids must be free of duplicates.
func (s *serviceImpl) checkUnits(ctx context.Context, ids []string) error {
	found, err := s.unitRepo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: unitModel.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: unitModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count units")

		return fmt.Errorf("failed to count units: %w", err)
	}

	if found != len(ids) {
		return failure.BadRequestFromString("one or more units do not exist") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOverrideRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, _, ok := req.Period(); !ok {
		return "", failure.InvalidDateRange
	}

	override := req.ToModel(user)

	if err = s.checkUnits(ctx, override.UnitIDs); err != nil {
		return "", err
	}

	if err = s.repo.Insert(ctx, override); err != nil {
		log.Error().Err(err).Msg("failed to create pricing override")

		return "", fmt.Errorf("failed to create pricing override: %w", err)
	}

	s.changed(ctx, override.ID, override.UnitIDs)

	return override.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOverridesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOverride, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for pricing overrides")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing overrides")

		return res, fmt.Errorf("failed to get pricing overrides: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pricing overrides to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountOverride, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count pricing overrides")

		return res, fmt.Errorf("failed to count pricing overrides: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pricing override count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OverrideResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetOverride, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for pricing override")

		return res, nil
	}

	override, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing override")

		return res, fmt.Errorf("failed to get pricing override: %w", err)
	}

	if override.ID == constant.Empty {
		return res, failure.NotFound("pricing override not found") // nolint:wrapcheck
	}

	res.FromModel(override)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pricing override to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateOverrideRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing override")

		return fmt.Errorf("failed to get pricing override: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("pricing override not found") // nolint:wrapcheck
	}

	merged, fields, ok := req.Apply(current)
	if !ok {
		return failure.InvalidDateRange
	}

	if _, changed := fields[model.FieldUnitIDs]; changed {
		if err = s.checkUnits(ctx, merged.UnitIDs); err != nil {
			return err
		}
	}

	maps.Copy(fields, shared.TransformFields(struct{}{}, user))

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update pricing override")

		return fmt.Errorf("failed to update pricing override: %w", err)
	}

	affected := append(append([]string{}, current.UnitIDs...), merged.UnitIDs...)
	s.changed(ctx, id, affected)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldUnitIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing override")

		return fmt.Errorf("failed to get pricing override: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("pricing override not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete pricing override")

		return fmt.Errorf("failed to delete pricing override: %w", err)
	}

	s.changed(ctx, id, current.UnitIDs)

	return nil
}

func (s *serviceImpl) changed(ctx context.Context, id string, unitIDs []string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOverride, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete pricing override from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllOverride)
		shared.InvalidateCaches(c, s.cache, cacheCountOverride)
	}()

	events.Notify(ctx, s.kafka, s.cache, s.cfg.Kafka.Topics.Booking, kafka.Message{
		Key:   id,
		Type:  kafka.EventPricingChanged,
		Value: events.PricingChanged{OverrideID: id, UnitIDs: unitIDs},
	})
}
