package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"rentdesk/config"
	"rentdesk/infras/kafka"
	"rentdesk/infras/otel"
	groupModel "rentdesk/internal/domains/group/model"
	groupRepo "rentdesk/internal/domains/group/repository"
	"rentdesk/internal/domains/unit/model"
	"rentdesk/internal/domains/unit/model/dto"
	"rentdesk/internal/domains/unit/repository"
	"rentdesk/internal/events"
	"rentdesk/shared"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"
	"rentdesk/shared/daterange"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUnit    = "unit:get"
	cacheGetAllUnit = "unit:gets"
	cacheCountUnit  = "unit:count"
)

type Unit interface {
	Create(ctx context.Context, req dto.CreateUnitRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUnitsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.UnitResponse, error)
	Update(ctx context.Context, req dto.UpdateUnitRequest, id string) error
	SetSpecialPrice(ctx context.Context, req dto.SpecialPriceRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Unit
	groupRepo groupRepo.Group
	kafka     kafka.Client
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Unit, groupRepo groupRepo.Group, kafka kafka.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Unit {
	return &serviceImpl{
		repo:      repo,
		groupRepo: groupRepo,
		kafka:     kafka,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) checkGroup(ctx context.Context, groupID string) error {
	exist, err := s.groupRepo.Exist(ctx, shared.FilterByID(groupID, groupModel.FieldID, groupModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if group exists")

		return fmt.Errorf("failed to check if group exists: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString("group does not exist") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUnitRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.checkGroup(ctx, req.GroupID); err != nil {
		return "", err
	}

	unit := req.ToModel(user)

	if err = s.repo.Insert(ctx, unit); err != nil {
		log.Error().Err(err).Msg("failed to create unit")

		return "", fmt.Errorf("failed to create unit: %w", err)
	}

	s.changed(ctx, unit.ID, unit.GroupID, constant.Empty)

	return unit.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUnitsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUnit, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for units")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get units")

		return res, fmt.Errorf("failed to get units: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save units to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUnit, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count units")

		return res, fmt.Errorf("failed to count units: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save unit count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UnitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetUnit, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for unit")

		return res, nil
	}

	unit, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get unit")

		return res, fmt.Errorf("failed to get unit: %w", err)
	}

	if unit.ID == constant.Empty {
		return res, failure.NotFound("unit not found") // nolint:wrapcheck
	}

	res.FromModel(unit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save unit to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUnitRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateUnitRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if unit exists")

		return fmt.Errorf("failed to check if unit exists: %w", err)
	}

	if !exist {
		return failure.NotFound("unit not found") // nolint:wrapcheck
	}

	if req.GroupID != constant.Empty {
		if err = s.checkGroup(ctx, req.GroupID); err != nil {
			return err
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update unit")

		return fmt.Errorf("failed to update unit: %w", err)
	}

	s.changed(ctx, id, req.GroupID, constant.Empty)

	return nil
}

// SetSpecialPrice pins or, with a nil price, unpins the price of one date.
func (s *serviceImpl) SetSpecialPrice(ctx context.Context, req dto.SpecialPriceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetSpecialPrice")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	day, err := daterange.Parse(req.Date)
	if err != nil {
		return failure.BadRequestFromString("date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	updated, err := s.repo.SetSpecialPrices(ctx, day, map[string]*float64{id: req.Price}, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to update special dates")

		return fmt.Errorf("failed to update special dates: %w", err)
	}

	if len(updated) == 0 {
		return failure.NotFound("unit not found") // nolint:wrapcheck
	}

	s.changed(ctx, id, constant.Empty, daterange.Format(day))

	return nil
}

// Delete removes the unit with its bookings and drops it from every pricing override.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if unit exists")

		return fmt.Errorf("failed to check if unit exists: %w", err)
	}

	if !exist {
		return failure.NotFound("unit not found") // nolint:wrapcheck
	}

	if err = s.repo.DeleteCascade(ctx, id); err != nil {
		log.Error().Err(err).Msg("failed to delete unit")

		return fmt.Errorf("failed to delete unit: %w", err)
	}

	s.changed(ctx, id, constant.Empty, constant.Empty)

	return nil
}

func (s *serviceImpl) changed(ctx context.Context, id, groupID, date string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUnit, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete unit from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUnit)
		shared.InvalidateCaches(c, s.cache, cacheCountUnit)
	}()

	events.Notify(ctx, s.kafka, s.cache, s.cfg.Kafka.Topics.Booking, kafka.Message{
		Key:   id,
		Type:  kafka.EventUnitChanged,
		Value: events.UnitChanged{UnitID: id, GroupID: groupID, Date: date},
	})
}
