package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentdesk/config"
	"rentdesk/infras/ical"
	"rentdesk/infras/kafka"
	"rentdesk/infras/otel"
	bookingModel "rentdesk/internal/domains/booking/model"
	bookingRepo "rentdesk/internal/domains/booking/repository"
	"rentdesk/internal/domains/externalcalendar/model"
	"rentdesk/internal/domains/externalcalendar/model/dto"
	"rentdesk/internal/domains/externalcalendar/repository"
	unitModel "rentdesk/internal/domains/unit/model"
	unitRepo "rentdesk/internal/domains/unit/repository"
	"rentdesk/internal/engine"
	"rentdesk/internal/events"
	"rentdesk/shared"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"
	"rentdesk/shared/daterange"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCalendar    = "external_calendar:get"
	cacheGetAllCalendar = "external_calendar:gets"
	cacheCountCalendar  = "external_calendar:count"
)

const syncNotePrefix = "Synced from "

type ExternalCalendar interface {
	Create(ctx context.Context, req dto.CreateExternalCalendarRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetExternalCalendarsResponse, error)
	Get(ctx context.Context, id string) (dto.ExternalCalendarResponse, error)
	Update(ctx context.Context, req dto.UpdateExternalCalendarRequest, id string) error
	Delete(ctx context.Context, id string) error
	Sync(ctx context.Context, id string) (dto.SyncResponse, error)
}

type serviceImpl struct {
	repo        repository.ExternalCalendar
	unitRepo    unitRepo.Unit
	bookingRepo bookingRepo.Booking
	ical        ical.Client
	kafka       kafka.Client
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.ExternalCalendar,
	unitRepo unitRepo.Unit,
	bookingRepo bookingRepo.Booking,
	ical ical.Client,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) ExternalCalendar {
	return &serviceImpl{
		repo:        repo,
		unitRepo:    unitRepo,
		bookingRepo: bookingRepo,
		ical:        ical,
		kafka:       kafka,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) unitExists(ctx context.Context, id string) error {
	exist, err := s.unitRepo.Exist(ctx, shared.FilterByID(id, unitModel.FieldID, unitModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if unit exists")

		return fmt.Errorf("failed to check if unit exists: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString("unit does not exist") // nolint:wrapcheck
	}

	return nil
}

// unitNames resolves unit ids to names. Ids of deleted units are absent from the map.
func (s *serviceImpl) unitNames(ctx context.Context, ids ...string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	units, err := s.unitRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: unitModel.FieldID, ArgName: "calendar_units", Value: ids, Operator: gDto.FilterOperatorIn, Table: unitModel.TableName},
		},
	}, unitModel.FieldID, unitModel.FieldName)
	if err != nil {
		log.Error().Err(err).Msg("failed to get calendar units")

		return nil, fmt.Errorf("failed to get calendar units: %w", err)
	}

	for _, unit := range units {
		names[unit.ID] = unit.Name
	}

	return names, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateExternalCalendarRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if !model.IsFeedURL(req.URL) {
		return "", failure.BadRequestFromString("url must be an http(s) link to an .ics file") // nolint:wrapcheck
	}

	if err = s.unitExists(ctx, req.UnitID); err != nil {
		return "", err
	}

	calendar := req.ToModel(user)

	if err = s.repo.Insert(ctx, calendar); err != nil {
		log.Error().Err(err).Msg("failed to create external calendar")

		return "", fmt.Errorf("failed to create external calendar: %w", err)
	}

	go s.invalidate(ctx, calendar.ID)

	return calendar.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetExternalCalendarsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCalendar, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for external calendars")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count external calendars")

		return res, fmt.Errorf("failed to count external calendars: %w", err)
	}

	calendars, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get external calendars")

		return res, fmt.Errorf("failed to get external calendars: %w", err)
	}

	ids := make([]string, len(calendars))
	for i, calendar := range calendars {
		ids[i] = calendar.UnitID
	}

	names, err := s.unitNames(ctx, ids...)
	if err != nil {
		return res, err
	}

	res.FromModels(calendars, names, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save external calendars to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.ExternalCalendar, error) {
	calendar, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get external calendar")

		return calendar, fmt.Errorf("failed to get external calendar: %w", err)
	}

	if calendar.ID == constant.Empty {
		return calendar, failure.NotFound("external calendar not found") // nolint:wrapcheck
	}

	return calendar, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ExternalCalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetCalendar, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for external calendar")

		return res, nil
	}

	calendar, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	names, err := s.unitNames(ctx, calendar.UnitID)
	if err != nil {
		return res, err
	}

	res.FromModel(calendar, names[calendar.UnitID])

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save external calendar to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateExternalCalendarRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateExternalCalendarRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if req.URL != constant.Empty && !model.IsFeedURL(req.URL) {
		return failure.BadRequestFromString("url must be an http(s) link to an .ics file") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if external calendar exists")

		return fmt.Errorf("failed to check if external calendar exists: %w", err)
	}

	if !exist {
		return failure.NotFound("external calendar not found") // nolint:wrapcheck
	}

	if req.UnitID != constant.Empty {
		if err = s.unitExists(ctx, req.UnitID); err != nil {
			return err
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update external calendar")

		return fmt.Errorf("failed to update external calendar: %w", err)
	}

	go s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if external calendar exists")

		return fmt.Errorf("failed to check if external calendar exists: %w", err)
	}

	if !exist {
		return failure.NotFound("external calendar not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete external calendar")

		return fmt.Errorf("failed to delete external calendar: %w", err)
	}

	go s.invalidate(ctx, id)

	return nil
}

// Sync downloads the feed and closes the unit on every upcoming night an event covers.
// Nights already taken on the unit are skipped, so repeated syncs are idempotent. Events
// removed from the feed later do not reopen nights.
func (s *serviceImpl) Sync(ctx context.Context, id string) (res dto.SyncResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sync")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	calendar, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	feed, err := s.ical.Fetch(ctx, calendar.URL)
	if errors.Is(err, ical.ErrNotCalendar) {
		return res, failure.BadRequestFromString("url did not return an iCalendar feed") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("calendarID", id).Msg("failed to fetch external calendar")

		return res, failure.BadGateway("external calendar could not be downloaded") // nolint:wrapcheck
	}

	now := timezone.Now()
	drafts := s.closures(calendar, feed.Events, user, now)

	closed, err := s.bookingRepo.InsertClosures(ctx, drafts)
	if err != nil {
		log.Error().Err(err).Msg("failed to import external calendar")

		return res, fmt.Errorf("failed to import external calendar: %w", err)
	}

	fields := shared.TransformFields(struct{}{}, user)
	fields[model.FieldLastSynced] = now

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to stamp external calendar sync")

		return res, fmt.Errorf("failed to stamp external calendar sync: %w", err)
	}

	nights := make([]string, len(closed))
	for i, closure := range closed {
		nights[i] = daterange.Format(closure.CheckIn)
	}

	res.FromSync(now, len(feed.Events), nights, len(drafts)-len(closed))

	scope.SetAttributes(map[string]any{
		"sync.events":  len(feed.Events),
		"sync.closed":  len(closed),
		"sync.skipped": res.Skipped,
	})

	go s.invalidate(ctx, id)

	if len(closed) > 0 {
		s.notifyClosed(ctx, closed)
	}

	return res, nil
}

// closures drafts one closure per night from today up to the sync horizon, oldest first.
func (s *serviceImpl) closures(calendar model.ExternalCalendar, feedEvents []ical.Event, user string, now time.Time) []bookingModel.Booking {
	today := timezone.DateOf(now)
	horizon := daterange.New(today, today.AddDate(0, 0, dto.SyncHorizonDays))
	note := syncNotePrefix + calendar.Name

	seen := make(map[time.Time]struct{})
	drafts := []bookingModel.Booking{}

	for _, event := range feedEvents {
		for night := range event.Stay().Nights() {
			if _, ok := seen[night]; ok || !horizon.Contains(night) {
				continue
			}

			seen[night] = struct{}{}

			closure := engine.BuildClosure(calendar.UnitID, night, shared.NewID)
			closure.Notes = &note
			closure.Metadata = gModel.NewMetadata(user, now)
			drafts = append(drafts, closure)
		}
	}

	return drafts
}

func (s *serviceImpl) notifyClosed(ctx context.Context, closed []bookingModel.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, bookingModel.EntityName)
	}()

	messages := make([]kafka.Message, len(closed))
	for i, closure := range closed {
		messages[i] = kafka.Message{
			Key:  closure.UnitID,
			Type: kafka.EventUnitClosed,
			Value: events.BookingChanged{
				BookingID: closure.ID,
				UnitID:    closure.UnitID,
				CheckIn:   daterange.Format(closure.CheckIn),
				CheckOut:  daterange.Format(closure.CheckOut),
				Status:    closure.Status,
			},
		}
	}

	events.Notify(ctx, s.kafka, s.cache, s.cfg.Kafka.Topics.Booking, messages...)
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	c := context.WithoutCancel(ctx)

	if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCalendar, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete external calendar from cache")
	}

	shared.InvalidateCaches(c, s.cache, cacheGetAllCalendar)
	shared.InvalidateCaches(c, s.cache, cacheCountCalendar)
}
