package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"rentdesk/config"
	"rentdesk/infras/ical"
	"rentdesk/infras/kafka"
	"rentdesk/infras/otel"
	bookingModel "rentdesk/internal/domains/booking/model"
	bookingRepo "rentdesk/internal/domains/booking/repository"
	"rentdesk/internal/domains/calendar/model/dto"
	overrideRepo "rentdesk/internal/domains/override/repository"
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
	cacheMonth = constant.CacheKeyCalendar + ":month"

	feedPastDays   = 30
	feedAheadYears = 2
	feedSummary    = "Booked"
	closedSummary  = "Closed"
)

type Calendar interface {
	Month(ctx context.Context, query dto.MonthQuery) (dto.MonthResponse, error)
	AdjustPrices(ctx context.Context, req dto.AdjustPricesRequest) error
	CloseUnits(ctx context.Context, req dto.CloseUnitsRequest) (dto.CloseUnitsResponse, error)
	Feed(ctx context.Context, unitID string) (dto.Feed, error)
}

type serviceImpl struct {
	unitRepo     unitRepo.Unit
	bookingRepo  bookingRepo.Booking
	overrideRepo overrideRepo.Override
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	unitRepo unitRepo.Unit,
	bookingRepo bookingRepo.Booking,
	overrideRepo overrideRepo.Override,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Calendar {
	return &serviceImpl{
		unitRepo:     unitRepo,
		bookingRepo:  bookingRepo,
		overrideRepo: overrideRepo,
		kafka:        kafka,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func unitsByID(ids []string) gDto.Filter {
	return gDto.Filter{Field: unitModel.FieldID, ArgName: "selected_units", Value: ids, Operator: gDto.FilterOperatorIn, Table: unitModel.TableName}
}

func (s *serviceImpl) units(ctx context.Context, query dto.MonthQuery) ([]unitModel.Unit, error) {
	filter := query.Scope.Filter(unitModel.FieldGroupID, unitModel.TableName)
	filter.Operator = gDto.FilterGroupOperatorAnd

	if len(query.UnitIDs) > 0 {
		filter.Filters = append(filter.Filters, unitsByID(query.UnitIDs))
	}

	units, err := s.unitRepo.GetAll(ctx, gDto.QueryParams{SortBy: unitModel.FieldName, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get calendar units")

		return nil, fmt.Errorf("failed to get calendar units: %w", err)
	}

	return units, nil
}

// Month renders the month grid for the scoped units. Bookings of units outside the
// selection are left out.
func (s *serviceImpl) Month(ctx context.Context, query dto.MonthQuery) (res dto.MonthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Month")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheMonth,
		query.Scope.String(),
		strconv.Itoa(query.Year),
		strconv.Itoa(int(query.Month)),
		strings.Join(query.UnitIDs, ","),
	)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for calendar month")

		return res, nil
	}

	grid := query.Grid()

	units, err := s.units(ctx, query)
	if err != nil {
		return res, err
	}

	var bookings []bookingModel.Booking

	if len(units) > 0 {
		ids := make([]string, len(units))
		for i, unit := range units {
			ids[i] = unit.ID
		}

		filter := bookingRepo.OverlapFilter(grid)
		filter.Filters = append(filter.Filters, bookingRepo.UnitsFilter(ids).Filters...)

		bookings, err = s.bookingRepo.GetAll(ctx, gDto.QueryParams{SortBy: bookingModel.FieldCheckIn, SortDir: gDto.SortDirAsc}, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get calendar bookings")

			return res, fmt.Errorf("failed to get calendar bookings: %w", err)
		}
	}

	overrides, err := s.overrideRepo.GetCovering(ctx, grid)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing overrides")

		return res, fmt.Errorf("failed to get pricing overrides: %w", err)
	}

	res.Build(query, units, bookings, overrides)
	res.Currency = s.cfg.App.Currency

	scope.SetAttributes(map[string]any{
		"calendar.units":    len(units),
		"calendar.bookings": len(bookings),
	})

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save calendar month to cache")
		}
	}()

	return res, nil
}

// selected loads the units named by ids and fails unless all of them exist.
func (s *serviceImpl) selected(ctx context.Context, ids []string) ([]unitModel.Unit, error) {
	units, err := s.unitRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{Filters: []any{unitsByID(ids)}})
	if err != nil {
		log.Error().Err(err).Msg("failed to get units")

		return nil, fmt.Errorf("failed to get units: %w", err)
	}

	if len(units) != len(ids) {
		return nil, failure.BadRequestFromString("one or more units do not exist") // nolint:wrapcheck
	}

	return units, nil
}

// AdjustPrices pins or clears the special price of each listed unit on one date.
func (s *serviceImpl) AdjustPrices(ctx context.Context, req dto.AdjustPricesRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdjustPrices")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	day, err := daterange.Parse(req.Date)
	if err != nil {
		return failure.BadRequestFromString("date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	ids := req.UnitIDs()

	units, err := s.selected(ctx, ids)
	if err != nil {
		return err
	}

	prices := make(map[string]*float64, len(units))
	for _, entry := range req.Prices {
		prices[entry.UnitID] = entry.Price
	}

	updated, err := s.unitRepo.SetSpecialPrices(ctx, day, prices, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to adjust unit prices")

		return fmt.Errorf("failed to adjust unit prices: %w", err)
	}

	if len(updated) != len(units) {
		return failure.BadRequestFromString("one or more units do not exist") // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, unitModel.EntityName)
	}()

	events.Notify(ctx, s.kafka, s.cache, s.cfg.Kafka.Topics.Booking, kafka.Message{
		Key:   daterange.Format(day),
		Type:  kafka.EventPricingChanged,
		Value: events.PricingChanged{UnitIDs: ids},
	})

	return nil
}

// CloseUnits blocks each listed unit for the night of the date. Units that are already
// taken that night, including by a booking committed a moment earlier, are skipped and reported.
func (s *serviceImpl) CloseUnits(ctx context.Context, req dto.CloseUnitsRequest) (res dto.CloseUnitsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CloseUnits")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	day, err := daterange.Parse(req.Date)
	if err != nil {
		return res, failure.BadRequestFromString("date must be formatted as YYYY-MM-DD") // nolint:wrapcheck
	}

	ids := uniqueIDs(req.UnitIDs)

	if _, err = s.selected(ctx, ids); err != nil {
		return res, err
	}

	now := timezone.Now()
	drafts := make([]bookingModel.Booking, len(ids))

	for i, id := range ids {
		drafts[i] = engine.BuildClosure(id, day, shared.NewID)
		drafts[i].Metadata = gModel.NewMetadata(user, now)
	}

	closures, err := s.bookingRepo.InsertClosures(ctx, drafts)
	if err != nil {
		log.Error().Err(err).Msg("failed to close units")

		return res, fmt.Errorf("failed to close units: %w", err)
	}

	res.Date = daterange.Format(day)
	res.Closed = make([]string, 0, len(closures))
	res.Skipped = []string{}

	closed := make(map[string]struct{}, len(closures))
	for _, closure := range closures {
		closed[closure.UnitID] = struct{}{}
	}

	for _, id := range ids {
		if _, ok := closed[id]; ok {
			res.Closed = append(res.Closed, id)
		} else {
			res.Skipped = append(res.Skipped, id)
		}
	}

	scope.SetAttributes(map[string]any{
		"calendar.closed":  len(res.Closed),
		"calendar.skipped": len(res.Skipped),
	})

	if len(closures) == 0 {
		return res, nil
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, bookingModel.EntityName)
	}()

	messages := make([]kafka.Message, len(closures))
	for i, closure := range closures {
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

	return res, nil
}

// Feed publishes the nights a unit is held as an iCalendar document other channels can
// subscribe to. Guests are never named in the feed.
func (s *serviceImpl) Feed(ctx context.Context, unitID string) (res dto.Feed, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Feed")
	defer scope.End()
	defer scope.TraceIfError(err)

	unit, err := s.unitRepo.Get(ctx, shared.FilterByID(unitID, unitModel.FieldID, unitModel.TableName), unitModel.FieldID, unitModel.FieldName)
	if err != nil {
		log.Error().Err(err).Msg("failed to get unit")

		return res, fmt.Errorf("failed to get unit: %w", err)
	}

	if unit.ID == constant.Empty {
		return res, failure.NotFound("unit not found") // nolint:wrapcheck
	}

	today := timezone.Today()
	window := daterange.New(today.AddDate(0, 0, -feedPastDays), today.AddDate(feedAheadYears, 0, 0))

	filter := bookingRepo.OverlapFilter(window)
	filter.Filters = append(filter.Filters, bookingRepo.UnitsFilter([]string{unit.ID}).Filters...)

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{SortBy: bookingModel.FieldCheckIn, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get unit bookings")

		return res, fmt.Errorf("failed to get unit bookings: %w", err)
	}

	feed := make([]ical.Event, 0, len(bookings))

	for _, booking := range bookings {
		if !engine.Blocking(booking) {
			continue
		}

		summary := feedSummary
		if booking.IsClosure() {
			summary = closedSummary
		}

		feed = append(feed, ical.Event{
			UID:     booking.ID + "@rentdesk",
			Summary: summary,
			Start:   booking.CheckIn,
			End:     booking.CheckOut,
		})
	}

	scope.SetAttributes(map[string]any{
		"calendar.unit":   unit.ID,
		"calendar.events": len(feed),
	})

	res.FileName = unit.ID + ".ics"
	res.Content = ical.Encode(s.cfg.External.ICal.ProductID, unit.Name, feed, timezone.Now())

	return res, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
