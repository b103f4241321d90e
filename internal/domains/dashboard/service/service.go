package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"rentdesk/config"
	"rentdesk/infras/otel"
	bookingModel "rentdesk/internal/domains/booking/model"
	bookingRepo "rentdesk/internal/domains/booking/repository"
	"rentdesk/internal/domains/dashboard/model/dto"
	unitModel "rentdesk/internal/domains/unit/model"
	unitRepo "rentdesk/internal/domains/unit/repository"
	"rentdesk/internal/engine"
	"rentdesk/shared"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"
	"rentdesk/shared/daterange"
	gDto "rentdesk/shared/dto"

	"github.com/rs/zerolog/log"
)

const cacheOverview = constant.CacheKeyDashboard + ":overview"

type Dashboard interface {
	Overview(ctx context.Context, query dto.Query) (dto.OverviewResponse, error)
	Export(ctx context.Context, query dto.Query) (Report, error)
}

type serviceImpl struct {
	unitRepo    unitRepo.Unit
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(unitRepo unitRepo.Unit, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Dashboard {
	return &serviceImpl{
		unitRepo:    unitRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// snapshot is everything the dashboard derives its figures from.
type snapshot struct {
	window   daterange.Range
	units    []unitModel.Unit
	bookings []bookingModel.Booking
	recent   []bookingModel.Booking
}

func (s *serviceImpl) load(ctx context.Context, query dto.Query) (snap snapshot, err error) {
	snap.window, err = query.Window()
	if err != nil {
		return snap, err
	}

	snap.units, err = s.unitRepo.GetAll(ctx, gDto.QueryParams{}, query.Scope.Filter(unitModel.FieldGroupID, unitModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get dashboard units")

		return snap, fmt.Errorf("failed to get dashboard units: %w", err)
	}

	if len(snap.units) == 0 {
		return snap, nil
	}

	ids := make([]string, len(snap.units))
	for i, unit := range snap.units {
		ids[i] = unit.ID
	}

	filter := bookingRepo.OverlapFilter(snap.window)
	filter.Filters = append(filter.Filters, bookingRepo.UnitsFilter(ids).Filters...)

	snap.bookings, err = s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get dashboard bookings")

		return snap, fmt.Errorf("failed to get dashboard bookings: %w", err)
	}

	recent, err := s.bookingRepo.GetAll(ctx,
		gDto.QueryParams{Page: 1, Limit: dto.RecentLimit, SortBy: bookingModel.FieldCheckIn, SortDir: gDto.SortDirDesc},
		gDto.FilterGroup{Filters: bookingRepo.UnitsFilter(ids).Filters},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to get recent bookings")

		return snap, fmt.Errorf("failed to get recent bookings: %w", err)
	}

	snap.recent = engine.RecentBookings(recent, dto.RecentLimit)

	return snap, nil
}

// Overview summarizes confirmed bookings of the scoped units over the query window.
func (s *serviceImpl) Overview(ctx context.Context, query dto.Query) (res dto.OverviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Overview")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheOverview, query.Scope.String(), query.From, query.To)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for dashboard overview")

		return res, nil
	}

	snap, err := s.load(ctx, query)
	if err != nil {
		return res, err
	}

	res.Build(query,
		engine.ComputeStats(snap.bookings, snap.units, snap.window),
		engine.MonthlyBreakdown(snap.bookings, snap.window),
		snap.recent,
	)
	res.Currency = s.cfg.App.Currency

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save dashboard overview to cache")
		}
	}()

	return res, nil
}

// Export renders the overview and every booking in the window as a spreadsheet.
func (s *serviceImpl) Export(ctx context.Context, query dto.Query) (report Report, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer scope.TraceIfError(err)

	snap, err := s.load(ctx, query)
	if err != nil {
		return report, err
	}

	var overview dto.OverviewResponse

	overview.Build(query,
		engine.ComputeStats(snap.bookings, snap.units, snap.window),
		engine.MonthlyBreakdown(snap.bookings, snap.window),
		snap.recent,
	)
	overview.Currency = s.cfg.App.Currency

	report, err = buildReport(overview, snap.units, snap.bookings)
	if err != nil {
		log.Error().Err(err).Msg("failed to build dashboard report")

		return report, fmt.Errorf("failed to build dashboard report: %w", err)
	}

	scope.SetAttribute("report.bytes", len(report.Content))

	return report, nil
}
