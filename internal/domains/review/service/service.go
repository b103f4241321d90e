package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"rentdesk/config"
	"rentdesk/infras/otel"
	bookingModel "rentdesk/internal/domains/booking/model"
	bookingRepo "rentdesk/internal/domains/booking/repository"
	contactModel "rentdesk/internal/domains/contact/model"
	contactRepo "rentdesk/internal/domains/contact/repository"
	"rentdesk/internal/domains/review/model"
	"rentdesk/internal/domains/review/model/dto"
	"rentdesk/internal/domains/review/repository"
	unitModel "rentdesk/internal/domains/unit/model"
	unitRepo "rentdesk/internal/domains/unit/repository"
	"rentdesk/shared"
	"rentdesk/shared/cache"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	gRepo "rentdesk/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReview    = "review:get"
	cacheGetAllReview = "review:gets"
)

type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) (string, error)
	GetAll(ctx context.Context, query dto.ListQuery) (dto.GetReviewsResponse, error)
	Get(ctx context.Context, id string) (dto.ReviewResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Review
	bookingRepo bookingRepo.Booking
	contactRepo contactRepo.Contact
	unitRepo    unitRepo.Unit
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Review,
	bookingRepo bookingRepo.Booking,
	contactRepo contactRepo.Contact,
	unitRepo unitRepo.Unit,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Review {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		contactRepo: contactRepo,
		unitRepo:    unitRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Create records a guest's rating of a stay. The contact and unit are taken from the
// booking, and a booking takes one review.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviewed booking")

		return "", fmt.Errorf("failed to get reviewed booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return "", failure.BadRequestFromString("booking does not exist") // nolint:wrapcheck
	}

	if booking.IsClosure() {
		return "", failure.BadRequestFromString("a unit closure cannot be reviewed") // nolint:wrapcheck
	}

	review := req.ToModel(booking, user)

	if err = s.repo.Insert(ctx, review); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return "", failure.Conflict("booking already has a review") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create review")

		return "", fmt.Errorf("failed to create review: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReview)
	}()

	return review.ID, nil
}

// GetAll lists the reviews of units in the query's scope. Reviews of units that no longer
// exist fall out of every scope; a deleted booking or contact shows as N/A.
func (s *serviceImpl) GetAll(ctx context.Context, query dto.ListQuery) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllReview,
		query.Scope.String(),
		query.UnitID,
		strconv.Itoa(query.Params.Page),
		strconv.Itoa(query.Params.Limit),
		query.Params.SortBy,
		query.Params.SortDir,
	)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reviews")

		return res, nil
	}

	unitFilter := query.Scope.Filter(unitModel.FieldGroupID, unitModel.TableName)
	if query.UnitID != constant.Empty {
		unitFilter.Operator = gDto.FilterGroupOperatorAnd
		unitFilter.Filters = append(unitFilter.Filters, shared.FilterByID(query.UnitID, unitModel.FieldID, unitModel.TableName).Filters...)
	}

	units, err := s.unitRepo.GetAll(ctx, gDto.QueryParams{}, unitFilter, unitModel.FieldID, unitModel.FieldName)
	if err != nil {
		log.Error().Err(err).Msg("failed to get review units")

		return res, fmt.Errorf("failed to get review units: %w", err)
	}

	if len(units) == 0 {
		res.FromModels(nil, dto.Related{}, model.Stats{}, query.Params.Limit)

		return res, nil
	}

	names := make(map[string]string, len(units))
	for _, unit := range units {
		names[unit.ID] = unit.Name
	}

	filter := gDto.FilterGroup{Filters: []any{
		gDto.Filter{Field: model.FieldUnitID, ArgName: "review_units", Value: keys(names), Operator: gDto.FilterOperatorIn, Table: model.TableName},
	}}

	stats, err := s.repo.Stats(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get review stats")

		return res, fmt.Errorf("failed to get review stats: %w", err)
	}

	reviews, err := s.repo.GetAll(ctx, query.Params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	related, err := s.related(ctx, reviews, names)
	if err != nil {
		return res, err
	}

	res.FromModels(reviews, related, stats, query.Params.Limit)

	scope.SetAttributes(map[string]any{
		"review.total":   stats.Total,
		"review.average": stats.Average,
	})

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reviews to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReview, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for review")

		return res, nil
	}

	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return res, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return res, failure.NotFound("review not found") // nolint:wrapcheck
	}

	related, err := s.related(ctx, []model.Review{review}, nil)
	if err != nil {
		return res, err
	}

	res.FromModel(review, related)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save review to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if review exists")

		return fmt.Errorf("failed to check if review exists: %w", err)
	}

	if !exist {
		return failure.NotFound("review not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReview, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete review from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReview)
	}()

	return nil
}

// related loads the bookings, contacts and units the reviews point at. Unit names
// already known are passed in units; nil looks them up.
func (s *serviceImpl) related(ctx context.Context, reviews []model.Review, units map[string]string) (related dto.Related, err error) {
	related = dto.Related{
		Bookings: map[string]bookingModel.Booking{},
		Contacts: map[string]contactModel.Contact{},
		Units:    units,
	}

	if len(reviews) == 0 {
		return related, nil
	}

	bookingIDs := make(map[string]string, len(reviews))
	contactIDs := make(map[string]string, len(reviews))
	unitIDs := make(map[string]string, len(reviews))

	for _, review := range reviews {
		bookingIDs[review.BookingID] = review.BookingID
		unitIDs[review.UnitID] = review.UnitID

		if review.ContactID != constant.Empty {
			contactIDs[review.ContactID] = review.ContactID
		}
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{Filters: []any{
		gDto.Filter{Field: bookingModel.FieldID, ArgName: "review_bookings", Value: keys(bookingIDs), Operator: gDto.FilterOperatorIn, Table: bookingModel.TableName},
	}}, bookingModel.FieldID, bookingModel.FieldCheckIn, bookingModel.FieldCheckOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviewed bookings")

		return related, fmt.Errorf("failed to get reviewed bookings: %w", err)
	}

	for _, booking := range bookings {
		related.Bookings[booking.ID] = booking
	}

	if len(contactIDs) > 0 {
		contacts, err := s.contactRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{Filters: []any{
			gDto.Filter{Field: contactModel.FieldID, ArgName: "review_contacts", Value: keys(contactIDs), Operator: gDto.FilterOperatorIn, Table: contactModel.TableName},
		}}, contactModel.FieldID, contactModel.FieldName, contactModel.FieldPhone)
		if err != nil {
			log.Error().Err(err).Msg("failed to get reviewing contacts")

			return related, fmt.Errorf("failed to get reviewing contacts: %w", err)
		}

		for _, contact := range contacts {
			related.Contacts[contact.ID] = contact
		}
	}

	if related.Units != nil {
		return related, nil
	}

	found, err := s.unitRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{Filters: []any{
		gDto.Filter{Field: unitModel.FieldID, ArgName: "review_units", Value: keys(unitIDs), Operator: gDto.FilterOperatorIn, Table: unitModel.TableName},
	}}, unitModel.FieldID, unitModel.FieldName)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviewed units")

		return related, fmt.Errorf("failed to get reviewed units: %w", err)
	}

	related.Units = make(map[string]string, len(found))
	for _, unit := range found {
		related.Units[unit.ID] = unit.Name
	}

	return related, nil
}

func keys(set map[string]string) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}

	slices.Sort(out)

	return out
}
