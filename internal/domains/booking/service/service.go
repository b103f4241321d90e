package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentdesk/config"
	"rentdesk/infras/kafka"
	"rentdesk/infras/otel"
	"rentdesk/internal/domains/booking/model"
	"rentdesk/internal/domains/booking/model/dto"
	"rentdesk/internal/domains/booking/repository"
	contactModel "rentdesk/internal/domains/contact/model"
	contactRepo "rentdesk/internal/domains/contact/repository"
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
	gRepo "rentdesk/shared/repository"
	"rentdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.ListFilter) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	unitRepo     unitRepo.Unit
	overrideRepo overrideRepo.Override
	contactRepo  contactRepo.Contact
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	unitRepo unitRepo.Unit,
	overrideRepo overrideRepo.Override,
	contactRepo contactRepo.Contact,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		unitRepo:     unitRepo,
		overrideRepo: overrideRepo,
		contactRepo:  contactRepo,
		kafka:        kafka,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) getUnit(ctx context.Context, id string) (unitModel.Unit, error) {
	unit, err := s.unitRepo.Get(ctx, shared.FilterByID(id, unitModel.FieldID, unitModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get unit")

		return unit, fmt.Errorf("failed to get unit: %w", err)
	}

	return unit, nil
}

// unitBookings loads every booking of unitID that shares a night with stay.
func (s *serviceImpl) unitBookings(ctx context.Context, unitID string, stay daterange.Range) ([]model.Booking, error) {
	filter := repository.OverlapFilter(stay)
	filter.Filters = append(filter.Filters,
		gDto.Filter{Field: model.FieldUnitID, Value: unitID, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get overlapping bookings")

		return nil, fmt.Errorf("failed to get overlapping bookings: %w", err)
	}

	return bookings, nil
}

func (s *serviceImpl) matchingContacts(ctx context.Context, email string) ([]contactModel.Contact, error) {
	email = contactModel.NormalizeEmail(email)
	if email == constant.Empty {
		return nil, nil
	}

	contacts, err := s.contactRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(email, contactModel.FieldEmail, contactModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to look up contact by email")

		return nil, fmt.Errorf("failed to look up contact by email: %w", err)
	}

	return contacts, nil
}

// Create prices the stay server-side, refuses double bookings and links the client to a contact,
// creating one when the email is new.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	stay, ok := req.Stay()
	if !ok {
		return res, failure.BadRequestFromString("check-out must be after check-in") // nolint:wrapcheck
	}

	unit, err := s.getUnit(ctx, req.UnitID)
	if err != nil {
		return res, err
	}

	if unit.ID == constant.Empty {
		return res, failure.BadRequestFromString("unit does not exist") // nolint:wrapcheck
	}

	existing, err := s.unitBookings(ctx, unit.ID, stay)
	if err != nil {
		return res, err
	}

	if !engine.IsUnitAvailableForRange(unit.ID, stay, existing) {
		return res, failure.Conflict("unit is already booked for some of the selected nights") // nolint:wrapcheck
	}

	overrides, err := s.overrideRepo.GetCovering(ctx, stay)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing overrides")

		return res, fmt.Errorf("failed to get pricing overrides: %w", err)
	}

	input := req.ToInput(stay, engine.TotalPrice(unit, stay.Start, stay.End, overrides))

	now := timezone.Now()

	booking, newContact, err := s.draft(ctx, input, req.ClientEmail, user, now)
	if err != nil {
		return res, err
	}

	err = s.repo.CreateWithContact(ctx, booking, newContact)
	if newContact != nil && gRepo.IsUniqueViolation(err) {
		// a concurrent booking created the contact first, link to it instead
		log.Warn().Str("unitID", booking.UnitID).Msg("contact created concurrently, retrying booking")

		booking, newContact, err = s.draft(ctx, input, req.ClientEmail, user, now)
		if err != nil {
			return res, err
		}

		if newContact != nil {
			return res, failure.Conflict("a contact with this email is being created, try again") // nolint:wrapcheck
		}

		err = s.repo.CreateWithContact(ctx, booking, nil)
	}

	if errors.Is(err, repository.ErrUnitTaken) {
		return res, failure.Conflict(err.Error()) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	scope.SetAttributes(map[string]any{
		"booking.id":         booking.ID,
		"booking.nights":     stay.Days(),
		"booking.newContact": newContact != nil,
	})

	s.changed(ctx, booking, kafka.EventBookingCreated)

	if newContact != nil {
		go func() {
			c := context.WithoutCancel(ctx)

			shared.InvalidateCaches(c, s.cache, contactModel.EntityName)
		}()
	}

	res.FromModel(booking)

	return res, nil
}

// draft links the client to a contact and builds the pending booking. newContact is set
// when the email is not known yet and has to be stored with the booking.
func (s *serviceImpl) draft(ctx context.Context, input engine.BookingInput, email, user string, now time.Time) (booking model.Booking, newContact *contactModel.Contact, err error) {
	contacts, err := s.matchingContacts(ctx, email)
	if err != nil {
		return booking, nil, err
	}

	resolution := engine.ResolveOrCreateContact(input, contacts, shared.NewID)

	booking = engine.BuildBooking(input, resolution.Contact.ID, shared.NewID)
	booking.Metadata = gModel.NewMetadata(user, now)

	if resolution.IsNew && !resolution.Guest {
		contact := resolution.Contact
		contact.Metadata = gModel.NewMetadata(user, now)
		newContact = &contact
	}

	return booking, newContact, nil
}

// scopedUnitIDs resolves the group scope to unit ids. ok is false for All.
func (s *serviceImpl) scopedUnitIDs(ctx context.Context, filter dto.ListFilter) (ids []string, ok bool, err error) {
	if filter.Scope.IsAll() {
		return nil, false, nil
	}

	units, err := s.unitRepo.GetAll(ctx, gDto.QueryParams{}, filter.Scope.Filter(unitModel.FieldGroupID, unitModel.TableName), unitModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get units in scope")

		return nil, true, fmt.Errorf("failed to get units in scope: %w", err)
	}

	ids = make([]string, len(units))
	for i, unit := range units {
		ids[i] = unit.ID
	}

	return ids, true, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, listFilter dto.ListFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := listFilter.Filter()

	unitIDs, scoped, err := s.scopedUnitIDs(ctx, listFilter)
	if err != nil {
		return res, err
	}

	if scoped {
		if len(unitIDs) == 0 {
			res.FromModels(nil, 0, req.Limit)

			return res, nil
		}

		filter.Filters = append(filter.Filters, repository.UnitsFilter(unitIDs).Filters...)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Cancel moves a guest booking to Cancelled. Closures and cancelled bookings are refused.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !engine.Cancellable(booking) {
		return failure.BadRequestFromString("booking cannot be cancelled") // nolint:wrapcheck
	}

	fields := shared.TransformFields(struct{}{}, user)
	fields[model.FieldStatus] = model.StatusCancelled

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.Status = model.StatusCancelled
	s.changed(ctx, booking, kafka.EventBookingCancelled)

	return nil
}

// Quote prices a prospective stay night by night and reports whether the unit is free.
func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	stay, ok := req.Stay()
	if !ok {
		return res, failure.BadRequestFromString("check-out must be after check-in") // nolint:wrapcheck
	}

	unit, err := s.getUnit(ctx, req.UnitID)
	if err != nil {
		return res, err
	}

	if unit.ID == constant.Empty {
		return res, failure.NotFound("unit not found") // nolint:wrapcheck
	}

	overrides, err := s.overrideRepo.GetCovering(ctx, stay)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pricing overrides")

		return res, fmt.Errorf("failed to get pricing overrides: %w", err)
	}

	existing, err := s.unitBookings(ctx, unit.ID, stay)
	if err != nil {
		return res, err
	}

	res.FromQuote(unit.ID, stay, engine.QuoteStay(unit, stay.Start, stay.End, overrides))
	res.Currency = s.cfg.App.Currency
	res.Available = engine.IsUnitAvailableForRange(unit.ID, stay, existing)

	return res, nil
}

func (s *serviceImpl) changed(ctx context.Context, booking model.Booking, eventType string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()

	events.Notify(ctx, s.kafka, s.cache, s.cfg.Kafka.Topics.Booking, kafka.Message{
		Key:  booking.UnitID,
		Type: eventType,
		Value: events.BookingChanged{
			BookingID: booking.ID,
			UnitID:    booking.UnitID,
			CheckIn:   daterange.Format(booking.CheckIn),
			CheckOut:  daterange.Format(booking.CheckOut),
			Status:    booking.Status,
		},
	})
}
