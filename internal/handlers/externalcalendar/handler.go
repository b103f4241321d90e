package externalcalendar

import (
	"net/http"

	"rentdesk/infras/otel"
	"rentdesk/internal/domains/externalcalendar/model"
	"rentdesk/internal/domains/externalcalendar/model/dto"
	"rentdesk/internal/domains/externalcalendar/service"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/validator"
	"rentdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.ExternalCalendar
	otel    otel.Otel
}

func New(service service.ExternalCalendar, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/external-calendars", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateExternalCalendar)
		routerGroup.Get("/", handler.GetExternalCalendars)
		routerGroup.Get("/{id}", handler.GetExternalCalendarByID)
		routerGroup.Patch("/{id}", handler.UpdateExternalCalendar)
		routerGroup.Delete("/{id}", handler.DeleteExternalCalendar)
		routerGroup.Post("/{id}/sync", handler.SyncExternalCalendar)
	})
}

// CreateExternalCalendar registers a feed from another booking channel.
// @Summary Register an external calendar
// @Description The url must be an http(s) link whose path ends in .ics.
// @Tags ExternalCalendar
// @Accept json
// @Produce json
// @Param request body dto.CreateExternalCalendarRequest true "Create External Calendar Request"
// @Success 201 {object} response.Data[response.Created] "External calendar created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/external-calendars [post]
// @Security BearerAuth
func (handler *Handler) CreateExternalCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateExternalCalendar")
	defer scope.End()

	req := dto.CreateExternalCalendarRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create external calendar")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("External calendar created successfully by user " + user)

	response.WithCreated(w, id, "External calendar created successfully")
}

// GetExternalCalendars lists registered feeds.
// @Summary Get all external calendars
// @Tags ExternalCalendar
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param unit_id query string false "Filter by unit ID"
// @Success 200 {object} response.Data[dto.GetExternalCalendarsResponse] "List of external calendars"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/external-calendars [get]
// @Security BearerAuth
func (handler *Handler) GetExternalCalendars(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExternalCalendars")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sanitize(model.FieldName, model.FieldLastSynced, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if unitID := r.URL.Query().Get(model.FieldUnitID); unitID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldUnitID,
			Operator: gDto.FilterOperatorEq,
			Value:    unitID,
			Table:    model.TableName,
		})
	}

	calendars, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get external calendars")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, calendars)
}

// GetExternalCalendarByID retrieves a feed by its ID.
// @Summary Get an external calendar by ID
// @Tags ExternalCalendar
// @Produce json
// @Param id path string true "External Calendar ID"
// @Success 200 {object} response.Data[dto.ExternalCalendarResponse] "External calendar details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/external-calendars/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetExternalCalendarByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExternalCalendarByID")
	defer scope.End()

	calendar, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get external calendar by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, calendar)
}

// UpdateExternalCalendar updates a feed by its ID.
// @Summary Update an external calendar by ID
// @Tags ExternalCalendar
// @Accept json
// @Produce json
// @Param id path string true "External Calendar ID"
// @Param request body dto.UpdateExternalCalendarRequest true "Update External Calendar Request"
// @Success 200 {object} response.Message "External calendar updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/external-calendars/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateExternalCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateExternalCalendar")
	defer scope.End()

	req := dto.UpdateExternalCalendarRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update external calendar")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "External calendar updated successfully")
}

// DeleteExternalCalendar stops syncing a feed. Nights it already closed stay closed.
// @Summary Delete an external calendar by ID
// @Tags ExternalCalendar
// @Produce json
// @Param id path string true "External Calendar ID"
// @Success 200 {object} response.Message "External calendar deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/external-calendars/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteExternalCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteExternalCalendar")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete external calendar")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "External calendar deleted successfully")
}

// SyncExternalCalendar imports the feed now.
// @Summary Sync an external calendar
// @Description Downloads the feed, closes the unit on every upcoming night an event covers and stamps last_synced.
// @Tags ExternalCalendar
// @Produce json
// @Param id path string true "External Calendar ID"
// @Success 200 {object} response.Data[dto.SyncResponse] "Sync result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/external-calendars/{id}/sync [post]
// @Security BearerAuth
func (handler *Handler) SyncExternalCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SyncExternalCalendar")
	defer scope.End()

	result, err := handler.service.Sync(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sync external calendar")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("External calendar synced by user " + user)

	response.WithJSON(w, http.StatusOK, result)
}
