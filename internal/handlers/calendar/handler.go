package calendar

import (
	"net/http"

	"rentdesk/infras/otel"
	"rentdesk/internal/domains/calendar/model/dto"
	"rentdesk/internal/domains/calendar/service"
	"rentdesk/shared/constant"
	"rentdesk/shared/validator"
	"rentdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Calendar
	otel    otel.Otel
}

func New(service service.Calendar, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/calendar", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMonth)
		routerGroup.Put("/prices", handler.AdjustPrices)
		routerGroup.Post("/closures", handler.CloseUnits)
		routerGroup.Get("/units/{id}/feed.ics", handler.GetUnitFeed)
	})
}

// GetMonth renders the month grid.
// @Summary Get a calendar month
// @Description Sunday-aligned weeks with each day's bookings, free units and cheapest available price.
// @Tags Calendar
// @Produce json
// @Param year query int false "Year, defaults to the current year"
// @Param month query int false "Month 1-12, defaults to the current month"
// @Param group_id query string false "Group ID or 'all'"
// @Param unit_ids query string false "Comma separated unit IDs"
// @Success 200 {object} response.Data[dto.MonthResponse] "Calendar month"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/calendar [get]
// @Security BearerAuth
func (handler *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonth")
	defer scope.End()

	query := dto.MonthQuery{}
	if err := query.FromRequest(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse calendar query")

		response.WithError(w, err)

		return
	}

	month, err := handler.service.Month(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get calendar month")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, month)
}

// AdjustPrices pins per-unit prices on one date.
// @Summary Adjust day prices
// @Tags Calendar
// @Accept json
// @Produce json
// @Param request body dto.AdjustPricesRequest true "Adjust Prices Request"
// @Success 200 {object} response.Message "Prices adjusted successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/calendar/prices [put]
// @Security BearerAuth
func (handler *Handler) AdjustPrices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdjustPrices")
	defer scope.End()

	req := dto.AdjustPricesRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AdjustPrices(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to adjust prices")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Prices adjusted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Prices adjusted successfully")
}

// CloseUnits blocks units for one night.
// @Summary Close units for a day
// @Description Units already occupied that night are reported as skipped.
// @Tags Calendar
// @Accept json
// @Produce json
// @Param request body dto.CloseUnitsRequest true "Close Units Request"
// @Success 200 {object} response.Data[dto.CloseUnitsResponse] "Closure result"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/calendar/closures [post]
// @Security BearerAuth
func (handler *Handler) CloseUnits(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CloseUnits")
	defer scope.End()

	req := dto.CloseUnitsRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CloseUnits(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to close units")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetUnitFeed publishes a unit's held nights for other booking channels to import.
// @Summary Get a unit's iCal feed
// @Description All-day events for every night the unit is booked or closed, without guest details.
// @Tags Calendar
// @Produce text/calendar
// @Param id path string true "Unit ID"
// @Success 200 {file} file "iCalendar document"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/calendar/units/{id}/feed.ics [get]
func (handler *Handler) GetUnitFeed(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnitFeed")
	defer scope.End()

	feed, err := handler.service.Feed(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build unit feed")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, constant.ContentTypeICal, feed.FileName, feed.Content)
}
