package unit

import (
	"net/http"

	"rentdesk/infras/otel"
	"rentdesk/internal/domains/unit/model"
	"rentdesk/internal/domains/unit/model/dto"
	"rentdesk/internal/domains/unit/service"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/scope"
	"rentdesk/shared/validator"
	"rentdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Unit
	otel    otel.Otel
}

func New(service service.Unit, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/units", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateUnit)
		routerGroup.Get("/", handler.GetUnits)
		routerGroup.Get("/{id}", handler.GetUnitByID)
		routerGroup.Patch("/{id}", handler.UpdateUnit)
		routerGroup.Put("/{id}/special-prices", handler.SetSpecialPrice)
		routerGroup.Delete("/{id}", handler.DeleteUnit)
	})
}

// CreateUnit handles the creation of a new rental unit.
// @Summary Create a new unit
// @Description Create a unit inside an existing group, with its weekday and special-date pricing.
// @Tags Unit
// @Accept json
// @Produce json
// @Param request body dto.CreateUnitRequest true "Create Unit Request"
// @Success 201 {object} response.Data[response.Created] "Unit created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units [post]
// @Security BearerAuth
func (handler *Handler) CreateUnit(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUnit")
	defer scope.End()

	req := dto.CreateUnitRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create unit")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Unit created successfully by user " + user)

	response.WithCreated(writer, id, "Unit created successfully")
}

// GetUnits retrieves the units visible in a group scope.
// @Summary Get all units
// @Description Retrieve units with optional group scope, filtering and pagination.
// @Tags Unit
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param group_id query string false "Group ID or 'all'"
// @Param name query string false "Filter by name"
// @Param unit_type query string false "Filter by unit type"
// @Param status query string false "Filter by status (Active, Inactive)"
// @Success 200 {object} response.Data[dto.GetUnitsResponse] "List of units"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units [get]
// @Security BearerAuth
func (handler *Handler) GetUnits(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnits")
	defer span.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sanitize(model.FieldName, model.FieldType, model.FieldBaseRate, constant.FieldCreatedAt)

	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  scope.FromRequest(r).Filter(model.FieldGroupID, model.TableName).Filters,
	}

	if name := query.Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	for _, field := range []string{model.FieldType, model.FieldStatus} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	units, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		span.TraceError(err)
		log.Error().Err(err).Msg("failed to get units")

		response.WithError(w, err)

		return
	}

	span.AddEvent("Units retrieved successfully")

	response.WithJSON(w, http.StatusOK, units)
}

// GetUnitByID retrieves a unit by its ID.
// @Summary Get a unit by ID
// @Tags Unit
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} response.Data[dto.UnitResponse] "Unit details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUnitByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnitByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	unit, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get unit by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, unit)
}

// UpdateUnit updates an existing unit by its ID.
// @Summary Update a unit by ID
// @Tags Unit
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param request body dto.UpdateUnitRequest true "Update Unit Request"
// @Success 200 {object} response.Message "Unit updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUnit")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateUnitRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update unit")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Unit updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Unit updated successfully")
}

// SetSpecialPrice pins or clears the price of one date for a unit.
// @Summary Set a special-date price
// @Description A null price removes the special date.
// @Tags Unit
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param request body dto.SpecialPriceRequest true "Special Price Request"
// @Success 200 {object} response.Message "Special price saved successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/{id}/special-prices [put]
// @Security BearerAuth
func (handler *Handler) SetSpecialPrice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetSpecialPrice")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.SpecialPriceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetSpecialPrice(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set special price")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Special price saved successfully")
}

// DeleteUnit deletes a unit together with its bookings.
// @Summary Delete a unit by ID
// @Tags Unit
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} response.Message "Unit deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/units/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUnit")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete unit")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Unit deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Unit deleted successfully")
}
