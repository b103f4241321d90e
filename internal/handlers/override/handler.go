package override

import (
	"net/http"

	"rentdesk/infras/otel"
	"rentdesk/internal/domains/override/model"
	"rentdesk/internal/domains/override/model/dto"
	"rentdesk/internal/domains/override/service"
	"rentdesk/shared/constant"
	"rentdesk/shared/daterange"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"rentdesk/shared/validator"
	"rentdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	requestParamUnitID   = "unit_id"
	requestParamActiveOn = "active_on"
)

type Handler struct {
	service service.Override
	otel    otel.Otel
}

func New(service service.Override, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pricing-overrides", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateOverride)
		routerGroup.Get("/", handler.GetOverrides)
		routerGroup.Get("/{id}", handler.GetOverrideByID)
		routerGroup.Patch("/{id}", handler.UpdateOverride)
		routerGroup.Delete("/{id}", handler.DeleteOverride)
	})
}

// CreateOverride handles the creation of a period pricing override.
// @Summary Create a pricing override
// @Description Price every night from start_date to end_date, both included, for the listed units.
// @Tags PricingOverride
// @Accept json
// @Produce json
// @Param request body dto.CreateOverrideRequest true "Create Override Request"
// @Success 201 {object} response.Data[response.Created] "Pricing override created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing-overrides [post]
// @Security BearerAuth
func (handler *Handler) CreateOverride(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOverride")
	defer scope.End()

	req := dto.CreateOverrideRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create pricing override")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Pricing override created successfully by user " + user)

	response.WithCreated(writer, id, "Pricing override created successfully")
}

// GetOverrides retrieves pricing overrides.
// @Summary Get all pricing overrides
// @Tags PricingOverride
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param unit_id query string false "Only overrides that price this unit"
// @Param active_on query string false "Only overrides covering this date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetOverridesResponse] "List of pricing overrides"
// @Failure 500 {object} response.Error
// @Router /v1/pricing-overrides [get]
// @Security BearerAuth
func (handler *Handler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverrides")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sanitize(model.FieldName, model.FieldStartDate, model.FieldEndDate, model.FieldPrice, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if unitID := r.URL.Query().Get(requestParamUnitID); unitID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldUnitIDs,
			ArgName:  requestParamUnitID,
			Operator: gDto.FilterOperatorAny,
			Value:    unitID,
			Table:    model.TableName,
		})
	}

	if raw := r.URL.Query().Get(requestParamActiveOn); raw != constant.Empty {
		day, err := daterange.Parse(raw)
		if err != nil {
			err = failure.BadRequestFromString(requestParamActiveOn + " must be formatted as YYYY-MM-DD")

			scope.TraceError(err)
			response.WithError(w, err)

			return
		}

		filterGroup.Filters = append(filterGroup.Filters,
			gDto.Filter{Field: model.FieldStartDate, ArgName: "active_from", Operator: gDto.FilterOperatorLessEq, Value: day, Table: model.TableName},
			gDto.Filter{Field: model.FieldEndDate, ArgName: "active_to", Operator: gDto.FilterOperatorGreaterEq, Value: day, Table: model.TableName},
		)
	}

	overrides, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pricing overrides")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, overrides)
}

// GetOverrideByID retrieves a pricing override by its ID.
// @Summary Get a pricing override by ID
// @Tags PricingOverride
// @Produce json
// @Param id path string true "Override ID"
// @Success 200 {object} response.Data[dto.OverrideResponse] "Pricing override details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing-overrides/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetOverrideByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverrideByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	override, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get pricing override by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, override)
}

// UpdateOverride updates an existing pricing override.
// @Summary Update a pricing override by ID
// @Tags PricingOverride
// @Accept json
// @Produce json
// @Param id path string true "Override ID"
// @Param request body dto.UpdateOverrideRequest true "Update Override Request"
// @Success 200 {object} response.Message "Pricing override updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing-overrides/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateOverride(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOverride")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateOverrideRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update pricing override")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Pricing override updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Pricing override updated successfully")
}

// DeleteOverride deletes a pricing override.
// @Summary Delete a pricing override by ID
// @Tags PricingOverride
// @Produce json
// @Param id path string true "Override ID"
// @Success 200 {object} response.Message "Pricing override deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pricing-overrides/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOverride")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete pricing override")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Pricing override deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Pricing override deleted successfully")
}
