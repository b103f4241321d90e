package group

import (
	"net/http"

	"rentdesk/infras/otel"
	"rentdesk/internal/domains/group/model"
	"rentdesk/internal/domains/group/model/dto"
	"rentdesk/internal/domains/group/service"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/validator"
	"rentdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Group
	otel    otel.Otel
}

func New(service service.Group, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/groups", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateGroup)
		routerGroup.Get("/", handler.GetGroups)
		routerGroup.Get("/{id}", handler.GetGroupByID)
		routerGroup.Patch("/{id}", handler.UpdateGroup)
		routerGroup.Delete("/{id}", handler.DeleteGroup)
	})
}

// CreateGroup handles the creation of a new unit group.
// @Summary Create a new group
// @Description Create a group that owns units, with its licensing and social details.
// @Tags Group
// @Accept json
// @Produce json
// @Param request body dto.CreateGroupRequest true "Create Group Request"
// @Success 201 {object} response.Data[response.Created] "Group created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/groups [post]
// @Security BearerAuth
func (handler *Handler) CreateGroup(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGroup")
	defer scope.End()

	req := dto.CreateGroupRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create group")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Group created successfully by user " + user)

	response.WithCreated(writer, id, "Group created successfully")
}

// GetGroups retrieves all groups based on query parameters.
// @Summary Get all groups
// @Description Retrieve all groups with optional filtering and pagination.
// @Tags Group
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param group_type query string false "Filter by group type"
// @Success 200 {object} response.Data[dto.GetGroupsResponse] "List of groups"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/groups [get]
// @Security BearerAuth
func (handler *Handler) GetGroups(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGroups")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sanitize(model.FieldName, model.FieldType, constant.FieldCreatedAt)

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

	if groupType := r.URL.Query().Get(model.FieldType); groupType != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldType,
			Operator: gDto.FilterOperatorEq,
			Value:    groupType,
			Table:    model.TableName,
		})
	}

	groups, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get groups")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Groups retrieved successfully")

	response.WithJSON(w, http.StatusOK, groups)
}

// GetGroupByID retrieves a group by its ID.
// @Summary Get a group by ID
// @Tags Group
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} response.Data[dto.GroupResponse] "Group details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/groups/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetGroupByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGroupByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	group, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get group by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, group)
}

// UpdateGroup updates an existing group by its ID.
// @Summary Update a group by ID
// @Tags Group
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body dto.UpdateGroupRequest true "Update Group Request"
// @Success 200 {object} response.Message "Group updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/groups/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGroup")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateGroupRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update group")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Group updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Group updated successfully")
}

// DeleteGroup deletes a group that no longer owns units.
// @Summary Delete a group by ID
// @Description Fails with 409 while units still belong to the group.
// @Tags Group
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} response.Message "Group deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/groups/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGroup")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete group")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Group deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Group deleted successfully")
}
