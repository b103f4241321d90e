package campaign

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"rentdesk/infras/otel"
	"rentdesk/internal/domains/campaign/model"
	"rentdesk/internal/domains/campaign/model/dto"
	"rentdesk/internal/domains/campaign/service"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"rentdesk/shared/validator"
	"rentdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Campaign
	otel    otel.Otel
}

func New(service service.Campaign, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/campaigns", func(routerGroup chi.Router) {
		routerGroup.Post("/estimate", handler.EstimateCampaign)
		routerGroup.Post("/", handler.ScheduleCampaign)
		routerGroup.Get("/", handler.GetCampaigns)
		routerGroup.Get("/{id}", handler.GetCampaignByID)
		routerGroup.Post("/{id}/cancel", handler.CancelCampaign)
	})
}

// EstimateCampaign prices a campaign before it is scheduled.
// @Summary Estimate a campaign
// @Description An empty contact list selects every contact.
// @Tags Campaign
// @Accept json
// @Produce json
// @Param request body dto.EstimateRequest true "Estimate Request"
// @Success 200 {object} response.Data[dto.EstimateResponse] "Cost estimate"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/campaigns/estimate [post]
// @Security BearerAuth
func (handler *Handler) EstimateCampaign(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EstimateCampaign")
	defer scope.End()

	req := dto.EstimateRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	estimate, err := handler.service.Estimate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to estimate campaign")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, estimate)
}

// ScheduleCampaign handles the scheduling of a new campaign.
// @Summary Schedule a campaign
// @Description The payload field carries the JSON draft. The optional file is stored as the attachment.
// @Tags Campaign
// @Accept multipart/form-data
// @Produce json
// @Param payload formData string true "dto.ScheduleCampaignRequest as JSON"
// @Param file formData file false "Attachment (png, jpg, pdf, mp4)"
// @Success 201 {object} response.Data[response.Created] "Campaign scheduled successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/campaigns [post]
// @Security BearerAuth
func (handler *Handler) ScheduleCampaign(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ScheduleCampaign")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		err = failure.BadRequest(fmt.Errorf("failed to parse multipart form: %w", err))

		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.ScheduleCampaignRequest{}

	if err := json.Unmarshal([]byte(request.FormValue(constant.FormPayload)), &req); err != nil {
		err = failure.BadRequest(fmt.Errorf("failed to decode campaign payload: %w", err))

		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode campaign payload")
		response.WithError(writer, err)

		return
	}

	file, fileHeader, err := request.FormFile(constant.FormFile)
	switch {
	case err == nil:
		req.Attachment = fileHeader
		req.File = file

		defer file.Close()
	case !errors.Is(err, http.ErrMissingFile):
		err = failure.BadRequest(err)

		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read campaign attachment")
		response.WithError(writer, err)

		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Schedule(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to schedule campaign")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Campaign scheduled successfully by user " + user)

	response.WithCreated(writer, id, "Campaign scheduled successfully")
}

// GetCampaigns retrieves campaigns.
// @Summary Get all campaigns
// @Tags Campaign
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (Scheduled, Cancelled, Sent)"
// @Success 200 {object} response.Data[dto.GetCampaignsResponse] "List of campaigns"
// @Failure 500 {object} response.Error
// @Router /v1/campaigns [get]
// @Security BearerAuth
func (handler *Handler) GetCampaigns(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCampaigns")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sanitize(model.FieldName, model.FieldScheduledAt, model.FieldStatus, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	campaigns, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get campaigns")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, campaigns)
}

// GetCampaignByID retrieves a campaign by its ID.
// @Summary Get a campaign by ID
// @Tags Campaign
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} response.Data[dto.CampaignResponse] "Campaign details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/campaigns/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCampaignByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCampaignByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	campaign, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get campaign by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, campaign)
}

// CancelCampaign withdraws a scheduled campaign.
// @Summary Cancel a campaign by ID
// @Tags Campaign
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} response.Message "Campaign cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/campaigns/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelCampaign(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelCampaign")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel campaign")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Campaign cancelled successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Campaign cancelled successfully")
}
