package groupconfig

import (
	"net/http"

	"rentdesk/infras/otel"
	"rentdesk/internal/domains/groupconfig/model/dto"
	"rentdesk/internal/domains/groupconfig/service"
	"rentdesk/shared/constant"
	"rentdesk/shared/scope"
	"rentdesk/shared/validator"
	"rentdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.GroupConfig
	otel    otel.Otel
}

func New(service service.GroupConfig, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings", func(routerGroup chi.Router) {
		routerGroup.Get("/ai", handler.GetAIConfig)
		routerGroup.Put("/ai", handler.SaveAIConfig)
		routerGroup.Get("/website", handler.GetWebsiteConfig)
		routerGroup.Put("/website", handler.SaveWebsiteConfig)
	})
}

// GetAIConfig
// @Summary Get the AI agent config of a group
// @Tags Settings
// @Produce json
// @Param group_id query string false "Group ID or 'all'"
// @Success 200 {object} response.Data[dto.AIConfigResponse] "AI agent config"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/ai [get]
// @Security BearerAuth
func (handler *Handler) GetAIConfig(w http.ResponseWriter, r *http.Request) {
	key := scope.FromRequest(r)

	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAIConfig")
	defer scope.End()

	config, err := handler.service.GetAI(ctx, key)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get ai config")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, config)
}

// SaveAIConfig replaces the AI agent config of a group, creating it on first save.
// @Summary Save the AI agent config of a group
// @Tags Settings
// @Accept json
// @Produce json
// @Param group_id query string false "Group ID or 'all'"
// @Param request body dto.AIConfigRequest true "AI Config Request"
// @Success 200 {object} response.Data[dto.SaveResponse] "AI agent config saved"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/ai [put]
// @Security BearerAuth
func (handler *Handler) SaveAIConfig(w http.ResponseWriter, r *http.Request) {
	key := scope.FromRequest(r)

	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SaveAIConfig")
	defer scope.End()

	req := dto.AIConfigRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SaveAI(ctx, key, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save ai config")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetWebsiteConfig
// @Summary Get the website config of a group
// @Tags Settings
// @Produce json
// @Param group_id query string false "Group ID or 'all'"
// @Success 200 {object} response.Data[dto.WebsiteConfigResponse] "Website config"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/website [get]
// @Security BearerAuth
func (handler *Handler) GetWebsiteConfig(w http.ResponseWriter, r *http.Request) {
	key := scope.FromRequest(r)

	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWebsiteConfig")
	defer scope.End()

	config, err := handler.service.GetWebsite(ctx, key)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get website config")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, config)
}

// SaveWebsiteConfig replaces the website config of a group, creating it on first save.
// @Summary Save the website config of a group
// @Tags Settings
// @Accept json
// @Produce json
// @Param group_id query string false "Group ID or 'all'"
// @Param request body dto.WebsiteConfigRequest true "Website Config Request"
// @Success 200 {object} response.Data[dto.SaveResponse] "Website config saved"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/website [put]
// @Security BearerAuth
func (handler *Handler) SaveWebsiteConfig(w http.ResponseWriter, r *http.Request) {
	key := scope.FromRequest(r)

	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SaveWebsiteConfig")
	defer scope.End()

	req := dto.WebsiteConfigRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SaveWebsite(ctx, key, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save website config")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
