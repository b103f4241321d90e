package dashboard

import (
	"net/http"

	"rentdesk/infras/otel"
	"rentdesk/internal/domains/dashboard/model/dto"
	"rentdesk/internal/domains/dashboard/service"
	"rentdesk/shared/constant"
	"rentdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetOverview)
		routerGroup.Get("/export", handler.ExportOverview)
	})
}

// GetOverview summarizes bookings for a group scope and window.
// @Summary Get the dashboard overview
// @Description Totals, occupancy, monthly chart and the latest bookings. The window defaults to the current month.
// @Tags Dashboard
// @Produce json
// @Param group_id query string false "Group ID or 'all'"
// @Param from query string false "First day, inclusive (YYYY-MM-DD)"
// @Param to query string false "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.OverviewResponse] "Dashboard overview"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverview")
	defer scope.End()

	query := dto.Query{}
	if err := query.FromRequest(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse dashboard query")

		response.WithError(w, err)

		return
	}

	overview, err := handler.service.Overview(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard overview")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, overview)
}

// ExportOverview downloads the overview and its bookings as a spreadsheet.
// @Summary Export the dashboard
// @Tags Dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param group_id query string false "Group ID or 'all'"
// @Param from query string false "First day, inclusive (YYYY-MM-DD)"
// @Param to query string false "Last day, inclusive (YYYY-MM-DD)"
// @Success 200 {file} file "XLSX report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/export [get]
// @Security BearerAuth
func (handler *Handler) ExportOverview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportOverview")
	defer scope.End()

	query := dto.Query{}
	if err := query.FromRequest(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse dashboard query")

		response.WithError(w, err)

		return
	}

	report, err := handler.service.Export(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export dashboard")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, constant.ContentTypeXLSX, report.FileName, report.Content)
}
