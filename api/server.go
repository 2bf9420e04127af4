package api

import (
	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/labnet/testledger/config"
	"github.com/labnet/testledger/errors"
)

func NewServer(handler *Handler, healthCheck *HealthCheck, cfg *config.Config, gatherer prometheus.Gatherer, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Skip scoping and logging for readiness probe and metrics routes
	skipper := RouteSkipper([]string{"/ready", "/metrics"})

	e.Use(middleware.Recover())
	e.Use(WithSkipper(skipper, echozap.ZapLogger(logger)))

	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	e.GET("/ready", healthCheck.Ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// The patient facing routes are authenticated by the patient link itself
	pxp := e.Group("/v1/pxp")
	pxp.PUT("/link/verify", handler.VerifyPatientLink)
	pxp.PUT("/questions", handler.SubmitPatientSurvey)

	v1 := e.Group("/v1", NewScopeMiddleware(ScopeMiddlewareOpts{Skipper: skipper}))
	RegisterHandlers(v1, handler, cfg)

	return e
}

func RegisterHandlers(g *echo.Group, h *Handler, cfg *config.Config) {
	g.POST("/facilities/:facilityId/queue", h.Enqueue)
	g.GET("/facilities/:facilityId/queue", h.ListQueue)
	g.DELETE("/patients/:patientId/queue", h.CancelOrder)
	g.PUT("/patients/:patientId/queue/survey", h.UpdateSurvey)

	g.POST("/facilities/:facilityId/results", h.SubmitResult)
	g.GET("/facilities/:facilityId/results", h.ListResults)
	g.GET("/facilities/:facilityId/results/count", h.CountResults)
	g.GET("/facilities/:facilityId/results/report.xlsx", h.FacilityResultsReport)
	g.GET("/patients/:patientId/results/latest", h.LatestResult)
	g.POST("/results/:eventId/corrections", h.CorrectResult)

	g.POST("/facilities/:facilityId/summary", h.Summarize)
	g.GET("/facilities/:facilityId/demographics", h.DemographicValues)

	g.POST("/organizations/:organizationId/queue/cancel", h.CancelAllOrders, RequireSiteAdmin(cfg))
}
