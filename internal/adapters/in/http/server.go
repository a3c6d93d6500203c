package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"production/internal/adapters/in/http/openapi"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/pkg/errs"

	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateProductionOrder commands.CreateProductionOrderCommandHandler
	UpdateProductionOrder commands.UpdateProductionOrderCommandHandler
	DeleteProductionOrder commands.DeleteProductionOrderCommandHandler
	CreateLine            commands.CreateLineCommandHandler
	UpdateLine            commands.UpdateLineCommandHandler
	AdvanceLine           commands.AdvanceLineCommandHandler
	DeleteLine            commands.DeleteLineCommandHandler
	UpsertLineSize        commands.UpsertLineSizeCommandHandler
	DeleteLineSize        commands.DeleteLineSizeCommandHandler
	CreateAnomaly         commands.CreateAnomalyCommandHandler
	UpdateAnomaly         commands.UpdateAnomalyCommandHandler
	DeleteAnomaly         commands.DeleteAnomalyCommandHandler
	ImportFromSales       commands.ImportFromSalesCommandHandler
	ReconcileOrders       commands.ReconcileOrdersCommandHandler

	ListProductionOrders  queries.ListProductionOrdersQueryHandler
	GetProductionOrder    queries.GetProductionOrderQueryHandler
	ExportProductionOrder queries.ExportProductionOrderQueryHandler
	ListSalesOrders       queries.ListSalesOrdersQueryHandler
	GetSalesOrder         queries.GetSalesOrderQueryHandler
}

// Server translates HTTP requests into commands and queries and their results into
// JSON responses.
type Server struct {
	handlers Handlers
	router   routers.Router
	logger   *slog.Logger
}

// NewServer loads the embedded OpenAPI document used for request validation.
func NewServer(ctx context.Context, handlers Handlers, logger *slog.Logger) (*Server, error) {
	doc, err := openapi.Load(ctx)
	if err != nil {
		return nil, err
	}
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	return &Server{
		handlers: handlers,
		router:   router,
		logger:   logger.With("component", "http_server"),
	}, nil
}

// Register installs middleware, the API routes and the operational endpoints on e.
func (s *Server) Register(e *echo.Echo) {
	e.HideBanner = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = s.HTTPErrorHandler

	e.Use(metricsMiddleware)
	e.Use(requestLogger(s.logger))

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/openapi.yaml", s.OpenAPIDocument)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))

	api := e.Group("/api", s.validateRequest)

	api.GET("/production-orders", s.ListProductionOrders)
	api.POST("/production-orders", s.CreateProductionOrder)
	api.GET("/production-orders/:id", s.GetProductionOrder)
	api.PATCH("/production-orders/:id", s.UpdateProductionOrder)
	api.DELETE("/production-orders/:id", s.DeleteProductionOrder)
	api.POST("/production-orders/:id/lines", s.CreateLine)
	api.POST("/production-orders/:id/import-from-sales", s.ImportFromSales)
	api.GET("/production-orders/:id/export", s.ExportProductionOrder)

	api.PATCH("/production-order-lines/:lineId", s.UpdateLine)
	api.DELETE("/production-order-lines/:lineId", s.DeleteLine)
	api.POST("/production-order-lines/:lineId/advance", s.AdvanceLine)
	api.PUT("/production-order-lines/:lineId/sizes/:size", s.UpsertLineSize)
	api.DELETE("/production-order-lines/:lineId/sizes/:size", s.DeleteLineSize)

	api.POST("/anomalies", s.CreateAnomaly)
	api.PATCH("/anomalies/:id", s.UpdateAnomaly)
	api.DELETE("/anomalies/:id", s.DeleteAnomaly)

	api.GET("/sales-orders", s.ListSalesOrders)
	api.GET("/sales-orders/:code", s.GetSalesOrder)

	api.POST("/reconcile", s.ReconcileOrders)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// OpenAPIDocument handles GET /openapi.yaml.
func (s *Server) OpenAPIDocument(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", openapi.Document)
}

// bind decodes the JSON body into dst and runs struct validation on it.
func bind(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return c.Validate(dst)
}
