package http

import (
	"errors"
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateAnomaly handles POST /api/anomalies. At least one of the order and line targets
// is required; a line-only anomaly is attached to the line's order.
func (s *Server) CreateAnomaly(c echo.Context) error {
	var req NewAnomalyRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	orderID, orderErr := optionalUUID(req.ProductionOrderID, "production_order_id")
	lineID, lineErr := optionalUUID(req.ProductionOrderLineID, "production_order_line_id")
	service, serviceErr := kernel.ParseServiceStage(req.Service)
	severity, severityErr := anomaly.ParseSeverity(req.Severity)
	if err := errors.Join(orderErr, lineErr, serviceErr, severityErr); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateAnomalyCommand(orderID, lineID, service, severity, req.Description, req.IsBlocking)
	if err != nil {
		return s.fail(c, err)
	}
	a, err := s.handlers.CreateAnomaly.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, newAnomalyResponse(a))
}

// UpdateAnomaly handles PATCH /api/anomalies/:id.
func (s *Server) UpdateAnomaly(c echo.Context) error {
	anomalyID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req AnomalyPatchRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	patch := commands.AnomalyPatch{
		Description: req.Description,
		IsBlocking:  req.IsBlocking,
		Resolved:    req.Resolved,
	}
	if req.Service != nil {
		service, parseErr := kernel.ParseServiceStage(*req.Service)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		patch.Service = &service
	}
	if req.Severity != nil {
		severity, parseErr := anomaly.ParseSeverity(*req.Severity)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		patch.Severity = &severity
	}

	cmd, err := commands.NewUpdateAnomalyCommand(anomalyID, patch)
	if err != nil {
		return s.fail(c, err)
	}
	a, err := s.handlers.UpdateAnomaly.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newAnomalyResponse(a))
}

// DeleteAnomaly handles DELETE /api/anomalies/:id.
func (s *Server) DeleteAnomaly(c echo.Context) error {
	anomalyID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeleteAnomalyCommand(anomalyID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.DeleteAnomaly.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
