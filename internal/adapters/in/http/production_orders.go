package http

import (
	"errors"
	"fmt"
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ListProductionOrders handles GET /api/production-orders.
func (s *Server) ListProductionOrders(c echo.Context) error {
	rawState, err := queryString(c, "state")
	if err != nil {
		return s.fail(c, err)
	}
	rawStage, err := queryString(c, "service_current")
	if err != nil {
		return s.fail(c, err)
	}
	search, err := queryString(c, "q")
	if err != nil {
		return s.fail(c, err)
	}

	var state *kernel.ProductionState
	if rawState != nil {
		v, parseErr := kernel.ParseProductionState(*rawState)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		state = &v
	}
	var stage *kernel.ServiceStage
	if rawStage != nil {
		v, parseErr := kernel.ParseServiceStage(*rawStage)
		if parseErr != nil {
			return s.fail(c, parseErr)
		}
		stage = &v
	}
	var q string
	if search != nil {
		q = *search
	}

	query, err := queries.NewListProductionOrdersQuery(state, stage, q)
	if err != nil {
		return s.fail(c, err)
	}
	orders, err := s.handlers.ListProductionOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]ProductionOrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, newOrderSummaryResponse(o))
	}
	return c.JSON(http.StatusOK, response)
}

// CreateProductionOrder handles POST /api/production-orders.
func (s *Server) CreateProductionOrder(c echo.Context) error {
	var req NewProductionOrderRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	stage, stageErr := optionalStage(req.ServiceCurrent)
	state, stateErr := optionalState(req.State)
	if err := errors.Join(stageErr, stateErr); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateProductionOrderCommand(kernel.NewUUID(), req.Code, req.details(), stage, state)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.CreateProductionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, newOrderResponse(o))
}

// GetProductionOrder handles GET /api/production-orders/:id.
func (s *Server) GetProductionOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.getOrderView(c, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderDetailResponse(view))
}

// UpdateProductionOrder handles PATCH /api/production-orders/:id. It edits the header
// and may override stage and state; issue can be neither set nor left this way.
func (s *Server) UpdateProductionOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req ProductionOrderPatchRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	stage, stageErr := optionalStage(req.ServiceCurrent)
	state, stateErr := optionalState(req.State)
	if err = errors.Join(stageErr, stateErr); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateProductionOrderCommand(orderID, req.patch(), stage, state)
	if err != nil {
		return s.fail(c, err)
	}
	if _, err = s.handlers.UpdateProductionOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	view, err := s.getOrderView(c, orderID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newOrderSummaryResponse(view.ProductionOrderSummary))
}

// DeleteProductionOrder handles DELETE /api/production-orders/:id.
func (s *Server) DeleteProductionOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeleteProductionOrderCommand(orderID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.DeleteProductionOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ImportFromSales handles POST /api/production-orders/:id/import-from-sales.
func (s *Server) ImportFromSales(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewImportFromSalesCommand(orderID)
	if err != nil {
		return s.fail(c, err)
	}
	result, err := s.handlers.ImportFromSales.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, newImportResultResponse(result))
}

// ExportProductionOrder handles GET /api/production-orders/:id/export.
func (s *Server) ExportProductionOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewExportProductionOrderQuery(orderID)
	if err != nil {
		return s.fail(c, err)
	}
	workbook, err := s.handlers.ExportProductionOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", workbook.FileName))
	return c.Blob(http.StatusOK, xlsxContentType, workbook.Content)
}

func (s *Server) getOrderView(c echo.Context, orderID kernel.UUID) (queries.ProductionOrderView, error) {
	query, err := queries.NewGetProductionOrderQuery(orderID)
	if err != nil {
		return queries.ProductionOrderView{}, err
	}
	return s.handlers.GetProductionOrder.Handle(c.Request().Context(), query)
}
