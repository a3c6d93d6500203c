package http

import (
	"net/http"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListSalesOrders handles GET /api/sales-orders.
func (s *Server) ListSalesOrders(c echo.Context) error {
	search, err := queryString(c, "q")
	if err != nil {
		return s.fail(c, err)
	}
	var q string
	if search != nil {
		q = *search
	}

	orders, err := s.handlers.ListSalesOrders.Handle(c.Request().Context(), queries.NewListSalesOrdersQuery(q))
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]SalesOrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, newSalesOrderResponse(o))
	}
	return c.JSON(http.StatusOK, response)
}

// GetSalesOrder handles GET /api/sales-orders/:code.
func (s *Server) GetSalesOrder(c echo.Context) error {
	code, err := pathString(c, "code")
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetSalesOrderQuery(code)
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.handlers.GetSalesOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newSalesOrderDetailResponse(view))
}

// ReconcileOrders handles POST /api/reconcile. Without a body every order is checked.
func (s *Server) ReconcileOrders(c echo.Context) error {
	var req ReconcileRequest
	if err := bind(c, &req); err != nil {
		return s.fail(c, err)
	}
	orderID, err := optionalUUID(req.ProductionOrderID, "production_order_id")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewReconcileOrdersCommand(orderID)
	if err != nil {
		return s.fail(c, err)
	}
	result, err := s.handlers.ReconcileOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, ReconcileResponse{Checked: result.Checked, Corrected: result.Corrected})
}
