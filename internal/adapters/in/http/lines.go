package http

import (
	"errors"
	"net/http"

	"production/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// CreateLine handles POST /api/production-orders/:id/lines. The sequence and code are
// allocated by the server.
func (s *Server) CreateLine(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	var req NewLineRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateLineCommand(orderID, req.ArticleRef, req.Color, *req.QtyOrdered, req.QtyToProduce)
	if err != nil {
		return s.fail(c, err)
	}
	l, err := s.handlers.CreateLine.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, newLineResponse(l))
}

// UpdateLine handles PATCH /api/production-order-lines/:lineId.
func (s *Server) UpdateLine(c echo.Context) error {
	lineID, err := pathUUID(c, "lineId")
	if err != nil {
		return s.fail(c, err)
	}
	var req LinePatchRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	stage, stageErr := optionalStage(req.ServiceCurrent)
	state, stateErr := optionalState(req.State)
	if err = errors.Join(stageErr, stateErr); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateLineCommand(lineID, req.edit(), stage, state)
	if err != nil {
		return s.fail(c, err)
	}
	l, err := s.handlers.UpdateLine.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newLineResponse(l))
}

// DeleteLine handles DELETE /api/production-order-lines/:lineId.
func (s *Server) DeleteLine(c echo.Context) error {
	lineID, err := pathUUID(c, "lineId")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeleteLineCommand(lineID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.DeleteLine.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AdvanceLine handles POST /api/production-order-lines/:lineId/advance.
func (s *Server) AdvanceLine(c echo.Context) error {
	lineID, err := pathUUID(c, "lineId")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAdvanceLineCommand(lineID)
	if err != nil {
		return s.fail(c, err)
	}
	l, err := s.handlers.AdvanceLine.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newLineResponse(l))
}

// UpsertLineSize handles PUT /api/production-order-lines/:lineId/sizes/:size.
func (s *Server) UpsertLineSize(c echo.Context) error {
	lineID, err := pathUUID(c, "lineId")
	if err != nil {
		return s.fail(c, err)
	}
	size, err := pathString(c, "size")
	if err != nil {
		return s.fail(c, err)
	}
	var req SizeUpsertRequest
	if err = bind(c, &req); err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpsertLineSizeCommand(lineID, size, *req.QtyOrdered, req.QtyToProduce)
	if err != nil {
		return s.fail(c, err)
	}
	sizes, err := s.handlers.UpsertLineSize.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, newSizeResponses(sizes))
}

// DeleteLineSize handles DELETE /api/production-order-lines/:lineId/sizes/:size.
func (s *Server) DeleteLineSize(c echo.Context) error {
	lineID, err := pathUUID(c, "lineId")
	if err != nil {
		return s.fail(c, err)
	}
	size, err := pathString(c, "size")
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDeleteLineSizeCommand(lineID, size)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.DeleteLineSize.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
