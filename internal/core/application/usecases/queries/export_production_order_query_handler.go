package queries

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	orderSheet     = "Order"
	linesSheet     = "Lines"
	anomaliesSheet = "Anomalies"
	dateLayout     = "2006-01-02"
)

type ExportProductionOrderQueryHandler struct {
	orders GetProductionOrderQueryHandler
}

func NewExportProductionOrderQueryHandler(orders GetProductionOrderQueryHandler) ExportProductionOrderQueryHandler {
	return ExportProductionOrderQueryHandler{orders: orders}
}

func (h ExportProductionOrderQueryHandler) Handle(ctx context.Context, query ExportProductionOrderQuery) (ExportedWorkbook, error) {
	if err := query.Validate(); err != nil {
		return ExportedWorkbook{}, err
	}

	get, err := NewGetProductionOrderQuery(query.OrderID())
	if err != nil {
		return ExportedWorkbook{}, err
	}

	view, err := h.orders.Handle(ctx, get)
	if err != nil {
		return ExportedWorkbook{}, err
	}

	content, err := RenderProductionOrderWorkbook(view)
	if err != nil {
		return ExportedWorkbook{}, fmt.Errorf("render workbook: %w", err)
	}

	return ExportedWorkbook{
		FileName: view.Code + ".xlsx",
		Content:  content,
	}, nil
}

// RenderProductionOrderWorkbook writes the order header, one row per line and size,
// and the anomalies to three sheets.
func RenderProductionOrderWorkbook(view ProductionOrderView) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", orderSheet); err != nil {
		return nil, err
	}
	for _, sheet := range []string{linesSheet, anomaliesSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, err
	}

	orderRows := [][]any{
		{"Code", view.Code},
		{"Sale ref", view.SaleRef},
		{"Customer", view.CustomerName},
		{"Service", view.ServiceCurrent.String()},
		{"State", view.State.String()},
		{"Order date", formatDate(view.DateOrder)},
		{"Delivery requested", formatDate(view.DateDeliveryRequested)},
		{"Planned start", formatDate(view.DateStartPlan)},
		{"Estimated end", formatDate(view.DateEndEstimated)},
	}
	if err = writeRows(f, orderSheet, orderRows); err != nil {
		return nil, err
	}
	if err = f.SetCellStyle(orderSheet, "A1", fmt.Sprintf("A%d", len(orderRows)), headerStyle); err != nil {
		return nil, err
	}

	lineRows := [][]any{{
		"Line", "Article", "Color", "Size", "Ordered", "To produce", "Produced", "Defect", "Service", "State",
	}}
	for _, l := range view.Lines {
		lineRows = append(lineRows, []any{
			l.Code, l.ArticleRef, l.Color, "",
			l.QtyOrdered, l.QtyToProduce, l.QtyProduced, l.QtyDefect,
			l.ServiceCurrent.String(), l.State.String(),
		})
		for _, s := range l.Sizes {
			lineRows = append(lineRows, []any{
				l.Code, l.ArticleRef, l.Color, s.Size,
				s.QtyOrdered, s.QtyToProduce, s.QtyProduced, s.QtyDefect,
				"", "",
			})
		}
	}
	if err = writeTable(f, linesSheet, lineRows, headerStyle); err != nil {
		return nil, err
	}

	anomalyRows := [][]any{{"Line", "Service", "Severity", "Blocking", "Resolved", "Description", "Reported"}}
	for _, a := range view.Anomalies {
		anomalyRows = append(anomalyRows, []any{
			a.LineCode,
			a.Service.String(),
			a.Severity.String(),
			yesNo(a.IsBlocking),
			yesNo(a.Resolved),
			a.Description,
			a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	if err = writeTable(f, anomaliesSheet, anomalyRows, headerStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeTable writes rows with the first one styled as a frozen header.
func writeTable(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err = f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
