package http

import (
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/model/order"

	"github.com/oapi-codegen/runtime/types"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewProductionOrderRequest struct {
	Code                  string      `json:"code"                    validate:"required"`
	SaleRef               string      `json:"sale_ref"`
	CustomerName          string      `json:"customer_name"`
	ServiceCurrent        *string     `json:"service_current"`
	State                 *string     `json:"state"`
	DateOrder             *types.Date `json:"date_order"`
	DateDeliveryRequested *types.Date `json:"date_delivery_requested"`
	DateStartPlan         *types.Date `json:"date_start_plan"`
	DateEndEstimated      *types.Date `json:"date_end_estimated"`
}

type ProductionOrderPatchRequest struct {
	SaleRef               *string     `json:"sale_ref"`
	CustomerName          *string     `json:"customer_name"`
	ServiceCurrent        *string     `json:"service_current"`
	State                 *string     `json:"state"`
	DateOrder             *types.Date `json:"date_order"`
	DateDeliveryRequested *types.Date `json:"date_delivery_requested"`
	DateStartPlan         *types.Date `json:"date_start_plan"`
	DateEndEstimated      *types.Date `json:"date_end_estimated"`
}

type NewLineRequest struct {
	ArticleRef   string `json:"article_ref"    validate:"required"`
	Color        string `json:"color"`
	QtyOrdered   *int   `json:"qty_ordered"    validate:"required,gte=0"`
	QtyToProduce *int   `json:"qty_to_produce" validate:"omitempty,gte=0"`
}

type LinePatchRequest struct {
	ArticleRef     *string `json:"article_ref"     validate:"omitempty,min=1"`
	Color          *string `json:"color"`
	QtyOrdered     *int    `json:"qty_ordered"     validate:"omitempty,gte=0"`
	QtyToProduce   *int    `json:"qty_to_produce"  validate:"omitempty,gte=0"`
	QtyProduced    *int    `json:"qty_produced"    validate:"omitempty,gte=0"`
	QtyDefect      *int    `json:"qty_defect"      validate:"omitempty,gte=0"`
	ServiceCurrent *string `json:"service_current"`
	State          *string `json:"state"`
}

type SizeUpsertRequest struct {
	QtyOrdered   *int `json:"qty_ordered"    validate:"required,gte=0"`
	QtyToProduce *int `json:"qty_to_produce" validate:"omitempty,gte=0"`
}

type NewAnomalyRequest struct {
	ProductionOrderID     *types.UUID `json:"production_order_id"`
	ProductionOrderLineID *types.UUID `json:"production_order_line_id"`
	Service               string      `json:"service"                  validate:"required"`
	Severity              string      `json:"severity"                 validate:"required,oneof=low medium high"`
	Description           string      `json:"description"              validate:"required"`
	IsBlocking            bool        `json:"is_blocking"`
}

type AnomalyPatchRequest struct {
	Service     *string `json:"service"`
	Severity    *string `json:"severity"    validate:"omitempty,oneof=low medium high"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	IsBlocking  *bool   `json:"is_blocking"`
	Resolved    *bool   `json:"resolved"`
}

type ReconcileRequest struct {
	ProductionOrderID *types.UUID `json:"production_order_id"`
}

type ProductionOrderResponse struct {
	ID                    types.UUID  `json:"id"`
	Code                  string      `json:"code"`
	SaleRef               string      `json:"sale_ref,omitempty"`
	CustomerName          string      `json:"customer_name,omitempty"`
	ServiceCurrent        string      `json:"service_current"`
	State                 string      `json:"state"`
	DateOrder             *types.Date `json:"date_order,omitempty"`
	DateDeliveryRequested *types.Date `json:"date_delivery_requested,omitempty"`
	DateStartPlan         *types.Date `json:"date_start_plan,omitempty"`
	DateEndEstimated      *types.Date `json:"date_end_estimated,omitempty"`
	LinesCount            int         `json:"lines_count"`
	OpenAnomalies         int         `json:"open_anomalies"`
	CreatedAt             time.Time   `json:"created_at"`
	UpdatedAt             time.Time   `json:"updated_at"`
}

type ProductionOrderDetailResponse struct {
	ProductionOrderResponse
	Lines     []LineResponse    `json:"lines"`
	Anomalies []AnomalyResponse `json:"anomalies"`
}

type LineResponse struct {
	ID                types.UUID     `json:"id"`
	ProductionOrderID types.UUID     `json:"production_order_id"`
	Seq               int            `json:"seq"`
	Code              string         `json:"code"`
	ArticleRef        string         `json:"article_ref"`
	Color             string         `json:"color,omitempty"`
	QtyOrdered        int            `json:"qty_ordered"`
	QtyToProduce      int            `json:"qty_to_produce"`
	QtyProduced       int            `json:"qty_produced"`
	QtyDefect         int            `json:"qty_defect"`
	ServiceCurrent    string         `json:"service_current"`
	State             string         `json:"state"`
	Sizes             []SizeResponse `json:"sizes,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type SizeResponse struct {
	Size         string `json:"size"`
	QtyOrdered   int    `json:"qty_ordered"`
	QtyToProduce int    `json:"qty_to_produce"`
	QtyProduced  int    `json:"qty_produced"`
	QtyDefect    int    `json:"qty_defect"`
}

type AnomalyResponse struct {
	ID                    types.UUID  `json:"id"`
	ProductionOrderID     types.UUID  `json:"production_order_id"`
	ProductionOrderLineID *types.UUID `json:"production_order_line_id,omitempty"`
	LineCode              string      `json:"line_code,omitempty"`
	Service               string      `json:"service"`
	Severity              string      `json:"severity"`
	Description           string      `json:"description"`
	IsBlocking            bool        `json:"is_blocking"`
	Resolved              bool        `json:"resolved"`
	CreatedAt             time.Time   `json:"created_at"`
}

type ImportResultResponse struct {
	CreatedLines int                    `json:"created_lines"`
	Details      []ImportedLineResponse `json:"details"`
}

type ImportedLineResponse struct {
	LineCode   string            `json:"line_code"`
	ArticleRef string            `json:"article_ref"`
	Color      string            `json:"color,omitempty"`
	Sizes      []SizeQtyResponse `json:"sizes"`
}

type SizeQtyResponse struct {
	Size string `json:"size"`
	Qty  int    `json:"qty"`
}

type SalesOrderResponse struct {
	ID           types.UUID  `json:"id"`
	Code         string      `json:"code"`
	CustomerName string      `json:"customer_name,omitempty"`
	DateOrder    *types.Date `json:"date_order,omitempty"`
	LinesCount   int         `json:"lines_count"`
	TotalQty     int         `json:"total_qty"`
}

type SalesOrderDetailResponse struct {
	SalesOrderResponse
	Lines []SalesOrderLineResponse `json:"lines"`
}

type SalesOrderLineResponse struct {
	ArticleRef string `json:"article_ref"`
	Color      string `json:"color,omitempty"`
	Size       string `json:"size,omitempty"`
	Qty        int    `json:"qty"`
}

type ReconcileResponse struct {
	Checked   int `json:"checked"`
	Corrected int `json:"corrected"`
}

func toDate(t *time.Time) *types.Date {
	if t == nil {
		return nil
	}
	return &types.Date{Time: *t}
}

func fromDate(d *types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func toOptionalUUID(id *kernel.UUID) *types.UUID {
	if id == nil {
		return nil
	}
	v := id.Bytes()
	return &v
}

func (r NewProductionOrderRequest) details() order.Details {
	return order.Details{
		SaleRef:               r.SaleRef,
		CustomerName:          r.CustomerName,
		DateOrder:             fromDate(r.DateOrder),
		DateDeliveryRequested: fromDate(r.DateDeliveryRequested),
		DateStartPlan:         fromDate(r.DateStartPlan),
		DateEndEstimated:      fromDate(r.DateEndEstimated),
	}
}

func (r ProductionOrderPatchRequest) patch() order.DetailsPatch {
	return order.DetailsPatch{
		SaleRef:               r.SaleRef,
		CustomerName:          r.CustomerName,
		DateOrder:             fromDate(r.DateOrder),
		DateDeliveryRequested: fromDate(r.DateDeliveryRequested),
		DateStartPlan:         fromDate(r.DateStartPlan),
		DateEndEstimated:      fromDate(r.DateEndEstimated),
	}
}

func (r LinePatchRequest) edit() line.Edit {
	return line.Edit{
		ArticleRef: r.ArticleRef,
		Color:      r.Color,
		Ordered:    r.QtyOrdered,
		ToProduce:  r.QtyToProduce,
		Produced:   r.QtyProduced,
		Defect:     r.QtyDefect,
	}
}

func newOrderResponse(o *order.ProductionOrder) ProductionOrderResponse {
	d := o.Details()
	return ProductionOrderResponse{
		ID:                    o.ID().Bytes(),
		Code:                  o.Code(),
		SaleRef:               d.SaleRef,
		CustomerName:          d.CustomerName,
		ServiceCurrent:        o.ServiceCurrent().String(),
		State:                 o.State().String(),
		DateOrder:             toDate(d.DateOrder),
		DateDeliveryRequested: toDate(d.DateDeliveryRequested),
		DateStartPlan:         toDate(d.DateStartPlan),
		DateEndEstimated:      toDate(d.DateEndEstimated),
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
	}
}

func newOrderSummaryResponse(s queries.ProductionOrderSummary) ProductionOrderResponse {
	return ProductionOrderResponse{
		ID:                    s.ID.Bytes(),
		Code:                  s.Code,
		SaleRef:               s.SaleRef,
		CustomerName:          s.CustomerName,
		ServiceCurrent:        s.ServiceCurrent.String(),
		State:                 s.State.String(),
		DateOrder:             toDate(s.DateOrder),
		DateDeliveryRequested: toDate(s.DateDeliveryRequested),
		DateStartPlan:         toDate(s.DateStartPlan),
		DateEndEstimated:      toDate(s.DateEndEstimated),
		LinesCount:            s.LinesCount,
		OpenAnomalies:         s.OpenAnomalies,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func newOrderDetailResponse(v queries.ProductionOrderView) ProductionOrderDetailResponse {
	resp := ProductionOrderDetailResponse{
		ProductionOrderResponse: newOrderSummaryResponse(v.ProductionOrderSummary),
		Lines:                   make([]LineResponse, 0, len(v.Lines)),
		Anomalies:               make([]AnomalyResponse, 0, len(v.Anomalies)),
	}
	for _, l := range v.Lines {
		sizes := make([]SizeResponse, 0, len(l.Sizes))
		for _, s := range l.Sizes {
			sizes = append(sizes, SizeResponse(s))
		}
		resp.Lines = append(resp.Lines, LineResponse{
			ID:                l.ID.Bytes(),
			ProductionOrderID: v.ID.Bytes(),
			Seq:               l.Seq,
			Code:              l.Code,
			ArticleRef:        l.ArticleRef,
			Color:             l.Color,
			QtyOrdered:        l.QtyOrdered,
			QtyToProduce:      l.QtyToProduce,
			QtyProduced:       l.QtyProduced,
			QtyDefect:         l.QtyDefect,
			ServiceCurrent:    l.ServiceCurrent.String(),
			State:             l.State.String(),
			Sizes:             sizes,
			CreatedAt:         l.CreatedAt,
			UpdatedAt:         l.UpdatedAt,
		})
	}
	for _, a := range v.Anomalies {
		resp.Anomalies = append(resp.Anomalies, AnomalyResponse{
			ID:                    a.ID.Bytes(),
			ProductionOrderID:     v.ID.Bytes(),
			ProductionOrderLineID: toOptionalUUID(a.LineID),
			LineCode:              a.LineCode,
			Service:               a.Service.String(),
			Severity:              a.Severity.String(),
			Description:           a.Description,
			IsBlocking:            a.IsBlocking,
			Resolved:              a.Resolved,
			CreatedAt:             a.CreatedAt,
		})
	}
	return resp
}

func newLineResponse(l *line.Line) LineResponse {
	q := l.Quantities()
	return LineResponse{
		ID:                l.ID().Bytes(),
		ProductionOrderID: l.OrderID().Bytes(),
		Seq:               l.Seq(),
		Code:              l.Code(),
		ArticleRef:        l.ArticleRef(),
		Color:             l.Color(),
		QtyOrdered:        q.Ordered,
		QtyToProduce:      q.ToProduce,
		QtyProduced:       q.Produced,
		QtyDefect:         q.Defect,
		ServiceCurrent:    l.ServiceCurrent().String(),
		State:             l.State().String(),
		CreatedAt:         l.CreatedAt(),
		UpdatedAt:         l.UpdatedAt(),
	}
}

func newSizeResponses(sizes []*line.Size) []SizeResponse {
	resp := make([]SizeResponse, 0, len(sizes))
	for _, s := range sizes {
		q := s.Quantities()
		resp = append(resp, SizeResponse{
			Size:         s.Label(),
			QtyOrdered:   q.Ordered,
			QtyToProduce: q.ToProduce,
			QtyProduced:  q.Produced,
			QtyDefect:    q.Defect,
		})
	}
	return resp
}

func newAnomalyResponse(a *anomaly.Anomaly) AnomalyResponse {
	return AnomalyResponse{
		ID:                    a.ID().Bytes(),
		ProductionOrderID:     a.OrderID().Bytes(),
		ProductionOrderLineID: toOptionalUUID(a.LineID()),
		Service:               a.Service().String(),
		Severity:              a.Severity().String(),
		Description:           a.Description(),
		IsBlocking:            a.IsBlocking(),
		Resolved:              a.IsResolved(),
		CreatedAt:             a.CreatedAt(),
	}
}

func newImportResultResponse(r commands.ImportResult) ImportResultResponse {
	resp := ImportResultResponse{
		CreatedLines: r.CreatedLines,
		Details:      make([]ImportedLineResponse, 0, len(r.Details)),
	}
	for _, d := range r.Details {
		sizes := make([]SizeQtyResponse, 0, len(d.Sizes))
		for _, s := range d.Sizes {
			sizes = append(sizes, SizeQtyResponse{Size: s.Size, Qty: s.Qty})
		}
		resp.Details = append(resp.Details, ImportedLineResponse{
			LineCode:   d.LineCode,
			ArticleRef: d.ArticleRef,
			Color:      d.Color,
			Sizes:      sizes,
		})
	}
	return resp
}

func newSalesOrderResponse(s queries.SalesOrderSummary) SalesOrderResponse {
	return SalesOrderResponse{
		ID:           s.ID.Bytes(),
		Code:         s.Code,
		CustomerName: s.CustomerName,
		DateOrder:    toDate(s.DateOrder),
		LinesCount:   s.LinesCount,
		TotalQty:     s.TotalQty,
	}
}

func newSalesOrderDetailResponse(v queries.SalesOrderView) SalesOrderDetailResponse {
	resp := SalesOrderDetailResponse{
		SalesOrderResponse: newSalesOrderResponse(v.SalesOrderSummary),
		Lines:              make([]SalesOrderLineResponse, 0, len(v.Lines)),
	}
	for _, l := range v.Lines {
		resp.Lines = append(resp.Lines, SalesOrderLineResponse(l))
	}
	return resp
}
