package queries

import (
	"context"
	"database/sql"
	"errors"

	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetProductionOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetProductionOrderQueryHandler(db *gorm.DB) GetProductionOrderQueryHandler {
	return GetProductionOrderQueryHandler{db: db}
}

// Handle reads the order in one read-only transaction so that header, lines and
// anomalies come from the same snapshot.
func (h GetProductionOrderQueryHandler) Handle(ctx context.Context, query GetProductionOrderQuery) (ProductionOrderView, error) {
	var view ProductionOrderView
	if err := query.Validate(); err != nil {
		return view, err
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		header, err := h.header(tx, query.OrderID())
		if err != nil {
			return err
		}
		view.ProductionOrderSummary = header

		if view.Lines, err = h.lines(tx, query.OrderID()); err != nil {
			return err
		}

		view.Anomalies, err = h.anomalies(tx, query.OrderID())
		return err
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return ProductionOrderView{}, err
	}

	view.LinesCount = len(view.Lines)
	for _, a := range view.Anomalies {
		if !a.Resolved {
			view.OpenAnomalies++
		}
	}

	return view, nil
}

func (h GetProductionOrderQueryHandler) header(tx *gorm.DB, orderID kernel.UUID) (ProductionOrderSummary, error) {
	var o ProductionOrderSummary
	var stage, state string

	row := tx.Raw(`
		SELECT
			code,
			COALESCE(sale_ref, ''),
			COALESCE(customer_name, ''),
			service_current,
			state,
			date_order,
			date_delivery_requested,
			date_start_plan,
			date_end_estimated,
			created_at,
			updated_at
		FROM production_orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(
		&o.Code,
		&o.SaleRef,
		&o.CustomerName,
		&stage,
		&state,
		&o.DateOrder,
		&o.DateDeliveryRequested,
		&o.DateStartPlan,
		&o.DateEndEstimated,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return o, errs.NewObjectNotFoundError("production order", orderID.String())
		}
		return o, err
	}

	o.ID = orderID
	if o.ServiceCurrent, err = kernel.ParseServiceStage(stage); err != nil {
		return o, err
	}
	if o.State, err = kernel.ParseProductionState(state); err != nil {
		return o, err
	}

	return o, nil
}

func (h GetProductionOrderQueryHandler) lines(tx *gorm.DB, orderID kernel.UUID) ([]LineView, error) {
	rows, err := tx.Raw(`
		SELECT
			id,
			seq,
			code,
			article_ref,
			COALESCE(color, ''),
			qty_ordered,
			qty_to_produce,
			qty_produced,
			qty_defect,
			service_current,
			state,
			created_at,
			updated_at
		FROM production_order_lines
		WHERE production_order_id = ?
		ORDER BY seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]LineView, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var l LineView
		var id uuid.UUID
		var stage, state string

		err = rows.Scan(
			&id,
			&l.Seq,
			&l.Code,
			&l.ArticleRef,
			&l.Color,
			&l.QtyOrdered,
			&l.QtyToProduce,
			&l.QtyProduced,
			&l.QtyDefect,
			&stage,
			&state,
			&l.CreatedAt,
			&l.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if l.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if l.ServiceCurrent, err = kernel.ParseServiceStage(stage); err != nil {
			return nil, err
		}
		if l.State, err = kernel.ParseProductionState(state); err != nil {
			return nil, err
		}
		l.Sizes = make([]SizeView, 0)

		index[id] = len(lines)
		lines = append(lines, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	sizeRows, err := tx.Raw(`
		SELECT s.line_id, s.size, s.qty_ordered, s.qty_to_produce, s.qty_produced, s.qty_defect
		FROM production_order_line_sizes s
		JOIN production_order_lines l ON l.id = s.line_id
		WHERE l.production_order_id = ?
		ORDER BY l.seq, s.size
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer sizeRows.Close()

	for sizeRows.Next() {
		var s SizeView
		var lineID uuid.UUID
		if err = sizeRows.Scan(&lineID, &s.Size, &s.QtyOrdered, &s.QtyToProduce, &s.QtyProduced, &s.QtyDefect); err != nil {
			return nil, err
		}
		if i, ok := index[lineID]; ok {
			lines[i].Sizes = append(lines[i].Sizes, s)
		}
	}

	return lines, sizeRows.Err()
}

func (h GetProductionOrderQueryHandler) anomalies(tx *gorm.DB, orderID kernel.UUID) ([]AnomalyView, error) {
	rows, err := tx.Raw(`
		SELECT
			a.id,
			a.production_order_line_id,
			COALESCE(l.code, ''),
			a.service,
			a.severity,
			a.description,
			a.is_blocking,
			a.resolved,
			a.created_at
		FROM anomalies a
		LEFT JOIN production_order_lines l ON l.id = a.production_order_line_id
		WHERE a.production_order_id = ?
		ORDER BY a.created_at DESC
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	anomalies := make([]AnomalyView, 0)
	for rows.Next() {
		var a AnomalyView
		var id uuid.UUID
		var lineID uuid.NullUUID
		var service, severity string

		err = rows.Scan(
			&id,
			&lineID,
			&a.LineCode,
			&service,
			&severity,
			&a.Description,
			&a.IsBlocking,
			&a.Resolved,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if a.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if lineID.Valid {
			lID, lineErr := kernel.UUIDFromBytes(lineID.UUID[:])
			if lineErr != nil {
				return nil, lineErr
			}
			a.LineID = &lID
		}
		if a.Service, err = kernel.ParseServiceStage(service); err != nil {
			return nil, err
		}
		if a.Severity, err = anomaly.ParseSeverity(severity); err != nil {
			return nil, err
		}

		anomalies = append(anomalies, a)
	}

	return anomalies, rows.Err()
}
