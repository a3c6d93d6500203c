package queries

import (
	"context"
	"database/sql"
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetSalesOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetSalesOrderQueryHandler(db *gorm.DB) GetSalesOrderQueryHandler {
	return GetSalesOrderQueryHandler{db: db}
}

func (h GetSalesOrderQueryHandler) Handle(ctx context.Context, query GetSalesOrderQuery) (SalesOrderView, error) {
	var view SalesOrderView
	if err := query.Validate(); err != nil {
		return view, err
	}

	db := h.db.WithContext(ctx)

	var id uuid.UUID
	err := db.Raw(`
		SELECT id, code, COALESCE(customer_name, ''), date_order
		FROM sales_orders
		WHERE code = ?
	`, query.Code()).Row().Scan(&id, &view.Code, &view.CustomerName, &view.DateOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return view, errs.NewObjectNotFoundError("sales order", query.Code())
		}
		return view, err
	}
	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return view, err
	}

	rows, err := db.Raw(`
		SELECT article_ref, COALESCE(color, ''), COALESCE(size, ''), qty
		FROM sales_order_lines
		WHERE sales_order_id = ?
		ORDER BY position
	`, id).Rows()
	if err != nil {
		return view, err
	}
	defer rows.Close()

	view.Lines = make([]SalesOrderLineView, 0)
	for rows.Next() {
		var l SalesOrderLineView
		if err = rows.Scan(&l.ArticleRef, &l.Color, &l.Size, &l.Qty); err != nil {
			return view, err
		}
		view.Lines = append(view.Lines, l)
		view.TotalQty += l.Qty
	}
	if err = rows.Err(); err != nil {
		return view, err
	}

	view.LinesCount = len(view.Lines)
	return view, nil
}
