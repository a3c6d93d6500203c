package queries

import (
	"context"

	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListSalesOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListSalesOrdersQueryHandler(db *gorm.DB) ListSalesOrdersQueryHandler {
	return ListSalesOrdersQueryHandler{db: db}
}

// Handle returns the sales orders whose code or customer matches, ordered by code.
func (h ListSalesOrdersQueryHandler) Handle(ctx context.Context, query ListSalesOrdersQuery) ([]SalesOrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			so.id,
			so.code,
			COALESCE(so.customer_name, ''),
			so.date_order,
			COUNT(sl.id),
			COALESCE(SUM(sl.qty), 0)
		FROM sales_orders so
		LEFT JOIN sales_order_lines sl ON sl.sales_order_id = so.id
		WHERE (@search = '' OR so.code ILIKE @pattern OR so.customer_name ILIKE @pattern)
		GROUP BY so.id, so.code, so.customer_name, so.date_order
		ORDER BY so.code
	`, map[string]any{
		"search":  query.Search(),
		"pattern": containsPattern(query.Search()),
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]SalesOrderSummary, 0)
	for rows.Next() {
		var s SalesOrderSummary
		var id uuid.UUID

		if err = rows.Scan(&id, &s.Code, &s.CustomerName, &s.DateOrder, &s.LinesCount, &s.TotalQty); err != nil {
			return nil, err
		}
		if s.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		orders = append(orders, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
