package queries

import (
	"context"
	"strings"

	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListProductionOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListProductionOrdersQueryHandler(db *gorm.DB) ListProductionOrdersQueryHandler {
	return ListProductionOrdersQueryHandler{db: db}
}

// Handle returns the matching orders, most recently updated first.
func (h ListProductionOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListProductionOrdersQuery,
) ([]ProductionOrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	args := map[string]any{
		"state":   "",
		"stage":   "",
		"search":  query.Search(),
		"pattern": containsPattern(query.Search()),
	}
	if query.State() != nil {
		args["state"] = query.State().String()
	}
	if query.Stage() != nil {
		args["stage"] = query.Stage().String()
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			po.id,
			po.code,
			COALESCE(po.sale_ref, ''),
			COALESCE(po.customer_name, ''),
			po.service_current,
			po.state,
			po.date_order,
			po.date_delivery_requested,
			po.date_start_plan,
			po.date_end_estimated,
			(SELECT COUNT(*) FROM production_order_lines l WHERE l.production_order_id = po.id),
			(SELECT COUNT(*) FROM anomalies a WHERE a.production_order_id = po.id AND NOT a.resolved),
			po.created_at,
			po.updated_at
		FROM production_orders po
		WHERE (@state = '' OR po.state = @state)
			AND (@stage = '' OR po.service_current = @stage)
			AND (@search = ''
				OR po.code ILIKE @pattern
				OR po.sale_ref ILIKE @pattern
				OR po.customer_name ILIKE @pattern)
		ORDER BY po.updated_at DESC, po.code
	`, args).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ProductionOrderSummary, 0)
	for rows.Next() {
		var o ProductionOrderSummary
		var id uuid.UUID
		var stage, state string

		err = rows.Scan(
			&id,
			&o.Code,
			&o.SaleRef,
			&o.CustomerName,
			&stage,
			&state,
			&o.DateOrder,
			&o.DateDeliveryRequested,
			&o.DateStartPlan,
			&o.DateEndEstimated,
			&o.LinesCount,
			&o.OpenAnomalies,
			&o.CreatedAt,
			&o.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if o.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if o.ServiceCurrent, err = kernel.ParseServiceStage(stage); err != nil {
			return nil, err
		}
		if o.State, err = kernel.ParseProductionState(state); err != nil {
			return nil, err
		}

		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns free text into an ILIKE pattern matching it anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
